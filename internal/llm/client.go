package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/nchouhan/ogni-scan/internal/config"
)

// ErrUpstreamUnavailable marks a generation or extraction call that
// failed because the hosted model could not be reached in time. Query
// paths surface it immediately instead of retrying, since a retried
// completion can duplicate non-idempotent side effects.
var ErrUpstreamUnavailable = errors.New("upstream model unavailable")

// Client wraps the hosted chat model behind explicit timeouts.
type Client struct {
	model   llms.Model
	log     zerolog.Logger
	timeout time.Duration
}

func NewClient(cfg *config.LLMConfig, log zerolog.Logger, timeout time.Duration) (*Client, error) {
	var (
		model llms.Model
		err   error
	)
	switch strings.ToLower(cfg.Provider) {
	case "", "openai":
		model, err = openai.New(
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
			openai.WithModel(cfg.Model),
		)
	case "ollama":
		model, err = ollama.New(
			ollama.WithServerURL(cfg.BaseURL),
			ollama.WithModel(cfg.Model),
		)
	default:
		return nil, fmt.Errorf("unsupported chat provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return &Client{model: model, log: log, timeout: timeout}, nil
}

// GenerateContent calls the model, optionally with tools attached.
func (c *Client) GenerateContent(ctx context.Context, tools []llms.Tool, messages []llms.MessageContent) (*llms.ContentResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		resp *llms.ContentResponse
		err  error
	)
	if len(tools) > 0 {
		resp, err = c.model.GenerateContent(ctx, messages, llms.WithTools(tools))
	} else {
		resp, err = c.model.GenerateContent(ctx, messages)
	}
	if err != nil {
		return nil, classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrUpstreamUnavailable)
	}
	return resp, nil
}

// Complete runs a plain system+user completion and returns the raw text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}
	resp, err := c.GenerateContent(ctx, nil, messages)
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Content, nil
}

// classify folds timeouts and connection failures into the upstream
// sentinel so callers can report a distinguishable condition.
func classify(err error) error {
	if errors.Is(err, ErrUpstreamUnavailable) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) ||
		errors.As(err, new(*net.OpError)) {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return err
}
