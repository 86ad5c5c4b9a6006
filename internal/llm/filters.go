package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/nchouhan/ogni-scan/internal/models"
)

// searchFiltersTool asks the model to pull structured predicates out of
// the recruiter's free text.
var searchFiltersTool = llms.Tool{
	Type: "function",
	Function: &llms.FunctionDefinition{
		Name:        "search_filters",
		Description: "Report structured candidate filters found in a recruiter search query. Omit any field the query does not state.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"skills": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Required skills explicitly mentioned in the query",
				},
				"domain": map[string]any{
					"type":        "string",
					"description": "Industry domain such as fintech or healthcare, if stated",
				},
				"min_experience": map[string]any{
					"type":        "number",
					"description": "Minimum years of experience, if stated",
				},
			},
		},
	},
}

const filterExtractionPrompt = "You extract structured filters from recruiter search queries. " +
	"Call search_filters with only the fields the query explicitly states. " +
	"If the query states no filters, call it with no fields."

// ExtractFilters derives filter predicates from a free-text query via the
// model's function-calling mode. Returning (nil, nil) is the legitimate
// "no filters found" outcome, not an error.
func (c *Client) ExtractFilters(ctx context.Context, query string) (*models.SearchFilters, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, filterExtractionPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, query),
	}

	resp, err := c.GenerateContent(ctx, []llms.Tool{searchFiltersTool}, messages)
	if err != nil {
		return nil, err
	}

	for _, call := range resp.Choices[0].ToolCalls {
		if call.FunctionCall == nil || call.FunctionCall.Name != searchFiltersTool.Function.Name {
			continue
		}
		var filters models.SearchFilters
		if err := json.Unmarshal([]byte(call.FunctionCall.Arguments), &filters); err != nil {
			return nil, fmt.Errorf("decoding filter arguments: %w", err)
		}
		if filters.IsZero() {
			return nil, nil
		}
		c.log.Debug().Interface("filters", filters).Str("query", query).Msg("extracted filters")
		return &filters, nil
	}
	return nil, nil
}
