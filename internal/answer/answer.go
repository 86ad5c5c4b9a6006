// Package answer normalizes the generator's free-text responses into
// typed candidate records. The generator's output format is not a
// contract this system controls, so several known dialects are tried
// speculatively in a fixed priority order; anything unrecognized
// degrades to verbatim prose, never to an error.
package answer

import (
	"strings"

	"github.com/nchouhan/ogni-scan/internal/models"
)

type BlockKind string

const (
	BlockCandidate BlockKind = "candidate"
	BlockTable     BlockKind = "table"
	BlockInfo      BlockKind = "info"
	BlockText      BlockKind = "text"
)

// TableBlock is a parsed pipe-delimited table.
type TableBlock struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ParsedBlock is the tagged union of renderable response fragments.
type ParsedBlock struct {
	Kind      BlockKind                `json:"kind"`
	Tag       string                   `json:"tag,omitempty"`
	Text      string                   `json:"text,omitempty"`
	Candidate *models.CandidateProfile `json:"candidate,omitempty"`
	Table     *TableBlock              `json:"table,omitempty"`
}

// Result is the normalizer's output. Structured reports whether any
// dialect matched; when false the response must be shown verbatim.
type Result struct {
	Structured bool                      `json:"structured"`
	Blocks     []ParsedBlock             `json:"blocks"`
	Candidates []models.CandidateProfile `json:"candidates"`
}

// Normalize extracts typed candidate records from a raw response. It is
// total: any input string, including empty and adversarially malformed
// markdown, yields a valid (possibly empty) result and never panics.
func Normalize(raw string) Result {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
	if raw == "" {
		return proseFallback(raw)
	}
	if res, ok := parseTagged(raw); ok {
		return res
	}
	if res, ok := parseTable(raw); ok {
		return res
	}
	if res, ok := parseSectioned(raw); ok {
		return res
	}
	if res, ok := parseNumbered(raw); ok {
		return res
	}
	if res, ok := parseNegative(raw); ok {
		return res
	}
	return proseFallback(raw)
}

// proseFallback is the universal, always-safe rendering path.
func proseFallback(raw string) Result {
	res := Result{Structured: false}
	if raw != "" {
		res.Blocks = append(res.Blocks, ParsedBlock{Kind: BlockText, Text: raw})
	}
	return res
}
