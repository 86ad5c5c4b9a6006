package search

import (
	"fmt"
	"strings"

	"github.com/nchouhan/ogni-scan/internal/models"
	"github.com/nchouhan/ogni-scan/internal/vectordb"
)

// ContextEntry is one retrieved chunk with provenance, so the generator
// can cite the owning candidate.
type ContextEntry struct {
	ResumeID   int64   `json:"resume_id"`
	Candidate  string  `json:"candidate"`
	Section    string  `json:"section"`
	Content    string  `json:"content"`
	Similarity float32 `json:"similarity"`
}

// ContextPayload is the bundle sent to the generative model: ordered
// chunk texts (most relevant first), the query and the effective filters.
type ContextPayload struct {
	Query   string               `json:"query"`
	Filters models.SearchFilters `json:"filters"`
	Entries []ContextEntry       `json:"entries"`
}

func (p *ContextPayload) Empty() bool { return len(p.Entries) == 0 }

// buildPayload converts hits into a payload bounded to maxChars of
// context text. An overflowing entry is truncated, then assembly stops.
func buildPayload(query string, filters models.SearchFilters, hits []vectordb.Hit, maxChars int) *ContextPayload {
	payload := &ContextPayload{Query: query, Filters: filters}
	budget := maxChars
	for _, hit := range hits {
		if budget <= 0 {
			break
		}
		content := hit.Content
		if len(content) > budget {
			content = content[:budget]
		}
		budget -= len(content)
		payload.Entries = append(payload.Entries, ContextEntry{
			ResumeID:   hit.ResumeID,
			Candidate:  hit.Candidate,
			Section:    hit.Section,
			Content:    content,
			Similarity: hit.Similarity,
		})
	}
	return payload
}

// Prompt renders the payload into system and user messages. An empty
// payload explicitly instructs the generator to report "no match"
// rather than hallucinating candidates.
func (p *ContextPayload) Prompt() (system, user string) {
	system = models.SystemPrompt
	if p.Empty() {
		user = fmt.Sprintf("Recruiter query: %s\n\n%s", p.Query, models.NoMatchInstruction)
		return system, user
	}

	var contextBlock strings.Builder
	for _, e := range p.Entries {
		candidate := e.Candidate
		if candidate == "" {
			candidate = "Unknown"
		}
		contextBlock.WriteString(fmt.Sprintf(models.ContextEntryTemplate, candidate, e.Section, e.Content))
	}
	user = fmt.Sprintf(models.ContextPromptTemplate, contextBlock.String(), p.Query)
	return system, user
}
