package models

import "strings"

// SearchFilters are structured predicates applied to a candidate search.
// All fields are optional and combine with AND semantics.
type SearchFilters struct {
	Skills        []string `json:"skills,omitempty"`
	Domain        string   `json:"domain,omitempty"`
	MinExperience *float64 `json:"min_experience,omitempty"`
}

// IsZero reports whether no predicate is set.
func (f SearchFilters) IsZero() bool {
	return len(f.Skills) == 0 && f.Domain == "" && f.MinExperience == nil
}

// Merge returns f with unset fields filled from other. Explicit filters
// always win field-by-field over extracted ones.
func (f SearchFilters) Merge(other SearchFilters) SearchFilters {
	out := f
	if len(out.Skills) == 0 {
		out.Skills = other.Skills
	}
	if out.Domain == "" {
		out.Domain = other.Domain
	}
	if out.MinExperience == nil {
		out.MinExperience = other.MinExperience
	}
	return out
}

// Query is a single recruiter request. Ephemeral, never persisted.
type Query struct {
	Text    string        `json:"query"`
	Filters SearchFilters `json:"filters"`
	Limit   int           `json:"limit"`
}

// Relevance tiers as the generator labels them.
const (
	RelevanceHigh   = "High"
	RelevanceMedium = "Medium"
	RelevanceLow    = "Low"
)

// NormalizeRelevance maps free-form relevance text onto a tier, defaulting
// to Medium for anything unrecognized.
func NormalizeRelevance(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return RelevanceHigh
	case "low":
		return RelevanceLow
	case "medium", "":
		return RelevanceMedium
	default:
		return RelevanceMedium
	}
}

// CandidateProfile is the typed view of one candidate reconstructed from a
// generator response. Transient: rebuilt per response, never stored.
type CandidateProfile struct {
	Name          string   `json:"name"`
	Role          string   `json:"role,omitempty"`
	Company       string   `json:"company,omitempty"`
	Skills        []string `json:"skills,omitempty"`
	Experience    string   `json:"experience,omitempty"`
	Relevance     string   `json:"relevance,omitempty"`
	Justification string   `json:"justification,omitempty"`
}

// Valid reports whether the profile carries enough to render a card.
func (c CandidateProfile) Valid() bool {
	return strings.TrimSpace(c.Name) != ""
}
