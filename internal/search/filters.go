package search

import (
	"strings"

	"github.com/nchouhan/ogni-scan/internal/models"
)

// predicate is one structured-filter step against resume metadata.
// Predicates combine with AND semantics.
type predicate struct {
	name string
	keep func(models.Resume) bool
}

func buildPredicates(f models.SearchFilters) []predicate {
	var preds []predicate
	if len(f.Skills) > 0 {
		required := f.Skills
		preds = append(preds, predicate{
			name: "skills",
			keep: func(r models.Resume) bool { return hasAllSkills(r.Skills, required) },
		})
	}
	if f.Domain != "" {
		domain := f.Domain
		preds = append(preds, predicate{
			name: "domain",
			keep: func(r models.Resume) bool { return strings.EqualFold(r.Domain, domain) },
		})
	}
	if f.MinExperience != nil {
		minYears := *f.MinExperience
		preds = append(preds, predicate{
			name: "min_experience",
			keep: func(r models.Resume) bool { return r.YearsExperience >= minYears },
		})
	}
	return preds
}

// hasAllSkills is a case-insensitive subset match: every required skill
// must appear in the resume's skill list.
func hasAllSkills(have, required []string) bool {
	set := make(map[string]bool, len(have))
	for _, s := range have {
		set[strings.ToLower(strings.TrimSpace(s))] = true
	}
	for _, s := range required {
		if !set[strings.ToLower(strings.TrimSpace(s))] {
			return false
		}
	}
	return true
}
