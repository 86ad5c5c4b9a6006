package answer

import (
	"regexp"
	"strings"

	"github.com/nchouhan/ogni-scan/internal/models"
)

var (
	// negativeRe matches an explicit "no candidate named X found"
	// statement, with or without quotes around the name.
	negativeRe = regexp.MustCompile(`(?i)no\s+candidates?\s+(?:named|called|matching)\s+["'“]?([^"'”\n.]+?)["'”]?\s+(?:was\s+|were\s+)?found`)

	skillsMentionRe    = regexp.MustCompile(`(?i)skills?\s+(?:like|such as|including)\s+([^.\n]+)`)
	trailingClauseRe   = regexp.MustCompile(`(?i)\s+(?:was|were|is|are|has|have|can|could)\b.*$`)
	experienceYearsRe  = regexp.MustCompile(`(?i)\d+\+?\s*years?[^.,\n]*`)
	relevanceMentionRe = regexp.MustCompile(`(?i)\b(high|medium|low)\b\s*(?:relevance|confidence|match)?`)

	noMatchJustification = "No direct match found for the searched name."
)

// parseNegative handles the negative-result fallback: the response says
// no candidate matched a searched name but still describes a similar
// profile. A single low-confidence record is synthesized from whatever
// skill, experience and relevance mentions the prose contains.
func parseNegative(raw string) (Result, bool) {
	m := negativeRe.FindStringSubmatchIndex(raw)
	if m == nil {
		return Result{}, false
	}

	name := strings.TrimSpace(raw[m[2]:m[3]])
	if name == "" {
		return Result{}, false
	}

	// require a descriptive remainder beyond the negative statement
	remainder := strings.TrimSpace(raw[m[1]:])
	remainder = strings.TrimLeft(remainder, ".!: \n")
	if remainder == "" {
		return Result{}, false
	}

	profile := models.CandidateProfile{
		Name:          name,
		Relevance:     models.RelevanceMedium,
		Justification: noMatchJustification,
	}

	if sm := skillsMentionRe.FindStringSubmatch(remainder); sm != nil {
		mention := trailingClauseRe.ReplaceAllString(sm[1], "")
		profile.Skills = splitSkills(mention)
	}
	if exp := experienceYearsRe.FindString(remainder); exp != "" {
		profile.Experience = strings.TrimSpace(exp)
	}
	if rel := relevanceMentionRe.FindStringSubmatch(remainder); rel != nil {
		profile.Relevance = models.NormalizeRelevance(rel[1])
	}

	res := Result{Structured: true}
	res.Blocks = append(res.Blocks,
		ParsedBlock{Kind: BlockInfo, Text: strings.TrimSpace(raw[:m[1]])},
		ParsedBlock{Kind: BlockCandidate, Candidate: &profile},
	)
	res.Candidates = append(res.Candidates, profile)
	return res, true
}
