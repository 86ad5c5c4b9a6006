package answer

import (
	"regexp"
	"strings"

	"github.com/nchouhan/ogni-scan/internal/models"
)

// labelRe matches one "Label: value" detail line, with or without
// markdown bold and a leading list bullet.
var labelRe = regexp.MustCompile(`^\s*(?:[-*]\s+)?(?:\*\*([^*]+?)\*\*|([A-Za-z][A-Za-z /]{0,30}?))\s*:\s*(.*)$`)

// splitLabeled extracts the label and value from a detail line.
func splitLabeled(line string) (label, value string, ok bool) {
	m := labelRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	label = m[1]
	if label == "" {
		label = m[2]
	}
	return strings.ToLower(strings.TrimSpace(label)), strings.TrimSpace(m[3]), true
}

// applyField assigns a labeled value to its profile field. Unknown
// labels are ignored; absence of any individual field is tolerated.
func applyField(p *models.CandidateProfile, label, value string) {
	value = stripMarkdown(value)
	if value == "" {
		return
	}
	switch label {
	case "name", "candidate", "candidate name":
		if p.Name == "" {
			p.Name = value
		}
	case "role", "current role", "title", "position":
		if p.Role == "" {
			p.Role = value
		}
	case "company", "current company", "employer":
		if p.Company == "" {
			p.Company = value
		}
	case "skills", "key skills", "top skills", "relevant skills", "skills match":
		if len(p.Skills) == 0 {
			p.Skills = splitSkills(value)
		}
	case "experience", "years of experience", "relevant experience":
		if p.Experience == "" {
			p.Experience = value
		}
	case "relevance", "relevance score", "match", "fit", "confidence":
		if p.Relevance == "" {
			p.Relevance = models.NormalizeRelevance(value)
		}
	case "why relevant", "why", "justification", "reason", "reasoning":
		if p.Justification == "" {
			p.Justification = value
		}
	}
}

var skillSepRe = regexp.MustCompile(`\s*(?:,|;|\band\b|&)\s*`)

// splitSkills cuts a comma-or-conjunction separated skill list.
func splitSkills(value string) []string {
	var skills []string
	for _, s := range skillSepRe.Split(value, -1) {
		s = stripMarkdown(strings.TrimSpace(s))
		if s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

var markdownDecorRe = regexp.MustCompile("[*_`]+")

func stripMarkdown(s string) string {
	return strings.TrimSpace(markdownDecorRe.ReplaceAllString(s, ""))
}

// parseLabeledLines folds every detail line of a block into a profile.
func parseLabeledLines(p *models.CandidateProfile, lines []string) {
	for _, line := range lines {
		if label, value, ok := splitLabeled(line); ok {
			applyField(p, label, value)
		}
	}
}
