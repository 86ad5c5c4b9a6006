package answer

import (
	"regexp"
	"strings"

	"github.com/nchouhan/ogni-scan/internal/models"
)

var (
	// horizontalRuleRe splits a response on markdown horizontal rules.
	horizontalRuleRe = regexp.MustCompile(`(?m)^\s*(?:-{3,}|\*{3,}|_{3,})\s*$`)
	// candidateHeadingRe matches a "### Candidate" block heading; the
	// remainder of the line often carries the name.
	candidateHeadingRe = regexp.MustCompile(`(?mi)^#{2,4}\s*Candidate\b[\s:#.\d-]*(.*)$`)
)

// parseSectioned handles the section-delimited prose dialect: blocks
// separated by horizontal rules, each beginning with a "### Candidate"
// heading and carrying labeled field lines. Every field is optional.
func parseSectioned(raw string) (Result, bool) {
	sections := horizontalRuleRe.Split(raw, -1)

	var res Result
	for _, section := range sections {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}

		heading := candidateHeadingRe.FindStringSubmatchIndex(section)
		if heading == nil || !headingLeadsSection(section, heading[0]) {
			res.Blocks = append(res.Blocks, ParsedBlock{Kind: BlockText, Text: section})
			continue
		}

		var profile models.CandidateProfile
		if name := stripMarkdown(section[heading[2]:heading[3]]); name != "" {
			profile.Name = name
		}
		body := section[heading[1]:]
		parseLabeledLines(&profile, strings.Split(body, "\n"))

		if profile.Valid() {
			res.Blocks = append(res.Blocks, ParsedBlock{Kind: BlockCandidate, Candidate: &profile})
			res.Candidates = append(res.Candidates, profile)
		} else {
			res.Blocks = append(res.Blocks, ParsedBlock{Kind: BlockText, Text: section})
		}
	}

	if len(res.Candidates) == 0 {
		return Result{}, false
	}
	res.Structured = true
	return res, true
}

// headingLeadsSection requires the candidate heading to open its block,
// not sit buried in the middle of unrelated prose.
func headingLeadsSection(section string, offset int) bool {
	return strings.TrimSpace(section[:offset]) == ""
}
