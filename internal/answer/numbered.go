package answer

import (
	"regexp"
	"strings"

	"github.com/nchouhan/ogni-scan/internal/models"
)

var (
	// itemStartRe matches the first line of a numbered list item.
	itemStartRe = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+(.+)$`)
	// nameRoleSepRe splits "Name - Role" item headers.
	nameRoleSepRe = regexp.MustCompile(`\s+[-–—]\s+`)
)

// parseNumbered handles the numbered-list dialect: each item's first
// line is "Name - Role" and later lines carry labeled details such as
// Why relevant, Key Skills, Experience and Relevance Score.
func parseNumbered(raw string) (Result, bool) {
	starts := itemStartRe.FindAllStringSubmatchIndex(raw, -1)
	if len(starts) == 0 {
		return Result{}, false
	}

	var res Result
	if preamble := strings.TrimSpace(raw[:starts[0][0]]); preamble != "" {
		res.Blocks = append(res.Blocks, ParsedBlock{Kind: BlockText, Text: preamble})
	}

	for i, m := range starts {
		end := len(raw)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		header := raw[m[2]:m[3]]
		body := raw[m[3]:end]

		profile := parseNumberedItem(header, body)
		if profile.Valid() {
			res.Blocks = append(res.Blocks, ParsedBlock{Kind: BlockCandidate, Candidate: &profile})
			res.Candidates = append(res.Candidates, profile)
		} else {
			res.Blocks = append(res.Blocks, ParsedBlock{Kind: BlockText, Text: strings.TrimSpace(raw[m[0]:end])})
		}
	}

	if len(res.Candidates) == 0 {
		return Result{}, false
	}
	res.Structured = true
	return res, true
}

func parseNumberedItem(header, body string) models.CandidateProfile {
	var profile models.CandidateProfile

	header = stripMarkdown(strings.TrimSpace(header))
	if parts := nameRoleSepRe.Split(header, 2); len(parts) > 0 {
		profile.Name = strings.TrimSpace(parts[0])
		if len(parts) == 2 {
			profile.Role = strings.TrimSpace(parts[1])
		}
	}

	parseLabeledLines(&profile, strings.Split(body, "\n"))
	return profile
}
