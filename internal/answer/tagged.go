package answer

import (
	"regexp"
	"strings"

	"github.com/nchouhan/ogni-scan/internal/models"
)

// tagMarkerRe matches a "### <TAG>:" delimiter line. Tags are uppercase
// by convention, which keeps this from claiming the mixed-case
// "### Candidate" headings of the sectioned-prose dialect.
var tagMarkerRe = regexp.MustCompile(`(?m)^###\s*([A-Z][A-Z_]*)\s*:\s*(.*)$`)

var recognizedTags = map[string]bool{
	"CANDIDATE":     true,
	"TABLE":         true,
	"INFO":          true,
	"JUSTIFICATION": true,
	"SUMMARY":       true,
}

// parseTagged handles the tagged-block dialect. It takes precedence over
// every other dialect because it is unambiguous and is what the system
// prompt asks for.
func parseTagged(raw string) (Result, bool) {
	matches := tagMarkerRe.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return Result{}, false
	}

	recognized := false
	for _, m := range matches {
		if recognizedTags[raw[m[2]:m[3]]] {
			recognized = true
			break
		}
	}
	if !recognized {
		return Result{}, false
	}

	var res Result
	res.Structured = true

	if preamble := strings.TrimSpace(raw[:matches[0][0]]); preamble != "" {
		res.Blocks = append(res.Blocks, ParsedBlock{Kind: BlockText, Text: preamble})
	}

	for i, m := range matches {
		tag := raw[m[2]:m[3]]
		inline := strings.TrimSpace(raw[m[4]:m[5]])
		end := len(raw)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(raw[m[1]:end])
		if inline != "" {
			body = strings.TrimSpace(inline + "\n" + body)
		}
		appendTaggedSegment(&res, tag, body)
	}

	return res, true
}

func appendTaggedSegment(res *Result, tag, body string) {
	switch tag {
	case "CANDIDATE":
		profile := parseCandidateBody(body)
		if profile.Valid() {
			res.Blocks = append(res.Blocks, ParsedBlock{Kind: BlockCandidate, Tag: tag, Candidate: &profile})
			res.Candidates = append(res.Candidates, profile)
			return
		}
		res.Blocks = append(res.Blocks, ParsedBlock{Kind: BlockText, Tag: tag, Text: body})
	case "TABLE":
		if table, profiles, ok := extractTable(body); ok {
			res.Blocks = append(res.Blocks, ParsedBlock{Kind: BlockTable, Tag: tag, Table: table})
			res.Candidates = append(res.Candidates, profiles...)
			return
		}
		res.Blocks = append(res.Blocks, ParsedBlock{Kind: BlockText, Tag: tag, Text: body})
	case "JUSTIFICATION":
		// a justification block elaborates on the preceding candidate
		if n := len(res.Candidates); n > 0 && res.Candidates[n-1].Justification == "" {
			res.Candidates[n-1].Justification = body
			for i := len(res.Blocks) - 1; i >= 0; i-- {
				if res.Blocks[i].Kind == BlockCandidate && res.Blocks[i].Candidate.Justification == "" {
					res.Blocks[i].Candidate.Justification = body
					break
				}
			}
		}
		res.Blocks = append(res.Blocks, ParsedBlock{Kind: BlockInfo, Tag: tag, Text: body})
	case "INFO", "SUMMARY":
		res.Blocks = append(res.Blocks, ParsedBlock{Kind: BlockInfo, Tag: tag, Text: body})
	default:
		res.Blocks = append(res.Blocks, ParsedBlock{Kind: BlockText, Tag: tag, Text: body})
	}
}

// parseCandidateBody reads the labeled lines of a CANDIDATE block. A
// bare first line doubles as the name when no Name label is present.
func parseCandidateBody(body string) models.CandidateProfile {
	var profile models.CandidateProfile
	lines := strings.Split(body, "\n")
	parseLabeledLines(&profile, lines)
	if profile.Name == "" {
		for _, line := range lines {
			line = stripMarkdown(strings.TrimSpace(line))
			if line == "" {
				continue
			}
			if _, _, labeled := splitLabeled(line); !labeled && len(strings.Fields(line)) <= 5 {
				profile.Name = line
			}
			break
		}
	}
	return profile
}
