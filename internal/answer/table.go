package answer

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/nchouhan/ogni-scan/internal/models"
)

var tableMarkdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// parseTable handles the markdown-table dialect: a pipe-delimited table
// whose header row includes Name and Skills columns. Rows map to
// candidate records by fixed column position.
func parseTable(raw string) (Result, bool) {
	table, profiles, ok := extractTable(raw)
	if !ok {
		return Result{}, false
	}

	res := Result{Structured: true}
	res.Blocks = append(res.Blocks, ParsedBlock{Kind: BlockTable, Table: table})
	for i := range profiles {
		res.Blocks = append(res.Blocks, ParsedBlock{Kind: BlockCandidate, Candidate: &profiles[i]})
	}
	res.Candidates = profiles
	return res, true
}

// extractTable finds the first GFM table in the text and, when its
// header qualifies, converts body rows into profiles.
func extractTable(raw string) (*TableBlock, []models.CandidateProfile, bool) {
	src := []byte(raw)
	doc := tableMarkdown.Parser().Parse(text.NewReader(src))

	var tableNode *east.Table
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*east.Table); ok {
				tableNode = t
				return ast.WalkStop, nil
			}
		}
		return ast.WalkContinue, nil
	})
	if tableNode == nil {
		return nil, nil, false
	}

	block := &TableBlock{}
	for row := tableNode.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, nodeText(cell, src))
		}
		if _, isHeader := row.(*east.TableHeader); isHeader {
			block.Headers = cells
			continue
		}
		block.Rows = append(block.Rows, cells)
	}

	columns := mapColumns(block.Headers)
	if _, hasName := columns["name"]; !hasName {
		return nil, nil, false
	}
	if _, hasSkills := columns["skills"]; !hasSkills {
		return nil, nil, false
	}

	var profiles []models.CandidateProfile
	for _, row := range block.Rows {
		profile := rowToProfile(columns, row)
		if profile.Valid() {
			profiles = append(profiles, profile)
		}
	}
	return block, profiles, true
}

// mapColumns resolves header cells to profile fields by keyword.
func mapColumns(headers []string) map[string]int {
	columns := make(map[string]int, len(headers))
	assign := func(field string, idx int) {
		if _, taken := columns[field]; !taken {
			columns[field] = idx
		}
	}
	for i, h := range headers {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(h, "name") || strings.Contains(h, "candidate"):
			assign("name", i)
		case strings.Contains(h, "skill"):
			assign("skills", i)
		case strings.Contains(h, "role") || strings.Contains(h, "title") || strings.Contains(h, "position"):
			assign("role", i)
		case strings.Contains(h, "company") || strings.Contains(h, "employer"):
			assign("company", i)
		case strings.Contains(h, "experience"):
			assign("experience", i)
		case strings.Contains(h, "relevance") || strings.Contains(h, "match") || strings.Contains(h, "score"):
			assign("relevance", i)
		case strings.Contains(h, "justification") || strings.Contains(h, "why") || strings.Contains(h, "reason"):
			assign("justification", i)
		}
	}
	return columns
}

func rowToProfile(columns map[string]int, row []string) models.CandidateProfile {
	at := func(field string) string {
		idx, ok := columns[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return stripMarkdown(strings.TrimSpace(row[idx]))
	}

	profile := models.CandidateProfile{
		Name:          at("name"),
		Role:          at("role"),
		Company:       at("company"),
		Experience:    at("experience"),
		Justification: at("justification"),
	}
	if skills := at("skills"); skills != "" {
		profile.Skills = splitSkills(skills)
	}
	if rel := at("relevance"); rel != "" {
		profile.Relevance = models.NormalizeRelevance(rel)
	}
	return profile
}

// nodeText collects the plain text beneath an AST node.
func nodeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*ast.Text); ok {
				sb.Write(t.Segment.Value(src))
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
