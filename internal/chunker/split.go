package chunker

import (
	"strings"

	"github.com/nchouhan/ogni-scan/internal/models"
)

// Options bound chunk sizes. Every chunk except the final one lands
// within [MinSize, MaxSize] characters.
type Options struct {
	MinSize int
	MaxSize int
}

const (
	defaultMinSize = 500
	defaultMaxSize = 800
)

func (o Options) withDefaults() Options {
	if o.MinSize <= 0 {
		o.MinSize = defaultMinSize
	}
	if o.MaxSize <= o.MinSize {
		o.MaxSize = o.MinSize + defaultMaxSize - defaultMinSize
	}
	return o
}

// Split cuts normalized resume text into ordered chunks. Ordinals are
// assigned here, synchronously, 0..n-1 with no gaps; indexing never
// changes them. Empty or whitespace-only text yields zero chunks.
func Split(text string, opts Options) []models.ResumeChunk {
	opts = opts.withDefaults()
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	// Units small enough that greedy packing can always land in the band:
	// a flush only happens when the next unit plus its two-char separator
	// would overflow MaxSize, so capping units at MaxSize-MinSize-2 keeps
	// every flushed chunk at MinSize or above.
	unitLimit := opts.MaxSize - opts.MinSize - 2
	if unitLimit < 1 {
		unitLimit = 1
	}
	var units []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if len(p) <= unitLimit {
			units = append(units, p)
			continue
		}
		units = append(units, splitOversized(p, unitLimit)...)
	}

	var chunks []models.ResumeChunk
	var cur strings.Builder
	flush := func() {
		content := strings.TrimSpace(cur.String())
		cur.Reset()
		if content == "" {
			return
		}
		chunks = append(chunks, models.ResumeChunk{
			Ordinal: len(chunks),
			Content: content,
			CharLen: len(content),
			Section: classifySection(content),
		})
	}

	for _, u := range units {
		if cur.Len() > 0 && cur.Len()+len(u)+2 > opts.MaxSize {
			flush()
		}
		if cur.Len() > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(u)
	}
	flush()
	return chunks
}

// splitOversized breaks a paragraph into sentence pieces no longer than
// limit, hard-splitting at a word boundary when a single sentence is
// still too long.
func splitOversized(p string, limit int) []string {
	var pieces []string
	for _, s := range splitSentences(p) {
		if len(s) <= limit {
			pieces = append(pieces, s)
			continue
		}
		for len(s) > limit {
			end := limit
			// look for a clean break in the last tenth of the piece
			lookBack := limit / 10
			for i := end - 1; i >= end-lookBack && i > 0; i-- {
				if s[i] == ' ' || s[i] == '\n' {
					end = i
					break
				}
			}
			piece := strings.TrimSpace(s[:end])
			if piece != "" {
				pieces = append(pieces, piece)
			}
			s = strings.TrimSpace(s[end:])
		}
		if s != "" {
			pieces = append(pieces, s)
		}
	}
	return pieces
}

// splitSentences cuts text after sentence terminators without dropping
// any characters.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?', '\n':
			end := i + 1
			s := strings.TrimSpace(text[start:end])
			if s != "" {
				out = append(out, s)
			}
			start = end
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// sectionKeywords maps a section tag to heading words that signal it.
var sectionKeywords = []struct {
	tag   string
	words []string
}{
	{"experience", []string{"experience", "employment", "work history", "career"}},
	{"skills", []string{"skill", "technolog", "competenc", "tools"}},
	{"education", []string{"education", "academic", "university", "degree", "bachelor", "master"}},
	{"projects", []string{"project"}},
	{"summary", []string{"summary", "objective", "profile", "about me"}},
	{"certifications", []string{"certification", "certificate", "license"}},
}

// classifySection tags a chunk by the headings in its first lines,
// defaulting to "general" so filtering never deals with absence.
func classifySection(content string) string {
	lines := strings.SplitN(content, "\n", 3)
	if len(lines) > 2 {
		lines = lines[:2]
	}
	head := strings.ToLower(strings.Join(lines, " "))
	for _, sk := range sectionKeywords {
		for _, w := range sk.words {
			if strings.Contains(head, w) {
				return sk.tag
			}
		}
	}
	return models.SectionGeneral
}
