package parser

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ExtractText pulls plain text out of a resume file. Binary format
// handling is delegated entirely to the format libraries.
func ExtractText(filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".pdf":
		return extractPDF(filePath)
	case ".docx":
		return extractDOCX(filePath)
	case ".txt":
		return extractText(filePath)
	default:
		return "", fmt.Errorf("unsupported file format: %s", ext)
	}
}

func extractPDF(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return "", err
	}

	var text strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		text.WriteString(pageText)
		text.WriteString("\n\n")
	}
	return text.String(), nil
}

var (
	paraCloseRe = regexp.MustCompile(`</w:p>`)
	xmlTagRe    = regexp.MustCompile(`<[^>]+>`)
)

func extractDOCX(filePath string) (string, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	// GetContent returns the document.xml body; paragraph closers become
	// newlines before the remaining markup is dropped.
	content := r.Editable().GetContent()
	content = paraCloseRe.ReplaceAllString(content, "\n")
	content = xmlTagRe.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}

func extractText(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var (
	crlfRe       = regexp.MustCompile(`\r\n?`)
	trailingRe   = regexp.MustCompile(`(?m)[ \t]+$`)
	multiBlankRe = regexp.MustCompile(`\n{3,}`)
)

// NormalizeText produces the canonical form that chunking operates on:
// unix newlines, no trailing spaces, at most one blank line in a row.
func NormalizeText(text string) string {
	text = crlfRe.ReplaceAllString(text, "\n")
	text = trailingRe.ReplaceAllString(text, "")
	text = multiBlankRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
