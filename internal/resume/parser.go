// Package resume extracts plain text from uploaded PDF resumes.
package resume

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extraction failure kinds. Callers branch on these with errors.Is.
var (
	ErrNotFound   = errors.New("resume file not found")
	ErrUnreadable = errors.New("resume file could not be parsed")
	ErrEmpty      = errors.New("resume contains no extractable text")
)

var (
	blankLines = regexp.MustCompile(`\n{3,}`)
	spaceRuns  = regexp.MustCompile(` {2,}`)
)

// ExtractText reads the PDF at path and returns its cleaned plain text.
// Image-only PDFs yield ErrEmpty.
func ExtractText(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	text := cleanText(string(raw))
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\t", " ")
	text = blankLines.ReplaceAllString(text, "\n\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
