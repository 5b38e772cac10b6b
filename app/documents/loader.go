package documents

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	ErrUnsupportedType = errors.New("unsupported document type")
	ErrUnreadable      = errors.New("document contains no readable text")
)

// Allowed reports whether the filename has an ingestible extension.
func Allowed(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".md":
		return true
	}
	return false
}

// Load extracts the raw text of a PDF or Markdown file.
func Load(path string) (string, error) {
	var text string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = loadPDF(path)
	case ".md":
		text, err = loadMarkdown(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(path))
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", ErrUnreadable, filepath.Base(path))
	}

	return text, nil
}

// loadPDF concatenates the text of every page that yields any, in page order.
// Pages that fail extraction are skipped.
func loadPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("⚠️ Skipping page %d of %s: %v", i, filepath.Base(path), err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}

func loadMarkdown(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read markdown %s: %w", filepath.Base(path), err)
	}
	return string(data), nil
}
