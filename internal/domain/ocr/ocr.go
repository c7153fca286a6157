// Package ocr reads the JSON page dumps produced by the external OCR
// stage and pulls certificate metadata out of the recognized text. The
// OCR engine itself (PDF to image to text) is an external collaborator;
// this package only consumes its output.
package ocr

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Unknown is the placeholder for metadata the page does not carry.
const Unknown = "UNKNOWN"

// Page is one OCR'd certificate page.
type Page struct {
	PDFFile string `json:"pdf_file"`
	Text    string `json:"ocr_text"`
}

// Document is one certificate's OCR dump: the JSON file plus its pages.
type Document struct {
	Path  string
	Pages []Page
}

// FirstPage returns the leading page; certificates are almost always a
// single page and the lot field is on it.
func (d *Document) FirstPage() (Page, bool) {
	if len(d.Pages) == 0 {
		return Page{}, false
	}
	return d.Pages[0], true
}

// LoadPages reads one OCR JSON dump.
func LoadPages(path string) ([]Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ocr dump: %w", err)
	}
	var pages []Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("decode ocr dump %s: %w", path, err)
	}
	return pages, nil
}

// LoadDir loads every "*_ocr.json" dump in dir. A dump that fails to
// decode is skipped; the rest of the directory still loads.
func LoadDir(dir string) ([]Document, []error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*_ocr.json"))
	if err != nil {
		return nil, []error{err}
	}

	var docs []Document
	var errs []error
	for _, path := range matches {
		pages, err := LoadPages(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		docs = append(docs, Document{Path: path, Pages: pages})
	}
	return docs, errs
}

var certNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Certificate\s*(?:Number|No\.?)?\s*[:：]\s*([A-Za-z]+[-–]\d+)`),
	regexp.MustCompile(`(?i)(Dokki[-–]\d+)`),
	regexp.MustCompile(`(?i)(ISM[-–]\d+)`),
}

var productPattern = regexp.MustCompile(`(?i)Sample\s*[:：]\s*([A-Za-z]{3,20})`)

// CertificateNumber pulls the issuing body's certificate identifier off
// the page text, or Unknown when no known pattern matches.
func CertificateNumber(text string) string {
	for _, pattern := range certNumberPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return Unknown
}

// ProductName pulls the sampled product name off the page text.
func ProductName(text string) string {
	if m := productPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return Unknown
}
