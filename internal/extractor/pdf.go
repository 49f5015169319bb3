package extractor

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"docqa/internal/service"
)

// Page is one page of extracted document text.
type Page struct {
	Index int    // 0-based page index
	Text  string // sanitized text, empty for unreadable pages
}

// PDFExtractor extracts per-page plain text from PDF documents.
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract parses raw PDF bytes and returns one Page per document page, in
// page order. Pages whose text cannot be extracted yield empty text rather
// than an error; a document that cannot be opened at all is an extraction
// error fatal to that document.
func (e *PDFExtractor) Extract(data []byte) (pages []Page, err error) {
	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: malformed document: %v", service.ErrExtraction, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrExtraction, err)
	}

	numPages := reader.NumPage()
	pages = make([]Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := Page{Index: i - 1}

		p := reader.Page(i)
		if !p.V.IsNull() {
			if text, terr := p.GetPlainText(nil); terr == nil {
				page.Text = Sanitize(text)
			}
			// Extraction failures for individual pages are not fatal;
			// the page contributes no text.
		}

		pages = append(pages, page)
	}

	return pages, nil
}

// Sanitize drops any rune that does not round-trip through UTF-8 encoding:
// invalid byte sequences and unpaired surrogates. Characters are dropped,
// never replaced, so the remaining text keeps its original ordering.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == utf8.RuneError || utf16.IsSurrogate(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
