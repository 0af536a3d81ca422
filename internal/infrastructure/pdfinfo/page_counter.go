package pdfinfo

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/eskiturk2021/api-gateway/internal/domain/documents"

	"github.com/ledongthuc/pdf"
)

// ErrNotPDF is returned for content that does not start with a PDF header
var ErrNotPDF = errors.New("content is not a PDF document")

var pdfHeader = []byte("%PDF-")

// pageCounter implements documents.PageCounter on top of ledongthuc/pdf
type pageCounter struct{}

// NewPageCounter returns a PageCounter for PDF documents
func NewPageCounter() documents.PageCounter {
	return &pageCounter{}
}

// CountPages returns the page count recorded in the document's page tree
func (c *pageCounter) CountPages(content []byte) (pages int, err error) {
	if !bytes.HasPrefix(content, pdfHeader) {
		return 0, ErrNotPDF
	}

	// the parser panics on some malformed cross reference tables
	defer func() {
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0, fmt.Errorf("failed to parse PDF: %w", err)
	}
	return reader.NumPage(), nil
}
