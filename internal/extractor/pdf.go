// Package extractor inspects contract PDFs before they are uploaded.
package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/vakeel-gateway/internal/utils"
	"github.com/ledongthuc/pdf"
)

// EmptyTextWarning is logged when a PDF has no text layer.
const EmptyTextWarning = "Extracted text is empty. Ensure the PDF is not scanned."

var ErrEmptyDocument = errors.New("document is empty")

// Report describes what could be read out of a PDF.
type Report struct {
	Pages int
	Text  string
}

func (r *Report) HasText() bool {
	return r != nil && r.Text != ""
}

// InspectPDF counts the pages of a PDF and pulls out its plain text. Pages
// that fail to decode are skipped.
func InspectPDF(data []byte) (*Report, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF reader: %w", err)
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return &Report{
		Pages: numPages,
		Text:  strings.TrimSpace(textBuilder.String()),
	}, nil
}

// Check runs InspectPDF and only logs what it finds. The upload goes ahead
// whatever the result, so the returned report may be nil.
func Check(filename string, data []byte, logger *utils.Logger) *Report {
	report, err := InspectPDF(data)
	if err != nil {
		logger.Warn("Could not inspect PDF", "file", filename, "error", err)
		return nil
	}
	if !report.HasText() {
		logger.Warn(EmptyTextWarning, "file", filename, "pages", report.Pages)
		return report
	}

	logger.Debug("PDF inspected", "file", filename, "pages", report.Pages, "chars", len(report.Text))
	return report
}
