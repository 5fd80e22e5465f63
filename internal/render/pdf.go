package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF turns a laid-out document into PDF bytes. Pagination already
// happened in Layout, so the writer only positions text.
func WritePDF(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, block := range page.Blocks {
			style := ""
			if block.Bold {
				style = "B"
			}
			pdf.SetFont("Helvetica", style, block.Size)
			pdf.Text(block.X, block.Y, translate(block.Text))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
