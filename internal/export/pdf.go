// Package export renders analysis output as downloadable PDF files.
package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	// ResumeFileName is the download name for the tailored resume.
	ResumeFileName = "Aptly_Tailored_Resume.pdf"
	// CoverLetterFileName is the download name for the cover letter.
	CoverLetterFileName = "Aptly_Cover_Letter.pdf"

	fontFamily = "Helvetica"
	fontSize   = 11.0
	lineHeight = 5.0
	textWidth  = 180.0
)

// RenderPDF lays the text out as a simple single-column A4 document.
func RenderPDF(text string) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetFont(fontFamily, "", fontSize)
	doc.AddPage()

	// gofpdf's core fonts are cp1252; translate what we can and let
	// the rest degrade rather than fail the download.
	translate := doc.UnicodeTranslatorFromDescriptor("")
	doc.MultiCell(textWidth, lineHeight, translate(text), "", "L", false)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
