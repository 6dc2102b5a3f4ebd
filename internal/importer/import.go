// Package importer turns uploaded resume files into plain text.
package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	mimePDF  = "application/pdf"
	mimeText = "text/plain"
)

// UnsupportedInputError reports a file type the importer cannot read.
type UnsupportedInputError struct {
	MimeType string
}

func (e *UnsupportedInputError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.MimeType)
}

// ExtractText extracts plain text from an in-memory upload. Plain text
// passes through as-is; PDFs go through text extraction.
func ExtractText(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	normalized := normalizeMimeType(mimeType, fileName)
	switch normalized {
	case mimeText:
		return extractPlain(data)
	case mimePDF:
		return extractPDF(data)
	default:
		return "", &UnsupportedInputError{MimeType: normalized}
	}
}

func extractPlain(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("text file is not valid UTF-8")
	}
	return strings.TrimSpace(string(data)), nil
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", errors.New("pdf contains no extractable text")
	}
	return text, nil
}

func normalizeMimeType(mimeType string, fileName string) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean != "" && clean != "application/octet-stream" {
		return clean
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt", ".md":
		return mimeText
	case ".pdf":
		return mimePDF
	default:
		return clean
	}
}
