// Package upload turns an uploaded assignment file into text.
package upload

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Placeholder stands in for any file that could not be decoded.
const Placeholder = "(Unable to decode file. Please paste your text below.)"

// MaxSize is the largest upload accepted, in bytes.
const MaxSize = 10 << 20

// Extensions lists the accepted file types.
var Extensions = []string{".txt", ".md", ".pdf"}

// ExtractText decodes data according to the extension of name. On any
// failure it returns Placeholder and false so the caller can continue.
func ExtractText(name string, data []byte) (string, bool) {
	if len(data) == 0 || len(data) > MaxSize {
		return Placeholder, false
	}

	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".markdown":
		text, err = extractUTF8(data)
	case ".pdf":
		text, err = extractPDF(data)
	default:
		return Placeholder, false
	}
	if err != nil || strings.TrimSpace(text) == "" {
		return Placeholder, false
	}
	return text, true
}

func extractUTF8(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", fmt.Errorf("not valid UTF-8")
	}
	return string(data), nil
}

func extractPDF(data []byte) (text string, err error) {
	// The PDF parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parse: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return collapseWhitespace(string(b)), nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
