package upload

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		data   []byte
		want   string
		wantOK bool
	}{
		{"plain text", "essay.txt", []byte("Goroutines are cheap."), "Goroutines are cheap.", true},
		{"markdown", "NOTES.MD", []byte("# Notes\n\n- channels"), "# Notes\n\n- channels", true},
		{"utf8 bom stripped", "a.txt", []byte("\xef\xbb\xbfhello"), "hello", true},
		{"invalid utf8", "a.txt", []byte{0xff, 0xfe, 0xfd}, Placeholder, false},
		{"whitespace only", "a.md", []byte("  \n\t"), Placeholder, false},
		{"empty", "a.txt", nil, Placeholder, false},
		{"unsupported extension", "a.docx", []byte("PK..."), Placeholder, false},
		{"no extension", "README", []byte("hello"), Placeholder, false},
		{"broken pdf", "a.pdf", []byte("%PDF-1.4 this is not really a pdf"), Placeholder, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractText(tt.file, tt.data)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractText_TooLarge(t *testing.T) {
	data := bytes.Repeat([]byte("a"), MaxSize+1)
	got, ok := ExtractText("big.txt", data)
	assert.False(t, ok)
	assert.Equal(t, Placeholder, got)
}
