package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/require"
)

// buildDOCX writes a minimal word document with one paragraph per entry.
func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString("<w:p>")
		if p != "" {
			body.WriteString(`<w:r><w:t xml:space="preserve">`)
			require.NoError(t, xml.EscapeText(&body, []byte(p)))
			body.WriteString("</w:t></w:r>")
		}
		body.WriteString("</w:p>")
	}

	return buildDOCXFromBody(t, body.String())
}

func buildDOCXFromBody(t *testing.T, body string) []byte {
	t.Helper()

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body + `</w:body></w:document>`

	return buildZip(t, map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":   document,
	})
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

// buildPDF renders one page per entry, each line in its own cell.
func buildPDF(t *testing.T, pages ...[]string) []byte {
	t.Helper()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	for _, lines := range pages {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "", 12)
		for _, line := range lines {
			pdf.Cell(0, 10, line)
			pdf.Ln(10)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))

	return buf.Bytes()
}

type generateCall struct {
	prompt    string
	maxTokens int
}

// fakeGenerator replays queued results; an empty queue means unavailable.
type fakeGenerator struct {
	mu      sync.Mutex
	results []GenerationResult
	calls   []generateCall
}

func newFakeGenerator(results ...GenerationResult) *fakeGenerator {
	return &fakeGenerator{results: results}
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, maxOutputTokens int) GenerationResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, generateCall{prompt: prompt, maxTokens: maxOutputTokens})
	if len(f.results) == 0 {
		return generationUnavailable(errNoQueuedResult)
	}
	res := f.results[0]
	f.results = f.results[1:]
	return res
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var errNoQueuedResult = errors.New("no queued result")

func answerText(s string) *string {
	return &s
}
