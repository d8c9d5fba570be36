package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapDocument(t *testing.T) {
	wrapped := wrapDocument(&RenderRequest{HTML: "<p>hi</p>", Title: "A & B"})
	assert.Contains(t, wrapped, "<!DOCTYPE html>")
	assert.Contains(t, wrapped, "<title>A &amp; B</title>")
	assert.Contains(t, wrapped, "<body><p>hi</p></body>")

	full := "<!DOCTYPE html><html><body>x</body></html>"
	assert.Equal(t, full, wrapDocument(&RenderRequest{HTML: full}))
}

func TestBuildPrintParams(t *testing.T) {
	params := buildPrintParams(&RenderRequest{Landscape: true})
	assert.InDelta(t, 8.5, params.PaperWidth, 0.001)
	assert.InDelta(t, 11, params.PaperHeight, 0.001)
	assert.True(t, params.Landscape)
	assert.InDelta(t, 12/25.4, params.MarginBottom, 0.001)

	withFooter := buildPrintParams(&RenderRequest{Paper: PaperA4, FooterHTML: "<span class=pageNumber></span>"})
	assert.InDelta(t, 210/25.4, withFooter.PaperWidth, 0.001)
	assert.True(t, withFooter.DisplayHeaderFooter)
	assert.InDelta(t, 15/25.4, withFooter.MarginBottom, 0.001)
}

func TestEstimatePageCount(t *testing.T) {
	assert.Equal(t, 1, estimatePageCount([]byte("%PDF")))
	data := []byte("<< /Type /Pages >> << /Type /Page >> << /Type /Page >> << /Type /Page >>")
	assert.Equal(t, 3, estimatePageCount(data))
}

func TestChromedpRenderer_RejectsEmptyHTML(t *testing.T) {
	r := NewChromedpRenderer(ChromedpConfig{})
	defer r.Close()

	_, err := r.Render(context.Background(), &RenderRequest{HTML: "   "})

	var re *RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, ErrCodeInvalidHTML, re.Code)
}
