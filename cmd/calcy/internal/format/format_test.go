package format

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestFitLeft(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "fits", in: "12+34", width: 10, want: "12+34"},
		{name: "exact", in: "12345", width: 5, want: "12345"},
		{name: "keeps tail", in: "123456789", width: 5, want: "…6789"},
		{name: "zero width", in: "123", width: 0, want: ""},
		{name: "empty", in: "", width: 4, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitLeft(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, runewidth.StringWidth(got), max(tt.width, 0))
		})
	}
}

func TestPadLeft(t *testing.T) {
	assert.Equal(t, "   42", PadLeft("42", 5))
	assert.Equal(t, "123456", PadLeft("123456", 3))
}

func TestRenderMarkdown_WithoutRenderer(t *testing.T) {
	mdRendererMu.Lock()
	saved := mdRenderer
	mdRenderer = nil
	mdRendererMu.Unlock()
	t.Cleanup(func() {
		mdRendererMu.Lock()
		mdRenderer = saved
		mdRendererMu.Unlock()
	})

	assert.Equal(t, "# title", RenderMarkdown("# title"))
}

func TestRenderMarkdown(t *testing.T) {
	InitMarkdownRenderer(60)
	out := RenderMarkdown(HelpMarkdown)
	assert.Contains(t, out, "Backspace")
}
