package format

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/mattn/go-runewidth"
)

// IsDarkBG is set once before bubbletea starts (in main.go) so that glamour
// never issues its own OSC 11 query while the program is running.
var IsDarkBG = true

// Ellipsis marks text cut from the left of the display.
const Ellipsis = "…"

// mdRenderer renders markdown to terminal-formatted output.
var (
	mdRenderer      *glamour.TermRenderer
	mdRendererMu    sync.Mutex
	mdRendererWidth int
)

// InitMarkdownRenderer initializes the glamour renderer at the given width.
func InitMarkdownRenderer(width int) {
	if width <= 0 {
		width = 60
	}
	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	if width == mdRendererWidth && mdRenderer != nil {
		return
	}
	// glamour.WithAutoStyle() queries the terminal (OSC 11), which races with
	// bubbletea's input reader; use the pre-detected background instead.
	style := glamourstyles.LightStyleConfig
	if IsDarkBG {
		style = glamourstyles.DarkStyleConfig
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return
	}
	mdRenderer = r
	mdRendererWidth = width
}

// RenderMarkdown converts markdown text to terminal-formatted output. The
// text is returned unchanged when no renderer is available.
func RenderMarkdown(text string) string {
	mdRendererMu.Lock()
	r := mdRenderer
	mdRendererMu.Unlock()
	if r == nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// FitLeft keeps the right-hand end of s, the part being typed, within width
// terminal cells. Cut text is replaced by a leading ellipsis.
func FitLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}

	budget := width - runewidth.StringWidth(Ellipsis)
	runes := []rune(s)
	start := len(runes)
	used := 0
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > budget {
			break
		}
		used += w
		start--
	}

	return Ellipsis + string(runes[start:])
}

// PadLeft right-aligns s in a field of width cells.
func PadLeft(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap) + s
}

// HelpMarkdown is the help screen shown with '?'.
const HelpMarkdown = `# calcy

| Key | Action |
|---|---|
| ` + "`0-9` `.`" + ` | enter digits |
| ` + "`+ - * /`" + ` | operator (replaces a trailing one) |
| ` + "`Enter` `=`" + ` | evaluate |
| ` + "`Backspace`" + ` | delete last character |
| ` + "`Esc` `c`" + ` | clear |
| ` + "`?`" + ` | toggle this help |
| ` + "`q` `ctrl+c`" + ` | quit |

After **=**, a digit starts a new expression and an operator continues from the result.
`
