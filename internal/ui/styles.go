package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/signalsfoundry/station-journal/core"
)

// Palette.
var (
	colorOK       = lipgloss.Color("#22c55e")
	colorInactive = lipgloss.Color("#ef4444")
	colorNeutral  = lipgloss.Color("#a1a1aa")
	colorError    = lipgloss.Color("#f97316")
	colorAccent   = lipgloss.Color("#38bdf8")
)

// Styles holds every lipgloss style used for terminal output.
type Styles struct {
	OK       lipgloss.Style
	Inactive lipgloss.Style
	None     lipgloss.Style
	Invalid  lipgloss.Style
	Error    lipgloss.Style
	Saved    lipgloss.Style

	Title    lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
}

// NewStyles builds the styles against r, which decides the color profile.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		OK:       r.NewStyle().Foreground(colorOK).Bold(true),
		Inactive: r.NewStyle().Foreground(colorInactive).Bold(true),
		None:     r.NewStyle().Foreground(colorNeutral),
		Invalid:  r.NewStyle().Foreground(colorError),
		Error:    r.NewStyle().Foreground(colorError).Bold(true),
		Saved:    r.NewStyle().Foreground(colorOK),

		Title: r.NewStyle().
			Foreground(colorAccent).
			Bold(true),
		Cursor:   r.NewStyle().Foreground(colorAccent),
		Selected: r.NewStyle().Foreground(colorAccent).Bold(true),
		Muted:    r.NewStyle().Foreground(colorNeutral),
	}
}

// DefaultStyles uses the renderer for stdout.
func DefaultStyles() Styles {
	return NewStyles(lipgloss.DefaultRenderer())
}

// Highlight colors every status symbol in text.
func (s Styles) Highlight(text string) string {
	return strings.NewReplacer(
		core.SymbolOK, s.OK.Render(core.SymbolOK),
		core.SymbolInactive, s.Inactive.Render(core.SymbolInactive),
		core.SymbolNone, s.None.Render(core.SymbolNone),
		core.SymbolInvalid, s.Invalid.Render(core.SymbolInvalid),
		core.SymbolError, s.Error.Render(core.SymbolError),
		core.SymbolSaved, s.Saved.Render(core.SymbolSaved),
	).Replace(text)
}

// HighlightWriter highlights status symbols on their way to W. Symbols split
// across two writes are not highlighted; the station writes whole lines.
type HighlightWriter struct {
	W      io.Writer
	Styles Styles
}

// Write implements io.Writer. It reports len(p) on success.
func (h HighlightWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(h.W, h.Styles.Highlight(string(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}
