package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles for the text report.
type Styles struct {
	Path      lipgloss.Style
	Separator lipgloss.Style
	ASCII     lipgloss.Style
	NonASCII  lipgloss.Style
	Offset    lipgloss.Style
}

// NewStyles creates the default color styles bound to r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Path:      r.NewStyle().Foreground(lipgloss.Color("5")), // magenta
		Separator: r.NewStyle().Foreground(lipgloss.Color("6")), // cyan
		ASCII:     r.NewStyle().Foreground(lipgloss.Color("2")), // green
		NonASCII:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Offset:    r.NewStyle().Foreground(lipgloss.Color("3")), // yellow
	}
}

// NoStyles returns styles with no coloring.
func NoStyles() Styles {
	return Styles{
		Path:      lipgloss.NewStyle(),
		Separator: lipgloss.NewStyle(),
		ASCII:     lipgloss.NewStyle(),
		NonASCII:  lipgloss.NewStyle(),
		Offset:    lipgloss.NewStyle(),
	}
}

// ColorRenderer returns a renderer for w that always emits ANSI colors,
// whatever w is attached to.
func ColorRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)
	return r
}

// IsTerminal reports whether fd is a terminal.
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// StdoutIsTerminal returns true if stdout is a terminal.
func StdoutIsTerminal() bool {
	return IsTerminal(os.Stdout.Fd())
}
