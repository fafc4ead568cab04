package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent  = lipgloss.Color("#D97706")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
)

// styles are bound to a renderer so colour support follows the destination
// writer rather than os.Stdout. A non-terminal writer gets plain text.
type styles struct {
	header lipgloss.Style
	title  lipgloss.Style
	dim    lipgloss.Style
	pass   lipgloss.Style
	fail   lipgloss.Style
	warn   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		header: r.NewStyle().Bold(true).Foreground(accent),
		title:  r.NewStyle().Bold(true),
		dim:    r.NewStyle().Foreground(dim),
		pass:   r.NewStyle().Bold(true).Foreground(success),
		fail:   r.NewStyle().Bold(true).Foreground(danger),
		warn:   r.NewStyle().Foreground(warning),
	}
}
