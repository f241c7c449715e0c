// Package report prints validation issues for humans.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/bianoble/fleetenv/internal/engine"
	"github.com/charmbracelet/lipgloss"
)

// Options controls report rendering.
type Options struct {
	// NoColor disables styling. Styling is also disabled when NO_COLOR is set
	// or w is not a terminal.
	NoColor bool
}

type styles struct {
	title   lipgloss.Style
	err     lipgloss.Style
	warning lipgloss.Style
	valid   lipgloss.Style
}

func newStyles(w io.Writer, opts Options) styles {
	if opts.NoColor || os.Getenv("NO_COLOR") != "" {
		plain := lipgloss.NewStyle()
		return styles{title: plain, err: plain, warning: plain, valid: plain}
	}
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true),
		err:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		valid:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
	}
}

// Write prints title, then error-severity issues, then warnings, and a final
// VALID or INVALID line. Info issues are listed with warnings.
func Write(w io.Writer, title string, issues []engine.Issue, opts Options) error {
	st := newStyles(w, opts)

	var errs, warns []engine.Issue
	for _, i := range issues {
		if i.Severity == engine.SeverityError {
			errs = append(errs, i)
		} else {
			warns = append(warns, i)
		}
	}

	p := &printer{w: w}
	if title != "" {
		p.line("%s", st.title.Render(title))
		p.line("")
	}

	if len(errs) > 0 {
		p.line("%s", st.err.Render(fmt.Sprintf("Errors (%d):", len(errs))))
		for _, i := range errs {
			p.line("  %s %s", st.err.Render("✗"), i)
		}
	}
	if len(warns) > 0 {
		p.line("%s", st.warning.Render(fmt.Sprintf("Warnings (%d):", len(warns))))
		for _, i := range warns {
			p.line("  %s %s", st.warning.Render("!"), i)
		}
	}
	if len(issues) == 0 {
		p.line("No issues found.")
	}

	p.line("")
	summary := fmt.Sprintf("(%s, %s)", plural(len(errs), "error"), plural(len(warns), "warning"))
	if len(errs) > 0 {
		p.line("%s %s", st.err.Render("INVALID"), summary)
	} else {
		p.line("%s %s", st.valid.Render("VALID"), summary)
	}
	return p.err
}

// printer stops writing after the first error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
