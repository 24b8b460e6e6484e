// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskman/internal/store"
)

const (
	// ListHeader precedes a non-empty task listing.
	ListHeader = "Your Tasks:"

	// EmptyMessage is printed instead of a listing when there are no tasks.
	EmptyMessage = "No tasks found!"

	// DoneSymbol and OpenSymbol mark completed and pending tasks.
	DoneSymbol = "✓"
	OpenSymbol = "□"
)

// Printer renders tasks to a writer. Styling is dropped automatically
// when the writer is not a colour terminal.
type Printer struct {
	w       io.Writer
	header  lipgloss.Style
	done    lipgloss.Style
	title   lipgloss.Style
	dimmed  lipgloss.Style
	warning lipgloss.Style
}

// NewPrinter creates a Printer bound to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		header:  r.NewStyle().Bold(true),
		done:    r.NewStyle().Foreground(lipgloss.Color("2")),
		title:   r.NewStyle().Bold(true).TabWidth(lipgloss.NoTabConversion),
		dimmed:  r.NewStyle().Faint(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// Tasks prints the full listing, or the empty message.
func (p *Printer) Tasks(tasks []store.Task) {
	if len(tasks) == 0 {
		fmt.Fprintf(p.w, "\n%s\n", p.warning.Render(EmptyMessage))
		return
	}

	fmt.Fprintf(p.w, "\n%s\n", p.header.Render(ListHeader))
	for i, task := range tasks {
		p.Task(i+1, task)
	}
}

// Task prints one task block.
// Format:
//
//	(blank line)
//	{N}. [{✓|□}] {TITLE}
//	   Description: {DESCRIPTION}
//	   Status: {STATUS}
//	   Created: {YYYY-MM-DD HH:MM}
func (p *Printer) Task(num int, task store.Task) {
	fmt.Fprintf(p.w, "\n%d. [%s] %s\n", num, p.symbol(task), p.renderTitle(task.Title))
	fmt.Fprintf(p.w, "   Description: %s\n", task.Description)
	fmt.Fprintf(p.w, "   Status: %s\n", task.Status)
	fmt.Fprintf(p.w, "   Created: %s\n", p.dimmed.Render(task.CreatedAt.String()))
}

// renderTitle styles single-line titles. lipgloss pads every line of a
// multi-line block to the same width, so those are written as is.
func (p *Printer) renderTitle(title string) string {
	if strings.ContainsAny(title, "\r\n") {
		return title
	}
	return p.title.Render(title)
}

func (p *Printer) symbol(task store.Task) string {
	if task.Completed() {
		return p.done.Render(DoneSymbol)
	}
	return OpenSymbol
}

// Symbol returns the unstyled status marker for a task.
func Symbol(task store.Task) string {
	if task.Completed() {
		return DoneSymbol
	}
	return OpenSymbol
}

// NormalizeTitle normalizes a task title for single-line display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
