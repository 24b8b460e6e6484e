// Package ui provides the full-screen task browser.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskman/internal/output"
	"taskman/internal/store"
)

// ErrNoTTY is returned by Run when the output is not a terminal.
var ErrNoTTY = errors.New("tui requires a terminal")

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	footerKeyHelp = "↑/k ↓/j move • c/enter complete • d/x delete • r reload • ? help • q quit"
)

// Run starts the browser over st and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, st *store.Store, in io.Reader, out io.Writer) error {
	if !IsTTY(out) {
		return ErrNoTTY
	}

	program := tea.NewProgram(NewModel(st),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// Model is the bubbletea model of the browser.
type Model struct {
	store    *store.Store
	tasks    []store.Task
	cursor   int
	status   string
	err      error
	showHelp bool
}

// NewModel creates a model showing the current contents of st.
func NewModel(st *store.Store) *Model {
	m := &Model{store: st}
	m.sync()
	return m
}

// Cursor returns the 0-based row under the cursor.
func (m *Model) Cursor() int { return m.cursor }

// Status returns the status line text.
func (m *Model) Status() string {
	if m.err != nil {
		return "error: " + m.err.Error()
	}
	return m.status
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}

	// The list is hidden behind the help screen, so only closing it works.
	if m.showHelp {
		if k := key.String(); k == "?" || k == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "c", "enter":
		m.complete()
	case "d", "x":
		m.delete()
	case "r":
		m.reload()
	case "?":
		m.showHelp = true
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("=== Task Manager ===") + "\n\n")

	if m.showHelp {
		b.WriteString(helpText)
		return b.String()
	}

	if len(m.tasks) == 0 {
		b.WriteString(dimStyle.Render(output.EmptyMessage) + "\n")
	}
	for i, task := range m.tasks {
		b.WriteString(m.row(i, task) + "\n")
	}

	b.WriteString("\n")
	if line := m.Status(); line != "" {
		if m.err != nil {
			line = errorStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(dimStyle.Render(footerKeyHelp) + "\n")
	return b.String()
}

func (m *Model) row(i int, task store.Task) string {
	pointer := "  "
	if i == m.cursor {
		pointer = cursorStyle.Render("> ")
	}

	symbol := output.Symbol(task)
	if task.Completed() {
		symbol = doneStyle.Render(symbol)
	}

	line := fmt.Sprintf("%s%d. [%s] %s", pointer, i+1, symbol, output.NormalizeTitle(task.Title))
	if task.Description != "" {
		line += dimStyle.Render("  " + output.NormalizeTitle(task.Description))
	}
	return line
}

func (m *Model) complete() {
	if len(m.tasks) == 0 {
		return
	}
	task, err := m.store.Complete(m.cursor + 1)
	m.after(err, fmt.Sprintf("Task '%s' marked as complete!", task.Title))
}

func (m *Model) delete() {
	if len(m.tasks) == 0 {
		return
	}
	task, err := m.store.Delete(m.cursor + 1)
	m.after(err, fmt.Sprintf("Task '%s' deleted!", task.Title))
}

func (m *Model) reload() {
	m.after(m.store.Reload(), "Reloaded "+m.store.Path())
}

func (m *Model) after(err error, status string) {
	m.err = err
	m.status = ""
	if err == nil {
		m.status = status
	}
	m.sync()
}

// sync refreshes the local copy and keeps the cursor on a valid row.
func (m *Model) sync() {
	m.tasks = m.store.List()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

const helpText = `Keys:
  up, k        move up
  down, j      move down
  c, enter     mark the selected task as complete
  d, x         delete the selected task
  r            reload the store file
  ?, esc       toggle this help
  q, ctrl+c    quit
`

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
