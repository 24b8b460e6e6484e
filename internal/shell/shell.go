// Package shell implements the numbered-menu interactive loop over a task store.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"taskman/internal/logging"
	"taskman/internal/output"
	"taskman/internal/store"
)

const menu = `
=== Task Manager ===
1. Add Task
2. View Tasks
3. Mark Task as Complete
4. Delete Task
5. Exit
`

// Menu choices.
const (
	ChoiceAdd      = "1"
	ChoiceView     = "2"
	ChoiceComplete = "3"
	ChoiceDelete   = "4"
	ChoiceExit     = "5"
)

// Shell reads menu choices and field values from in and reports to out.
type Shell struct {
	store   *store.Store
	in      *bufio.Reader
	out     io.Writer
	printer *output.Printer
	logger  *log.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Shell) {
		s.logger = l
	}
}

// New creates a Shell over st.
func New(st *store.Store, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		store:   st,
		in:      bufio.NewReader(in),
		out:     out,
		printer: output.NewPrinter(out),
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loops until the user exits, input ends, ctx is cancelled or the
// store fails to save. Only the last two return a non-nil error.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, menu)
		choice, err := s.prompt("\nEnter your choice (1-5): ")
		if err != nil {
			return s.endOfInput(err)
		}
		// A signal may have arrived while blocked on input.
		if err := ctx.Err(); err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case ChoiceAdd:
			err = s.addTask()
		case ChoiceView:
			s.printer.Tasks(s.store.List())
		case ChoiceComplete:
			err = s.completeTask()
		case ChoiceDelete:
			err = s.deleteTask()
		case ChoiceExit:
			fmt.Fprintln(s.out, "\nGoodbye!")
			return nil
		default:
			fmt.Fprintln(s.out, "\nInvalid choice! Please try again.")
		}

		if err != nil {
			return s.endOfInput(err)
		}
	}
}

// endOfInput turns EOF into a clean exit and passes other errors through.
func (s *Shell) endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(s.out)
		s.logger.Debug("input closed, leaving shell")
		return nil
	}
	return err
}

func (s *Shell) addTask() error {
	title, err := s.prompt("Enter task title: ")
	if err != nil {
		return err
	}
	description, err := s.prompt("Enter task description: ")
	if err != nil {
		return err
	}

	task, err := s.store.Add(title, description)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "\nTask '%s' added successfully!\n", task.Title)
	return nil
}

func (s *Shell) completeTask() error {
	index, ok, err := s.readIndex("mark as complete")
	if err != nil || !ok {
		return err
	}

	task, err := s.store.Complete(index)
	if errors.Is(err, store.ErrInvalidIndex) {
		fmt.Fprintln(s.out, "\nInvalid task number!")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "\nTask '%s' marked as complete!\n", task.Title)
	return nil
}

func (s *Shell) deleteTask() error {
	index, ok, err := s.readIndex("delete")
	if err != nil || !ok {
		return err
	}

	task, err := s.store.Delete(index)
	if errors.Is(err, store.ErrInvalidIndex) {
		fmt.Fprintln(s.out, "\nInvalid task number!")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "\nTask '%s' deleted!\n", task.Title)
	return nil
}

// readIndex shows the list and asks for a task number.
// ok is false when there is nothing to select or the input was not a number.
func (s *Shell) readIndex(action string) (index int, ok bool, err error) {
	tasks := s.store.List()
	s.printer.Tasks(tasks)
	if len(tasks) == 0 {
		return 0, false, nil
	}

	input, err := s.prompt(fmt.Sprintf("\nEnter task number to %s: ", action))
	if err != nil {
		return 0, false, err
	}
	index, err = strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		fmt.Fprintln(s.out, "\nPlease enter a valid number!")
		return 0, false, nil
	}
	return index, true, nil
}

// prompt prints label and reads one line without its line ending.
// A final line without a newline is returned before io.EOF.
func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
