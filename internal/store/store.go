// Package store owns the ordered task list and its JSON file.
//
// Every mutation rewrites the whole file. Positions passed to Complete,
// Delete and Get are 1-based, matching what users see in listings.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Store holds the task list for a single store file.
// It is not safe for concurrent use.
type Store struct {
	path   string
	tasks  []Task
	now    func() time.Time
	newID  func() string
	logger *log.Logger

	// unsavedIDs is set when Reload generated ids that are not on disk yet.
	unsavedIDs bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for created_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDFunc sets the generator for task IDs.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithLogger sets the logger for load/save diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// New creates an empty store bound to path without reading it.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store bound to path and loads it.
// A missing file yields an empty store.
func Open(path string, opts ...Option) (*Store, error) {
	s := New(path, opts...)
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Empty reports whether the store holds no tasks.
func (s *Store) Empty() bool {
	return len(s.tasks) == 0
}

// List returns a copy of the tasks in order.
func (s *Store) List() []Task {
	return slices.Clone(s.tasks)
}

// Get returns the task at a 1-based position.
func (s *Store) Get(index int) (Task, error) {
	i, err := s.position(index)
	if err != nil {
		return Task{}, err
	}
	return s.tasks[i], nil
}

// Add appends a pending task stamped with the current time and persists.
func (s *Store) Add(title, description string) (Task, error) {
	task := Task{
		ID:          s.newID(),
		Title:       title,
		Description: description,
		Status:      StatusPending,
		CreatedAt:   NewTimestamp(s.now()),
	}

	n := len(s.tasks)
	s.tasks = append(s.tasks, task)
	if err := s.Persist(); err != nil {
		s.tasks = s.tasks[:n]
		return Task{}, fmt.Errorf("save tasks: %w", err)
	}

	s.logger.Debug("added task", "id", task.ID, "position", n+1)
	return task, nil
}

// Complete marks the task at a 1-based position completed and persists.
// Completing an already completed task is a no-op.
func (s *Store) Complete(index int) (Task, error) {
	i, err := s.position(index)
	if err != nil {
		return Task{}, err
	}
	if s.tasks[i].Completed() {
		return s.tasks[i], nil
	}

	s.tasks[i].Status = StatusCompleted
	if err := s.Persist(); err != nil {
		s.tasks[i].Status = StatusPending
		return Task{}, fmt.Errorf("save tasks: %w", err)
	}

	s.logger.Debug("completed task", "id", s.tasks[i].ID, "position", index)
	return s.tasks[i], nil
}

// Delete removes the task at a 1-based position and persists.
// Later tasks move up by one position.
func (s *Store) Delete(index int) (Task, error) {
	i, err := s.position(index)
	if err != nil {
		return Task{}, err
	}

	removed := s.tasks[i]
	prev := s.tasks
	s.tasks = slices.Delete(slices.Clone(s.tasks), i, i+1)
	if err := s.Persist(); err != nil {
		s.tasks = prev
		return Task{}, fmt.Errorf("save tasks: %w", err)
	}

	s.logger.Debug("deleted task", "id", removed.ID, "position", index)
	return removed, nil
}

// Persist overwrites the store file with the full task list.
func (s *Store) Persist() error {
	tasks := s.tasks
	if tasks == nil {
		tasks = []Task{}
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}

	s.unsavedIDs = false
	s.logger.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

// PersistIDs writes the file if Reload had to generate ids, so that the
// ids stay the same across runs. It does nothing otherwise.
func (s *Store) PersistIDs() error {
	if !s.unsavedIDs {
		return nil
	}
	if err := s.Persist(); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// Reload replaces the in-memory list with the contents of the store file.
// A missing or blank file yields an empty list. Content that is not a valid
// task list returns an error matching ErrMalformed and leaves the store unchanged.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.tasks = nil
		s.unsavedIDs = false
		s.logger.Debug("store file not found, starting empty", "path", s.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read store file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.tasks = nil
		s.unsavedIDs = false
		return nil
	}

	tasks, err := decode(data)
	if err != nil {
		return &ParseError{Path: s.path, Err: err}
	}

	generated := 0
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = s.newID()
			generated++
		}
	}
	s.tasks = tasks
	s.unsavedIDs = generated > 0
	if generated > 0 {
		s.logger.Debug("generated missing task ids", "count", generated)
	}

	s.logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return nil
}

// position converts a 1-based index to a slice offset.
func (s *Store) position(index int) (int, error) {
	if index < 1 || index > len(s.tasks) {
		return 0, &IndexError{Index: index, Len: len(s.tasks)}
	}
	return index - 1, nil
}
