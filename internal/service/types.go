package service

import (
	"errors"
	"fmt"
	"strings"
)

// Remote task statuses.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

var (
	// ErrNotFound is matched when a list or task does not exist remotely.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is matched when a list name matches more than one list.
	ErrAmbiguous = errors.New("ambiguous")
)

// Task represents a single remote task item.
type Task struct {
	ID     string
	Title  string
	Notes  string
	Status string // "needsAction" or "completed"
}

// Completed reports whether the remote task is completed.
func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}

// MatchList picks the list whose title equals name, ignoring case and
// surrounding space. It fails with ErrNotFound or ErrAmbiguous.
func MatchList(lists []TaskList, name string) (TaskList, error) {
	name = strings.TrimSpace(name)

	var found []TaskList
	for _, l := range lists {
		if strings.EqualFold(strings.TrimSpace(l.Title), name) {
			found = append(found, l)
		}
	}

	switch len(found) {
	case 0:
		return TaskList{}, fmt.Errorf("list %s: %w", name, ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return TaskList{}, fmt.Errorf("list %s: %w", name, ErrAmbiguous)
	}
}
