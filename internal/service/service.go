// Package service defines the backend-agnostic interface for remote task lists.
package service

import "context"

// Remote defines the operations push needs from a remote task backend.
// Commands never import the Google SDK directly.
type Remote interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ListLists returns all task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns an error matching ErrNotFound or ErrAmbiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// ListTasks returns every task in a list, completed and hidden included.
	ListTasks(ctx context.Context, listID string) ([]Task, error)

	// CreateTask creates a task and returns it with its remote ID.
	CreateTask(ctx context.Context, listID string, task Task) (Task, error)

	// CompleteTask marks a task as completed.
	CompleteTask(ctx context.Context, listID, taskID string) error
}
