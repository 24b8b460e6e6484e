package service

import (
	"context"
	"fmt"
	"strings"

	"taskman/internal/store"
)

// MarkerPrefix starts the notes line that ties a remote task to a local task ID.
const MarkerPrefix = "taskman-id: "

// PushResult counts what a push did to the remote list.
type PushResult struct {
	Created   int
	Completed int
	Unchanged int
}

// Push mirrors local tasks into a remote list.
//
// Remote tasks are matched to local ones through the marker line in their
// notes. Unmatched local tasks are created; matched tasks completed locally
// but still open remotely are completed. Push never deletes remote tasks.
func Push(ctx context.Context, remote Remote, listID string, tasks []store.Task) (PushResult, error) {
	var result PushResult

	existing, err := remote.ListTasks(ctx, listID)
	if err != nil {
		return result, err
	}

	byID := make(map[string]Task, len(existing))
	for _, rt := range existing {
		if id, ok := LocalID(rt.Notes); ok {
			byID[id] = rt
		}
	}

	for _, task := range tasks {
		rt, ok := byID[task.ID]
		switch {
		case !ok:
			status := StatusNeedsAction
			if task.Completed() {
				status = StatusCompleted
			}
			created, err := remote.CreateTask(ctx, listID, Task{
				Title:  task.Title,
				Notes:  Notes(task),
				Status: status,
			})
			if err != nil {
				return result, fmt.Errorf("create task %q: %w", task.Title, err)
			}
			byID[task.ID] = created
			result.Created++
		case task.Completed() && !rt.Completed():
			if err := remote.CompleteTask(ctx, listID, rt.ID); err != nil {
				return result, fmt.Errorf("complete task %q: %w", task.Title, err)
			}
			result.Completed++
		default:
			result.Unchanged++
		}
	}

	return result, nil
}

// Notes builds the remote notes for a local task: its description followed
// by the marker line.
func Notes(task store.Task) string {
	marker := MarkerPrefix + task.ID
	if task.Description == "" {
		return marker
	}
	return task.Description + "\n\n" + marker
}

// LocalID extracts the local task ID from remote notes.
func LocalID(notes string) (string, bool) {
	for _, line := range strings.Split(notes, "\n") {
		if id, ok := strings.CutPrefix(strings.TrimSpace(line), MarkerPrefix); ok && id != "" {
			return id, true
		}
	}
	return "", false
}
