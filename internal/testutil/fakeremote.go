// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"taskman/internal/service"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// FakeRemote is an in-memory implementation of service.Remote for testing.
type FakeRemote struct {
	mu     sync.RWMutex
	lists  []service.TaskList
	tasks  map[string][]service.Task // listID -> tasks
	nextID int

	// Error injection for testing
	DefaultListErr  error
	ListListsErr    error
	ListTasksErr    error
	CreateTaskErr   error
	CompleteTaskErr error

	// Calls counts mutating calls by method name.
	Calls map[string]int
}

// NewFakeRemote creates a new FakeRemote with a default list.
func NewFakeRemote() *FakeRemote {
	f := &FakeRemote{
		tasks: make(map[string][]service.Task),
		Calls: make(map[string]int),
	}
	f.lists = []service.TaskList{
		{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
	}
	f.tasks[DefaultListID] = nil
	return f
}

// AddList adds a list to the fake remote.
func (f *FakeRemote) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
	if f.tasks[id] == nil {
		f.tasks[id] = nil
	}
}

// AddTask seeds a task into a list.
func (f *FakeRemote) AddTask(listID string, task service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if task.Status == "" {
		task.Status = service.StatusNeedsAction
	}
	f.tasks[listID] = append(f.tasks[listID], task)
}

// Tasks returns a copy of the tasks in a list.
func (f *FakeRemote) Tasks(listID string) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks[listID]))
	copy(result, f.tasks[listID])
	return result
}

// DefaultList implements service.Remote.
func (f *FakeRemote) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, errors.New("no default list")
}

// ListLists implements service.Remote.
func (f *FakeRemote) ListLists(ctx context.Context) ([]service.TaskList, error) {
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.TaskList, len(f.lists))
	copy(result, f.lists)
	return result, nil
}

// ResolveList implements service.Remote.
func (f *FakeRemote) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	lists, err := f.ListLists(ctx)
	if err != nil {
		return service.TaskList{}, err
	}

	return service.MatchList(lists, name)
}

// ListTasks implements service.Remote.
func (f *FakeRemote) ListTasks(ctx context.Context, listID string) ([]service.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, service.ErrNotFound
	}
	result := make([]service.Task, len(tasks))
	copy(result, tasks)
	return result, nil
}

// CreateTask implements service.Remote.
func (f *FakeRemote) CreateTask(ctx context.Context, listID string, task service.Task) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tasks[listID]; !ok {
		return service.Task{}, service.ErrNotFound
	}

	f.nextID++
	task.ID = fmt.Sprintf("remote-%d", f.nextID)
	if task.Status == "" {
		task.Status = service.StatusNeedsAction
	}
	f.tasks[listID] = append(f.tasks[listID], task)
	f.Calls["CreateTask"]++
	return task, nil
}

// CompleteTask implements service.Remote.
func (f *FakeRemote) CompleteTask(ctx context.Context, listID, taskID string) error {
	if f.CompleteTaskErr != nil {
		return f.CompleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return service.ErrNotFound
	}

	for i, t := range tasks {
		if t.ID == taskID {
			f.tasks[listID][i].Status = service.StatusCompleted
			f.Calls["CompleteTask"]++
			return nil
		}
	}
	return service.ErrNotFound
}
