package service_test

import (
	"context"
	"errors"
	"testing"

	"taskman/internal/service"
	"taskman/internal/store"
	"taskman/internal/testutil"
)

func localTasks() []store.Task {
	return []store.Task{
		{ID: "a", Title: "Buy milk", Description: "2%", Status: store.StatusPending},
		{ID: "b", Title: "Call mom", Status: store.StatusCompleted},
	}
}

func TestPush_CreatesMissingTasks(t *testing.T) {
	remote := testutil.NewFakeRemote()

	result, err := service.Push(context.Background(), remote, testutil.DefaultListID, localTasks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != (service.PushResult{Created: 2}) {
		t.Errorf("expected 2 created, got %+v", result)
	}

	tasks := remote.Tasks(testutil.DefaultListID)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 remote tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "Buy milk" || tasks[0].Notes != "2%\n\ntaskman-id: a" || tasks[0].Completed() {
		t.Errorf("unexpected first task %+v", tasks[0])
	}
	if tasks[1].Notes != "taskman-id: b" || !tasks[1].Completed() {
		t.Errorf("unexpected second task %+v", tasks[1])
	}
}

func TestPush_Idempotent(t *testing.T) {
	remote := testutil.NewFakeRemote()
	ctx := context.Background()

	if _, err := service.Push(ctx, remote, testutil.DefaultListID, localTasks()); err != nil {
		t.Fatal(err)
	}
	result, err := service.Push(ctx, remote, testutil.DefaultListID, localTasks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != (service.PushResult{Unchanged: 2}) {
		t.Errorf("expected 2 unchanged, got %+v", result)
	}
	if remote.Calls["CreateTask"] != 2 {
		t.Errorf("expected 2 creates in total, got %d", remote.Calls["CreateTask"])
	}
}

func TestPush_CompletesRemoteTask(t *testing.T) {
	remote := testutil.NewFakeRemote()
	remote.AddTask(testutil.DefaultListID, service.Task{ID: "r1", Title: "Buy milk", Notes: "2%\n\ntaskman-id: a"})
	remote.AddTask(testutil.DefaultListID, service.Task{ID: "r2", Title: "Unrelated"})

	tasks := localTasks()
	tasks[0].Status = store.StatusCompleted

	result, err := service.Push(context.Background(), remote, testutil.DefaultListID, tasks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != (service.PushResult{Created: 1, Completed: 1}) {
		t.Errorf("expected 1 created and 1 completed, got %+v", result)
	}

	got := remote.Tasks(testutil.DefaultListID)
	if !got[0].Completed() {
		t.Error("expected r1 completed")
	}
	if got[1].Completed() {
		t.Error("unrelated remote task should be untouched")
	}
	if len(got) != 3 {
		t.Errorf("expected 3 remote tasks, got %d", len(got))
	}
}

func TestPush_ListError(t *testing.T) {
	remote := testutil.NewFakeRemote()
	remote.ListTasksErr = errors.New("request timed out")

	_, err := service.Push(context.Background(), remote, testutil.DefaultListID, localTasks())
	if err == nil || err.Error() != "request timed out" {
		t.Errorf("expected list error, got %v", err)
	}
}

func TestPush_CreateErrorStopsEarly(t *testing.T) {
	remote := testutil.NewFakeRemote()
	remote.CreateTaskErr = errors.New("boom")

	result, err := service.Push(context.Background(), remote, testutil.DefaultListID, localTasks())
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != `create task "Buy milk": boom` {
		t.Errorf("unexpected error %q", err.Error())
	}
	if result.Created != 0 {
		t.Errorf("expected nothing created, got %+v", result)
	}
}

func TestLocalID(t *testing.T) {
	tests := []struct {
		notes string
		id    string
		ok    bool
	}{
		{"taskman-id: abc", "abc", true},
		{"some text\n\ntaskman-id: abc", "abc", true},
		{"  taskman-id: abc  ", "abc", true},
		{"taskman-id: ", "", false},
		{"no marker", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		id, ok := service.LocalID(tt.notes)
		if id != tt.id || ok != tt.ok {
			t.Errorf("LocalID(%q) = %q, %v; want %q, %v", tt.notes, id, ok, tt.id, tt.ok)
		}
	}
}

func TestNotes(t *testing.T) {
	if got := service.Notes(store.Task{ID: "x"}); got != "taskman-id: x" {
		t.Errorf("unexpected notes %q", got)
	}
	if got := service.Notes(store.Task{ID: "x", Description: "d"}); got != "d\n\ntaskman-id: x" {
		t.Errorf("unexpected notes %q", got)
	}
}

func TestMatchList(t *testing.T) {
	lists := []service.TaskList{
		{ID: "1", Title: "Work"},
		{ID: "2", Title: " Home "},
		{ID: "3", Title: "Dup"},
		{ID: "4", Title: "dup"},
	}

	if l, err := service.MatchList(lists, "work"); err != nil || l.ID != "1" {
		t.Errorf("work: got %+v, %v", l, err)
	}
	if l, err := service.MatchList(lists, "home"); err != nil || l.ID != "2" {
		t.Errorf("home: got %+v, %v", l, err)
	}
	if _, err := service.MatchList(lists, "nope"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("nope: expected ErrNotFound, got %v", err)
	}
	if _, err := service.MatchList(lists, "DUP"); !errors.Is(err, service.ErrAmbiguous) {
		t.Errorf("dup: expected ErrAmbiguous, got %v", err)
	}
}
