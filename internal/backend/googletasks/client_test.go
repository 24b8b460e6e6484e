package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskman/internal/config"
	"taskman/internal/service"
)

// newTestClient serves handler over httptest and points a Client at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewWithHTTPClient(context.Background(), server.Client(), server.URL+"/")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestListTasks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || !strings.HasSuffix(r.URL.Path, "/tasks") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("showCompleted") != "true" {
			t.Errorf("expected showCompleted=true, got %q", r.URL.RawQuery)
		}
		writeJSON(t, w, map[string]any{
			"items": []map[string]any{
				{"id": "t1", "title": "Buy milk", "notes": "taskman-id: a", "status": "needsAction"},
				{"id": "t2", "title": "Call mom", "status": "completed"},
			},
		})
	})

	got, err := client.ListTasks(context.Background(), DefaultListID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	if got[0].ID != "t1" || got[0].Notes != "taskman-id: a" || got[0].Completed() {
		t.Errorf("unexpected first task %+v", got[0])
	}
	if !got[1].Completed() {
		t.Errorf("expected second task completed, got %+v", got[1])
	}
}

func TestCreateTask(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["title"] != "Buy milk" || body["notes"] != "taskman-id: a" {
			t.Errorf("unexpected body %v", body)
		}
		body["id"] = "new-1"
		writeJSON(t, w, body)
	})

	created, err := client.CreateTask(context.Background(), DefaultListID, service.Task{
		Title:  "Buy milk",
		Notes:  "taskman-id: a",
		Status: service.StatusNeedsAction,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "new-1" || created.Title != "Buy milk" {
		t.Errorf("unexpected created task %+v", created)
	}
}

func TestCompleteTask(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || !strings.HasSuffix(r.URL.Path, "/tasks/t1") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["status"] != "completed" {
			t.Errorf("expected status completed, got %v", body["status"])
		}
		writeJSON(t, w, map[string]any{"id": "t1", "status": "completed"})
	})

	if err := client.CompleteTask(context.Background(), DefaultListID, "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, service.ErrNotFound},
		{http.StatusUnauthorized, ErrAuth},
		{http.StatusForbidden, ErrAuth},
	}
	for _, tt := range tests {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tt.status)
			fmt.Fprintf(w, `{"error":{"code":%d,"message":"nope"}}`, tt.status)
		})

		_, err := client.ListTasks(context.Background(), "missing")
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: expected %v, got %v", tt.status, tt.want, err)
		}
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Dir: dir}

	_, err := New(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), "oauth_client.json not found") {
		t.Fatalf("expected missing client error, got %v", err)
	}

	client := `{"installed":{"client_id":"id","client_secret":"secret","redirect_uris":["http://localhost"]}}`
	if err := os.WriteFile(filepath.Join(dir, config.OAuthClientFile), []byte(client), 0600); err != nil {
		t.Fatal(err)
	}

	_, err = New(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Fatalf("expected not logged in error, got %v", err)
	}
}
