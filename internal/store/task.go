package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeLayout is the on-disk format of created_at, minute precision.
const TimeLayout = "2006-01-02 15:04"

// Status is the completion state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Timestamp is a local wall-clock time truncated to the minute.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to the minute.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Truncate(time.Minute)}
}

// String formats the timestamp as "YYYY-MM-DD HH:MM".
func (ts Timestamp) String() string {
	return ts.Format(TimeLayout)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	t, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	ts.Time = t
	return nil
}

// Task is a single trackable item.
type Task struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   Timestamp `json:"created_at"`
}

// Completed reports whether the task has been marked complete.
func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}
