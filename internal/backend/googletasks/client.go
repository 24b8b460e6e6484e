// Package googletasks implements the service.Remote interface using Google Tasks API.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskman/internal/config"
	"taskman/internal/service"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks requested per API page.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = tasks.TasksScope
)

// ErrAuth is matched by errors caused by a missing, expired or revoked token.
var ErrAuth = errors.New("token expired or revoked (run: taskman login)")

// Client implements service.Remote using Google Tasks API.
type Client struct {
	svc *tasks.Service
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if !cfg.HasOAuthClient() {
		return nil, fmt.Errorf("%s not found in %s", config.OAuthClientFile, cfg.Dir)
	}
	if !cfg.HasToken() {
		return nil, errors.New("not logged in (run: taskman login)")
	}

	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}

	// Token source refreshes automatically
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}

	return &Client{svc: svc}, nil
}

// OAuthConfig reads oauth_client.json from the config directory.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return oauthConfig, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client and endpoint (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, endpoint string) (*Client, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc}, nil
}

// do runs one API call under APITimeout and maps its error.
func do[T any](ctx context.Context, call func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	v, err := call(ctx)
	if err != nil {
		var zero T
		return zero, wrapError(err)
	}
	return v, nil
}

// DefaultList returns the user's default task list.
func (c *Client) DefaultList(ctx context.Context) (service.TaskList, error) {
	list, err := do(ctx, func(ctx context.Context) (*tasks.TaskList, error) {
		return c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
	})
	if err != nil {
		return service.TaskList{}, err
	}
	return service.TaskList{ID: DefaultListID, Title: list.Title, IsDefault: true}, nil
}

// ListLists returns all task lists in API order. The default list is
// reported under DefaultListID.
func (c *Client) ListLists(ctx context.Context) ([]service.TaskList, error) {
	return do(ctx, func(ctx context.Context) ([]service.TaskList, error) {
		def, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
		if err != nil {
			return nil, err
		}

		var lists []service.TaskList
		err = c.svc.Tasklists.List().MaxResults(PageSize).Pages(ctx, func(page *tasks.TaskLists) error {
			for _, l := range page.Items {
				if l.Id == def.Id {
					lists = append(lists, service.TaskList{ID: DefaultListID, Title: l.Title, IsDefault: true})
					continue
				}
				lists = append(lists, service.TaskList{ID: l.Id, Title: l.Title})
			}
			return nil
		})
		return lists, err
	})
}

// ResolveList finds a list by name (case-insensitive, trimmed).
func (c *Client) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	lists, err := c.ListLists(ctx)
	if err != nil {
		return service.TaskList{}, err
	}
	return service.MatchList(lists, name)
}

// ListTasks returns every task in a list, completed and hidden included.
func (c *Client) ListTasks(ctx context.Context, listID string) ([]service.Task, error) {
	return do(ctx, func(ctx context.Context) ([]service.Task, error) {
		var result []service.Task
		err := c.svc.Tasks.List(listID).
			MaxResults(PageSize).
			ShowCompleted(true).
			ShowHidden(true).
			Pages(ctx, func(page *tasks.Tasks) error {
				for _, t := range page.Items {
					result = append(result, fromAPI(t))
				}
				return nil
			})
		return result, err
	})
}

// CreateTask inserts task into a list and returns it with its remote ID.
func (c *Client) CreateTask(ctx context.Context, listID string, task service.Task) (service.Task, error) {
	created, err := do(ctx, func(ctx context.Context) (*tasks.Task, error) {
		return c.svc.Tasks.Insert(listID, &tasks.Task{
			Title:  task.Title,
			Notes:  task.Notes,
			Status: task.Status,
		}).Context(ctx).Do()
	})
	if err != nil {
		return service.Task{}, err
	}
	return fromAPI(created), nil
}

// CompleteTask marks a remote task completed.
func (c *Client) CompleteTask(ctx context.Context, listID, taskID string) error {
	_, err := do(ctx, func(ctx context.Context) (*tasks.Task, error) {
		return c.svc.Tasks.Patch(listID, taskID, &tasks.Task{
			Status: service.StatusCompleted,
		}).Context(ctx).Do()
	})
	return err
}

func fromAPI(t *tasks.Task) service.Task {
	return service.Task{ID: t.Id, Title: t.Title, Notes: t.Notes, Status: t.Status}
}

// wrapError maps transport and API failures onto the errors callers match.
func wrapError(err error) error {
	var (
		retrieveErr *oauth2.RetrieveError
		apiErr      *googleapi.Error
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return errors.New("request timed out")
	case errors.As(err, &retrieveErr):
		return ErrAuth
	case errors.As(err, &apiErr) && (apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden):
		return ErrAuth
	case errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound:
		return fmt.Errorf("%s: %w", apiErr.Message, service.ErrNotFound)
	default:
		return err
	}
}
