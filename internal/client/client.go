// Package client is a Go client of the memorizer HTTP API.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/memorizer/internal/memory"
	"github.com/at-ishikawa/memorizer/internal/server"
	"github.com/at-ishikawa/memorizer/internal/term"
	"github.com/at-ishikawa/memorizer/internal/vocabulary"
)

// Client implements vocabulary.Vocabulary over HTTP.
type Client struct {
	httpClient *resty.Client
}

var _ vocabulary.Vocabulary = (*Client)(nil)

// New creates a client of the server at baseURL. Requests are never retried.
func New(baseURL string) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	client.SetTimeout(30 * time.Second)

	return &Client{httpClient: client}
}

func termPath(id int64, suffix string) string {
	return "/terms/" + strconv.FormatInt(id, 10) + suffix
}

// do sends a request and unwraps the response envelope. Status codes map back onto the
// errors of the vocabulary package.
func do[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var env server.Envelope[T]
	req := c.httpClient.R().
		SetContext(ctx).
		SetResult(&env).
		SetError(&env)
	if body != nil {
		req.SetBody(body)
	}

	res, err := req.Execute(method, path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("client.R().Execute(%s %s) > %w", method, path, err)
	}
	if res.IsSuccess() && env.Result {
		return env.Data, nil
	}

	var zero T
	message := env.Error
	if message == "" {
		message = res.Status()
	}
	switch res.StatusCode() {
	case http.StatusNotFound:
		return zero, fmt.Errorf("%s %s: %s: %w", method, path, message, vocabulary.ErrNotFound)
	case http.StatusBadRequest:
		return zero, fmt.Errorf("%s %s: %s: %w", method, path, message, vocabulary.ErrInvalidInput)
	}
	return zero, &vocabulary.StorageError{
		Op:  method + " " + path,
		Err: fmt.Errorf("status %d: %w", res.StatusCode(), errors.New(message)),
	}
}

func (c *Client) CreateTerm(ctx context.Context, n vocabulary.NewTerm) (*term.Term, error) {
	return do[*term.Term](ctx, c, http.MethodPost, "/terms", n)
}

func (c *Client) GetTerm(ctx context.Context, id int64) (*term.Term, error) {
	return do[*term.Term](ctx, c, http.MethodGet, termPath(id, ""), nil)
}

func (c *Client) UpdateTerm(ctx context.Context, u term.Update) (*term.Term, error) {
	return do[*term.Term](ctx, c, http.MethodPatch, termPath(u.ID, ""), u)
}

func (c *Client) DeleteTerms(ctx context.Context, ids []int64) error {
	_, err := do[server.DeleteTermsRequest](ctx, c, http.MethodDelete, "/terms", server.DeleteTermsRequest{IDs: ids})
	return err
}

func (c *Client) ListTerms(ctx context.Context) ([]term.Term, error) {
	return do[[]term.Term](ctx, c, http.MethodGet, "/terms", nil)
}

func (c *Client) ListTags(ctx context.Context) ([]string, error) {
	return do[[]string](ctx, c, http.MethodGet, "/tags", nil)
}

func (c *Client) AdvanceFamiliarity(ctx context.Context, id int64, d memory.Direction) (*term.Term, error) {
	if _, err := memory.ParseDirection(string(d)); err != nil {
		return nil, fmt.Errorf("%w: %w", vocabulary.ErrInvalidInput, err)
	}
	return do[*term.Term](ctx, c, http.MethodPost, termPath(id, "/"+string(d)), nil)
}

func (c *Client) OverrideMemory(ctx context.Context, id int64, o memory.Override) (*term.Term, error) {
	return do[*term.Term](ctx, c, http.MethodPut, termPath(id, "/memory"), o)
}

func (c *Client) SelectDue(ctx context.Context, filter term.DueFilter) ([]term.Term, error) {
	return do[[]term.Term](ctx, c, http.MethodPost, "/due", filter)
}
