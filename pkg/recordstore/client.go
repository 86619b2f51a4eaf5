// Package recordstore is a thin HTTP client for the hosted record-store
// service used as an alternative storage backend. It speaks a small REST
// dialect: one JSON document per record, addressed by collection and id.
package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrNotFound indicates the record does not exist in the collection.
	ErrNotFound = errors.New("recordstore: record not found")

	// ErrConflict indicates an insert hit an existing record id.
	ErrConflict = errors.New("recordstore: record already exists")

	// ErrUnavailable indicates the record store could not serve the request.
	// Safe to retry for idempotent operations.
	ErrUnavailable = errors.New("recordstore: service unavailable")
)

const defaultTimeout = 10 * time.Second

// Client talks to one record-store project identified by its base URL and
// access token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Client for the given base URL and bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Insert creates a new record with the given id. ErrConflict if the id is
// already taken.
func (c *Client) Insert(ctx context.Context, collection, id string, record any) error {
	return c.do(ctx, http.MethodPost, c.recordURL(collection, id), record, nil)
}

// Get fetches the record with the given id into dest. ErrNotFound if absent.
func (c *Client) Get(ctx context.Context, collection, id string, dest any) error {
	return c.do(ctx, http.MethodGet, c.recordURL(collection, id), nil, dest)
}

// Update replaces the record with the given id. ErrNotFound if absent.
func (c *Client) Update(ctx context.Context, collection, id string, record any) error {
	return c.do(ctx, http.MethodPut, c.recordURL(collection, id), record, nil)
}

// List fetches all records of a collection matching the query filter into
// dest, which must be a pointer to a slice.
func (c *Client) List(ctx context.Context, collection string, filter url.Values, dest any) error {
	endpoint := fmt.Sprintf("%s/records/%s", c.baseURL, url.PathEscape(collection))
	if len(filter) > 0 {
		endpoint += "?" + filter.Encode()
	}
	return c.do(ctx, http.MethodGet, endpoint, nil, dest)
}

func (c *Client) recordURL(collection, id string) string {
	return fmt.Sprintf("%s/records/%s/%s", c.baseURL, url.PathEscape(collection), url.PathEscape(id))
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("recordstore: failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("recordstore: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return ErrConflict
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("recordstore: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("recordstore: failed to decode response: %w", err)
	}
	return nil
}
