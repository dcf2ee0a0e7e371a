// Package remote talks to the HTTP endpoint that stores every reading.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/schema"
)

// ErrUnexpectedPayload is returned when a GET does not yield a JSON array.
var ErrUnexpectedPayload = errors.New("remote store did not return a JSON array")

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 64 << 20

// Client is the HTTP implementation of contract.RecordStore.
type Client struct {
	endpoint string
	http     *http.Client
}

var _ contract.RecordStore = &Client{}

// NewClient returns a client for endpoint. A nil httpClient gets a default
// client with the given timeout.
func NewClient(endpoint string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		if timeout <= 0 {
			timeout = contract.DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{endpoint: endpoint, http: httpClient}
}

// Endpoint returns the URL this client reads from and appends to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch downloads the whole dataset. There is no paging: every call returns
// every row the store holds.
func (c *Client) Fetch(ctx context.Context) ([]schema.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", c.endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read fetch response: %w", err)
	}
	return DecodeRows(body)
}

// DecodeRows parses a JSON array of objects. Elements that are not objects
// are skipped.
func DecodeRows(body []byte) ([]schema.RawRecord, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(body), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
	}
	rows := make([]schema.RawRecord, 0, len(items))
	for _, item := range items {
		var row schema.RawRecord
		if err := json.Unmarshal(item, &row); err != nil || row == nil {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Append posts one canonical record. The response is drained and its status
// reported, but a 2xx is not treated as proof that the row was stored.
func (c *Client) Append(ctx context.Context, rec schema.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build append request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("append to %s: %w", c.endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode >= 400 {
		contract.LogWarn("Append", fmt.Errorf("remote store answered %d; confirmation will decide", resp.StatusCode))
	}
	return nil
}
