// Package client is the Go consumer of the data API: a thin HTTP client
// plus the polling synchronizer that keeps a read-only view current.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/monashcoding/tourneysite/internal/document"
)

// ErrUnauthorized is returned by Save when the server rejects the token.
var ErrUnauthorized = errors.New("unauthorized")

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// Fetch GETs the current document and normalizes its date fields.
// Warnings report malformed dates that were substituted with the current
// instant.
func (c *Client) Fetch(ctx context.Context) (map[string]any, []document.Warning, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/data", nil)
	if err != nil {
		return nil, nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("fetching data: %s", errorMessage(resp))
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("decoding data: %w", err)
	}

	normalized, warns := document.Normalize(raw)
	return normalized.(map[string]any), warns, nil
}

// Save denormalizes date values back to ISO strings and POSTs the
// document with the admin bearer token.
func (c *Client) Save(ctx context.Context, doc map[string]any, token string) error {
	payload, err := json.Marshal(document.Denormalize(doc))
	if err != nil {
		return fmt.Errorf("encoding data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/data", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("saving data: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return fmt.Errorf("saving data: %s", errorMessage(resp))
	}
}

func errorMessage(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return body.Error
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}
