package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrAlreadyStored is returned when the server already holds the session.
var ErrAlreadyStored = errors.New("session already stored")

// RejectedError is returned when the server refuses a session as invalid.
type RejectedError struct {
	Status int
	Errors []string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("rejected (status %d): %s", e.Status, strings.Join(e.Errors, "; "))
}

// ingestResponse mirrors the server's 201 body without importing the
// server package.
type ingestResponse struct {
	SessionID string   `json:"sessionId"`
	Warnings  []string `json:"warnings"`
}

// Client sends sessions to the LiftLog server over HTTP.
type Client struct {
	serverURL  string
	httpClient *http.Client
}

// NewClient creates a new HTTP client for the LiftLog server.
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SendSession POSTs one session document to the ingest endpoint and
// returns the server's warnings. Each call makes a single attempt.
func (c *Client) SendSession(ctx context.Context, doc []byte) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/api/v1/workouts", bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting session: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusCreated:
		var out ingestResponse
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("decoding response: %w", err)
		}
		return out.Warnings, nil
	case http.StatusConflict:
		return nil, ErrAlreadyStored
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		var res struct {
			Errors []string `json:"errors"`
			Error  string   `json:"error"`
		}
		json.Unmarshal(body, &res)
		if res.Error != "" {
			res.Errors = append(res.Errors, res.Error)
		}
		return nil, &RejectedError{Status: resp.StatusCode, Errors: res.Errors}
	}
	return nil, fmt.Errorf("ingest failed (status %d): %s", resp.StatusCode, body)
}
