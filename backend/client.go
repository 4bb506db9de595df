// Package backend speaks the explorer backend's wire protocol: a JSON-over-
// HTTP client for the four session operations, and a deterministic in-memory
// server implementing the same protocol for local development and tests.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/amonks/ramble/explore"
)

// Client calls the explorer backend's session operations.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the given address or URL.
func NewClient(addr string) *Client {
	baseURL := strings.TrimRight(addr, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return &Client{baseURL: baseURL, client: &http.Client{}}
}

// SetTimeout bounds each round trip. Zero means no client-side timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// StartSession creates a new exploration session for a topic.
func (c *Client) StartSession(ctx context.Context, topic string) (*explore.StartResult, error) {
	var response menuResponse
	if err := c.post(ctx, "/start_session", topicRequest{Topic: topic}, &response); err != nil {
		return nil, err
	}
	return &explore.StartResult{
		SessionID:    response.SessionID,
		MenuItems:    response.MenuItems,
		CurrentDepth: response.CurrentDepth,
		MaxDepth:     response.MaxMenuDepth,
	}, nil
}

// SelectItem advances the session one level by choosing a menu item.
func (c *Client) SelectItem(ctx context.Context, sessionID, selection string) (*explore.MenuResult, error) {
	var response menuResponse
	if err := c.post(ctx, "/select", selectionRequest{SessionID: sessionID, Selection: selection}, &response); err != nil {
		return nil, err
	}
	return response.toMenuResult(), nil
}

// GoBack ascends the session one level.
func (c *Client) GoBack(ctx context.Context, sessionID string) (*explore.MenuResult, error) {
	var response menuResponse
	if err := c.post(ctx, "/go_back", sessionRequest{SessionID: sessionID}, &response); err != nil {
		return nil, err
	}
	return response.toMenuResult(), nil
}

// GoToRoot jumps the session to the topic's top-level menu.
func (c *Client) GoToRoot(ctx context.Context, sessionID string) (*explore.MenuResult, error) {
	var response menuResponse
	if err := c.post(ctx, "/go_to_root", sessionRequest{SessionID: sessionID}, &response); err != nil {
		return nil, err
	}
	return response.toMenuResult(), nil
}

func (c *Client) post(ctx context.Context, path string, payload any, dest any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return readErrorResponse(resp)
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readErrorResponse normalizes a failure payload into *explore.RemoteError.
// The hosted backend wraps messages as {"error": {"message": …}} or
// {"detail": …}; the bare-string form shows up from proxies.
func readErrorResponse(resp *http.Response) error {
	var payload struct {
		Error  json.RawMessage `json:"error"`
		Detail string          `json:"detail"`
	}
	message := ""
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		message = errorMessage(payload.Error, payload.Detail)
	}
	return &explore.RemoteError{StatusCode: resp.StatusCode, Message: message}
}

func errorMessage(raw json.RawMessage, detail string) string {
	if len(raw) > 0 {
		var wrapped struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &wrapped); err == nil && strings.TrimSpace(wrapped.Message) != "" {
			return wrapped.Message
		}
		var plain string
		if err := json.Unmarshal(raw, &plain); err == nil && strings.TrimSpace(plain) != "" {
			return plain
		}
	}
	return strings.TrimSpace(detail)
}

type topicRequest struct {
	Topic string `json:"topic"`
}

type selectionRequest struct {
	SessionID string `json:"session_id"`
	Selection string `json:"selection"`
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

type menuResponse struct {
	Type         string   `json:"type,omitempty"`
	MenuItems    []string `json:"menu_items"`
	Content      *string  `json:"content,omitempty"`
	SessionID    string   `json:"session_id,omitempty"`
	CurrentDepth *int     `json:"current_depth,omitempty"`
	MaxMenuDepth *int     `json:"max_menu_depth,omitempty"`
}

func (r menuResponse) toMenuResult() *explore.MenuResult {
	result := &explore.MenuResult{
		Type:         explore.ResponseType(r.Type),
		MenuItems:    r.MenuItems,
		CurrentDepth: r.CurrentDepth,
		MaxDepth:     r.MaxMenuDepth,
	}
	if r.Content != nil {
		result.Content = *r.Content
	}
	return result
}
