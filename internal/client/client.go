// File: internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Session mirrors a chat session as the server returns it.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Message mirrors a chat message. Pending marks a locally added prompt that
// the server has not confirmed yet.
type Message struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Pending     bool      `json:"-"`
}

type TextResult struct {
	Success     bool     `json:"success"`
	UserMessage *Message `json:"userMessage"`
	AIMessage   *Message `json:"aiMessage"`
}

type ImageResult struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
}

// RPCError is a structured error returned by the server.
type RPCError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Call is one entry of a batch.
type Call struct {
	Method string
	Params interface{}
}

// CallResult holds either the raw result or the error of one batch entry.
type CallResult struct {
	Result json.RawMessage
	Err    *RPCError
}

type wireRequest struct {
	ID     int         `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
}

type wireResponse struct {
	ID     int             `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// Client calls the chat procedures over HTTP with a bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Call invokes one procedure and decodes its result into out (if non-nil).
func (c *Client) Call(ctx context.Context, method string, params, out interface{}) error {
	results, err := c.Batch(ctx, []Call{{Method: method, Params: params}})
	if err != nil {
		return err
	}
	res := results[0]
	if res.Err != nil {
		return res.Err
	}
	if out == nil || len(res.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

// Batch sends all calls in one request. Results come back in call order.
func (c *Client) Batch(ctx context.Context, calls []Call) ([]CallResult, error) {
	reqs := make([]wireRequest, len(calls))
	for i, call := range calls {
		reqs[i] = wireRequest{ID: i + 1, Method: call.Method, Params: call.Params}
	}

	body, err := json.Marshal(reqs)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/rpc", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var single wireResponse
		if json.Unmarshal(respBody, &single) == nil && single.Error != nil {
			return nil, single.Error
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var wire []wireResponse
	if err := json.Unmarshal(respBody, &wire); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(wire) != len(calls) {
		return nil, fmt.Errorf("expected %d results, got %d", len(calls), len(wire))
	}

	byID := make(map[int]wireResponse, len(wire))
	for _, w := range wire {
		byID[w.ID] = w
	}
	results := make([]CallResult, len(calls))
	for i := range calls {
		w, ok := byID[i+1]
		if !ok {
			return nil, fmt.Errorf("missing result for call %d", i+1)
		}
		results[i] = CallResult{Result: w.Result, Err: w.Error}
	}
	return results, nil
}

func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	var out []Session
	err := c.Call(ctx, "chat.listSessions", nil, &out)
	return out, err
}

func (c *Client) CreateSession(ctx context.Context, title *string) (*Session, error) {
	params := map[string]interface{}{}
	if title != nil {
		params["title"] = *title
	}
	var out Session
	if err := c.Call(ctx, "chat.createSession", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RenameSession(ctx context.Context, sessionID, newTitle string) (*Session, error) {
	var out Session
	err := c.Call(ctx, "chat.renameSession", map[string]string{"sessionId": sessionID, "newTitle": newTitle}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.Call(ctx, "chat.deleteSession", map[string]string{"sessionId": sessionID}, nil)
}

func (c *Client) ListMessages(ctx context.Context, sessionID string) ([]Message, error) {
	var out []Message
	err := c.Call(ctx, "chat.listMessages", map[string]string{"sessionId": sessionID}, &out)
	return out, err
}

func (c *Client) SendText(ctx context.Context, sessionID, prompt string) (*TextResult, error) {
	var out TextResult
	err := c.Call(ctx, "chat.sendTextMessage", map[string]string{"sessionId": sessionID, "prompt": prompt}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GenerateImage(ctx context.Context, sessionID, prompt string) (*ImageResult, error) {
	var out ImageResult
	err := c.Call(ctx, "chat.generateImage", map[string]string{"sessionId": sessionID, "prompt": prompt}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
