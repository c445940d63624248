// Package reflection holds a short AI-assisted conversation about a mood
// entry and keeps its transcript in storage.
package reflection

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

// ErrTransport indicates the chat endpoint could not produce a reply.
var ErrTransport = errors.New("chat transport error")

// ChatMessage is one message in the wire format of a chat completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Transport produces the next assistant reply for a conversation.
type Transport interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// Client talks to an OpenAI-compatible /chat/completions endpoint.
type Client struct {
	apiKey string
	base   string
	model  string
	http   *http.Client
}

// NewClient returns a client for the endpoint base URL, e.g.
// "https://api.openai.com/v1".
func NewClient(base, model, apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey: apiKey,
		base:   strings.TrimRight(base, "/"),
		model:  model,
		http:   &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends the conversation and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	b, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("%w: encoding request: %v", ErrTransport, err)
	}
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if c.apiKey != "" {
		r.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	r.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrTransport, err)
	}

	var ch chatResponse
	decodeErr := json.Unmarshal(body, &ch)
	if resp.StatusCode/100 != 2 {
		if decodeErr == nil && ch.Error != nil && ch.Error.Message != "" {
			return "", fmt.Errorf("%w: %s: %s", ErrTransport, resp.Status, ch.Error.Message)
		}
		return "", fmt.Errorf("%w: %s", ErrTransport, resp.Status)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrTransport, decodeErr)
	}
	if len(ch.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrTransport)
	}
	return ch.Choices[0].Message.Content, nil
}
