// Package chat implements a client for OpenAI-compatible chat completion
// APIs, used to answer natural-language questions about a loaded dataset.
// The dataset itself never leaves the machine; only a compact summary is
// included in the prompt.
package chat

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

	"github.com/flightdeck-io/flightdeck/dataset"
	"github.com/flightdeck-io/flightdeck/iox"
)

// DefaultBaseURL is the default API endpoint.
const DefaultBaseURL = "https://api.deepseek.com/v1"

// DefaultModel is the default chat model.
const DefaultModel = "deepseek-chat"

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 60 * time.Second

// DefaultRetries is the default number of retry attempts on transient
// failures.
const DefaultRetries = 3

// defaultTemperature matches the upstream default for analytical prompts.
const defaultTemperature = 0.7

// Config configures the chat client.
type Config struct {
	// APIKey authenticates requests (required).
	APIKey string
	// BaseURL is the API root (default DefaultBaseURL). The client posts
	// to BaseURL + "/chat/completions".
	BaseURL string
	// Model is the chat model name (default DefaultModel).
	Model string
	// Timeout is the per-request timeout (default 60s).
	Timeout time.Duration
	// Retries is the number of retry attempts on 5xx or transport
	// failures (default 3). Client errors are never retried.
	Retries int
}

// Client calls an OpenAI-compatible chat completion API.
type Client struct {
	config Config
	client *http.Client
}

// New creates a chat client. Returns an error if the API key is empty.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("chat client requires an API key")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries <= 0 {
		cfg.Retries = DefaultRetries
	}
	return &Client{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// message is one chat turn.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// systemPrompt frames the assistant as a data analyst over the summarized
// dataset.
const systemPrompt = `You are a data analysis expert. Your task:
- understand the user's question about the dataset
- reason from the dataset summary provided
- give clear, concise, insight-driven answers
- stay focused on the data

Dataset summary:
%s`

// Ask sends a question about the dataset and returns the assistant's
// answer.
func (c *Client) Ask(ctx context.Context, ds *dataset.Dataset, question string) (string, error) {
	messages := []message{
		{Role: "system", Content: fmt.Sprintf(systemPrompt, Summarize(ds))},
		{Role: "user", Content: question},
	}

	body, err := json.Marshal(completionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: defaultTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat: marshal request: %w", err)
	}

	payload, err := c.post(ctx, body)
	if err != nil {
		return "", err
	}

	var parsed completionResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("chat: decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("chat: api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("chat: empty response")
	}
	return parsed.Choices[0].Message.Content, nil
}

// post sends the completion request, retrying transport failures and 5xx
// responses with exponential backoff. 4xx responses fail immediately.
func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	url := strings.TrimSuffix(c.config.BaseURL, "/") + "/chat/completions"

	var lastErr error
	for attempt := 1; attempt <= c.config.Retries; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(1<<(attempt-2)) * 500 * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		payload, retriable, err := c.doRequest(ctx, url, body)
		if err == nil {
			return payload, nil
		}
		if !retriable {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("chat: request failed after %d attempts: %w", c.config.Retries, lastErr)
}

func (c *Client) doRequest(ctx context.Context, url string, body []byte) (payload []byte, retriable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("chat: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("chat: request failed: %w", err)
	}
	defer iox.DiscardClose(resp.Body)

	payload, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("chat: read response: %w", err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return payload, false, nil
	}

	err = fmt.Errorf("chat: unexpected status %d: %s", resp.StatusCode, truncate(string(payload), 200))
	return nil, resp.StatusCode >= 500, err
}

// Close releases client resources.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Summarize produces the compact dataset description embedded in the
// system prompt: shape, columns, and a few sample rows.
func Summarize(ds *dataset.Dataset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "rows: %d\ncolumns (%d): %s\n",
		len(ds.Rows), len(ds.Columns), strings.Join(ds.Columns, ", "))

	if numeric := ds.NumericColumns(); len(numeric) > 0 {
		fmt.Fprintf(&b, "numeric columns: %s\n", strings.Join(numeric, ", "))
	}

	sample := len(ds.Rows)
	if sample > 5 {
		sample = 5
	}
	b.WriteString("sample rows:\n")
	for _, row := range ds.Rows[:sample] {
		fmt.Fprintf(&b, "  %s\n", strings.Join(row, ", "))
	}

	for _, insight := range dataset.Insights(ds) {
		fmt.Fprintf(&b, "note: %s\n", insight)
	}
	return b.String()
}
