// Package ollama implements pkg/llm's ChatClient for Ollama's chat API.
package ollama

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

	"github.com/primefold/ragd/pkg/llm"
)

const (
	// DefaultChatModel is the default model used for answer generation.
	DefaultChatModel = "gemma3:4b"

	// DefaultBaseURL is the default Ollama API URL.
	DefaultBaseURL = "http://localhost:11434"

	// DefaultTimeout bounds a single generation call.
	DefaultTimeout = 60 * time.Second

	// DefaultTemperature keeps sampling deterministic-leaning.
	DefaultTemperature = 0.1
)

// Client wraps Ollama's chat API.
type Client struct {
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

// Config holds configuration for the Ollama chat client.
type Config struct {
	// BaseURL is the Ollama API URL. Defaults to DefaultBaseURL if empty.
	BaseURL string

	// Model is the chat model to use. Defaults to DefaultChatModel if empty.
	Model string

	// Temperature overrides DefaultTemperature when non-zero.
	Temperature float64

	// Timeout overrides DefaultTimeout when non-zero.
	Timeout time.Duration
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  chatOptions   `json:"options"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
}

type chatResponse struct {
	Message *chatMessage `json:"message"`
	Done    bool         `json:"done"`
	Error   string       `json:"error"`
}

// NewClient creates a new chat client against Ollama's chat API.
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultChatModel
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		temperature: temperature,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Chat sends the prompt as a single user message with streaming disabled
// and returns the trimmed reply content.
func (c *Client) Chat(ctx context.Context, prompt string) (string, error) {
	request := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Stream:  false,
		Options: chatOptions{Temperature: c.temperature},
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama status %d: %s", resp.StatusCode, string(body))
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrDecode, err)
	}

	if response.Message == nil || strings.TrimSpace(response.Message.Content) == "" {
		return "", llm.ErrMalformed
	}

	return strings.TrimSpace(response.Message.Content), nil
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	// HTTP client doesn't require explicit cleanup
	return nil
}

// classifyTransportError maps http.Client errors onto the llm sentinels.
// Deadline exhaustion is a timeout; everything else at this layer is a
// connection failure carrying the underlying cause.
func classifyTransportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("%w: %v", llm.ErrTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", llm.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", llm.ErrConnection, err)
}

var _ llm.ChatClient = (*Client)(nil)
