package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// OllamaConfig configures the Ollama client.
type OllamaConfig struct {
	// BaseURL is the Ollama API endpoint.
	BaseURL string

	// Model is the model name to use.
	Model string

	// RequestTimeout is the timeout for status requests.
	RequestTimeout time.Duration

	// InferenceTimeout is the timeout for chat requests.
	InferenceTimeout time.Duration
}

// DefaultOllamaConfig returns sensible defaults.
func DefaultOllamaConfig() *OllamaConfig {
	return &OllamaConfig{
		BaseURL:          "http://localhost:11434",
		Model:            "qwen3:8b",
		RequestTimeout:   10 * time.Second,
		InferenceTimeout: 120 * time.Second,
	}
}

// OllamaClient provides access to a local Ollama server.
type OllamaClient struct {
	config     *OllamaConfig
	httpClient *http.Client
	chatClient *http.Client
	available  bool
	modelReady bool
	mu         sync.RWMutex
}

// OllamaStatus represents the status of Ollama.
type OllamaStatus struct {
	Available    bool     `json:"available"`
	Version      string   `json:"version,omitempty"`
	ModelReady   bool     `json:"modelReady"`
	ModelName    string   `json:"modelName"`
	ModelsLoaded []string `json:"modelsLoaded,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// ChatMessage represents a chat message.
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatRequest struct {
	Model    string         `json:"model"`
	Messages []ChatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Format   string         `json:"format,omitempty"`
	Options  *ollamaOptions `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Model   string      `json:"model"`
	Message ChatMessage `json:"message"`
	Done    bool        `json:"done"`
	Error   string      `json:"error,omitempty"`
}

// NewOllamaClient creates a new Ollama client.
func NewOllamaClient(config *OllamaConfig) *OllamaClient {
	if config == nil {
		config = DefaultOllamaConfig()
	}
	return &OllamaClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.RequestTimeout},
		chatClient: &http.Client{Timeout: config.InferenceTimeout},
	}
}

func (c *OllamaClient) Name() string { return "ollama" }

// Complete runs one non-streaming chat turn.
func (c *OllamaClient) Complete(ctx context.Context, system, prompt string, opts CompletionOptions) (string, error) {
	req := ollamaChatRequest{
		Model: c.config.Model,
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Options: &ollamaOptions{Temperature: opts.Temperature, NumPredict: opts.MaxTokens},
	}
	if opts.JSON {
		req.Format = "json"
	}

	var resp ollamaChatResponse
	if err := postJSON(ctx, c.chatClient, c.Name(), c.config.BaseURL+"/api/chat", nil, req, &resp); err != nil {
		c.setAvailability(false, false)
		return "", err
	}
	if resp.Error != "" {
		return "", fmt.Errorf("ollama error: %s", resp.Error)
	}
	c.setAvailability(true, true)

	out := strings.TrimSpace(resp.Message.Content)
	if out == "" {
		return "", errors.New("ollama returned an empty message")
	}
	return out, nil
}

// CheckAvailability checks if Ollama is reachable and the model is pulled.
func (c *OllamaClient) CheckAvailability(ctx context.Context) *OllamaStatus {
	status := &OllamaStatus{ModelName: c.config.Model}

	var version struct {
		Version string `json:"version"`
	}
	if err := c.getJSON(ctx, "/api/version", &version); err != nil {
		status.Error = fmt.Sprintf("Ollama not available: %v", err)
		c.setAvailability(false, false)
		return status
	}
	status.Available = true
	status.Version = version.Version

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := c.getJSON(ctx, "/api/tags", &tags); err != nil {
		status.Error = fmt.Sprintf("Failed to list models: %v", err)
		c.setAvailability(true, false)
		return status
	}

	family := strings.Split(c.config.Model, ":")[0]
	status.ModelsLoaded = make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		status.ModelsLoaded = append(status.ModelsLoaded, m.Name)
		if strings.HasPrefix(m.Name, family) {
			status.ModelReady = true
		}
	}
	if !status.ModelReady {
		status.Error = fmt.Sprintf("model %s not pulled", c.config.Model)
	}

	c.setAvailability(status.Available, status.ModelReady)
	return status
}

// IsAvailable returns the result of the last availability check or chat call.
func (c *OllamaClient) IsAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.available && c.modelReady
}

func (c *OllamaClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s failed with status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *OllamaClient) setAvailability(available, modelReady bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.available = available
	c.modelReady = modelReady
}
