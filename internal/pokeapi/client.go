// Package pokeapi is a rate-limited client for the PokeAPI v2 REST service.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://pokeapi.co/api/v2"
	maxErrorBody   = 512
)

// ClientConfig configures the PokeAPI client.
type ClientConfig struct {
	BaseURL        string
	RateLimit      time.Duration // minimum delay between requests
	Timeout        time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Language       string // "en" or "ja"
	UserAgent      string
	Logger         *zap.Logger
}

// DefaultClientConfig returns defaults suitable for the public API.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:        defaultBaseURL,
		RateLimit:      50 * time.Millisecond, // 20 req/sec
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     16 * time.Second,
		Language:       "en",
		UserAgent:      "pokeparty/1.0",
	}
}

// Client represents a PokeAPI client with rate limiting.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	config      ClientConfig
	logger      *zap.Logger
}

// NewClient creates a new PokeAPI client. Zero fields fall back to DefaultClientConfig.
func NewClient(config ClientConfig) *Client {
	defaults := DefaultClientConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.RateLimit <= 0 {
		config.RateLimit = defaults.RateLimit
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.InitialBackoff <= 0 {
		config.InitialBackoff = defaults.InitialBackoff
	}
	if config.MaxBackoff <= 0 {
		config.MaxBackoff = defaults.MaxBackoff
	}
	if config.Language == "" {
		config.Language = defaults.Language
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient:  &http.Client{Timeout: config.Timeout},
		rateLimiter: rate.NewLimiter(rate.Every(config.RateLimit), 1),
		config:      config,
		logger:      logger,
	}
}

// GetPokemon retrieves a pokemon by ID or name.
func (c *Client) GetPokemon(ctx context.Context, idOrName string) (*Pokemon, error) {
	url := fmt.Sprintf("%s/pokemon/%s", c.config.BaseURL, idOrName)

	var p Pokemon
	if err := c.doRequest(ctx, url, &p); err != nil {
		return nil, fmt.Errorf("failed to get pokemon %s: %w", idOrName, err)
	}
	return &p, nil
}

// GetSpecies retrieves species data (localized names) by ID or name.
func (c *Client) GetSpecies(ctx context.Context, idOrName string) (*PokemonSpecies, error) {
	url := fmt.Sprintf("%s/pokemon-species/%s", c.config.BaseURL, idOrName)

	var s PokemonSpecies
	if err := c.doRequest(ctx, url, &s); err != nil {
		return nil, fmt.Errorf("failed to get species %s: %w", idOrName, err)
	}
	return &s, nil
}

// GetMove retrieves a move by ID or name.
func (c *Client) GetMove(ctx context.Context, idOrName string) (*Move, error) {
	url := fmt.Sprintf("%s/move/%s", c.config.BaseURL, idOrName)

	var m Move
	if err := c.doRequest(ctx, url, &m); err != nil {
		return nil, fmt.Errorf("failed to get move %s: %w", idOrName, err)
	}
	return &m, nil
}

// doRequest performs an HTTP request with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, url string, result interface{}) error {
	var lastErr error
	backoff := c.config.InitialBackoff

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.config.UserAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)
			if attempt < c.config.MaxRetries && ctx.Err() == nil {
				c.logger.Debug("retrying PokeAPI request", zap.String("url", url), zap.Int("attempt", attempt+1), zap.Error(err))
				if err := sleep(ctx, backoff); err != nil {
					return err
				}
				backoff = min(backoff*2, c.config.MaxBackoff)
				continue
			}
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(result)
			_ = resp.Body.Close()
			if err != nil {
				return fmt.Errorf("failed to parse JSON response: %w", err)
			}
			return nil

		case http.StatusTooManyRequests:
			wait := backoff
			if d, err := time.ParseDuration(resp.Header.Get("Retry-After") + "s"); err == nil && d > 0 {
				wait = d
			}
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("rate limited (HTTP 429)")

			if attempt < c.config.MaxRetries {
				c.logger.Debug("PokeAPI rate limited", zap.String("url", url), zap.Duration("wait", wait))
				if err := sleep(ctx, wait); err != nil {
					return err
				}
				backoff = min(backoff*2, c.config.MaxBackoff)
				continue
			}
			return lastErr

		case http.StatusNotFound:
			_ = resp.Body.Close()
			return &NotFoundError{URL: url}

		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			_ = resp.Body.Close()
			return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
