package openrouter

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the OpenRouter client.
type Config struct {
	APIKey      string        // if empty, falls back to env OPENROUTER_API_KEY
	BaseURL     string        // default https://openrouter.ai/api/v1
	Model       string        // e.g. "meta-llama/llama-3.3-70b-instruct"
	Temperature float32       // kept low for consistent extraction
	MaxTokens   int           // response cap
	Referer     string        // HTTP-Referer header OpenRouter asks for
	Title       string        // X-Title header
	Timeout     time.Duration // http client timeout
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENROUTER_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "meta-llama/llama-3.3-70b-instruct"
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.1
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.Title == "" {
		cfg.Title = "Hill Drive Invoice Automation"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}

// Enabled reports whether the client has credentials to call the API at all.
func (c *Client) Enabled() bool { return c.cfg.APIKey != "" }
