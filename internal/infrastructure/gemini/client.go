package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/shopassist/backend/internal/domain"
)

const (
	// DefaultBaseURL is the public generative-language endpoint
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultTextModel is used for chat prompts
	DefaultTextModel = "gemini-2.0-flash"
	// DefaultVisionModel is used for image prompts
	DefaultVisionModel = "gemini-1.5-flash"

	maxAttempts = 3
)

// ClientConfig configures a Client
type ClientConfig struct {
	APIKey            string
	BaseURL           string
	TextModel         string
	VisionModel       string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Client talks to the generative-language REST API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	textModel   string
	visionModel string
	rateLimiter *rate.Limiter
	backoff     func(attempt int) time.Duration
	logger      zerolog.Logger
}

// NewClient creates a new generative-language client
func NewClient(cfg ClientConfig, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TextModel == "" {
		cfg.TextModel = DefaultTextModel
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = DefaultVisionModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}

	perSecond := rate.Limit(float64(cfg.RequestsPerMinute) / 60.0)
	burst := cfg.RequestsPerMinute / 6
	if burst < 1 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		textModel:   cfg.TextModel,
		visionModel: cfg.VisionModel,
		rateLimiter: rate.NewLimiter(perSecond, burst),
		backoff:     exponentialBackoff,
		logger:      logger.With().Str("component", "gemini").Logger(),
	}
}

// GenerateText sends a text prompt and returns the generated reply
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, c.textModel, newTextRequest(prompt))
}

// DescribeImage sends an image with a prompt and returns the generated description
func (c *Client) DescribeImage(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("%w: empty image", domain.ErrInvalidRequest)
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(image)
	}
	return c.generate(ctx, c.visionModel, newImageRequest(image, mimeType, prompt))
}

// exponentialBackoff returns the wait before retrying after the given attempt: 500ms, 1s, 2s...
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

func (c *Client) endpoint(model string) string {
	params := url.Values{}
	params.Add("key", c.apiKey)
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?%s", c.baseURL, url.PathEscape(model), params.Encode())
}

// generate posts the request, retrying transport errors, 429 and 5xx responses
func (c *Client) generate(ctx context.Context, model string, request generateRequest) (string, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}
	reqURL := c.endpoint(model)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter error: %w", err)
		}

		status, body, err := c.doRequest(ctx, reqURL, payload)
		if err != nil {
			c.logger.Warn().Err(err).Int("attempt", attempt).Str("model", model).Msg("request failed")
			lastErr = err
		} else if status != http.StatusOK {
			c.logger.Warn().Int("status", status).Int("attempt", attempt).Str("model", model).Msg("api error")
			lastErr = fmt.Errorf("%w: status %d: %s", domain.ErrExternalService, status, truncate(body, 200))
			if status != http.StatusTooManyRequests && status < http.StatusInternalServerError {
				return "", lastErr
			}
		} else {
			var resp generateResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				return "", fmt.Errorf("%w: failed to decode response: %v", domain.ErrExternalService, err)
			}
			text, err := extractText(&resp)
			if err != nil {
				return "", err
			}
			c.logger.Debug().Str("model", model).Int("chars", len(text)).Msg("generated content")
			return text, nil
		}

		if attempt < maxAttempts {
			if err := sleep(ctx, c.backoff(attempt)); err != nil {
				return "", err
			}
		}
	}

	c.logger.Error().Err(lastErr).Str("model", model).Msg("all retries failed")
	return "", lastErr
}

// doRequest executes an HTTP POST and returns status and body
func (c *Client) doRequest(ctx context.Context, reqURL string, payload []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "ShopAssist/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read body: %v", domain.ErrExternalService, err)
	}
	return resp.StatusCode, body, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
