package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/tereohoa/api/internal/middleware"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Request is the generateContent payload.
type Request struct {
	Contents []Content `json:"contents"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

// Envelope is the full nested provider response, distinct from the text
// payload embedded within it.
type Envelope struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Client is the only component that talks to the Gemini API. It owns the
// credential ring and the retry/backoff policy.
type Client struct {
	baseURL    string
	model      string
	keys       *KeyRing
	maxRetries int
	httpClient *http.Client
	log        *zap.SugaredLogger

	// sleep is swappable in tests.
	sleep func(time.Duration)
}

type Options struct {
	Model          string
	MaxRetries     int
	ConnectTimeout time.Duration
	TotalTimeout   time.Duration
	// BaseURL overrides the Gemini endpoint, for tests.
	BaseURL string
}

func NewClient(apiKeys []string, opts Options, log *zap.SugaredLogger) (*Client, error) {
	if len(apiKeys) == 0 {
		return nil, ErrNoAPIKeys
	}
	if opts.Model == "" {
		opts.Model = "gemini-2.5-flash"
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}
	if opts.TotalTimeout <= 0 {
		opts.TotalTimeout = 240 * time.Second
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}

	// Connect timeout is enforced by the dialer, the overall call ceiling by
	// the http.Client. Both apply independently.
	dialer := &net.Dialer{Timeout: opts.ConnectTimeout}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: opts.ConnectTimeout,
	}

	return &Client{
		baseURL:    opts.BaseURL,
		model:      opts.Model,
		keys:       NewKeyRing(apiKeys),
		maxRetries: opts.MaxRetries,
		httpClient: &http.Client{
			Timeout:   opts.TotalTimeout,
			Transport: transport,
		},
		log:   log,
		sleep: time.Sleep,
	}, nil
}

// Call posts the payload to generateContent, rotating API keys and retrying
// with exponential backoff (2^attempt seconds) up to maxRetries attempts.
func (c *Client) Call(ctx context.Context, payload Request) (*Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	timedOut := false

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		key := c.keys.Next()
		start := time.Now()

		env, err := c.doAttempt(ctx, key, body)
		if err == nil {
			middleware.RecordGeminiCall(true, time.Since(start))
			return env, nil
		}
		middleware.RecordGeminiCall(false, time.Since(start))

		lastErr = err
		if isTimeout(err) {
			timedOut = true
			c.log.Warnw("gemini call timed out", "attempt", attempt, "max_retries", c.maxRetries, "key", redact(key))
		} else {
			c.log.Errorw("gemini call failed", "attempt", attempt, "key", redact(key), "error", err)
		}

		if attempt < c.maxRetries {
			c.sleep(time.Duration(1<<attempt) * time.Second)
		}
	}

	if timedOut {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamTimeout, lastErr)
	}
	return nil, fmt.Errorf("%w: %v", ErrUpstream, lastErr)
}

func (c *Client) doAttempt(ctx context.Context, key string, body []byte) (*Envelope, error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(b))
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &env, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Translate asks Gemini for the Māori translation of an English word or
// phrase and returns the sanitized structured result.
func (c *Client) Translate(ctx context.Context, text string) (WordData, error) {
	payload := Request{Contents: []Content{{Parts: []Part{{Text: translationPrompt(text)}}}}}

	env, err := c.Call(ctx, payload)
	if err != nil {
		return WordData{}, err
	}

	raw, err := ExtractText(env)
	if err != nil {
		return WordData{}, err
	}

	return ParseWordData(raw)
}

// PositiveNews asks Gemini for up to 10 positive NZ news stories.
func (c *Client) PositiveNews(ctx context.Context) ([]NewsItemData, error) {
	payload := Request{Contents: []Content{{Parts: []Part{{Text: positiveNewsPrompt}}}}}

	env, err := c.Call(ctx, payload)
	if err != nil {
		return nil, err
	}

	raw, err := ExtractText(env)
	if err != nil {
		return nil, err
	}

	return ParseNewsItems(raw)
}
