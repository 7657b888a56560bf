package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/AD7six/spfile/internal/config"
	"github.com/AD7six/spfile/internal/logging"
	"github.com/AD7six/spfile/internal/storage"
)

// SPOClient wraps an HTTP client with a SharePoint bearer token, a concurrency
// limiter, and coordinated retry/pausing on 429s. Every request asks for
// minimal-metadata JSON; file-content endpoints ignore the header and return
// raw bytes.
type SPOClient struct {
	AccessToken    string
	UnderlyingHTTP *http.Client

	// maximum bytes read from non-file response bodies
	maxBodySize int64

	// concurrency limiter
	sem chan struct{}

	// max retries for errors (including 5xx) and 429s
	retries int

	// If we receive a 429 all http requests wait until pauseUntil; SharePoint
	// throttles per app+user so a single shared pause is the right scope.
	pause      sync.Mutex
	pauseUntil time.Time
}

const (
	defaultMaxConcurrency = 4
	defaultRetries        = 3
	defaultHTTPTimeout    = 60 * time.Second
	defaultMaxBodySize    = 10 * 1024 * 1024 // 10MB
)

var (
	sharedOnce   sync.Once
	sharedClient *SPOClient
)

// GetClient returns a shared client instance so concurrency limiting and 429
// pauses are coordinated across all requests in this process.
func GetClient(settings *config.Settings) *SPOClient {
	sharedOnce.Do(func() {
		sharedClient = newClient(settings.AccessToken, defaultMaxConcurrency, defaultRetries, settings.HTTPTimeout, settings.HTTPMaxBodySize)
	})
	return sharedClient
}

func newClient(accessToken string, maxConcurrent, retries int, timeout time.Duration, maxBodySize int64) *SPOClient {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrency
	}
	if retries <= 0 {
		retries = defaultRetries
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	if maxBodySize <= 0 {
		maxBodySize = defaultMaxBodySize
	}
	return &SPOClient{
		AccessToken:    accessToken,
		UnderlyingHTTP: &http.Client{Timeout: timeout},
		maxBodySize:    maxBodySize,
		sem:            make(chan struct{}, maxConcurrent),
		retries:        retries,
	}
}

// Get performs a GET request with retry logic and context support.
func (c *SPOClient) Get(ctx context.Context, url string) (*http.Response, error) {
	// Acquire concurrency slot
	c.sem <- struct{}{}
	defer func() { <-c.sem }()

	// Retry loop
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		// If globally paused due to 429, wait it out
		c.waitIfPaused()

		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.AccessToken)
		req.Header.Set("Accept", "application/json;odata=nometadata")

		logging.Logger.Debug("request", "url", url, "attempt", attempt)

		resp, err := c.UnderlyingHTTP.Do(req)
		if err != nil {
			lastErr = err
			if attempt < c.retries {
				time.Sleep(backoffDuration(attempt))
				continue
			}
			return nil, lastErr
		}

		// Handle 429: set global pause, then retry after waiting
		if resp.StatusCode == http.StatusTooManyRequests {
			// Determine wait duration from Retry-After (seconds) or fall back to 1s
			wait := parseRetryAfter(resp)
			// Close body before sleeping/retrying
			if err := resp.Body.Close(); err != nil {
				logging.Logger.Warn("failed to close response body", "error", err)
			}

			// Set global pause
			c.setPause(wait)

			if attempt < c.retries {
				// Sleep the same period locally before retrying this request
				time.Sleep(wait)
				continue
			}
			return nil, &rateLimitedError{after: wait}
		}

		// Retry transient server errors (5xx). Do not retry other 4xx.
		if resp.StatusCode >= 500 {
			if attempt < c.retries {
				if err := resp.Body.Close(); err != nil {
					logging.Logger.Warn("failed to close response body", "error", err)
				}
				time.Sleep(backoffDuration(attempt))
				continue
			}
			// return last response to caller for error handling
			return resp, nil
		}

		return resp, nil
	}

	return nil, lastErr
}

// GetJSON performs a GET request and decodes the JSON response body into out.
// Non-2xx responses become a translated service error.
func (c *SPOClient) GetJSON(ctx context.Context, url string, out any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.serviceError(resp)
	}

	return json.NewDecoder(io.LimitReader(resp.Body, c.maxBodySize)).Decode(out)
}

// GetString performs a GET request and returns the response body as a string.
func (c *SPOClient) GetString(ctx context.Context, url string) (string, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.serviceError(resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}

// Download performs a GET request and streams the response body to path.
// The body is copied as-is with no size cap and no text decoding.
func (c *SPOClient) Download(ctx context.Context, url, path string) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.serviceError(resp)
	}

	return storage.SaveStream(path, resp.Body)
}

// serviceError translates a non-2xx response into a user-visible error,
// preferring the message carried in the OData error payload.
func (c *SPOClient) serviceError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return fmt.Errorf("API error %s (failed to read response body: %w)", resp.Status, err)
	}
	if msg := odataErrorMessage(body); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	return fmt.Errorf("API error: %s\n%s", resp.Status, string(body))
}

// odataErrorMessage extracts the human-readable message from a SharePoint
// error payload. Both the verbose ("odata.error") and minimal-metadata
// ("error") shapes are handled; returns "" when neither matches.
func odataErrorMessage(body []byte) string {
	var verbose struct {
		ODataError struct {
			Message struct {
				Value string `json:"value"`
			} `json:"message"`
		} `json:"odata.error"`
	}
	if err := json.Unmarshal(body, &verbose); err == nil && verbose.ODataError.Message.Value != "" {
		return verbose.ODataError.Message.Value
	}

	var minimal struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &minimal); err == nil && minimal.Error.Message != "" {
		return minimal.Error.Message
	}

	return ""
}

// Backoff: 500ms, 1s, 2s, capped
func backoffDuration(attempt int) time.Duration {
	d := 500 * time.Millisecond
	for i := 0; i < attempt; i++ {
		d *= 2
		if d > 5*time.Second {
			d = 5 * time.Second
			break
		}
	}
	return d
}

func (c *SPOClient) waitIfPaused() {
	for {
		c.pause.Lock()
		now := time.Now()
		until := c.pauseUntil
		c.pause.Unlock()
		if until.IsZero() || now.After(until) || now.Equal(until) {
			return
		}
		time.Sleep(time.Until(until))
	}
}

func (c *SPOClient) setPause(d time.Duration) {
	if d <= 0 {
		d = time.Second
	}
	c.pause.Lock()
	// If there is already a longer pause in place, keep it
	proposed := time.Now().Add(d)
	if proposed.After(c.pauseUntil) {
		c.pauseUntil = proposed
	}
	c.pause.Unlock()
}

func parseRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return time.Second
	}
	if ra := resp.Header.Get("Retry-After"); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
		// Could be a HTTP date; ignore for simplicity
	}
	return time.Second
}

type rateLimitedError struct {
	after time.Duration
}

func (e *rateLimitedError) Error() string {
	return fmt.Sprintf("rate limited by server (retry after %v)", e.after)
}
