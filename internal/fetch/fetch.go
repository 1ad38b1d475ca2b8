package fetch

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Result is the outcome of fetching one URL. Exactly one of two
// shapes occurs: a transport failure (ErrorMessage set, StatusCode
// zero) or a completed response (StatusCode set, ErrorMessage empty).
type Result struct {
	// StatusCode is the HTTP status, or 0 on transport failure.
	StatusCode int

	// Headers are the response headers. Nil on transport failure.
	Headers http.Header

	// Body is the response body, capped at the client's body limit.
	Body []byte

	// RedirectLocation is the raw Location header of a 3xx response.
	RedirectLocation string

	// Elapsed is the wall time from request start to body read end.
	Elapsed time.Duration

	// ErrorMessage describes a transport failure (DNS, TLS, timeout).
	ErrorMessage string
}

// OK reports whether the fetch produced an HTTP response at all.
func (r *Result) OK() bool {
	return r.ErrorMessage == ""
}

// IsRedirect reports whether the response is a 3xx with a Location.
func (r *Result) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400 && r.RedirectLocation != ""
}

// Client fetches pages one request at a time.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	maxBodySize int64
}

// NewClient returns a page fetch client. Redirects are never
// followed; the caller sees each hop.
func NewClient(timeout time.Duration, userAgent string, maxBodySize int64) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent:   userAgent,
		maxBodySize: maxBodySize,
	}
}

// Fetch retrieves one URL. It always returns a usable Result; see the
// Result shape contract for how failures are represented.
func (c *Client) Fetch(ctx context.Context, rawURL string) *Result {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &Result{ErrorMessage: err.Error(), Elapsed: time.Since(start)}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Result{ErrorMessage: err.Error(), Elapsed: time.Since(start)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		// A partial body after a good status line is still a transport
		// failure: truncated documents would skew the content analysis.
		return &Result{ErrorMessage: err.Error(), Elapsed: time.Since(start)}
	}

	return &Result{
		StatusCode:       resp.StatusCode,
		Headers:          resp.Header,
		Body:             body,
		RedirectLocation: resp.Header.Get("Location"),
		Elapsed:          time.Since(start),
	}
}
