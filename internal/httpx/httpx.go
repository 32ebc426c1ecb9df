package httpx

import (
    "context"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"
    "time"
)

var (
    DefaultTimeout = 20 * time.Second
)

// StatusError reports a response outside the 2xx range.
type StatusError struct {
    Method string
    URL    string
    Code   int
    Body   string
}

func (e *StatusError) Error() string {
    if e.Body == "" {
        return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.Code)
    }
    return fmt.Sprintf("%s %s: %s (%d)", e.Method, e.URL, e.Body, e.Code)
}

// NewClient returns an http.Client with the given overall timeout
// (DefaultTimeout when zero).
func NewClient(timeout time.Duration) *http.Client {
    if timeout <= 0 {
        timeout = DefaultTimeout
    }
    return &http.Client{Timeout: timeout}
}

// NewContextClient returns an http.Client without an overall timeout.
// Requests are bounded only by their context.
func NewContextClient() *http.Client {
    return &http.Client{}
}

// Get issues a GET and returns the full response body.
func Get(ctx context.Context, c *http.Client, rawURL string, hdr http.Header) ([]byte, error) {
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
    if err != nil {
        return nil, err
    }
    copyHeader(req.Header, hdr)
    return Do(c, req)
}

// PostForm issues a form-encoded POST and returns the full response body.
func PostForm(ctx context.Context, c *http.Client, rawURL string, form url.Values, hdr http.Header) ([]byte, error) {
    req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
    if err != nil {
        return nil, err
    }
    copyHeader(req.Header, hdr)
    req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
    return Do(c, req)
}

// Do sends req and reads the body; non-2xx responses become *StatusError.
func Do(c *http.Client, req *http.Request) ([]byte, error) {
    if c == nil {
        c = http.DefaultClient
    }
    resp, err := c.Do(req)
    if err != nil {
        return nil, err
    }
    defer resp.Body.Close()
    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
        return nil, &StatusError{
            Method: req.Method,
            URL:    req.URL.Redacted(),
            Code:   resp.StatusCode,
            Body:   strings.TrimSpace(string(b)),
        }
    }
    all, err := io.ReadAll(resp.Body)
    if err != nil {
        return nil, err
    }
    return all, nil
}

// WaitHTTPUp polls url until it answers below 500 or timeout elapses.
func WaitHTTPUp(ctx context.Context, c *http.Client, url string, timeout time.Duration) error {
    deadline := time.Now().Add(timeout)
    for {
        if time.Now().After(deadline) {
            return fmt.Errorf("timeout waiting for %s", url)
        }
        req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
        if err != nil {
            return err
        }
        resp, err := c.Do(req)
        if err == nil && resp.StatusCode < 500 {
            resp.Body.Close()
            return nil
        }
        if resp != nil && resp.Body != nil {
            resp.Body.Close()
        }
        select {
        case <-ctx.Done():
            return ctx.Err()
        case <-time.After(300 * time.Millisecond):
        }
    }
}

func copyHeader(dst, src http.Header) {
    for k, vs := range src {
        for _, v := range vs {
            dst.Add(k, v)
        }
    }
}
