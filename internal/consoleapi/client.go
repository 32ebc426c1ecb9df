package consoleapi

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "net/url"
    "strings"

    "github.com/google/uuid"
    "pkt.systems/pslog"

    "script-console/internal/config"
    "script-console/internal/httpx"
)

// ExecutionResult is the execution endpoint's response. Every field is
// optional; an absent or null field decodes to "".
type ExecutionResult struct {
    ExecutionResult string `json:"executionResult,omitempty"`
    OutputText      string `json:"outputText,omitempty"`
    StacktraceText  string `json:"stacktraceText,omitempty"`
    RunningTime     string `json:"runningTime,omitempty"`
}

// Failed reports whether the script itself raised (a stacktrace was returned).
func (r ExecutionResult) Failed() bool { return r.StacktraceText != "" }

// Client talks to the execute, load and save endpoints of a console server.
type Client struct {
    base     *url.URL
    ep       config.Endpoints
    http     *http.Client
    username string
    password string
    log      pslog.Logger
}

// New builds a Client from configuration. logger may be nil. A nil hc gets a
// client without an overall timeout; c.Timeout is applied per request by the
// caller's context.
func New(c config.Config, hc *http.Client, logger pslog.Logger) (*Client, error) {
    base, err := url.Parse(strings.TrimRight(c.BaseURL, "/"))
    if err != nil {
        return nil, fmt.Errorf("parse base url: %w", err)
    }
    if hc == nil {
        hc = httpx.NewContextClient()
    }
    return &Client{
        base:     base,
        ep:       c.Endpoints,
        http:     hc,
        username: c.Username,
        password: c.Password,
        log:      logger,
    }, nil
}

// Execute submits script for remote execution.
func (c *Client) Execute(ctx context.Context, script string) (ExecutionResult, error) {
    target := c.resolve(c.ep.Execute)
    body, err := httpx.PostForm(ctx, c.http, target, url.Values{"script": {script}}, c.headers(ctx, "execute"))
    if err != nil {
        return ExecutionResult{}, fmt.Errorf("execute: %w", err)
    }
    var out ExecutionResult
    if err := json.Unmarshal(body, &out); err != nil {
        return ExecutionResult{}, fmt.Errorf("execute: decode response: %w", err)
    }
    return out, nil
}

// Load fetches the raw text of the script stored at path.
func (c *Client) Load(ctx context.Context, path string) (string, error) {
    target, err := c.LoadURL(path)
    if err != nil {
        return "", err
    }
    body, err := httpx.Get(ctx, c.http, target, c.headers(ctx, "load"))
    if err != nil {
        return "", fmt.Errorf("load %s: %w", path, err)
    }
    return string(body), nil
}

// Save stores content under fileName.
func (c *Client) Save(ctx context.Context, fileName, content string) error {
    target := c.resolve(c.ep.Save)
    form := url.Values{
        "fileName":      {fileName},
        "scriptContent": {content},
    }
    if _, err := httpx.PostForm(ctx, c.http, target, form, c.headers(ctx, "save")); err != nil {
        return fmt.Errorf("save %s: %w", fileName, err)
    }
    return nil
}

// LoadURL returns the repository URL a script path is read from.
func (c *Client) LoadURL(path string) (string, error) {
    path = strings.TrimSpace(path)
    if path == "" {
        return "", errors.New("load: empty script path")
    }
    if !strings.HasPrefix(path, "/") {
        path = "/" + path
    }
    segs := strings.Split(path, "/")
    for i, s := range segs {
        segs[i] = url.PathEscape(s)
    }
    return c.resolve(strings.Replace(c.ep.Load, "{path}", strings.Join(segs, "/"), 1)), nil
}

func (c *Client) resolve(p string) string {
    if !strings.HasPrefix(p, "/") {
        p = "/" + p
    }
    return c.base.String() + p
}

func (c *Client) headers(ctx context.Context, op string) http.Header {
    id := uuid.NewString()
    h := http.Header{}
    h.Set("X-Request-Id", id)
    h.Set("Accept", "application/json, text/plain, */*")
    if c.username != "" {
        req := http.Request{Header: http.Header{}}
        req.SetBasicAuth(c.username, c.password)
        h.Set("Authorization", req.Header.Get("Authorization"))
    }
    if log := c.logger(ctx); log != nil {
        log.Debug("console request", "op", op, "request_id", id)
    }
    return h
}

func (c *Client) logger(ctx context.Context) pslog.Logger {
    if c.log != nil {
        return c.log
    }
    if ctx == nil {
        return nil
    }
    return pslog.Ctx(ctx)
}
