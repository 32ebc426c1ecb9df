package consoleapi

import (
    "context"
    "errors"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "script-console/internal/config"
    "script-console/internal/httpx"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
    t.Helper()
    srv := httptest.NewServer(h)
    t.Cleanup(srv.Close)
    c := config.Default()
    c.BaseURL = srv.URL
    c.Username = "admin"
    c.Password = "secret"
    cl, err := New(c, srv.Client(), nil)
    if err != nil {
        t.Fatalf("new client: %v", err)
    }
    return cl
}

func TestExecutePostsScriptAndDecodesResult(t *testing.T) {
    var gotScript, gotPath, gotID string
    var authOK bool
    cl := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        gotPath = r.URL.Path
        gotScript = r.FormValue("script")
        gotID = r.Header.Get("X-Request-Id")
        u, p, ok := r.BasicAuth()
        authOK = ok && u == "admin" && p == "secret"
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(`{"executionResult":"2","outputText":"","stacktraceText":null,"runningTime":"5ms"}`))
    }))

    res, err := cl.Execute(context.Background(), "1+1")
    if err != nil {
        t.Fatalf("execute: %v", err)
    }
    if gotPath != config.DefaultExecutePath || gotScript != "1+1" {
        t.Fatalf("unexpected request: path=%q script=%q", gotPath, gotScript)
    }
    if gotID == "" || !authOK {
        t.Fatalf("expected request id and basic auth, id=%q auth=%v", gotID, authOK)
    }
    if res.ExecutionResult != "2" || res.RunningTime != "5ms" || res.StacktraceText != "" || res.Failed() {
        t.Fatalf("unexpected result: %+v", res)
    }
}

func TestExecuteRejectsMalformedBody(t *testing.T) {
    cl := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        _, _ = w.Write([]byte("<html>login</html>"))
    }))
    if _, err := cl.Execute(context.Background(), "x"); err == nil {
        t.Fatalf("expected decode error")
    }
}

func TestLoadUsesRepositoryPath(t *testing.T) {
    var gotRaw string
    cl := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        gotRaw = r.URL.EscapedPath()
        _, _ = w.Write([]byte("println 'hi'"))
    }))

    text, err := cl.Load(context.Background(), "/etc/groovyconsole/scripts/hello.groovy")
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    if text != "println 'hi'" {
        t.Fatalf("unexpected text: %q", text)
    }
    want := "/crx/server/crx.default/jcr%3aroot/etc/groovyconsole/scripts/hello.groovy/jcr%3Acontent/jcr:data"
    if gotRaw != want {
        t.Fatalf("unexpected path:\n got %s\nwant %s", gotRaw, want)
    }
}

func TestLoadEscapesSegments(t *testing.T) {
    cl := newTestClient(t, http.NotFoundHandler())
    u, err := cl.LoadURL("scripts/my script.groovy")
    if err != nil {
        t.Fatalf("load url: %v", err)
    }
    if want := "/jcr%3aroot/scripts/my%20script.groovy/"; !strings.Contains(u, want) {
        t.Fatalf("expected %q in %q", want, u)
    }
    if _, err := cl.LoadURL("  "); err == nil {
        t.Fatalf("expected error for empty path")
    }
}

func TestSavePostsNameAndContent(t *testing.T) {
    var name, content string
    cl := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        name = r.FormValue("fileName")
        content = r.FormValue("scriptContent")
    }))
    if err := cl.Save(context.Background(), "hello", "println 1"); err != nil {
        t.Fatalf("save: %v", err)
    }
    if name != "hello" || content != "println 1" {
        t.Fatalf("unexpected form: name=%q content=%q", name, content)
    }
}

func TestSaveSurfacesStatusError(t *testing.T) {
    cl := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusInternalServerError)
    }))
    err := cl.Save(context.Background(), "x", "y")
    var se *httpx.StatusError
    if !errors.As(err, &se) || se.Code != http.StatusInternalServerError {
        t.Fatalf("expected wrapped status error, got %v", err)
    }
}

func TestDefaultClientLeavesTimeoutToContext(t *testing.T) {
    prev := httpx.DefaultTimeout
    httpx.DefaultTimeout = 50 * time.Millisecond
    defer func() { httpx.DefaultTimeout = prev }()

    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        time.Sleep(200 * time.Millisecond)
        _, _ = w.Write([]byte(`{"executionResult":"done"}`))
    }))
    defer srv.Close()
    c := config.Default()
    c.BaseURL = srv.URL
    cl, err := New(c, nil, nil)
    if err != nil {
        t.Fatalf("new client: %v", err)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    res, err := cl.Execute(ctx, "sleep(200)")
    if err != nil || res.ExecutionResult != "done" {
        t.Fatalf("expected slow script to finish within the context deadline, got %+v (%v)", res, err)
    }

    short, cancelShort := context.WithTimeout(context.Background(), 20*time.Millisecond)
    defer cancelShort()
    if _, err := cl.Execute(short, "sleep(200)"); !errors.Is(err, context.DeadlineExceeded) {
        t.Fatalf("expected context deadline to bound the request, got %v", err)
    }
}
