package main

import (
    "bytes"
    "context"
    "net/http"
    "net/http/httptest"
    "os"
    "path/filepath"
    "strings"
    "sync"
    "testing"

    "script-console/internal/config"
    "script-console/internal/prefs"
)

type consoleServer struct {
    mu    sync.Mutex
    saved map[string]string
}

func (s *consoleServer) handler() http.Handler {
    mux := http.NewServeMux()
    mux.HandleFunc("/etc/groovyconsole/jcr:content.html", func(w http.ResponseWriter, r *http.Request) {
        if err := r.ParseForm(); err != nil {
            http.Error(w, err.Error(), http.StatusBadRequest)
            return
        }
        w.Header().Set("Content-Type", "application/json")
        if r.PostForm.Get("script") == "boom" {
            _, _ = w.Write([]byte(`{"stacktraceText":"java.lang.RuntimeException: boom"}`))
            return
        }
        _, _ = w.Write([]byte(`{"executionResult":"2","outputText":"hi\n","runningTime":"00:00:00.005"}`))
    })
    mux.HandleFunc("/bin/groovyconsole/save", func(w http.ResponseWriter, r *http.Request) {
        if err := r.ParseForm(); err != nil {
            http.Error(w, err.Error(), http.StatusBadRequest)
            return
        }
        s.mu.Lock()
        if s.saved == nil {
            s.saved = map[string]string{}
        }
        s.saved[r.PostForm.Get("fileName")] = r.PostForm.Get("scriptContent")
        s.mu.Unlock()
    })
    mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
        if strings.HasSuffix(r.URL.Path, "/jcr:content/jcr:data") {
            _, _ = w.Write([]byte("println 'stored'"))
            return
        }
        http.NotFound(w, r)
    })
    return mux
}

// setup writes a config pointing at a fake console server and returns its path.
func setup(t *testing.T) (string, *consoleServer, string) {
    t.Helper()
    cs := &consoleServer{}
    srv := httptest.NewServer(cs.handler())
    t.Cleanup(srv.Close)
    dir := t.TempDir()
    cfg := config.Default()
    cfg.BaseURL = srv.URL
    cfg.StateDir = filepath.Join(dir, "state")
    path := filepath.Join(dir, "config.yaml")
    if err := config.Save(path, cfg, false); err != nil {
        t.Fatalf("save config: %v", err)
    }
    return path, cs, dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
    t.Helper()
    root := newRootCmd()
    var stdout, stderr bytes.Buffer
    root.SetOut(&stdout)
    root.SetErr(&stderr)
    root.SetArgs(args)
    err := root.ExecuteContext(context.Background())
    return stdout.String(), stderr.String(), err
}

func TestRunCommandPrintsResult(t *testing.T) {
    cfgPath, _, dir := setup(t)
    script := filepath.Join(dir, "a.groovy")
    if err := os.WriteFile(script, []byte("1+1"), 0o644); err != nil {
        t.Fatal(err)
    }
    out, errOut, err := execute(t, "-c", cfgPath, "run", script)
    if err != nil {
        t.Fatalf("run: %v", err)
    }
    if out != "hi\n2\n" {
        t.Fatalf("unexpected stdout %q", out)
    }
    if !strings.Contains(errOut, "running time: 00:00:00.005") {
        t.Fatalf("expected running time on stderr, got %q", errOut)
    }
}

func TestRunCommandFailsOnStacktrace(t *testing.T) {
    cfgPath, _, dir := setup(t)
    script := filepath.Join(dir, "boom.groovy")
    if err := os.WriteFile(script, []byte("boom"), 0o644); err != nil {
        t.Fatal(err)
    }
    _, errOut, err := execute(t, "-c", cfgPath, "run", script)
    if err == nil {
        t.Fatalf("expected error for a script that raised")
    }
    if !strings.Contains(errOut, "RuntimeException: boom") {
        t.Fatalf("expected stacktrace on stderr, got %q", errOut)
    }
}

func TestLoadCommandRemembersPath(t *testing.T) {
    cfgPath, _, dir := setup(t)
    out, _, err := execute(t, "-c", cfgPath, "load", "/etc/scripts/a.groovy")
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    if out != "println 'stored'" {
        t.Fatalf("unexpected script %q", out)
    }
    p, err := prefs.NewStore(filepath.Join(dir, "state"), nil).Load()
    if err != nil || len(p.Recent) != 1 || p.Recent[0] != "/etc/scripts/a.groovy" {
        t.Fatalf("expected path remembered, got %+v (%v)", p, err)
    }
}

func TestSaveCommandPostsScript(t *testing.T) {
    cfgPath, cs, dir := setup(t)
    script := filepath.Join(dir, "b.groovy")
    if err := os.WriteFile(script, []byte("println 'b'"), 0o644); err != nil {
        t.Fatal(err)
    }
    if _, _, err := execute(t, "-c", cfgPath, "save", "b.groovy", script); err != nil {
        t.Fatalf("save: %v", err)
    }
    cs.mu.Lock()
    defer cs.mu.Unlock()
    if cs.saved["b.groovy"] != "println 'b'" {
        t.Fatalf("expected script stored, got %+v", cs.saved)
    }
}

func TestSaveCommandRejectsEmptyScript(t *testing.T) {
    cfgPath, _, dir := setup(t)
    script := filepath.Join(dir, "empty.groovy")
    if err := os.WriteFile(script, nil, 0o644); err != nil {
        t.Fatal(err)
    }
    _, _, err := execute(t, "-c", cfgPath, "save", "empty.groovy", script)
    if err == nil || !strings.Contains(err.Error(), "Script is empty.") {
        t.Fatalf("expected empty-script error, got %v", err)
    }
}

func TestThemesSetAndList(t *testing.T) {
    cfgPath, _, _ := setup(t)
    if _, _, err := execute(t, "-c", cfgPath, "themes", "set", "ace/theme/monokai"); err != nil {
        t.Fatalf("themes set: %v", err)
    }
    out, _, err := execute(t, "-c", cfgPath, "themes")
    if err != nil {
        t.Fatalf("themes: %v", err)
    }
    if !strings.Contains(out, "* ace/theme/monokai") {
        t.Fatalf("expected monokai marked active:\n%s", out)
    }
    if _, _, err := execute(t, "-c", cfgPath, "themes", "set", "ace/theme/nope"); err == nil {
        t.Fatalf("expected unknown theme to be rejected")
    }
}

func TestInitDoesNotOverwrite(t *testing.T) {
    path := filepath.Join(t.TempDir(), "config.yaml")
    if _, _, err := execute(t, "-c", path, "init"); err != nil {
        t.Fatalf("init: %v", err)
    }
    if _, _, err := execute(t, "-c", path, "init"); err == nil {
        t.Fatalf("expected second init to refuse overwriting")
    }
    if _, _, err := execute(t, "-c", path, "init", "--force"); err != nil {
        t.Fatalf("init --force: %v", err)
    }
}

func TestDoctorReachesServer(t *testing.T) {
    cfgPath, _, _ := setup(t)
    out, _, err := execute(t, "-c", cfgPath, "doctor", "--wait", "2s")
    if err != nil {
        t.Fatalf("doctor: %v", err)
    }
    if !strings.Contains(out, "reachable") {
        t.Fatalf("unexpected doctor output %q", out)
    }
}
