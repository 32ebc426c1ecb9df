package prefs

import (
    "os"
    "path/filepath"
    "testing"
    "time"
)

func TestLoadMissingIsZero(t *testing.T) {
    s := NewStore(filepath.Join(t.TempDir(), "state"), nil)
    p, err := s.Load()
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    if p.Theme != "" || len(p.Recent) != 0 {
        t.Fatalf("expected zero prefs, got %+v", p)
    }
}

func TestSaveLoadRoundTrip(t *testing.T) {
    s := NewStore(filepath.Join(t.TempDir(), "state"), nil)
    now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
    var p Prefs
    p.SetTheme("ace/theme/monokai", now)
    p.Remember("/etc/scripts/a.groovy")
    if err := s.Save(p); err != nil {
        t.Fatalf("save: %v", err)
    }
    got, err := s.Load()
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    if got.Theme != "ace/theme/monokai" || !got.ThemeSet.Equal(now) {
        t.Fatalf("theme not persisted: %+v", got)
    }
    if len(got.Recent) != 1 || got.Recent[0] != "/etc/scripts/a.groovy" {
        t.Fatalf("recent not persisted: %+v", got.Recent)
    }
    if got.UpdatedAt.IsZero() {
        t.Fatalf("expected UpdatedAt to be stamped")
    }
    entries, _ := os.ReadDir(filepath.Dir(s.Path()))
    if len(entries) != 1 {
        t.Fatalf("expected only the prefs file, found %d entries", len(entries))
    }
}

func TestThemeExpires(t *testing.T) {
    now := time.Now()
    var p Prefs
    p.SetTheme("ace/theme/github", now.Add(-ThemeTTL-time.Hour))
    if got := p.EffectiveTheme(now); got != "" {
        t.Fatalf("expected expired theme, got %q", got)
    }
    p.SetTheme("ace/theme/github", now.Add(-time.Hour))
    if got := p.EffectiveTheme(now); got != "ace/theme/github" {
        t.Fatalf("expected theme to be remembered, got %q", got)
    }
}

func TestRememberIsMostRecentFirstAndCapped(t *testing.T) {
    var p Prefs
    for i := 0; i < MaxRecent+3; i++ {
        p.Remember(string(rune('a' + i)))
    }
    p.Remember("c")
    p.Remember("  ")
    if len(p.Recent) != MaxRecent {
        t.Fatalf("expected %d entries, got %d", MaxRecent, len(p.Recent))
    }
    if p.Recent[0] != "c" {
        t.Fatalf("expected re-remembered path first, got %q", p.Recent[0])
    }
    seen := map[string]bool{}
    for _, r := range p.Recent {
        if seen[r] {
            t.Fatalf("duplicate entry %q", r)
        }
        seen[r] = true
    }
}

func TestLoadRejectsGarbage(t *testing.T) {
    dir := t.TempDir()
    if err := os.WriteFile(filepath.Join(dir, FileName), []byte("recent: [unterminated"), 0o644); err != nil {
        t.Fatal(err)
    }
    if _, err := NewStore(dir, nil).Load(); err == nil {
        t.Fatalf("expected parse error")
    }
}
