package prefs

import (
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"
    "time"

    "gopkg.in/yaml.v3"
    "pkt.systems/pslog"
)

const (
    FileName = "prefs.yaml"

    // ThemeTTL is how long a chosen theme is remembered.
    ThemeTTL = 365 * 24 * time.Hour

    MaxRecent = 10
)

// Prefs are the user choices remembered between sessions.
type Prefs struct {
    Theme     string    `yaml:"theme,omitempty"`
    ThemeSet  time.Time `yaml:"theme_set,omitempty"`
    Recent    []string  `yaml:"recent,omitempty"`
    UpdatedAt time.Time `yaml:"updated_at,omitempty"`
}

// EffectiveTheme returns the remembered theme, or "" once it has expired.
func (p Prefs) EffectiveTheme(now time.Time) string {
    if p.Theme == "" {
        return ""
    }
    if !p.ThemeSet.IsZero() && now.Sub(p.ThemeSet) > ThemeTTL {
        return ""
    }
    return p.Theme
}

// SetTheme records theme as chosen at now.
func (p *Prefs) SetTheme(theme string, now time.Time) {
    p.Theme = theme
    p.ThemeSet = now
}

// Remember moves path to the front of the recent list.
func (p *Prefs) Remember(path string) {
    path = strings.TrimSpace(path)
    if path == "" {
        return
    }
    out := make([]string, 0, len(p.Recent)+1)
    out = append(out, path)
    for _, r := range p.Recent {
        if r != path {
            out = append(out, r)
        }
    }
    if len(out) > MaxRecent {
        out = out[:MaxRecent]
    }
    p.Recent = out
}

// Store reads and writes Prefs under a state directory.
type Store struct {
    dir string
    log pslog.Logger
}

func NewStore(dir string, logger pslog.Logger) *Store {
    return &Store{dir: dir, log: logger}
}

func (s *Store) Path() string { return filepath.Join(s.dir, FileName) }

// Load returns the stored prefs. A missing file yields zero Prefs.
func (s *Store) Load() (Prefs, error) {
    var p Prefs
    data, err := os.ReadFile(s.Path())
    if errors.Is(err, os.ErrNotExist) {
        return p, nil
    }
    if err != nil {
        return p, fmt.Errorf("read prefs: %w", err)
    }
    if err := yaml.Unmarshal(data, &p); err != nil {
        return Prefs{}, fmt.Errorf("parse prefs %s: %w", s.Path(), err)
    }
    return p, nil
}

// Save replaces the stored prefs atomically.
func (s *Store) Save(p Prefs) error {
    if err := os.MkdirAll(s.dir, 0o755); err != nil {
        return fmt.Errorf("create state dir: %w", err)
    }
    p.UpdatedAt = time.Now().UTC()
    data, err := yaml.Marshal(p)
    if err != nil {
        return fmt.Errorf("encode prefs: %w", err)
    }
    tmp, err := os.CreateTemp(s.dir, FileName+".*")
    if err != nil {
        return fmt.Errorf("write prefs: %w", err)
    }
    if _, err := tmp.Write(data); err != nil {
        tmp.Close()
        os.Remove(tmp.Name())
        return fmt.Errorf("write prefs: %w", err)
    }
    if err := tmp.Close(); err != nil {
        os.Remove(tmp.Name())
        return fmt.Errorf("write prefs: %w", err)
    }
    if err := os.Rename(tmp.Name(), s.Path()); err != nil {
        os.Remove(tmp.Name())
        return fmt.Errorf("write prefs: %w", err)
    }
    if s.log != nil {
        s.log.Debug("prefs saved", "path", s.Path(), "recent", len(p.Recent))
    }
    return nil
}

// Update loads, applies fn and saves.
func (s *Store) Update(fn func(*Prefs)) (Prefs, error) {
    p, err := s.Load()
    if err != nil {
        return p, err
    }
    fn(&p)
    return p, s.Save(p)
}
