package config

import (
    "errors"
    "fmt"
    "net/url"
    "os"
    "path/filepath"
    "strings"
    "time"

    "github.com/spf13/viper"
    "gopkg.in/yaml.v3"
)

const (
    StateDirName   = ".script-console"
    ConfigFileName = "config.yaml"

    DefaultBaseURL     = "http://localhost:4502"
    DefaultExecutePath = "/etc/groovyconsole/jcr:content.html"
    DefaultSavePath    = "/bin/groovyconsole/save"
    // {path} is replaced with the escaped repository path of the script.
    DefaultLoadPath = "/crx/server/crx.default/jcr%3aroot{path}/jcr%3Acontent/jcr:data"

    DefaultTheme   = "ace/theme/solarized_dark"
    DefaultMode    = "groovy"
    DefaultTimeout = 2 * time.Minute

    EnvPrefix = "SCRIPT_CONSOLE"
)

// Config is the console configuration. Only fields used by this program are modeled.
type Config struct {
    BaseURL   string
    Endpoints Endpoints
    Username  string
    Password  string
    // Timeout bounds every execute/load/save request; zero disables it.
    Timeout  time.Duration
    Theme    string
    Mode     string
    StateDir string
    LogFile  string
}

// Endpoints are paths relative to BaseURL.
type Endpoints struct {
    Execute string
    Save    string
    Load    string
}

// fileConfig is the on-disk YAML layout.
type fileConfig struct {
    BaseURL   string        `yaml:"base_url"`
    Endpoints fileEndpoints `yaml:"endpoints"`
    Username  string        `yaml:"username,omitempty"`
    Password  string        `yaml:"password,omitempty"`
    Timeout   string        `yaml:"timeout"`
    Theme     string        `yaml:"theme"`
    Mode      string        `yaml:"mode"`
    StateDir  string        `yaml:"state_dir"`
    LogFile   string        `yaml:"log_file,omitempty"`
}

type fileEndpoints struct {
    Execute string `yaml:"execute"`
    Save    string `yaml:"save"`
    Load    string `yaml:"load"`
}

// Default returns the built-in configuration.
func Default() Config {
    return Config{
        BaseURL: DefaultBaseURL,
        Endpoints: Endpoints{
            Execute: DefaultExecutePath,
            Save:    DefaultSavePath,
            Load:    DefaultLoadPath,
        },
        Timeout:  DefaultTimeout,
        Theme:    DefaultTheme,
        Mode:     DefaultMode,
        StateDir: StateDirName,
    }
}

// DefaultPath is the config file looked up when --config is not given.
func DefaultPath() string { return filepath.Join(StateDirName, ConfigFileName) }

// Load reads configuration from path (DefaultPath when empty). A missing file
// yields the defaults; SCRIPT_CONSOLE_* environment variables override both.
func Load(path string) (Config, error) {
    if path == "" {
        path = DefaultPath()
    }
    def := Default()

    v := viper.New()
    v.SetConfigFile(path)
    v.SetConfigType("yaml")
    v.SetEnvPrefix(EnvPrefix)
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()
    v.SetDefault("base_url", def.BaseURL)
    v.SetDefault("endpoints.execute", def.Endpoints.Execute)
    v.SetDefault("endpoints.save", def.Endpoints.Save)
    v.SetDefault("endpoints.load", def.Endpoints.Load)
    v.SetDefault("username", "")
    v.SetDefault("password", "")
    v.SetDefault("timeout", def.Timeout.String())
    v.SetDefault("theme", def.Theme)
    v.SetDefault("mode", def.Mode)
    v.SetDefault("state_dir", def.StateDir)
    v.SetDefault("log_file", "")

    if err := v.ReadInConfig(); err != nil {
        var nf viper.ConfigFileNotFoundError
        if !errors.As(err, &nf) && !errors.Is(err, os.ErrNotExist) {
            return Config{}, fmt.Errorf("read config: %w", err)
        }
    }

    c := Config{
        BaseURL: strings.TrimRight(strings.TrimSpace(v.GetString("base_url")), "/"),
        Endpoints: Endpoints{
            Execute: v.GetString("endpoints.execute"),
            Save:    v.GetString("endpoints.save"),
            Load:    v.GetString("endpoints.load"),
        },
        Username: v.GetString("username"),
        Password: v.GetString("password"),
        Timeout:  v.GetDuration("timeout"),
        Theme:    v.GetString("theme"),
        Mode:     v.GetString("mode"),
        StateDir: v.GetString("state_dir"),
        LogFile:  v.GetString("log_file"),
    }
    if err := c.Validate(); err != nil {
        return Config{}, err
    }
    return c, nil
}

// Validate checks the fields the console cannot run without.
func (c Config) Validate() error {
    u, err := url.Parse(c.BaseURL)
    if err != nil {
        return fmt.Errorf("base_url: %w", err)
    }
    if u.Scheme != "http" && u.Scheme != "https" {
        return fmt.Errorf("base_url must be http or https, got %q", c.BaseURL)
    }
    if u.Host == "" {
        return fmt.Errorf("base_url has no host: %q", c.BaseURL)
    }
    if c.Endpoints.Execute == "" || c.Endpoints.Save == "" || c.Endpoints.Load == "" {
        return errors.New("endpoints.execute, endpoints.save and endpoints.load are required")
    }
    if !strings.Contains(c.Endpoints.Load, "{path}") {
        return fmt.Errorf("endpoints.load must contain {path}: %q", c.Endpoints.Load)
    }
    if c.Timeout < 0 {
        return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
    }
    return nil
}

// Save writes c as YAML. An existing file is kept unless overwrite is set.
func Save(path string, c Config, overwrite bool) error {
    if !overwrite {
        if _, err := os.Stat(path); err == nil {
            return fmt.Errorf("%s already exists; not overwriting", path)
        }
    }
    fc := fileConfig{
        BaseURL: c.BaseURL,
        Endpoints: fileEndpoints{
            Execute: c.Endpoints.Execute,
            Save:    c.Endpoints.Save,
            Load:    c.Endpoints.Load,
        },
        Username: c.Username,
        Password: c.Password,
        Timeout:  c.Timeout.String(),
        Theme:    c.Theme,
        Mode:     c.Mode,
        StateDir: c.StateDir,
        LogFile:  c.LogFile,
    }
    data, err := yaml.Marshal(fc)
    if err != nil {
        return fmt.Errorf("encode config: %w", err)
    }
    if dir := filepath.Dir(path); dir != "" {
        if err := os.MkdirAll(dir, 0o755); err != nil {
            return err
        }
    }
    return os.WriteFile(path, data, 0o600)
}
