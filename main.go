// script-console: terminal console for a remote script-execution endpoint
package main

import (
    "context"
    "fmt"
    "io"
    "log"
    "os"
    "path/filepath"
    "time"

    "github.com/spf13/cobra"
    "pkt.systems/psi"
    "pkt.systems/pslog"

    "script-console/internal/config"
)

const Version = "0.1.0"

func main() {
    psi.Run(submain)
}

func submain(ctx context.Context) int {
    root := newRootCmd()
    root.SetArgs(os.Args[1:])
    if err := root.ExecuteContext(ctx); err != nil {
        fmt.Fprintln(os.Stderr, "script-console:", err)
        return 1
    }
    return 0
}

// globals are the persistent flags shared by every command.
type globals struct {
    configPath string
    verbose    int
    logFile    string
    noColor    bool

    closeLog func()
}

func newRootCmd() *cobra.Command {
    g := &globals{}
    root := &cobra.Command{
        Use:           "script-console",
        Short:         "Edit, load, save and run scripts against a remote script console",
        SilenceErrors: true,
        SilenceUsage:  true,
        PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
            return g.setupLogging(cmd)
        },
        PersistentPostRun: func(cmd *cobra.Command, args []string) {
            if g.closeLog != nil {
                g.closeLog()
            }
        },
        RunE: func(cmd *cobra.Command, args []string) error {
            return runTUI(cmd, g)
        },
    }
    root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "path to config file (default "+config.DefaultPath()+")")
    root.PersistentFlags().CountVarP(&g.verbose, "verbose", "v", "INFO logs with -v, DEBUG logs with -vv")
    root.PersistentFlags().StringVar(&g.logFile, "log-file", "", "append logs to file (created if missing)")
    root.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "disable colors (also honors NO_COLOR)")

    root.AddCommand(newTUICmd(g))
    root.AddCommand(newRunCmd(g))
    root.AddCommand(newLoadCmd(g))
    root.AddCommand(newSaveCmd(g))
    root.AddCommand(newThemesCmd(g))
    root.AddCommand(newInitCmd(g))
    root.AddCommand(newDoctorCmd(g))
    root.AddCommand(newVersionCmd())
    return root
}

// setupLogging installs the command logger. The TUI owns the terminal, so it
// only logs to --log-file; headless commands log to stderr.
func (g *globals) setupLogging(cmd *cobra.Command) error {
    path := g.logFile
    if path == "" {
        if c, err := config.Load(g.configPath); err == nil {
            path = c.LogFile
        }
    }
    interactive := cmd.Name() == "tui" || cmd.Parent() == nil
    var w io.Writer = os.Stderr
    mode := pslog.ModeConsole
    switch {
    case path != "":
        f, err := openLogFile(path)
        if err != nil {
            return fmt.Errorf("open log file: %w", err)
        }
        g.closeLog = func() { _ = f.Close() }
        w = f
        mode = pslog.ModeStructured
    case interactive:
        w = io.Discard
    }
    opts := pslog.Options{
        Mode:     mode,
        NoColor:  g.noColor || mode == pslog.ModeStructured,
        MinLevel: pslog.ErrorLevel,
    }
    switch {
    case g.verbose >= 2:
        opts.MinLevel = pslog.DebugLevel
    case g.verbose == 1:
        opts.MinLevel = pslog.InfoLevel
    }
    logger := pslog.NewWithOptions(w, opts)
    log.SetOutput(pslog.LogLogger(logger).Writer())
    log.SetFlags(0)
    cmd.SetContext(pslog.ContextWithLogger(cmd.Context(), logger))
    return nil
}

func openLogFile(path string) (*os.File, error) {
    if dir := filepath.Dir(path); dir != "." && dir != "" {
        _ = os.MkdirAll(dir, 0o755)
    }
    f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
    if err != nil {
        return nil, err
    }
    _, _ = fmt.Fprintf(f, "=== script-console %s started at %s ===\n", Version, time.Now().Format(time.RFC3339))
    return f, nil
}

func newVersionCmd() *cobra.Command {
    return &cobra.Command{
        Use:   "version",
        Short: "Print version",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            _, err := fmt.Fprintln(cmd.OutOrStdout(), "script-console", Version)
            return err
        },
    }
}
