package main

import (
    "context"
    "errors"
    "fmt"
    "io"
    "os"
    "strings"
    "time"

    "github.com/spf13/cobra"
    "pkt.systems/pslog"

    "script-console/internal/config"
    "script-console/internal/console"
    "script-console/internal/consoleapi"
    "script-console/internal/httpx"
    "script-console/internal/prefs"
    "script-console/internal/tui"
    "script-console/internal/tui/util"
)

/* ---------- shared wiring ---------- */

func loadBackend(ctx context.Context, g *globals) (config.Config, *consoleapi.Client, error) {
    cfg, err := config.Load(g.configPath)
    if err != nil {
        return config.Config{}, nil, err
    }
    client, err := consoleapi.New(cfg, nil, pslog.Ctx(ctx))
    if err != nil {
        return config.Config{}, nil, err
    }
    return cfg, client, nil
}

// autoDialogs answers the open and save dialogs with preset values, posting
// the answer to the loop as a user would.
type autoDialogs struct {
    loop console.Loop
    ctl  *console.Controller
    path string
    name string
}

func (d *autoDialogs) ShowOpen() { d.loop.Post(func() { d.ctl.ScriptChosen(d.path) }) }
func (d *autoDialogs) ShowSave() { d.loop.Post(func() { d.ctl.FilenameChosen(d.name) }) }

// headless is a controller without a screen.
type headless struct {
    queue   *console.Queue
    editor  *console.MemoryEditor
    dialogs *autoDialogs
    ctl     *console.Controller
}

func newHeadless(ctx context.Context, cfg config.Config, backend console.Backend) (*headless, error) {
    h := &headless{queue: console.NewQueue(0), editor: &console.MemoryEditor{}}
    h.dialogs = &autoDialogs{loop: h.queue}
    ctl, err := console.New(console.Options{
        Context: ctx,
        Editor:  h.editor,
        Dialogs: h.dialogs,
        Backend: backend,
        Loop:    h.queue,
        Logger:  pslog.Ctx(ctx),
        Timeout: cfg.Timeout,
    })
    if err != nil {
        return nil, err
    }
    h.dialogs.ctl = ctl
    h.editor.SetMode(cfg.Mode)
    return h, nil
}

// settle waits for the controller and turns a visible error notice into an error.
func (h *headless) settle(ctx context.Context) error {
    if err := console.Settle(ctx, h.queue, h.ctl); err != nil && !h.ctl.Panels().Error.Visible {
        return err
    }
    if p := h.ctl.Panels(); p.Error.Visible {
        return fmt.Errorf("%s (rerun with -v for details)", p.Error.Text)
    }
    return nil
}

func readScript(cmd *cobra.Command, name string) (string, error) {
    if name == "-" {
        data, err := io.ReadAll(cmd.InOrStdin())
        return string(data), err
    }
    data, err := os.ReadFile(name)
    if err != nil {
        return "", err
    }
    return string(data), nil
}

/* ---------- commands ---------- */

func newTUICmd(g *globals) *cobra.Command {
    return &cobra.Command{
        Use:   "tui",
        Short: "Open the interactive console (default)",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            return runTUI(cmd, g)
        },
    }
}

func runTUI(cmd *cobra.Command, g *globals) error {
    ctx := cmd.Context()
    cfg, client, err := loadBackend(ctx, g)
    if err != nil {
        return err
    }
    logger := pslog.Ctx(ctx)
    logger.Info("console start", "base_url", cfg.BaseURL, "state_dir", cfg.StateDir)
    return tui.Run(tui.Options{
        Context: ctx,
        Config:  cfg,
        Backend: client,
        Prefs:   prefs.NewStore(cfg.StateDir, logger),
        Logger:  logger,
        NoColor: g.noColor,
    })
}

func newRunCmd(g *globals) *cobra.Command {
    return &cobra.Command{
        Use:   "run FILE",
        Short: "Execute a script file (- for stdin) and print its result",
        Args:  cobra.ExactArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            ctx := cmd.Context()
            script, err := readScript(cmd, args[0])
            if err != nil {
                return err
            }
            cfg, client, err := loadBackend(ctx, g)
            if err != nil {
                return err
            }
            h, err := newHeadless(ctx, cfg, client)
            if err != nil {
                return err
            }
            h.editor.SetValue(script)
            h.ctl.Run()
            err = h.settle(ctx)
            printPanels(cmd, h.ctl.Panels())
            if err != nil {
                return err
            }
            if h.ctl.Panels().Stacktrace.Visible {
                return errors.New("script raised an exception")
            }
            return nil
        },
    }
}

// printPanels writes result and output to stdout and everything else to stderr.
func printPanels(cmd *cobra.Command, p console.Panels) {
    stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
    if p.RunningTime.Visible {
        fmt.Fprintf(stderr, "running time: %s\n", p.RunningTime.Text)
    }
    if p.Stacktrace.Visible {
        fmt.Fprintln(stderr, strings.TrimRight(p.Stacktrace.Text, "\n"))
    }
    if p.Output.Visible {
        fmt.Fprint(stdout, p.Output.Text)
        if !strings.HasSuffix(p.Output.Text, "\n") {
            fmt.Fprintln(stdout)
        }
    }
    if p.Result.Visible {
        fmt.Fprintln(stdout, p.Result.Text)
    }
}

func newLoadCmd(g *globals) *cobra.Command {
    var output string
    cmd := &cobra.Command{
        Use:   "load PATH",
        Short: "Fetch a stored script and print it",
        Args:  cobra.ExactArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            ctx := cmd.Context()
            cfg, client, err := loadBackend(ctx, g)
            if err != nil {
                return err
            }
            h, err := newHeadless(ctx, cfg, client)
            if err != nil {
                return err
            }
            h.dialogs.path = args[0]
            h.ctl.Open()
            if err := h.settle(ctx); err != nil {
                return err
            }
            rememberPath(ctx, cfg, args[0])
            if output != "" {
                return os.WriteFile(output, []byte(h.editor.Value()), 0o644)
            }
            _, err = io.WriteString(cmd.OutOrStdout(), h.editor.Value())
            return err
        },
    }
    cmd.Flags().StringVarP(&output, "output", "o", "", "write the script to a file instead of stdout")
    return cmd
}

func newSaveCmd(g *globals) *cobra.Command {
    return &cobra.Command{
        Use:   "save NAME FILE",
        Short: "Store a script file (- for stdin) under NAME",
        Args:  cobra.ExactArgs(2),
        RunE: func(cmd *cobra.Command, args []string) error {
            ctx := cmd.Context()
            script, err := readScript(cmd, args[1])
            if err != nil {
                return err
            }
            cfg, client, err := loadBackend(ctx, g)
            if err != nil {
                return err
            }
            h, err := newHeadless(ctx, cfg, client)
            if err != nil {
                return err
            }
            h.editor.SetValue(script)
            h.dialogs.name = args[0]
            h.ctl.Save()
            if err := h.settle(ctx); err != nil {
                return err
            }
            rememberPath(ctx, cfg, args[0])
            _, err = fmt.Fprintln(cmd.ErrOrStderr(), h.ctl.Panels().Success.Text)
            return err
        },
    }
}

func rememberPath(ctx context.Context, cfg config.Config, path string) {
    store := prefs.NewStore(cfg.StateDir, pslog.Ctx(ctx))
    if _, err := store.Update(func(p *prefs.Prefs) { p.Remember(path) }); err != nil {
        pslog.Ctx(ctx).Warn("recent path not saved", "err", err)
    }
}

func newThemesCmd(g *globals) *cobra.Command {
    cmd := &cobra.Command{
        Use:   "themes",
        Short: "List editor themes; the active one is marked",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            cfg, err := config.Load(g.configPath)
            if err != nil {
                return err
            }
            p, err := prefs.NewStore(cfg.StateDir, pslog.Ctx(cmd.Context())).Load()
            if err != nil {
                return err
            }
            active := p.EffectiveTheme(time.Now())
            if active == "" {
                active = cfg.Theme
            }
            for _, t := range util.Themes() {
                mark := " "
                if t.ID == active {
                    mark = "*"
                }
                fmt.Fprintf(cmd.OutOrStdout(), "%s %-28s %s\n", mark, t.ID, t.Name)
            }
            return nil
        },
    }
    cmd.AddCommand(&cobra.Command{
        Use:   "set ID",
        Short: "Remember a theme for the interactive console",
        Args:  cobra.ExactArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            if util.ThemeIndex(args[0]) < 0 {
                return fmt.Errorf("unknown theme %q (see: script-console themes)", args[0])
            }
            cfg, err := config.Load(g.configPath)
            if err != nil {
                return err
            }
            store := prefs.NewStore(cfg.StateDir, pslog.Ctx(cmd.Context()))
            _, err = store.Update(func(p *prefs.Prefs) { p.SetTheme(args[0], time.Now()) })
            return err
        },
    })
    return cmd
}

func newInitCmd(g *globals) *cobra.Command {
    var force bool
    cmd := &cobra.Command{
        Use:   "init",
        Short: "Write a default config file",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            path := g.configPath
            if path == "" {
                path = config.DefaultPath()
            }
            if err := config.Save(path, config.Default(), force); err != nil {
                return err
            }
            _, err := fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
            return err
        },
    }
    cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
    return cmd
}

func newDoctorCmd(g *globals) *cobra.Command {
    var wait time.Duration
    cmd := &cobra.Command{
        Use:   "doctor",
        Short: "Check the configuration and that the console server answers",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            out := cmd.OutOrStdout()
            cfg, err := config.Load(g.configPath)
            if err != nil {
                fmt.Fprintf(out, "  ✗ config: %v\n", err)
                return err
            }
            fmt.Fprintf(out, "  ✓ config ok (%s)\n", cfg.BaseURL)
            if err := httpx.WaitHTTPUp(cmd.Context(), httpx.NewClient(wait), cfg.BaseURL, wait); err != nil {
                fmt.Fprintf(out, "  ✗ %s not reachable: %v\n", cfg.BaseURL, err)
                return err
            }
            fmt.Fprintf(out, "  ✓ %s reachable\n", cfg.BaseURL)
            return nil
        },
    }
    cmd.Flags().DurationVar(&wait, "wait", 10*time.Second, "how long to wait for the server")
    return cmd
}
