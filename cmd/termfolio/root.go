package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/glabrego/termfolio/internal/app"
	"github.com/glabrego/termfolio/internal/config"
	"github.com/glabrego/termfolio/internal/content"
	"github.com/glabrego/termfolio/internal/logger"
	"github.com/glabrego/termfolio/internal/profile"
	"github.com/glabrego/termfolio/internal/shell"
	"github.com/glabrego/termfolio/internal/storage"
	"github.com/glabrego/termfolio/internal/tui"
	"github.com/glabrego/termfolio/internal/tui/platform"
)

const startupTimeout = 15 * time.Second

// runtime is everything a front-end needs, opened once per invocation.
type runtime struct {
	cfg    config.Config
	app    *app.App
	repo   *storage.Repository
	logOut io.Closer
}

func (r *runtime) Close() {
	if err := r.repo.Close(); err != nil {
		logger.Warn("could not close storage", "err", err)
	}
	_ = r.logOut.Close()
}

type options struct {
	v          *viper.Viper
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &options{v: config.NewViper()}

	root := &cobra.Command{
		Use:          "termfolio",
		Short:        "A personal portfolio that lives in the terminal",
		Long:         "termfolio renders a portfolio, its blog posts and projects as a terminal UI or a line-mode shell.",
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default ./termfolio.yaml)")
	flags.String(config.KeyContent, "", "content base URL or directory (default ./site)")
	flags.String(config.KeyDB, "", "preference database path (default termfolio.db)")
	flags.String(config.KeyProfile, "", "profile YAML file (default built-in profile)")
	flags.String(config.KeyLogLevel, "", "log level: debug, info, warn or error")
	flags.String(config.KeyLogFile, "", "log file, '-' discards logs")
	flags.String(config.KeySection, "", "section to open: home, blogs, projects, contacts or terminal")
	flags.String(config.KeyLocation, "", "start location, e.g. '/?tags=go#blogs'")
	for _, key := range []string{config.KeyContent, config.KeyDB, config.KeyProfile, config.KeyLogLevel, config.KeyLogFile, config.KeySection, config.KeyLocation} {
		if err := opts.v.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(tuiCmd(opts), shellCmd(opts), execCmd(opts), versionCmd())
	return root
}

func tuiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the full-screen terminal UI (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
}

func shellCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run the line-mode shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := open(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer rt.Close()
			return shell.New(rt.app, os.Stdin, cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
}

func execCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command...>",
		Short: "Run one portfolio command and print its output",
		Example: "  termfolio exec bio\n" +
			"  termfolio exec grep kubernetes blogs",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := open(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer rt.Close()
			line := strings.Join(args, " ")
			_, err = shell.New(rt.app, os.Stdin, cmd.OutOrStdout()).Exec(cmd.Context(), line, false)
			if errors.Is(err, shell.ErrNotFound) {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return err
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "termfolio %s\n", version)
		},
	}
}

func runTUI(ctx context.Context, opts *options) error {
	rt, err := open(ctx, opts, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	model := tui.NewModel(rt.app, tui.Options{TipInterval: rt.cfg.TipInterval})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// open loads configuration and builds the app. The TUI owns the terminal, so
// its logs go to a file next to the database unless one is configured.
func open(ctx context.Context, opts *options, fullScreen bool) (*runtime, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.Load(opts.v, opts.configFile)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logFile := cfg.LogFile
	if fullScreen && logFile == "" {
		logFile = filepath.Join(filepath.Dir(cfg.DBPath), "termfolio.log")
	}
	logOut, err := logger.Configure(cfg.LogLevel, logFile)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		_ = logOut.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	rt := &runtime{cfg: cfg, repo: repo, logOut: logOut}

	initCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()
	if err := repo.Init(initCtx); err != nil {
		rt.Close()
		return nil, fmt.Errorf("storage schema error: %w", err)
	}
	if err := repo.CheckWritable(initCtx); err != nil {
		rt.Close()
		return nil, fmt.Errorf("storage write check failed (%v). Verify %s_DB is writable: %s", err, config.EnvPrefix, cfg.DBPath)
	}

	prof := profile.Default()
	if cfg.ProfilePath != "" {
		if prof, err = profile.Load(cfg.ProfilePath); err != nil {
			rt.Close()
			return nil, err
		}
	}
	start, err := cfg.StartLocation()
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.app, err = app.New(initCtx, app.Options{
		Profile:   prof,
		Fetcher:   content.NewClient(cfg.Content, nil),
		Store:     repo,
		Start:     start,
		HeadLines: cfg.HeadLines,
		OpenURL:   platform.OpenURLInBrowser,
	})
	if err != nil {
		rt.Close()
		return nil, err
	}
	logger.Debug("termfolio started", "content", cfg.Content, "db", cfg.DBPath, "start", start.String())
	return rt, nil
}
