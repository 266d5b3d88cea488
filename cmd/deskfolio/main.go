// Package main provides the CLI entrypoint for deskfolio.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/deskfolio/internal/chat"
	"github.com/verte-zerg/deskfolio/internal/config"
	"github.com/verte-zerg/deskfolio/internal/settings"
	"github.com/verte-zerg/deskfolio/internal/store"
	"github.com/verte-zerg/deskfolio/internal/theme"
	"github.com/verte-zerg/deskfolio/internal/tui"
	"github.com/verte-zerg/deskfolio/internal/windows"
)

const defaultLogLevel = "info"

var (
	dbPath         string
	chatDelay      time.Duration
	appearanceFile string
	logLevel       string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "deskfolio",
		Short:         "Terminal desktop portfolio",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDesktopCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "settings database path")
	rootCmd.Flags().DurationVar(&chatDelay, "chat-delay", chat.DefaultDelay, "simulated assistant thinking time")
	rootCmd.Flags().StringVar(&appearanceFile, "appearance-file", config.DefaultAppearancePath(), "file holding the host color scheme (dark or light)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newThemeCmd())
	rootCmd.AddCommand(newShowCmd())

	return rootCmd
}

func runDesktopCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "db", &dbPath, fileCfg.Storage.DB)
	applyDurationConfig(cmd, "chat-delay", &chatDelay, fileCfg.Chat.Delay)
	applyStringConfig(cmd, "appearance-file", &appearanceFile, fileCfg.Appearance.SignalFile)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	logPath := config.DefaultLogPath()
	if fileCfg.Log.File != nil {
		logPath = *fileCfg.Log.File
	}

	logger, logFile, err := config.OpenLogger(logPath, logLevel)
	if err != nil {
		return err
	}
	defer closeQuietly(logFile)

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	prefs := settings.New(st, logger)
	if _, err := prefs.Load(ctx); err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	host, toggle, stop := hostSignal(ctx, appearanceFile, logger)
	defer stop()
	resolver := theme.NewResolver(st, host, logger)
	defer resolver.Close()
	if err := resolver.Load(ctx); err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}

	script := chat.NewScript(nil)
	if fileCfg.Chat.Script != nil {
		script, err = chat.LoadScript(*fileCfg.Chat.Script)
		if err != nil {
			return fmt.Errorf("failed to load reply script: %w", err)
		}
	}
	greeting := chat.DefaultGreeting
	if fileCfg.Chat.Greeting != nil {
		greeting = *fileCfg.Chat.Greeting
	}
	sim := chat.New(chat.Options{
		Delay:    chatDelay,
		Greeting: greeting,
		Script:   script,
		Logger:   logger,
	})
	defer sim.Close()

	model := tui.NewModel(tui.Options{
		Settings:   prefs,
		Theme:      resolver,
		Windows:    windows.NewManager(),
		Chat:       sim,
		ToggleHost: toggle,
		Logger:     logger,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	model.Subscribe(program.Send)
	logger.Info("desktop started", "db", dbPath, "appearance", appearanceFile)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run desktop: %w", err)
	}
	return nil
}

// hostSignal watches the appearance file. When it cannot be watched, an
// in-memory switch seeded from the terminal background takes its place.
func hostSignal(ctx context.Context, path string, logger *slog.Logger) (theme.Signal, func() error, func()) {
	sig, err := theme.NewFileSignal(path, logger)
	if err != nil {
		logger.Warn("appearance file unavailable, using terminal background", "err", err)
		sw := theme.NewSwitch(lipgloss.HasDarkBackground())
		return sw, func() error {
			sw.Toggle()
			return nil
		}, func() {}
	}
	go sig.Run(ctx)
	return sig, sig.Toggle, func() {
		closeQuietly(sig)
	}
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		logErrf("failed to close: %v\n", err)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *config.Duration) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value.Duration
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
