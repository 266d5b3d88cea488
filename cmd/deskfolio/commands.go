package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/verte-zerg/deskfolio/internal/chat"
	"github.com/verte-zerg/deskfolio/internal/config"
	"github.com/verte-zerg/deskfolio/internal/model"
	"github.com/verte-zerg/deskfolio/internal/portfolio"
	"github.com/verte-zerg/deskfolio/internal/settings"
	"github.com/verte-zerg/deskfolio/internal/store"
	"github.com/verte-zerg/deskfolio/internal/theme"
)

var (
	exportFormat string
	showWidth    int
	listRaw      bool
	resetPurge   bool
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# deskfolio configuration
# Uncomment a value to enable it. CLI flags override config values.

[chat]
# delay = %q               # Simulated thinking time before a reply
# greeting = %q
# script = "~/replies.txt" # One reply per line, picked at random

[appearance]
# signal-file = %q # Holds "dark" or "light"; followed by the "system" theme

[storage]
# db = %q

[log]
# level = %q                # debug, info, warn, error
# file = %q
`,
		chat.DefaultDelay.String(),
		chat.DefaultGreeting,
		config.DefaultAppearancePath(),
		config.DefaultDBPath(),
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}

func newSettingsCmd() *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change saved preferences",
	}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all settings",
		Args:  cobra.NoArgs,
		RunE:  runSettingsListCmd,
	}
	listCmd.Flags().BoolVar(&listRaw, "raw", false, "print the stored keys and values as saved")
	settingsCmd.AddCommand(listCmd)
	settingsCmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE:  runSettingsGetCmd,
	})
	settingsCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE:  runSettingsSetCmd,
	})
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore default settings",
		Args:  cobra.NoArgs,
		RunE:  runSettingsResetCmd,
	}
	resetCmd.Flags().BoolVar(&resetPurge, "purge", false, "remove saved settings and theme from storage")
	settingsCmd.AddCommand(resetCmd)
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Print all settings as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE:  runSettingsExportCmd,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format (json, yaml)")
	settingsCmd.AddCommand(exportCmd)
	return settingsCmd
}

// withStore opens the store and runs fn.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, st *store.Store) error) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, st)
}

// withSettings opens the store, loads the settings and runs fn.
func withSettings(cmd *cobra.Command, fn func(ctx context.Context, prefs *settings.Store) error) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		prefs := settings.New(st, config.DiscardLogger())
		if _, err := prefs.Load(ctx); err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		return fn(ctx, prefs)
	})
}

func listStoredValues(ctx context.Context, w io.Writer, st *store.Store) error {
	keys, err := st.Keys(ctx)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		value, ok, err := st.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		rows = append(rows, []string{key, value})
	}
	if len(rows) == 0 {
		logErrln("Nothing saved yet.")
		return nil
	}
	if err := portfolio.WriteLines(w, portfolio.FormatTable([]string{"Key", "Value"}, rows, nil)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "db", &dbPath, fileCfg.Storage.DB)
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func runSettingsListCmd(cmd *cobra.Command, _ []string) error {
	if listRaw {
		return withStore(cmd, func(ctx context.Context, st *store.Store) error {
			return listStoredValues(ctx, cmd.OutOrStdout(), st)
		})
	}
	return withSettings(cmd, func(_ context.Context, prefs *settings.Store) error {
		current := prefs.Settings()
		rows := make([][]string, 0, len(settings.Keys()))
		for _, key := range settings.Keys() {
			value, err := settings.Value(current, key)
			if err != nil {
				return err
			}
			rows = append(rows, []string{string(key), value})
		}
		lines := portfolio.FormatTable([]string{"Key", "Value"}, rows, nil)
		if err := portfolio.WriteLines(cmd.OutOrStdout(), lines); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	})
}

func runSettingsGetCmd(cmd *cobra.Command, args []string) error {
	return withSettings(cmd, func(_ context.Context, prefs *settings.Store) error {
		value, err := settings.Value(prefs.Settings(), settings.Key(args[0]))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), value); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	})
}

func runSettingsSetCmd(cmd *cobra.Command, args []string) error {
	return withSettings(cmd, func(ctx context.Context, prefs *settings.Store) error {
		key := settings.Key(args[0])
		if err := prefs.Set(ctx, key, args[1]); err != nil {
			return err
		}
		value, err := settings.Value(prefs.Settings(), key)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	})
}

func runSettingsResetCmd(cmd *cobra.Command, _ []string) error {
	if resetPurge {
		return withStore(cmd, func(ctx context.Context, st *store.Store) error {
			for _, key := range []string{settings.StorageKey, theme.StorageKey} {
				if err := st.Delete(ctx, key); err != nil {
					return fmt.Errorf("failed to delete %s: %w", key, err)
				}
			}
			logErrln("Saved settings and theme removed.")
			return nil
		})
	}
	return withSettings(cmd, func(ctx context.Context, prefs *settings.Store) error {
		if err := prefs.Reset(ctx); err != nil {
			return err
		}
		logErrln("Settings restored to defaults.")
		return nil
	})
}

func runSettingsExportCmd(cmd *cobra.Command, _ []string) error {
	return withSettings(cmd, func(_ context.Context, prefs *settings.Store) error {
		return exportSettings(cmd.OutOrStdout(), prefs.Settings(), exportFormat)
	})
}

func exportSettings(w io.Writer, s model.Settings, format string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		data, err = json.MarshalIndent(s, "", "  ")
		data = append(data, '\n')
	case "yaml", "yml":
		data, err = yaml.Marshal(s)
	default:
		return fmt.Errorf("unsupported format %q (use json or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|system]",
		Short:     "Show or change the theme preference",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(model.ThemeLight), string(model.ThemeDark), string(model.ThemeSystem)},
		RunE:      runThemeCmd,
	}
}

func runThemeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	signalPath := config.DefaultAppearancePath()
	if fileCfg.Appearance.SignalFile != nil {
		signalPath = *fileCfg.Appearance.SignalFile
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := config.DiscardLogger()
	host, _, stop := hostSignal(ctx, signalPath, logger)
	defer stop()
	resolver := theme.NewResolver(st, host, logger)
	defer resolver.Close()
	if err := resolver.Load(ctx); err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}

	if len(args) == 1 {
		pref, err := theme.ParsePreference(args[0])
		if err != nil {
			return err
		}
		if err := resolver.SetPreference(ctx, pref); err != nil {
			return fmt.Errorf("failed to save theme: %w", err)
		}
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "preference: %s\neffective: %s\n", resolver.Preference(), resolver.Effective()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newShowCmd() *cobra.Command {
	showCmd := &cobra.Command{
		Use:       "show <github|leetcode>",
		Short:     "Print a dashboard without starting the desktop",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"github", "leetcode"},
		RunE:      runShowCmd,
	}
	showCmd.Flags().IntVar(&showWidth, "width", 0, "output width (default: terminal width)")
	return showCmd
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	width := showWidth
	if width <= 0 {
		width = portfolio.TerminalWidth()
	}
	out := cmd.OutOrStdout()
	var lines []string
	switch args[0] {
	case "github":
		lines = portfolio.GitHubLines(portfolio.GitHub(), width, portfolio.UseColor(out))
	case "leetcode":
		lines = portfolio.LeetCodeLines(portfolio.LeetCode(), width)
	default:
		return errors.New("dashboard must be 'github' or 'leetcode'")
	}
	if err := portfolio.WriteLines(out, lines); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
