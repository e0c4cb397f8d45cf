package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/soocke/rect-select-go/config"
)

// DefaultConfigPath is read when --config is not given.
const DefaultConfigPath = "rect-select.json"

var (
	cfgPath  string
	debugLog bool
	server   string
	sets     []string
	dark     bool
)

// cfg holds the loaded configuration, populated in PersistentPreRunE.
var cfg *config.Config

var logger *slog.Logger

// LoggerFactory builds the process logger once the level is known.
type LoggerFactory func(level slog.Leveler) *slog.Logger

var newLogger LoggerFactory = func(level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

var rootCmd = &cobra.Command{
	Use:           "rect-select",
	Short:         "Draw a rectangle over an image and store it on a RectSelect node",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgPath)
		var pe *config.ParseError
		if errors.As(err, &pe) {
			// Defaults are usable; report and carry on.
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", pe)
		} else if err != nil {
			return err
		}
		for _, kv := range sets {
			if err := c.SetPair(kv); err != nil {
				return fmt.Errorf("--set %s: %w", kv, err)
			}
		}
		if server != "" {
			c.ServerURL = server
		}
		if debugLog {
			c.Debug = true
		}
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c

		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		logger = newLogger(level)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOpen(cmd, openOptions{})
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgPath, "config", "c", DefaultConfigPath, "config file (.json or .hcl)")
	pf.BoolVar(&debugLog, "debug", false, "enable debug logging and runtime stats")
	pf.StringVar(&server, "server", "", "image server URL (overrides config)")
	pf.StringArrayVar(&sets, "set", nil, "override a config field, key=value (repeatable)")
	pf.BoolVar(&dark, "dark", false, "use the dark theme")
}

// Execute runs the root command. Exits with code 1 on error.
func Execute(f LoggerFactory) {
	if f != nil {
		newLogger = f
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
