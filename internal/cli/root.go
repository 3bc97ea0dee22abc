package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/vitals/internal/config"
	"github.com/rileyhilliard/vitals/internal/errors"
	"github.com/rileyhilliard/vitals/internal/ui"
)

// Persistent flags
var (
	cfgFile     string
	urlFlag     string
	localFlag   bool
	noColorFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "vitals",
	Short: "Host telemetry dashboard",
	Long: `vitals shows CPU temperature, load, memory, disks, SMART health and
containers of a host as gauges, waveforms and bars.

Telemetry comes from an HTTP backend (optionally tunnelled over SSH) or,
with --local, straight from this machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag || os.Getenv("NO_COLOR") != "" || !stdoutIsTerminal() {
			ui.DisableColors()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.vitals.yaml, then ~/.config/vitals/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&urlFlag, "url", "", "backend URL, overrides source.url")
	rootCmd.PersistentFlags().BoolVar(&localFlag, "local", false, "collect from this machine instead of a backend")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits with the command's exit code.
func Execute() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	if code, ok := errors.GetExitCode(err); ok {
		return code
	}

	if isUnknownCommandError(err) {
		what := extractUnknownCommand(err)
		if what == "" {
			what = err.Error()
		}
		fmt.Fprintf(os.Stderr, "%s Unknown command or flag: %s\n\n  Run 'vitals --help' to see available commands.\n",
			ui.SymbolFail, what)
		return 1
	}

	msg := err.Error()
	if !strings.HasPrefix(msg, ui.SymbolFail) {
		msg = ui.SymbolFail + " " + msg
	}
	fmt.Fprintln(os.Stderr, strings.TrimRight(msg, "\n"))
	return 1
}

// loadConfig resolves, overrides and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, _, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlagOverrides(cfg *config.Config) {
	if urlFlag != "" {
		cfg.Source.URL = urlFlag
		cfg.Source.Local = false
	}
	if localFlag {
		cfg.Source.Local = true
	}
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// isUnknownCommandError checks if the error is from cobra for an unknown command or flag.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "vitals"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
