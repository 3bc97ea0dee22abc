package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/vitals/internal/config"
	"github.com/rileyhilliard/vitals/internal/errors"
	"github.com/rileyhilliard/vitals/internal/logger"
	"github.com/rileyhilliard/vitals/internal/render"
	"github.com/rileyhilliard/vitals/internal/source"
	"github.com/rileyhilliard/vitals/internal/ui"
	"github.com/rileyhilliard/vitals/pkg/sshutil"
)

// Source modes offered by init.
const (
	modeHTTP  = "http"
	modeSSH   = "ssh"
	modeLocal = "local"
)

const probeTimeout = 10 * time.Second

// InitOptions holds options for the init command.
type InitOptions struct {
	URL            string // Backend URL
	SSH            string // SSH host to tunnel through
	Local          bool   // Collect from this machine
	Skin           string // Dashboard palette
	Global         bool   // Write ~/.config/vitals/config.yaml instead of ./.vitals.yaml
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use flags and defaults
}

var initOpts InitOptions

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .vitals.yaml configuration",
	Long: `Create a vitals configuration file.

Guides you through choosing where telemetry comes from (an HTTP backend,
the same backend through an SSH tunnel, or this machine) and the dashboard
skin, then checks that a snapshot can be fetched.

When a config already exists and --url or --ssh is given without --force,
only those keys are updated and the rest of the file is left alone.

Examples:
  vitals init
  vitals init --url http://nas:5000 --non-interactive
  vitals init --ssh nas --url http://localhost:5000 --global`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := initOpts
		if !opts.NonInteractive && (os.Getenv("CI") != "" || !stdoutIsTerminal()) {
			opts.NonInteractive = true
		}
		return initCommand(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

func init() {
	initCmd.Flags().StringVar(&initOpts.URL, "url", "", "backend URL")
	initCmd.Flags().StringVar(&initOpts.SSH, "ssh", "", "SSH host or alias to tunnel through")
	initCmd.Flags().BoolVar(&initOpts.Local, "local", false, "collect from this machine")
	initCmd.Flags().StringVar(&initOpts.Skin, "skin", "", "dashboard palette (synthwave, classic)")
	initCmd.Flags().BoolVar(&initOpts.Global, "global", false, "write the global config in ~/.config/vitals")
	initCmd.Flags().BoolVarP(&initOpts.Overwrite, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initOpts.NonInteractive, "non-interactive", false, "skip prompts")
	rootCmd.AddCommand(initCmd)
}

// initPath returns where init writes.
func initPath(global bool) (string, error) {
	if !global {
		return filepath.Join(".", config.ConfigFileName), nil
	}
	path := config.GlobalPath()
	if path == "" {
		return "", errors.New(errors.ErrConfig,
			"Cannot determine your home directory",
			"Set HOME or write a project config without --global")
	}
	return path, nil
}

func initCommand(ctx context.Context, opts InitOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	path, err := initPath(opts.Global)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !opts.Overwrite {
		if opts.URL != "" || opts.SSH != "" {
			return updateSource(path, opts, out)
		}
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", path),
				"Use --force to overwrite, or --url/--ssh to update the source")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if opts.NonInteractive {
		applyInitOptions(cfg, opts)
	} else if err := promptConfig(cfg, opts); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if err := probe(ctx, cfg, out, opts.NonInteractive); err != nil {
		return err
	}

	if err := config.Save(path, cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config",
			"Check that you have write permission for "+filepath.Dir(path))
	}
	fmt.Fprintf(out, "%s Wrote %s\n", ui.SymbolSuccess, path)
	return nil
}

// updateSource rewrites only the source keys of an existing config.
func updateSource(path string, opts InitOptions, out io.Writer) error {
	updates := []struct{ key, value string }{
		{"source.url", opts.URL},
		{"source.ssh", opts.SSH},
	}
	for _, u := range updates {
		if u.value == "" {
			continue
		}
		if err := config.SetValue(path, u.key, u.value); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to update "+path, "Check the file is valid YAML")
		}
	}
	if err := config.SetValue(path, "source.local", "false"); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to update "+path, "")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s Updated source in %s\n", ui.SymbolSuccess, path)
	return nil
}

func applyInitOptions(cfg *config.Config, opts InitOptions) {
	if opts.URL != "" {
		cfg.Source.URL = opts.URL
	}
	cfg.Source.SSH = opts.SSH
	cfg.Source.Local = opts.Local
	if opts.Skin != "" {
		cfg.Dashboard.Skin = opts.Skin
	}
}

func promptConfig(cfg *config.Config, opts InitOptions) error {
	mode := modeHTTP
	switch {
	case opts.Local:
		mode = modeLocal
	case opts.SSH != "":
		mode = modeSSH
	}
	backend := cfg.Source.URL
	if opts.URL != "" {
		backend = opts.URL
	}
	sshHost := opts.SSH
	skinName := cfg.Dashboard.Skin
	if opts.Skin != "" {
		skinName = opts.Skin
	}

	skins := make([]huh.Option[string], 0)
	for _, name := range render.PaletteNames() {
		skins = append(skins, huh.NewOption(name, name))
	}

	hostOptions := sshHostOptions(sshutil.Hosts)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where does telemetry come from?").
				Options(
					huh.NewOption("HTTP backend", modeHTTP),
					huh.NewOption("HTTP backend through an SSH tunnel", modeSSH),
					huh.NewOption("This machine", modeLocal),
				).
				Value(&mode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Backend URL").
				Description("Base URL of the telemetry API, as seen from the tunnel end when using SSH").
				Placeholder("http://nas:5000").
				Value(&backend).
				Validate(validateURL),
		).WithHideFunc(func() bool { return mode == modeLocal }),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("SSH host").
				Description("Hosts from ~/.ssh/config").
				Options(hostOptions...).
				Value(&sshHost),
		).WithHideFunc(func() bool { return mode != modeSSH || len(hostOptions) == 0 }),
		huh.NewGroup(
			huh.NewInput().
				Title("SSH host or alias").
				Description("Enter hostname, user@host, or SSH config alias").
				Placeholder("nas or admin@192.168.1.10").
				Value(&sshHost).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("SSH host is required")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return mode != modeSSH || sshHost != "" }),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Dashboard skin").
				Options(skins...).
				Value(&skinName),
		),
	)
	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}

	cfg.Source.Local = mode == modeLocal
	cfg.Source.URL = strings.TrimSpace(backend)
	if mode == modeSSH {
		cfg.Source.SSH = strings.TrimSpace(sshHost)
	}
	cfg.Dashboard.Skin = skinName
	return nil
}

// sshHostOptions offers the aliases from the SSH config, plus a manual
// entry whose empty value reveals the free-form input.
func sshHostOptions(list func() ([]sshutil.HostEntry, error)) []huh.Option[string] {
	hosts, err := list()
	if err != nil || len(hosts) == 0 {
		return nil
	}
	opts := make([]huh.Option[string], 0, len(hosts)+1)
	for _, h := range hosts {
		label := h.Alias
		if desc := h.Description(); desc != h.Alias {
			label = fmt.Sprintf("%s (%s)", h.Alias, desc)
		}
		opts = append(opts, huh.NewOption(label, h.Alias))
	}
	return append(opts, huh.NewOption("Enter manually", ""))
}

func validateURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("enter an http(s) URL such as http://nas:5000")
	}
	return nil
}

// probe fetches one snapshot to check the source. Interactive runs may
// save anyway after a failure.
func probe(ctx context.Context, cfg *config.Config, out io.Writer, nonInteractive bool) error {
	label := "Fetching a snapshot from " + describeSource(cfg.Source)
	spinner := ui.NewSpinner(label)
	spinner.SetOutput(func(s string) { fmt.Fprint(out, s) })
	spinner.Start()

	err := fetchOnce(ctx, cfg)
	if err == nil {
		spinner.Success()
		return nil
	}
	spinner.Fail()

	if nonInteractive {
		return err
	}

	fmt.Fprintf(out, "\n%s %s\n\n", ui.SymbolFail, firstLine(err))
	var saveAnyway bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save config anyway? (You can fix the source later)").
				Value(&saveAnyway),
		),
	)
	if formErr := form.Run(); formErr != nil || !saveAnyway {
		return err
	}
	return nil
}

func fetchOnce(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	src, err := source.Open(ctx, cfg.Source, logger.Noop())
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = src.Current(ctx)
	return err
}
