package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"vlrscraper/internal/components/telemetry"
	"vlrscraper/internal/fixtures"
	"vlrscraper/internal/scrapers/vlr"
	"vlrscraper/pkg/configutil"

	"github.com/spf13/cobra"
)

var (
	configPath   string
	verbose      bool
	fixturesPath string
	record       bool
)

// state shared by every subcommand, set up in the root PersistentPreRunE.
var (
	tel       telemetry.API = telemetry.NewSlogAPI()
	scraper   *vlr.Scraper
	replay    *fixtures.Transport
	otelSetup telemetry.Telemetry
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "config.json5", "The json5 config file, <name>.local.json5 overrides it.")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enables debug logs.")
	flags.StringVar(&fixturesPath, "fixtures", "", "Serve pages from this regressions file instead of vlr.gg.")
	flags.BoolVar(&record, "record", false, "With --fixtures, fetch missing pages from vlr.gg and add them to the file.")
}

var rootCmd = &cobra.Command{
	Use:          "vlr-cli",
	Short:        "vlr-cli scrapes players, teams and matches from vlr.gg.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		cfg, err := configutil.ReadConfig(configPath, defaultConfig())
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("no config file, using defaults", "path", configPath)
		} else if err != nil {
			return fmt.Errorf("read config: %w", err)
		}

		if cfg.Telemetry.Enabled() {
			otelSetup, err = telemetry.Setup(cmd.Context(), "vlr-cli", cfg.Telemetry)
			if err != nil {
				return fmt.Errorf("setup telemetry: %w", err)
			}
		}

		transport, err := newTransport(cfg)
		if err != nil {
			return err
		}
		scraper = vlr.NewScraper(vlr.Options{
			Transport: transport,
			BaseURL:   cfg.BaseURL,
			Workers:   cfg.Workers,
			Tel:       tel,
		})
		return nil
	},
}

// finish flushes recorded fixtures and telemetry. It runs after every
// command, failed ones included.
func finish(ctx context.Context) error {
	var errs []error
	if replay != nil {
		errs = append(errs, replay.Save())
		replay = nil
	}
	errs = append(errs, otelSetup.Shutdown(context.WithoutCancel(ctx)))
	otelSetup = telemetry.Telemetry{}
	return errors.Join(errs...)
}

func newTransport(cfg Config) (vlr.Transport, error) {
	opts := cfg.HTTP.options()
	if cfg.DumpDir != "" {
		output, err := telemetry.NewFilesystemOutput(cfg.DumpDir)
		if err != nil {
			return nil, fmt.Errorf("dump dir: %w", err)
		}
		opts.Output = output
	}

	if fixturesPath == "" {
		if record {
			return nil, errors.New("--record needs --fixtures")
		}
		return vlr.NewHTTPTransport(opts, tel), nil
	}

	var live vlr.Transport
	if record {
		live = vlr.NewHTTPTransport(opts, tel)
	}
	var err error
	replay, err = fixtures.Open(fixturesPath, live, tel)
	if err != nil {
		return nil, err
	}
	return replay, nil
}

func execute(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	return errors.Join(err, finish(ctx))
}

func ExecuteContext(ctx context.Context) {
	if err := execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
