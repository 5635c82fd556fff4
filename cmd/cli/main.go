package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"seriesshift/internal/adapters/alphavantage"
	"seriesshift/internal/adapters/storage"
	"seriesshift/internal/app"
	"seriesshift/internal/config"
	"seriesshift/internal/domain/series"
	"seriesshift/internal/ports"
	"seriesshift/internal/util"
)

const defaultStore = "sqlite:datasets.db"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cli carries state shared by all subcommands once PersistentPreRunE has run.
type cli struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "seriesshift",
		Short: "Shift the dates of a daily price series onto a target date",
		Long: `seriesshift moves every date of a daily open/high/low/close/volume
series by the same number of days, so that the earliest (or latest) record
lands on a target date. Price records are carried over unchanged.

Run without a subcommand to shift the bundled TSLA sample to 2025-05-21.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	shift := c.shiftCmd()
	root.RunE = shift.RunE
	root.Flags().AddFlagSet(shift.Flags())

	root.AddCommand(shift, c.showCmd(), c.fetchCmd())
	return root
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadAndValidate(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	zcfg := zap.NewProductionConfig()
	level, _ := zapcore.ParseLevel(cfg.Log.Level)
	if c.verbose {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.logger = logger.With(zap.String("run_id", uuid.NewString()))
	c.logger.Debug("config loaded",
		zap.String("config", c.configPath),
		zap.String("source", cfg.Source),
		zap.String("target", cfg.Target),
	)
	return nil
}

func (c *cli) shiftCmd() *cobra.Command {
	var target, anchor, source, output, format string

	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Shift a dataset so its anchor date lands on the target date",
		Example: `  seriesshift shift --target 2025-05-21
  seriesshift shift --source yaml:tsla.yaml --anchor latest --format json
  seriesshift shift --source sqlite:datasets.db#IBM --output file:ibm-shifted.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			override(flags.Changed("target"), &c.cfg.Target, target)
			override(flags.Changed("anchor"), &c.cfg.Anchor, anchor)
			override(flags.Changed("source"), &c.cfg.Source, source)
			override(flags.Changed("output"), &c.cfg.Output, output)
			override(flags.Changed("format"), &c.cfg.Format, format)
			return c.runShift(cmd.Context(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&target, "target", config.DefaultTarget, "Date (YYYY-MM-DD) the anchor record should land on")
	cmd.Flags().StringVar(&anchor, "anchor", config.DefaultAnchor, "Record moved onto the target: earliest or latest")
	cmd.Flags().StringVar(&source, "source", config.DefaultSource, "Dataset to read (builtin, file:P, gzip:P, yaml:P, sqlite:P#SYMBOL)")
	cmd.Flags().StringVar(&output, "output", config.DefaultOutput, "Where to write the result: stdout or a dataset spec")
	cmd.Flags().StringVar(&format, "format", config.DefaultFormat, "Stdout format: text, json or yaml")
	return cmd
}

func (c *cli) runShift(ctx context.Context, stdout io.Writer) error {
	target, err := util.ParseDate(c.cfg.Target)
	if err != nil {
		return fmt.Errorf("invalid target date: %w", err)
	}
	anchor, err := series.ParseAnchor(c.cfg.Anchor)
	if err != nil {
		return err
	}

	src, err := storage.NewDatasetRepository(c.cfg.Source)
	if err != nil {
		return fmt.Errorf("invalid source: %w", err)
	}
	defer src.Close()

	svc := app.NewShiftService(src.Repository, c.logger)

	if c.cfg.Output == config.DefaultOutput {
		shifted, err := svc.Shift(ctx, target, anchor)
		if err != nil {
			return err
		}
		return app.Render(stdout, shifted, c.cfg.Format)
	}

	dst, err := storage.NewDatasetRepository(c.cfg.Output)
	if err != nil {
		return fmt.Errorf("invalid output: %w", err)
	}
	defer dst.Close()

	if _, err := svc.ShiftAndSave(ctx, target, anchor, dst.Repository); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "shifted dataset saved to %s\n", c.cfg.Output)
	return nil
}

func (c *cli) showCmd() *cobra.Command {
	var source, format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a dataset without shifting it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			override(cmd.Flags().Changed("source"), &c.cfg.Source, source)
			override(cmd.Flags().Changed("format"), &c.cfg.Format, format)

			src, err := storage.NewDatasetRepository(c.cfg.Source)
			if err != nil {
				return fmt.Errorf("invalid source: %w", err)
			}
			defer src.Close()

			ds, err := app.NewShiftService(src.Repository, c.logger).Load(cmd.Context())
			if err != nil {
				return err
			}
			return app.Render(cmd.OutOrStdout(), ds, c.cfg.Format)
		},
	}
	cmd.Flags().StringVar(&source, "source", config.DefaultSource, "Dataset to read")
	cmd.Flags().StringVar(&format, "format", config.DefaultFormat, "Output format: text, json or yaml")
	return cmd
}

func (c *cli) fetchCmd() *cobra.Command {
	var symbols []string
	var store string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download daily series from Alpha Vantage into a dataset store",
		Example: `  ALPHAVANTAGE_API_KEY=... seriesshift fetch --symbol TSLA --symbol IBM
  seriesshift fetch --symbol TSLA --store file:tsla.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("symbol") {
				symbols = c.cfg.Symbols
			}
			return c.runFetch(cmd.Context(), cmd.OutOrStdout(), symbols, store)
		},
	}
	cmd.Flags().StringSliceVarP(&symbols, "symbol", "s", nil, "Ticker to fetch (repeatable)")
	cmd.Flags().StringVar(&store, "store", defaultStore, "Dataset spec to save into")
	return cmd
}

func (c *cli) runFetch(ctx context.Context, stdout io.Writer, symbols []string, store string) error {
	if err := requireAPIKey(c.cfg.AlphaVantage.APIKey); err != nil {
		return err
	}
	if len(symbols) == 0 {
		return errors.New("--symbol is required")
	}

	dst, err := storage.NewDatasetRepository(store)
	if err != nil {
		return fmt.Errorf("invalid store: %w", err)
	}
	defer dst.Close()

	sink, err := sinkFor(dst.Repository, len(symbols))
	if err != nil {
		return err
	}

	client := alphavantage.New(c.cfg.AlphaVantage.APIKey)
	client.BaseURL = c.cfg.AlphaVantage.BaseURL
	client.HTTPClient = &http.Client{Timeout: c.cfg.AlphaVantage.Timeout}

	if err := app.Import(ctx, c.logger, client, symbols, c.cfg.Concurrency, sink); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "fetched %d symbol(s) into %s\n", len(symbols), store)
	return nil
}

// sinkFor scopes repo per symbol when the backend supports it. Single-dataset
// backends can only take one symbol.
func sinkFor(repo ports.DatasetRepository, n int) (func(string) ports.DatasetRepository, error) {
	if scoped, ok := repo.(ports.SymbolRepository); ok {
		return scoped.ForSymbol, nil
	}
	if n > 1 {
		return nil, errors.New("store holds a single dataset; use a sqlite store for several symbols")
	}
	return func(string) ports.DatasetRepository { return repo }, nil
}

func override(changed bool, dst *string, v string) {
	if changed {
		*dst = v
	}
}

func requireAPIKey(apiKey string) error {
	if apiKey == "" {
		return errors.New("set ALPHAVANTAGE_API_KEY for this command")
	}
	return nil
}
