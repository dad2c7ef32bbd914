// Command langnav loads the language knowledge graph from a data directory
// and answers questions about it from the command line.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/langnav/internal/app"
	"github.com/heartmarshall/langnav/internal/config"
)

// globalFlags override the loaded configuration.
type globalFlags struct {
	configPath  string
	dataDir     string
	logLevel    string
	metricsFile string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "langnav",
		Short: "Explore the language, locale and territory knowledge graph",
		Long: `langnav fuses the language master list, ISO 639, Glottolog, CLDR, the
IANA subtag registry, territory and census files into one graph and
derives population statistics across it.

Configuration is read from CONFIG_PATH (default ./langnav.yaml) and the
environment; flags override both.`,
		SilenceUsage: true,
		Version:      app.Build().String(),
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to YAML config (overrides CONFIG_PATH)")
	pf.StringVar(&flags.dataDir, "data-dir", "", "directory holding the source files")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug|info|warn|error")
	pf.StringVar(&flags.metricsFile, "metrics-file", "", "write load metrics in Prometheus text format to this file")

	root.AddCommand(
		newSummaryCmd(&flags),
		newListCmd(&flags),
		newShowCmd(&flags),
		newDiagnosticsCmd(&flags),
	)
	return root
}

func (f *globalFlags) config() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath, true)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if f.dataDir != "" {
		cfg.Data.Dir = f.dataDir
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.metricsFile != "" {
		cfg.Metrics.TextfilePath = f.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

// load builds the graph for a subcommand. Logs go to the command's stderr.
func (f *globalFlags) load(cmd *cobra.Command) (*app.Result, error) {
	cfg, err := f.config()
	if err != nil {
		return nil, err
	}
	logger := app.NewLogger(cfg.Log, cmd.ErrOrStderr())

	res, err := app.LoadGraph(cmd.Context(), cfg, logger)
	if err != nil {
		logger.Error("load failed", slog.String("error", err.Error()))
		return nil, err
	}

	if path := cfg.Metrics.TextfilePath; path != "" {
		if err := prometheus.WriteToTextfile(path, res.Registry); err != nil {
			logger.Warn("write metrics file", slog.String("path", path), slog.String("error", err.Error()))
		}
	}
	return res, nil
}
