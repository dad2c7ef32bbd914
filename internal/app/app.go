package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/langnav/internal/app/loader"
	"github.com/heartmarshall/langnav/internal/config"
	"github.com/heartmarshall/langnav/internal/diag"
	"github.com/heartmarshall/langnav/internal/graph"
	"github.com/heartmarshall/langnav/internal/metrics"
)

// Result is a loaded graph with everything observed while building it.
type Result struct {
	Graph       *graph.Graph
	Diagnostics *diag.Collector
	Metrics     *metrics.Metrics
	Registry    *prometheus.Registry
	Took        time.Duration
}

// LoadGraph builds the graph from the files under cfg.Data.Dir.
func LoadGraph(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	info, err := os.Stat(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data dir %s: not a directory", cfg.Data.Dir)
	}
	return Load(ctx, os.DirFS(cfg.Data.Dir), cfg, logger)
}

// Load builds the graph from fsys. Bad or missing source data never fails
// the load; it is reported through Result.Diagnostics. Only a cancelled
// context or an exceeded loader timeout returns an error.
func Load(ctx context.Context, fsys fs.FS, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, cfg.Loader.Timeout)
	defer cancel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	coll := diag.NewCollector(logger, m)
	log := logger.With(slog.String("run_id", coll.RunID().String()))

	log.Info("loading knowledge graph",
		slog.Any("build", Build()),
		slog.String("data_dir", cfg.Data.Dir),
	)

	ld := loader.New(fsys, cfg.Data, cfg.Loader.Concurrency, log, coll, m)

	in, err := ld.Primary(ctx)
	if err != nil {
		return nil, err
	}

	g := graph.New(log, coll, graph.Options{RegionalMinSpeakers: cfg.Loader.RegionalMinSpeakers})
	timed(m, "build", func() { g.Build(in) })

	if cfg.Loader.SkipSupplemental {
		log.Info("supplemental sources skipped")
	} else {
		sup, err := ld.Supplemental(ctx)
		if err != nil {
			return nil, err
		}
		timed(m, "enrich", func() { g.Enrich(sup) })
	}

	for t, n := range g.Counts() {
		m.SetEntities(t.String(), n)
	}

	res := &Result{
		Graph:       g,
		Diagnostics: coll,
		Metrics:     m,
		Registry:    reg,
		Took:        time.Since(start),
	}
	log.Info("knowledge graph loaded",
		slog.Int("languages", len(g.Languages)),
		slog.Int("locales", len(g.Locales)),
		slog.Int("territories", len(g.Territories)),
		slog.Int("censuses", len(g.Censuses)),
		slog.Int("diagnostics", coll.Len()),
		slog.Duration("took", res.Took),
	)
	return res, nil
}

func timed(m *metrics.Metrics, phase string, fn func()) {
	start := time.Now()
	fn()
	m.ObservePhase(phase, time.Since(start))
}
