// Package loader reads every configured source file from a file system and
// hands the parsed records to the graph builder. A source that cannot be
// read or parsed is reported as a fetch failure and treated as absent.
package loader

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/langnav/internal/config"
	"github.com/heartmarshall/langnav/internal/diag"
	"github.com/heartmarshall/langnav/internal/domain"
	"github.com/heartmarshall/langnav/internal/graph"
	"github.com/heartmarshall/langnav/internal/ingest/census"
	"github.com/heartmarshall/langnav/internal/ingest/cldr"
	"github.com/heartmarshall/langnav/internal/ingest/glottolog"
	"github.com/heartmarshall/langnav/internal/ingest/iana"
	"github.com/heartmarshall/langnav/internal/ingest/iso"
	"github.com/heartmarshall/langnav/internal/ingest/langlist"
	"github.com/heartmarshall/langnav/internal/ingest/locale"
	"github.com/heartmarshall/langnav/internal/ingest/script"
	"github.com/heartmarshall/langnav/internal/ingest/territory"
	"github.com/heartmarshall/langnav/internal/ingest/tsv"
	"github.com/heartmarshall/langnav/internal/metrics"
)

// Source names used in diagnostics, logs and metric labels.
const (
	SourceLanguages      = "languages"
	SourceISOLanguages   = "iso_languages"
	SourceMacrolanguages = "macrolanguages"
	SourceFamilies       = "families"
	SourceRetirements    = "retirements"
	SourceGlottolog      = "glottolog"
	SourceIANA           = "iana_registry"
	SourceCLDRAliases    = "cldr_aliases"
	SourceCLDRCoverage   = "cldr_coverage"
	SourceTerritories    = "territories"
	SourceTerritoryStats = "territory_stats"
	SourceLocales        = "locales"
	SourceWritingSystems = "writing_systems"
	SourceKeyboards      = "keyboards"
	SourceCensus         = "census"
)

const defaultConcurrency = 8

// Loader reads the sources named in a DataConfig from fsys.
type Loader struct {
	fsys        fs.FS
	files       config.DataConfig
	concurrency int
	log         *slog.Logger
	sink        diag.Sink
	metrics     *metrics.Metrics
}

// New creates a Loader. concurrency < 1 selects a default; sink and m may be nil.
func New(fsys fs.FS, files config.DataConfig, concurrency int, log *slog.Logger, sink diag.Sink, m *metrics.Metrics) *Loader {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	if log == nil {
		log = slog.Default()
	}
	if sink == nil {
		sink = diag.Discard
	}
	return &Loader{
		fsys:        fsys,
		files:       files,
		concurrency: concurrency,
		log:         log.With(slog.String("component", "loader")),
		sink:        sink,
		metrics:     m,
	}
}

// Primary reads the sources needed to build the graph. Only a cancelled
// context makes it fail.
func (l *Loader) Primary(ctx context.Context) (graph.Inputs, error) {
	var in graph.Inputs
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	g.Go(func() error {
		in.Languages = fetch(ctx, l, SourceLanguages, l.files.Languages, langlist.Parse)
		return ctx.Err()
	})
	g.Go(func() error {
		in.ISOLanguages = fetch(ctx, l, SourceISOLanguages, l.files.ISOLanguages, iso.ParseLanguages)
		return ctx.Err()
	})
	g.Go(func() error {
		in.Macrolanguages = fetch(ctx, l, SourceMacrolanguages, l.files.Macrolanguages, iso.ParseMacrolanguages)
		return ctx.Err()
	})
	g.Go(func() error {
		in.Families = fetch(ctx, l, SourceFamilies, l.files.Families, iso.ParseFamilies)
		return ctx.Err()
	})
	g.Go(func() error {
		in.Retirements = fetch(ctx, l, SourceRetirements, l.files.Retirements, iso.ParseRetirements)
		return ctx.Err()
	})
	g.Go(func() error {
		in.Glottolog = fetch(ctx, l, SourceGlottolog, l.files.Glottolog, glottolog.Parse)
		return ctx.Err()
	})
	g.Go(func() error {
		in.Variants = fetch(ctx, l, SourceIANA, l.files.IANARegistry, iana.Parse)
		return ctx.Err()
	})
	g.Go(func() error {
		in.Aliases = fetch(ctx, l, SourceCLDRAliases, l.files.CLDRAliases, cldr.ParseAliases)
		return ctx.Err()
	})
	g.Go(func() error {
		in.Territories = fetch(ctx, l, SourceTerritories, l.files.Territories, territory.Parse)
		return ctx.Err()
	})
	g.Go(func() error {
		in.Locales = fetch(ctx, l, SourceLocales, l.files.Locales, locale.Parse)
		return ctx.Err()
	})
	g.Go(func() error {
		in.WritingSystems = fetch(ctx, l, SourceWritingSystems, l.files.WritingSystems, script.Parse)
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return graph.Inputs{}, fmt.Errorf("load primary sources: %w", err)
	}

	l.metrics.ObservePhase("fetch_primary", time.Since(start))
	return in, nil
}

// Supplemental reads the sources applied by graph.Enrich.
func (l *Loader) Supplemental(ctx context.Context) (graph.Supplement, error) {
	var sup graph.Supplement
	start := time.Now()

	censusFiles, err := l.censusFiles()
	if err != nil {
		diag.Reportf(l.sink, diag.FetchFailure, SourceCensus, l.files.CensusGlob, "glob census files: %v", err)
	}
	perFile := make([][]*domain.Census, len(censusFiles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	g.Go(func() error {
		sup.TerritoryStats = fetch(ctx, l, SourceTerritoryStats, l.files.TerritoryStats, territory.ParseStats)
		return ctx.Err()
	})
	g.Go(func() error {
		sup.Coverage = fetch(ctx, l, SourceCLDRCoverage, l.files.CLDRCoverage, cldr.ParseCoverage)
		return ctx.Err()
	})
	g.Go(func() error {
		sup.Keyboards = fetch(ctx, l, SourceKeyboards, l.files.Keyboards, locale.ParseKeyboards)
		return ctx.Err()
	})
	for i, name := range censusFiles {
		g.Go(func() error {
			perFile[i] = fetch(ctx, l, SourceCensus, name, func(r io.Reader) ([]*domain.Census, tsv.Stats, error) {
				return census.Parse(name, r)
			})
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return graph.Supplement{}, fmt.Errorf("load supplemental sources: %w", err)
	}

	// File order decides census precedence on duplicate IDs.
	for _, cs := range perFile {
		sup.Censuses = append(sup.Censuses, cs...)
	}

	l.metrics.ObservePhase("fetch_supplemental", time.Since(start))
	return sup, nil
}

func (l *Loader) censusFiles() ([]string, error) {
	if l.files.CensusGlob == "" {
		return nil, nil
	}
	names, err := fs.Glob(l.fsys, l.files.CensusGlob)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// fetch opens name and parses it. Failures are reported and yield nil.
// Rejected rows and data-quality warnings become diagnostics.
func fetch[T any](ctx context.Context, l *Loader, source, name string, parse func(io.Reader) ([]T, tsv.Stats, error)) []T {
	if ctx.Err() != nil {
		return nil
	}
	if name == "" {
		l.log.Debug("source disabled", slog.String("source", source))
		return nil
	}

	start := time.Now()
	f, err := l.fsys.Open(name)
	if err != nil {
		diag.Reportf(l.sink, diag.FetchFailure, source, name, "open: %v", err)
		return nil
	}
	defer f.Close()

	records, stats, err := parse(f)
	if err != nil {
		diag.Reportf(l.sink, diag.FetchFailure, source, name, "parse: %v", err)
		return nil
	}

	for _, row := range stats.Skipped {
		diag.Reportf(l.sink, diag.MalformedRow, source, fmt.Sprintf("%s:%d", name, row.Line), "%s", row.Reason)
	}
	for _, w := range stats.Warnings {
		diag.Reportf(l.sink, diag.DataQuality, source, name, "%s", w)
	}

	l.metrics.AddRows(source, stats.Parsed, len(stats.Skipped))
	l.metrics.ObservePhase("fetch_"+source, time.Since(start))
	l.log.Debug("source loaded",
		slog.String("source", source),
		slog.String("file", name),
		slog.Int("records", len(records)),
		slog.Int("skipped", len(stats.Skipped)),
		slog.Int("warnings", len(stats.Warnings)),
		slog.Duration("took", time.Since(start)),
	)
	return records
}
