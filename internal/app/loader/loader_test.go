package loader

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langnav/internal/config"
	"github.com/heartmarshall/langnav/internal/diag"
	"github.com/heartmarshall/langnav/internal/metrics"
)

const languagesTSV = "code\tname\tendonym\tscope\tparent\tpopulation\tscript\teth2013\teth2025\taltNames\n" +
	"sjn\tSindarin\tEdhellen\tLanguage\telv\t12,000\tTeng\tVigorous\t2 Stable\tGrey-elven, Noldorin\n" +
	"elv\tElvish\t\tFamily\t\n" +
	"qya\tQuenya\t\tlanguage\telv\tmany\n" +
	"xx\n" +
	"ent\tEntish\t\tancient\t\n"

const territoriesTSV = "code\tname\tscope\tcontainedIn\tsovereign\tpopulation\n" +
	"001\tWorld\tWorld\t\t\t\n" +
	"123\tMiddle-earth\tContinent\t001\t\t\n" +
	"BE\tBeleriand\tCountry\t123\t\t10000\n"

const censusB = "#censusID\t-\tbe2001\tbe2011\n" +
	"#territoryID\tbe\n" +
	"#yearCollected\t\t2001\t2011\n" +
	"#collectorType\tGovernment\n" +
	"#eligiblePopulation\t\t8000\t10000\n" +
	"languageCode\tname\t2001\t2011\n" +
	"sjn\tSindarin\t4000\t9300\n"

const censusA = "#censusID\t\tab1990\n" +
	"#territoryID\tbe\n" +
	"#yearCollected\t\t1990\n" +
	"#collectorType\tstudy\n" +
	"languageCode\tname\t1990\n" +
	"sjn\tSindarin\t50\n"

func testFiles() config.DataConfig {
	return config.DataConfig{
		Dir:            "data",
		Languages:      "languages.tsv",
		ISOLanguages:   "iso/iso-639-3.tab",
		Glottolog:      "glottolog.tsv",
		CLDRAliases:    "cldr/languageAlias.json",
		Territories:    "territories.tsv",
		TerritoryStats: "territory_stats.tsv",
		CensusGlob:     "census/*.tsv",
	}
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"languages.tsv":           {Data: []byte(languagesTSV)},
		"territories.tsv":         {Data: []byte(territoriesTSV)},
		"iso/iso-639-3.tab":       {Data: []byte("Id\tPart2b\tPart2t\tPart1\tScope\tLanguage_Type\tRef_Name\tComment\n")},
		"cldr/languageAlias.json": {Data: []byte(`{"supplemental": [`)},
		"census/b.tsv":            {Data: []byte(censusB)},
		"census/a.tsv":            {Data: []byte(censusA)},
		"census/notes.txt":        {Data: []byte("ignored")},
	}
}

func newTestLoader(t *testing.T, fsys fstest.MapFS) (*Loader, *diag.Collector, *metrics.Metrics) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())
	coll := diag.NewCollector(log, m)
	return New(fsys, testFiles(), 2, log, coll, m), coll, m
}

func TestLoader_Primary(t *testing.T) {
	t.Parallel()

	l, coll, m := newTestLoader(t, testFS())

	in, err := l.Primary(context.Background())
	require.NoError(t, err)

	assert.Len(t, in.Languages, 3)
	assert.Len(t, in.Territories, 3)
	assert.Empty(t, in.ISOLanguages)
	assert.Nil(t, in.Glottolog, "missing file is treated as absent")
	assert.Nil(t, in.Aliases, "unparseable file is treated as absent")
	assert.Nil(t, in.Locales, "unconfigured file is skipped")

	failures := coll.ByKind(diag.FetchFailure)
	require.Len(t, failures, 2)
	codes := []string{failures[0].Code, failures[1].Code}
	assert.ElementsMatch(t, []string{"glottolog.tsv", "cldr/languageAlias.json"}, codes)

	var malformed []string
	for _, d := range coll.ByKind(diag.MalformedRow) {
		assert.Equal(t, SourceLanguages, d.Source)
		malformed = append(malformed, d.Code)
	}
	assert.Equal(t, []string{"languages.tsv:4", "languages.tsv:5"}, malformed)
	assert.NotEmpty(t, coll.ByKind(diag.DataQuality))

	assert.InDelta(t, 3, testutil.ToFloat64(m.RowsParsed.WithLabelValues(SourceLanguages)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.RowsSkipped.WithLabelValues(SourceLanguages)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Diagnostics.WithLabelValues(string(diag.FetchFailure))), 0)
}

func TestLoader_Supplemental_CensusFileOrder(t *testing.T) {
	t.Parallel()

	l, coll, _ := newTestLoader(t, testFS())

	sup, err := l.Supplemental(context.Background())
	require.NoError(t, err)

	require.Len(t, sup.Censuses, 3)
	assert.Equal(t, "ab1990", sup.Censuses[0].ID)
	assert.Equal(t, "be2001", sup.Censuses[1].ID)
	assert.Equal(t, "be2011", sup.Censuses[2].ID)
	assert.Equal(t, "BE", sup.Censuses[0].TerritoryCode)

	// territory_stats.tsv is configured but absent.
	failures := coll.ByKind(diag.FetchFailure)
	require.Len(t, failures, 1)
	assert.Equal(t, SourceTerritoryStats, failures[0].Source)
	assert.Nil(t, sup.TerritoryStats)
}

func TestLoader_NoCensusMatches(t *testing.T) {
	t.Parallel()

	fsys := testFS()
	delete(fsys, "census/a.tsv")
	delete(fsys, "census/b.tsv")
	l, _, _ := newTestLoader(t, fsys)

	sup, err := l.Supplemental(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sup.Censuses)
}

func TestLoader_CancelledContext(t *testing.T) {
	t.Parallel()

	l, coll, _ := newTestLoader(t, testFS())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Primary(ctx)
	require.ErrorIs(t, err, context.Canceled)

	_, err = l.Supplemental(ctx)
	require.ErrorIs(t, err, context.Canceled)

	assert.Zero(t, coll.Len(), "nothing is read after cancellation")
}
