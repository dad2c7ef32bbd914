package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langnav/internal/query"
)

func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"languages.tsv": "code\tname\tendonym\tscope\tparent\tpopulation\n" +
			"elv\tElvish\t\tFamily\t\t\n" +
			"sjn\tSindarin\tEdhellen\tLanguage\telv\t12000\n" +
			"qya\tQuenya\t\tLanguage\telv\t800\n",
		"territories.tsv": "code\tname\tscope\tcontainedIn\tsovereign\tpopulation\n" +
			"001\tWorld\tWorld\t\t\t\n" +
			"BE\tBeleriand\tCountry\t001\t\t10000\n",
		"locales.tsv": "code\tname\tpopulationSpeaking\n" +
			"sjn_BE\tSindarin (Beleriand)\t9000\n" +
			"qya_BE\tQuenya (Beleriand)\t700\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("LOG_LEVEL", "error")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList_SortsByPopulation(t *testing.T) {
	dir := writeDataDir(t)

	out, err := run(t, "list", "language", "--data-dir", dir, "--sort", "population", "--scope", "Language")
	require.NoError(t, err)

	assert.Contains(t, out, "POPULATION")
	assert.Less(t, bytes.Index([]byte(out), []byte("sjn")), bytes.Index([]byte(out), []byte("qya")))
	assert.NotContains(t, out, "Elvish")
	assert.Contains(t, out, "2 of 2 shown")
}

func TestList_UnknownType(t *testing.T) {
	_, err := run(t, "list", "planet", "--data-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown object type")
}

func TestShow_Language(t *testing.T) {
	dir := writeDataDir(t)

	out, err := run(t, "show", "SJN", "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Sindarin")
	assert.Contains(t, out, "Edhellen")
	assert.Contains(t, out, "sjn < elv")
}

func TestShow_NotFound(t *testing.T) {
	dir := writeDataDir(t)

	_, err := run(t, "show", "zzz", "--data-dir", dir)
	require.Error(t, err)
}

func TestSummary_WritesMetricsFile(t *testing.T) {
	dir := writeDataDir(t)
	metricsFile := filepath.Join(t.TempDir(), "langnav.prom")

	out, err := run(t, "summary", "--data-dir", dir, "--metrics-file", metricsFile)
	require.NoError(t, err)
	assert.Contains(t, out, "largest languages")
	assert.Contains(t, out, "fetch_failure")

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "langnav_entities")
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", formatValue(query.Undefined()))
	assert.Equal(t, "Latn", formatValue(query.Text("Latn")))
	assert.Equal(t, "1,234,567", formatValue(query.Int(1234567)))
	assert.Equal(t, "12.5", formatValue(query.Number(12.5)))
}
