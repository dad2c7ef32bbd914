package census

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langnav/internal/domain"
)

func TestParse_MultipleCensuses(t *testing.T) {
	t.Parallel()

	input := "#censusID\t-\tbe2001\tbe2011\n" +
		"#nameDisplay\t\tBeleriand 2001\tBeleriand 2011\n" +
		"#territoryID\tbe\n" +
		"#yearCollected\t\t2001\t2011\n" +
		"#collectorType\tGovernment\t\tstudy\n" +
		"#eligiblePopulation\t\t8,000\t10,000\n" +
		"languageCode\tname\t2001\t2011\n" +
		"sjn\tSindarin\t4000\t9300\n" +
		"qya\tQuenya\t\t120\n" +
		"ent\tEntish\t\t\n"

	censuses, stats, err := Parse("census/beleriand.tsv", strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, censuses, 2)
	assert.Equal(t, 2, stats.Parsed)
	assert.Len(t, stats.Skipped, 1)
	assert.Empty(t, stats.Warnings)

	first, second := censuses[0], censuses[1]
	assert.Equal(t, "be2001", first.ID)
	assert.Equal(t, "Beleriand 2001", first.NameDisplay)
	assert.Equal(t, "BE", first.TerritoryCode)
	assert.Equal(t, 2001, first.YearCollected)
	assert.Equal(t, domain.CollectorGovernment, first.CollectorType)
	assert.Equal(t, map[string]int64{"sjn": 4000}, first.LanguageEstimates)

	assert.Equal(t, domain.CollectorStudy, second.CollectorType)
	assert.EqualValues(t, 10000, second.EligiblePopulation)
	assert.Equal(t, map[string]int64{"sjn": 9300, "qya": 120}, second.LanguageEstimates)

	pct := second.PercentOf(9300)
	require.NotNil(t, pct)
	assert.InDelta(t, 93.0, *pct, 1e-9)
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	input := "code\tname\testimate\n" +
		"sjn\tSindarin\t1920\n" +
		"qya\tQuenya\tplenty\n"

	censuses, stats, err := Parse("eriador.tsv", strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, censuses, 1)

	c := censuses[0]
	assert.Equal(t, "eriador#1", c.ID)
	assert.Equal(t, "eriador#1", c.NameDisplay)
	assert.Empty(t, c.TerritoryCode)
	assert.Zero(t, c.YearCollected)
	assert.Equal(t, map[string]int64{"sjn": 1920}, c.LanguageEstimates)
	assert.Nil(t, c.PercentOf(1920))

	// missing territoryID, missing yearCollected, bad estimate
	assert.Len(t, stats.Warnings, 3)
	assert.Len(t, stats.Skipped, 1)
}
