package territory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langnav/internal/domain"
)

func TestParse(t *testing.T) {
	t.Parallel()

	input := "code\tname\tscope\tcontainedIn\tsovereign\tpopulation\n" +
		"001\tWorld\tWorld\t\t\t\n" +
		"123\tMiddle-earth\tContinent\t001\t\t\n" +
		"be\tBeleriand\tCountry\t123\t\t10,000\n" +
		"SH\tThe Shire\tDependency\t123\tGO\t1_200\n" +
		"XX\tNowhere\tPlanet\t\t\t\n" +
		"YY\tNumberless\tCountry\t\t\tlots\n"

	rows, stats, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Len(t, stats.Skipped, 2)

	assert.Equal(t, domain.TerritoryWorld, rows[0].Scope)
	assert.Nil(t, rows[0].Population)

	be := rows[2]
	assert.Equal(t, "BE", be.Code)
	assert.Equal(t, "123", be.ContainedIn)
	require.NotNil(t, be.Population)
	assert.EqualValues(t, 10000, *be.Population)

	assert.Equal(t, "GO", rows[3].SovereignCode)
	assert.EqualValues(t, 1200, *rows[3].Population)
}

func TestParseStats(t *testing.T) {
	t.Parallel()

	input := "code\tgdp\tliteracy\n" +
		"BE\t1.5e9\t87.5%\n" +
		"ER\t\t\n" +
		"HA\t10\t140\n"

	rows, stats, err := ParseStats(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, stats.Skipped, 1)

	require.NotNil(t, rows[0].LiteracyPercent)
	assert.InDelta(t, 87.5, *rows[0].LiteracyPercent, 1e-9)
	assert.InDelta(t, 1.5e9, *rows[0].GDP, 1)
	assert.Nil(t, rows[1].GDP)
	assert.Nil(t, rows[1].LiteracyPercent)
}
