package iso

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langnav/internal/domain"
)

func TestParseLanguages(t *testing.T) {
	t.Parallel()

	input := "Id\tPart2B\tPart2T\tPart1\tScope\tLanguage_Type\tRef_Name\tComment\n" +
		"eng\teng\teng\ten\tI\tL\tEnglish\t\n" +
		"ara\tara\tara\tar\tM\tL\tArabic\t\n" +
		"sjn\t\t\t\tI\tC\tSindarin\t\n" +
		"zzz\t\t\t\tX\tL\tBroken\t\n" +
		"yyy\t\t\t\tI\tQ\tBroken\t\n"

	rows, stats, err := ParseLanguages(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Len(t, stats.Skipped, 2)

	assert.Equal(t, "en", rows[0].BCP())
	assert.Equal(t, domain.ScopeLanguage, rows[0].Scope)
	assert.Equal(t, "Living", rows[0].Type.Vitality())
	assert.Equal(t, domain.ScopeMacrolanguage, rows[1].Scope)
	assert.Equal(t, "sjn", rows[2].BCP())
	assert.Equal(t, "Constructed", rows[2].Type.Vitality())
}

func TestParseMacrolanguages(t *testing.T) {
	t.Parallel()

	input := "M_Id\tI_Id\tI_Status\n" +
		"ara\tarb\tA\n" +
		"ara\tayh\tR\n" +
		"\tabc\tA\n"

	rows, stats, err := ParseMacrolanguages(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, stats.Skipped, 1)
	assert.Equal(t, Membership{Macrolanguage: "ara", Individual: "arb"}, rows[0])
	assert.True(t, rows[1].Retired)
}

func TestParseFamilies(t *testing.T) {
	t.Parallel()

	input := "URI\tcode\tLabel (English)\tLabel (French)\thierarchy\n" +
		"http://id.loc.gov/vocabulary/iso639-5/ine\tine\tIndo-European languages\tindo-européennes\tine\n" +
		"http://id.loc.gov/vocabulary/iso639-5/gem\tgem\tGermanic languages\tgermaniques\tine : gem\n" +
		"http://id.loc.gov/vocabulary/iso639-5/gmw\tgmw\tWest Germanic languages\tgermaniques occidentales\tine : gem\n" +
		"http://id.loc.gov/vocabulary/iso639-5/aav\taav\tAustro-Asiatic languages\n"

	rows, stats, err := ParseFamilies(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Empty(t, rows[0].ParentCode)
	assert.Equal(t, "ine", rows[1].ParentCode)
	assert.Equal(t, "gem", rows[2].ParentCode, "hierarchy missing own code still yields the last element as parent")
	assert.Empty(t, rows[3].ParentCode)
	require.Len(t, stats.Warnings, 1)
	assert.Contains(t, stats.Warnings[0], "gmw")
}

func TestParseRetirements(t *testing.T) {
	t.Parallel()

	input := "Id\tRef_Name\tRet_Reason\tChange_To\tRet_Remedy\tEffective\n" +
		"nwy\tNyamwezi-Sukuma\tS\t\tSplit into Nyamwezi [nym] and Sukuma [suk]\t2009-01-16\n" +
		"mol\tMoldavian\tM\tron\t\t2008-11-03\n" +
		"xxx\tBogus\tZ\t\t\t2001-01-01\n"

	rows, stats, err := ParseRetirements(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, stats.Skipped, 1)

	assert.Equal(t, ReasonSplit, rows[0].Reason)
	assert.Equal(t, "Split", rows[0].Reason.String())
	assert.Equal(t, []string{"nym", "suk"}, rows[0].SplitInto())

	assert.Equal(t, ReasonMerge, rows[1].Reason)
	assert.Equal(t, "ron", rows[1].ChangeTo)
	assert.Nil(t, rows[1].SplitInto())
}
