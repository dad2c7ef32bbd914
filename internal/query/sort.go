package query

import (
	"cmp"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/heartmarshall/langnav/internal/domain"
)

// SortFunc returns a comparator for slices.SortStableFunc. Undefined values
// sort last in both directions, and numbers always precede text; values
// of one kind sort in the field's natural direction, flipped by reverse.
//
// The comparator owns a collator and must not be shared between goroutines.
func SortFunc(field Field, sc SourceContext, reverse bool) func(a, b domain.Object) int {
	col := collate.New(language.Und, collate.Loose)
	flip := field.Ascending() == reverse

	return func(a, b domain.Object) int {
		va, vb := GetField(a, field, sc), GetField(b, field, sc)
		switch {
		case !va.IsDefined() && !vb.IsDefined():
			return 0
		case !va.IsDefined():
			return 1
		case !vb.IsDefined():
			return -1
		}
		if va.kind != vb.kind {
			if va.kind == KindNumber {
				return -1
			}
			return 1
		}
		c := compareDefined(col, va, vb)
		if flip {
			c = -c
		}
		return c
	}
}

func compareDefined(col *collate.Collator, a, b Value) int {
	if a.kind == KindNumber {
		return cmp.Compare(a.num, b.num)
	}
	if c := col.CompareString(a.text, b.text); c != 0 {
		return c
	}
	return cmp.Compare(a.text, b.text)
}
