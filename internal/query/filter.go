package query

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/heartmarshall/langnav/internal/domain"
)

// Filter keeps the objects it returns true for.
type Filter func(domain.Object) bool

// ScopeFilter keeps objects whose scope (in the lens of sc) is one of
// scopes. Objects without a scope always pass, as does every object when
// scopes is empty.
func ScopeFilter(sc SourceContext, scopes ...string) Filter {
	if len(scopes) == 0 {
		return func(domain.Object) bool { return true }
	}
	return func(obj domain.Object) bool {
		v := GetField(obj, FieldScope, sc)
		if !v.IsDefined() {
			return true
		}
		return slices.ContainsFunc(scopes, func(s string) bool {
			return strings.EqualFold(s, v.AsText())
		})
	}
}

// SubstringFilter keeps objects whose ID, display code, display name or
// any alias contains text, compared case-folded.
func SubstringFilter(text string) Filter {
	needle := cases.Fold().String(strings.TrimSpace(text))
	if needle == "" {
		return func(domain.Object) bool { return true }
	}
	return func(obj domain.Object) bool {
		fold := cases.Fold()
		e := obj.Base()
		candidates := append([]string{e.ID, e.CodeDisplay, e.NameDisplay}, e.Names...)
		for _, s := range candidates {
			if strings.Contains(fold.String(s), needle) {
				return true
			}
		}
		return false
	}
}

// Options drives Apply.
type Options struct {
	Filters []Filter
	// Field is the sort key; empty keeps the input order.
	Field   Field
	Context SourceContext
	Reverse bool
	Offset  int
	// Limit caps the page size; 0 means no limit.
	Limit int
}

// Apply filters, sorts and paginates objs. It returns the page and the
// number of objects that passed the filters. objs is not modified.
func Apply[T domain.Object](objs []T, opts Options) ([]T, int) {
	out := make([]T, 0, len(objs))
outer:
	for _, o := range objs {
		for _, f := range opts.Filters {
			if f != nil && !f(o) {
				continue outer
			}
		}
		out = append(out, o)
	}
	total := len(out)

	if opts.Field != "" {
		less := SortFunc(opts.Field, opts.Context, opts.Reverse)
		slices.SortStableFunc(out, func(a, b T) int { return less(a, b) })
	}

	start := min(max(opts.Offset, 0), len(out))
	out = out[start:]
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, total
}
