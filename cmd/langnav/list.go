package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/langnav/internal/domain"
	"github.com/heartmarshall/langnav/internal/query"
)

type listFlags struct {
	source  string
	sortBy  string
	columns []string
	scopes  []string
	search  string
	reverse bool
	offset  int
	limit   int
}

func newListCmd(flags *globalFlags) *cobra.Command {
	var lf listFlags

	cmd := &cobra.Command{
		Use:   "list <type>",
		Short: "List, filter and sort objects of one type",
		Long: fmt.Sprintf(`List objects of one type: %s.

Sortable fields: %s.
Text fields sort A-Z and numeric fields largest first; --reverse flips
both. Objects without a value for the sort field are always listed last.`,
			joinTypes(domain.ObjectTypes), joinFields(query.Fields)),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := domain.ParseObjectType(args[0])
			if !ok {
				return fmt.Errorf("unknown object type %q (want one of %s)", args[0], joinTypes(domain.ObjectTypes))
			}
			src, ok := domain.ParseLanguageSource(lf.source)
			if !ok {
				return fmt.Errorf("unknown source %q", lf.source)
			}
			var field query.Field
			if lf.sortBy != "" {
				if field, ok = query.ParseField(lf.sortBy); !ok {
					return fmt.Errorf("unknown sort field %q", lf.sortBy)
				}
			}
			columns, err := parseColumns(lf.columns, field)
			if err != nil {
				return err
			}

			res, err := flags.load(cmd)
			if err != nil {
				return err
			}

			sc := query.SourceContext{Source: src, Lineage: res.Graph}
			page, total := query.Apply(res.Graph.Objects(t), query.Options{
				Filters: []query.Filter{query.ScopeFilter(sc, lf.scopes...), query.SubstringFilter(lf.search)},
				Field:   field,
				Context: sc,
				Reverse: lf.reverse,
				Offset:  lf.offset,
				Limit:   lf.limit,
			})

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			header := []string{"CODE", "NAME"}
			for _, c := range columns {
				header = append(header, strings.ToUpper(string(c)))
			}
			fmt.Fprintln(w, strings.Join(header, "\t"))
			for _, obj := range page {
				e := obj.Base()
				row := []string{e.CodeDisplay, e.NameDisplay}
				for _, c := range columns {
					row = append(row, formatValue(query.GetField(obj, c, sc)))
				}
				fmt.Fprintln(w, strings.Join(row, "\t"))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%s of %s shown\n", formatCount(len(page)), formatCount(total))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&lf.source, "source", string(domain.SourceAll), "classification lens for scopes and lineage")
	f.StringVar(&lf.sortBy, "sort", "", "sort field")
	f.StringSliceVar(&lf.columns, "columns", nil, "extra fields to print (default: the sort field, else Population)")
	f.StringSliceVar(&lf.scopes, "scope", nil, "keep only these scopes")
	f.StringVar(&lf.search, "search", "", "case-insensitive substring of code, name or alias")
	f.BoolVar(&lf.reverse, "reverse", false, "reverse the sort direction")
	f.IntVar(&lf.offset, "offset", 0, "skip this many results")
	f.IntVar(&lf.limit, "limit", 50, "page size (0 = all)")
	return cmd
}

func parseColumns(names []string, sortField query.Field) ([]query.Field, error) {
	if len(names) == 0 {
		if sortField != "" && sortField != query.FieldCode && sortField != query.FieldName {
			return []query.Field{sortField}, nil
		}
		return []query.Field{query.FieldPopulation}, nil
	}
	cols := make([]query.Field, 0, len(names))
	for _, n := range names {
		f, ok := query.ParseField(n)
		if !ok {
			return nil, fmt.Errorf("unknown column %q", n)
		}
		cols = append(cols, f)
	}
	return cols, nil
}

func joinTypes(ts []domain.ObjectType) string {
	s := make([]string, len(ts))
	for i, t := range ts {
		s[i] = t.String()
	}
	return strings.Join(s, ", ")
}

func joinFields(fs []query.Field) string {
	s := make([]string, len(fs))
	for i, f := range fs {
		s[i] = string(f)
	}
	return strings.Join(s, ", ")
}
