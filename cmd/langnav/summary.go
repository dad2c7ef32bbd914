package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/langnav/internal/diag"
	"github.com/heartmarshall/langnav/internal/domain"
	"github.com/heartmarshall/langnav/internal/query"
)

var diagnosticKinds = []diag.Kind{diag.FetchFailure, diag.MalformedRow, diag.MissingReference, diag.DataQuality}

func newSummaryCmd(flags *globalFlags) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Load the graph and print entity and diagnostic counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := flags.load(cmd)
			if err != nil {
				return err
			}
			g := res.Graph
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "run %s loaded in %s\n\n", res.Diagnostics.RunID(), res.Took.Round(time.Millisecond))

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
			counts := g.Counts()
			for _, t := range domain.ObjectTypes {
				fmt.Fprintf(w, "%s\t%s\t\n", t, formatCount(counts[t]))
			}
			fmt.Fprintln(w, "\t\t")
			for _, k := range diagnosticKinds {
				fmt.Fprintf(w, "%s\t%s\t\n", k, formatCount(res.Diagnostics.Count(k)))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if top <= 0 {
				return nil
			}
			langs, _ := query.Apply(languages(g.Objects(domain.ObjectLanguage)), query.Options{
				Filters: []query.Filter{query.ScopeFilter(query.SourceContext{}, string(domain.ScopeLanguage))},
				Field:   query.FieldPopulation,
				Limit:   top,
			})
			fmt.Fprintf(out, "\nlargest languages:\n")
			w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, l := range langs {
				pop := query.GetField(l, query.FieldPopulation, query.SourceContext{})
				fmt.Fprintf(w, "  %s\t%s\t%s\n", l.ID, l.NameDisplay, formatValue(pop))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&top, "top", 5, "also list the N most spoken languages (0 disables)")
	return cmd
}

func languages(objs []domain.Object) []*domain.Language {
	out := make([]*domain.Language, 0, len(objs))
	for _, o := range objs {
		if l, ok := o.(*domain.Language); ok {
			out = append(out, l)
		}
	}
	return out
}
