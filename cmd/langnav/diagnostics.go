package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/langnav/internal/diag"
)

func newDiagnosticsCmd(flags *globalFlags) *cobra.Command {
	var (
		kind   string
		source string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "diagnostics",
		Short: "Load the graph and list the problems found in the source data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := flags.load(cmd)
			if err != nil {
				return err
			}

			var items []diag.Diagnostic
			for _, d := range res.Diagnostics.Diagnostics() {
				if kind != "" && !strings.EqualFold(kind, d.Kind.String()) {
					continue
				}
				if source != "" && !strings.EqualFold(source, d.Source) {
					continue
				}
				items = append(items, d)
			}
			total := len(items)
			if limit > 0 && limit < len(items) {
				items = items[:limit]
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tSOURCE\tCODE\tMESSAGE")
			for _, d := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Kind, d.Source, d.Code, d.Message)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%s of %s shown\n", formatCount(len(items)), formatCount(total))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&kind, "kind", "", "fetch_failure|malformed_row|missing_reference|data_quality")
	f.StringVar(&source, "source", "", "only diagnostics from this source")
	f.IntVar(&limit, "limit", 100, "maximum rows to print (0 = all)")
	return cmd
}
