package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/langnav/internal/domain"
	"github.com/heartmarshall/langnav/internal/graph"
	"github.com/heartmarshall/langnav/internal/query"
)

func newShowCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <code>",
		Short: "Print every known field of one object",
		Long: `Print one object. Language codes are resolved through ISO 639, CLDR
aliases, retirement redirects and Glottocodes; other codes are matched
against locales, territories, writing systems, censuses, variant tags
and keyboards in that order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := flags.load(cmd)
			if err != nil {
				return err
			}
			obj, ok := find(res.Graph, args[0])
			if !ok {
				return fmt.Errorf("%q: %w", args[0], domain.ErrNotFound)
			}
			return printObject(cmd.OutOrStdout(), res.Graph, obj)
		},
	}
}

func find(g *graph.Graph, code string) (domain.Object, bool) {
	code = strings.TrimSpace(code)
	for _, c := range []string{code, strings.ToLower(code)} {
		if lang, ok := g.ResolveLanguage(c); ok {
			return lang, true
		}
	}
	if loc, ok := g.Locales[domain.ParseLocaleCode(code).String()]; ok {
		return loc, true
	}
	if t, ok := g.Territories[strings.ToUpper(code)]; ok {
		return t, true
	}
	for _, id := range []string{code, title(code)} {
		if ws, ok := g.WritingSystems[id]; ok {
			return ws, true
		}
	}
	if c, ok := g.Censuses[code]; ok {
		return c, true
	}
	if v, ok := g.VariantTags[strings.ToLower(code)]; ok {
		return v, true
	}
	if k, ok := g.Keyboards[code]; ok {
		return k, true
	}
	return nil, false
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func printObject(out io.Writer, g *graph.Graph, obj domain.Object) error {
	e := obj.Base()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "Type\t%s\n", obj.ObjectType())
	fmt.Fprintf(w, "ID\t%s\n", e.ID)
	if len(e.Names) > 1 {
		fmt.Fprintf(w, "Names\t%s\n", strings.Join(e.Names, "; "))
	}

	sc := query.SourceContext{Lineage: g}
	for _, f := range query.Fields {
		if f == query.FieldCode {
			continue
		}
		if v := query.GetField(obj, f, sc); v.IsDefined() {
			fmt.Fprintf(w, "%s\t%s\n", f, formatValue(v))
		}
	}

	if lang, ok := obj.(*domain.Language); ok {
		printLineage(w, g, lang)
		if lang.Warning != "" {
			fmt.Fprintf(w, "Warning\t%s\n", lang.Warning)
		}
		for _, n := range lang.Notes {
			fmt.Fprintf(w, "Note\t%s\n", n)
		}
	}
	return w.Flush()
}

func printLineage(w io.Writer, g *graph.Graph, lang *domain.Language) {
	for _, src := range domain.LanguageSources {
		rec := lang.Record(src)
		if rec == nil {
			continue
		}
		line := rec.Code
		if p := g.Parent(src, lang); p != nil {
			line += " < " + p.ID
		}
		if n := len(g.Children(src, lang)); n > 0 {
			line += fmt.Sprintf(" (%s children)", formatCount(n))
		}
		fmt.Fprintf(w, "%s\t%s\n", src, line)
	}
}
