package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"planillas/app"
	"planillas/app/dashboard"
	"planillas/app/format"
	"planillas/app/logging"
	"planillas/app/record"
	"planillas/app/settings"
	"planillas/app/variant"
)

// globalOptions are the persistent flags shared by every subcommand
type globalOptions struct {
	config   string
	variant  string
	logLevel string
	data     string
	glob     string
}

// viewOptions select the records a subcommand works on
type viewOptions struct {
	filters  []string
	searches []string
	sort     string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "planillas",
		Short: "Filter and summarize public payroll datasets",
		Long: `planillas loads a payroll dataset and answers the same questions as the
dashboards: which values each facet can still take, the headline figures of
the filtered view, and the export workbook.

Examples:
  planillas summary --data data2.json.gz --filter organismo="Muni Lota"
  planillas options anio --glob "shards/**/*.json" --filter tipoContrato=Contrata
  planillas export --data data2.json.gz --sort gross_pay:desc --out lota.xlsx`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.config, "config", "", "settings file (default ./planillas.yml when present)")
	pf.StringVar(&opts.variant, "variant", "", "dashboard variant: "+strings.Join(variant.Names(), ", "))
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&opts.data, "data", "", "dataset file (.json, optionally .gz/.bz2/.xz, or an exported .xlsx)")
	pf.StringVar(&opts.glob, "glob", "", "glob of dataset shards, e.g. \"**/*.json.gz\"")
	cmd.MarkFlagsMutuallyExclusive("data", "glob")

	cmd.AddCommand(
		newSummaryCmd(opts),
		newOptionsCmd(opts),
		newExportCmd(opts),
		newVariantsCmd(),
	)
	return cmd
}

func addViewFlags(cmd *cobra.Command, view *viewOptions, withSort bool) {
	cmd.Flags().StringArrayVar(&view.filters, "filter", nil, "select a facet value, key=value (repeatable)")
	cmd.Flags().StringArrayVar(&view.searches, "search", nil, "free text search, group=query (repeatable)")
	if withSort {
		cmd.Flags().StringVar(&view.sort, "sort", "", "sort field, field[:desc]")
	}
}

func newSummaryCmd(opts *globalOptions) *cobra.Command {
	view := &viewOptions{}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the headline figures of the filtered view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, d, err := openView(cmd, opts, view)
			if err != nil {
				return err
			}
			defer a.Shutdown()
			printSummary(cmd.OutOrStdout(), d.Snapshot())
			return nil
		},
	}
	addViewFlags(cmd, view, false)
	return cmd
}

func newOptionsCmd(opts *globalOptions) *cobra.Command {
	view := &viewOptions{}
	var match string
	cmd := &cobra.Command{
		Use:   "options <facet>",
		Short: "List the values a facet can still take, with record counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, d, err := openView(cmd, opts, view)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			key := args[0]
			values, err := d.SearchOptions(key, match)
			if err != nil {
				return err
			}
			facet, _ := d.Snapshot().Facet(key)
			printOptions(cmd.OutOrStdout(), facet, values)
			return nil
		},
	}
	addViewFlags(cmd, view, false)
	cmd.Flags().StringVar(&match, "match", "", "only list values containing this text")
	return cmd
}

func newExportCmd(opts *globalOptions) *cobra.Command {
	view := &viewOptions{}
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered view to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, d, err := openView(cmd, opts, view)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			path, err := d.ExportFile(out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s records to %s\n",
				color.GreenString("wrote"), format.Number(float64(len(d.SortedRows()))), path)
			return nil
		},
	}
	addViewFlags(cmd, view, true)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default from settings)")
	return cmd
}

func newVariantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the built-in dashboard variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			bold := color.New(color.Bold)
			for _, name := range variant.Names() {
				v, err := variant.Load(name)
				if err != nil {
					return err
				}
				var keys []string
				for _, def := range v.Registry.All() {
					keys = append(keys, def.Key)
				}
				bold.Fprintf(w, "%-12s", v.Name)
				fmt.Fprintf(w, " %s\n", v.Title)
				fmt.Fprintf(w, "  facets:  %s\n", strings.Join(keys, ", "))
				fmt.Fprintf(w, "  reports: %s\n", strings.Join(v.Reports, ", "))
			}
			return nil
		},
	}
}

// openView loads the dataset, opens its dashboard and applies the view
// flags in order. Each filter is matched against the options reachable
// after the previous ones.
func openView(cmd *cobra.Command, opts *globalOptions, view *viewOptions) (*app.App, *dashboard.Dashboard, error) {
	s, err := settings.Load(opts.config)
	if err != nil {
		return nil, nil, err
	}
	if opts.variant != "" {
		s.Variant = opts.variant
	}
	if opts.logLevel != "" {
		s.Log.Level = opts.logLevel
	}
	switch {
	case opts.data != "":
		s.Dataset.Path, s.Dataset.Glob = opts.data, ""
	case opts.glob != "":
		s.Dataset.Path, s.Dataset.Glob = "", opts.glob
	}
	s.DebounceMS = 0

	logger, err := logging.New(logging.Options{Level: s.Log.Level, Pretty: s.Log.Pretty, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return nil, nil, err
	}

	a := app.NewApp(s, logger)
	sess, err := a.Open(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	d := sess.Dashboard

	if err := applyView(d, view); err != nil {
		a.Shutdown()
		return nil, nil, err
	}
	return a, d, nil
}

func applyView(d *dashboard.Dashboard, view *viewOptions) error {
	for _, f := range view.filters {
		key, text, err := splitPair(f, "--filter")
		if err != nil {
			return err
		}
		v, err := reachableValue(d, key, text)
		if err != nil {
			return err
		}
		if err := d.SelectFacet(key, v); err != nil {
			return err
		}
	}
	for _, s := range view.searches {
		group, q, err := splitPair(s, "--search")
		if err != nil {
			return err
		}
		if err := d.SetSearch(group, q); err != nil {
			return err
		}
	}
	if view.sort != "" {
		name, desc := strings.CutSuffix(view.sort, ":desc")
		name = strings.TrimSuffix(name, ":asc")
		field, ok := record.FieldByName(name)
		if !ok {
			return fmt.Errorf("unknown sort field %q", name)
		}
		if err := d.SortBy(field); err != nil {
			return err
		}
		if desc {
			return d.SortBy(field)
		}
	}
	return nil
}

func splitPair(s, flag string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("%s expects key=value, got %q", flag, s)
	}
	return key, value, nil
}

// reachableValue finds the option of a facet whose display text is text
func reachableValue(d *dashboard.Dashboard, key, text string) (record.Value, error) {
	values, err := d.Options(key)
	if err != nil {
		return record.Absent, err
	}
	for _, v := range values {
		if v.Text() == text {
			return v, nil
		}
	}
	return record.Absent, fmt.Errorf("value %q is not reachable in facet %q", text, key)
}

func printSummary(w io.Writer, snap *dashboard.Snapshot) {
	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	for _, c := range snap.Pruned {
		fmt.Fprintf(w, "%s %s: %s\n", color.YellowString("dropped"), c.Label, c.Value.Text())
	}
	if len(snap.Chips) > 0 {
		chips := make([]string, len(snap.Chips))
		for i, c := range snap.Chips {
			chips[i] = c.Label + ": " + c.Value.Text()
		}
		dim.Fprintf(w, "filters: %s\n", strings.Join(chips, " | "))
	}
	if snap.Empty {
		fmt.Fprintln(w, color.YellowString(snap.Warning))
		return
	}

	sum := snap.Summary
	if k := sum.KPIs; k != nil {
		bold.Fprintln(w, "Resumen")
		fmt.Fprintf(w, "  %-22s %s\n", "Registros", format.Number(float64(k.Records)))
		fmt.Fprintf(w, "  %-22s %s\n", "Gasto total", format.Compact(k.TotalPay))
		fmt.Fprintf(w, "  %-22s %s\n", "Remuneración promedio", format.Money(k.AvgPay))
		fmt.Fprintf(w, "  %-22s %s\n", "Remuneración máxima", format.Money(k.MaxPay))
		if k.HasAge {
			fmt.Fprintf(w, "  %-22s %.1f\n", "Edad promedio", k.AvgAge)
		}
		fmt.Fprintf(w, "  %-22s %d / %d\n", "Mujeres / Hombres", k.Women, k.Men)
		fmt.Fprintf(w, "  %-22s %d\n", "Organismos", k.Organizations)
	}
	if cs := sum.ContractStats; cs != nil {
		bold.Fprintln(w, "Contratos")
		for _, c := range cs.Top {
			fmt.Fprintf(w, "  %-22s %8s  %s\n", c.Type, format.Number(float64(c.Count)), format.Money(c.AvgPay))
		}
	}
}

func printOptions(w io.Writer, facet dashboard.FacetOptions, values []record.Value) {
	counts := make(map[record.Value]int, len(facet.Values))
	for i, v := range facet.Values {
		if i < len(facet.Counts) {
			counts[v] = facet.Counts[i]
		}
	}
	selected := make(map[record.Value]bool, len(facet.Selected))
	for _, v := range facet.Selected {
		selected[v] = true
	}

	color.New(color.Bold).Fprintln(w, facet.Label)
	for _, v := range values {
		marker := " "
		if selected[v] {
			marker = color.GreenString("*")
		}
		fmt.Fprintf(w, "%s %-40s %s\n", marker, v.Text(), format.Number(float64(counts[v])))
	}
}
