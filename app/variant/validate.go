package variant

import (
	"fmt"
	"strings"

	"planillas/app/facets"
	"planillas/app/record"
	"planillas/app/report"
)

// ValidationError lists every problem found in a variant document
type ValidationError struct {
	Variant  string
	Problems []string
}

func (e *ValidationError) Error() string {
	name := e.Variant
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("invalid variant %s: %s", name, strings.Join(e.Problems, "; "))
}

func (d *document) validate() (*Variant, error) {
	verr := &ValidationError{Variant: d.Name}
	problem := func(format string, args ...any) {
		verr.Problems = append(verr.Problems, fmt.Sprintf(format, args...))
	}

	if d.Name == "" {
		problem("name is required")
	}
	if len(d.Facets) == 0 {
		problem("at least one facet is required")
	}

	defs := make([]facets.Definition, 0, len(d.Facets))
	for i, f := range d.Facets {
		field, ok := record.FieldByName(f.Field)
		if !ok {
			problem("facet %d (%s): unknown field %q", i, f.Key, f.Field)
			continue
		}
		def := facets.Definition{Key: f.Key, Field: field, Label: f.Label}
		switch f.Order {
		case "", "asc":
		case "desc":
			def.Order = facets.OrderDescending
		default:
			problem("facet %s: order must be asc or desc, got %q", f.Key, f.Order)
		}
		defs = append(defs, def)
	}

	var registry *facets.Registry
	if len(defs) == len(d.Facets) && len(defs) > 0 {
		reg, err := facets.NewRegistry(defs...)
		if err != nil {
			problem("%v", err)
		}
		registry = reg
	}

	searches := make([]facets.SearchGroup, 0, len(d.Searches))
	seenSearch := make(map[string]bool, len(d.Searches))
	for _, s := range d.Searches {
		if s.Key == "" {
			problem("search group without key")
			continue
		}
		if seenSearch[s.Key] {
			problem("duplicate search group %q", s.Key)
			continue
		}
		seenSearch[s.Key] = true
		if len(s.Fields) == 0 {
			problem("search group %s has no fields", s.Key)
			continue
		}
		g := facets.SearchGroup{Key: s.Key, Label: s.Label, Fields: make([]int, 0, len(s.Fields))}
		for _, name := range s.Fields {
			field, ok := record.FieldByName(name)
			if !ok {
				problem("search group %s: unknown field %q", s.Key, name)
				continue
			}
			g.Fields = append(g.Fields, field)
		}
		if g.Label == "" {
			g.Label = g.Key
		}
		searches = append(searches, g)
	}

	for _, name := range d.Reports {
		if !report.Known(name) {
			problem("unknown report %q", name)
		}
	}

	cfg := report.DefaultConfig()
	cfg.Thresholds = d.Thresholds
	if len(d.Ages) > 0 {
		cfg.Ages = report.AgeTable(d.Ages)
	}
	if len(d.PayBreakpoints) > 0 {
		for i := 1; i < len(d.PayBreakpoints); i++ {
			if d.PayBreakpoints[i] <= d.PayBreakpoints[i-1] {
				problem("pay_breakpoints must be strictly increasing")
				break
			}
		}
		cfg.PayBreakpoints = d.PayBreakpoints
	}
	if d.MaxBuckets < 0 {
		problem("max_buckets must not be negative")
	} else if d.MaxBuckets > 0 {
		cfg.MaxBuckets = d.MaxBuckets
	}

	if len(verr.Problems) > 0 {
		return nil, verr
	}
	return &Variant{
		Name:     d.Name,
		Title:    d.Title,
		Registry: registry,
		Searches: searches,
		Reports:  append([]string(nil), d.Reports...),
		Report:   cfg,
	}, nil
}
