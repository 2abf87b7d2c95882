package variant

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planillas/app/facets"
	"planillas/app/record"
	"planillas/app/report"
)

func TestEmbeddedVariants(t *testing.T) {
	assert.Equal(t, []string{"empleo", "estadistica", "muni"}, Names())

	tests := []struct {
		name     string
		facets   int
		searches []string
	}{
		{"muni", 9, []string{"name", "role"}},
		{"empleo", 7, []string{"name"}},
		{"estadistica", 3, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Load(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.name, v.Name)
			assert.Equal(t, tt.facets, v.Registry.Len())

			var keys []string
			for _, g := range v.Searches {
				keys = append(keys, g.Key)
			}
			assert.Equal(t, tt.searches, keys)
			for _, r := range v.Reports {
				assert.True(t, report.Known(r), r)
			}
		})
	}
}

func TestStatisticsVariant(t *testing.T) {
	v := MustLoad("estadistica")

	year, ok := v.Registry.Lookup("anio")
	require.True(t, ok)
	assert.Equal(t, facets.OrderDescending, year.Order)
	assert.Equal(t, record.FieldYear, year.Field)

	// the full battery except the contract cards of the municipal grid
	assert.Len(t, v.Reports, len(report.Names())-1)
	assert.NotContains(t, v.Reports, report.ContractStatsReport)
	assert.Equal(t, report.DefaultThresholds(), v.Report.Thresholds)
	assert.Equal(t, 57.5, v.Report.Ages["50 a 65"])
}

func TestMuniSearchGroupsMatchStandardGroups(t *testing.T) {
	v := MustLoad("muni")
	require.Len(t, v.Searches, 2)
	assert.Equal(t, facets.NameSearch.Fields, v.Searches[0].Fields)
	assert.Equal(t, facets.RoleSearch.Fields, v.Searches[1].Fields)
}

func TestParseOverridesThresholds(t *testing.T) {
	v, err := Parse([]byte(`
name: custom
facets:
  - {key: anio, field: year}
reports: [kpis, elite_cohort]
thresholds:
  elite_pay: 5000000
pay_breakpoints: [1000000, 2000000]
max_buckets: 12
`))
	require.NoError(t, err)
	assert.Equal(t, 5_000_000.0, v.Report.Thresholds.ElitePay)
	assert.Equal(t, 700_000.0, v.Report.Thresholds.BasePay, "unlisted thresholds keep defaults")
	assert.Equal(t, []float64{1_000_000, 2_000_000}, v.Report.PayBreakpoints)
	assert.Equal(t, 12, v.Report.MaxBuckets)
	assert.Equal(t, report.DefaultAgeTable, v.Report.Ages)
	assert.Empty(t, v.Searches)
}

func TestParseRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		problem string
	}{
		{"missing name", "facets: [{key: a, field: year}]", "name is required"},
		{"no facets", "name: x", "at least one facet"},
		{"bad field", "name: x\nfacets: [{key: a, field: salary}]", `unknown field "salary"`},
		{"bad order", "name: x\nfacets: [{key: a, field: year, order: up}]", "order must be asc or desc"},
		{"duplicate facet", "name: x\nfacets: [{key: a, field: year}, {key: a, field: month}]", "duplicate"},
		{"bad report", "name: x\nfacets: [{key: a, field: year}]\nreports: [nope]", `unknown report "nope"`},
		{"bad search", "name: x\nfacets: [{key: a, field: year}]\nsearches: [{key: s}]", "has no fields"},
		{"bad bands", "name: x\nfacets: [{key: a, field: year}]\npay_breakpoints: [2, 1]", "strictly increasing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Error(), tt.problem)
		})
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("name: x\nfacetz: []"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse variant")
}

func TestLoadUnknownAndFile(t *testing.T) {
	_, err := Load("nope")
	assert.ErrorContains(t, err, "unknown variant")

	path := filepath.Join(t.TempDir(), "mine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: mine\nfacets: [{key: sexo, field: sex, label: Sexo}]\n"), 0o644))
	v, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mine", v.Name)
	d, _ := v.Registry.Lookup("sexo")
	assert.Equal(t, "Sexo", d.Label)
}
