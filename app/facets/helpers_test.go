package facets

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"planillas/app/record"
)

var valueComparer = cmp.Comparer(func(a, b record.Value) bool { return a == b })

// payrollRow builds a row with the fields the facet tests care about
func payrollRow(org, parent string, year int, contract string, pay any, rut, name, role string) []record.Value {
	values := make([]record.Value, record.FieldCount)
	values[record.FieldOrganization] = record.String(org)
	values[record.FieldParentOrg] = record.String(parent)
	values[record.FieldYear] = record.Number(float64(year))
	values[record.FieldContractType] = record.String(contract)
	switch p := pay.(type) {
	case int:
		values[record.FieldGrossPay] = record.Number(float64(p))
	case string:
		values[record.FieldGrossPay] = record.String(p)
	}
	values[record.FieldNationalID] = record.String(rut)
	values[record.FieldName] = record.String(name)
	values[record.FieldRoleOut] = record.String(role)
	return values
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(
		Definition{Key: "organismo", Field: record.FieldOrganization, Label: "Organismo"},
		Definition{Key: "orgPadre", Field: record.FieldParentOrg, Label: "Org Padre"},
		Definition{Key: "anio", Field: record.FieldYear, Label: "Año"},
		Definition{Key: "tipoContrato", Field: record.FieldContractType, Label: "Tipo Contrato"},
	)
	require.NoError(t, err)
	return reg
}

var testGroups = []SearchGroup{NameSearch, RoleSearch}

// randomDataset produces a deterministic dataset with blanks and absent
// values sprinkled in so option collection has to skip them
func randomDataset(seed int64, n int) *record.Dataset {
	r := rand.New(rand.NewSource(seed))
	orgs := []string{"Muni Arica", "Muni Lota", "Muni Tome", "Servicio Salud", ""}
	parents := []string{"Municipal", "Salud", "Educacion"}
	contracts := []string{"Planta", "Contrata", "Honorarios", "Codigo del Trabajo"}
	names := []string{"ana perez", "juan soto", "maria rojas", "pedro diaz"}
	roles := []string{"ADMINISTRATIVO", "AUXILIAR", "PROFESIONAL", "DIRECTIVO"}

	rows := make([][]record.Value, n)
	for i := range rows {
		rows[i] = payrollRow(
			orgs[r.Intn(len(orgs))],
			parents[r.Intn(len(parents))],
			2018+r.Intn(4),
			contracts[r.Intn(len(contracts))],
			r.Intn(5)*400000,
			fmt.Sprintf("%d-%d", 10000000+r.Intn(50), r.Intn(10)),
			names[r.Intn(len(names))],
			roles[r.Intn(len(roles))],
		)
		if r.Intn(10) == 0 {
			rows[i][record.FieldContractType] = record.Absent
		}
	}
	return record.FromValues("random", rows)
}

// naiveOptions is the reference: one full scan per facet collecting the
// distinct non-blank values among rows that pass every other facet and the
// searches
func naiveOptions(ds *record.Dataset, st *State, key string) []record.Value {
	target, _ := st.registry.Lookup(key)
	others := st.Clone()
	_ = others.ClearFacet(key)
	match := Predicate(others)

	seen := map[record.Value]struct{}{}
	var out []record.Value
	for _, row := range ds.Rows() {
		if !match(row) {
			continue
		}
		v := row.Get(target.Field)
		if v.IsBlank() {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sortValues(out, target.Order)
	return out
}

// naiveFilter re-applies the constraints row by row without the compiled
// predicate
func naiveFilter(ds *record.Dataset, st *State) []*record.Row {
	var out []*record.Row
	for _, row := range ds.Rows() {
		ok := true
		for _, d := range st.registry.All() {
			if st.Active(d.Key) && !st.IsSelected(d.Key, row.Get(d.Field)) {
				ok = false
			}
		}
		for _, g := range st.SearchGroups() {
			if !MatchTokens(Haystack(row, g.Fields), st.Tokens(g.Key)) {
				ok = false
			}
		}
		if ok {
			out = append(out, row)
		}
	}
	return out
}

func matchRows(ds *record.Dataset, match func(*record.Row) bool) []*record.Row {
	var out []*record.Row
	for _, row := range ds.Rows() {
		if match(row) {
			out = append(out, row)
		}
	}
	return out
}

func rowIndexes(rows []*record.Row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Index
	}
	return out
}
