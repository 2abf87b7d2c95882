package query

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planillas/app/record"
)

func rowsWith(field int, values ...record.Value) []*record.Row {
	data := make([][]record.Value, len(values))
	for i, v := range values {
		data[i] = make([]record.Value, record.FieldCount)
		data[i][field] = v
	}
	return record.FromValues("sort", data).Rows()
}

func indexes(rows []*record.Row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Index
	}
	return out
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b record.Value
		want int
	}{
		{"numbers", record.Number(9), record.Number(10), -1},
		{"equal numbers", record.Number(3), record.Number(3), 0},
		{"text ignores case", record.String("alfa"), record.String("BETA"), -1},
		{"same text different case", record.String("Muni"), record.String("muni"), 0},
		{"absent sorts first", record.Absent, record.String("a"), -1},
		{"mixed compares as text", record.Number(10), record.String("9"), -1},
		{"absent equals empty", record.Absent, record.String(""), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
			assert.Equal(t, -tt.want, Compare(tt.b, tt.a))
		})
	}
}

func TestSortRowsDoesNotMutateInput(t *testing.T) {
	rows := rowsWith(record.FieldGrossPay, record.Number(3), record.Number(1), record.Number(2))
	sorted := SortRows(rows, record.FieldGrossPay, Ascending)

	assert.Equal(t, []int{1, 2, 0}, indexes(sorted))
	assert.Equal(t, []int{0, 1, 2}, indexes(rows))

	desc := SortRows(rows, record.FieldGrossPay, Descending)
	assert.Equal(t, []int{0, 2, 1}, indexes(desc))

	assert.Equal(t, []int{0, 1, 2}, indexes(SortRows(rows, NoSortField, Ascending)))
}

func TestSortIsStable(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	values := make([]record.Value, 300)
	for i := range values {
		values[i] = record.String([]string{"Planta", "contrata", "PLANTA", "Honorarios"}[r.Intn(4)])
	}
	rows := rowsWith(record.FieldContractType, values...)

	for _, dir := range []SortDirection{Ascending, Descending} {
		sorted := SortRows(rows, record.FieldContractType, dir)
		require.Len(t, sorted, len(rows))
		for i := 1; i < len(sorted); i++ {
			prev, cur := sorted[i-1], sorted[i]
			c := Compare(prev.Get(record.FieldContractType), cur.Get(record.FieldContractType))
			if dir == Descending {
				c = -c
			}
			require.LessOrEqual(t, c, 0, "out of order at %d", i)
			if c == 0 {
				require.Less(t, prev.Index, cur.Index, "equal keys lost input order at %d (%s)", i, dir)
			}
		}
	}
}

func TestSortStateToggle(t *testing.T) {
	s := NewSortState()
	assert.False(t, s.Active())

	s = s.Toggle(record.FieldYear)
	assert.Equal(t, SortState{Field: record.FieldYear, Direction: Ascending}, s)
	s = s.Toggle(record.FieldYear)
	assert.Equal(t, Descending, s.Direction)
	s = s.Toggle(record.FieldYear)
	assert.Equal(t, Ascending, s.Direction)

	s = s.Toggle(record.FieldYear).Toggle(record.FieldGrossPay)
	assert.Equal(t, SortState{Field: record.FieldGrossPay, Direction: Ascending}, s, "a new field resets to ascending")

	assert.Equal(t, NewSortState(), s.Clear())
	assert.Equal(t, "desc", Descending.String())
}
