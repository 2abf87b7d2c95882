package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAny(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
		ok   bool
	}{
		{"null", nil, Absent, true},
		{"string", "Planta", String("Planta"), true},
		{"int64", int64(2020), Number(2020), true},
		{"float", 1500.5, Number(1500.5), true},
		{"bool", true, String("true"), true},
		{"object", map[string]any{"a": 1}, Absent, false},
		{"array", []any{1}, Absent, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromAny(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueIdentity(t *testing.T) {
	assert.NotEqual(t, Number(2020), String("2020"), "number and string must stay distinct facet values")
	assert.Equal(t, "2020", Number(2020).Text())
	assert.Equal(t, "1500.5", Number(1500.5).Text())
	assert.Equal(t, "", Absent.Text())
	assert.True(t, Number(0).IsFalsy())
	assert.True(t, String("").IsBlank())
	assert.False(t, Number(0).IsBlank())
	assert.Equal(t, "x", Absent.TextOr("x"))
}

func TestNewDataset(t *testing.T) {
	payload := []any{
		[]any{"C1", "Org A", int64(2020), "Enero"},
		[]any{"C2", nil, 2021.0},
	}
	ds, err := NewDataset("mem", payload, "fp")
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	assert.Equal(t, String("Org A"), ds.Row(0).Get(FieldOrganization))
	assert.True(t, ds.Row(1).Get(FieldOrganization).IsAbsent())
	assert.True(t, ds.Row(1).Get(FieldRoleOut).IsAbsent(), "short rows read absent")
	assert.Equal(t, 1, ds.Row(1).Index)
	assert.Nil(t, ds.Row(5))
	assert.Equal(t, "fp", ds.Fingerprint())
}

func TestNewDatasetRejectsNonArray(t *testing.T) {
	_, err := NewDataset("mem", map[string]any{"rows": []any{}}, "")
	require.Error(t, err)

	var fe *DataFormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, -1, fe.Row)
	assert.True(t, errors.Is(err, ErrNotArray))

	_, err = NewDataset("mem", []any{"not a row"}, "")
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 0, fe.Row)

	_, err = NewDataset("mem", []any{[]any{"a", []any{1}}}, "")
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 1, fe.Field)
}

func TestNewDatasetEmpty(t *testing.T) {
	ds, err := NewDataset("mem", []any{}, "")
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}

func TestConcatReindexes(t *testing.T) {
	a := FromValues("a", [][]Value{{String("x")}, {String("y")}})
	b := FromValues("b", [][]Value{{String("z")}})
	all := Concat("ab", "fp", a, b)

	require.Equal(t, 3, all.Len())
	assert.Equal(t, 2, all.Row(2).Index)
	assert.Equal(t, String("z"), all.Row(2).Get(0))
	assert.Equal(t, 0, b.Row(0).Index, "inputs are not modified")
}

func TestFieldNames(t *testing.T) {
	idx, ok := FieldByName("gross_pay")
	require.True(t, ok)
	assert.Equal(t, FieldGrossPay, idx)
	assert.Equal(t, "role_out", FieldKey(FieldRoleOut))
	assert.False(t, ValidField(14))
	assert.False(t, ValidField(FieldCount))
}
