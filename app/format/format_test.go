package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planillas/app/record"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$ 1.234.567", Money(1234567))
	assert.Equal(t, "$ 0", Money(0))
	assert.Equal(t, "$ 250.000,5", Money(250000.5))
	assert.Equal(t, "$ 1.500.000", MoneyValue(record.Number(1500000)))
	assert.Equal(t, "n/d", MoneyValue(record.String("n/d")))
	assert.Equal(t, "", MoneyValue(record.Absent))
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "$2.5 MM", Compact(2_500_000_000))
	assert.Equal(t, "$3.4 M", Compact(3_400_000))
	assert.Equal(t, "$1.0 M", Compact(1_000_000))
	assert.Equal(t, "$950.000", Compact(949_999.6))
}

func TestDate(t *testing.T) {
	tests := []struct {
		in   record.Value
		want string
	}{
		{record.Number(1577836800000), "01-01-2020"},
		{record.String("2021-03-15"), "15-03-2021"},
		{record.String("2021-03-15T23:30:00-04:00"), "16-03-2021"},
		{record.String("2019-12-31T00:00:00"), "31-12-2019"},
		{record.String("marzo"), "marzo"},
		{record.Absent, "-"},
		{record.String(""), "-"},
		{record.Number(0), "-"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Date(tt.in), "input %q", tt.in.Text())
	}
}

func sampleRow() *record.Row {
	v := make([]record.Value, record.FieldCount)
	v[record.FieldNationalID] = record.String("12.345.678-9")
	v[record.FieldName] = record.String("Ana Pérez")
	v[record.FieldParentOrg] = record.String("Municipalidades")
	v[record.FieldOrganization] = record.String("Municipalidad de Lota")
	v[record.FieldQualification] = record.Number(0)
	v[record.FieldAgeBracket] = record.String("30 a 50")
	v[record.FieldYear] = record.Number(2020)
	v[record.FieldMonth] = record.Number(3)
	v[record.FieldContractType] = record.String("Planta")
	v[record.FieldExitMonth] = record.String("Marzo")
	v[record.FieldExitYear] = record.Number(2022)
	v[record.FieldExitContractType] = record.String("Contrata")
	v[record.FieldGrossPay] = record.Number(1234567)
	v[record.FieldGrossPayIn] = record.Number(900000)
	v[record.FieldStartDate] = record.String("2020-03-01")
	v[record.FieldExitQualification] = record.String("0")
	return record.FromValues("fmt", [][]record.Value{v}).Row(0)
}

func TestGridRow(t *testing.T) {
	cells := GridRow(sampleRow())
	require.Len(t, cells, len(GridHeader))
	assert.Equal(t, []string{
		"12.345.678-9", "Ana Pérez", "Municipalidades", "Municipalidad de Lota", "Sin Clasificar", "30 a 50",
		"2020", "3", "Planta", "Mar-2022", "0", "Contrata", "$ 1.234.567",
	}, cells)

	row := sampleRow()
	row.Values[record.FieldExitYear] = record.Absent
	row.Values[record.FieldPayments] = record.Number(12)
	cells = GridRow(row)
	assert.Equal(t, "-", cells[9])
	assert.Equal(t, "12", cells[10])
}

func TestDetail(t *testing.T) {
	d := Detail(sampleRow())
	require.Len(t, d.Fields, 11)
	assert.Equal(t, DetailField{Label: "Código Organismo Padre", Value: "-"}, d.Fields[0])
	assert.Equal(t, DetailField{Label: "RUT", Value: "12.345.678-9"}, d.Fields[4])

	require.Len(t, d.Pairs, 8)
	assert.Equal(t, DetailPair{Label: "Año", Entry: "2020", Exit: "2022"}, d.Pairs[0])
	assert.Equal(t, DetailPair{Label: "Fecha", Entry: "01-03-2020", Exit: "-"}, d.Pairs[2])
	assert.Equal(t, DetailPair{Label: "Calificación", Entry: "Sin Clasificar", Exit: "Sin Clasificar"}, d.Pairs[4])
	assert.Equal(t, DetailPair{Label: "Remuneración Bruta", Entry: "$ 900.000", Exit: "$ 1.234.567"}, d.Pairs[6])
	assert.Equal(t, DetailPair{Label: "Remuneración Líquida", Entry: "-", Exit: "-"}, d.Pairs[7])

	short := record.FromValues("short", [][]record.Value{{record.String("X1"), record.String("Org")}}).Row(0)
	assert.Len(t, Detail(short).Fields, 2, "fields past the row end are omitted")
}
