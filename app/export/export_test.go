package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"planillas/app/record"
)

func exportRows() []*record.Row {
	a := make([]record.Value, record.FieldCount)
	a[record.FieldOrgCode] = record.String("AB001")
	a[record.FieldOrganization] = record.String("Municipalidad de Lota")
	a[record.FieldYear] = record.Number(2020)
	a[record.FieldGrossPay] = record.Number(1234567.5)
	a[record.FieldRoleOut] = record.String("AUXILIAR")

	b := make([]record.Value, record.FieldCount)
	b[record.FieldOrganization] = record.String("Servicio de Salud")
	b[record.FieldYear] = record.String("2021")
	b[record.FieldRoleOut] = record.String("DIRECTIVO")
	return record.FromValues("export", [][]record.Value{a, b}).Rows()
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, exportRows(), DefaultOptions()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheet}, f.GetSheetList())
	rows, err := f.GetRows(DefaultSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header(), rows[0])
	require.Len(t, rows[1], len(Columns))

	assert.Equal(t, "AB001", rows[1][0])
	assert.Equal(t, "Municipalidad de Lota", rows[1][1])
	assert.Equal(t, "2020", rows[1][2])
	assert.Equal(t, "", rows[1][3], "absent values are empty cells")
	assert.Equal(t, "1234567.5", rows[1][19])
	assert.Equal(t, "AUXILIAR", rows[1][26])
	assert.Equal(t, "", rows[2][0])
	assert.Equal(t, "2021", rows[2][2])

	typ, err := f.GetCellType(DefaultSheet, "C2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ, "numbers stay numeric")
	assert.NotEqual(t, excelize.CellTypeInlineString, typ)
}

func TestColumnsLayout(t *testing.T) {
	require.Len(t, Columns, 27)
	assert.Equal(t, "Código Organismo", Columns[0].Header)
	assert.Equal(t, record.FieldParentOrgCode, Columns[14].Field)
	assert.Equal(t, "Cargo Salida", Columns[26].Header)
	for _, c := range Columns {
		assert.NotEqual(t, 14, c.Field)
		assert.NotEqual(t, 15, c.Field)
	}
}

func TestNothingToExport(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Write(&buf, nil, DefaultOptions()), ErrNothingToExport)
	assert.Zero(t, buf.Len())

	_, err := WriteFile(filepath.Join(t.TempDir(), "x.xlsx"), nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteFile(filepath.Join(dir, "out.xlsx"), exportRows(), Options{Sheet: "Hoja"})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Hoja")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
