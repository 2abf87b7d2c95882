package export

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"planillas/app/record"
)

// ErrNothingToExport is returned for an empty view
var ErrNothingToExport = errors.New("no records to export")

const (
	DefaultSheet    = "Datos Empleo"
	DefaultFileName = "empleo_rapido_export.xlsx"
)

// Options controls the workbook layout
type Options struct {
	Sheet    string
	FileName string
}

// DefaultOptions returns the default sheet and file name
func DefaultOptions() Options {
	return Options{Sheet: DefaultSheet, FileName: DefaultFileName}
}

// Column is one exported column
type Column struct {
	Header string
	Field  int
}

// Columns is the fixed export layout
var Columns = []Column{
	{"Código Organismo", record.FieldOrgCode},
	{"Organismo", record.FieldOrganization},
	{"Año Entrada", record.FieldYear},
	{"Mes Entrada", record.FieldMonth},
	{"Remuneración Bruta Entrada", record.FieldGrossPayIn},
	{"Remuneración Líquida Entrada", record.FieldNetPayIn},
	{"Tipo Contrato Entrada", record.FieldContractType},
	{"Nombre Base Datos", record.FieldSourceName},
	{"RUT", record.FieldNationalID},
	{"Nombre", record.FieldName},
	{"Calificación Entrada", record.FieldQualification},
	{"Clase de Edad", record.FieldAgeBracket},
	{"Sexo", record.FieldSex},
	{"Fecha Ingreso", record.FieldStartDate},
	{"Código Org Padre", record.FieldParentOrgCode},
	{"Organismo Padre", record.FieldParentOrg},
	{"Es Municipal", record.FieldIsMunicipal},
	{"Año Salida", record.FieldExitYear},
	{"Mes Salida", record.FieldExitMonth},
	{"Remuneración Bruta Salida", record.FieldGrossPay},
	{"Remuneración Líquida Salida", record.FieldNetPay},
	{"Tipo Contrato Salida", record.FieldExitContractType},
	{"Calificación Salida", record.FieldExitQualification},
	{"Fecha Salida", record.FieldExitDate},
	{"Número de Pagos", record.FieldPayments},
	{"Cargo Entrada", record.FieldRoleIn},
	{"Cargo Salida", record.FieldRoleOut},
}

// Header returns the column headers in export order
func Header() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Header
	}
	return out
}

// Write streams rows into a single-sheet workbook: the header row, then
// one row per record. Numbers are written as numeric cells and absent
// values as empty cells.
func Write(w io.Writer, rows []*record.Row, opts Options) error {
	if len(rows) == 0 {
		return ErrNothingToExport
	}
	if opts.Sheet == "" {
		opts.Sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), opts.Sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(opts.Sheet)
	if err != nil {
		return fmt.Errorf("create stream writer: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c.Header
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	cells := make([]interface{}, len(Columns))
	for i, row := range rows {
		for j, c := range Columns {
			cells[j] = cellValue(row.Get(c.Field))
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(axis, cells); err != nil {
			return fmt.Errorf("write row %d: %w", row.Index, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteFile writes the workbook to path, or to opts.FileName when path is
// empty
func WriteFile(path string, rows []*record.Row, opts Options) (string, error) {
	if len(rows) == 0 {
		return "", ErrNothingToExport
	}
	if path == "" {
		path = opts.FileName
	}
	if path == "" {
		path = DefaultFileName
	}
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := Write(out, rows, opts); err != nil {
		out.Close()
		os.Remove(path)
		return "", err
	}
	return path, out.Close()
}

func cellValue(v record.Value) interface{} {
	switch v.Kind() {
	case record.KindNumber:
		f, _ := v.Float()
		return f
	case record.KindString:
		return v.Text()
	}
	return nil
}
