package format

import (
	"planillas/app/record"
)

// GridHeader names the cells of GridRow
var GridHeader = []string{
	"RUT", "Nombre", "Organismo Padre", "Organismo", "Calificación", "Clase de Edad",
	"Año", "Mes", "Tipo Contrato Entrada", "Salida", "Pagos", "Tipo Contrato Salida", "Remuneración Bruta",
}

// Unclassified replaces a zero qualification
const Unclassified = "Sin Clasificar"

// GridRow renders the thirteen grid cells of a row
func GridRow(row *record.Row) []string {
	return []string{
		row.Get(record.FieldNationalID).Text(),
		row.Get(record.FieldName).Text(),
		row.Get(record.FieldParentOrg).Text(),
		row.Get(record.FieldOrganization).Text(),
		qualification(row.Get(record.FieldQualification)),
		row.Get(record.FieldAgeBracket).Text(),
		row.Get(record.FieldYear).Text(),
		row.Get(record.FieldMonth).Text(),
		row.Get(record.FieldContractType).Text(),
		ExitPeriod(row),
		row.Get(record.FieldPayments).TextOr("0"),
		row.Get(record.FieldExitContractType).Text(),
		MoneyValue(row.Get(record.FieldGrossPay)),
	}
}

// ExitPeriod renders the exit month and year as "Mar-2021", or Missing
// when either is empty
func ExitPeriod(row *record.Row) string {
	m, y := row.Get(record.FieldExitMonth), row.Get(record.FieldExitYear)
	if m.IsFalsy() || y.IsFalsy() {
		return Missing
	}
	month := []rune(m.Text())
	if len(month) > 3 {
		month = month[:3]
	}
	return string(month) + "-" + y.Text()
}

func qualification(v record.Value) string {
	if v.Text() == "0" {
		return Unclassified
	}
	return v.Text()
}
