package format

import "planillas/app/record"

// DetailField is one labelled value of the record detail view
type DetailField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DetailPair compares a field at entry and at exit
type DetailPair struct {
	Label string `json:"label"`
	Entry string `json:"entry"`
	Exit  string `json:"exit"`
}

// RecordDetail is the full view of one record
type RecordDetail struct {
	Index  int           `json:"index"`
	Fields []DetailField `json:"fields"`
	Pairs  []DetailPair  `json:"pairs"`
}

var singleFields = []struct {
	field int
	label string
}{
	{record.FieldParentOrgCode, "Código Organismo Padre"},
	{record.FieldParentOrg, "Organismo Padre"},
	{record.FieldOrgCode, "Código Organismo"},
	{record.FieldOrganization, "Organismo"},
	{record.FieldNationalID, "RUT"},
	{record.FieldName, "Nombre"},
	{record.FieldSourceName, "Nombre Base Datos"},
	{record.FieldPayments, "Número de Pagos"},
	{record.FieldAgeBracket, "Clase de Edad"},
	{record.FieldSex, "Sexo"},
	{record.FieldIsMunicipal, "Es Municipal"},
}

var pairedFields = []struct {
	label     string
	in, out   int
	formatter func(record.Value) string
}{
	{"Año", record.FieldYear, record.FieldExitYear, plain},
	{"Mes", record.FieldMonth, record.FieldExitMonth, plain},
	{"Fecha", record.FieldStartDate, record.FieldExitDate, Date},
	{"Tipo Contrato", record.FieldContractType, record.FieldExitContractType, plain},
	{"Calificación", record.FieldQualification, record.FieldExitQualification, detailQualification},
	{"Cargo", record.FieldRoleIn, record.FieldRoleOut, plain},
	{"Remuneración Bruta", record.FieldGrossPayIn, record.FieldGrossPay, detailMoney},
	{"Remuneración Líquida", record.FieldNetPayIn, record.FieldNetPay, detailMoney},
}

// Detail renders every field of a row for the detail view. Single fields
// beyond the row's length are omitted.
func Detail(row *record.Row) RecordDetail {
	d := RecordDetail{Index: row.Index}
	for _, f := range singleFields {
		if f.field >= len(row.Values) {
			continue
		}
		d.Fields = append(d.Fields, DetailField{Label: f.label, Value: plain(row.Get(f.field))})
	}
	for _, p := range pairedFields {
		d.Pairs = append(d.Pairs, DetailPair{
			Label: p.label,
			Entry: p.formatter(row.Get(p.in)),
			Exit:  p.formatter(row.Get(p.out)),
		})
	}
	return d
}

func plain(v record.Value) string {
	if v.IsBlank() {
		return Missing
	}
	return v.Text()
}

func detailMoney(v record.Value) string {
	if v.IsBlank() {
		return Missing
	}
	return MoneyValue(v)
}

func detailQualification(v record.Value) string {
	if v.Text() == "0" {
		return Unclassified
	}
	return plain(v)
}
