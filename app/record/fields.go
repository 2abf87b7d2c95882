package record

// Positional field layout of a payroll row. The indices must match the
// published dataset exactly.
const (
	FieldOrgCode           = 0
	FieldOrganization      = 1
	FieldYear              = 2
	FieldMonth             = 3
	FieldGrossPayIn        = 4
	FieldNetPayIn          = 5
	FieldContractType      = 6
	FieldSourceName        = 7
	FieldNationalID        = 8
	FieldName              = 9
	FieldQualification     = 10
	FieldAgeBracket        = 11
	FieldSex               = 12
	FieldStartDate         = 13
	FieldParentOrgCode     = 16
	FieldParentOrg         = 17
	FieldIsMunicipal       = 18
	FieldExitYear          = 19
	FieldExitMonth         = 20
	FieldGrossPay          = 21
	FieldNetPay            = 22
	FieldExitContractType  = 23
	FieldExitQualification = 24
	FieldExitDate          = 25
	FieldPayments          = 26
	FieldRoleIn            = 27
	FieldRoleOut           = 28

	// FieldCount is the width of the row layout
	FieldCount = 29
)

// fieldNames maps field indices to the names used in configuration files
// and command flags. Indices 14 and 15 are unused by the dataset.
var fieldNames = map[int]string{
	FieldOrgCode:           "org_code",
	FieldOrganization:      "organization",
	FieldYear:              "year",
	FieldMonth:             "month",
	FieldGrossPayIn:        "gross_pay_in",
	FieldNetPayIn:          "net_pay_in",
	FieldContractType:      "contract_type",
	FieldSourceName:        "source_name",
	FieldNationalID:        "national_id",
	FieldName:              "name",
	FieldQualification:     "qualification",
	FieldAgeBracket:        "age_bracket",
	FieldSex:               "sex",
	FieldStartDate:         "start_date",
	FieldParentOrgCode:     "parent_org_code",
	FieldParentOrg:         "parent_org",
	FieldIsMunicipal:       "is_municipal",
	FieldExitYear:          "exit_year",
	FieldExitMonth:         "exit_month",
	FieldGrossPay:          "gross_pay",
	FieldNetPay:            "net_pay",
	FieldExitContractType:  "exit_contract_type",
	FieldExitQualification: "exit_qualification",
	FieldExitDate:          "exit_date",
	FieldPayments:          "payments",
	FieldRoleIn:            "role_in",
	FieldRoleOut:           "role_out",
}

var fieldByName = func() map[string]int {
	m := make(map[string]int, len(fieldNames))
	for idx, name := range fieldNames {
		m[name] = idx
	}
	return m
}()

// FieldKey returns the configuration name of a field index, or "" when the
// index is not part of the layout
func FieldKey(idx int) string {
	return fieldNames[idx]
}

// FieldByName resolves a configuration name to its index
func FieldByName(name string) (int, bool) {
	idx, ok := fieldByName[name]
	return idx, ok
}

// ValidField reports whether idx addresses a named field of the layout
func ValidField(idx int) bool {
	_, ok := fieldNames[idx]
	return ok
}
