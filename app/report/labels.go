package report

import (
	"strconv"
	"strings"

	"planillas/app/record"
)

// Fallback labels for missing categorical values
const (
	NoOrganization  = "Sin Nombre"
	NoQualification = "Sin Inf."
	NoContract      = "Otros"
	Unclassified    = "Sin Clasificar"
	NoAge           = "Sin Información"
)

// Age resolves an age bracket label. label is the trimmed bracket, or
// NoAge when the field is missing; ok is false for missing and
// unrecognized labels.
func (t AgeTable) Age(v record.Value) (age float64, label string, ok bool) {
	s, isStr := v.Str()
	s = strings.TrimSpace(s)
	if !isStr || s == "" || strings.EqualFold(s, "nan") {
		return 0, NoAge, false
	}
	age, ok = t[s]
	return age, s, ok
}

// NormalizeSex maps a sex field to "F", "M" or "U"
func NormalizeSex(v record.Value) string {
	s := strings.TrimSpace(v.Lower())
	switch {
	case v.IsFalsy() || s == "":
		return "U"
	case strings.HasPrefix(s, "f") || strings.Contains(s, "muj"):
		return "F"
	case strings.HasPrefix(s, "m") || strings.Contains(s, "hom"):
		return "M"
	}
	return "U"
}

// month returns a 1-12 month number from a numeric or textual field
func month(v record.Value) (int, bool) {
	if f, ok := v.Float(); ok {
		m := int(f)
		return m, m >= 1 && m <= 12
	}
	m, err := strconv.Atoi(strings.TrimSpace(v.Text()))
	return m, err == nil && m >= 1 && m <= 12
}

// contractKind classifies a contract label for display grouping
func contractKind(label string) string {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "contrata"):
		return "contrata"
	case strings.Contains(l, "honorarios"):
		return "honorarios"
	case strings.Contains(l, "planta"):
		return "planta"
	case strings.Contains(l, "trabajo"):
		return "codigo_trabajo"
	}
	return ""
}

// qualificationLevel buckets a qualification into professional, technical
// or other
func qualificationLevel(lowerQual string) int {
	switch {
	case strings.Contains(lowerQual, "profesional") || strings.Contains(lowerQual, "universitario"):
		return levelProfessional
	case strings.Contains(lowerQual, "tecnico") || strings.Contains(lowerQual, "técnico"):
		return levelTechnical
	}
	return levelOther
}

const (
	levelProfessional = iota
	levelTechnical
	levelOther
)
