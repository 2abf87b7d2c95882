package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"planillas/app/record"
)

// Locale is the number formatting locale of every rendered amount
var Locale = language.MustParse("es-CL")

var printer = message.NewPrinter(Locale)

// Number renders v with es-CL grouping and up to three decimals
func Number(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// Money renders an amount as "$ 1.234.567"
func Money(v float64) string {
	return "$ " + Number(v)
}

// MoneyValue renders numeric cells as Money and any other value as text
func MoneyValue(v record.Value) string {
	if f, ok := v.Float(); ok {
		return Money(f)
	}
	return v.Text()
}

// Compact abbreviates large amounts: "$1.2 MM" for thousands of millions,
// "$3.4 M" for millions, otherwise whole pesos
func Compact(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("$%.1f MM", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.1f M", v/1e6)
	}
	return "$" + printer.Sprint(number.Decimal(math.Round(v), number.MaxFractionDigits(0)))
}

// Percent renders a percentage with one decimal
func Percent(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(1), number.MinFractionDigits(1))) + "%"
}
