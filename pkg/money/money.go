// Package money formats integer COP amounts for display.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-CO"))

// FormatCOP renders an integer peso amount the way the storefront shows
// prices: grouped thousands, no decimals, leading currency sign.
func FormatCOP(amount int64) string {
	return printer.Sprintf("$%v", number.Decimal(amount, number.MaxFractionDigits(0)))
}
