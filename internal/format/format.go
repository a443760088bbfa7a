// Package format renders amounts and counts for display in a configured locale.
package format

import (
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used when no locale is configured or it cannot be parsed.
const DefaultLocale = "nl"

// DefaultCurrencySymbol is prefixed to formatted amounts.
const DefaultCurrencySymbol = "€"

// Formatter formats numbers for one locale.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// New creates a formatter for locale (a BCP 47 tag such as "nl" or "en-US").
func New(locale, symbol string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.Dutch
	}
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return Formatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}
}

// Default is the Dutch euro formatter.
var Default = New(DefaultLocale, DefaultCurrencySymbol)

// Amount formats a signed monetary amount with two decimals, e.g. -€1.234,50.
func (f Formatter) Amount(amount float64) string {
	if amount == 0 {
		return f.symbol + f.printer.Sprintf("%.2f", 0.0)
	}

	abs := amount
	if abs < 0 {
		abs = -abs
	}
	formatted := f.symbol + f.printer.Sprintf("%.2f", abs)
	if amount < 0 {
		return "-" + formatted
	}
	return formatted
}

// Count formats an integer with locale grouping, e.g. 1.234.
func (f Formatter) Count(n int) string {
	return f.printer.Sprintf("%d", n)
}

// Amount formats with the default formatter.
func Amount(amount float64) string {
	return Default.Amount(amount)
}

// Count formats with the default formatter.
func Count(n int) string {
	return Default.Count(n)
}

// Truncate shortens s to maxLen runes, ending in "..." when cut.
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
