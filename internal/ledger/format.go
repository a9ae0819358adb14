package ledger

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders normalized numeric amounts as currency display strings
// ("₱50,000"). It is the single place money is formatted for output; nothing
// downstream of it should ever parse the result back — derivation logic works
// on the numeric value only.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter returns a Formatter prefixing amounts with the given currency
// symbol. Grouping follows English locale conventions (comma thousands
// separators), which is what the stored legacy strings use.
func NewFormatter(symbol string) Formatter {
	return Formatter{
		symbol:  symbol,
		printer: message.NewPrinter(language.English),
	}
}

// Format renders an amount with thousands separators and at most two
// fraction digits. Whole amounts print without a decimal part.
func (f Formatter) Format(v float64) string {
	return f.printer.Sprintf("%s%v", f.symbol, number.Decimal(v, number.MaxFractionDigits(2)))
}
