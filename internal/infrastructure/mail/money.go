package mail

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MoneyFormatter renders amounts with two decimals in a locale's conventions
type MoneyFormatter struct {
	printer      *message.Printer
	symbol       string
	symbolSuffix bool
}

// NewMoneyFormatter creates a formatter for a BCP 47 locale and an ISO 4217 currency
func NewMoneyFormatter(locale, currencyCode string) (*MoneyFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid mail locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("invalid mail currency %q: %w", currencyCode, err)
	}

	printer := message.NewPrinter(tag)
	base, _ := tag.Base()
	return &MoneyFormatter{
		printer:      printer,
		symbol:       printer.Sprint(currency.NarrowSymbol(unit)),
		symbolSuffix: base.String() == "fr",
	}, nil
}

// Format renders amount, e.g. "64,50 $" in fr-CA and "$64.50" in en-CA
func (f *MoneyFormatter) Format(amount decimal.Decimal) string {
	value := f.printer.Sprint(number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)))
	if f.symbolSuffix {
		return value + " " + f.symbol
	}
	return f.symbol + value
}
