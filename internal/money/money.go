package money

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const DefaultCurrency = "USD"

// Amount is a monetary value in the currency's minor units. Cents holds
// whole yen for JPY and fils for KWD.
type Amount struct {
	Cents    int64
	Currency string
}

func New(cents int64, code string) Amount {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}
	return Amount{Cents: cents, Currency: code}
}

var printer = message.NewPrinter(language.AmericanEnglish)

// String formats the amount with its currency symbol, e.g. "$ 1,012.50" or
// "¥ 1,200". Unknown codes fall back to two decimals after the code.
func (a Amount) String() string {
	unit, err := currency.ParseISO(a.code())
	if err != nil {
		return a.code() + " " + a.decimal(2, plainDigits)
	}
	return printer.Sprint(currency.Symbol(unit)) + " " + a.decimal(Scale(unit), groupedDigits)
}

// Scale is the number of minor-unit digits of unit.
func Scale(unit currency.Unit) int {
	scale, _ := currency.Standard.Rounding(unit)
	return scale
}

func (a Amount) code() string {
	if a.Currency == "" {
		return DefaultCurrency
	}
	return a.Currency
}

func plainDigits(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func groupedDigits(v uint64) string {
	return printer.Sprint(number.Decimal(v))
}

// decimal renders the amount with integer arithmetic only; major formats
// the whole units.
func (a Amount) decimal(scale int, major func(uint64) string) string {
	sign := ""
	minor := uint64(a.Cents)
	if a.Cents < 0 {
		sign = "-"
		minor = -minor
	}

	div := uint64(1)
	for range scale {
		div *= 10
	}

	whole := major(minor / div)
	if scale == 0 {
		return sign + whole
	}
	return fmt.Sprintf("%s%s.%0*d", sign, whole, scale, minor%div)
}
