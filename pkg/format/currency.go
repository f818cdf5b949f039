// Package format exposes locale-aware formatting boundaries. It holds no
// state and caches nothing; everything delegates to golang.org/x/text.
package format

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Options tunes the numeric part of a formatted amount. Nil fields fall back
// to the currency's own conventions.
type Options struct {
	// MinFractionDigits is the minimum number of digits after the decimal
	// separator.
	MinFractionDigits *int
	// MaxFractionDigits caps the digits after the decimal separator.
	MaxFractionDigits *int
}

// MinDigits is a convenience constructor for the common single-option case.
func MinDigits(n int) Options {
	return Options{MinFractionDigits: &n}
}

// Currency formats amount as a currency string for the given BCP 47 locale
// and ISO 4217 currency code. Formatting is delegated entirely to the
// x/text locale machinery; unknown locales or codes yield its errors,
// wrapped.
func Currency(amount float64, locale, code string, opts Options) (string, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("parse locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("parse currency code %q: %w", code, err)
	}

	p := message.NewPrinter(tag)

	var numOpts []number.Option
	if opts.MinFractionDigits == nil && opts.MaxFractionDigits == nil {
		// Without overrides the fraction digits follow the currency's own
		// standard rounding scale.
		scale, _ := currency.Standard.Rounding(unit)
		numOpts = append(numOpts, number.Scale(scale))
	} else {
		if opts.MinFractionDigits != nil {
			numOpts = append(numOpts, number.MinFractionDigits(*opts.MinFractionDigits))
		}
		if opts.MaxFractionDigits != nil {
			numOpts = append(numOpts, number.MaxFractionDigits(*opts.MaxFractionDigits))
		}
	}
	// The number is rendered separately on all paths and the symbol
	// prepended without a separator; symbol placement follows the common
	// prefix convention rather than full locale rules.
	return p.Sprintf("%v%v", currency.Symbol(unit), number.Decimal(amount, numOpts...)), nil
}
