package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders amount with the currency's separators and symbol placement.
// Rounding is half away from zero. Negative amounts carry a leading minus
// sign ahead of both symbol and numeral: "-$1,234.50", "-1.234,50€".
func Format(amount decimal.Decimal, c Currency) string {
	return FormatWith(amount, c, FormatOptions{})
}

func FormatFloat(amount float64, c Currency) string {
	return Format(decimal.NewFromFloat(amount), c)
}

type FormatOptions struct {
	HideSymbol bool
	ShowCode   bool
}

func FormatWith(amount decimal.Decimal, c Currency, opts FormatOptions) string {
	rounded := amount.Round(c.DecimalPlaces)
	numeral := groupNumeral(rounded.Abs().StringFixed(c.DecimalPlaces), c)
	return decorate(numeral, rounded.IsNegative(), c, opts)
}

func groupNumeral(fixed string, c Currency) string {
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(c.ThousandSeparator)
		b.WriteString(intPart[i : i+3])
	}
	if fracPart != "" {
		b.WriteString(c.DecimalSeparator)
		b.WriteString(fracPart)
	}
	return b.String()
}

func decorate(numeral string, negative bool, c Currency, opts FormatOptions) string {
	out := numeral
	if !opts.HideSymbol {
		if c.SymbolPosition == SymbolAfter {
			out = out + c.Symbol
		} else {
			out = c.Symbol + out
		}
	}
	if negative {
		out = "-" + out
	}
	if opts.ShowCode {
		out = out + " " + c.Code
	}
	return out
}

var (
	thousand = decimal.NewFromInt(1_000)
	lakh     = decimal.NewFromInt(100_000)
	million  = decimal.NewFromInt(1_000_000)
	crore    = decimal.NewFromInt(10_000_000)
)

// FormatCompact abbreviates large amounts: K and M in general, K, L (lakh)
// and Cr (crore) for INR. Amounts below a thousand fall back to Format.
func FormatCompact(amount decimal.Decimal, c Currency) string {
	abs := amount.Abs()
	divisor, suffix := compactUnit(abs, c.Code)
	if suffix == "" {
		return Format(amount, c)
	}
	scaled := abs.Div(divisor).Round(1)
	numeral := strings.TrimSuffix(scaled.StringFixed(1), ".0")
	numeral = strings.Replace(numeral, ".", c.DecimalSeparator, 1) + suffix
	return decorate(numeral, amount.IsNegative(), c, FormatOptions{})
}

// CompactSuffix reports the suffix FormatCompact would use for amount.
func CompactSuffix(amount decimal.Decimal, code string) string {
	_, suffix := compactUnit(amount.Abs(), code)
	return suffix
}

func compactUnit(abs decimal.Decimal, code string) (decimal.Decimal, string) {
	if code == CodeINR {
		switch {
		case abs.GreaterThanOrEqual(crore):
			return crore, "Cr"
		case abs.GreaterThanOrEqual(lakh):
			return lakh, "L"
		case abs.GreaterThanOrEqual(thousand):
			return thousand, "K"
		}
		return decimal.Zero, ""
	}
	switch {
	case abs.GreaterThanOrEqual(million):
		return million, "M"
	case abs.GreaterThanOrEqual(thousand):
		return thousand, "K"
	}
	return decimal.Zero, ""
}

// Parse reads a formatted amount back into a decimal. Anything that cannot
// be parsed yields zero.
func Parse(value string, c Currency) decimal.Decimal {
	cleaned := strings.ReplaceAll(value, c.Symbol, "")
	cleaned = strings.ReplaceAll(cleaned, c.ThousandSeparator, "")
	if c.DecimalSeparator != "." {
		cleaned = strings.ReplaceAll(cleaned, c.DecimalSeparator, ".")
	}
	var b strings.Builder
	for _, r := range cleaned {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	parsed, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return parsed
}
