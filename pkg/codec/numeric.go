package codec

import (
	"math/big"
	"strings"
)

// DecimalValue is a fixed-point quantity split into an unsigned integer part
// and exactly `decimals` fractional digits. The sign lives only in Negative.
type DecimalValue struct {
	Negative         bool
	IntegerPart      *big.Int
	FractionalDigits string
}

// NewDecimalValue splits a raw on-chain integer using exact integer arithmetic.
func NewDecimalValue(raw *big.Int, decimals int) DecimalValue {
	if raw == nil {
		raw = new(big.Int)
	}
	if decimals < 0 {
		decimals = 0
	}

	abs := new(big.Int).Abs(raw)
	intPart, fracPart := new(big.Int).QuoRem(abs, pow10(decimals), new(big.Int))

	frac := ""
	if decimals > 0 {
		frac = fracPart.String()
		frac = strings.Repeat("0", decimals-len(frac)) + frac
	}

	return DecimalValue{
		Negative:         raw.Sign() < 0,
		IntegerPart:      intPart,
		FractionalDigits: frac,
	}
}

// Decimals is the number of fractional digits carried by v.
func (v DecimalValue) Decimals() int {
	return len(v.FractionalDigits)
}

// String formats v with trailing fractional zeros trimmed. Whole values are
// rendered without a decimal point.
func (v DecimalValue) String() string {
	return v.format(strings.TrimRight(v.FractionalDigits, "0"))
}

// Padded formats v keeping every fractional digit.
func (v DecimalValue) Padded() string {
	return v.format(v.FractionalDigits)
}

func (v DecimalValue) format(frac string) string {
	intPart := v.IntegerPart
	if intPart == nil {
		intPart = new(big.Int)
	}
	var sb strings.Builder
	if v.Negative {
		sb.WriteByte('-')
	}
	sb.WriteString(intPart.String())
	if frac != "" {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}
	return sb.String()
}

// Raw recombines v into the on-chain integer representation.
func (v DecimalValue) Raw() *big.Int {
	raw := new(big.Int)
	if v.IntegerPart != nil {
		raw.Set(v.IntegerPart)
	}
	raw.Mul(raw, pow10(len(v.FractionalDigits)))
	if v.FractionalDigits != "" {
		frac, _ := new(big.Int).SetString(v.FractionalDigits, 10)
		raw.Add(raw, frac)
	}
	if v.Negative {
		raw.Neg(raw)
	}
	return raw
}

// ToDecimalString formats raw as a human readable decimal, e.g.
// 1500000000000000000 with 18 decimals -> "1.5".
func ToDecimalString(raw *big.Int, decimals int) string {
	return NewDecimalValue(raw, decimals).String()
}

// ToPaddedDecimalString is ToDecimalString without trimming, e.g.
// 1500000000000000000 with 18 decimals -> "1.500000000000000000".
func ToPaddedDecimalString(raw *big.Int, decimals int) string {
	return NewDecimalValue(raw, decimals).Padded()
}

// ParseDecimal parses a decimal string such as "1.5" or "-0.25" into a
// DecimalValue with exactly `decimals` fractional digits. Extra fractional
// digits are truncated, not rounded.
func ParseDecimal(s string, decimals int) (DecimalValue, error) {
	if decimals < 0 {
		decimals = 0
	}
	input := s
	s = strings.TrimSpace(s)

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return DecimalValue{}, &FormatError{Kind: "decimal", Input: input, Reason: "multiple decimal points"}
	}

	integerPart := parts[0]
	fractionalPart := ""
	if len(parts) == 2 {
		fractionalPart = parts[1]
	}
	if integerPart == "" && fractionalPart == "" {
		return DecimalValue{}, &FormatError{Kind: "decimal", Input: input, Reason: "no digits"}
	}
	if !isDigits(integerPart) || !isDigits(fractionalPart) {
		return DecimalValue{}, &FormatError{Kind: "decimal", Input: input, Reason: "non-numeric characters"}
	}
	if integerPart == "" {
		integerPart = "0"
	}

	if len(fractionalPart) > decimals {
		fractionalPart = fractionalPart[:decimals]
	}
	fractionalPart += strings.Repeat("0", decimals-len(fractionalPart))

	intValue, ok := new(big.Int).SetString(integerPart, 10)
	if !ok {
		return DecimalValue{}, &FormatError{Kind: "decimal", Input: input, Reason: "unparseable integer part"}
	}

	return DecimalValue{
		Negative:         negative && (intValue.Sign() != 0 || strings.Trim(fractionalPart, "0") != ""),
		IntegerPart:      intValue,
		FractionalDigits: fractionalPart,
	}, nil
}

// ToRawInteger parses a decimal string into base units, e.g. "1.5" with
// 18 decimals -> 1500000000000000000.
func ToRawInteger(s string, decimals int) (*big.Int, error) {
	v, err := ParseDecimal(s, decimals)
	if err != nil {
		return nil, err
	}
	return v.Raw(), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
