package printer

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/common"

	"github.com/storacha/api3ctl/pkg/codec"
)

// FormatAddress truncates an address for display: 0x1234...abcd
func FormatAddress(addr common.Address) string {
	hex := addr.Hex()
	if len(hex) <= 13 {
		return hex
	}
	return hex[:6] + "..." + hex[len(hex)-4:]
}

// FormatBigInt formats a *big.Int with thousand separators
func FormatBigInt(n *big.Int) string {
	if n == nil {
		return "0"
	}
	// BigComma takes the absolute value of its argument in place
	return humanize.BigComma(new(big.Int).Set(n))
}

// FormatTokenAmount formats a base unit amount with thousand separators and
// trailing zeros trimmed, e.g. 12345000000000000000000 -> "12,345 API3".
func FormatTokenAmount(raw *big.Int, decimals int, symbol string) string {
	if raw == nil {
		raw = new(big.Int)
	}
	out := FormatDecimal(codec.ToDecimalString(raw, decimals))
	if symbol != "" {
		out += " " + symbol
	}
	return out
}

// FormatDecimal adds thousand separators to the integer part of a decimal
// string. Strings that are not decimals are returned unchanged.
func FormatDecimal(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return s
	}
	out := humanize.BigComma(n)
	if strings.HasPrefix(intPart, "-") && n.Sign() == 0 {
		out = "-" + out
	}
	if hasFrac {
		out += "." + frac
	}
	return out
}

// FormatAge describes a unix timestamp relative to now, e.g. "2 minutes ago".
func FormatAge(unix uint32, now time.Time) string {
	if unix == 0 {
		return "never"
	}
	return humanize.RelTime(time.Unix(int64(unix), 0), now, "ago", "from now")
}

// Box drawing characters for Unicode tables
const (
	BoxHorizontal       = "─"
	BoxVertical         = "│"
	BoxTopLeft          = "┌"
	BoxTopRight         = "┐"
	BoxBottomLeft       = "└"
	BoxBottomRight      = "┘"
	BoxVerticalRight    = "├"
	BoxVerticalLeft     = "┤"
	BoxHorizontalDown   = "┬"
	BoxHorizontalUp     = "┴"
	BoxCross            = "┼"
	BoxDoubleHorizontal = "═"
)

// RepeatString repeats a string n times
func RepeatString(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}

// PrintSectionHeader prints a section header with double line
func PrintSectionHeader(title string, width int) string {
	return fmt.Sprintf("%s\n%s", title, RepeatString(BoxDoubleHorizontal, width))
}

// Table writes rows under headers in a box drawn table. Short rows are
// padded with empty cells.
func Table(w io.Writer, headers []string, rows [][]string) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], utf8.RuneCountInString(row[i]))
		}
	}

	border := func(left, mid, right string) string {
		parts := make([]string, len(widths))
		for i, width := range widths {
			parts[i] = RepeatString(BoxHorizontal, width+2)
		}
		return left + strings.Join(parts, mid) + right + "\n"
	}
	line := func(cells []string) string {
		var b strings.Builder
		b.WriteString(BoxVertical)
		for i, width := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(" " + cell + RepeatString(" ", width-utf8.RuneCountInString(cell)) + " " + BoxVertical)
		}
		b.WriteString("\n")
		return b.String()
	}

	var b strings.Builder
	b.WriteString(border(BoxTopLeft, BoxHorizontalDown, BoxTopRight))
	b.WriteString(line(headers))
	b.WriteString(border(BoxVerticalRight, BoxCross, BoxVerticalLeft))
	for _, row := range rows {
		b.WriteString(line(row))
	}
	b.WriteString(border(BoxBottomLeft, BoxHorizontalUp, BoxBottomRight))

	_, err := io.WriteString(w, b.String())
	return err
}

// KeyValues writes aligned "key: value" lines.
func KeyValues(w io.Writer, pairs [][2]string) error {
	width := 0
	for _, p := range pairs {
		width = max(width, len(p[0]))
	}
	for _, p := range pairs {
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width+1, p[0]+":", p[1]); err != nil {
			return err
		}
	}
	return nil
}
