// Package temperature converts between the on-disk decimal form of a reading,
// like "-12.3", and a fixed-point integer in thousandths of a degree.
package temperature

import "strconv"

// Scale is the number of internal units per degree.
const Scale = 1000

// Parse reads a decimal with exactly one fractional digit and returns it
// scaled by Scale. Every '-' flips the sign, wherever it appears. Anything
// that is not a digit or a minus sign is skipped, including the decimal point
// and a trailing newline. Input without digits yields zero.
func Parse(b []byte) int64 {
	var (
		v   int64
		neg bool
	)
	for _, c := range b {
		switch {
		case c >= '0' && c <= '9':
			v = v*10 + int64(c-'0')
		case c == '-':
			neg = !neg
		}
	}
	if neg {
		v = -v
	}
	// v is in tenths here.
	return v * (Scale / 10)
}

// AppendFormat appends the one-fractional-digit form of v to dst. Digits
// below a tenth are truncated toward zero; a value that truncates to zero is
// written without a sign.
func AppendFormat(dst []byte, v int64) []byte {
	tenths := v / (Scale / 10)
	if tenths < 0 {
		dst = append(dst, '-')
		tenths = -tenths
	}
	dst = strconv.AppendInt(dst, tenths/10, 10)
	dst = append(dst, '.')
	return append(dst, byte('0'+tenths%10))
}

// Format returns the one-fractional-digit form of v, e.g. "-0.5" for -500.
func Format(v int64) string {
	var buf [24]byte
	return string(AppendFormat(buf[:0], v))
}
