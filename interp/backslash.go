package interp

import (
	"strconv"
	"strings"
)

// resolveBackslashAt resolves the backslash escape beginning at s[0] (which
// must be '\\') and returns the replacement rune plus how many source bytes
// it consumed, per spec §4.2's parse-time backslash table: \n \t \xHH \uHHHH
// \UHHHHHHHH, octal, and literal-character forms. Backslash-newline is
// handled by the lexer (collapses to a space) and is never seen here.
func resolveBackslashAt(s string) (rune, int) {
	if len(s) < 2 {
		return '\\', 1
	}
	switch s[1] {
	case 'a':
		return '\a', 2
	case 'b':
		return '\b', 2
	case 'f':
		return '\f', 2
	case 'n':
		return '\n', 2
	case 'r':
		return '\r', 2
	case 't':
		return '\t', 2
	case 'v':
		return '\v', 2
	case '\\':
		return '\\', 2
	case 'x':
		return scanHexEscape(s[2:], 2, 255)
	case 'u':
		return scanHexEscape(s[2:], 4, 0xFFFF)
	case 'U':
		return scanHexEscape(s[2:], 8, 0x10FFFF)
	default:
		if s[1] >= '0' && s[1] <= '7' {
			return scanOctalEscape(s[1:])
		}
		r := rune(s[1])
		return r, 2
	}
}

func scanHexEscape(rest string, maxDigits int, maxVal rune) (rune, int) {
	n := 0
	for n < maxDigits && n < len(rest) && isHexDigit(rest[n]) {
		n++
	}
	if n == 0 {
		return 'x', 2 // bare \x with no digits: keep literal 'x' (picol-ish leniency)
	}
	v, _ := strconv.ParseInt(rest[:n], 16, 32)
	if rune(v) > maxVal {
		v = int64(maxVal)
	}
	return rune(v), 2 + n
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func scanOctalEscape(rest string) (rune, int) {
	n := 0
	for n < 3 && n < len(rest) && rest[n] >= '0' && rest[n] <= '7' {
		n++
	}
	v, _ := strconv.ParseInt(rest[:n], 8, 32)
	return rune(v), 1 + n
}

// resolveBackslashNewlinesOnly resolves only the \newline continuation in a
// braced word's text, which must collapse to a single space even inside
// braces (spec §4.1/§4.2), while leaving every other character (including
// other backslash sequences) verbatim (braced words otherwise undergo no
// substitution at all).
func resolveBackslashNewlinesOnly(s string) string {
	if !strings.Contains(s, "\\\n") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == '\n' {
			b.WriteByte(' ')
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
