package markup

import "strings"

var superDigits = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
}

// unit prefixes that take a superscript exponent in the content,
// e.g. "cm2" becomes "cm²".
var superUnits = []string{"cm", "m", "km", "dm", "mm"}

// NormalizeUnits rewrites unit exponents to Unicode superscripts.
// Only a single trailing digit after a known unit is rewritten, and
// only when followed by a word boundary.
func NormalizeUnits(s string) string {
	rs := []rune(s)
	var b strings.Builder
	for i := 0; i < len(rs); i++ {
		matched := false
		for _, unit := range superUnits {
			u := []rune(unit)
			if i+len(u) >= len(rs) {
				continue
			}
			if string(rs[i:i+len(u)]) != unit {
				continue
			}
			d := rs[i+len(u)]
			sup, isDigit := superDigits[d]
			if !isDigit || d == '0' || d == '1' {
				continue
			}
			// unit must start and end at word boundaries
			if i > 0 && isWordRune(rs[i-1]) {
				continue
			}
			if i+len(u)+1 < len(rs) && isWordRune(rs[i+len(u)+1]) {
				continue
			}
			b.WriteString(unit)
			b.WriteRune(sup)
			i += len(u)
			matched = true
			break
		}
		if !matched {
			b.WriteRune(rs[i])
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || ('0' <= r && r <= '9') ||
		('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
