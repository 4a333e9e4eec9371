package numeral

import "regexp"

// values maps each Roman letter to its magnitude.
var values = map[byte]int{
	'I': 1,
	'V': 5,
	'X': 10,
	'L': 50,
	'C': 100,
	'D': 500,
	'M': 1000,
}

// subtractive lists the pairs whose value is the second letter minus the first.
var subtractive = map[[2]byte]bool{
	{'I', 'V'}: true,
	{'I', 'X'}: true,
	{'X', 'L'}: true,
	{'X', 'C'}: true,
	{'C', 'D'}: true,
	{'C', 'M'}: true,
}

var canonicalPattern = regexp.MustCompile(`^M{0,3}(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)

// Value returns the magnitude of a single Roman letter.
func Value(letter byte) (int, bool) {
	v, ok := values[letter]
	return v, ok
}

// IsLetter reports whether s is exactly one of I, V, X, L, C, D, M.
func IsLetter(s string) bool {
	if len(s) != 1 {
		return false
	}
	_, ok := values[s[0]]
	return ok
}

// Convert returns the integer value of a sequence of Roman letters.
//
// At each position the pair (s[i], s[i+1]) is checked against the six
// subtractive pairs; a match contributes the difference and consumes both
// letters. The last letter is always added as is. Letters outside the
// table contribute nothing.
func Convert(s string) int {
	total := 0
	for i := 0; i < len(s); i++ {
		if i < len(s)-1 && subtractive[[2]byte{s[i], s[i+1]}] {
			total += values[s[i+1]] - values[s[i]]
			i++
			continue
		}
		total += values[s[i]]
	}
	return total
}

// IsCanonical reports whether s is a standard Roman numeral between 1 and 3999.
func IsCanonical(s string) bool {
	return s != "" && canonicalPattern.MatchString(s)
}
