// Package numeral converts strings of Roman numeral letters to integers.
//
// Conversion is deliberately lenient: numerals are assembled by concatenating
// letters mapped from independent unit words, so the input is often not a
// well-formed Roman numeral. Convert applies the subtractive pairs locally,
// left to right, and never rejects input. IsCanonical reports whether a string
// is a standard numeral, for logging only.
package numeral
