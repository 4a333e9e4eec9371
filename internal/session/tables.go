package session

import (
	"fmt"
	"strings"
)

// UnitTable maps merchant unit words to Roman letters.
type UnitTable struct {
	letters map[string]string
}

// NewUnitTable creates an empty unit table.
func NewUnitTable() *UnitTable {
	return &UnitTable{letters: make(map[string]string)}
}

// Set maps word to letter, replacing any earlier mapping.
func (t *UnitTable) Set(word, letter string) {
	t.letters[word] = letter
}

// Letter returns the letter mapped to word.
func (t *UnitTable) Letter(word string) (string, bool) {
	l, ok := t.letters[word]
	return l, ok
}

// Len returns the number of mapped words.
func (t *UnitTable) Len() int {
	return len(t.letters)
}

// Numeral concatenates the letters for words, in order.
func (t *UnitTable) Numeral(words []string) (string, error) {
	var sb strings.Builder
	for _, w := range words {
		l, ok := t.letters[w]
		if !ok {
			return "", fmt.Errorf("%w %q", ErrUndefinedUnit, w)
		}
		sb.WriteString(l)
	}
	return sb.String(), nil
}

// CostModel maps goods to their price in credits per unit.
type CostModel struct {
	perUnit map[string]float64
}

// NewCostModel creates an empty cost model.
func NewCostModel() *CostModel {
	return &CostModel{perUnit: make(map[string]float64)}
}

// Set records the per-unit cost of good, replacing any earlier sample.
func (m *CostModel) Set(good string, perUnit float64) {
	m.perUnit[good] = perUnit
}

// PerUnit returns the per-unit cost of good.
func (m *CostModel) PerUnit(good string) (float64, bool) {
	c, ok := m.perUnit[good]
	return c, ok
}

// Len returns the number of priced goods.
func (m *CostModel) Len() int {
	return len(m.perUnit)
}
