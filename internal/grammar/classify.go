package grammar

import (
	"strings"

	"github.com/rickgao/merchant-guide/internal/numeral"
)

const (
	keywordIs      = "is"
	keywordCredits = "Credits"
	questionMark   = "?"
)

// rule tries to match tokens and fills s on success.
type rule func(tokens []string, s *Sentence) bool

// rules are tried in priority order; the first match wins.
var rules = []struct {
	kind  Kind
	match rule
}{
	{UnitMapping, matchUnitMapping},
	{CreditSample, matchCreditSample},
	{UnitValueQuestion, matchUnitValueQuestion},
	{TotalCreditsQuestion, matchTotalCreditsQuestion},
}

// Classify trims line and matches it against the sentence forms.
func Classify(line string) Sentence {
	line = strings.TrimSpace(line)
	tokens := tokenize(line)

	for _, r := range rules {
		s := Sentence{Kind: r.kind, Line: line}
		if r.match(tokens, &s) {
			return s
		}
	}
	return Sentence{Kind: Unrecognized, Line: line}
}

// tokenize splits on whitespace and detaches a "?" glued to the last word.
func tokenize(line string) []string {
	tokens := strings.Fields(line)
	if n := len(tokens); n > 0 {
		last := tokens[n-1]
		if last != questionMark && strings.HasSuffix(last, questionMark) {
			tokens[n-1] = strings.TrimSuffix(last, questionMark)
			tokens = append(tokens, questionMark)
		}
	}
	return tokens
}

// <word> is <letter>
func matchUnitMapping(tokens []string, s *Sentence) bool {
	if len(tokens) != 3 || tokens[1] != keywordIs || !numeral.IsLetter(tokens[2]) {
		return false
	}
	s.Unit = tokens[0]
	s.Letter = tokens[2]
	return true
}

// <unit>+ <good> is <digits> Credits
func matchCreditSample(tokens []string, s *Sentence) bool {
	n := len(tokens)
	if n < 5 || tokens[n-1] != keywordCredits || tokens[n-3] != keywordIs || !isDigits(tokens[n-2]) {
		return false
	}
	units := tokens[:n-4]
	good := tokens[n-4]
	if !allWords(units) || !isWord(good) {
		return false
	}
	s.Units = clone(units)
	s.Good = good
	s.Credits = tokens[n-2]
	return true
}

// how much is <unit>+ ?
func matchUnitValueQuestion(tokens []string, s *Sentence) bool {
	if !hasPrefix(tokens, "how", "much", keywordIs) {
		return false
	}
	n := len(tokens)
	if n < 5 || tokens[n-1] != questionMark {
		return false
	}
	units := tokens[3 : n-1]
	if !allWords(units) {
		return false
	}
	s.Units = clone(units)
	return true
}

// how many Credits is <unit>+ <good> ?
func matchTotalCreditsQuestion(tokens []string, s *Sentence) bool {
	if !hasPrefix(tokens, "how", "many", keywordCredits, keywordIs) {
		return false
	}
	n := len(tokens)
	if n < 7 || tokens[n-1] != questionMark {
		return false
	}
	units := tokens[4 : n-2]
	good := tokens[n-2]
	if !allWords(units) || !isWord(good) {
		return false
	}
	s.Units = clone(units)
	s.Good = good
	return true
}

func hasPrefix(tokens []string, prefix ...string) bool {
	if len(tokens) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if tokens[i] != p {
			return false
		}
	}
	return true
}

// isWord rejects the structural tokens so they cannot be read as unit words.
func isWord(tok string) bool {
	return tok != "" && tok != questionMark && tok != keywordIs
}

func allWords(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if !isWord(tok) {
			return false
		}
	}
	return true
}

func isDigits(tok string) bool {
	if tok == "" {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}

func clone(tokens []string) []string {
	out := make([]string, len(tokens))
	copy(out, tokens)
	return out
}
