package grammar

// Kind identifies which sentence form a line matched.
type Kind int

const (
	Unrecognized Kind = iota
	UnitMapping
	CreditSample
	UnitValueQuestion
	TotalCreditsQuestion
)

// String returns the snake_case name used in logs and transcripts.
func (k Kind) String() string {
	switch k {
	case UnitMapping:
		return "unit_mapping"
	case CreditSample:
		return "credit_sample"
	case UnitValueQuestion:
		return "unit_value_question"
	case TotalCreditsQuestion:
		return "total_credits_question"
	default:
		return "unrecognized"
	}
}

// Sentence is a classified line. Only the fields relevant to Kind are set.
type Sentence struct {
	Kind Kind
	Line string // trimmed input

	// UnitMapping
	Unit   string
	Letter string

	// CreditSample and both questions
	Units []string

	// CreditSample and TotalCreditsQuestion
	Good string

	// CreditSample only; digits as written
	Credits string
}
