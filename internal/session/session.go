package session

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/merchant-guide/internal/grammar"
	"github.com/rickgao/merchant-guide/internal/model"
	"github.com/rickgao/merchant-guide/internal/numeral"
)

// DefaultUnknownMessage is the reply to lines that match no sentence form.
const DefaultUnknownMessage = "I have no idea what you are talking about"

// Config holds session behaviour settings.
type Config struct {
	UnknownMessage   string // Reply for unrecognized lines
	WarnNonCanonical bool   // Log assembled numerals that are not standard Roman numerals
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		UnknownMessage:   DefaultUnknownMessage,
		WarnNonCanonical: true,
	}
}

// Stats contains per-session counters.
type Stats struct {
	Lines        int64
	Declarations int64
	Answers      int64
	Errors       int64
	Unrecognized int64
}

// Session is one run of the engine with its own unit table and cost model.
type Session struct {
	id     uuid.UUID
	cfg    Config
	logger *slog.Logger

	units *UnitTable
	costs *CostModel

	seq   int64
	stats Stats
}

// New creates an empty session.
func New(cfg Config, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.UnknownMessage == "" {
		cfg.UnknownMessage = DefaultUnknownMessage
	}

	id := uuid.New()
	return &Session{
		id:     id,
		cfg:    cfg,
		logger: logger.With("session", id.String()),
		units:  NewUnitTable(),
		costs:  NewCostModel(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Units returns the session's unit table.
func (s *Session) Units() *UnitTable { return s.units }

// Costs returns the session's cost model.
func (s *Session) Costs() *CostModel { return s.costs }

// Stats returns current counters.
func (s *Session) Stats() Stats { return s.stats }

// Evaluate classifies line, applies or answers it, and returns the result.
func (s *Session) Evaluate(line string) model.Answer {
	sentence := grammar.Classify(line)

	s.seq++
	s.stats.Lines++

	answer := model.Answer{
		SessionID:   s.id,
		Seq:         s.seq,
		Line:        sentence.Line,
		Kind:        sentence.Kind.String(),
		ProcessedAt: time.Now().UTC(),
	}

	s.logger.Debug("line classified",
		"seq", s.seq,
		"kind", answer.Kind,
		"line", sentence.Line,
	)

	var err error
	switch sentence.Kind {
	case grammar.UnitMapping:
		err = s.DeclareUnit(sentence.Unit, sentence.Letter)
		if err == nil {
			s.stats.Declarations++
		}

	case grammar.CreditSample:
		err = s.RecordSample(sentence.Units, sentence.Good, sentence.Credits)
		if err == nil {
			s.stats.Declarations++
		}

	case grammar.UnitValueQuestion:
		answer.Text, err = s.UnitValue(sentence.Units)
		if err == nil {
			s.stats.Answers++
		}

	case grammar.TotalCreditsQuestion:
		answer.Text, err = s.TotalCredits(sentence.Units, sentence.Good)
		if err == nil {
			s.stats.Answers++
		}

	default:
		s.stats.Unrecognized++
		answer.Text = s.cfg.UnknownMessage
	}

	if err != nil {
		s.stats.Errors++
		s.logger.Warn("line rejected",
			"seq", s.seq,
			"kind", answer.Kind,
			"error", err,
		)
		answer.Err = err
		answer.Text = "error: " + err.Error()
	}

	return answer
}

// Reject records a line that could not be read in full. It counts as an
// evaluated line that failed, so sequence numbers stay aligned with the input.
func (s *Session) Reject(err error) model.Answer {
	s.seq++
	s.stats.Lines++
	s.stats.Errors++

	s.logger.Warn("line rejected", "seq", s.seq, "error", err)

	return model.Answer{
		SessionID:   s.id,
		Seq:         s.seq,
		Kind:        grammar.Unrecognized.String(),
		Text:        "error: " + err.Error(),
		Err:         err,
		ProcessedAt: time.Now().UTC(),
	}
}

// DeclareUnit maps a unit word to a Roman letter.
func (s *Session) DeclareUnit(word, letter string) error {
	if !numeral.IsLetter(letter) {
		return fmt.Errorf("%w %q for unit %q", ErrInvalidLetter, letter, word)
	}
	if prev, ok := s.units.Letter(word); ok && prev != letter {
		s.logger.Debug("unit remapped", "unit", word, "from", prev, "to", letter)
	}
	s.units.Set(word, letter)
	return nil
}

// RecordSample derives and stores the per-unit cost of good from an observed
// total of credits for the quantity spelled by units.
func (s *Session) RecordSample(units []string, good, credits string) error {
	amount, err := strconv.ParseFloat(credits, 64)
	if err != nil || amount < 0 {
		return fmt.Errorf("%w %q", ErrInvalidCredits, credits)
	}

	numUnits, err := s.convert(units)
	if err != nil {
		return err
	}
	if numUnits == 0 {
		return fmt.Errorf("%w: %s", ErrZeroUnits, strings.Join(units, " "))
	}

	perUnit := amount / float64(numUnits)
	s.costs.Set(good, perUnit)

	s.logger.Debug("cost recorded",
		"good", good,
		"units", numUnits,
		"credits", amount,
		"per_unit", perUnit,
	)
	return nil
}

// UnitValue answers "how much is <units> ?".
func (s *Session) UnitValue(units []string) (string, error) {
	value, err := s.convert(units)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s is %d", strings.Join(units, " "), value), nil
}

// TotalCredits answers "how many Credits is <units> <good> ?".
// The total is rounded to the nearest whole credit.
func (s *Session) TotalCredits(units []string, good string) (string, error) {
	numUnits, err := s.convert(units)
	if err != nil {
		return "", err
	}
	perUnit, ok := s.costs.PerUnit(good)
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUndefinedGood, good)
	}

	total := math.Round(float64(numUnits) * perUnit)
	return fmt.Sprintf("%s %s is %.0f Credits", strings.Join(units, " "), good, total), nil
}

// convert assembles the numeral for units and converts it. Non-canonical
// numerals are converted all the same; they are only logged.
func (s *Session) convert(units []string) (int, error) {
	roman, err := s.units.Numeral(units)
	if err != nil {
		return 0, err
	}
	if s.cfg.WarnNonCanonical && !numeral.IsCanonical(roman) {
		s.logger.Warn("non-canonical numeral", "numeral", roman, "units", strings.Join(units, " "))
	}
	return numeral.Convert(roman), nil
}
