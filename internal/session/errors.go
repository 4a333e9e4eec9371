package session

import "errors"

var (
	// ErrUndefinedUnit is returned when a unit word has no declared letter.
	ErrUndefinedUnit = errors.New("undefined unit")

	// ErrUndefinedGood is returned when a good has no credit sample.
	ErrUndefinedGood = errors.New("undefined good")

	// ErrZeroUnits is returned when a credit sample's units convert to 0.
	ErrZeroUnits = errors.New("unit sequence has zero value")

	// ErrInvalidLetter is returned when a unit is mapped to a non-Roman letter.
	ErrInvalidLetter = errors.New("invalid roman letter")

	// ErrInvalidCredits is returned when a credit amount cannot be parsed.
	ErrInvalidCredits = errors.New("invalid credits")

	// ErrLineTooLong is reported for input lines over the configured limit.
	ErrLineTooLong = errors.New("line too long")
)
