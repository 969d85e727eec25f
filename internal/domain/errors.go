package domain

import "errors"

var (
	// ErrEmptyCatalog means there is nothing to rank; the catalog needs seeding.
	ErrEmptyCatalog = errors.New("destination catalog is empty")

	// ErrNoMatchFound means the catalog has entries but none scored above zero.
	// Callers branch on it to ask for different preferences.
	ErrNoMatchFound = errors.New("no destination matches the preferences")

	// ErrInvalidPreference marks a preference value outside its enumeration.
	// Ranking degrades silently on such values; it is only used for reporting.
	ErrInvalidPreference = errors.New("unrecognized preference value")
)
