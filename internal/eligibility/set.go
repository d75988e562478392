// Package eligibility answers whether a postal code is inside the serviceable area.
package eligibility

import (
	"strings"

	dErrors "leadengine/pkg/domain-errors"
)

// InvalidPostalCodeMessage is shown inline next to the ZIP input.
const InvalidPostalCodeMessage = "Please enter a valid 5-digit ZIP code"

// PostalCode is a 5-digit US ZIP code. It carries no structure beyond set membership.
type PostalCode string

// ParsePostalCode validates raw user input. Surrounding whitespace is ignored;
// anything other than exactly five ASCII digits is a validation error.
func ParsePostalCode(raw string) (PostalCode, error) {
	s := strings.TrimSpace(raw)
	if !isFiveDigits(s) {
		return "", dErrors.New(dErrors.CodeValidation, InvalidPostalCodeMessage)
	}
	return PostalCode(s), nil
}

func (c PostalCode) String() string { return string(c) }

func isFiveDigits(s string) bool {
	if len(s) != 5 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Set is an immutable collection of serviceable postal codes. It is loaded once
// at startup and never mutated, so it is safe to share across goroutines.
type Set struct {
	codes   map[PostalCode]struct{}
	version string
}

// NewSet builds a set from already-validated codes.
func NewSet(codes ...PostalCode) *Set {
	m := make(map[PostalCode]struct{}, len(codes))
	for _, c := range codes {
		m[c] = struct{}{}
	}
	return &Set{codes: m}
}

// IsServiceable is a pure membership test. Callers validate format first;
// malformed codes simply test false.
func (s *Set) IsServiceable(code PostalCode) bool {
	if s == nil {
		return false
	}
	_, ok := s.codes[code]
	return ok
}

// Len returns the number of serviceable codes.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.codes)
}

// Version identifies the deploy-time data revision the set was loaded from.
func (s *Set) Version() string {
	if s == nil {
		return ""
	}
	return s.version
}
