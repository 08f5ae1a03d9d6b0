package menu

import (
	"errors"
	"strings"

	"smartspend/internal/core"
)

// prompt writes label and returns the next trimmed input line. ok is false
// once input is exhausted.
func (s *Session) prompt(label string) (string, bool) {
	s.printf("%s", label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// readDate asks until it gets a valid YYYY-MM-DD date. Blank means today.
func (s *Session) readDate() (core.Date, bool) {
	for {
		raw, ok := s.prompt("Enter date (YYYY-MM-DD) or leave blank for today: ")
		if !ok {
			return core.Date{}, false
		}
		if raw == "" {
			return core.Today(s.now()), true
		}
		d, err := core.ParseDate(raw)
		if err == nil {
			return d, true
		}
		s.println("Invalid date format. Please use YYYY-MM-DD.")
	}
}

// readAmount asks until it gets a positive amount.
func (s *Session) readAmount() (core.Money, bool) {
	for {
		raw, ok := s.prompt("Enter amount: ")
		if !ok {
			return core.Money{}, false
		}
		cents, err := core.ParseDecimalToCents(raw)
		if err == nil {
			return core.Money{Cents: cents}, true
		}
		if errors.Is(err, core.ErrNonPositiveAmount) {
			s.println("Amount must be greater than zero.")
		} else {
			s.println("Please enter a valid number.")
		}
	}
}
