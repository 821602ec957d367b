// Package entities holds the players, teams and matches scraped from vlr.gg.
//
// An entity is either a Stub, seeded from a page that only mentions it (a
// team card on a player page, a player row on a match page), or Complete,
// built from its own page. Stubs are upgraded by scraping the entity's own
// page, never by mutation.
package entities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidID  = errors.New("invalid id")
	ErrIncomplete = errors.New("incomplete entity")
)

type Completeness int

const (
	Stub Completeness = iota
	Complete
)

func (c Completeness) String() string {
	switch c {
	case Complete:
		return "complete"
	default:
		return "stub"
	}
}

// ValidateID fails with ErrInvalidID unless id is a positive integer.
func ValidateID(id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return nil
}

// ParseID parses a textual id (cli argument, url segment) and validates it.
func ParseID(text string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, text)
	}
	if err := ValidateID(id); err != nil {
		return 0, err
	}
	return id, nil
}

// Ptr returns a pointer to v, used to fill nullable stat fields.
func Ptr[T any](v T) *T {
	return &v
}
