// Package progress holds the page arithmetic of a murojaah session: page
// counts over juz/page ranges, status derivation and daily totals.
package progress

import (
	"fmt"
	"strconv"
	"strings"
)

// Domain bounds of the memorized text
const (
	MinJuz      = 1
	MaxJuz      = 30
	MinPage     = 1
	PagesPerJuz = 20
)

// Position is a point in the memorized text. Page numbering restarts at every juz.
type Position struct {
	Juz  int `json:"juz"`
	Page int `json:"halaman"`
}

// None is the "not started" completed position
var None = Position{}

// IsNone reports whether p is the not-started sentinel
func (p Position) IsNone() bool {
	return p.Juz == 0 && p.Page == 0
}

// Valid reports whether p lies inside the domain bounds
func (p Position) Valid() bool {
	return p.Juz >= MinJuz && p.Juz <= MaxJuz && p.Page >= MinPage && p.Page <= PagesPerJuz
}

// Ordinal maps p onto a linear page index starting at 1 for juz 1 page 1
func (p Position) Ordinal() int {
	return (p.Juz-1)*PagesPerJuz + p.Page
}

// Compare orders positions lexicographically by (juz, page).
// It returns -1, 0 or 1.
func (p Position) Compare(q Position) int {
	switch {
	case p.Juz < q.Juz:
		return -1
	case p.Juz > q.Juz:
		return 1
	case p.Page < q.Page:
		return -1
	case p.Page > q.Page:
		return 1
	}
	return 0
}

// Before reports whether p comes strictly before q
func (p Position) Before(q Position) bool {
	return p.Compare(q) < 0
}

func (p Position) String() string {
	if p.IsNone() {
		return "-"
	}
	return fmt.Sprintf("Juz %d hal. %d", p.Juz, p.Page)
}

// ParsePosition parses "juz:page" or "juz/page", e.g. "2:15"
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, ":/")
	if sep < 0 {
		return Position{}, fmt.Errorf("invalid position %q: expected juz:page", s)
	}

	juz, err := strconv.Atoi(strings.TrimSpace(s[:sep]))
	if err != nil {
		return Position{}, fmt.Errorf("invalid juz in %q: %w", s, err)
	}
	page, err := strconv.Atoi(strings.TrimSpace(s[sep+1:]))
	if err != nil {
		return Position{}, fmt.Errorf("invalid page in %q: %w", s, err)
	}

	return Position{Juz: juz, Page: page}, nil
}

// Range is an inclusive span of pages from Start to End
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NewRange builds a range from raw juz/page numbers
func NewRange(startJuz, startPage, endJuz, endPage int) Range {
	return Range{
		Start: Position{Juz: startJuz, Page: startPage},
		End:   Position{Juz: endJuz, Page: endPage},
	}
}

// PageCount returns the inclusive number of pages spanned by r.
// The result is only meaningful for a range that passes ValidateRange.
func (r Range) PageCount() int {
	return r.End.Ordinal() - r.Start.Ordinal() + 1
}

// Contains reports whether p lies within r, bounds included
func (r Range) Contains(p Position) bool {
	return r.Start.Compare(p) <= 0 && p.Compare(r.End) <= 0
}

func (r Range) String() string {
	return fmt.Sprintf("%s - %s", r.Start, r.End)
}
