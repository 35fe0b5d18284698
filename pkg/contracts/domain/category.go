package domain

import (
	"fmt"
	"regexp"
)

// Category identifies the product line a document or metric row belongs to.
type Category string

const (
	CategoryBasketball Category = "basketball"
	CategorySoccer     Category = "soccer"
)

// Categories lists all known product lines in stable output order.
func Categories() []Category {
	return []Category{CategoryBasketball, CategorySoccer}
}

// Valid reports whether c is a known product line.
func (c Category) Valid() bool {
	return c == CategoryBasketball || c == CategorySoccer
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// ParseCategory converts a raw string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Report PDF filename conventions: "1-...basketball....pdf" for the basketball
// line and "2-...soccer....pdf" for the soccer line.
var (
	basketballPattern = regexp.MustCompile(`(?i)^1-.*basketball.*\.pdf$`)
	soccerPattern     = regexp.MustCompile(`(?i)^2-.*soccer.*\.pdf$`)
)

// DetectCategory maps a source document filename to its product line.
// The second return value is false when the name matches neither pattern.
func DetectCategory(filename string) (Category, bool) {
	switch {
	case basketballPattern.MatchString(filename):
		return CategoryBasketball, true
	case soccerPattern.MatchString(filename):
		return CategorySoccer, true
	default:
		return "", false
	}
}
