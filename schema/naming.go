package schema

import (
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"
)

// Naming derives table names from model names.
type Naming string

const (
	// NamingLower lowercases the model name: VenueInformation -> venueinformation.
	NamingLower Naming = "lower"
	// NamingSnake converts to snake case: VenueInformation -> venue_information.
	NamingSnake Naming = "snake"
	// NamingPlural converts to plural snake case: Category -> categories.
	NamingPlural Naming = "plural"
)

// ParseNaming validates a naming strategy name. Empty means NamingLower.
func ParseNaming(s string) (Naming, error) {
	switch n := Naming(strings.ToLower(s)); n {
	case "":
		return NamingLower, nil
	case NamingLower, NamingSnake, NamingPlural:
		return n, nil
	}
	return "", fmt.Errorf("unknown naming strategy %q (want lower, snake or plural)", s)
}

// TableName applies the strategy to a model name.
func (n Naming) TableName(model string) string {
	switch n {
	case NamingSnake:
		return inflect.Underscore(model)
	case NamingPlural:
		return inflect.Pluralize(inflect.Underscore(model))
	default:
		return strings.ToLower(model)
	}
}
