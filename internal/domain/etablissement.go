package domain

import "strings"

// EtablissementType represents the business type of an establishment
type EtablissementType string

const (
	TypeRestaurant EtablissementType = "RESTAURANT"
	TypeSpa        EtablissementType = "SPA"
	TypeActivity   EtablissementType = "ACTIVITY"
)

// ParseEtablissementType canonicalizes a backend-provided business type.
// Unknown values are kept as-is (uppercased) so new catalog types do not break parsing.
func ParseEtablissementType(s string) EtablissementType {
	return EtablissementType(strings.ToUpper(strings.TrimSpace(s)))
}

// UsesDefaultHours reports whether the establishment falls back to the canonical
// default opening block when the catalog has no usable schedule row for a date.
// Only restaurant-like establishments do.
func (t EtablissementType) UsesDefaultHours() bool {
	return t == TypeRestaurant
}

// IsRestaurant reports whether the establishment is a restaurant
func (t EtablissementType) IsRestaurant() bool {
	return t == TypeRestaurant
}
