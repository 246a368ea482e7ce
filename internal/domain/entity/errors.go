package entity

import "errors"

// Sentinel errors for domain layer operations. The messages double as the
// client-facing 400 response bodies, so they are capitalized sentences.
var (
	// ErrInvalidCountry indicates a country code outside the allow-set
	ErrInvalidCountry = errors.New("Invalid country code")

	// ErrInvalidCategory indicates a category outside the allow-set
	ErrInvalidCategory = errors.New("Invalid category")
)
