package entity

import "strings"

// validCountries is the fixed set of country codes the aggregation endpoint
// accepts. Providers are only queried for countries in this set.
var validCountries = map[string]struct{}{
	"us": {}, "gb": {}, "de": {}, "fr": {}, "au": {}, "br": {}, "ca": {},
	"cn": {}, "in": {}, "it": {}, "jp": {}, "mx": {}, "ru": {}, "za": {},
}

// validCategories is the fixed set of category names the aggregation
// endpoint accepts. An empty category means "all".
var validCategories = map[string]struct{}{
	"general": {}, "world": {}, "nation": {}, "business": {},
	"technology": {}, "entertainment": {}, "sports": {}, "science": {},
	"health": {}, "conflict": {}, "environment": {},
}

// IsValidCountry reports whether code is an accepted two-letter country
// code. Comparison is case-insensitive.
func IsValidCountry(code string) bool {
	_, ok := validCountries[strings.ToLower(code)]
	return ok
}

// IsValidCategory reports whether category is accepted. The empty string is
// valid and means no category filter. Comparison is case-insensitive.
func IsValidCategory(category string) bool {
	if category == "" {
		return true
	}
	_, ok := validCategories[strings.ToLower(category)]
	return ok
}
