// utils/pagination.go - query-string coercion for list endpoints
package utils

import "strconv"

// ParsePage coerces a page query value. Anything that is not a positive
// integer silently falls back to 1; malformed input must not fail a listing.
func ParsePage(value string) int {
	page, err := strconv.Atoi(value)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ParseLimit coerces a page-size query value, falling back to 10 and capping
// at 100 so a single request cannot drag an entire collection through the
// envelope.
func ParseLimit(value string) int {
	limit, err := strconv.Atoi(value)
	if err != nil || limit < 1 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return limit
}
