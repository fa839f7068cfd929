// Package postcode normalizes UK postcodes and classifies them into climate
// regions carrying a yield coefficient and a regional price multiplier.
package postcode

import (
	"regexp"
	"strings"

	"solarquote_backend/platform/apperr"
)

// Outward part: 1-2 letters, 1 digit, optional letter-or-digit.
// Inward part: 1 digit, 2 letters.
var postcodePattern = regexp.MustCompile(`^[A-Z]{1,2}[0-9][A-Z0-9]? [0-9][A-Z]{2}$`)

var areaPattern = regexp.MustCompile(`^[A-Z]{1,2}`)

// Normalize uppercases, strips internal whitespace and re-inserts a single
// space before the last three characters, then validates the result.
// Normalizing an already-normalized postcode is a no-op.
func Normalize(raw string) (string, error) {
	cleaned := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	if len(cleaned) < 5 {
		return "", apperr.Validation("invalid postcode")
	}

	formatted := cleaned[:len(cleaned)-3] + " " + cleaned[len(cleaned)-3:]
	if !postcodePattern.MatchString(formatted) {
		return "", apperr.Validation("invalid postcode")
	}

	return formatted, nil
}

// Area extracts the leading 1-2 letter area code from the outward part of a
// normalized postcode. Returns "" when no area code is present.
func Area(normalized string) string {
	outward, _, ok := strings.Cut(normalized, " ")
	if !ok {
		outward = normalized
	}
	return areaPattern.FindString(outward)
}
