package flights

import (
	"regexp"
	"strings"
)

var (
	nonAlnumRe = regexp.MustCompile(`[^A-Z0-9]+`)
	callsignRe = regexp.MustCompile(`^[A-Z]{3}[0-9A-Z]{1,5}$`)
	iataRe     = regexp.MustCompile(`^([A-Z]{2})([0-9]{1,4})[A-Z]?$`)
	digitsRe   = regexp.MustCompile(`[0-9]+`)
	leadAlpha  = regexp.MustCompile(`^[A-Z]+`)
)

// Normalize uppercases an identifier and strips everything outside A-Z0-9,
// so "dy 540" and "DY540" compare equal.
func Normalize(s string) string {
	return nonAlnumRe.ReplaceAllString(strings.ToUpper(s), "")
}

// Digits returns the concatenated digit runs of a normalized identifier
func Digits(s string) string {
	return strings.Join(digitsRe.FindAllString(Normalize(s), -1), "")
}

// LooksLikeCallsign reports whether a normalized identifier has ICAO
// callsign shape: a three-letter prefix followed by the flight suffix.
func LooksLikeCallsign(s string) bool {
	return callsignRe.MatchString(Normalize(s))
}

// SplitIATANumber splits a commercial flight number into its two-letter
// airline code and numeric part, dropping any operational suffix letter.
// "DY540A" yields ("DY", "540"). ok is false when the shape does not fit.
func SplitIATANumber(s string) (airline, number string, ok bool) {
	m := iataRe.FindStringSubmatch(Normalize(s))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// leadingAlpha returns the leading letter run of a normalized identifier
func leadingAlpha(s string) string {
	return leadAlpha.FindString(Normalize(s))
}
