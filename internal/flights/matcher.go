package flights

import "strings"

// FilterByCallsign keeps records whose callsign exactly matches the query
// after normalization
func FilterByCallsign(records []Record, query string) []Record {
	want := Normalize(query)
	if want == "" {
		return nil
	}
	var out []Record
	for _, r := range records {
		if Normalize(r.Callsign) == want {
			out = append(out, r)
		}
	}
	return out
}

// FilterByFlightNumber keeps records matching a commercial flight number.
// A callsign-shaped query is matched against the callsign field first.
// Otherwise the query is split into airline and digits; a record matches
// when its flight field carries the same airline and digits, or its
// callsign starts with one of the airline's ICAO prefixes and carries the
// digits. When the primary pass finds nothing, progressively looser
// comparisons are tried, the first non-empty stage winning.
func FilterByFlightNumber(records []Record, query string) []Record {
	if LooksLikeCallsign(query) {
		if exact := FilterByCallsign(records, query); len(exact) > 0 {
			return exact
		}
	}

	iata, num, ok := SplitIATANumber(query)
	if !ok {
		// unsplittable queries fall back to exact flight-field identity
		want := Normalize(query)
		if want == "" {
			return nil
		}
		var out []Record
		for _, r := range records {
			if Normalize(r.Flight) == want {
				out = append(out, r)
			}
		}
		return out
	}

	prefixes := allowedPrefixes(iata)

	var out []Record
	for _, r := range records {
		if matchFlightField(r.Flight, iata, num) || matchCallsignField(r.Callsign, prefixes, num) {
			out = append(out, r)
		}
	}
	if len(out) > 0 {
		return out
	}

	// fallback ladder: bare digit equality, then the whole query as a
	// prefix of either field, then as a substring
	full := Normalize(query)
	for _, match := range []func(r Record) bool{
		func(r Record) bool {
			return (r.Flight != "" && Digits(r.Flight) == num) ||
				(r.Callsign != "" && Digits(r.Callsign) == num)
		},
		func(r Record) bool {
			return strings.HasPrefix(Normalize(r.Flight), full) ||
				strings.HasPrefix(Normalize(r.Callsign), full)
		},
		func(r Record) bool {
			return strings.Contains(Normalize(r.Flight), full) ||
				strings.Contains(Normalize(r.Callsign), full)
		},
	} {
		var loose []Record
		for _, r := range records {
			if match(r) {
				loose = append(loose, r)
			}
		}
		if len(loose) > 0 {
			return loose
		}
	}
	return nil
}

// matchFlightField accepts a flight designator with the same digits and the
// same leading airline letters as the query
func matchFlightField(flight, iata, num string) bool {
	if flight == "" {
		return false
	}
	return Digits(flight) == num && leadingAlpha(flight) == iata
}

// matchCallsignField accepts a callsign flying under one of the airline's
// prefixes whose digits equal or extend the queried number
func matchCallsignField(callsign string, prefixes []string, num string) bool {
	cs := Normalize(callsign)
	if len(cs) < 3 {
		return false
	}
	allowed := false
	for _, p := range prefixes {
		if strings.HasPrefix(cs, p) {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}
	digits := Digits(cs)
	return digits == num || strings.HasPrefix(digits, num)
}
