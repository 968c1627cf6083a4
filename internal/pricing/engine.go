package pricing

import "fmt"

// DefaultPlan applies when a trip's customer has no active plan link and the
// caller did not supply a price explicitly.
var DefaultPlan = PricePlan{
	BasePrice:       900,
	BasePaxIncluded: 7,
}

// Price computes the trip price from a plan. The accumulation is
// order-independent: base, extra pax, night surcharge, holiday surcharge,
// stop surcharge. All terms are integers so no fractional loss occurs.
func Price(in TripInput, plan PricePlan, isHoliday bool) int {
	price := plan.BasePrice

	pax := in.Pax
	if pax <= 0 {
		pax = 1
	}
	if pax > plan.BasePaxIncluded {
		price += (pax - plan.BasePaxIncluded) * plan.ExtraPaxPrice
	}

	if inNightWindow(in.StartTime, plan.NightStart, plan.NightEnd) {
		price += plan.NightSurcharge
	}

	if isHoliday {
		price += plan.HolidaySurcharge
	}

	stops := 0
	if in.HasStop1 {
		stops++
	}
	if in.HasStop2 {
		stops++
	}
	switch {
	case stops == 1:
		price += plan.Stop1Surcharge
	case stops >= 2:
		price += plan.Stop2Surcharge
	}

	return price
}

// inNightWindow reports whether t falls inside [start, end], bounds inclusive.
// A window with start > end wraps past midnight. A missing or unparseable
// bound never matches.
func inNightWindow(t string, start, end *string) bool {
	if start == nil || end == nil {
		return false
	}
	tm, ok := parseMinutes(t)
	if !ok {
		return false
	}
	sm, ok := parseMinutes(*start)
	if !ok {
		return false
	}
	em, ok := parseMinutes(*end)
	if !ok {
		return false
	}

	if sm <= em {
		return sm <= tm && tm <= em
	}
	// spans midnight
	return tm >= sm || tm <= em
}

// parseMinutes converts "HH:MM" to minutes since midnight
func parseMinutes(s string) (int, bool) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
