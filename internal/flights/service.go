package flights

import (
	"context"
	"sort"
	"time"
)

// Service correlates trips' flight numbers against the external feeds
type Service struct {
	fr24   *FR24Client
	avinor *AvinorClient
}

// NewService creates a new flights service
func NewService(fr24 *FR24Client, avinor *AvinorClient) *Service {
	return &Service{fr24: fr24, avinor: avinor}
}

// ArrivalMatch is the best board record found for a flight number
type ArrivalMatch struct {
	Query   string   `json:"query"`
	Match   *Record  `json:"match,omitempty"`
	Others  []Record `json:"others,omitempty"`
	Matched bool     `json:"matched"`
}

// MatchArrival looks a flight number up on the airport arrivals board and
// picks the record with the soonest estimated arrival, falling back to the
// scheduled time. No match is an empty result, not an error.
func (s *Service) MatchArrival(ctx context.Context, airport, number string, hoursFrom, hoursTo int) (*ArrivalMatch, error) {
	records, err := s.fr24.AirportArrivals(ctx, airport, hoursFrom, hoursTo, 0)
	if err != nil {
		return nil, err
	}

	matches := FilterByFlightNumber(records, number)
	result := &ArrivalMatch{Query: number}
	if len(matches) == 0 {
		return result, nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return etaSortKey(matches[i]).Before(etaSortKey(matches[j]))
	})
	result.Match = &matches[0]
	result.Others = matches[1:]
	result.Matched = true
	return result, nil
}

// etaSortKey orders records by estimated arrival, then scheduled arrival,
// then a far-future sentinel for records carrying neither
func etaSortKey(r Record) time.Time {
	for _, raw := range []string{r.ETA, r.Schedule} {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t
		}
	}
	return farFuture
}

// SearchLive finds live positions for a flight number inside the given
// bounds boxes
func (s *Service) SearchLive(ctx context.Context, number string, boundsList []string) ([]Record, error) {
	records, err := s.fr24.LivePositionsMulti(ctx, boundsList, 0)
	if err != nil {
		return nil, err
	}
	return FilterByFlightNumber(records, number), nil
}

// SearchSummary finds the summary entries for a flight number on a day
func (s *Service) SearchSummary(ctx context.Context, number string, day time.Time) ([]Record, error) {
	records, err := s.fr24.SearchFlightsByNumber(ctx, number, day)
	if err != nil {
		return nil, err
	}
	return FilterByFlightNumber(records, number), nil
}

// TimetableETA resolves a flight number against the Avinor timetable
func (s *Service) TimetableETA(ctx context.Context, number string) (*Arrival, error) {
	return s.avinor.FindArrival(ctx, number)
}
