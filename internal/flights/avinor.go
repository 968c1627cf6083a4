package flights

import (
	"context"
	"encoding/xml"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/richxcame/transport-backend/pkg/config"
	"github.com/richxcame/transport-backend/pkg/httpclient"
)

// farFuture sorts unparseable times last when picking the best arrival
var farFuture = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)

// Arrival is one row of the Avinor arrivals timetable
type Arrival struct {
	FlightID      string     `json:"flight_id"`
	Airline       string     `json:"airline,omitempty"`
	ScheduleTime  time.Time  `json:"schedule_time"`
	EstimatedTime *time.Time `json:"estimated_time,omitempty"`
	StatusCode    string     `json:"status_code,omitempty"`
	Airport       string     `json:"airport,omitempty"`
	Gate          string     `json:"gate,omitempty"`
	BeltID        string     `json:"belt_id,omitempty"`
	CodeShares    []string   `json:"code_shares,omitempty"`
}

// EffectiveTime is the estimated time when present, the scheduled otherwise
func (a *Arrival) EffectiveTime() time.Time {
	if a.EstimatedTime != nil {
		return *a.EstimatedTime
	}
	if a.ScheduleTime.IsZero() {
		return farFuture
	}
	return a.ScheduleTime
}

type avinorStatus struct {
	Code string `xml:"code,attr"`
	Time string `xml:"time,attr"`
}

type avinorFlight struct {
	FlightID     string       `xml:"flight_id"`
	Airline      string       `xml:"airline"`
	ScheduleTime string       `xml:"schedule_time"`
	ArrDep       string       `xml:"arr_dep"`
	Airport      string       `xml:"airport"`
	Gate         string       `xml:"gate"`
	BeltID       string       `xml:"belt_id"`
	CodeShare    string       `xml:"code_share"`
	Status       avinorStatus `xml:"status"`
}

type avinorFeed struct {
	XMLName xml.Name       `xml:"airport"`
	Flights []avinorFlight `xml:"flights>flight"`
}

// AvinorClient reads the Avinor XML timetable feed
type AvinorClient struct {
	client  *httpclient.Client
	airport string
	now     func() time.Time
}

// NewAvinorClient creates an Avinor feed client from configuration
func NewAvinorClient(cfg config.AvinorConfig) *AvinorClient {
	return &AvinorClient{
		client:  httpclient.NewClient(cfg.BaseURL, cfg.Timeout),
		airport: cfg.Airport,
		now:     time.Now,
	}
}

var (
	controlCharRe = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f]`)
	bareAmpRe     = regexp.MustCompile(`&(amp;|lt;|gt;|quot;|apos;|#[0-9]{1,7};|#x[0-9a-fA-F]{1,6};)?`)
)

// CleanXML makes the feed parseable: the upstream occasionally emits
// invalid control characters and unescaped ampersands in airline names.
func CleanXML(b []byte) []byte {
	b = controlCharRe.ReplaceAll(b, nil)
	return bareAmpRe.ReplaceAllFunc(b, func(m []byte) []byte {
		if len(m) > 1 {
			return m // already a valid entity
		}
		return []byte("&amp;")
	})
}

// Arrivals fetches the arrivals board for the configured airport
func (c *AvinorClient) Arrivals(ctx context.Context, hoursFrom, hoursTo int) ([]Arrival, error) {
	query := url.Values{}
	query.Set("airport", c.airport)
	query.Set("direction", "A")
	if hoursFrom != 0 {
		query.Set("TimeFrom", strconv.Itoa(hoursFrom))
	}
	if hoursTo != 0 {
		query.Set("TimeTo", strconv.Itoa(hoursTo))
	}

	resp, err := c.client.Get(ctx, "", query, map[string]string{"Accept": "application/xml"})
	if err != nil {
		return nil, mapUpstreamError("avinor", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, mapUpstreamError("avinor", &httpclient.StatusError{
			StatusCode: resp.StatusCode, Snippet: httpclient.Snippet(resp.Body),
		})
	}

	var feed avinorFeed
	if err := xml.Unmarshal(CleanXML(resp.Body), &feed); err != nil {
		return nil, mapUpstreamError("avinor", err)
	}

	var out []Arrival
	for _, f := range feed.Flights {
		if f.ArrDep != "" && f.ArrDep != "A" {
			continue
		}
		out = append(out, toArrival(f))
	}
	return out, nil
}

func toArrival(f avinorFlight) Arrival {
	a := Arrival{
		FlightID:   strings.TrimSpace(f.FlightID),
		Airline:    f.Airline,
		StatusCode: f.Status.Code,
		Airport:    f.Airport,
		Gate:       f.Gate,
		BeltID:     f.BeltID,
	}
	if t, err := parseAvinorTime(f.ScheduleTime); err == nil {
		a.ScheduleTime = t
	}
	// status time is the current estimate for E (new time) and A (arrived)
	if f.Status.Time != "" {
		if t, err := parseAvinorTime(f.Status.Time); err == nil {
			a.EstimatedTime = &t
		}
	}
	if cs := strings.TrimSpace(f.CodeShare); cs != "" {
		for _, part := range strings.Split(cs, ",") {
			if part = strings.TrimSpace(part); part != "" {
				a.CodeShares = append(a.CodeShares, part)
			}
		}
	}
	return a
}

func parseAvinorTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05Z", raw)
}

// FindArrival picks the timetable row for a flight number: exact flight ID
// matches first, codeshare matches as fallback. With several candidates the
// nearest departure at or after now wins, then the most recent past one.
func (c *AvinorClient) FindArrival(ctx context.Context, number string) (*Arrival, error) {
	arrivals, err := c.Arrivals(ctx, 0, 0)
	if err != nil {
		return nil, err
	}

	want := Normalize(number)
	if want == "" {
		return nil, nil
	}

	var direct, shared []Arrival
	for _, a := range arrivals {
		if Normalize(a.FlightID) == want {
			direct = append(direct, a)
			continue
		}
		for _, cs := range a.CodeShares {
			if Normalize(cs) == want {
				shared = append(shared, a)
				break
			}
		}
	}

	candidates := direct
	if len(candidates) == 0 {
		candidates = shared
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	best := pickBestArrival(candidates, c.now())
	return &best, nil
}

// pickBestArrival prefers the soonest arrival at or after now, falling back
// to the most recent past one
func pickBestArrival(candidates []Arrival, now time.Time) Arrival {
	best := candidates[0]
	bestT := best.EffectiveTime()
	for _, a := range candidates[1:] {
		t := a.EffectiveTime()
		switch {
		case bestT.Before(now) && !t.Before(now):
			best, bestT = a, t
		case !bestT.Before(now) && !t.Before(now) && t.Before(bestT):
			best, bestT = a, t
		case bestT.Before(now) && t.Before(now) && t.After(bestT):
			best, bestT = a, t
		}
	}
	return best
}

