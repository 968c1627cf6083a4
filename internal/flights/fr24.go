package flights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/richxcame/transport-backend/pkg/common"
	"github.com/richxcame/transport-backend/pkg/config"
	"github.com/richxcame/transport-backend/pkg/httpclient"
	"github.com/richxcame/transport-backend/pkg/logger"
	"go.uber.org/zap"
)

// FR24Client talks to the Flightradar24 API. Endpoint shapes vary between
// plans, so board lookups try several known paths.
type FR24Client struct {
	client        *httpclient.Client
	token         string
	authScheme    string
	acceptVersion string
	summaryPath   string
	variant       string
}

// NewFR24Client creates a Flightradar24 client from configuration
func NewFR24Client(cfg config.FR24Config) *FR24Client {
	return &FR24Client{
		client:        httpclient.NewClient(cfg.BaseURL, cfg.Timeout),
		token:         cfg.Token,
		authScheme:    cfg.AuthScheme,
		acceptVersion: cfg.AcceptVersion,
		summaryPath:   cfg.SummaryPath,
		variant:       cfg.SummaryVariant,
	}
}

func (c *FR24Client) headers() map[string]string {
	h := map[string]string{"Accept": "application/json"}
	if c.acceptVersion != "" {
		h["Accept-Version"] = c.acceptVersion
	}
	if c.token != "" {
		if c.authScheme == "x-api-key" {
			h["x-api-key"] = c.token
		} else {
			h["Authorization"] = "Bearer " + c.token
		}
	}
	return h
}

// getRecords fetches a path and extracts flight records from whatever
// envelope comes back
func (c *FR24Client) getRecords(ctx context.Context, path string, query url.Values) ([]Record, error) {
	var payload any
	if err := c.client.GetJSON(ctx, path, query, c.headers(), &payload); err != nil {
		return nil, mapUpstreamError("fr24", err)
	}
	return ExtractRecords(payload), nil
}

// LivePositions fetches live flight positions inside a bounds box
// ("north,south,west,east")
func (c *FR24Client) LivePositions(ctx context.Context, bounds string, limit int) ([]Record, error) {
	query := url.Values{}
	if bounds != "" {
		query.Set("bounds", bounds)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return c.getRecords(ctx, "/live/flight-positions/"+c.variant, query)
}

// LivePositionsMulti fetches several bounds boxes and merges the results,
// deduplicating by fr24 ID or by the (flight, callsign, timestamp) triple.
func (c *FR24Client) LivePositionsMulti(ctx context.Context, boundsList []string, limit int) ([]Record, error) {
	seen := map[string]bool{}
	var out []Record
	var lastErr error
	for _, bounds := range boundsList {
		records, err := c.LivePositions(ctx, bounds, limit)
		if err != nil {
			lastErr = err
			continue
		}
		for _, r := range records {
			key := r.FR24ID
			if key == "" {
				key = r.Flight + "|" + r.Callsign + "|" + r.Timestamp
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, r)
		}
	}
	if out == nil && lastErr != nil {
		return nil, lastErr
	}
	return out, nil
}

// SearchFlightsByNumber fetches the flight summary entries for a flight
// number on a given day
func (c *FR24Client) SearchFlightsByNumber(ctx context.Context, number string, day time.Time) ([]Record, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.Add(24*time.Hour - time.Second)

	query := url.Values{}
	query.Set("flights", Normalize(number))
	query.Set("flight_datetime_from", from.Format(time.RFC3339))
	query.Set("flight_datetime_to", to.Format(time.RFC3339))
	return c.getRecords(ctx, c.summaryPath+"/"+c.variant, query)
}

// AirportArrivals fetches the arrivals board of an airport. The endpoint
// path differs between API plans, so the known candidates are tried in
// order and the last failure surfaces only when all of them are exhausted.
func (c *FR24Client) AirportArrivals(ctx context.Context, code string, hoursFrom, hoursTo, limit int) ([]Record, error) {
	type candidate struct {
		path  string
		query url.Values
	}
	candidates := []candidate{
		{path: "/airports/board", query: url.Values{"code": {code}, "type": {"arrivals"}}},
		{path: "/airports/" + url.PathEscape(code) + "/arrivals", query: url.Values{}},
		{path: "/airport-board", query: url.Values{"code": {code}, "arrivals": {"1"}}},
	}

	var lastErr error
	for _, cand := range candidates {
		if hoursFrom != 0 {
			cand.query.Set("hours_from", strconv.Itoa(hoursFrom))
		}
		if hoursTo != 0 {
			cand.query.Set("hours_to", strconv.Itoa(hoursTo))
		}
		if limit > 0 {
			cand.query.Set("limit", strconv.Itoa(limit))
		}

		records, err := c.getRecords(ctx, cand.path, cand.query)
		if err != nil {
			logger.WithContext(ctx).Debug("arrivals board candidate failed",
				zap.String("path", cand.path), zap.Error(err))
			lastErr = err
			continue
		}
		return records, nil
	}
	return nil, lastErr
}

// mapUpstreamError converts transport failures into the 502 error shape
func mapUpstreamError(provider string, err error) error {
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		return common.NewUpstreamError(provider, statusErr.StatusCode, statusErr.Snippet)
	}
	var jsonErr *json.SyntaxError
	if errors.As(err, &jsonErr) {
		return common.NewUpstreamError(provider, 0, fmt.Sprintf("malformed response: %v", err))
	}
	return common.NewUpstreamError(provider, 0, err.Error())
}
