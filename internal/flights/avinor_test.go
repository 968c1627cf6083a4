package flights

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/richxcame/transport-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAvinor(t *testing.T, body string, status int) *AvinorClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewAvinorClient(config.AvinorConfig{BaseURL: srv.URL, Airport: "SVG"})
}

const dirtyFeed = "<airport name=\"SVG\"><flights>" +
	"<flight uniqueID=\"1\"><flight_id>DY540</flight_id><airline>DY</airline>" +
	"<schedule_time>2025-06-01T12:00:00Z</schedule_time><arr_dep>A</arr_dep>" +
	"<airport>OSL</airport><status code=\"E\" time=\"2025-06-01T12:20:00Z\"/></flight>" +
	"<flight uniqueID=\"2\"><flight_id>SK123</flight_id><airline>P&B Air\x02</airline>" +
	"<schedule_time>2025-06-01T13:00:00Z</schedule_time><arr_dep>A</arr_dep>" +
	"<code_share>DY9540, WF777</code_share></flight>" +
	"<flight uniqueID=\"3\"><flight_id>DY100</flight_id>" +
	"<schedule_time>2025-06-01T09:00:00Z</schedule_time><arr_dep>D</arr_dep></flight>" +
	"</flights></airport>"

func TestCleanXML(t *testing.T) {
	cleaned := CleanXML([]byte("<a>P&B \x01x &amp; y &#229;</a>"))
	assert.Equal(t, "<a>P&amp;B x &amp; y &#229;</a>", string(cleaned))
}

func TestAvinorArrivals(t *testing.T) {
	client := newTestAvinor(t, dirtyFeed, http.StatusOK)

	arrivals, err := client.Arrivals(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, arrivals, 2) // the departure row is filtered out

	assert.Equal(t, "DY540", arrivals[0].FlightID)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), arrivals[0].ScheduleTime)
	require.NotNil(t, arrivals[0].EstimatedTime)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 20, 0, 0, time.UTC), *arrivals[0].EstimatedTime)
	assert.Equal(t, "E", arrivals[0].StatusCode)

	assert.Equal(t, []string{"DY9540", "WF777"}, arrivals[1].CodeShares)
}

func TestAvinorFindArrival_Direct(t *testing.T) {
	client := newTestAvinor(t, dirtyFeed, http.StatusOK)

	arrival, err := client.FindArrival(context.Background(), "dy 540")
	require.NoError(t, err)
	require.NotNil(t, arrival)
	assert.Equal(t, "DY540", arrival.FlightID)
}

func TestAvinorFindArrival_CodeShare(t *testing.T) {
	client := newTestAvinor(t, dirtyFeed, http.StatusOK)

	arrival, err := client.FindArrival(context.Background(), "DY9540")
	require.NoError(t, err)
	require.NotNil(t, arrival)
	assert.Equal(t, "SK123", arrival.FlightID)
}

func TestAvinorFindArrival_NoMatch(t *testing.T) {
	client := newTestAvinor(t, dirtyFeed, http.StatusOK)

	arrival, err := client.FindArrival(context.Background(), "LH999")
	require.NoError(t, err)
	assert.Nil(t, arrival)
}

func TestAvinorFindArrival_UpstreamFailure(t *testing.T) {
	client := newTestAvinor(t, "feed offline", http.StatusBadGateway)

	_, err := client.FindArrival(context.Background(), "DY540")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "avinor")
}

func TestPickBestArrival(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	at := func(h int) Arrival {
		return Arrival{ScheduleTime: time.Date(2025, 6, 1, h, 0, 0, 0, time.UTC)}
	}

	t.Run("nearest future wins", func(t *testing.T) {
		best := pickBestArrival([]Arrival{at(18), at(13), at(9)}, now)
		assert.Equal(t, 13, best.ScheduleTime.Hour())
	})

	t.Run("future beats past", func(t *testing.T) {
		best := pickBestArrival([]Arrival{at(9), at(18)}, now)
		assert.Equal(t, 18, best.ScheduleTime.Hour())
	})

	t.Run("most recent past when nothing ahead", func(t *testing.T) {
		best := pickBestArrival([]Arrival{at(7), at(11), at(9)}, now)
		assert.Equal(t, 11, best.ScheduleTime.Hour())
	})

	t.Run("estimate overrides schedule", func(t *testing.T) {
		est := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
		withEst := at(9)
		withEst.EstimatedTime = &est
		best := pickBestArrival([]Arrival{withEst, at(14)}, now)
		assert.Equal(t, est, best.EffectiveTime())
	})

	t.Run("unparseable sorts last", func(t *testing.T) {
		best := pickBestArrival([]Arrival{{}, at(13)}, now)
		assert.Equal(t, 13, best.ScheduleTime.Hour())
	})
}
