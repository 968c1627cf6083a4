package flights

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var payload any
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	return payload
}

func TestExtractRecords_FlatList(t *testing.T) {
	payload := decode(t, `[
		{"fr24_id":"abc","flight":"DY540","callsign":"NOZ540","lat":58.9,"lon":5.6},
		{"flight":"SK123"}
	]`)

	records := ExtractRecords(payload)
	require.Len(t, records, 2)
	assert.Equal(t, "abc", records[0].FR24ID)
	assert.Equal(t, "DY540", records[0].Flight)
	assert.Equal(t, "NOZ540", records[0].Callsign)
	require.NotNil(t, records[0].Lat)
	assert.InDelta(t, 58.9, *records[0].Lat, 0.001)
	assert.Equal(t, "SK123", records[1].Flight)
}

func TestExtractRecords_EnvelopeKeys(t *testing.T) {
	for _, key := range []string{"data", "result", "results", "flights", "items", "records", "rows", "aircraft"} {
		payload := decode(t, `{"`+key+`":[{"flight":"DY540"}]}`)
		records := ExtractRecords(payload)
		require.Len(t, records, 1, "container %q", key)
		assert.Equal(t, "DY540", records[0].Flight)
	}
}

func TestExtractRecords_NestedEnvelope(t *testing.T) {
	payload := decode(t, `{"result":{"data":[{"flight":"DY540"}]}}`)
	records := ExtractRecords(payload)
	require.Len(t, records, 1)
}

func TestExtractRecords_Unrecognized(t *testing.T) {
	assert.Empty(t, ExtractRecords(decode(t, `{"message":"no flights"}`)))
	assert.Empty(t, ExtractRecords(decode(t, `"just a string"`)))
	assert.Empty(t, ExtractRecords(nil))
}

func TestExtractRecord_DottedPaths(t *testing.T) {
	payload := decode(t, `{
		"identification": {"number": {"default": "DY540"}, "callsign": "NOZ540"},
		"time": {"estimated": {"arrival": "2025-06-01T12:30:00Z"}}
	}`)

	r := ExtractRecord(payload.(map[string]any))
	assert.Equal(t, "DY540", r.Flight)
	assert.Equal(t, "NOZ540", r.Callsign)
	assert.Equal(t, "2025-06-01T12:30:00Z", r.ETA)
}

func TestExtractRecord_BoardTimes(t *testing.T) {
	payload := decode(t, `{
		"flight": "DY540",
		"arrival": {"estimated": "2026-08-30T12:00:00Z", "scheduled": "2026-08-30T11:45:00Z"}
	}`)

	r := ExtractRecord(payload.(map[string]any))
	assert.Equal(t, "2026-08-30T12:00:00Z", r.ETA)
	assert.Equal(t, "2026-08-30T11:45:00Z", r.Schedule)

	payload = decode(t, `{
		"flight": "DY540",
		"times": {"scheduled": {"arrival": "2026-08-30T11:45:00Z"}}
	}`)

	r = ExtractRecord(payload.(map[string]any))
	assert.Empty(t, r.ETA)
	assert.Equal(t, "2026-08-30T11:45:00Z", r.Schedule)
}

func TestExtractRecord_FirstPresentWins(t *testing.T) {
	payload := decode(t, `{"flight":"DY540","number":"IGNORED"}`)
	r := ExtractRecord(payload.(map[string]any))
	assert.Equal(t, "DY540", r.Flight)
}

func TestExtractRecord_NumericIdentifiers(t *testing.T) {
	// some feeds send timestamps and ids as numbers
	payload := decode(t, `{"flight":"DY540","timestamp":1717243800}`)
	r := ExtractRecord(payload.(map[string]any))
	assert.Equal(t, "1717243800", r.Timestamp)
}
