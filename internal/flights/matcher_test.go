package flights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(flight, callsign string) Record {
	return Record{Flight: flight, Callsign: callsign}
}

func TestFilterByFlightNumber_FlightField(t *testing.T) {
	records := []Record{
		rec("DY 540", ""),
		rec("DY541", ""),
		rec("SK540", ""),
	}

	got := FilterByFlightNumber(records, "DY540")
	require.Len(t, got, 1)
	assert.Equal(t, "DY 540", got[0].Flight)
}

func TestFilterByFlightNumber_CallsignAlias(t *testing.T) {
	records := []Record{
		rec("", "NOZ540A"),
		rec("", "NAX612"),
		rec("", "SAS540"),
	}

	// NOZ flies for Norwegian, so its 540 matches; SAS540 is another
	// airline's 540 and NAX612 carries the wrong digits
	got := FilterByFlightNumber(records, "DY540")
	require.Len(t, got, 1)
	assert.Equal(t, "NOZ540A", got[0].Callsign)
}

func TestFilterByFlightNumber_OperationalSuffix(t *testing.T) {
	// "DY540A" queries split to ("DY", "540")
	records := []Record{rec("DY540", "")}
	got := FilterByFlightNumber(records, "DY540A")
	require.Len(t, got, 1)
}

func TestFilterByFlightNumber_IATAPrefixOnCallsign(t *testing.T) {
	// the IATA code itself is in the allow-list next to the ICAO aliases
	records := []Record{rec("", "DY540")}
	got := FilterByFlightNumber(records, "DY540")
	require.Len(t, got, 1)
}

func TestFilterByFlightNumber_CallsignShapedQuery(t *testing.T) {
	records := []Record{
		rec("", "SAS4612"),
		rec("", "SAS461"),
		rec("SK4612", ""),
	}

	// a callsign-shaped query hits the callsign field directly
	got := FilterByFlightNumber(records, "SAS4612")
	require.Len(t, got, 1)
	assert.Equal(t, "SAS4612", got[0].Callsign)

	// lowercase and spacing still normalize onto the same record
	got = FilterByFlightNumber(records, "sas 4612")
	require.Len(t, got, 1)
	assert.Equal(t, "SAS4612", got[0].Callsign)
}

func TestFilterByFlightNumber_FallbackLadder(t *testing.T) {
	t.Run("digits equality wins first", func(t *testing.T) {
		records := []Record{
			rec("XX540", ""),  // wrong airline, same digits
			rec("XX5401", ""), // prefix extension
		}
		got := FilterByFlightNumber(records, "DY540")
		require.Len(t, got, 1)
		assert.Equal(t, "XX540", got[0].Flight)
	})

	t.Run("prefix when no equality", func(t *testing.T) {
		records := []Record{
			rec("DY5401", ""),  // query is a prefix
			rec("XDY5401", ""), // substring only
		}
		got := FilterByFlightNumber(records, "DY540")
		require.Len(t, got, 1)
		assert.Equal(t, "DY5401", got[0].Flight)
	})

	t.Run("substring as last resort", func(t *testing.T) {
		records := []Record{rec("XDY5401", "")}
		got := FilterByFlightNumber(records, "DY540")
		require.Len(t, got, 1)
	})

	t.Run("nothing matches", func(t *testing.T) {
		records := []Record{rec("XX999", "")}
		assert.Empty(t, FilterByFlightNumber(records, "DY540"))
	})
}

func TestFilterByFlightNumber_UnsplittableQuery(t *testing.T) {
	records := []Record{
		rec("CARGO1", ""),
		rec("DY540", ""),
	}

	// queries that are not IATA shaped fall back to exact identity
	got := FilterByFlightNumber(records, "cargo 1")
	require.Len(t, got, 1)
	assert.Equal(t, "CARGO1", got[0].Flight)
}

func TestFilterByFlightNumber_EmptyQuery(t *testing.T) {
	assert.Empty(t, FilterByFlightNumber([]Record{rec("DY540", "")}, ""))
}

func TestFilterByCallsign(t *testing.T) {
	records := []Record{
		rec("DY540", "NOZ540A"),
		rec("SK123", "SAS123"),
	}

	got := FilterByCallsign(records, "noz 540a")
	require.Len(t, got, 1)
	assert.Equal(t, "NOZ540A", got[0].Callsign)

	assert.Empty(t, FilterByCallsign(records, "NOZ540"))
	assert.Empty(t, FilterByCallsign(records, ""))
}
