package flights

import (
	"fmt"
	"strings"
)

// Record is a flight observation normalized from any of the upstream
// payload shapes
type Record struct {
	FR24ID      string   `json:"fr24_id,omitempty"`
	Flight      string   `json:"flight,omitempty"`
	Callsign    string   `json:"callsign,omitempty"`
	Origin      string   `json:"origin,omitempty"`
	Destination string   `json:"destination,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
	Altitude    *float64 `json:"altitude,omitempty"`
	GroundSpeed *float64 `json:"gspeed,omitempty"`
	ETA         string   `json:"eta,omitempty"`
	Schedule    string   `json:"schedule,omitempty"`
	Status      string   `json:"status,omitempty"`
	Timestamp   string   `json:"timestamp,omitempty"`
}

// containerKeys are probed in order to find the list of flights inside an
// upstream envelope
var containerKeys = []string{
	"data", "result", "results", "flights", "items", "records", "rows", "features",
	"aircraft",
}

// dig walks ordered dotted key paths through nested maps and returns the
// first present value
func dig(m map[string]any, paths ...string) any {
	for _, path := range paths {
		cur := any(m)
		found := true
		for _, key := range strings.Split(path, ".") {
			obj, ok := cur.(map[string]any)
			if !ok {
				found = false
				break
			}
			cur, ok = obj[key]
			if !ok {
				found = false
				break
			}
		}
		if found && cur != nil {
			return cur
		}
	}
	return nil
}

func digString(m map[string]any, paths ...string) string {
	switch v := dig(m, paths...).(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func digFloat(m map[string]any, paths ...string) *float64 {
	if v, ok := dig(m, paths...).(float64); ok {
		return &v
	}
	return nil
}

// ExtractRecords pulls flight records out of an untyped upstream payload.
// Lists are used directly; envelopes are probed for a known container key.
func ExtractRecords(payload any) []Record {
	items := asList(payload)
	if items == nil {
		obj, ok := payload.(map[string]any)
		if !ok {
			return nil
		}
		for _, key := range containerKeys {
			if inner, present := obj[key]; present {
				if items = asList(inner); items != nil {
					break
				}
				// one more level for envelopes like {"result":{"response":{...}}}
				if nested, ok := inner.(map[string]any); ok {
					for _, key2 := range containerKeys {
						if items = asList(nested[key2]); items != nil {
							break
						}
					}
					if items != nil {
						break
					}
				}
			}
		}
	}

	var out []Record
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, ExtractRecord(m))
		}
	}
	return out
}

func asList(v any) []any {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	return list
}

// ExtractRecord builds a Record from one untyped flight object, trying the
// field spellings of the formats seen in the wild
func ExtractRecord(m map[string]any) Record {
	return Record{
		FR24ID:      digString(m, "fr24_id", "id", "identification.id", "hex"),
		Flight:      digString(m, "flight", "number", "identification.number.default", "flight_number"),
		Callsign:    digString(m, "callsign", "identification.callsign", "properties.callsign"),
		Origin:      digString(m, "orig_iata", "orig_icao", "origin", "airport.origin.code.iata"),
		Destination: digString(m, "dest_iata", "dest_icao", "destination", "airport.destination.code.iata"),
		Lat:         digFloat(m, "lat", "latitude"),
		Lon:         digFloat(m, "lon", "lng", "longitude"),
		Altitude:    digFloat(m, "alt", "altitude", "geo_altitude"),
		GroundSpeed: digFloat(m, "gspeed", "ground_speed", "speed"),
		ETA:         digString(m, "eta", "arrival.estimated", "times.estimated.arrival", "est_arrival_time", "time.estimated.arrival", "estimated_arrival"),
		Schedule:    digString(m, "arrival.scheduled", "times.scheduled.arrival", "schedule_time", "time.scheduled.arrival", "scheduled_arrival"),
		Status:      digString(m, "status", "flight_status", "status.text"),
		Timestamp:   digString(m, "timestamp", "time", "last_seen", "time.other.updated"),
	}
}
