package locations

// Location is a named pickup or dropoff point. Names are unique; free-text
// origins and stops on trips resolve to rows here.
type Location struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
	Tags    string   `json:"tags,omitempty"`
}

// CreateLocationRequest is the payload for creating or updating a location
type CreateLocationRequest struct {
	Name    string   `json:"name" binding:"required"`
	Address string   `json:"address"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	Tags    string   `json:"tags"`
}
