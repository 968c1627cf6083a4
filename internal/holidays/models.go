package holidays

import "time"

// Holiday marks a date as a surcharge day. Dates are unique regardless of
// country code.
type Holiday struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	Name        string    `json:"name"`
	CountryCode string    `json:"country_code"`
}

// CreateRequest is the payload for creating or updating a holiday
type CreateRequest struct {
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Name        string `json:"name" binding:"required"`
	CountryCode string `json:"country_code"`
}
