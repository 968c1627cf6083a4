package pricing

import "time"

// PricePlan is a named pricing configuration. Night bounds are "HH:MM"
// time-of-day strings; either bound absent disables the night surcharge.
type PricePlan struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	BasePrice        int     `json:"base_price"`
	BasePaxIncluded  int     `json:"base_pax_included"`
	ExtraPaxPrice    int     `json:"extra_pax_price"`
	NightStart       *string `json:"night_start"`
	NightEnd         *string `json:"night_end"`
	NightSurcharge   int     `json:"night_surcharge"`
	HolidaySurcharge int     `json:"holiday_surcharge"`
	Stop1Surcharge   int     `json:"stop1_surcharge"`
	Stop2Surcharge   int     `json:"stop2_surcharge"`
	Active           bool    `json:"active"`
}

// CustomerPricePlan links a customer to its plan (at most one per customer)
type CustomerPricePlan struct {
	ID          int64 `json:"id"`
	CustomerID  int64 `json:"customer_id"`
	PricePlanID int64 `json:"price_plan_id"`
}

// CreatePlanRequest is the payload for creating or updating a price plan
type CreatePlanRequest struct {
	Name             string  `json:"name" binding:"required"`
	BasePrice        int     `json:"base_price"`
	BasePaxIncluded  int     `json:"base_pax_included"`
	ExtraPaxPrice    int     `json:"extra_pax_price"`
	NightStart       *string `json:"night_start"`
	NightEnd         *string `json:"night_end"`
	NightSurcharge   int     `json:"night_surcharge"`
	HolidaySurcharge int     `json:"holiday_surcharge"`
	Stop1Surcharge   int     `json:"stop1_surcharge"`
	Stop2Surcharge   int     `json:"stop2_surcharge"`
	Active           *bool   `json:"active"`
}

// LinkRequest is the payload for linking a customer to a plan
type LinkRequest struct {
	CustomerID  int64 `json:"customer_id" binding:"required"`
	PricePlanID int64 `json:"price_plan_id" binding:"required"`
}

// TripInput carries the trip attributes the pricing engine needs
type TripInput struct {
	Pax       int       // 0 is treated as 1
	StartTime string    // "HH:MM"
	Date      time.Time // trip date, time part ignored
	HasStop1  bool
	HasStop2  bool
}

// PricingRequest resolves a plan for a customer before pricing
type PricingRequest struct {
	CustomerID *int64
	Trip       TripInput
}
