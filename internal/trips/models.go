package trips

import (
	"bytes"
	"encoding/json"
	"time"
)

// Trip statuses. A trip is assigned exactly when an assignment row exists;
// exception is orthogonal and set by dispatchers.
const (
	StatusUnassigned = "unassigned"
	StatusAssigned   = "assigned"
	StatusException  = "exception"
)

// Trip is a single planned journey
type Trip struct {
	ID                    int64      `json:"id"`
	Date                  time.Time  `json:"date"`
	StartTime             string     `json:"start_time"` // HH:MM
	DurationMin           int        `json:"duration_min"`
	OriginLocationID      int64      `json:"origin_location_id"`
	DestinationLocationID int64      `json:"destination_location_id"`
	Stop1LocationID       *int64     `json:"stop1_location_id,omitempty"`
	Stop2LocationID       *int64     `json:"stop2_location_id,omitempty"`
	CustomerID            *int64     `json:"customer_id,omitempty"`
	Pax                   int        `json:"pax"`
	Price                 *int       `json:"price,omitempty"`
	Status                string     `json:"status"`
	Comment               string     `json:"comment,omitempty"`
	ExceptionNote         string     `json:"exception_note,omitempty"`
	VehicleID             *int64     `json:"vehicle_id,omitempty"`
	FlightNumber          string     `json:"flight_number,omitempty"`
	PONumber              string     `json:"po_number,omitempty"`
	Invoiced              bool       `json:"invoiced"`
	InvoicedAt            *time.Time `json:"invoiced_at,omitempty"`
	InvoicedBy            *int64     `json:"invoiced_by,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`

	// CurrentDriver is joined from the assignment, nil when unassigned
	CurrentDriver *AssignedDriver `json:"current_driver,omitempty"`
}

// AssignedDriver is the driver currently linked to a trip
type AssignedDriver struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Assignment links a trip to exactly one driver
type Assignment struct {
	ID         int64     `json:"id"`
	TripID     int64     `json:"trip_id"`
	DriverID   int64     `json:"driver_id"`
	AssignedBy *int64    `json:"assigned_by,omitempty"`
	AssignedAt time.Time `json:"assigned_at"`
}

// OptionalID distinguishes an absent JSON field from an explicit null or
// zero. Absent leaves the assignment untouched, null or 0 unassigns.
type OptionalID struct {
	Set   bool
	Value *int64
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == 0 {
		o.Value = nil
		return nil
	}
	o.Value = &v
	return nil
}

// CreateTripRequest is the payload for creating a trip. Locations may be
// given by ID or by free-text name; names are resolved or created on the fly.
type CreateTripRequest struct {
	Date                  string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime             string `json:"start_time" binding:"required"` // HH:MM
	DurationMin           int    `json:"duration_min"`
	OriginLocationID      *int64 `json:"origin_location_id"`
	OriginName            string `json:"origin_name"`
	DestinationLocationID *int64 `json:"destination_location_id"`
	DestinationName       string `json:"destination_name"`
	Stop1LocationID       *int64 `json:"stop1_location_id"`
	Stop1Name             string `json:"stop1_name"`
	Stop2LocationID       *int64 `json:"stop2_location_id"`
	Stop2Name             string `json:"stop2_name"`
	CustomerID            *int64 `json:"customer_id"`
	Pax                   int    `json:"pax"`
	Price                 *int   `json:"price"`
	Comment               string `json:"comment"`
	ExceptionNote         string `json:"exception_note"`
	VehicleID             *int64 `json:"vehicle_id"`
	FlightNumber          string `json:"flight_number"`
	PONumber              string `json:"po_number"`
	DriverID              *int64 `json:"driver_id"`
}

// UpdateTripRequest is the payload for updating a trip. DriverID is
// tri-state: absent keeps the assignment, null or 0 removes it, a value
// reassigns. Status can only toggle the exception override; assigned and
// unassigned are derived from assignment presence.
type UpdateTripRequest struct {
	Date                  string     `json:"date" binding:"required"`
	StartTime             string     `json:"start_time" binding:"required"`
	DurationMin           int        `json:"duration_min"`
	OriginLocationID      *int64     `json:"origin_location_id"`
	OriginName            string     `json:"origin_name"`
	DestinationLocationID *int64     `json:"destination_location_id"`
	DestinationName       string     `json:"destination_name"`
	Stop1LocationID       *int64     `json:"stop1_location_id"`
	Stop1Name             string     `json:"stop1_name"`
	Stop2LocationID       *int64     `json:"stop2_location_id"`
	Stop2Name             string     `json:"stop2_name"`
	CustomerID            *int64     `json:"customer_id"`
	Pax                   int        `json:"pax"`
	Price                 *int       `json:"price"`
	Status                string     `json:"status"`
	Comment               string     `json:"comment"`
	ExceptionNote         string     `json:"exception_note"`
	VehicleID             *int64     `json:"vehicle_id"`
	FlightNumber          string     `json:"flight_number"`
	PONumber              string     `json:"po_number"`
	DriverID              OptionalID `json:"driver_id"`
}

// AssignRequest is the payload for the explicit assign endpoint
type AssignRequest struct {
	DriverID int64 `json:"driver_id" binding:"required"`
}

// InvoiceRequest toggles the invoiced flag on a single trip
type InvoiceRequest struct {
	Invoiced bool `json:"invoiced"`
}

// BulkInvoiceRequest toggles the invoiced flag for a customer's month
type BulkInvoiceRequest struct {
	CustomerID int64  `json:"customer_id" binding:"required"`
	Month      string `json:"month" binding:"required"` // YYYY-MM
	Invoiced   bool   `json:"invoiced"`
}

// ListFilters narrows the trip listing
type ListFilters struct {
	Status     string
	Date       *time.Time
	DriverID   *int64
	CustomerID *int64
	MonthFrom  *time.Time
	MonthTo    *time.Time
}
