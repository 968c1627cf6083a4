package drivers

import "time"

// Driver is a person who can be assigned to trips
type Driver struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone,omitempty"`
	Active bool   `json:"active"`
	UserID *int64 `json:"user_id,omitempty"`
}

// CreateDriverRequest is the payload for creating or updating a driver
type CreateDriverRequest struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone"`
	Active *bool  `json:"active"`
	UserID *int64 `json:"user_id"`
}

// Shift is a planned work period for a driver
type Shift struct {
	ID       int64     `json:"id"`
	DriverID int64     `json:"driver_id"`
	StartAt  time.Time `json:"start_at"`
	EndAt    time.Time `json:"end_at"`
	Status   string    `json:"status"`
}

// CreateShiftRequest is the payload for creating or updating a shift
type CreateShiftRequest struct {
	DriverID int64     `json:"driver_id" binding:"required"`
	StartAt  time.Time `json:"start_at" binding:"required"`
	EndAt    time.Time `json:"end_at" binding:"required"`
	Status   string    `json:"status"`
}
