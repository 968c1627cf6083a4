package vehicles

// Vehicle is a car or bus in the fleet
type Vehicle struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"vehicle_type"`
	RegNo  string `json:"reg_no"`
	Seats  int    `json:"seats"`
	Active bool   `json:"active"`
}

// CreateVehicleRequest is the payload for creating or updating a vehicle
type CreateVehicleRequest struct {
	Name   string `json:"name" binding:"required"`
	Type   string `json:"vehicle_type" binding:"required,oneof=car bus"`
	RegNo  string `json:"reg_no" binding:"required"`
	Seats  int    `json:"seats"`
	Active *bool  `json:"active"`
}
