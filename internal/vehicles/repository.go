package vehicles

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles vehicle database operations
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new vehicles repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const vehicleColumns = `id, name, vehicle_type, reg_no, seats, active`

// Create inserts a new vehicle
func (r *Repository) Create(ctx context.Context, req *CreateVehicleRequest) (*Vehicle, error) {
	seats := req.Seats
	if seats <= 0 {
		seats = 8
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	query := `
		INSERT INTO vehicles (name, vehicle_type, reg_no, seats, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + vehicleColumns

	var v Vehicle
	err := r.db.QueryRow(ctx, query, req.Name, req.Type, req.RegNo, seats, active).
		Scan(&v.ID, &v.Name, &v.Type, &v.RegNo, &v.Seats, &v.Active)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Get fetches a vehicle by ID
func (r *Repository) Get(ctx context.Context, id int64) (*Vehicle, error) {
	var v Vehicle
	err := r.db.QueryRow(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id).
		Scan(&v.ID, &v.Name, &v.Type, &v.RegNo, &v.Seats, &v.Active)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// List lists all vehicles ordered by name
func (r *Repository) List(ctx context.Context) ([]*Vehicle, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Vehicle
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Type, &v.RegNo, &v.Seats, &v.Active); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

// Update replaces a vehicle's details
func (r *Repository) Update(ctx context.Context, id int64, req *CreateVehicleRequest) (*Vehicle, error) {
	seats := req.Seats
	if seats <= 0 {
		seats = 8
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	query := `
		UPDATE vehicles
		SET name = $2, vehicle_type = $3, reg_no = $4, seats = $5, active = $6
		WHERE id = $1
		RETURNING ` + vehicleColumns

	var v Vehicle
	err := r.db.QueryRow(ctx, query, id, req.Name, req.Type, req.RegNo, seats, active).
		Scan(&v.ID, &v.Name, &v.Type, &v.RegNo, &v.Seats, &v.Active)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Delete removes a vehicle
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	return err
}
