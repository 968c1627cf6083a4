package drivers

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/richxcame/transport-backend/pkg/common"
)

// Repository handles driver and shift database operations
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new drivers repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const driverColumns = `id, name, COALESCE(phone, ''), active, user_id`

// Create inserts a new driver
func (r *Repository) Create(ctx context.Context, req *CreateDriverRequest) (*Driver, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	query := `
		INSERT INTO drivers (name, phone, active, user_id)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		RETURNING ` + driverColumns

	var d Driver
	err := r.db.QueryRow(ctx, query, req.Name, req.Phone, active, req.UserID).
		Scan(&d.ID, &d.Name, &d.Phone, &d.Active, &d.UserID)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Get fetches a driver by ID
func (r *Repository) Get(ctx context.Context, id int64) (*Driver, error) {
	var d Driver
	err := r.db.QueryRow(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Phone, &d.Active, &d.UserID)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetActive fetches a driver and verifies they are available for assignment.
// A missing driver yields not found, an inactive one a conflict.
func (r *Repository) GetActive(ctx context.Context, id int64) (*Driver, error) {
	d, err := r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("driver not found", err)
		}
		return nil, err
	}
	if !d.Active {
		return nil, common.NewConflictError("driver is not active", nil)
	}
	return d, nil
}

// List lists all drivers ordered by name
func (r *Repository) List(ctx context.Context) ([]*Driver, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+driverColumns+` FROM drivers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Driver
	for rows.Next() {
		var d Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.Active, &d.UserID); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// Update replaces a driver's details
func (r *Repository) Update(ctx context.Context, id int64, req *CreateDriverRequest) (*Driver, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	query := `
		UPDATE drivers
		SET name = $2, phone = NULLIF($3, ''), active = $4, user_id = $5
		WHERE id = $1
		RETURNING ` + driverColumns

	var d Driver
	err := r.db.QueryRow(ctx, query, id, req.Name, req.Phone, active, req.UserID).
		Scan(&d.ID, &d.Name, &d.Phone, &d.Active, &d.UserID)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Delete removes a driver
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	return err
}

const shiftColumns = `id, driver_id, start_at, end_at, status`

// CreateShift inserts a new shift for a driver
func (r *Repository) CreateShift(ctx context.Context, req *CreateShiftRequest) (*Shift, error) {
	status := req.Status
	if status == "" {
		status = "planned"
	}

	query := `
		INSERT INTO shifts (driver_id, start_at, end_at, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + shiftColumns

	var s Shift
	err := r.db.QueryRow(ctx, query, req.DriverID, req.StartAt, req.EndAt, status).
		Scan(&s.ID, &s.DriverID, &s.StartAt, &s.EndAt, &s.Status)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListShifts lists shifts, optionally filtered by driver, newest first
func (r *Repository) ListShifts(ctx context.Context, driverID *int64) ([]*Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts`
	args := []any{}
	if driverID != nil {
		query += ` WHERE driver_id = $1`
		args = append(args, *driverID)
	}
	query += ` ORDER BY start_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Shift
	for rows.Next() {
		var s Shift
		if err := rows.Scan(&s.ID, &s.DriverID, &s.StartAt, &s.EndAt, &s.Status); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// DeleteShift removes a shift
func (r *Repository) DeleteShift(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	return err
}
