package trips

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/richxcame/transport-backend/pkg/pagination"
)

// Repository handles trip and assignment database operations
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new trips repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const tripColumns = `t.id, t.date, to_char(t.start_time, 'HH24:MI'), t.duration_min,
	t.origin_location_id, t.destination_location_id, t.stop1_location_id, t.stop2_location_id,
	t.customer_id, t.pax, t.price, t.status, COALESCE(t.comment, ''), COALESCE(t.exception_note, ''),
	t.vehicle_id, COALESCE(t.flight_number, ''), COALESCE(t.po_number, ''),
	t.invoiced, t.invoiced_at, t.invoiced_by, t.created_at, d.id, d.name`

const tripFrom = ` FROM trips t
	LEFT JOIN assignments a ON a.trip_id = t.id
	LEFT JOIN drivers d ON d.id = a.driver_id`

func scanTrip(row interface{ Scan(...any) error }) (*Trip, error) {
	var t Trip
	var driverID *int64
	var driverName *string
	err := row.Scan(
		&t.ID, &t.Date, &t.StartTime, &t.DurationMin,
		&t.OriginLocationID, &t.DestinationLocationID, &t.Stop1LocationID, &t.Stop2LocationID,
		&t.CustomerID, &t.Pax, &t.Price, &t.Status, &t.Comment, &t.ExceptionNote,
		&t.VehicleID, &t.FlightNumber, &t.PONumber,
		&t.Invoiced, &t.InvoicedAt, &t.InvoicedBy, &t.CreatedAt, &driverID, &driverName,
	)
	if err != nil {
		return nil, err
	}
	if driverID != nil {
		t.CurrentDriver = &AssignedDriver{ID: *driverID, Name: *driverName}
	}
	return &t, nil
}

func insertTrip(ctx context.Context, q querier, t *Trip) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO trips (date, start_time, duration_min,
			origin_location_id, destination_location_id, stop1_location_id, stop2_location_id,
			customer_id, pax, price, status, comment, exception_note,
			vehicle_id, flight_number, po_number)
		VALUES ($1, $2::time, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			NULLIF($12, ''), NULLIF($13, ''), $14, NULLIF($15, ''), NULLIF($16, ''))
		RETURNING id`,
		t.Date, t.StartTime, t.DurationMin,
		t.OriginLocationID, t.DestinationLocationID, t.Stop1LocationID, t.Stop2LocationID,
		t.CustomerID, t.Pax, t.Price, t.Status, t.Comment, t.ExceptionNote,
		t.VehicleID, t.FlightNumber, t.PONumber,
	).Scan(&id)
	return id, err
}

// upsertAssignment links the trip to the driver and promotes the status.
// An existing link is retargeted; an exception status is left untouched.
func upsertAssignment(ctx context.Context, q querier, tripID, driverID int64, assignedBy *int64) error {
	_, err := q.Exec(ctx, `
		INSERT INTO assignments (trip_id, driver_id, assigned_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (trip_id) DO UPDATE
		SET driver_id = EXCLUDED.driver_id, assigned_by = EXCLUDED.assigned_by, assigned_at = now()`,
		tripID, driverID, assignedBy)
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx,
		`UPDATE trips SET status = 'assigned' WHERE id = $1 AND status = 'unassigned'`, tripID)
	return err
}

// Create inserts an unassigned trip
func (r *Repository) Create(ctx context.Context, t *Trip) (*Trip, error) {
	id, err := insertTrip(ctx, r.db, t)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// CreateWithDriver inserts a trip and its assignment in one transaction
func (r *Repository) CreateWithDriver(ctx context.Context, t *Trip, driverID int64, assignedBy *int64) (*Trip, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	id, err := insertTrip(ctx, tx, t)
	if err != nil {
		return nil, err
	}
	if err := upsertAssignment(ctx, tx, id, driverID, assignedBy); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Get fetches a trip with its current driver
func (r *Repository) Get(ctx context.Context, id int64) (*Trip, error) {
	return scanTrip(r.db.QueryRow(ctx,
		`SELECT `+tripColumns+tripFrom+` WHERE t.id = $1`, id))
}

// List lists trips matching the filters, ordered by date and start time
func (r *Repository) List(ctx context.Context, f ListFilters, p pagination.Params) ([]*Trip, int64, error) {
	where := ""
	args := []any{}
	add := func(cond string, val any) {
		args = append(args, val)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, len(args))
	}

	if f.Status != "" {
		add("t.status = $%d", f.Status)
	}
	if f.Date != nil {
		add("t.date = $%d", *f.Date)
	}
	if f.DriverID != nil {
		add("a.driver_id = $%d", *f.DriverID)
	}
	if f.CustomerID != nil {
		add("t.customer_id = $%d", *f.CustomerID)
	}
	if f.MonthFrom != nil {
		add("t.date >= $%d", *f.MonthFrom)
	}
	if f.MonthTo != nil {
		add("t.date <= $%d", *f.MonthTo)
	}

	var total int64
	countQuery := `SELECT COUNT(*)` + tripFrom + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+tripColumns+tripFrom+where+
		` ORDER BY t.date, t.start_time LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, p.Limit, p.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

// Update replaces a trip's fields, leaving assignment and invoicing alone
func (r *Repository) Update(ctx context.Context, id int64, t *Trip) (*Trip, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE trips
		SET date = $2, start_time = $3::time, duration_min = $4,
			origin_location_id = $5, destination_location_id = $6,
			stop1_location_id = $7, stop2_location_id = $8,
			customer_id = $9, pax = $10, price = $11, status = $12,
			comment = NULLIF($13, ''), exception_note = NULLIF($14, ''),
			vehicle_id = $15, flight_number = NULLIF($16, ''), po_number = NULLIF($17, '')
		WHERE id = $1`,
		id, t.Date, t.StartTime, t.DurationMin,
		t.OriginLocationID, t.DestinationLocationID, t.Stop1LocationID, t.Stop2LocationID,
		t.CustomerID, t.Pax, t.Price, t.Status, t.Comment, t.ExceptionNote,
		t.VehicleID, t.FlightNumber, t.PONumber)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return r.Get(ctx, id)
}

// Delete removes a trip and its assignment via cascade
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	return err
}

// AssignDriver links the driver to the trip atomically with the status change
func (r *Repository) AssignDriver(ctx context.Context, tripID, driverID int64, assignedBy *int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := upsertAssignment(ctx, tx, tripID, driverID, assignedBy); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Unassign removes the trip's assignment. Without one this is a no-op and
// reports false.
func (r *Repository) Unassign(ctx context.Context, tripID int64) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM assignments WHERE trip_id = $1`, tripID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	_, err = tx.Exec(ctx,
		`UPDATE trips SET status = 'unassigned' WHERE id = $1 AND status = 'assigned'`, tripID)
	if err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}

// SetInvoiced stamps or clears the invoiced marker on one trip
func (r *Repository) SetInvoiced(ctx context.Context, tripID int64, invoiced bool, actor *int64) (*Trip, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE trips
		SET invoiced = $2,
			invoiced_at = CASE WHEN $2 THEN now() ELSE NULL END,
			invoiced_by = CASE WHEN $2 THEN $3 ELSE NULL END
		WHERE id = $1`,
		tripID, invoiced, actor)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return r.Get(ctx, tripID)
}

// BulkSetInvoiced flips the invoiced flag for a customer's trips in a date
// window, touching only rows whose flag differs
func (r *Repository) BulkSetInvoiced(ctx context.Context, customerID int64, from, to time.Time, invoiced bool, actor *int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE trips
		SET invoiced = $4,
			invoiced_at = CASE WHEN $4 THEN now() ELSE NULL END,
			invoiced_by = CASE WHEN $4 THEN $5 ELSE NULL END
		WHERE customer_id = $1 AND date >= $2 AND date <= $3
			AND invoiced IS DISTINCT FROM $4`,
		customerID, from, to, invoiced, actor)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
