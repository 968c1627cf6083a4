package holidays

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles holiday database operations
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new holidays repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a holiday, overwriting name and country on date conflict
func (r *Repository) Create(ctx context.Context, date time.Time, name, countryCode string) (*Holiday, error) {
	query := `
		INSERT INTO holidays (date, name, country_code)
		VALUES ($1, $2, $3)
		ON CONFLICT (date) DO UPDATE SET name = EXCLUDED.name, country_code = EXCLUDED.country_code
		RETURNING id, date, name, country_code`

	var h Holiday
	err := r.db.QueryRow(ctx, query, date, name, countryCode).
		Scan(&h.ID, &h.Date, &h.Name, &h.CountryCode)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// CreateKeepName inserts a holiday but leaves an existing entry on the same
// date untouched. Returns true when a new row was created.
func (r *Repository) CreateKeepName(ctx context.Context, date time.Time, name, countryCode string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO holidays (date, name, country_code)
		VALUES ($1, $2, $3)
		ON CONFLICT (date) DO NOTHING`,
		date, name, countryCode)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// List lists all holidays ordered by date
func (r *Repository) List(ctx context.Context) ([]*Holiday, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, date, name, country_code FROM holidays ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Holiday
	for rows.Next() {
		var h Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.CountryCode); err != nil {
			return nil, err
		}
		out = append(out, &h)
	}
	return out, rows.Err()
}

// Delete removes a holiday
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	return err
}

// Exists reports whether the date is a registered holiday. Only presence
// matters; the country code is not part of the lookup.
func (r *Repository) Exists(ctx context.Context, date time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM holidays WHERE date = $1)`, date).Scan(&exists)
	return exists, err
}
