package locations

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles location database operations
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new locations repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const locationColumns = `id, name, COALESCE(address, ''), lat, lon, COALESCE(tags, '')`

func scanLocation(row interface{ Scan(...any) error }) (*Location, error) {
	var l Location
	err := row.Scan(&l.ID, &l.Name, &l.Address, &l.Lat, &l.Lon, &l.Tags)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserts a new location
func (r *Repository) Create(ctx context.Context, req *CreateLocationRequest) (*Location, error) {
	query := `
		INSERT INTO locations (name, address, lat, lon, tags)
		VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''))
		RETURNING ` + locationColumns
	return scanLocation(r.db.QueryRow(ctx, query, req.Name, req.Address, req.Lat, req.Lon, req.Tags))
}

// Get fetches a location by ID
func (r *Repository) Get(ctx context.Context, id int64) (*Location, error) {
	return scanLocation(r.db.QueryRow(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = $1`, id))
}

// List lists all locations ordered by name
func (r *Repository) List(ctx context.Context) ([]*Location, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+locationColumns+` FROM locations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Search finds locations whose name contains the query, capped at 20 rows
func (r *Repository) Search(ctx context.Context, q string) ([]*Location, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+locationColumns+`
		FROM locations
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT 20`, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Update replaces a location's details
func (r *Repository) Update(ctx context.Context, id int64, req *CreateLocationRequest) (*Location, error) {
	query := `
		UPDATE locations
		SET name = $2, address = NULLIF($3, ''), lat = $4, lon = $5, tags = NULLIF($6, '')
		WHERE id = $1
		RETURNING ` + locationColumns
	return scanLocation(r.db.QueryRow(ctx, query, id, req.Name, req.Address, req.Lat, req.Lon, req.Tags))
}

// Delete removes a location
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	return err
}

// EnsureByName returns the location with the given name, creating it when
// missing. The upsert makes concurrent calls converge on a single row.
func (r *Repository) EnsureByName(ctx context.Context, name string) (*Location, error) {
	name = strings.TrimSpace(name)
	query := `
		INSERT INTO locations (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING ` + locationColumns
	return scanLocation(r.db.QueryRow(ctx, query, name))
}
