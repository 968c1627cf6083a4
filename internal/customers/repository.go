package customers

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles customer database operations
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new customers repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const customerColumns = `id, name, COALESCE(orgnr, ''), COALESCE(invoice_email, '')`

// Create inserts a new customer
func (r *Repository) Create(ctx context.Context, req *CreateCustomerRequest) (*Customer, error) {
	query := `
		INSERT INTO customers (name, orgnr, invoice_email)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
		RETURNING ` + customerColumns

	var c Customer
	err := r.db.QueryRow(ctx, query, req.Name, req.OrgNr, req.InvoiceEmail).
		Scan(&c.ID, &c.Name, &c.OrgNr, &c.InvoiceEmail)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Get fetches a customer by ID
func (r *Repository) Get(ctx context.Context, id int64) (*Customer, error) {
	var c Customer
	err := r.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.OrgNr, &c.InvoiceEmail)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List lists all customers ordered by name
func (r *Repository) List(ctx context.Context) ([]*Customer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.OrgNr, &c.InvoiceEmail); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Update replaces a customer's details
func (r *Repository) Update(ctx context.Context, id int64, req *CreateCustomerRequest) (*Customer, error) {
	query := `
		UPDATE customers
		SET name = $2, orgnr = NULLIF($3, ''), invoice_email = NULLIF($4, '')
		WHERE id = $1
		RETURNING ` + customerColumns

	var c Customer
	err := r.db.QueryRow(ctx, query, id, req.Name, req.OrgNr, req.InvoiceEmail).
		Scan(&c.ID, &c.Name, &c.OrgNr, &c.InvoiceEmail)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a customer
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	return err
}
