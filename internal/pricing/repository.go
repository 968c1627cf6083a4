package pricing

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles price plan database operations
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new pricing repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const planColumns = `id, name, base_price, base_pax_included, extra_pax_price,
	night_start::text, night_end::text, night_surcharge, holiday_surcharge,
	stop1_surcharge, stop2_surcharge, active`

func scanPlan(row pgx.Row) (*PricePlan, error) {
	var p PricePlan
	err := row.Scan(
		&p.ID, &p.Name, &p.BasePrice, &p.BasePaxIncluded, &p.ExtraPaxPrice,
		&p.NightStart, &p.NightEnd, &p.NightSurcharge, &p.HolidaySurcharge,
		&p.Stop1Surcharge, &p.Stop2Surcharge, &p.Active,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePlan inserts a new price plan
func (r *Repository) CreatePlan(ctx context.Context, req *CreatePlanRequest) (*PricePlan, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	query := `
		INSERT INTO price_plans (
			name, base_price, base_pax_included, extra_pax_price,
			night_start, night_end, night_surcharge, holiday_surcharge,
			stop1_surcharge, stop2_surcharge, active
		) VALUES ($1, $2, $3, $4, $5::time, $6::time, $7, $8, $9, $10, $11)
		RETURNING ` + planColumns

	return scanPlan(r.db.QueryRow(ctx, query,
		req.Name, req.BasePrice, req.BasePaxIncluded, req.ExtraPaxPrice,
		req.NightStart, req.NightEnd, req.NightSurcharge, req.HolidaySurcharge,
		req.Stop1Surcharge, req.Stop2Surcharge, active,
	))
}

// GetPlan gets a price plan by ID
func (r *Repository) GetPlan(ctx context.Context, id int64) (*PricePlan, error) {
	return scanPlan(r.db.QueryRow(ctx,
		`SELECT `+planColumns+` FROM price_plans WHERE id = $1`, id))
}

// ListPlans lists all price plans ordered by name
func (r *Repository) ListPlans(ctx context.Context) ([]*PricePlan, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+planColumns+` FROM price_plans ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*PricePlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// UpdatePlan updates a price plan
func (r *Repository) UpdatePlan(ctx context.Context, id int64, req *CreatePlanRequest) (*PricePlan, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	query := `
		UPDATE price_plans SET
			name = $2, base_price = $3, base_pax_included = $4, extra_pax_price = $5,
			night_start = $6::time, night_end = $7::time, night_surcharge = $8,
			holiday_surcharge = $9, stop1_surcharge = $10, stop2_surcharge = $11, active = $12
		WHERE id = $1
		RETURNING ` + planColumns

	return scanPlan(r.db.QueryRow(ctx, query, id,
		req.Name, req.BasePrice, req.BasePaxIncluded, req.ExtraPaxPrice,
		req.NightStart, req.NightEnd, req.NightSurcharge, req.HolidaySurcharge,
		req.Stop1Surcharge, req.Stop2Surcharge, active,
	))
}

// DeletePlan deletes a price plan
func (r *Repository) DeletePlan(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM price_plans WHERE id = $1`, id)
	return err
}

// CreateLink links a customer to a plan, replacing any existing link
func (r *Repository) CreateLink(ctx context.Context, req *LinkRequest) (*CustomerPricePlan, error) {
	query := `
		INSERT INTO customer_price_plans (customer_id, price_plan_id)
		VALUES ($1, $2)
		ON CONFLICT (customer_id) DO UPDATE SET price_plan_id = EXCLUDED.price_plan_id
		RETURNING id, customer_id, price_plan_id`

	var link CustomerPricePlan
	err := r.db.QueryRow(ctx, query, req.CustomerID, req.PricePlanID).
		Scan(&link.ID, &link.CustomerID, &link.PricePlanID)
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// ListLinks lists all customer plan links
func (r *Repository) ListLinks(ctx context.Context) ([]*CustomerPricePlan, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, customer_id, price_plan_id FROM customer_price_plans ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*CustomerPricePlan
	for rows.Next() {
		var link CustomerPricePlan
		if err := rows.Scan(&link.ID, &link.CustomerID, &link.PricePlanID); err != nil {
			return nil, err
		}
		links = append(links, &link)
	}
	return links, rows.Err()
}

// DeleteLink deletes a customer plan link
func (r *Repository) DeleteLink(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM customer_price_plans WHERE id = $1`, id)
	return err
}

// GetActivePlanForCustomer returns the customer's plan if linked and active,
// or nil when the customer has no applicable plan.
func (r *Repository) GetActivePlanForCustomer(ctx context.Context, customerID int64) (*PricePlan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM price_plans p
		JOIN customer_price_plans l ON l.price_plan_id = p.id
		WHERE l.customer_id = $1 AND p.active`

	plan, err := scanPlan(r.db.QueryRow(ctx, query, customerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// HasLink reports whether the customer has any plan link (active or not)
func (r *Repository) HasLink(ctx context.Context, customerID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM customer_price_plans WHERE customer_id = $1)`,
		customerID).Scan(&exists)
	return exists, err
}
