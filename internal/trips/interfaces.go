package trips

import (
	"context"
	"time"

	"github.com/richxcame/transport-backend/internal/drivers"
	"github.com/richxcame/transport-backend/internal/locations"
	"github.com/richxcame/transport-backend/internal/pricing"
	"github.com/richxcame/transport-backend/pkg/pagination"
)

// TripStore is the persistence surface the service depends on
type TripStore interface {
	Create(ctx context.Context, t *Trip) (*Trip, error)
	CreateWithDriver(ctx context.Context, t *Trip, driverID int64, assignedBy *int64) (*Trip, error)
	Get(ctx context.Context, id int64) (*Trip, error)
	List(ctx context.Context, f ListFilters, p pagination.Params) ([]*Trip, int64, error)
	Update(ctx context.Context, id int64, t *Trip) (*Trip, error)
	Delete(ctx context.Context, id int64) error
	AssignDriver(ctx context.Context, tripID, driverID int64, assignedBy *int64) error
	Unassign(ctx context.Context, tripID int64) (bool, error)
	SetInvoiced(ctx context.Context, tripID int64, invoiced bool, actor *int64) (*Trip, error)
	BulkSetInvoiced(ctx context.Context, customerID int64, from, to time.Time, invoiced bool, actor *int64) (int64, error)
}

// DriverStore verifies drivers before assignment
type DriverStore interface {
	GetActive(ctx context.Context, id int64) (*drivers.Driver, error)
}

// LocationEnsurer resolves free-text location names to rows
type LocationEnsurer interface {
	EnsureByName(ctx context.Context, name string) (*locations.Location, error)
}

// Pricer computes trip prices from the customer's plan
type Pricer interface {
	PriceForTrip(ctx context.Context, req pricing.PricingRequest) (int, error)
	HasPlan(ctx context.Context, customerID int64) (bool, error)
}
