package trips

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jinzhu/now"
	"github.com/richxcame/transport-backend/internal/pricing"
	"github.com/richxcame/transport-backend/pkg/common"
	"github.com/richxcame/transport-backend/pkg/logger"
	"github.com/richxcame/transport-backend/pkg/pagination"
	"go.uber.org/zap"
)

// Service implements trip business logic: smart locations, pricing rules
// and the assignment state machine.
type Service struct {
	repo      TripStore
	drivers   DriverStore
	locations LocationEnsurer
	pricer    Pricer
}

// NewService creates a new trips service
func NewService(repo TripStore, drivers DriverStore, locations LocationEnsurer, pricer Pricer) *Service {
	return &Service{repo: repo, drivers: drivers, locations: locations, pricer: pricer}
}

// resolveLocation returns the referenced location ID, creating one from the
// free-text name when no ID is given
func (s *Service) resolveLocation(ctx context.Context, id *int64, name, field string, required bool) (*int64, error) {
	if id != nil {
		return id, nil
	}
	if name != "" {
		loc, err := s.locations.EnsureByName(ctx, name)
		if err != nil {
			return nil, err
		}
		return &loc.ID, nil
	}
	if required {
		return nil, common.NewBadRequestError(field+" is required", nil).WithField(field)
	}
	return nil, nil
}

// resolvePrice applies the pricing rules: an explicit price wins; otherwise
// a customer with a plan link gets an engine price, anything else is an error
func (s *Service) resolvePrice(ctx context.Context, explicit *int, customerID *int64, in pricing.TripInput) (*int, error) {
	if explicit != nil {
		return explicit, nil
	}
	if customerID == nil {
		return nil, common.NewBadRequestError("customer is required when price is not set", nil).WithField("customer_id")
	}
	has, err := s.pricer.HasPlan(ctx, *customerID)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, common.NewBadRequestError("price is required when the customer has no price plan", nil).WithField("price")
	}
	price, err := s.pricer.PriceForTrip(ctx, pricing.PricingRequest{CustomerID: customerID, Trip: in})
	if err != nil {
		return nil, err
	}
	return &price, nil
}

func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, common.NewBadRequestError("date must be YYYY-MM-DD", err).WithField("date")
	}
	return d, nil
}

func validateStartTime(raw string) error {
	if _, err := time.Parse("15:04", raw); err != nil {
		return common.NewBadRequestError("start_time must be HH:MM", err).WithField("start_time")
	}
	return nil
}

// Create creates a trip, optionally assigning a driver in the same
// transaction. Nothing is persisted when the driver check fails.
func (s *Service) Create(ctx context.Context, req *CreateTripRequest, actor *int64) (*Trip, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err := validateStartTime(req.StartTime); err != nil {
		return nil, err
	}

	origin, err := s.resolveLocation(ctx, req.OriginLocationID, req.OriginName, "origin", true)
	if err != nil {
		return nil, err
	}
	destination, err := s.resolveLocation(ctx, req.DestinationLocationID, req.DestinationName, "destination", true)
	if err != nil {
		return nil, err
	}
	stop1, err := s.resolveLocation(ctx, req.Stop1LocationID, req.Stop1Name, "stop1", false)
	if err != nil {
		return nil, err
	}
	stop2, err := s.resolveLocation(ctx, req.Stop2LocationID, req.Stop2Name, "stop2", false)
	if err != nil {
		return nil, err
	}

	pax := req.Pax
	if pax < 1 {
		pax = 1
	}
	duration := req.DurationMin
	if duration <= 0 {
		duration = 30
	}

	price, err := s.resolvePrice(ctx, req.Price, req.CustomerID, pricing.TripInput{
		Pax:       pax,
		StartTime: req.StartTime,
		Date:      date,
		HasStop1:  stop1 != nil,
		HasStop2:  stop2 != nil,
	})
	if err != nil {
		return nil, err
	}

	trip := &Trip{
		Date:                  date,
		StartTime:             req.StartTime,
		DurationMin:           duration,
		OriginLocationID:      *origin,
		DestinationLocationID: *destination,
		Stop1LocationID:       stop1,
		Stop2LocationID:       stop2,
		CustomerID:            req.CustomerID,
		Pax:                   pax,
		Price:                 price,
		Status:                StatusUnassigned,
		Comment:               req.Comment,
		ExceptionNote:         req.ExceptionNote,
		VehicleID:             req.VehicleID,
		FlightNumber:          req.FlightNumber,
		PONumber:              req.PONumber,
	}

	if req.DriverID != nil {
		if _, err := s.drivers.GetActive(ctx, *req.DriverID); err != nil {
			return nil, err
		}
		return s.repo.CreateWithDriver(ctx, trip, *req.DriverID, actor)
	}
	return s.repo.Create(ctx, trip)
}

// Get fetches a trip by ID
func (s *Service) Get(ctx context.Context, id int64) (*Trip, error) {
	trip, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("trip not found", err)
		}
		return nil, err
	}
	return trip, nil
}

// List lists trips matching the filters
func (s *Service) List(ctx context.Context, f ListFilters, p pagination.Params) ([]*Trip, int64, error) {
	return s.repo.List(ctx, f, p)
}

// Update replaces a trip's fields and applies the driver_id semantics:
// absent keeps the assignment, null or zero unassigns, a value reassigns.
// Status only toggles the exception override; assigned and unassigned are
// derived from whether an assignment exists after the driver change.
func (s *Service) Update(ctx context.Context, id int64, req *UpdateTripRequest, actor *int64) (*Trip, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err := validateStartTime(req.StartTime); err != nil {
		return nil, err
	}

	origin, err := s.resolveLocation(ctx, req.OriginLocationID, req.OriginName, "origin", true)
	if err != nil {
		return nil, err
	}
	destination, err := s.resolveLocation(ctx, req.DestinationLocationID, req.DestinationName, "destination", true)
	if err != nil {
		return nil, err
	}
	stop1, err := s.resolveLocation(ctx, req.Stop1LocationID, req.Stop1Name, "stop1", false)
	if err != nil {
		return nil, err
	}
	stop2, err := s.resolveLocation(ctx, req.Stop2LocationID, req.Stop2Name, "stop2", false)
	if err != nil {
		return nil, err
	}

	pax := req.Pax
	if pax < 1 {
		pax = 1
	}
	duration := req.DurationMin
	if duration <= 0 {
		duration = 30
	}

	price, err := s.resolvePrice(ctx, req.Price, req.CustomerID, pricing.TripInput{
		Pax:       pax,
		StartTime: req.StartTime,
		Date:      date,
		HasStop1:  stop1 != nil,
		HasStop2:  stop2 != nil,
	})
	if err != nil {
		return nil, err
	}

	// nothing is persisted when the driver check fails
	if req.DriverID.Set && req.DriverID.Value != nil {
		if _, err := s.drivers.GetActive(ctx, *req.DriverID.Value); err != nil {
			return nil, err
		}
	}

	hasDriver := existing.CurrentDriver != nil
	if req.DriverID.Set {
		hasDriver = req.DriverID.Value != nil
	}

	status := existing.Status
	switch req.Status {
	case "":
	case StatusException:
		status = StatusException
	case StatusAssigned, StatusUnassigned:
		// derived from assignment presence; sending either clears a
		// manual exception
		if hasDriver {
			status = StatusAssigned
		} else {
			status = StatusUnassigned
		}
	default:
		return nil, common.NewBadRequestError("invalid status", nil).WithField("status")
	}

	trip := &Trip{
		Date:                  date,
		StartTime:             req.StartTime,
		DurationMin:           duration,
		OriginLocationID:      *origin,
		DestinationLocationID: *destination,
		Stop1LocationID:       stop1,
		Stop2LocationID:       stop2,
		CustomerID:            req.CustomerID,
		Pax:                   pax,
		Price:                 price,
		Status:                status,
		Comment:               req.Comment,
		ExceptionNote:         req.ExceptionNote,
		VehicleID:             req.VehicleID,
		FlightNumber:          req.FlightNumber,
		PONumber:              req.PONumber,
	}

	if _, err := s.repo.Update(ctx, id, trip); err != nil {
		return nil, err
	}

	if req.DriverID.Set {
		if req.DriverID.Value == nil {
			if _, err := s.repo.Unassign(ctx, id); err != nil {
				return nil, err
			}
		} else if err := s.repo.AssignDriver(ctx, id, *req.DriverID.Value, actor); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, id)
}

// Delete removes a trip
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Assign links a driver to a trip. The driver must exist and be active.
func (s *Service) Assign(ctx context.Context, tripID, driverID int64, actor *int64) (*Trip, error) {
	if _, err := s.Get(ctx, tripID); err != nil {
		return nil, err
	}
	if _, err := s.drivers.GetActive(ctx, driverID); err != nil {
		return nil, err
	}
	if err := s.repo.AssignDriver(ctx, tripID, driverID, actor); err != nil {
		return nil, err
	}
	return s.Get(ctx, tripID)
}

// Unassign removes a trip's driver. Succeeds as a no-op when unassigned.
func (s *Service) Unassign(ctx context.Context, tripID int64) (*Trip, error) {
	if _, err := s.Get(ctx, tripID); err != nil {
		return nil, err
	}
	removed, err := s.repo.Unassign(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !removed {
		logger.WithContext(ctx).Debug("unassign on trip without assignment", zap.Int64("trip_id", tripID))
	}
	return s.Get(ctx, tripID)
}

// SetInvoiced stamps or clears the invoiced marker on one trip
func (s *Service) SetInvoiced(ctx context.Context, tripID int64, invoiced bool, actor *int64) (*Trip, error) {
	trip, err := s.repo.SetInvoiced(ctx, tripID, invoiced, actor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("trip not found", err)
		}
		return nil, err
	}
	return trip, nil
}

// BulkInvoice flips the invoiced flag for all of a customer's trips in one
// calendar month. Already-matching rows are untouched, making the call
// idempotent.
func (s *Service) BulkInvoice(ctx context.Context, customerID int64, month string, invoiced bool, actor *int64) (int64, error) {
	from, to, err := MonthWindow(month)
	if err != nil {
		return 0, err
	}
	return s.repo.BulkSetInvoiced(ctx, customerID, from, to, invoiced, actor)
}

// MonthWindow resolves a YYYY-MM filter into inclusive date bounds
func MonthWindow(month string) (time.Time, time.Time, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, common.NewBadRequestError("month must be YYYY-MM", err).WithField("month")
	}
	window := now.With(t)
	return window.BeginningOfMonth(), window.EndOfMonth(), nil
}
