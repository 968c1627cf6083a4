package pricing

import (
	"context"

	"github.com/richxcame/transport-backend/pkg/common"
	"github.com/richxcame/transport-backend/pkg/logger"
	"go.uber.org/zap"
)

// Service resolves a customer's plan and prices trips
type Service struct {
	plans    PlanStore
	holidays HolidayChecker
}

// NewService creates a new pricing service
func NewService(plans PlanStore, holidays HolidayChecker) *Service {
	return &Service{plans: plans, holidays: holidays}
}

// PriceForTrip computes the price for a trip. The customer's active plan is
// used when linked; otherwise the hard-coded default plan applies.
func (s *Service) PriceForTrip(ctx context.Context, req PricingRequest) (int, error) {
	plan := DefaultPlan
	if req.CustomerID != nil {
		resolved, err := s.plans.GetActivePlanForCustomer(ctx, *req.CustomerID)
		if err != nil {
			return 0, common.NewInternalServerError("failed to resolve price plan")
		}
		if resolved != nil {
			plan = *resolved
		}
	}

	isHoliday, err := s.holidays.Exists(ctx, req.Trip.Date)
	if err != nil {
		logger.WithContext(ctx).Warn("holiday lookup failed, pricing without holiday surcharge",
			zap.Time("date", req.Trip.Date),
			zap.Error(err))
		isHoliday = false
	}

	return Price(req.Trip, plan, isHoliday), nil
}

// HasPlan reports whether the customer has a plan link at all. Callers use it
// to decide whether an omitted price is acceptable.
func (s *Service) HasPlan(ctx context.Context, customerID int64) (bool, error) {
	has, err := s.plans.HasLink(ctx, customerID)
	if err != nil {
		return false, common.NewInternalServerError("failed to check price plan link")
	}
	return has, nil
}
