package pricing

import (
	"context"
	"time"
)

// PlanStore resolves price plans for the pricing service
type PlanStore interface {
	GetActivePlanForCustomer(ctx context.Context, customerID int64) (*PricePlan, error)
	HasLink(ctx context.Context, customerID int64) (bool, error)
}

// HolidayChecker reports whether a date is a registered holiday
type HolidayChecker interface {
	Exists(ctx context.Context, date time.Time) (bool, error)
}
