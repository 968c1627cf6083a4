package trips

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/richxcame/transport-backend/internal/drivers"
	"github.com/richxcame/transport-backend/internal/locations"
	"github.com/richxcame/transport-backend/internal/pricing"
	"github.com/richxcame/transport-backend/pkg/common"
	"github.com/richxcame/transport-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory TripStore that keeps the assignment and the trip
// status in lockstep, like the real transactions do.
type memStore struct {
	nextID      int64
	trips       map[int64]*Trip
	assignments map[int64]int64 // trip ID -> driver ID
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, trips: map[int64]*Trip{}, assignments: map[int64]int64{}}
}

func (m *memStore) Create(ctx context.Context, t *Trip) (*Trip, error) {
	cp := *t
	cp.ID = m.nextID
	m.nextID++
	cp.CreatedAt = time.Now()
	m.trips[cp.ID] = &cp
	return m.Get(ctx, cp.ID)
}

func (m *memStore) CreateWithDriver(ctx context.Context, t *Trip, driverID int64, assignedBy *int64) (*Trip, error) {
	created, err := m.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	if err := m.AssignDriver(ctx, created.ID, driverID, assignedBy); err != nil {
		return nil, err
	}
	return m.Get(ctx, created.ID)
}

func (m *memStore) Get(ctx context.Context, id int64) (*Trip, error) {
	t, ok := m.trips[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *t
	if driverID, ok := m.assignments[id]; ok {
		cp.CurrentDriver = &AssignedDriver{ID: driverID, Name: "driver"}
	} else {
		cp.CurrentDriver = nil
	}
	return &cp, nil
}

func (m *memStore) List(ctx context.Context, f ListFilters, p pagination.Params) ([]*Trip, int64, error) {
	var out []*Trip
	for id := range m.trips {
		t, _ := m.Get(ctx, id)
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (m *memStore) Update(ctx context.Context, id int64, t *Trip) (*Trip, error) {
	if _, ok := m.trips[id]; !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *t
	cp.ID = id
	m.trips[id] = &cp
	return m.Get(ctx, id)
}

func (m *memStore) Delete(ctx context.Context, id int64) error {
	delete(m.trips, id)
	delete(m.assignments, id)
	return nil
}

func (m *memStore) AssignDriver(ctx context.Context, tripID, driverID int64, assignedBy *int64) error {
	t, ok := m.trips[tripID]
	if !ok {
		return pgx.ErrNoRows
	}
	m.assignments[tripID] = driverID
	if t.Status == StatusUnassigned {
		t.Status = StatusAssigned
	}
	return nil
}

func (m *memStore) Unassign(ctx context.Context, tripID int64) (bool, error) {
	if _, ok := m.assignments[tripID]; !ok {
		return false, nil
	}
	delete(m.assignments, tripID)
	if t := m.trips[tripID]; t.Status == StatusAssigned {
		t.Status = StatusUnassigned
	}
	return true, nil
}

func (m *memStore) SetInvoiced(ctx context.Context, tripID int64, invoiced bool, actor *int64) (*Trip, error) {
	t, ok := m.trips[tripID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	t.Invoiced = invoiced
	if invoiced {
		ts := time.Now()
		t.InvoicedAt = &ts
		t.InvoicedBy = actor
	} else {
		t.InvoicedAt = nil
		t.InvoicedBy = nil
	}
	return m.Get(ctx, tripID)
}

func (m *memStore) BulkSetInvoiced(ctx context.Context, customerID int64, from, to time.Time, invoiced bool, actor *int64) (int64, error) {
	var count int64
	for _, t := range m.trips {
		if t.CustomerID == nil || *t.CustomerID != customerID {
			continue
		}
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		if t.Invoiced == invoiced {
			continue
		}
		t.Invoiced = invoiced
		count++
	}
	return count, nil
}

type mockDrivers struct {
	active   map[int64]bool
	verified []int64
}

func (m *mockDrivers) GetActive(ctx context.Context, id int64) (*drivers.Driver, error) {
	m.verified = append(m.verified, id)
	active, ok := m.active[id]
	if !ok {
		return nil, common.NewNotFoundError("driver not found", nil)
	}
	if !active {
		return nil, common.NewConflictError("driver is not active", nil)
	}
	return &drivers.Driver{ID: id, Name: "driver", Active: true}, nil
}

type mockLocations struct {
	nextID  int64
	created map[string]int64
}

func newMockLocations() *mockLocations {
	return &mockLocations{nextID: 100, created: map[string]int64{}}
}

func (m *mockLocations) EnsureByName(ctx context.Context, name string) (*locations.Location, error) {
	if id, ok := m.created[name]; ok {
		return &locations.Location{ID: id, Name: name}, nil
	}
	m.nextID++
	m.created[name] = m.nextID
	return &locations.Location{ID: m.nextID, Name: name}, nil
}

type mockPricer struct {
	hasPlan bool
	price   int
	called  bool
}

func (m *mockPricer) PriceForTrip(ctx context.Context, req pricing.PricingRequest) (int, error) {
	m.called = true
	return m.price, nil
}

func (m *mockPricer) HasPlan(ctx context.Context, customerID int64) (bool, error) {
	return m.hasPlan, nil
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func baseRequest() *CreateTripRequest {
	return &CreateTripRequest{
		Date:                  "2025-06-01",
		StartTime:             "08:30",
		OriginLocationID:      int64Ptr(1),
		DestinationLocationID: int64Ptr(2),
		CustomerID:            int64Ptr(10),
		Pax:                   3,
		Price:                 intPtr(1200),
	}
}

func newTestService(store TripStore, d *mockDrivers, p *mockPricer) *Service {
	if d == nil {
		d = &mockDrivers{active: map[int64]bool{}}
	}
	if p == nil {
		p = &mockPricer{}
	}
	return NewService(store, d, newMockLocations(), p)
}

func TestCreate_Basic(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil, nil)

	trip, err := svc.Create(context.Background(), baseRequest(), nil)
	require.NoError(t, err)

	assert.Equal(t, StatusUnassigned, trip.Status)
	assert.Nil(t, trip.CurrentDriver)
	assert.Equal(t, 1200, *trip.Price)
	assert.Equal(t, 30, trip.DurationMin)
}

func TestCreate_WithDriverAssigns(t *testing.T) {
	store := newMemStore()
	d := &mockDrivers{active: map[int64]bool{5: true}}
	svc := newTestService(store, d, nil)

	req := baseRequest()
	req.DriverID = int64Ptr(5)

	trip, err := svc.Create(context.Background(), req, int64Ptr(99))
	require.NoError(t, err)

	assert.Equal(t, StatusAssigned, trip.Status)
	require.NotNil(t, trip.CurrentDriver)
	assert.Equal(t, int64(5), trip.CurrentDriver.ID)
}

func TestCreate_InactiveDriverPersistsNothing(t *testing.T) {
	store := newMemStore()
	d := &mockDrivers{active: map[int64]bool{5: false}}
	svc := newTestService(store, d, nil)

	req := baseRequest()
	req.DriverID = int64Ptr(5)

	_, err := svc.Create(context.Background(), req, nil)
	require.Error(t, err)
	assert.Empty(t, store.trips)
}

func TestCreate_MissingDriverPersistsNothing(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &mockDrivers{active: map[int64]bool{}}, nil)

	req := baseRequest()
	req.DriverID = int64Ptr(42)

	_, err := svc.Create(context.Background(), req, nil)
	require.Error(t, err)
	assert.Empty(t, store.trips)
}

func TestCreate_SmartLocations(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil, nil)

	req := baseRequest()
	req.OriginLocationID = nil
	req.OriginName = "Sola lufthavn"
	req.Stop1Name = "Forus"

	trip, err := svc.Create(context.Background(), req, nil)
	require.NoError(t, err)
	assert.NotZero(t, trip.OriginLocationID)
	require.NotNil(t, trip.Stop1LocationID)
	assert.NotEqual(t, trip.OriginLocationID, *trip.Stop1LocationID)
}

func TestCreate_OriginRequired(t *testing.T) {
	svc := newTestService(newMemStore(), nil, nil)

	req := baseRequest()
	req.OriginLocationID = nil

	_, err := svc.Create(context.Background(), req, nil)
	require.Error(t, err)
	appErr, ok := err.(*common.AppError)
	require.True(t, ok)
	assert.Equal(t, "origin", appErr.Field)
}

func TestCreate_PriceComputedFromPlan(t *testing.T) {
	p := &mockPricer{hasPlan: true, price: 1650}
	svc := newTestService(newMemStore(), nil, p)

	req := baseRequest()
	req.Price = nil

	trip, err := svc.Create(context.Background(), req, nil)
	require.NoError(t, err)
	assert.True(t, p.called)
	assert.Equal(t, 1650, *trip.Price)
}

func TestCreate_PriceRequiredWithoutPlan(t *testing.T) {
	svc := newTestService(newMemStore(), nil, &mockPricer{hasPlan: false})

	req := baseRequest()
	req.Price = nil

	_, err := svc.Create(context.Background(), req, nil)
	require.Error(t, err)
	appErr, ok := err.(*common.AppError)
	require.True(t, ok)
	assert.Equal(t, "price", appErr.Field)
}

func TestCreate_CustomerRequiredWithoutPrice(t *testing.T) {
	svc := newTestService(newMemStore(), nil, nil)

	req := baseRequest()
	req.Price = nil
	req.CustomerID = nil

	_, err := svc.Create(context.Background(), req, nil)
	require.Error(t, err)
	appErr, ok := err.(*common.AppError)
	require.True(t, ok)
	assert.Equal(t, "customer_id", appErr.Field)
}

func TestAssignUnassign_StateMachine(t *testing.T) {
	store := newMemStore()
	d := &mockDrivers{active: map[int64]bool{5: true, 6: true}}
	svc := newTestService(store, d, nil)

	created, err := svc.Create(context.Background(), baseRequest(), nil)
	require.NoError(t, err)

	trip, err := svc.Assign(context.Background(), created.ID, 5, int64Ptr(1))
	require.NoError(t, err)
	assert.Equal(t, StatusAssigned, trip.Status)
	assert.Equal(t, int64(5), trip.CurrentDriver.ID)

	// reassignment retargets the existing link
	trip, err = svc.Assign(context.Background(), created.ID, 6, int64Ptr(1))
	require.NoError(t, err)
	assert.Equal(t, StatusAssigned, trip.Status)
	assert.Equal(t, int64(6), trip.CurrentDriver.ID)

	trip, err = svc.Unassign(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusUnassigned, trip.Status)
	assert.Nil(t, trip.CurrentDriver)

	// unassigning again is a clean no-op
	trip, err = svc.Unassign(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusUnassigned, trip.Status)
	assert.Nil(t, trip.CurrentDriver)
}

func TestUpdate_DriverSemantics(t *testing.T) {
	store := newMemStore()
	d := &mockDrivers{active: map[int64]bool{5: true, 6: true}}
	svc := newTestService(store, d, nil)

	created, err := svc.Create(context.Background(), baseRequest(), nil)
	require.NoError(t, err)
	_, err = svc.Assign(context.Background(), created.ID, 5, nil)
	require.NoError(t, err)

	update := func(raw string) *UpdateTripRequest {
		var req UpdateTripRequest
		require.NoError(t, json.Unmarshal([]byte(raw), &req))
		return &req
	}
	base := `"date":"2025-06-01","start_time":"08:30","origin_location_id":1,
		"destination_location_id":2,"customer_id":10,"pax":3,"price":1200`

	// absent driver_id leaves the assignment alone
	trip, err := svc.Update(context.Background(), created.ID, update(`{`+base+`}`), nil)
	require.NoError(t, err)
	require.NotNil(t, trip.CurrentDriver)
	assert.Equal(t, int64(5), trip.CurrentDriver.ID)

	// a new value reassigns
	trip, err = svc.Update(context.Background(), created.ID, update(`{`+base+`,"driver_id":6}`), nil)
	require.NoError(t, err)
	require.NotNil(t, trip.CurrentDriver)
	assert.Equal(t, int64(6), trip.CurrentDriver.ID)

	// explicit null unassigns
	trip, err = svc.Update(context.Background(), created.ID, update(`{`+base+`,"driver_id":null}`), nil)
	require.NoError(t, err)
	assert.Nil(t, trip.CurrentDriver)
	assert.Equal(t, StatusUnassigned, trip.Status)

	// zero also unassigns
	_, err = svc.Update(context.Background(), created.ID, update(`{`+base+`,"driver_id":6}`), nil)
	require.NoError(t, err)
	trip, err = svc.Update(context.Background(), created.ID, update(`{`+base+`,"driver_id":0}`), nil)
	require.NoError(t, err)
	assert.Nil(t, trip.CurrentDriver)
	assert.Equal(t, StatusUnassigned, trip.Status)
}

func TestUpdate_StatusDerivedFromAssignment(t *testing.T) {
	store := newMemStore()
	d := &mockDrivers{active: map[int64]bool{5: true}}
	svc := newTestService(store, d, nil)

	created, err := svc.Create(context.Background(), baseRequest(), nil)
	require.NoError(t, err)

	update := func(raw string) *UpdateTripRequest {
		var req UpdateTripRequest
		require.NoError(t, json.Unmarshal([]byte(raw), &req))
		return &req
	}
	base := `"date":"2025-06-01","start_time":"08:30","origin_location_id":1,
		"destination_location_id":2,"customer_id":10,"pax":3,"price":1200`

	// asking for assigned without a driver cannot fabricate an assignment
	trip, err := svc.Update(context.Background(), created.ID, update(`{`+base+`,"status":"assigned"}`), nil)
	require.NoError(t, err)
	assert.Equal(t, StatusUnassigned, trip.Status)
	assert.Nil(t, trip.CurrentDriver)
	assert.Empty(t, store.assignments)

	// asking for unassigned while a driver is linked keeps the link
	_, err = svc.Assign(context.Background(), created.ID, 5, nil)
	require.NoError(t, err)
	trip, err = svc.Update(context.Background(), created.ID, update(`{`+base+`,"status":"unassigned"}`), nil)
	require.NoError(t, err)
	assert.Equal(t, StatusAssigned, trip.Status)
	require.NotNil(t, trip.CurrentDriver)

	// exception is the one client-settable override
	trip, err = svc.Update(context.Background(), created.ID, update(`{`+base+`,"status":"exception"}`), nil)
	require.NoError(t, err)
	assert.Equal(t, StatusException, trip.Status)
	require.NotNil(t, trip.CurrentDriver)

	// clearing the override derives again from the link
	trip, err = svc.Update(context.Background(), created.ID, update(`{`+base+`,"status":"assigned"}`), nil)
	require.NoError(t, err)
	assert.Equal(t, StatusAssigned, trip.Status)

	// unknown values are rejected
	_, err = svc.Update(context.Background(), created.ID, update(`{`+base+`,"status":"done"}`), nil)
	require.Error(t, err)
	appErr, ok := err.(*common.AppError)
	require.True(t, ok)
	assert.Equal(t, "status", appErr.Field)
}

func TestUpdate_IneligibleDriverPersistsNothing(t *testing.T) {
	store := newMemStore()
	d := &mockDrivers{active: map[int64]bool{5: false}}
	svc := newTestService(store, d, nil)

	created, err := svc.Create(context.Background(), baseRequest(), nil)
	require.NoError(t, err)

	var req UpdateTripRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"date":"2025-06-02","start_time":"09:00","origin_location_id":1,
		"destination_location_id":2,"customer_id":10,"pax":7,"price":1200,
		"driver_id":5
	}`), &req))

	_, err = svc.Update(context.Background(), created.ID, &req, nil)
	require.Error(t, err)

	// the failed update left the row untouched
	trip, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", trip.Date.Format("2006-01-02"))
	assert.Equal(t, 3, trip.Pax)
	assert.Nil(t, trip.CurrentDriver)
}

func TestAssign_ExceptionStatusKept(t *testing.T) {
	store := newMemStore()
	d := &mockDrivers{active: map[int64]bool{5: true}}
	svc := newTestService(store, d, nil)

	created, err := svc.Create(context.Background(), baseRequest(), nil)
	require.NoError(t, err)
	store.trips[created.ID].Status = StatusException

	trip, err := svc.Assign(context.Background(), created.ID, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusException, trip.Status)
	require.NotNil(t, trip.CurrentDriver)
	assert.Equal(t, int64(5), trip.CurrentDriver.ID)
}

func TestSetInvoiced(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil, nil)

	created, err := svc.Create(context.Background(), baseRequest(), nil)
	require.NoError(t, err)

	trip, err := svc.SetInvoiced(context.Background(), created.ID, true, int64Ptr(42))
	require.NoError(t, err)
	assert.True(t, trip.Invoiced)
	assert.NotNil(t, trip.InvoicedAt)
	assert.Equal(t, int64(42), *trip.InvoicedBy)

	trip, err = svc.SetInvoiced(context.Background(), created.ID, false, int64Ptr(42))
	require.NoError(t, err)
	assert.False(t, trip.Invoiced)
	assert.Nil(t, trip.InvoicedAt)
	assert.Nil(t, trip.InvoicedBy)
}

func TestBulkInvoice_Idempotent(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil, nil)

	for _, day := range []string{"2025-06-01", "2025-06-15", "2025-07-01"} {
		req := baseRequest()
		req.Date = day
		_, err := svc.Create(context.Background(), req, nil)
		require.NoError(t, err)
	}

	count, err := svc.BulkInvoice(context.Background(), 10, "2025-06", true, int64Ptr(1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// second run touches nothing
	count, err = svc.BulkInvoice(context.Background(), 10, "2025-06", true, int64Ptr(1))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestBulkInvoice_MalformedMonth(t *testing.T) {
	svc := newTestService(newMemStore(), nil, nil)

	for _, month := range []string{"2025", "2025-13", "June 2025", ""} {
		_, err := svc.BulkInvoice(context.Background(), 10, month, true, nil)
		require.Error(t, err, "month %q", month)
		appErr, ok := err.(*common.AppError)
		require.True(t, ok)
		assert.Equal(t, "month", appErr.Field)
	}
}

func TestOptionalID_Unmarshal(t *testing.T) {
	var req UpdateTripRequest
	require.NoError(t, json.Unmarshal([]byte(`{"date":"x","start_time":"y"}`), &req))
	assert.False(t, req.DriverID.Set)

	require.NoError(t, json.Unmarshal([]byte(`{"date":"x","start_time":"y","driver_id":null}`), &req))
	assert.True(t, req.DriverID.Set)
	assert.Nil(t, req.DriverID.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"date":"x","start_time":"y","driver_id":0}`), &req))
	assert.True(t, req.DriverID.Set)
	assert.Nil(t, req.DriverID.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"date":"x","start_time":"y","driver_id":7}`), &req))
	assert.True(t, req.DriverID.Set)
	require.NotNil(t, req.DriverID.Value)
	assert.Equal(t, int64(7), *req.DriverID.Value)
}
