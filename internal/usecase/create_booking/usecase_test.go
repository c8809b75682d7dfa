package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/service"
	tenantRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/tenant"
	workingHoursRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/workinghours"
	"github.com/m04kA/SMC-TenantBookingService/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-TenantBookingService/pkg/logger"
	"github.com/m04kA/SMC-TenantBookingService/pkg/ptr"
	"github.com/m04kA/SMC-TenantBookingService/pkg/types"
)

// Mocks

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) LockTenantDate(ctx context.Context, tenantID int64, date time.Time) error {
	return m.Called(ctx, tenantID, date).Error(0)
}

func (m *mockBookingRepo) ListActiveByTenantAndDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type mockTenantRepo struct{ mock.Mock }

func (m *mockTenantRepo) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

type mockServiceRepo struct{ mock.Mock }

func (m *mockServiceRepo) GetByID(ctx context.Context, tenantID, id int64) (*domain.Service, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

type mockWorkingHoursRepo struct{ mock.Mock }

func (m *mockWorkingHoursRepo) GetByTenantAndWeekday(ctx context.Context, tenantID int64, weekday time.Weekday) (*domain.WorkingHours, error) {
	args := m.Called(ctx, tenantID, weekday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkingHours), args.Error(1)
}

type mockBlockedTimeRepo struct{ mock.Mock }

func (m *mockBlockedTimeRepo) ListByTenantAndDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.BlockedTime, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BlockedTime), args.Error(1)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Invalidate(ctx context.Context, tenantID int64, date time.Time) error {
	return m.Called(ctx, tenantID, date).Error(0)
}

// chanNotifier пересылает уведомления в канал, чтобы дождаться асинхронной отправки
type chanNotifier struct {
	sent chan *notificationservice.BookingNotification
}

func newChanNotifier() *chanNotifier {
	return &chanNotifier{sent: make(chan *notificationservice.BookingNotification, 16)}
}

func (n *chanNotifier) NotifyBookingCreated(_ context.Context, b *notificationservice.BookingNotification) {
	n.sent <- b
}

type countingMetrics struct {
	created   atomic.Int64
	mu        sync.Mutex
	conflicts map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{conflicts: map[string]int{}}
}

func (m *countingMetrics) BookingCreated() { m.created.Add(1) }

func (m *countingMetrics) BookingConflict(reason string) {
	m.mu.Lock()
	m.conflicts[reason]++
	m.mu.Unlock()
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// Fixture

// Понедельник 2025-06-02, "сейчас" 2025-06-02 08:00 UTC
var (
	monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	now    = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
)

type fixture struct {
	uc           *UseCase
	bookings     *mockBookingRepo
	tenants      *mockTenantRepo
	services     *mockServiceRepo
	workingHours *mockWorkingHoursRepo
	blocked      *mockBlockedTimeRepo
	cache        *mockCache
	notifier     *chanNotifier
	metrics      *countingMetrics
}

func newFixture() *fixture {
	f := &fixture{
		bookings:     new(mockBookingRepo),
		tenants:      new(mockTenantRepo),
		services:     new(mockServiceRepo),
		workingHours: new(mockWorkingHoursRepo),
		blocked:      new(mockBlockedTimeRepo),
		cache:        new(mockCache),
		notifier:     newChanNotifier(),
		metrics:      newCountingMetrics(),
	}
	f.uc = NewUseCase(f.bookings, f.tenants, f.services, f.workingHours, f.blocked,
		f.cache, f.notifier, f.metrics, inlineTx{}, 30, time.UTC, logger.Nop())
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func barbershop() *domain.Tenant {
	return &domain.Tenant{ID: 1, Slug: "salon", Name: "Salon Jana", Email: "salon@example.cz", Category: domain.CategoryBarbershop}
}

func haircut(duration int) *domain.Service {
	return &domain.Service{ID: 10, TenantID: 1, Name: "Pánský střih", DurationMinutes: duration, Price: 350, Active: true}
}

func openMonday() *domain.WorkingHours {
	return &domain.WorkingHours{TenantID: 1, Weekday: time.Monday, IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"}
}

func validRequest(start types.TimeString) *Request {
	return &Request{
		TenantID:      1,
		ServiceID:     10,
		Date:          monday,
		StartTime:     start,
		CustomerName:  " Petr Novák ",
		CustomerEmail: "petr@example.cz",
		CustomerPhone: "+420111222333",
	}
}

// expectReads настраивает чтения до транзакции
func (f *fixture) expectReads(duration int) {
	f.tenants.On("GetByID", mock.Anything, int64(1)).Return(barbershop(), nil).Once()
	f.services.On("GetByID", mock.Anything, int64(1), int64(10)).Return(haircut(duration), nil).Once()
}

// expectTx настраивает чтения внутри транзакции
func (f *fixture) expectTx(existing []*domain.Booking, blocked []*domain.BlockedTime) {
	f.bookings.On("LockTenantDate", mock.Anything, int64(1), monday).Return(nil).Once()
	f.workingHours.On("GetByTenantAndWeekday", mock.Anything, int64(1), time.Monday).Return(openMonday(), nil).Once()
	f.bookings.On("ListActiveByTenantAndDate", mock.Anything, int64(1), monday).Return(existing, nil).Once()
	f.blocked.On("ListByTenantAndDate", mock.Anything, int64(1), monday).Return(blocked, nil).Once()
}

// Tests

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture()
	f.expectReads(90)
	f.expectTx([]*domain.Booking{
		{ID: 1, Date: monday, StartTime: "09:00", EndTime: "10:00", Status: domain.StatusConfirmed},
		{ID: 2, Date: monday, StartTime: "10:00", EndTime: "12:00", Status: domain.StatusCancelled},
	}, []*domain.BlockedTime{})

	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.StartTime == "10:00" && b.EndTime == "11:30" &&
			b.Status == domain.StatusConfirmed && b.CustomerName == "Petr Novák"
	})).Return(&domain.Booking{
		ID: 42, TenantID: 1, ServiceID: 10, Date: monday, StartTime: "10:00", EndTime: "11:30",
		Status: domain.StatusConfirmed, CustomerName: "Petr Novák", CustomerEmail: "petr@example.cz",
	}, nil).Once()
	f.cache.On("Invalidate", mock.Anything, int64(1), monday).Return(nil).Once()

	resp, err := f.uc.Execute(context.Background(), validRequest("10:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, types.TimeString("11:30"), resp.EndTime)
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "Pánský střih", resp.ServiceName)

	select {
	case n := <-f.notifier.sent:
		assert.Equal(t, int64(42), n.BookingID)
		assert.Equal(t, "11:30", n.EndTime)
		assert.Equal(t, "salon@example.cz", n.TenantEmail)
	case <-time.After(time.Second):
		t.Fatal("notification was not sent")
	}

	assert.Equal(t, int64(1), f.metrics.created.Load())
	f.bookings.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}

func TestUseCase_Execute_SlotUnavailable(t *testing.T) {
	partialStart, partialEnd := types.TimeString("12:00"), types.TimeString("13:00")

	tests := []struct {
		name     string
		start    types.TimeString
		existing []*domain.Booking
		blocked  []*domain.BlockedTime
		reason   string
	}{
		{
			name:     "overlaps confirmed booking",
			start:    "10:30",
			existing: []*domain.Booking{{Date: monday, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed}},
			reason:   conflictOverlap,
		},
		{
			name:     "completed booking still occupies",
			start:    "09:30",
			existing: []*domain.Booking{{Date: monday, StartTime: "09:00", EndTime: "10:00", Status: domain.StatusCompleted}},
			reason:   conflictOverlap,
		},
		{
			name:    "partial block",
			start:   "11:30",
			blocked: []*domain.BlockedTime{{Date: monday, StartTime: &partialStart, EndTime: &partialEnd}},
			reason:  conflictBlocked,
		},
		{
			name:    "whole day block",
			start:   "15:00",
			blocked: []*domain.BlockedTime{{Date: monday}},
			reason:  conflictBlocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.expectReads(60)
			f.expectTx(tt.existing, tt.blocked)

			_, err := f.uc.Execute(context.Background(), validRequest(tt.start))
			assert.ErrorIs(t, err, ErrSlotUnavailable)
			assert.Equal(t, 1, f.metrics.conflicts[tt.reason])

			f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			f.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUseCase_Execute_AdjacentBookingsAreAllowed(t *testing.T) {
	f := newFixture()
	f.expectReads(60)
	f.expectTx([]*domain.Booking{
		{Date: monday, StartTime: "09:00", EndTime: "10:00", Status: domain.StatusConfirmed},
		{Date: monday, StartTime: "11:00", EndTime: "12:00", Status: domain.StatusConfirmed},
	}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 3, Date: monday, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed}, nil).Once()
	f.cache.On("Invalidate", mock.Anything, int64(1), monday).Return(errors.New("redis down")).Once()

	_, err := f.uc.Execute(context.Background(), validRequest("10:00"))
	require.NoError(t, err)
}

func TestUseCase_Execute_WorkingHours(t *testing.T) {
	t.Run("Closed", func(t *testing.T) {
		f := newFixture()
		f.expectReads(60)
		f.bookings.On("LockTenantDate", mock.Anything, int64(1), monday).Return(nil).Once()
		f.workingHours.On("GetByTenantAndWeekday", mock.Anything, int64(1), time.Monday).
			Return(nil, workingHoursRepo.ErrWorkingHoursNotFound).Once()

		_, err := f.uc.Execute(context.Background(), validRequest("10:00"))
		assert.ErrorIs(t, err, ErrTenantClosed)
	})

	t.Run("EndsAfterClose", func(t *testing.T) {
		f := newFixture()
		f.expectReads(90)
		f.bookings.On("LockTenantDate", mock.Anything, int64(1), monday).Return(nil).Once()
		f.workingHours.On("GetByTenantAndWeekday", mock.Anything, int64(1), time.Monday).Return(openMonday(), nil).Once()

		_, err := f.uc.Execute(context.Background(), validRequest("16:00"))
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("EndsExactlyAtClose", func(t *testing.T) {
		f := newFixture()
		f.expectReads(60)
		f.expectTx(nil, nil)
		f.bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 5, Date: monday, StartTime: "16:00", EndTime: "17:00"}, nil).Once()
		f.cache.On("Invalidate", mock.Anything, int64(1), monday).Return(nil).Once()

		_, err := f.uc.Execute(context.Background(), validRequest("16:00"))
		require.NoError(t, err)
	})

	t.Run("BeforeOpen", func(t *testing.T) {
		f := newFixture()
		f.expectReads(60)
		f.bookings.On("LockTenantDate", mock.Anything, int64(1), monday).Return(nil).Once()
		f.workingHours.On("GetByTenantAndWeekday", mock.Anything, int64(1), time.Monday).Return(openMonday(), nil).Once()

		_, err := f.uc.Execute(context.Background(), validRequest("08:30"))
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})
}

func TestUseCase_Execute_CrossesMidnight(t *testing.T) {
	f := newFixture()
	f.expectReads(90)

	_, err := f.uc.Execute(context.Background(), validRequest("23:30"))
	assert.ErrorIs(t, err, ErrCrossesMidnight)
	f.bookings.AssertNotCalled(t, "LockTenantDate", mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_Execute_SerializationFailure(t *testing.T) {
	f := newFixture()
	f.expectReads(60)
	f.expectTx(nil, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("insert: %w", &pq.Error{Code: "40001"})).Once()

	_, err := f.uc.Execute(context.Background(), validRequest("10:00"))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, 1, f.metrics.conflicts[conflictSerialization])
	assert.Equal(t, int64(0), f.metrics.created.Load())
}

func TestUseCase_Execute_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("InvalidEmail", func(t *testing.T) {
		f := newFixture()
		req := validRequest("10:00")
		req.CustomerEmail = "not-an-email"
		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("MissingName", func(t *testing.T) {
		f := newFixture()
		req := validRequest("10:00")
		req.CustomerName = "   "
		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("BadStartTime", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Execute(ctx, validRequest("25:00"))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("PastDate", func(t *testing.T) {
		f := newFixture()
		req := validRequest("10:00")
		req.Date = monday.AddDate(0, 0, -1)
		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("TooFar", func(t *testing.T) {
		f := newFixture()
		req := validRequest("10:00")
		req.Date = monday.AddDate(0, 0, 31)
		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("StartAlreadyPassedToday", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Execute(ctx, validRequest("07:30"))
		assert.ErrorIs(t, err, ErrTooLateToBook)
	})

	t.Run("TenantNotFound", func(t *testing.T) {
		f := newFixture()
		f.tenants.On("GetByID", mock.Anything, int64(1)).Return(nil, tenantRepo.ErrTenantNotFound).Once()
		_, err := f.uc.Execute(ctx, validRequest("10:00"))
		assert.ErrorIs(t, err, ErrTenantNotFound)
	})

	t.Run("BookingDataOfOtherCategory", func(t *testing.T) {
		f := newFixture()
		f.tenants.On("GetByID", mock.Anything, int64(1)).Return(barbershop(), nil).Once()
		req := validRequest("10:00")
		req.BookingData = &domain.BookingCategoryData{
			Category:   domain.CategoryRestaurant,
			Restaurant: &domain.RestaurantBookingData{TableNumber: 1, PersonCount: 2},
		}
		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidBookingData)
		f.services.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InactiveService", func(t *testing.T) {
		f := newFixture()
		f.tenants.On("GetByID", mock.Anything, int64(1)).Return(barbershop(), nil).Once()
		inactive := haircut(30)
		inactive.Active = false
		f.services.On("GetByID", mock.Anything, int64(1), int64(10)).Return(inactive, nil).Once()
		_, err := f.uc.Execute(ctx, validRequest("10:00"))
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("UnknownService", func(t *testing.T) {
		f := newFixture()
		f.tenants.On("GetByID", mock.Anything, int64(1)).Return(barbershop(), nil).Once()
		f.services.On("GetByID", mock.Anything, int64(1), int64(10)).Return(nil, serviceRepo.ErrServiceNotFound).Once()
		_, err := f.uc.Execute(ctx, validRequest("10:00"))
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("LockFailure", func(t *testing.T) {
		f := newFixture()
		f.expectReads(60)
		f.bookings.On("LockTenantDate", mock.Anything, int64(1), monday).Return(errors.New("conn reset")).Once()
		_, err := f.uc.Execute(ctx, validRequest("10:00"))
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestUseCase_Execute_BarbershopBookingData(t *testing.T) {
	f := newFixture()
	f.expectReads(30)
	f.expectTx(nil, nil)

	data := &domain.BookingCategoryData{
		Category:   domain.CategoryBarbershop,
		Barbershop: &domain.BarbershopBookingData{StylistID: "s1", StylistName: "Jana", ServiceType: "Pánský střih"},
	}
	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.BookingData == data
	})).Return(&domain.Booking{ID: 7, Date: monday, StartTime: "10:00", EndTime: "10:30", BookingData: data, Note: ptr.Ptr("bez vousů")}, nil).Once()
	f.cache.On("Invalidate", mock.Anything, int64(1), monday).Return(nil).Once()

	req := validRequest("10:00")
	req.BookingData = data
	req.Note = ptr.Ptr("bez vousů")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Jana", resp.BookingData.Barbershop.StylistName)
}

// Commit race

// memoryBookings хранилище бронирований в памяти
type memoryBookings struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	nextID   int64
}

func (m *memoryBookings) LockTenantDate(context.Context, int64, time.Time) error { return nil }

func (m *memoryBookings) ListActiveByTenantAndDate(_ context.Context, tenantID int64, date time.Time) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		if b.TenantID == tenantID && b.Date.Equal(date) && b.OccupiesCalendar() {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *memoryBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	b.ID = m.nextID
	m.bookings = append(m.bookings, b)
	return b, nil
}

// serialTx выполняет транзакции строго по одной, как advisory lock на (tenant, date)
type serialTx struct {
	mu sync.Mutex
}

func (s *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

type staticTenants struct{}

func (staticTenants) GetByID(context.Context, int64) (*domain.Tenant, error) { return barbershop(), nil }

type staticServices struct{}

func (staticServices) GetByID(context.Context, int64, int64) (*domain.Service, error) {
	return haircut(60), nil
}

type staticHours struct{}

func (staticHours) GetByTenantAndWeekday(context.Context, int64, time.Weekday) (*domain.WorkingHours, error) {
	return openMonday(), nil
}

type noBlocks struct{}

func (noBlocks) ListByTenantAndDate(context.Context, int64, time.Time) ([]*domain.BlockedTime, error) {
	return nil, nil
}

type noopCache struct{}

func (noopCache) Invalidate(context.Context, int64, time.Time) error { return nil }

type noopNotifier struct{}

func (noopNotifier) NotifyBookingCreated(context.Context, *notificationservice.BookingNotification) {}

func TestUseCase_Execute_CommitRace(t *testing.T) {
	store := &memoryBookings{}
	metrics := newCountingMetrics()
	uc := NewUseCase(store, staticTenants{}, staticServices{}, staticHours{}, noBlocks{},
		noopCache{}, noopNotifier{}, metrics, &serialTx{}, 0, time.UTC, logger.Nop())
	uc.timeProvider = fixedTime{now: now}

	const workers = 20
	var (
		wg        sync.WaitGroup
		successes atomic.Int64
		conflicts atomic.Int64
		start     = make(chan struct{})
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start

			// Половина запросов на 10:00, половина на пересекающийся 10:30
			startTime := types.TimeString("10:00")
			if i%2 == 1 {
				startTime = "10:30"
			}

			_, err := uc.Execute(context.Background(), validRequest(startTime))
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, ErrSlotUnavailable):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), successes.Load())
	assert.Equal(t, int64(workers-1), conflicts.Load())

	stored, err := store.ListActiveByTenantAndDate(context.Background(), 1, monday)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}
