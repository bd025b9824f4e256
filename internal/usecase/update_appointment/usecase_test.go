package update_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeRepo struct {
	current     *domain.Appointment
	getErr      error
	occupied    []time.Time
	occupiedErr error
	updateErr   error

	findExcludeID *int64
	findFrom      time.Time
	findTo        time.Time
	findCalls     int
	updateParams  *domain.UpdateParams
	updateCalls   int
}

func (f *fakeRepo) GetActiveByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	appt := *f.current
	appt.ID = id
	return &appt, nil
}

func (f *fakeRepo) FindOccupiedSlots(_ context.Context, from, to time.Time, excludeID *int64) ([]time.Time, error) {
	f.findCalls++
	f.findFrom = from
	f.findTo = to
	f.findExcludeID = excludeID
	if f.occupiedErr != nil {
		return nil, f.occupiedErr
	}
	return f.occupied, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, params domain.UpdateParams) (*domain.Appointment, error) {
	f.updateCalls++
	f.updateParams = &params
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	updated := *f.current
	updated.ID = id
	updated.StartTime = params.StartTime
	updated.Name = params.Name
	updated.Email = params.Email
	updated.Phone = params.Phone
	updated.Reason = params.Reason
	updated.UpdatedAt = time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	return &updated, nil
}

type fakeTxManager struct {
	calls int
	err   error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type stubTimeProvider struct {
	now time.Time
}

func (s *stubTimeProvider) Now() time.Time {
	return s.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2025-06-11 - среда
var testNow = time.Date(2025, 6, 11, 8, 0, 0, 0, time.UTC)

func activeAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:        7,
		StartTime: time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC),
		Name:      "Ivan Petrov",
		Email:     "ivan@example.com",
		Status:    domain.StatusActive,
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestUseCase(t *testing.T, repo *fakeRepo, tx *fakeTxManager, now time.Time) *UseCase {
	t.Helper()
	grid, err := domain.NewTimeGrid("UTC", 9, 17, 30)
	require.NoError(t, err)

	uc := NewUseCase(repo, tx, grid, nopLogger{})
	uc.timeProvider = &stubTimeProvider{now: now}
	return uc
}

func TestExecute_FieldOnlyUpdateSkipsSlotChecks(t *testing.T) {
	repo := &fakeRepo{current: activeAppointment()}
	uc := newTestUseCase(t, repo, &fakeTxManager{}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		ID:   7,
		Name: ptr.Ptr("Petr Ivanov"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Petr Ivanov", resp.Name)
	// Время не трогали: ни проверки занятости, ни смены слота
	assert.Zero(t, repo.findCalls)
	assert.True(t, repo.updateParams.StartTime.Equal(activeAppointment().StartTime))
	// Нетронутые поля сохраняются
	assert.Equal(t, "ivan@example.com", repo.updateParams.Email)
}

func TestExecute_Reschedule(t *testing.T) {
	repo := &fakeRepo{current: activeAppointment()}
	tx := &fakeTxManager{}
	uc := newTestUseCase(t, repo, tx, testNow)

	newStart := time.Date(2025, 6, 12, 14, 30, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{
		ID:        7,
		StartTime: ptr.Ptr(newStart),
	})
	require.NoError(t, err)

	assert.True(t, resp.StartTime.Equal(newStart))
	assert.Equal(t, int64(7), resp.ID)
	// created_at исходной записи сохраняется: это перенос, не пересоздание
	assert.Equal(t, activeAppointment().CreatedAt, resp.CreatedAt)

	// Проверка занятости исключает саму переносимую запись
	require.NotNil(t, repo.findExcludeID)
	assert.Equal(t, int64(7), *repo.findExcludeID)
	assert.True(t, repo.findFrom.Equal(newStart))
	assert.True(t, repo.findTo.Equal(newStart.Add(30*time.Minute)))

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 1, repo.updateCalls)
}

func TestExecute_RescheduleToOwnSlot(t *testing.T) {
	// Перенос на собственное текущее время не конфликтует сам с собой:
	// запись исключена из проверки занятости
	repo := &fakeRepo{current: activeAppointment()}
	uc := newTestUseCase(t, repo, &fakeTxManager{}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		ID:        7,
		StartTime: ptr.Ptr(activeAppointment().StartTime),
	})
	require.NoError(t, err)
	assert.True(t, resp.StartTime.Equal(activeAppointment().StartTime))
}

func TestExecute_TargetSlotTaken(t *testing.T) {
	newStart := time.Date(2025, 6, 12, 14, 30, 0, 0, time.UTC)
	repo := &fakeRepo{
		current:  activeAppointment(),
		occupied: []time.Time{newStart},
	}
	uc := newTestUseCase(t, repo, &fakeTxManager{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{
		ID:        7,
		StartTime: ptr.Ptr(newStart),
	})
	require.ErrorIs(t, err, ErrSlotTaken)
	assert.Zero(t, repo.updateCalls)
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	repo := &fakeRepo{getErr: apptRepo.ErrAppointmentNotFound}
	uc := newTestUseCase(t, repo, &fakeTxManager{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{
		ID:   404,
		Name: ptr.Ptr("Petr Ivanov"),
	})
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_RescheduleToPast(t *testing.T) {
	repo := &fakeRepo{current: activeAppointment()}
	tx := &fakeTxManager{}
	uc := newTestUseCase(t, repo, tx, time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{
		ID:        7,
		StartTime: ptr.Ptr(time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)),
	})
	require.ErrorIs(t, err, ErrPastBooking)
	// Валидация сетки идёт до транзакции
	assert.Zero(t, tx.calls)
}

func TestExecute_RescheduleOffGrid(t *testing.T) {
	repo := &fakeRepo{current: activeAppointment()}
	uc := newTestUseCase(t, repo, &fakeTxManager{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{
		ID:        7,
		StartTime: ptr.Ptr(time.Date(2025, 6, 12, 17, 0, 0, 0, time.UTC)),
	})
	require.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_RaceLostOnUpdate(t *testing.T) {
	newStart := time.Date(2025, 6, 12, 14, 30, 0, 0, time.UTC)
	repo := &fakeRepo{
		current:   activeAppointment(),
		updateErr: apptRepo.ErrSlotTaken,
	}
	uc := newTestUseCase(t, repo, &fakeTxManager{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{
		ID:        7,
		StartTime: ptr.Ptr(newStart),
	})
	require.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"non-positive id", &Request{ID: 0, Name: ptr.Ptr("x")}},
		{"empty patch", &Request{ID: 7}},
		{"blank name", &Request{ID: 7, Name: ptr.Ptr("  ")}},
		{"blank email", &Request{ID: 7, Email: ptr.Ptr("")}},
		{"malformed email", &Request{ID: 7, Email: ptr.Ptr("not-an-email")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &fakeTxManager{}
			uc := newTestUseCase(t, &fakeRepo{current: activeAppointment()}, tx, testNow)

			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, tx.calls)
		})
	}
}

func TestApplyPatch_ClearsOptionalFields(t *testing.T) {
	current := activeAppointment()
	current.Phone = ptr.Ptr("+7 900 000-00-00")
	current.Reason = ptr.Ptr("consultation")

	params := applyPatch(current, &Request{
		ID:    7,
		Phone: ptr.Ptr(""),
	}, time.Time{})

	// Указатель на пустую строку очищает значение, остальное сохраняется
	require.NotNil(t, params.Phone)
	assert.Equal(t, "", *params.Phone)
	require.NotNil(t, params.Reason)
	assert.Equal(t, "consultation", *params.Reason)
}
