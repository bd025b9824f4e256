package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type fakeRepo struct {
	occupied    []time.Time
	occupiedErr error

	findFrom time.Time
	findTo   time.Time
}

func (f *fakeRepo) FindOccupiedSlots(_ context.Context, from, to time.Time, _ *int64) ([]time.Time, error) {
	f.findFrom = from
	f.findTo = to
	if f.occupiedErr != nil {
		return nil, f.occupiedErr
	}
	return f.occupied, nil
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

func newTestUseCase(t *testing.T, repo *fakeRepo, now time.Time) *UseCase {
	t.Helper()
	grid, err := domain.NewTimeGrid("UTC", 9, 17, 30)
	require.NoError(t, err)

	uc := NewUseCase(repo, grid, nopLogger{})
	uc.timeProvider = &stubTimeProvider{now: now}
	return uc
}

// Воскресенье до начала недели: ни один слот страницы 1 ещё не прошёл
var beforeWeek = time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)

func TestExecute_FullWeekAvailable(t *testing.T) {
	repo := &fakeRepo{}
	// Понедельник 00:30 - прошёл ноль слотов текущей недели
	uc := newTestUseCase(t, repo, time.Date(2025, 6, 9, 0, 30, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{Page: 0})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Page)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), resp.WeekStart)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), resp.WeekEnd)
	// 5 рабочих дней по 16 слотов
	assert.Equal(t, 80, resp.Count)
	assert.Len(t, resp.Slots, 80)

	// Хранилище опрашивается ровно на окно недели
	assert.True(t, repo.findFrom.Equal(resp.WeekStart))
	assert.True(t, repo.findTo.Equal(resp.WeekEnd))

	assert.False(t, resp.HasPrevious)
	assert.Nil(t, resp.PreviousPage)
	assert.Equal(t, 1, resp.NextPage)
	assert.True(t, resp.HasMore)
}

func TestExecute_SubtractsOccupied(t *testing.T) {
	taken := []time.Time{
		time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 11, 14, 30, 0, 0, time.UTC),
	}
	repo := &fakeRepo{occupied: taken}
	uc := newTestUseCase(t, repo, time.Date(2025, 6, 9, 0, 30, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{Page: 0})
	require.NoError(t, err)

	assert.Equal(t, 78, resp.Count)
	for _, s := range resp.Slots {
		for _, o := range taken {
			assert.False(t, s.Equal(o), "occupied slot %s must not be offered", o)
		}
	}
}

func TestExecute_FiltersPastSlotsMidWeek(t *testing.T) {
	repo := &fakeRepo{}
	// Среда 12:15: прошли пн (16), вт (16) и слоты среды 9:00..12:00 (7 штук).
	// Слот 12:00 уже начался и тоже не предлагается.
	uc := newTestUseCase(t, repo, time.Date(2025, 6, 11, 12, 15, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{Page: 0})
	require.NoError(t, err)

	assert.Equal(t, 80-16-16-7, resp.Count)
	assert.Equal(t, time.Date(2025, 6, 11, 12, 30, 0, 0, time.UTC), resp.Slots[0])
}

func TestExecute_SlotAtNowExcluded(t *testing.T) {
	repo := &fakeRepo{}
	// Ровно на границе слота: будущность строгая, слот 12:00 не предлагается
	uc := newTestUseCase(t, repo, time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 11, 12, 30, 0, 0, time.UTC), resp.Slots[0])
}

func TestExecute_FutureWeekIgnoresNow(t *testing.T) {
	repo := &fakeRepo{}
	// Середина текущей недели не влияет на полноту следующей
	uc := newTestUseCase(t, repo, time.Date(2025, 6, 11, 12, 15, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{Page: 1})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), resp.WeekStart)
	assert.Equal(t, 80, resp.Count)
	assert.True(t, resp.HasPrevious)
	require.NotNil(t, resp.PreviousPage)
	assert.Equal(t, 0, *resp.PreviousPage)
	assert.Equal(t, 2, resp.NextPage)
}

func TestExecute_Deterministic(t *testing.T) {
	repo := &fakeRepo{
		occupied: []time.Time{time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)},
	}
	uc := newTestUseCase(t, repo, beforeWeek)

	first, err := uc.Execute(context.Background(), &Request{Page: 1})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{Page: 1})
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecute_SlotsSortedAscending(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(t, repo, beforeWeek)

	resp, err := uc.Execute(context.Background(), &Request{Page: 1})
	require.NoError(t, err)

	for i := 1; i < len(resp.Slots); i++ {
		assert.True(t, resp.Slots[i].After(resp.Slots[i-1]))
	}
}

func TestExecute_NegativePage(t *testing.T) {
	uc := newTestUseCase(t, &fakeRepo{}, beforeWeek)

	_, err := uc.Execute(context.Background(), &Request{Page: -1})
	require.ErrorIs(t, err, ErrInvalidPage)
}

func TestExecute_RepositoryError(t *testing.T) {
	repo := &fakeRepo{occupiedErr: errors.New("connection refused")}
	uc := newTestUseCase(t, repo, beforeWeek)

	_, err := uc.Execute(context.Background(), &Request{Page: 0})
	require.ErrorIs(t, err, ErrInternal)
}
