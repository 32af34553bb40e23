package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leetgrind/models"
)

// Fixed "now": 2024-06-15 12:00 UTC
func streakFixture(t *testing.T, rows []models.DailyResult) (*StreakService, *mockResultStore) {
	t.Helper()
	store := new(mockResultStore)
	store.On("ListUpTo", uint(1), "2024-06-15").Return(rows, nil)
	tzs := NewTimezoneService(FixedClock{Instant: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)})
	return NewStreakService(store, tzs, nil), store
}

func dr(date string, solved bool) models.DailyResult {
	return models.DailyResult{UserID: 1, Date: date, DidSolve: solved}
}

func TestCurrentStreakTodaySolved(t *testing.T) {
	svc, _ := streakFixture(t, []models.DailyResult{
		dr("2024-06-15", true),
		dr("2024-06-14", true),
		dr("2024-06-13", false),
	})

	streak, err := svc.CurrentStreak(1, "UTC")
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

func TestCurrentStreakTodayPending(t *testing.T) {
	// No row for today: the streak is pending, not broken
	svc, _ := streakFixture(t, []models.DailyResult{
		dr("2024-06-14", true),
		dr("2024-06-13", true),
	})

	streak, err := svc.CurrentStreak(1, "UTC")
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

func TestCurrentStreakTodayMissed(t *testing.T) {
	// An explicit miss for today breaks immediately, no fallback to yesterday
	svc, _ := streakFixture(t, []models.DailyResult{
		dr("2024-06-15", false),
		dr("2024-06-14", true),
		dr("2024-06-13", true),
	})

	streak, err := svc.CurrentStreak(1, "UTC")
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestCurrentStreakGapBreaks(t *testing.T) {
	// 06-13 has no row at all: the chain stops after 06-15 and 06-14
	svc, _ := streakFixture(t, []models.DailyResult{
		dr("2024-06-15", true),
		dr("2024-06-14", true),
		dr("2024-06-12", true),
		dr("2024-06-11", true),
	})

	streak, err := svc.CurrentStreak(1, "UTC")
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

func TestCurrentStreakEmptyHistory(t *testing.T) {
	svc, _ := streakFixture(t, []models.DailyResult{})

	streak, err := svc.CurrentStreak(1, "UTC")
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestCurrentStreakInvalidTimezone(t *testing.T) {
	svc, _ := streakFixture(t, nil)

	_, err := svc.CurrentStreak(1, "Nope/Nowhere")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestLongestStreak(t *testing.T) {
	store := new(mockResultStore)
	store.On("ListAll", uint(1)).Return([]models.DailyResult{
		dr("2024-06-01", true),
		dr("2024-06-02", true),
		dr("2024-06-03", false),
		dr("2024-06-04", true),
	}, nil)
	tzs := NewTimezoneService(FixedClock{Instant: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)})
	svc := NewStreakService(store, tzs, nil)

	longest, err := svc.LongestStreak(1)
	require.NoError(t, err)
	assert.Equal(t, 2, longest)
}

func TestLongestStreakGapResetsToOne(t *testing.T) {
	// 06-04 is missing entirely: the run restarts at 06-05 even though no
	// explicit false row exists for the gap day
	store := new(mockResultStore)
	store.On("ListAll", uint(1)).Return([]models.DailyResult{
		dr("2024-06-01", true),
		dr("2024-06-02", true),
		dr("2024-06-03", true),
		dr("2024-06-05", true),
		dr("2024-06-06", true),
	}, nil)
	tzs := NewTimezoneService(FixedClock{Instant: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)})
	svc := NewStreakService(store, tzs, nil)

	longest, err := svc.LongestStreak(1)
	require.NoError(t, err)
	assert.Equal(t, 3, longest)
}

func TestLongestStreakEmptyHistory(t *testing.T) {
	store := new(mockResultStore)
	store.On("ListAll", uint(1)).Return([]models.DailyResult{}, nil)
	tzs := NewTimezoneService(FixedClock{Instant: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)})
	svc := NewStreakService(store, tzs, nil)

	longest, err := svc.LongestStreak(1)
	require.NoError(t, err)
	assert.Equal(t, 0, longest)
}
