package services

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"leetgrind/models"
)

// mockResultStore implements ResultStore
type mockResultStore struct {
	mock.Mock
}

func (m *mockResultStore) UpsertDaily(userID uint, date string, status DailyStatus) error {
	args := m.Called(userID, date, status)
	return args.Error(0)
}

func (m *mockResultStore) GetDaily(userID uint, date string) (*models.DailyResult, error) {
	args := m.Called(userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyResult), args.Error(1)
}

func (m *mockResultStore) ListDaily(userID uint, from, to string) ([]models.DailyResult, error) {
	args := m.Called(userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyResult), args.Error(1)
}

func (m *mockResultStore) ListUpTo(userID uint, date string) ([]models.DailyResult, error) {
	args := m.Called(userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyResult), args.Error(1)
}

func (m *mockResultStore) ListAll(userID uint) ([]models.DailyResult, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyResult), args.Error(1)
}

func (m *mockResultStore) UpsertSubmissions(userID uint, date string, subs []RecentSubmission) error {
	args := m.Called(userID, date, subs)
	return args.Error(0)
}

// mockSource implements SubmissionSource
type mockSource struct {
	mock.Mock
}

func (m *mockSource) FetchRecent(username string) ([]RecentSubmission, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]RecentSubmission), args.Error(1)
}

// mockRoomDirectory implements RoomDirectory
type mockRoomDirectory struct {
	tz   string
	code string
}

func (m *mockRoomDirectory) Timezone(roomID *uint) string {
	return m.tz
}

func (m *mockRoomDirectory) Code(roomID *uint) string {
	return m.code
}

// mockNotifier captures solve events
type mockNotifier struct {
	mu     sync.Mutex
	events []SolveEvent
}

func (m *mockNotifier) NotifySolve(roomCode string, event SolveEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *mockNotifier) Events() []SolveEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SolveEvent(nil), m.events...)
}
