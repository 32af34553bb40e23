package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"leetgrind/models"
)

func syncFixture(source *mockSource, store *mockResultStore, notifier SolveNotifier, roomCode string) *SyncService {
	clock := FixedClock{Instant: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}
	tzs := NewTimezoneService(clock)
	status := NewStatusService(source, tzs)
	rooms := &mockRoomDirectory{tz: "UTC", code: roomCode}
	return NewSyncService(nil, status, store, rooms, nil, notifier, clock)
}

func trackedUser(username string) models.User {
	return models.User{ID: 1, LeetcodeUsername: username, DisplayName: username}
}

func TestSyncUserSolved(t *testing.T) {
	source := new(mockSource)
	store := new(mockResultStore)
	notifier := new(mockNotifier)
	svc := syncFixture(source, store, notifier, "ab12cd")

	source.On("FetchRecent", "alice").Return([]RecentSubmission{
		{ID: "7", Title: "Two Sum", TitleSlug: "two-sum", Timestamp: ts(10)},
	}, nil)
	store.On("UpsertDaily", uint(1), "2024-06-15", mock.MatchedBy(func(s DailyStatus) bool {
		return s.IsDone && s.ProblemSlug == "two-sum"
	})).Return(nil)
	store.On("UpsertSubmissions", uint(1), "2024-06-15", mock.Anything).Return(nil)

	summary := svc.syncUsers([]models.User{trackedUser("alice")})

	require.Len(t, summary.Outcomes, 1)
	assert.True(t, summary.Outcomes[0].Success)
	assert.True(t, summary.Outcomes[0].IsDone)
	assert.Equal(t, 1, summary.Solved)
	assert.Equal(t, 0, summary.Failed)
	store.AssertExpectations(t)

	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "alice", events[0].Username)
	assert.Equal(t, "two-sum", events[0].ProblemSlug)
}

func TestSyncUserNotSolvedPersistsMiss(t *testing.T) {
	source := new(mockSource)
	store := new(mockResultStore)
	notifier := new(mockNotifier)
	svc := syncFixture(source, store, notifier, "ab12cd")

	source.On("FetchRecent", "alice").Return([]RecentSubmission{}, nil)
	store.On("UpsertDaily", uint(1), "2024-06-15", DailyStatus{IsDone: false}).Return(nil)

	summary := svc.syncUsers([]models.User{trackedUser("alice")})

	assert.True(t, summary.Outcomes[0].Success)
	assert.False(t, summary.Outcomes[0].IsDone)
	assert.Equal(t, 0, summary.Solved)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "UpsertSubmissions", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, notifier.Events())
}

func TestSyncSourceFailureIsUnknownNotMiss(t *testing.T) {
	source := new(mockSource)
	store := new(mockResultStore)
	svc := syncFixture(source, store, nil, "")

	source.On("FetchRecent", "alice").Return(nil, ErrSourceUnavailable)

	summary := svc.syncUsers([]models.User{trackedUser("alice")})

	assert.False(t, summary.Outcomes[0].Success)
	assert.NotEmpty(t, summary.Outcomes[0].Error)
	assert.Equal(t, 1, summary.Failed)
	// Nothing persisted: an earlier solve for today must survive the outage
	store.AssertNotCalled(t, "UpsertDaily", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncOneFailureDoesNotAbortBatch(t *testing.T) {
	source := new(mockSource)
	store := new(mockResultStore)
	svc := syncFixture(source, store, nil, "")

	source.On("FetchRecent", "alice").Return([]RecentSubmission{
		{ID: "7", Title: "Two Sum", TitleSlug: "two-sum", Timestamp: ts(10)},
	}, nil)
	source.On("FetchRecent", "broken").Return(nil, errors.New("429 too many requests"))
	source.On("FetchRecent", "bob").Return([]RecentSubmission{}, nil)
	store.On("UpsertDaily", mock.Anything, "2024-06-15", mock.Anything).Return(nil)
	store.On("UpsertSubmissions", mock.Anything, "2024-06-15", mock.Anything).Return(nil)

	users := []models.User{
		{ID: 1, LeetcodeUsername: "alice"},
		{ID: 2, LeetcodeUsername: "broken"},
		{ID: 3, LeetcodeUsername: "bob"},
	}
	summary := svc.syncUsers(users)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Solved)
	assert.Equal(t, 1, summary.Failed)

	// Outcomes keep input order regardless of goroutine completion order
	assert.Equal(t, "alice", summary.Outcomes[0].Username)
	assert.Equal(t, "broken", summary.Outcomes[1].Username)
	assert.Equal(t, "bob", summary.Outcomes[2].Username)
	assert.True(t, summary.Outcomes[0].Success)
	assert.False(t, summary.Outcomes[1].Success)
	assert.True(t, summary.Outcomes[2].Success)
}

func TestSyncStoreFailureReported(t *testing.T) {
	source := new(mockSource)
	store := new(mockResultStore)
	svc := syncFixture(source, store, nil, "")

	source.On("FetchRecent", "alice").Return([]RecentSubmission{}, nil)
	store.On("UpsertDaily", uint(1), "2024-06-15", mock.Anything).Return(errors.New("connection refused"))

	summary := svc.syncUsers([]models.User{trackedUser("alice")})

	assert.False(t, summary.Outcomes[0].Success)
	assert.Contains(t, summary.Outcomes[0].Error, "connection refused")
}

func TestSyncNoRoomNoNotification(t *testing.T) {
	source := new(mockSource)
	store := new(mockResultStore)
	notifier := new(mockNotifier)
	// Empty room code models a user tracked outside any room
	svc := syncFixture(source, store, notifier, "")

	source.On("FetchRecent", "alice").Return([]RecentSubmission{
		{ID: "7", Title: "Two Sum", TitleSlug: "two-sum", Timestamp: ts(10)},
	}, nil)
	store.On("UpsertDaily", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	store.On("UpsertSubmissions", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	summary := svc.syncUsers([]models.User{trackedUser("alice")})

	assert.Equal(t, 1, summary.Solved)
	assert.Empty(t, notifier.Events())
}

func TestSyncEmptyUserList(t *testing.T) {
	svc := syncFixture(new(mockSource), new(mockResultStore), nil, "")

	summary := svc.syncUsers(nil)

	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0, summary.Solved)
	assert.Equal(t, 0, summary.Failed)
	assert.NotEmpty(t, summary.RunID)
}
