package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusFixture() (*StatusService, *mockSource) {
	source := new(mockSource)
	tzs := NewTimezoneService(FixedClock{Instant: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)})
	return NewStatusService(source, tzs), source
}

func ts(hour int) int64 {
	return time.Date(2024, 6, 15, hour, 0, 0, 0, time.UTC).Unix()
}

func TestEvaluateTodayPicksMostRecentSolve(t *testing.T) {
	svc, source := statusFixture()
	source.On("FetchRecent", "alice").Return([]RecentSubmission{
		{ID: "3", Title: "Two Sum", TitleSlug: "two-sum", Timestamp: ts(11)},
		{ID: "2", Title: "Add Two Numbers", TitleSlug: "add-two-numbers", Timestamp: ts(9)},
		{ID: "1", Title: "Old One", TitleSlug: "old-one", Timestamp: time.Date(2024, 6, 14, 22, 0, 0, 0, time.UTC).Unix()},
	}, nil)

	status, err := svc.EvaluateToday("alice", "UTC")
	require.NoError(t, err)
	assert.True(t, status.IsDone)
	assert.Equal(t, "Two Sum", status.ProblemTitle)
	assert.Equal(t, "two-sum", status.ProblemSlug)
	assert.Equal(t, "3", status.SubmissionID)
	require.NotNil(t, status.SolvedAt)
	assert.Equal(t, ts(11), status.SolvedAt.Unix())
}

func TestEvaluateTodayNoTodaySubmissions(t *testing.T) {
	svc, source := statusFixture()
	source.On("FetchRecent", "alice").Return([]RecentSubmission{
		{ID: "1", Title: "Old One", TitleSlug: "old-one", Timestamp: time.Date(2024, 6, 13, 8, 0, 0, 0, time.UTC).Unix()},
	}, nil)

	status, err := svc.EvaluateToday("alice", "UTC")
	require.NoError(t, err)
	assert.False(t, status.IsDone)
	assert.Nil(t, status.SolvedAt)
}

func TestEvaluateTodayEmptyFeed(t *testing.T) {
	svc, source := statusFixture()
	source.On("FetchRecent", "newbie").Return([]RecentSubmission{}, nil)

	status, err := svc.EvaluateToday("newbie", "UTC")
	require.NoError(t, err)
	assert.False(t, status.IsDone)
}

func TestEvaluateTodayPropagatesSourceError(t *testing.T) {
	svc, source := statusFixture()
	source.On("FetchRecent", "alice").Return(nil, ErrSourceUnavailable)

	_, err := svc.EvaluateToday("alice", "UTC")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestEvaluateTodayTimezoneBoundary(t *testing.T) {
	// 23:30 on 06-14 in UTC is already 06-15 in Tokyo
	svc, source := statusFixture()
	lateUTC := time.Date(2024, 6, 14, 23, 30, 0, 0, time.UTC).Unix()
	source.On("FetchRecent", "kenji").Return([]RecentSubmission{
		{ID: "9", Title: "Valid Parentheses", TitleSlug: "valid-parentheses", Timestamp: lateUTC},
	}, nil)

	utcStatus, err := svc.EvaluateToday("kenji", "UTC")
	require.NoError(t, err)
	assert.False(t, utcStatus.IsDone)

	tokyoStatus, err := svc.EvaluateToday("kenji", "Asia/Tokyo")
	require.NoError(t, err)
	assert.True(t, tokyoStatus.IsDone)
}

func TestEvaluateAllTodayPreservesOrder(t *testing.T) {
	svc, source := statusFixture()
	source.On("FetchRecent", "alice").Return([]RecentSubmission{
		{ID: "3", TitleSlug: "c", Timestamp: ts(11)},
		{ID: "2", TitleSlug: "b", Timestamp: ts(9)},
		{ID: "1", TitleSlug: "a", Timestamp: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC).Unix()},
	}, nil)

	todays, err := svc.EvaluateAllToday("alice", "UTC")
	require.NoError(t, err)
	require.Len(t, todays, 2)
	assert.Equal(t, "3", todays[0].ID)
	assert.Equal(t, "2", todays[1].ID)
}

func TestReduceDailyStatusTitleFallback(t *testing.T) {
	status := ReduceDailyStatus([]RecentSubmission{
		{ID: "5", TitleSlug: "longest-common-prefix", Timestamp: ts(10)},
	})
	assert.Equal(t, "Longest Common Prefix", status.ProblemTitle)
}

func TestEvaluateTodayInvalidTimezone(t *testing.T) {
	svc, source := statusFixture()
	source.On("FetchRecent", "alice").Return([]RecentSubmission{
		{ID: "1", TitleSlug: "a", Timestamp: ts(9)},
	}, nil)

	_, err := svc.EvaluateToday("alice", "Not/AZone")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}
