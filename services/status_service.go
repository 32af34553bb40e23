// services/status_service.go - Daily status evaluation
package services

import (
	"time"

	"leetgrind/leetparse"
)

// DailyStatus is the outcome of checking a user's activity for the current
// calendar day in their room's timezone.
type DailyStatus struct {
	IsDone       bool       `json:"is_done"`
	SolvedAt     *time.Time `json:"solved_at,omitempty"`
	ProblemTitle string     `json:"problem_title,omitempty"`
	ProblemSlug  string     `json:"problem_slug,omitempty"`
	SubmissionID string     `json:"submission_id,omitempty"`
}

// StatusService decides whether a user has solved a problem "today".
// Source failures propagate unchanged; coercing them to "not solved" here
// would let a transient outage look like a recorded miss downstream.
type StatusService struct {
	source SubmissionSource
	tzs    *TimezoneService
}

func NewStatusService(source SubmissionSource, tzs *TimezoneService) *StatusService {
	return &StatusService{source: source, tzs: tzs}
}

// EvaluateToday fetches the user's recent accepted submissions and reduces
// them to a single status for the current day in tz. The feed arrives
// newest-first, so the first qualifying entry is the most recent solve.
func (s *StatusService) EvaluateToday(username, tz string) (DailyStatus, error) {
	todays, err := s.EvaluateAllToday(username, tz)
	if err != nil {
		return DailyStatus{}, err
	}
	return ReduceDailyStatus(todays), nil
}

// ReduceDailyStatus collapses a newest-first list of today's submissions to
// the single authoritative status: the most recent solve, or a clean
// not-done when the list is empty.
func ReduceDailyStatus(todays []RecentSubmission) DailyStatus {
	if len(todays) == 0 {
		return DailyStatus{IsDone: false}
	}

	latest := todays[0]
	solvedAt := time.Unix(latest.Timestamp, 0).UTC()
	title := latest.Title
	if title == "" {
		title = leetparse.SlugToTitle(latest.TitleSlug)
	}
	return DailyStatus{
		IsDone:       true,
		SolvedAt:     &solvedAt,
		ProblemTitle: title,
		ProblemSlug:  latest.TitleSlug,
		SubmissionID: latest.ID,
	}
}

// EvaluateAllToday returns every submission from the recent feed that falls
// on the current day in tz, preserving newest-first order. Used to populate
// the secondary submissions table.
func (s *StatusService) EvaluateAllToday(username, tz string) ([]RecentSubmission, error) {
	recent, err := s.source.FetchRecent(username)
	if err != nil {
		return nil, err
	}

	var todays []RecentSubmission
	for _, sub := range recent {
		today, err := s.tzs.IsToday(sub.Timestamp, tz)
		if err != nil {
			return nil, err
		}
		if today {
			todays = append(todays, sub)
		}
	}
	return todays, nil
}
