// services/sync_service.go - Batch synchronization of tracked users
package services

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"leetgrind/models"
)

// RoomDirectory resolves room attributes for a user's optional room
// reference. Implemented by RoomService.
type RoomDirectory interface {
	Timezone(roomID *uint) string
	Code(roomID *uint) string
}

// SolveNotifier receives solve events produced during a sync. Implemented
// by the live-feed hub; nil disables broadcasting.
type SolveNotifier interface {
	NotifySolve(roomCode string, event SolveEvent)
}

// SolveEvent is pushed to live room subscribers when a sync confirms a solve.
type SolveEvent struct {
	Username     string     `json:"username"`
	DisplayName  string     `json:"display_name"`
	Date         string     `json:"date"`
	ProblemTitle string     `json:"problem_title"`
	ProblemSlug  string     `json:"problem_slug"`
	SolvedAt     *time.Time `json:"solved_at,omitempty"`
}

// UserSyncOutcome reports one user's result within a sync run. A failed
// check is distinguishable from a confirmed not-solved: Success=false means
// "unknown", nothing was persisted for that user.
type UserSyncOutcome struct {
	Username string `json:"username"`
	Success  bool   `json:"success"`
	IsDone   bool   `json:"is_done"`
	Error    string `json:"error,omitempty"`
}

// SyncSummary aggregates one sync invocation for observability.
type SyncSummary struct {
	RunID      string            `json:"run_id"`
	StartedAt  time.Time         `json:"started_at"`
	DurationMS int64             `json:"duration_ms"`
	Total      int               `json:"total"`
	Solved     int               `json:"solved"`
	Failed     int               `json:"failed"`
	Outcomes   []UserSyncOutcome `json:"outcomes"`
}

// SyncService walks all tracked users (optionally one room), evaluates each
// against the submission source and persists the day's result. Users are
// processed concurrently; a failure stays inside that user's outcome and
// never aborts the batch.
type SyncService struct {
	users    *UserService
	status   *StatusService
	store    ResultStore
	rooms    RoomDirectory
	streaks  *StreakService
	notifier SolveNotifier
	clock    Clock
}

func NewSyncService(users *UserService, status *StatusService, store ResultStore, rooms RoomDirectory, streaks *StreakService, notifier SolveNotifier, clock Clock) *SyncService {
	if clock == nil {
		clock = SystemClock()
	}
	return &SyncService{
		users:    users,
		status:   status,
		store:    store,
		rooms:    rooms,
		streaks:  streaks,
		notifier: notifier,
		clock:    clock,
	}
}

// SyncAll runs one sync over all tracked users, or only a room's members
// when roomID is given.
func (s *SyncService) SyncAll(roomID *uint) (*SyncSummary, error) {
	users, err := s.users.ListAll(roomID)
	if err != nil {
		return nil, err
	}
	return s.syncUsers(users), nil
}

// syncUsers fans out one goroutine per user and waits for all of them.
// Evaluations touch disjoint rows, so no coordination beyond the store's
// non-regression guard is needed.
func (s *SyncService) syncUsers(users []models.User) *SyncSummary {
	summary := &SyncSummary{
		RunID:     uuid.New().String(),
		StartedAt: s.clock.Now().UTC(),
		Total:     len(users),
		Outcomes:  make([]UserSyncOutcome, len(users)),
	}

	var wg sync.WaitGroup
	for i := range users {
		wg.Add(1)
		go func(i int, user models.User) {
			defer wg.Done()
			summary.Outcomes[i] = s.syncUser(user)
		}(i, users[i])
	}
	wg.Wait()

	for _, out := range summary.Outcomes {
		if !out.Success {
			summary.Failed++
		} else if out.IsDone {
			summary.Solved++
		}
	}
	summary.DurationMS = int64(s.clock.Now().UTC().Sub(summary.StartedAt) / time.Millisecond)

	log.Printf("Sync %s: %d users, %d solved, %d failed (%dms)",
		summary.RunID, summary.Total, summary.Solved, summary.Failed, summary.DurationMS)
	return summary
}

// syncUser evaluates and persists a single user's day.
func (s *SyncService) syncUser(user models.User) (outcome UserSyncOutcome) {
	outcome.Username = user.LeetcodeUsername

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic while syncing %s: %v", user.LeetcodeUsername, r)
			outcome.Success = false
			outcome.Error = "internal error"
		}
	}()

	tz := s.rooms.Timezone(user.RoomID)

	todays, err := s.status.EvaluateAllToday(user.LeetcodeUsername, tz)
	if err != nil {
		// Unknown, not "not solved": nothing is persisted, the next run
		// retries, and a solve recorded earlier today stays untouched.
		outcome.Error = err.Error()
		return outcome
	}
	status := ReduceDailyStatus(todays)

	today, err := s.status.tzs.Today(tz)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	if err := s.store.UpsertDaily(user.ID, today, status); err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	if len(todays) > 0 {
		// Secondary history; the store logs and swallows its own failures.
		_ = s.store.UpsertSubmissions(user.ID, today, todays)
	}

	if s.streaks != nil {
		s.streaks.Invalidate(user.ID, tz)
	}

	if status.IsDone && s.notifier != nil {
		if code := s.rooms.Code(user.RoomID); code != "" {
			s.notifier.NotifySolve(code, SolveEvent{
				Username:     user.LeetcodeUsername,
				DisplayName:  user.DisplayName,
				Date:         today,
				ProblemTitle: status.ProblemTitle,
				ProblemSlug:  status.ProblemSlug,
				SolvedAt:     status.SolvedAt,
			})
		}
	}

	outcome.Success = true
	outcome.IsDone = status.IsDone
	return outcome
}
