// services/result_store.go - Authoritative daily result persistence
package services

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"leetgrind/models"
)

// ErrNotFound is returned on lookup misses for single rows.
var ErrNotFound = errors.New("record not found")

// ResultStore persists one row per (user, date). Implemented on GORM;
// mocked in streak and sync tests.
type ResultStore interface {
	UpsertDaily(userID uint, date string, status DailyStatus) error
	GetDaily(userID uint, date string) (*models.DailyResult, error)
	ListDaily(userID uint, from, to string) ([]models.DailyResult, error)
	ListUpTo(userID uint, date string) ([]models.DailyResult, error)
	ListAll(userID uint) ([]models.DailyResult, error)
	UpsertSubmissions(userID uint, date string, subs []RecentSubmission) error
}

// GormResultStore is the PostgreSQL-backed ResultStore.
type GormResultStore struct {
	db *gorm.DB
}

func NewGormResultStore(db *gorm.DB) *GormResultStore {
	return &GormResultStore{db: db}
}

// UpsertDaily writes the day's result for a user. Guard invariant: a
// confirmed solve is never downgraded. When the incoming status is
// "not solved" and the stored row already says solved, the write is a no-op.
// Two overlapping syncs can race past the read, which is accepted: the sync
// cadence (minutes) dwarfs the write latency, and the losing write carries
// the same solve metadata anyway.
func (s *GormResultStore) UpsertDaily(userID uint, date string, status DailyStatus) error {
	if !status.IsDone {
		var existing models.DailyResult
		err := s.db.Where("user_id = ? AND date = ?", userID, date).First(&existing).Error
		if err == nil && existing.DidSolve {
			// Keep the confirmed solve and its original metadata.
			return nil
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	row := models.DailyResult{
		UserID:       userID,
		Date:         date,
		DidSolve:     status.IsDone,
		SolvedAt:     status.SolvedAt,
		ProblemTitle: status.ProblemTitle,
		ProblemSlug:  status.ProblemSlug,
		SubmissionID: status.SubmissionID,
	}

	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"did_solve", "solved_at", "problem_title", "problem_slug", "submission_id", "updated_at",
		}),
	}).Create(&row).Error
}

// GetDaily returns the result row for one user and date.
func (s *GormResultStore) GetDaily(userID uint, date string) (*models.DailyResult, error) {
	var row models.DailyResult
	err := s.db.Where("user_id = ? AND date = ?", userID, date).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// ListDaily returns results in [from, to], ascending by date.
func (s *GormResultStore) ListDaily(userID uint, from, to string) ([]models.DailyResult, error) {
	var rows []models.DailyResult
	err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

// ListUpTo returns all results with date <= the given date, descending.
// The current-streak walk consumes exactly this shape.
func (s *GormResultStore) ListUpTo(userID uint, date string) ([]models.DailyResult, error) {
	var rows []models.DailyResult
	err := s.db.Where("user_id = ? AND date <= ?", userID, date).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}

// ListAll returns a user's entire history, ascending by date.
func (s *GormResultStore) ListAll(userID uint) ([]models.DailyResult, error) {
	var rows []models.DailyResult
	err := s.db.Where("user_id = ?", userID).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

// UpsertSubmissions records the day's accepted submissions, keyed by
// (user, date, slug). Secondary, non-authoritative data: failures are
// logged and swallowed so they never block the primary daily upsert.
func (s *GormResultStore) UpsertSubmissions(userID uint, date string, subs []RecentSubmission) error {
	for _, sub := range subs {
		row := models.Submission{
			UserID:       userID,
			Date:         date,
			ProblemSlug:  sub.TitleSlug,
			ProblemTitle: sub.Title,
			SolvedAt:     time.Unix(sub.Timestamp, 0).UTC(),
			SubmissionID: sub.ID,
		}
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}, {Name: "problem_slug"}},
			DoNothing: true,
		}).Create(&row).Error
		if err != nil {
			log.Printf("Failed to upsert submission %s for user %d on %s: %v", sub.TitleSlug, userID, date, err)
		}
	}
	return nil
}
