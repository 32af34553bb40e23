// models/daily_result.go
package models

import "time"

// DailyResult is the authoritative solved/not-solved record for one user on
// one calendar date (YYYY-MM-DD in the owning room's timezone). At most one
// row exists per (user, date); the unique index enforces it.
type DailyResult struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID uint   `json:"user_id" gorm:"not null;index:idx_daily_results_user_date,unique"`
	User   *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Date   string `json:"date" gorm:"not null;size:10;index:idx_daily_results_user_date,unique"`

	DidSolve     bool       `json:"did_solve" gorm:"default:false"`
	SolvedAt     *time.Time `json:"solved_at,omitempty"`
	ProblemTitle string     `json:"problem_title" gorm:"size:200"`
	ProblemSlug  string     `json:"problem_slug" gorm:"size:200"`
	SubmissionID string     `json:"submission_id" gorm:"size:40"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DailyResult) TableName() string {
	return "daily_results"
}
