// models/submission.go
package models

import "time"

// Submission records every accepted submission of a day, one row per
// (user, date, problem slug). Secondary history data only; the
// daily_results table stays authoritative for solved/not-solved.
type Submission struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	UserID      uint   `json:"user_id" gorm:"not null;index:idx_submissions_user_date_slug,unique"`
	User        *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Date        string `json:"date" gorm:"not null;size:10;index:idx_submissions_user_date_slug,unique"`
	ProblemSlug string `json:"problem_slug" gorm:"not null;size:200;index:idx_submissions_user_date_slug,unique"`

	ProblemTitle string    `json:"problem_title" gorm:"size:200"`
	SolvedAt     time.Time `json:"solved_at"`
	SubmissionID string    `json:"submission_id" gorm:"size:40"`

	CreatedAt time.Time `json:"created_at"`
}

func (Submission) TableName() string {
	return "submissions"
}
