// models/user.go
package models

import (
	"time"
)

// User is a tracked LeetCode account. A user may belong to a room; the
// LeetCode username must be unique within that room.
type User struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	LeetcodeUsername string `gorm:"not null;index:idx_users_room_username,unique" json:"leetcode_username"`
	DisplayName      string `json:"display_name"`
	RoomID           *uint  `gorm:"index:idx_users_room_username,unique" json:"room_id,omitempty"`
	Room             *Room  `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	DailyResults []DailyResult `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"daily_results,omitempty"`
	Submissions  []Submission  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"submissions,omitempty"`
}

func (User) TableName() string {
	return "users"
}
