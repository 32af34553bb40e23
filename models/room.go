// models/room.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Room is a named group of tracked users sharing a join code, an optional
// PIN and a timezone. All daily boundaries for the room's members are
// computed in the room's timezone.
type Room struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"not null;size:100"`
	RoomCode string `json:"room_code" gorm:"unique;size:10"`
	// PINHash is nil for open rooms. Set via SetPIN, checked via CheckPIN.
	PINHash  *string `json:"-" gorm:"size:100"`
	Timezone string  `json:"timezone" gorm:"size:64;default:'UTC'"`

	Members   []User    `json:"members,omitempty" gorm:"foreignKey:RoomID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Room) TableName() string {
	return "rooms"
}

// HasPIN reports whether the room is PIN-protected.
func (r *Room) HasPIN() bool {
	return r.PINHash != nil && *r.PINHash != ""
}

// SetPIN hashes and stores the given PIN. An empty PIN clears protection.
func (r *Room) SetPIN(pin string) error {
	if pin == "" {
		r.PINHash = nil
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	h := string(hash)
	r.PINHash = &h
	return nil
}

// CheckPIN verifies a candidate PIN. A room without a PIN accepts any
// candidate. Comparison goes through bcrypt, so timing does not leak
// how close the candidate was.
func (r *Room) CheckPIN(candidate string) bool {
	if !r.HasPIN() {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(*r.PINHash), []byte(candidate)) == nil
}
