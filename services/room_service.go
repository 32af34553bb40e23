// services/room_service.go - Room (group) management
package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"

	"gorm.io/gorm"

	"leetgrind/models"
)

// ErrRoomNotFound is returned for lookups of unknown or inactive rooms.
var ErrRoomNotFound = errors.New("room not found")

// DefaultTimezone is used for rooms created without an explicit timezone
// and for users who belong to no room. Overridable via DEFAULT_TIMEZONE.
func DefaultTimezone() string {
	if tz := os.Getenv("DEFAULT_TIMEZONE"); tz != "" {
		return tz
	}
	return "UTC"
}

type RoomService struct {
	db  *gorm.DB
	tzs *TimezoneService
}

func NewRoomService(db *gorm.DB, tzs *TimezoneService) *RoomService {
	return &RoomService{db: db, tzs: tzs}
}

// CreateRoom creates a room with a fresh join code. The timezone must be a
// valid IANA name; an empty timezone falls back to the default. An empty
// PIN leaves the room open.
func (s *RoomService) CreateRoom(name, pin, timezone string) (*models.Room, error) {
	if name == "" {
		return nil, errors.New("room name is required")
	}
	if timezone == "" {
		timezone = DefaultTimezone()
	}
	if _, err := s.tzs.Today(timezone); err != nil {
		return nil, err
	}

	room := &models.Room{
		Name:     name,
		RoomCode: s.generateUniqueRoomCode(),
		Timezone: timezone,
	}
	if err := room.SetPIN(pin); err != nil {
		return nil, err
	}

	if err := s.db.Create(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

// GetRoomByID retrieves a room with its members preloaded.
func (s *RoomService) GetRoomByID(roomID uint) (*models.Room, error) {
	var room models.Room
	err := s.db.Preload("Members").First(&room, roomID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// GetRoomByCode retrieves a room by its join code.
func (s *RoomService) GetRoomByCode(code string) (*models.Room, error) {
	var room models.Room
	err := s.db.Where("room_code = ?", code).Preload("Members").First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// VerifyPIN looks up a room by code and checks the candidate PIN against it.
// A room with no PIN accepts any candidate.
func (s *RoomService) VerifyPIN(code, candidate string) (*models.Room, bool, error) {
	room, err := s.GetRoomByCode(code)
	if err != nil {
		return nil, false, err
	}
	return room, room.CheckPIN(candidate), nil
}

// UpdateRoom edits a room's timezone and/or PIN. Nil leaves a field alone;
// a pointer to "" clears the PIN.
func (s *RoomService) UpdateRoom(roomID uint, timezone, pin *string) (*models.Room, error) {
	room, err := s.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}

	if timezone != nil {
		if _, err := s.tzs.Today(*timezone); err != nil {
			return nil, err
		}
		room.Timezone = *timezone
	}
	if pin != nil {
		if err := room.SetPIN(*pin); err != nil {
			return nil, err
		}
	}

	if err := s.db.Save(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

// Timezone resolves the effective timezone for an optional room reference.
func (s *RoomService) Timezone(roomID *uint) string {
	if roomID == nil {
		return DefaultTimezone()
	}
	var room models.Room
	if err := s.db.Select("timezone").First(&room, *roomID).Error; err != nil {
		return DefaultTimezone()
	}
	if room.Timezone == "" {
		return DefaultTimezone()
	}
	return room.Timezone
}

// Code resolves the join code for an optional room reference. Empty when
// the user belongs to no room.
func (s *RoomService) Code(roomID *uint) string {
	if roomID == nil {
		return ""
	}
	var room models.Room
	if err := s.db.Select("room_code").First(&room, *roomID).Error; err != nil {
		return ""
	}
	return room.RoomCode
}

// generateUniqueRoomCode generates a unique 6-character hex code
func (s *RoomService) generateUniqueRoomCode() string {
	for {
		bytes := make([]byte, 3)
		rand.Read(bytes)
		code := hex.EncodeToString(bytes)[:6]

		var count int64
		s.db.Model(&models.Room{}).Where("room_code = ?", code).Count(&count)

		if count == 0 {
			return code
		}
	}
}
