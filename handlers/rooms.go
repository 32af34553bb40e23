// handlers/rooms.go - Room HTTP Handlers
package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"leetgrind/middleware"
	"leetgrind/services"
)

type CreateRoomRequest struct {
	Name     string `json:"name"`
	PIN      string `json:"pin,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

type VerifyRoomRequest struct {
	PIN string `json:"pin"`
}

type UpdateRoomRequest struct {
	Timezone *string `json:"timezone,omitempty"`
	PIN      *string `json:"pin,omitempty"`
}

// CreateRoom creates a new room
// POST /api/rooms
func CreateRoom(c *fiber.Ctx) error {
	var req CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Room name is required"})
	}

	room, err := roomService.CreateRoom(req.Name, req.PIN, req.Timezone)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTimezone) {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
		}
		log.Printf("Room creation failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create room"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"room":    room,
	})
}

// GetRoom returns a room and its members
// GET /api/rooms/:code
func GetRoom(c *fiber.Ctx) error {
	room, err := roomService.GetRoomByCode(c.Params("code"))
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Room not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load room"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"room":    room,
		"has_pin": room.HasPIN(),
	})
}

// VerifyRoom checks a candidate PIN and issues a room session token on
// success. A room without a PIN accepts any candidate.
// POST /api/rooms/:code/verify
func VerifyRoom(c *fiber.Ctx) error {
	var req VerifyRoomRequest
	// Empty body is fine for open rooms
	_ = c.BodyParser(&req)

	room, valid, err := roomService.VerifyPIN(c.Params("code"), req.PIN)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Room not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to verify room"})
	}
	if !valid {
		return c.Status(401).JSON(fiber.Map{"success": false, "valid": false, "error": "Invalid PIN"})
	}

	token, err := middleware.IssueRoomToken(room.ID, room.RoomCode)
	if err != nil {
		log.Printf("Failed to issue room token for %s: %v", room.RoomCode, err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create session"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"valid":   true,
		"token":   token,
	})
}

// UpdateRoom edits a room's timezone and/or PIN. Requires a room session
// for this room.
// PUT /api/rooms/:code
func UpdateRoom(c *fiber.Ctx) error {
	room, err := roomService.GetRoomByCode(c.Params("code"))
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Room not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load room"})
	}

	verifiedID, err := middleware.VerifiedRoomID(c)
	if err != nil || verifiedID != room.ID {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Session is for a different room"})
	}

	var req UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	updated, err := roomService.UpdateRoom(room.ID, req.Timezone, req.PIN)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTimezone) {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update room"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"room":    updated,
	})
}
