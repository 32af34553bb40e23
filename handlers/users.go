// handlers/users.go - Tracked user HTTP Handlers
package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"leetgrind/leetparse"
	"leetgrind/middleware"
	"leetgrind/services"
)

type RegisterUserRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
}

// RegisterUser starts tracking a LeetCode account with no room.
// POST /api/users
func RegisterUser(c *fiber.Ctx) error {
	var req RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	user, err := userService.RegisterUser(req.Username, req.DisplayName, nil)
	if err != nil {
		return registerError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "user": user})
}

// RegisterRoomMember adds a tracked account to a room. Requires a room
// session for this room.
// POST /api/rooms/:code/users
func RegisterRoomMember(c *fiber.Ctx) error {
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

	var req RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	user, err := userService.RegisterUser(req.Username, req.DisplayName, &room.ID)
	if err != nil {
		return registerError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "user": user})
}

func registerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, leetparse.ErrInvalidUsername):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid LeetCode username"})
	case errors.Is(err, services.ErrDuplicateUser):
		return c.Status(409).JSON(fiber.Map{"success": false, "error": "User already tracked in this room"})
	case errors.Is(err, services.ErrRoomNotFound):
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Room not found"})
	default:
		log.Printf("User registration failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to register user"})
	}
}

// ListRoomMembers returns all tracked users of a room.
// GET /api/rooms/:code/users
func ListRoomMembers(c *fiber.Ctx) error {
	room, err := roomService.GetRoomByCode(c.Params("code"))
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Room not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load room"})
	}

	members, err := userService.ListRoomMembers(room.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to list members"})
	}

	return c.JSON(fiber.Map{"success": true, "members": members})
}

// DeleteRoomMember removes a tracked user and their history. Requires a
// room session for this room.
// DELETE /api/rooms/:code/users/:id
func DeleteRoomMember(c *fiber.Ctx) error {
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

	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user id"})
	}

	user, err := userService.GetUser(uint(userID))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load user"})
	}
	if user.RoomID == nil || *user.RoomID != room.ID {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not in this room"})
	}

	if err := userService.DeleteUser(user.ID); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete user"})
	}

	return c.JSON(fiber.Map{"success": true})
}
