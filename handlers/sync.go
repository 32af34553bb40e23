// handlers/sync.go - Manual sync trigger
package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"leetgrind/services"
)

// TriggerSync runs a sync over all tracked users, or one room's members
// when ?room=<code> is given. Same operation the scheduler runs on its
// interval; the whole batch reports per-user outcomes instead of failing.
// POST /api/sync
func TriggerSync(c *fiber.Ctx) error {
	var roomID *uint
	if code := c.Query("room"); code != "" {
		room, err := roomService.GetRoomByCode(code)
		if err != nil {
			if errors.Is(err, services.ErrRoomNotFound) {
				return c.Status(404).JSON(fiber.Map{"success": false, "error": "Room not found"})
			}
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load room"})
		}
		roomID = &room.ID
	}

	summary, err := syncService.SyncAll(roomID)
	if err != nil {
		log.Printf("Manual sync failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Sync failed"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"summary": summary,
	})
}
