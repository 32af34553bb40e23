// handlers/status.go - Daily status HTTP Handlers
package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"leetgrind/models"
	"leetgrind/services"
)

// GetTodayStatus returns the stored result for today. A missing row reads
// as a conservative "not solved yet" view instead of an error.
// GET /api/users/:id/today
func GetTodayStatus(c *fiber.Ctx) error {
	user, ok := loadUser(c)
	if !ok {
		return nil
	}

	tz := roomService.Timezone(user.RoomID)
	today, err := tzService.Today(tz)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to resolve timezone"})
	}

	row, err := resultStore.GetDaily(user.ID, today)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			log.Printf("Failed to read today's result for %s: %v", user.LeetcodeUsername, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"date":    today,
			"status":  services.DailyStatus{IsDone: false},
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"date":    today,
		"status": services.DailyStatus{
			IsDone:       row.DidSolve,
			SolvedAt:     row.SolvedAt,
			ProblemTitle: row.ProblemTitle,
			ProblemSlug:  row.ProblemSlug,
			SubmissionID: row.SubmissionID,
		},
	})
}

// CheckUserNow queries the source on demand and persists the result. A
// source failure comes back as status "unknown", explicitly not the same
// thing as a confirmed not-solved.
// POST /api/users/:id/check
func CheckUserNow(c *fiber.Ctx) error {
	user, ok := loadUser(c)
	if !ok {
		return nil
	}

	tz := roomService.Timezone(user.RoomID)

	status, err := statusService.EvaluateToday(user.LeetcodeUsername, tz)
	if err != nil {
		if errors.Is(err, services.ErrSourceUnavailable) || errors.Is(err, services.ErrSourceProtocol) {
			return c.Status(502).JSON(fiber.Map{
				"success": false,
				"status":  "unknown",
				"error":   err.Error(),
			})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Check failed"})
	}

	today, err := tzService.Today(tz)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to resolve timezone"})
	}
	if err := resultStore.UpsertDaily(user.ID, today, status); err != nil {
		log.Printf("Failed to persist manual check for %s: %v", user.LeetcodeUsername, err)
	} else {
		streakService.Invalidate(user.ID, tz)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"date":    today,
		"status":  status,
	})
}

// loadUser resolves the :id param to a tracked user, writing the error
// response itself when the lookup fails.
func loadUser(c *fiber.Ctx) (*models.User, bool) {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		_ = c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user id"})
		return nil, false
	}

	user, err := userService.GetUser(uint(userID))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			_ = c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
		} else {
			_ = c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load user"})
		}
		return nil, false
	}
	return user, true
}
