// handlers/streaks.go - Streak and leaderboard HTTP Handlers
package handlers

import (
	"errors"
	"log"
	"sort"
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2"

	"leetgrind/services"
)

// GetUserStreaks returns a user's current and longest streaks. The two
// computations are independent reads, so they run concurrently.
// GET /api/users/:id/streaks
func GetUserStreaks(c *fiber.Ctx) error {
	user, ok := loadUser(c)
	if !ok {
		return nil
	}

	tz := roomService.Timezone(user.RoomID)

	var (
		wg                  sync.WaitGroup
		current, longest    int
		currErr, longestErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		current, currErr = streakService.CurrentStreak(user.ID, tz)
	}()
	go func() {
		defer wg.Done()
		longest, longestErr = streakService.LongestStreak(user.ID)
	}()
	wg.Wait()

	if currErr != nil || longestErr != nil {
		log.Printf("Streak computation failed for %s: %v / %v", user.LeetcodeUsername, currErr, longestErr)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to compute streaks"})
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"current_streak": current,
		"longest_streak": longest,
	})
}

// GetUserHistory returns a user's daily results over a recent window.
// GET /api/users/:id/history?days=30
func GetUserHistory(c *fiber.Ctx) error {
	user, ok := loadUser(c)
	if !ok {
		return nil
	}

	days, err := strconv.Atoi(c.Query("days", "30"))
	if err != nil || days <= 0 {
		days = 30
	}
	if days > 365 {
		days = 365
	}

	tz := roomService.Timezone(user.RoomID)
	to, err := tzService.Today(tz)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to resolve timezone"})
	}
	from := to
	for i := 1; i < days; i++ {
		from, err = services.PreviousDate(from)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to compute window"})
		}
	}

	rows, err := resultStore.ListDaily(user.ID, from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load history"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"from":    from,
		"to":      to,
		"results": rows,
	})
}

type LeaderboardEntry struct {
	UserID        uint   `json:"user_id"`
	Username      string `json:"username"`
	DisplayName   string `json:"display_name"`
	CurrentStreak int    `json:"current_streak"`
	DoneToday     bool   `json:"done_today"`
}

// GetRoomLeaderboard ranks a room's members by current streak.
// GET /api/rooms/:code/leaderboard
func GetRoomLeaderboard(c *fiber.Ctx) error {
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

	tz := roomService.Timezone(&room.ID)
	today, err := tzService.Today(tz)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to resolve timezone"})
	}

	entries := make([]LeaderboardEntry, len(members))
	var wg sync.WaitGroup
	for i := range members {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			member := members[i]
			entry := LeaderboardEntry{
				UserID:      member.ID,
				Username:    member.LeetcodeUsername,
				DisplayName: member.DisplayName,
			}
			streak, err := streakService.CurrentStreak(member.ID, tz)
			if err != nil {
				log.Printf("Leaderboard streak failed for %s: %v", member.LeetcodeUsername, err)
			} else {
				entry.CurrentStreak = streak
			}
			if row, err := resultStore.GetDaily(member.ID, today); err == nil {
				entry.DoneToday = row.DidSolve
			}
			entries[i] = entry
		}(i)
	}
	wg.Wait()

	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].CurrentStreak != entries[b].CurrentStreak {
			return entries[a].CurrentStreak > entries[b].CurrentStreak
		}
		return entries[a].DisplayName < entries[b].DisplayName
	})

	return c.JSON(fiber.Map{
		"success":     true,
		"date":        today,
		"leaderboard": entries,
	})
}
