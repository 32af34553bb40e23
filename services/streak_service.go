// services/streak_service.go - Streak computation over daily results
package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// StreakService derives current and longest consecutive-day streaks from a
// user's daily result history. Both computations are read-only and safe to
// run concurrently. When a Redis client is present, current streaks are
// cached until the next midnight in the user's timezone; pass nil to skip
// caching entirely.
type StreakService struct {
	store ResultStore
	tzs   *TimezoneService
	cache *redis.Client
}

func NewStreakService(store ResultStore, tzs *TimezoneService, cache *redis.Client) *StreakService {
	return &StreakService{store: store, tzs: tzs, cache: cache}
}

// CurrentStreak counts consecutive solved days ending at today in tz.
// A missing row for today does not break the streak: the user simply has
// not solved yet ("pending, not broken"). An explicit not-solved row for
// today does break it.
func (s *StreakService) CurrentStreak(userID uint, tz string) (int, error) {
	today, err := s.tzs.Today(tz)
	if err != nil {
		return 0, err
	}

	if cached, ok := s.cachedStreak(userID, today); ok {
		return cached, nil
	}

	rows, err := s.store.ListUpTo(userID, today)
	if err != nil {
		return 0, err
	}

	anchor := today
	if len(rows) > 0 && rows[0].Date == today {
		if !rows[0].DidSolve {
			// Today is an explicit miss, not a pending day.
			s.storeStreak(userID, today, tz, 0)
			return 0, nil
		}
	} else {
		anchor, err = PreviousDate(today)
		if err != nil {
			return 0, err
		}
	}

	streak := 0
	expected := anchor
	for _, row := range rows {
		if row.Date > expected {
			// The pending today row sits above the anchor; skip it.
			continue
		}
		if row.Date != expected || !row.DidSolve {
			break
		}
		streak++
		expected, err = PreviousDate(expected)
		if err != nil {
			return 0, err
		}
	}

	s.storeStreak(userID, today, tz, streak)
	return streak, nil
}

// LongestStreak returns the maximum consecutive solved-day run in the
// user's entire history. A day with no row at all breaks the chain exactly
// like a recorded miss does.
func (s *StreakService) LongestStreak(userID uint) (int, error) {
	rows, err := s.store.ListAll(userID)
	if err != nil {
		return 0, err
	}

	longest := 0
	run := 0
	prevDate := ""
	for _, row := range rows {
		if !row.DidSolve {
			run = 0
			prevDate = row.Date
			continue
		}
		consecutive := false
		if prevDate != "" {
			gap, err := DaysBetween(prevDate, row.Date)
			if err != nil {
				return 0, err
			}
			consecutive = gap == 1
		}
		if consecutive {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prevDate = row.Date
	}

	return longest, nil
}

// Invalidate drops the cached current streak for today. Called after a sync
// writes a fresh result so readers never see a pre-solve value.
func (s *StreakService) Invalidate(userID uint, tz string) {
	if s.cache == nil {
		return
	}
	today, err := s.tzs.Today(tz)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Del(ctx, s.cacheKey(userID, today)).Err(); err != nil {
		log.Printf("Failed to invalidate streak cache for user %d: %v", userID, err)
	}
}

func (s *StreakService) cacheKey(userID uint, today string) string {
	return fmt.Sprintf("streak:current:%d:%s", userID, today)
}

func (s *StreakService) cachedStreak(userID uint, today string) (int, bool) {
	if s.cache == nil {
		return 0, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	val, err := s.cache.Get(ctx, s.cacheKey(userID, today)).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (s *StreakService) storeStreak(userID uint, today, tz string, streak int) {
	if s.cache == nil {
		return
	}
	// Expire at the day boundary: a cached value is only valid for the
	// calendar day it was computed on.
	secs, err := s.tzs.SecondsUntilMidnight(tz)
	if err != nil || secs <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Set(ctx, s.cacheKey(userID, today), streak, time.Duration(secs)*time.Second).Err(); err != nil {
		log.Printf("Failed to cache streak for user %d: %v", userID, err)
	}
}
