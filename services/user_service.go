// services/user_service.go - Tracked user management
package services

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"leetgrind/leetparse"
	"leetgrind/models"
)

const backfillWindowDays = 30

var (
	// ErrDuplicateUser is returned when the username is already tracked in
	// the same room.
	ErrDuplicateUser = errors.New("user already tracked in this room")

	// ErrUserNotFound is returned for lookups of unknown users.
	ErrUserNotFound = errors.New("user not found")
)

type UserService struct {
	db     *gorm.DB
	rooms  *RoomService
	source SubmissionSource
	tzs    *TimezoneService
	store  ResultStore
}

func NewUserService(db *gorm.DB, rooms *RoomService, source SubmissionSource, tzs *TimezoneService, store ResultStore) *UserService {
	return &UserService{db: db, rooms: rooms, source: source, tzs: tzs, store: store}
}

// RegisterUser starts tracking a LeetCode account, optionally inside a room.
// The username may be given as a profile URL. Recent history is backfilled
// over the last 30 days; backfill failures are logged, not fatal, and the next
// sync repairs today's row and the rest stays sparse.
func (s *UserService) RegisterUser(rawUsername, displayName string, roomID *uint) (*models.User, error) {
	username, err := leetparse.NormalizeUsername(rawUsername)
	if err != nil {
		return nil, err
	}

	if roomID != nil {
		if _, err := s.rooms.GetRoomByID(*roomID); err != nil {
			return nil, err
		}
	}

	var count int64
	query := s.db.Model(&models.User{}).Where("leetcode_username = ?", username)
	if roomID != nil {
		query = query.Where("room_id = ?", *roomID)
	} else {
		query = query.Where("room_id IS NULL")
	}
	query.Count(&count)
	if count > 0 {
		return nil, ErrDuplicateUser
	}

	if displayName == "" {
		displayName = username
	}

	user := &models.User{
		LeetcodeUsername: username,
		DisplayName:      displayName,
		RoomID:           roomID,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	if err := s.backfillHistory(user); err != nil {
		log.Printf("Backfill failed for %s: %v", username, err)
	}

	return user, nil
}

// GetUser returns one tracked user.
func (s *UserService) GetUser(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Room").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListRoomMembers returns all tracked users of a room.
func (s *UserService) ListRoomMembers(roomID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.Where("room_id = ?", roomID).Order("display_name ASC").Find(&users).Error
	return users, err
}

// ListAll returns every tracked user, optionally scoped to a room.
func (s *UserService) ListAll(roomID *uint) ([]models.User, error) {
	var users []models.User
	query := s.db.Order("id ASC")
	if roomID != nil {
		query = query.Where("room_id = ?", *roomID)
	}
	err := query.Find(&users).Error
	return users, err
}

// DeleteUser stops tracking a user. Daily results and submissions go with
// the user row.
func (s *UserService) DeleteUser(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.DailyResult{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

// backfillHistory writes a dense 30-day window of daily results from the
// recent submission feed: solved rows where the feed shows an accepted
// submission, explicit not-solved rows everywhere else so streak walks and
// history views see a complete record.
func (s *UserService) backfillHistory(user *models.User) error {
	tz := s.rooms.Timezone(user.RoomID)

	recent, err := s.source.FetchRecent(user.LeetcodeUsername)
	if err != nil {
		return err
	}

	// Latest qualifying submission per date, feed order is newest-first.
	solvedByDate := make(map[string]RecentSubmission)
	byDate := make(map[string][]RecentSubmission)
	for _, sub := range recent {
		date, err := s.tzs.ToZonedDate(sub.Timestamp, tz)
		if err != nil {
			return err
		}
		if _, seen := solvedByDate[date]; !seen {
			solvedByDate[date] = sub
		}
		byDate[date] = append(byDate[date], sub)
	}

	today, err := s.tzs.Today(tz)
	if err != nil {
		return err
	}

	date := today
	for i := 0; i < backfillWindowDays; i++ {
		var status DailyStatus
		if sub, ok := solvedByDate[date]; ok {
			solvedAt := time.Unix(sub.Timestamp, 0).UTC()
			title := sub.Title
			if title == "" {
				title = leetparse.SlugToTitle(sub.TitleSlug)
			}
			status = DailyStatus{
				IsDone:       true,
				SolvedAt:     &solvedAt,
				ProblemTitle: title,
				ProblemSlug:  sub.TitleSlug,
				SubmissionID: sub.ID,
			}
		}
		if err := s.store.UpsertDaily(user.ID, date, status); err != nil {
			return err
		}
		if subs := byDate[date]; len(subs) > 0 {
			_ = s.store.UpsertSubmissions(user.ID, date, subs)
		}

		date, err = PreviousDate(date)
		if err != nil {
			return err
		}
	}

	return nil
}
