// database/migrate.go - Database Migration Runner
package database

import (
	"leetgrind/models"
	"log"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.Room{},
		&models.User{},
		&models.DailyResult{},
		&models.Submission{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	// Create supporting indexes (uniqueness constraints live on the models)
	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes the hot queries rely on
func createIndexes() {
	db := GetDB()

	// Room lookups by join code
	db.Exec("CREATE INDEX IF NOT EXISTS idx_rooms_code ON rooms(room_code)")

	// Member listing per room
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_room ON users(room_id)")

	// Streak walks read a user's results newest-first
	db.Exec("CREATE INDEX IF NOT EXISTS idx_daily_results_user_date_desc ON daily_results(user_id, date DESC)")

	// History display per user and day
	db.Exec("CREATE INDEX IF NOT EXISTS idx_submissions_user_date ON submissions(user_id, date)")
}
