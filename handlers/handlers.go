// handlers/handlers.go - Handler wiring
package handlers

import (
	"leetgrind/database"
	"leetgrind/services"
)

var (
	roomService   *services.RoomService
	userService   *services.UserService
	statusService *services.StatusService
	streakService *services.StreakService
	syncService   *services.SyncService
	resultStore   services.ResultStore
	tzService     *services.TimezoneService
)

// InitHandlers builds the service graph all handlers share. Must run after
// database.InitDB.
func InitHandlers() {
	db := database.GetDB()
	if db == nil {
		panic("Database not initialized before InitHandlers")
	}

	tzService = services.NewTimezoneService(services.SystemClock())
	source := services.NewLeetCodeClient()
	store := services.NewGormResultStore(db)

	roomService = services.NewRoomService(db, tzService)
	statusService = services.NewStatusService(source, tzService)
	streakService = services.NewStreakService(store, tzService, database.GetRedis())
	userService = services.NewUserService(db, roomService, source, tzService, store)
	syncService = services.NewSyncService(userService, statusService, store, roomService, streakService, LiveHub(), services.SystemClock())
	resultStore = store
}

// SyncServiceRef exposes the wired sync service for the scheduler.
func SyncServiceRef() *services.SyncService {
	return syncService
}
