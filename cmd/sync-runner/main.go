// cmd/sync-runner - One-shot sync for cron-style invocation
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"leetgrind/database"
	"leetgrind/services"
)

func main() {
	roomCode := flag.String("room", "", "only sync members of this room code")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	database.InitDB()
	database.InitRedis()
	defer database.CloseRedis()

	db := database.GetDB()
	tzs := services.NewTimezoneService(services.SystemClock())
	source := services.NewLeetCodeClient()
	store := services.NewGormResultStore(db)

	rooms := services.NewRoomService(db, tzs)
	status := services.NewStatusService(source, tzs)
	streaks := services.NewStreakService(store, tzs, database.GetRedis())
	users := services.NewUserService(db, rooms, source, tzs, store)
	syncer := services.NewSyncService(users, status, store, rooms, streaks, nil, services.SystemClock())

	var roomID *uint
	if *roomCode != "" {
		room, err := rooms.GetRoomByCode(*roomCode)
		if err != nil {
			fmt.Printf("error: room %q: %v\n", *roomCode, err)
			os.Exit(1)
		}
		roomID = &room.ID
	}

	summary, err := syncer.SyncAll(roomID)
	if err != nil {
		fmt.Println("error: sync failed:", err)
		os.Exit(1)
	}

	fmt.Printf("run %s: %d users, %d solved, %d failed (%dms)\n",
		summary.RunID, summary.Total, summary.Solved, summary.Failed, summary.DurationMS)
	for _, out := range summary.Outcomes {
		switch {
		case !out.Success:
			fmt.Printf("  %-30s ERROR %s\n", out.Username, out.Error)
		case out.IsDone:
			fmt.Printf("  %-30s solved\n", out.Username)
		default:
			fmt.Printf("  %-30s not yet\n", out.Username)
		}
	}

	if summary.Failed > 0 {
		os.Exit(1)
	}
}
