package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/akomarov/hockey-bot/internal/attendance"
	"github.com/akomarov/hockey-bot/internal/database"
	"github.com/akomarov/hockey-bot/internal/lineup"
	"github.com/akomarov/hockey-bot/internal/roster"
	"github.com/akomarov/hockey-bot/internal/schedule"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Seeds a local database with a coach, a squad and one open event so the bot
// can be exercised without a populated group chat.
func main() {
	log.Info("Starting database seeder...")

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "hockey.db"
	}

	db, err := database.InitDB(dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"))
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer db.Close()

	players := roster.New(db)
	events := schedule.New(db)
	ledger := attendance.New(db)
	teams := lineup.NewStore(db)

	squad := []struct {
		id   int64
		name string
	}{
		{1001, "Александр Волков"},
		{1002, "Борис Смирнов"},
		{1003, "Виктор Козлов"},
		{1004, "Глеб Морозов"},
		{1005, "Денис Павлов"},
		{1006, "Егор Соколов"},
		{1007, "Фёдор Лебедев"},
	}
	for _, p := range squad {
		if err := players.Register(p.id, p.name); err != nil {
			log.Fatalf("Failed to register player: %s", err)
		}
	}
	if err := players.SetCoach(squad[0].id); err != nil {
		log.Fatalf("Failed to promote coach: %s", err)
	}

	eventID, err := events.Create("25.10", "Тренировка")
	if err != nil {
		log.Fatalf("Failed to create event: %s", err)
	}
	for _, p := range squad[1:] {
		if err := ledger.Set(eventID, p.id, true); err != nil {
			log.Fatalf("Failed to mark attendance: %s", err)
		}
	}

	former := lineup.NewFormer(players, events, ledger, teams, rand.New(rand.NewSource(time.Now().UnixNano())))
	team, err := former.Form(squad[0].id)
	if err != nil {
		log.Fatalf("Failed to form team: %s", err)
	}

	log.Info("Seeding complete", "eventID", eventID, "teamID", team.ID, "players", team.Players)
}
