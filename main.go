package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akomarov/hockey-bot/internal/attendance"
	"github.com/akomarov/hockey-bot/internal/config"
	"github.com/akomarov/hockey-bot/internal/database"
	server "github.com/akomarov/hockey-bot/internal/http"
	"github.com/akomarov/hockey-bot/internal/lineup"
	"github.com/akomarov/hockey-bot/internal/metrics"
	"github.com/akomarov/hockey-bot/internal/roster"
	"github.com/akomarov/hockey-bot/internal/schedule"
	"github.com/akomarov/hockey-bot/internal/telegram"
	"github.com/charmbracelet/log"
)

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	db, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		db.Close()
	}()

	players := roster.New(db)
	events := schedule.New(db)
	ledger := attendance.New(db)
	teams := lineup.NewStore(db)
	former := lineup.NewFormer(players, events, ledger, teams, rand.New(rand.NewSource(time.Now().UnixNano())))
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	bot, err := telegram.New(cfg.Telegram.Token, players, events, ledger, former, metricsSvc)
	if err != nil {
		log.Fatalf("Failed to connect to Telegram: %s", err)
	}

	s := server.NewServer(players, events, ledger, teams, metricsSvc, metricsHandler, cfg)

	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	botCtx, cancelBot := context.WithCancel(context.Background())
	defer cancelBot()
	go func() {
		log.Info("Bot update loop started")
		if err := bot.Run(botCtx); err != nil && err != context.Canceled {
			log.Error("Bot stopped", "error", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)
		cancelBot()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Bot process shutting down")
}
