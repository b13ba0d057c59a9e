package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"parkhive/internal/config"
	"parkhive/internal/console"
	"parkhive/internal/db"
	"parkhive/internal/entities"
	"parkhive/internal/logging"
	"parkhive/internal/repository"
	"parkhive/internal/service"
)

func main() {
	godotenv.Load()

	configPath := os.Getenv("PARKHIVE_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Logs.Level, cfg.Logs.Format)
	log.Infof("Starting parkhive (%d slots across %d sections)",
		cfg.Inventory.TotalSlots(), len(cfg.Inventory.Sections))

	seed := func(at time.Time) []db.ParkingSlot {
		return repository.SeedInventory(cfg.Inventory, at)
	}
	repo := repository.NewSlotRepository(seed(time.Now().UTC()))

	notifier := service.NewFeedNotifier(func(n entities.Notification) {
		fmt.Printf("\n[%s] %s: %s\n> ", n.Kind, n.Title, n.Message)
	})

	reservations := service.NewReservationService(repo, notifier, log)
	cancelFlow := service.NewCancelFlow(reservations, notifier, cfg.Reminder.IdleThreshold(), log)

	auth, err := service.NewAuthService(
		repo,
		seed,
		cfg.Auth.DemoEmployeeID,
		cfg.Auth.DemoPassword,
		cfg.Auth.SessionTTL(),
		log,
	)
	if err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}

	janitor := service.NewJobService(repo, cfg.Reminder.StaleAfter(), log)
	c := cron.New()
	if err := janitor.Schedule(c, cfg.Reminder.JanitorSchedule); err != nil {
		log.Fatalf("Failed to start janitor: %v", err)
	}
	c.Start()
	defer c.Stop()
	log.Infof("Janitor scheduled (%s)", cfg.Reminder.JanitorSchedule)

	shell := console.NewShell(auth, reservations, cancelFlow, os.Stdin, os.Stdout, log)
	shell.Run()

	log.Info("Bye")
}
