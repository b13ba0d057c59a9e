package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the application configuration, loaded from a TOML file with a
// handful of environment overrides on top.
type Config struct {
	Inventory InventoryConfig `toml:"inventory"`
	Reminder  ReminderConfig  `toml:"reminder"`
	Auth      AuthConfig      `toml:"auth"`
	Logs      LogsConfig      `toml:"logs"`
}

// InventoryConfig describes the fixed slot inventory seeded at startup.
type InventoryConfig struct {
	// Sections in generation order; slot ids are numbered per section.
	Sections []SectionConfig `toml:"sections"`
	// SeedAvailable is how many slots, counted in generation order,
	// start out available. The rest are seeded as demo bookings.
	SeedAvailable int `toml:"seed_available"`
}

// SectionConfig is one section of the garage.
type SectionConfig struct {
	Code  string `toml:"code"`
	Slots int    `toml:"slots"`
}

// ReminderConfig tunes the cancel-flow inactivity reminder.
type ReminderConfig struct {
	IdleSeconds       int    `toml:"idle_seconds"`
	StaleAfterSeconds int    `toml:"stale_after_seconds"`
	JanitorSchedule   string `toml:"janitor_schedule"`
}

// AuthConfig tunes the local auth shell.
type AuthConfig struct {
	SessionTTLMinutes int    `toml:"session_ttl_minutes"`
	DemoEmployeeID    string `toml:"demo_employee_id"`
	DemoPassword      string `toml:"demo_password"`
}

// LogsConfig tunes logging output.
type LogsConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// IdleThreshold returns the reminder idle threshold as a duration.
func (r ReminderConfig) IdleThreshold() time.Duration {
	return time.Duration(r.IdleSeconds) * time.Second
}

// StaleAfter returns how long a fired warning may linger before the janitor
// clears it.
func (r ReminderConfig) StaleAfter() time.Duration {
	return time.Duration(r.StaleAfterSeconds) * time.Second
}

// SessionTTL returns the session lifetime as a duration.
func (a AuthConfig) SessionTTL() time.Duration {
	return time.Duration(a.SessionTTLMinutes) * time.Minute
}

// TotalSlots returns the size of the configured inventory.
func (i InventoryConfig) TotalSlots() int {
	total := 0
	for _, s := range i.Sections {
		total += s.Slots
	}
	return total
}

// Default returns the configuration matching the demo garage: 100 slots
// across US/LS/B3 with the first 30 available, a 30 second idle reminder
// and a minutely janitor.
func Default() *Config {
	return &Config{
		Inventory: InventoryConfig{
			Sections: []SectionConfig{
				{Code: "US", Slots: 34},
				{Code: "LS", Slots: 33},
				{Code: "B3", Slots: 33},
			},
			SeedAvailable: 30,
		},
		Reminder: ReminderConfig{
			IdleSeconds:       30,
			StaleAfterSeconds: 300,
			JanitorSchedule:   "@every 1m",
		},
		Auth: AuthConfig{
			SessionTTLMinutes: 60,
			DemoEmployeeID:    "EMP001",
			DemoPassword:      "Park1234",
		},
		Logs: LogsConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the TOML file at path on top of the defaults and applies
// environment overrides. A missing file is not an error; the defaults
// describe the stock demo garage.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if lvl := os.Getenv("PARKHIVE_LOG_LEVEL"); lvl != "" {
		cfg.Logs.Level = lvl
	}
	if idle := os.Getenv("PARKHIVE_IDLE_SECONDS"); idle != "" {
		n, err := strconv.Atoi(idle)
		if err != nil {
			return nil, fmt.Errorf("invalid PARKHIVE_IDLE_SECONDS %q: %w", idle, err)
		}
		cfg.Reminder.IdleSeconds = n
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Inventory.Sections) == 0 {
		return fmt.Errorf("inventory needs at least one section")
	}
	seen := make(map[string]bool, len(c.Inventory.Sections))
	for _, s := range c.Inventory.Sections {
		if s.Code == "" || s.Slots <= 0 {
			return fmt.Errorf("section %q must have a code and a positive slot count", s.Code)
		}
		if seen[s.Code] {
			return fmt.Errorf("duplicate section code %q", s.Code)
		}
		seen[s.Code] = true
	}
	if c.Inventory.SeedAvailable < 0 || c.Inventory.SeedAvailable > c.Inventory.TotalSlots() {
		return fmt.Errorf("seed_available %d out of range for %d slots",
			c.Inventory.SeedAvailable, c.Inventory.TotalSlots())
	}
	if c.Reminder.IdleSeconds <= 0 {
		return fmt.Errorf("reminder idle_seconds must be positive")
	}
	if c.Auth.SessionTTLMinutes <= 0 {
		return fmt.Errorf("auth session_ttl_minutes must be positive")
	}
	return nil
}
