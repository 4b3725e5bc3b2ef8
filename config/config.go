package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// Config holds all runtime settings, loaded once from the environment.
// Components receive it by injection; the only field mutable after
// Load is the reminder channel, guarded by the mutex and persisted
// through PersistChannel when set.
type Config struct {
	DiscordToken     string
	TeamUpAPIKey     string
	TeamUpCalendarID string

	PlayerRoleID     int64
	CoachRoleID      int64
	ManagementRoleID int64

	// ReminderOffsets are hours before an event start at which a
	// reminder fires.
	ReminderOffsets []float64
	CheckInterval   time.Duration
	DailyHour       int
	DailyMinute     int

	RosterPath string
	DBPath     string
	Port       string

	// PersistChannel is called with the new channel ID whenever
	// SetReminderChannel runs, so the override survives restarts.
	PersistChannel func(int64)

	mu                sync.RWMutex
	reminderChannelID int64
}

// Load reads configuration from the environment, applying defaults for
// everything except credentials.
func Load() *Config {
	cfg := &Config{
		DiscordToken:     os.Getenv("DISCORD_BOT_TOKEN"),
		TeamUpAPIKey:     os.Getenv("TEAMUP_API_KEY"),
		TeamUpCalendarID: os.Getenv("TEAMUP_CALENDAR_ID"),

		PlayerRoleID:     envInt64("PLAYER_ROLE_ID", 0),
		CoachRoleID:      envInt64("COACH_ROLE_ID", 0),
		ManagementRoleID: envInt64("MANAGEMENT_ROLE_ID", 0),

		ReminderOffsets: []float64{0.5},
		CheckInterval:   time.Duration(envInt("CHECK_INTERVAL_MINUTES", 5)) * time.Minute,
		DailyHour:       envInt("DAILY_REMINDER_HOUR", 12),
		DailyMinute:     envInt("DAILY_REMINDER_MINUTE", 0),

		RosterPath: envString("ROSTER_PATH", "rosters.json"),
		DBPath:     envString("DB_PATH", "bot_settings.db"),
		Port:       envString("PORT", "8080"),

		reminderChannelID: envInt64("REMINDER_CHANNEL_ID", 0),
	}
	return cfg
}

// ReminderChannelID returns the current reminder channel, or 0 when unset.
func (c *Config) ReminderChannelID() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reminderChannelID
}

// SetReminderChannel atomically replaces the reminder channel and
// persists the new value.
func (c *Config) SetReminderChannel(channelID int64) {
	c.mu.Lock()
	c.reminderChannelID = channelID
	c.mu.Unlock()
	if c.PersistChannel != nil {
		c.PersistChannel(channelID)
	}
}

// Configured reports whether the bot has everything it needs to poll
// the calendar and post reminders.
func (c *Config) Configured() bool {
	return c.DiscordToken != "" &&
		c.TeamUpAPIKey != "" &&
		c.TeamUpCalendarID != "" &&
		c.ReminderChannelID() != 0
}

// CalendarConfigured reports whether the TeamUp credentials are present.
func (c *Config) CalendarConfigured() bool {
	return c.TeamUpAPIKey != "" && c.TeamUpCalendarID != ""
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
