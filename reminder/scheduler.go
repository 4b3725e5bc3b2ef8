package reminder

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"discord-scrim-bot/config"
	"discord-scrim-bot/embed"
	"discord-scrim-bot/teamup"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
)

// Calendar is the slice of the TeamUp client the scheduler needs.
type Calendar interface {
	Upcoming(days int) ([]teamup.Event, error)
	Events(startDate, endDate string) ([]teamup.Event, error)
	SubcalendarName(ids []int64) string
}

// Rosters resolves a team name to its player list.
type Rosters interface {
	Get(team string) ([]string, bool)
}

// Notifier dispatches a reminder to the configured channel.
type Notifier interface {
	Send(content string, embed *discordgo.MessageEmbed) error
}

const (
	upcomingDays = 7
	// windowSeconds is the half-width of the firing window around the
	// exact reminder instant. It must be at least half the check
	// interval or a reminder can fall between two polls.
	windowSeconds = 300
	// evictAfter is how long after an event's start its notified keys
	// are kept before pruning.
	evictAfter = 48 * time.Hour
)

// Scheduler runs the window-reminder poller and the daily digest.
// Both passes are plain methods so admin commands and tests can invoke
// a single check without waiting for the timers.
type Scheduler struct {
	cfg      *config.Config
	calendar Calendar
	rosters  Rosters
	notifier Notifier

	now func() time.Time

	mu       sync.Mutex
	notified map[string]time.Time // reminder key -> event start, for pruning

	cron *cron.Cron
	stop chan struct{}
	done chan struct{}
}

// New builds a scheduler. Run must be called to start the timers.
func New(cfg *config.Config, calendar Calendar, rosters Rosters, notifier Notifier) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		calendar: calendar,
		rosters:  rosters,
		notifier: notifier,
		now:      time.Now,
		notified: make(map[string]time.Time),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run starts the interval poller and the daily digest schedule. Call
// it once the Discord session is open so the first pass never races
// the gateway handshake.
func (s *Scheduler) Run() error {
	s.cron = cron.New()
	spec := fmt.Sprintf("%d %d * * *", s.cfg.DailyMinute, s.cfg.DailyHour)
	if _, err := s.cron.AddFunc(spec, s.DailySummary); err != nil {
		return fmt.Errorf("scheduling daily summary: %w", err)
	}
	s.cron.Start()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.cfg.CheckInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.CheckReminders()
			case <-s.stop:
				return
			}
		}
	}()

	log.Printf("✅ Reminder checker started! Checking every %s", s.cfg.CheckInterval)
	log.Printf("✅ Daily summary scheduled at %02d:%02d", s.cfg.DailyHour, s.cfg.DailyMinute)
	return nil
}

// Stop cancels both timers and waits for the poller goroutine to exit.
func (s *Scheduler) Stop() {
	close(s.stop)
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	<-s.done
}

// CheckReminders runs one window pass: fetch the next week of events
// and fire every (event, offset) pair whose reminder instant is within
// the window and not yet announced.
func (s *Scheduler) CheckReminders() {
	if s.cfg.ReminderChannelID() == 0 {
		log.Println("Warning: Skipping reminder check, reminder channel not set.")
		return
	}
	if !s.cfg.CalendarConfigured() {
		log.Println("Warning: Skipping reminder check, TeamUp credentials not set.")
		return
	}

	events, err := s.calendar.Upcoming(upcomingDays)
	if err != nil {
		log.Printf("Error fetching events: %v", err)
		return
	}

	for _, ev := range events {
		for _, hours := range s.cfg.ReminderOffsets {
			if s.claim(ev, hours) {
				s.sendReminder(ev, hours)
			}
		}
	}

	s.prune()
}

// claim reports whether the (event, offset) reminder is due now, and
// marks it sent when it is. Marking happens before the send so a
// dispatch failure never causes a duplicate (at-most-once).
func (s *Scheduler) claim(ev teamup.Event, hours float64) bool {
	reminderTime := ev.Start.Add(-offsetDuration(hours))
	delta := s.now().Sub(reminderTime).Seconds()
	if delta < -windowSeconds || delta > windowSeconds {
		return false
	}

	key := reminderKey(ev.ID, hours)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, sent := s.notified[key]; sent {
		return false
	}
	s.notified[key] = ev.Start
	return true
}

func (s *Scheduler) sendReminder(ev teamup.Event, hours float64) {
	var roster []string
	if team := strings.TrimSpace(ev.Title); team != "" {
		roster, _ = s.rosters.Get(team)
	}

	var eventType string
	if len(ev.SubcalendarIDs) > 0 {
		eventType = s.calendar.SubcalendarName(ev.SubcalendarIDs)
	}

	content := reminderBanner(hours)
	if mentions := s.playerMentions(); mentions != "" {
		content += "\n" + mentions
	}

	if err := s.notifier.Send(content, embed.Event(ev, roster, eventType)); err != nil {
		// Key stays marked: losing one reminder beats sending it twice.
		log.Printf("❌ Error sending reminder: %v", err)
		return
	}
	log.Printf("✅ Sent %gh reminder for: %s", hours, ev.Title)
}

// DailySummary runs one digest pass: today's events plus a flavor quote.
func (s *Scheduler) DailySummary() {
	if s.cfg.ReminderChannelID() == 0 {
		log.Println("Warning: Skipping daily summary, reminder channel not set.")
		return
	}
	if !s.cfg.CalendarConfigured() {
		log.Println("Warning: Skipping daily summary, TeamUp credentials not set.")
		return
	}

	today := s.now().Format("2006-01-02")
	events, err := s.calendar.Events(today, today)
	if err != nil {
		log.Printf("Error fetching today's events: %v", err)
		events = nil
	}

	types := make(map[string]string)
	rosters := make(map[string][]string)
	for _, ev := range events {
		if len(ev.SubcalendarIDs) > 0 {
			types[ev.ID] = s.calendar.SubcalendarName(ev.SubcalendarIDs)
		}
		if team := strings.TrimSpace(ev.Title); team != "" {
			if roster, ok := s.rosters.Get(team); ok {
				rosters[ev.ID] = roster
			}
		}
	}

	digest := embed.Daily(events, types, rosters, randomQuote())
	if err := s.notifier.Send(s.playerMentions(), digest); err != nil {
		log.Printf("❌ Error sending daily summary: %v", err)
		return
	}
	log.Printf("✅ Sent daily summary with %d event(s)", len(events))
}

// prune drops notified keys for events whose start passed long ago.
// Those keys are far outside any firing window, so dropping them only
// bounds memory.
func (s *Scheduler) prune() {
	cutoff := s.now().Add(-evictAfter)
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, start := range s.notified {
		if start.Before(cutoff) {
			delete(s.notified, key)
		}
	}
}

func (s *Scheduler) playerMentions() string {
	var mentions []string
	if s.cfg.PlayerRoleID != 0 {
		mentions = append(mentions, fmt.Sprintf("<@&%d>", s.cfg.PlayerRoleID))
	}
	if s.cfg.CoachRoleID != 0 {
		mentions = append(mentions, fmt.Sprintf("<@&%d>", s.cfg.CoachRoleID))
	}
	return strings.Join(mentions, " ")
}

func reminderKey(eventID string, hours float64) string {
	return fmt.Sprintf("%s_%g", eventID, hours)
}

func offsetDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}

func reminderBanner(hours float64) string {
	minutes := int(hours * 60)
	if minutes < 60 {
		return fmt.Sprintf("🚨 **EVENT STARTING IN %d MINUTES**", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("🚨 **EVENT STARTING IN %d %s**", minutes/60, strings.ToUpper(plural(minutes/60, "hour")))
	}
	return fmt.Sprintf("🚨 **EVENT STARTING IN %d MINUTES**", minutes)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
