package reminder

import (
	"errors"
	"strings"
	"testing"
	"time"

	"discord-scrim-bot/config"
	"discord-scrim-bot/teamup"

	"github.com/bwmarrin/discordgo"
)

type fakeCalendar struct {
	events []teamup.Event
	err    error
	calls  int
	names  map[int64]string
}

func (f *fakeCalendar) Upcoming(days int) ([]teamup.Event, error) {
	f.calls++
	return f.events, f.err
}

func (f *fakeCalendar) Events(start, end string) ([]teamup.Event, error) {
	f.calls++
	return f.events, f.err
}

func (f *fakeCalendar) SubcalendarName(ids []int64) string {
	if len(ids) == 0 {
		return "Unknown"
	}
	if name, ok := f.names[ids[0]]; ok {
		return name
	}
	return "Unknown"
}

type sent struct {
	content string
	embed   *discordgo.MessageEmbed
}

type fakeNotifier struct {
	sent []sent
	err  error
}

func (f *fakeNotifier) Send(content string, embed *discordgo.MessageEmbed) error {
	f.sent = append(f.sent, sent{content, embed})
	return f.err
}

type fakeRosters map[string][]string

func (f fakeRosters) Get(team string) ([]string, bool) {
	players, ok := f[team]
	return players, ok
}

func testConfig() *config.Config {
	cfg := &config.Config{
		TeamUpAPIKey:     "key",
		TeamUpCalendarID: "cal",
		ReminderOffsets:  []float64{0.5},
		CheckInterval:    5 * time.Minute,
		DailyHour:        12,
	}
	cfg.SetReminderChannel(12345)
	return cfg
}

func testScheduler(cal *fakeCalendar, rosters fakeRosters, notifier *fakeNotifier) *Scheduler {
	return New(testConfig(), cal, rosters, notifier)
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func event(id, title, start string, t *testing.T) teamup.Event {
	startTime := at(t, start)
	return teamup.Event{
		ID:    id,
		Title: title,
		Start: startTime,
		End:   startTime.Add(2 * time.Hour),
	}
}

// Event at 15:00Z with a 0.5h offset has its reminder instant at
// 14:30Z. A poll at 14:32 (delta +120s) fires, a second poll at 14:36
// stays quiet for the same key, and a never-seen key polled at 14:37
// (delta +420s) is outside the window.
func TestCheckRemindersWindowAndDedup(t *testing.T) {
	cal := &fakeCalendar{events: []teamup.Event{
		event("100", "Alpha", "2025-02-17T15:00:00Z", t),
	}}
	notifier := &fakeNotifier{}
	s := testScheduler(cal, fakeRosters{}, notifier)

	s.now = func() time.Time { return at(t, "2025-02-17T14:32:00Z") }
	s.CheckReminders()
	if len(notifier.sent) != 1 {
		t.Fatalf("sends after first poll = %d, want 1", len(notifier.sent))
	}

	s.now = func() time.Time { return at(t, "2025-02-17T14:36:00Z") }
	s.CheckReminders()
	if len(notifier.sent) != 1 {
		t.Fatalf("sends after second poll = %d, want 1 (already notified)", len(notifier.sent))
	}

	cal.events = []teamup.Event{event("200", "Bravo", "2025-02-17T15:00:00Z", t)}
	s.now = func() time.Time { return at(t, "2025-02-17T14:37:00Z") }
	s.CheckReminders()
	if len(notifier.sent) != 1 {
		t.Fatalf("sends after out-of-window poll = %d, want 1", len(notifier.sent))
	}
	if _, marked := s.notified[reminderKey("200", 0.5)]; marked {
		t.Error("out-of-window event was marked notified")
	}
}

// With poll interval I and half-window W >= I/2, a reminder instant
// falling between two consecutive polls is captured by exactly one of
// them.
func TestConsecutivePollsCoverWindow(t *testing.T) {
	// Reminder instant 14:32:30, between polls at 14:30 and 14:35.
	cal := &fakeCalendar{events: []teamup.Event{
		event("100", "Alpha", "2025-02-17T15:02:30Z", t),
	}}
	notifier := &fakeNotifier{}
	s := testScheduler(cal, fakeRosters{}, notifier)

	for _, poll := range []string{"2025-02-17T14:30:00Z", "2025-02-17T14:35:00Z"} {
		pollTime := at(t, poll)
		s.now = func() time.Time { return pollTime }
		s.CheckReminders()
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("sends across two polls = %d, want exactly 1", len(notifier.sent))
	}
}

func TestFetchErrorLeavesNoSideEffects(t *testing.T) {
	cal := &fakeCalendar{err: errors.New("connection refused")}
	notifier := &fakeNotifier{}
	s := testScheduler(cal, fakeRosters{}, notifier)
	s.now = func() time.Time { return at(t, "2025-02-17T14:32:00Z") }

	s.CheckReminders()

	if len(notifier.sent) != 0 {
		t.Errorf("sends after fetch error = %d, want 0", len(notifier.sent))
	}
	if len(s.notified) != 0 {
		t.Errorf("notified set after fetch error = %v, want empty", s.notified)
	}
}

func TestSendFailureDoesNotRetry(t *testing.T) {
	cal := &fakeCalendar{events: []teamup.Event{
		event("100", "Alpha", "2025-02-17T15:00:00Z", t),
	}}
	notifier := &fakeNotifier{err: errors.New("channel gone")}
	s := testScheduler(cal, fakeRosters{}, notifier)

	s.now = func() time.Time { return at(t, "2025-02-17T14:32:00Z") }
	s.CheckReminders()
	if len(notifier.sent) != 1 {
		t.Fatalf("send attempts = %d, want 1", len(notifier.sent))
	}

	// Still inside the window: key was marked before the failed send,
	// so there is no second attempt (at-most-once).
	s.now = func() time.Time { return at(t, "2025-02-17T14:34:00Z") }
	s.CheckReminders()
	if len(notifier.sent) != 1 {
		t.Errorf("send attempts after retry window = %d, want 1", len(notifier.sent))
	}
}

func TestSkipsCycleWhenUnconfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{
			name: "no reminder channel",
			cfg: &config.Config{
				TeamUpAPIKey:     "key",
				TeamUpCalendarID: "cal",
				ReminderOffsets:  []float64{0.5},
			},
		},
		{
			name: "no calendar credentials",
			cfg: func() *config.Config {
				cfg := &config.Config{ReminderOffsets: []float64{0.5}}
				cfg.SetReminderChannel(12345)
				return cfg
			}(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := &fakeCalendar{events: []teamup.Event{
				event("100", "Alpha", "2025-02-17T15:00:00Z", t),
			}}
			notifier := &fakeNotifier{}
			s := New(tt.cfg, cal, fakeRosters{}, notifier)
			s.now = func() time.Time { return at(t, "2025-02-17T14:32:00Z") }

			s.CheckReminders()
			s.DailySummary()

			if cal.calls != 0 {
				t.Errorf("calendar calls = %d, want 0 (cycle skipped entirely)", cal.calls)
			}
			if len(notifier.sent) != 0 {
				t.Errorf("sends = %d, want 0", len(notifier.sent))
			}
		})
	}
}

func TestReminderIncludesRosterAndMentions(t *testing.T) {
	cal := &fakeCalendar{
		events: []teamup.Event{
			{
				ID:             "100",
				Title:          "Alpha",
				Start:          at(t, "2025-02-17T15:00:00Z"),
				End:            at(t, "2025-02-17T17:00:00Z"),
				SubcalendarIDs: []int64{7},
			},
		},
		names: map[int64]string{7: "Scrim"},
	}
	notifier := &fakeNotifier{}
	s := testScheduler(cal, fakeRosters{"Alpha": {"P1", "P2"}}, notifier)
	s.cfg.PlayerRoleID = 111
	s.cfg.CoachRoleID = 222

	s.now = func() time.Time { return at(t, "2025-02-17T14:30:00Z") }
	s.CheckReminders()

	if len(notifier.sent) != 1 {
		t.Fatalf("sends = %d, want 1", len(notifier.sent))
	}
	msg := notifier.sent[0]
	if !strings.Contains(msg.content, "30 MINUTES") {
		t.Errorf("content %q missing the 30-minute banner", msg.content)
	}
	if !strings.Contains(msg.content, "<@&111>") || !strings.Contains(msg.content, "<@&222>") {
		t.Errorf("content %q missing role mentions", msg.content)
	}
	if msg.embed == nil {
		t.Fatal("reminder sent without an embed")
	}
	if !strings.Contains(msg.embed.Title, "Alpha") || !strings.Contains(msg.embed.Title, "Scrim") {
		t.Errorf("embed title %q missing team or type", msg.embed.Title)
	}

	var rosterField string
	for _, f := range msg.embed.Fields {
		if strings.Contains(f.Name, "Roster") {
			rosterField = f.Value
		}
	}
	if !strings.Contains(rosterField, "P1") || !strings.Contains(rosterField, "P2") {
		t.Errorf("roster field %q missing players", rosterField)
	}
}

func TestMissingRosterIsNotAnError(t *testing.T) {
	cal := &fakeCalendar{events: []teamup.Event{
		event("100", "NoSuchTeam", "2025-02-17T15:00:00Z", t),
	}}
	notifier := &fakeNotifier{}
	s := testScheduler(cal, fakeRosters{}, notifier)

	s.now = func() time.Time { return at(t, "2025-02-17T14:30:00Z") }
	s.CheckReminders()

	if len(notifier.sent) != 1 {
		t.Fatalf("sends = %d, want 1 (missing roster is best-effort)", len(notifier.sent))
	}
}

func TestPruneDropsStaleKeys(t *testing.T) {
	cal := &fakeCalendar{}
	s := testScheduler(cal, fakeRosters{}, &fakeNotifier{})

	staleStart := at(t, "2025-02-10T15:00:00Z")
	freshStart := at(t, "2025-02-17T15:00:00Z")
	s.notified[reminderKey("old", 0.5)] = staleStart
	s.notified[reminderKey("new", 0.5)] = freshStart

	s.now = func() time.Time { return at(t, "2025-02-17T14:32:00Z") }
	s.CheckReminders()

	if _, ok := s.notified[reminderKey("old", 0.5)]; ok {
		t.Error("key for event >48h past was not pruned")
	}
	if _, ok := s.notified[reminderKey("new", 0.5)]; !ok {
		t.Error("key for recent event was pruned")
	}
}

func TestDailySummaryWithEvents(t *testing.T) {
	cal := &fakeCalendar{
		events: []teamup.Event{
			{
				ID:             "100",
				Title:          "Alpha",
				Start:          at(t, "2025-02-17T15:00:00Z"),
				End:            at(t, "2025-02-17T17:00:00Z"),
				Who:            "Rivals",
				SubcalendarIDs: []int64{7},
			},
		},
		names: map[int64]string{7: "Official"},
	}
	notifier := &fakeNotifier{}
	s := testScheduler(cal, fakeRosters{"Alpha": {"P1"}}, notifier)

	s.now = func() time.Time { return at(t, "2025-02-17T12:00:00Z") }
	s.DailySummary()

	if len(notifier.sent) != 1 {
		t.Fatalf("sends = %d, want 1", len(notifier.sent))
	}
	digest := notifier.sent[0].embed
	if digest == nil {
		t.Fatal("daily summary sent without an embed")
	}
	var schedule string
	for _, f := range digest.Fields {
		if strings.Contains(f.Name, "Today's Schedule") {
			schedule = f.Value
		}
	}
	for _, want := range []string{"Alpha", "Official", "Rivals", "P1"} {
		if !strings.Contains(schedule, want) {
			t.Errorf("schedule field %q missing %q", schedule, want)
		}
	}
}

func TestDailySummaryNoEventsFallback(t *testing.T) {
	for _, tt := range []struct {
		name string
		cal  *fakeCalendar
	}{
		{"empty calendar", &fakeCalendar{}},
		{"fetch error degrades to no events", &fakeCalendar{err: errors.New("timeout")}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &fakeNotifier{}
			s := testScheduler(tt.cal, fakeRosters{}, notifier)
			s.now = func() time.Time { return at(t, "2025-02-17T12:00:00Z") }

			s.DailySummary()

			if len(notifier.sent) != 1 {
				t.Fatalf("sends = %d, want 1", len(notifier.sent))
			}
			digest := notifier.sent[0].embed
			if len(digest.Fields) != 1 || !strings.Contains(digest.Fields[0].Value, "No scrims scheduled") {
				t.Errorf("digest fields = %+v, want the no-events fallback", digest.Fields)
			}
		})
	}
}

func TestRunStopTearsDownCleanly(t *testing.T) {
	cfg := &config.Config{
		ReminderOffsets: []float64{0.5},
		CheckInterval:   time.Hour,
		DailyHour:       12,
	}
	s := New(cfg, &fakeCalendar{}, fakeRosters{}, &fakeNotifier{})

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestReminderKeyFormat(t *testing.T) {
	if got := reminderKey("100", 0.5); got != "100_0.5" {
		t.Errorf("reminderKey = %q, want 100_0.5", got)
	}
	if got := reminderKey("100", 2); got != "100_2" {
		t.Errorf("reminderKey = %q, want 100_2", got)
	}
}
