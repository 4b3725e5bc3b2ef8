package handler

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"discord-scrim-bot/embed"

	"github.com/bwmarrin/discordgo"
)

func (h *Handler) handleSetReminderChannel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	channelID, err := strconv.ParseInt(i.ChannelID, 10, 64)
	if err != nil {
		respondEphemeral(s, i, "❌ Could not resolve this channel.")
		return
	}
	h.Config.SetReminderChannel(channelID)
	respond(s, i, fmt.Sprintf("✅ Reminder channel set to <#%s>", i.ChannelID))
}

// handleTestReminder posts the first upcoming event as a dry-run
// reminder so admins can verify formatting and mentions.
func (h *Handler) handleTestReminder(s *discordgo.Session, i *discordgo.InteractionCreate) {
	events, err := h.Calendar.Upcoming(7)
	if err != nil || len(events) == 0 {
		respond(s, i, "❌ No events found to test with!")
		return
	}

	ev := events[0]
	var eventType string
	if len(ev.SubcalendarIDs) > 0 {
		eventType = h.Calendar.SubcalendarName(ev.SubcalendarIDs)
	}
	var roster []string
	if team := strings.TrimSpace(ev.Title); team != "" {
		roster, _ = h.Rosters.Get(team)
	}

	var mentions []string
	if h.Config.PlayerRoleID != 0 {
		mentions = append(mentions, fmt.Sprintf("<@&%d>", h.Config.PlayerRoleID))
	}
	if h.Config.CoachRoleID != 0 {
		mentions = append(mentions, fmt.Sprintf("<@&%d>", h.Config.CoachRoleID))
	}

	content := "🧪 **TEST REMINDER**"
	if len(mentions) > 0 {
		content += "\n" + strings.Join(mentions, " ")
	}
	respondEmbed(s, i, content, embed.Event(ev, roster, eventType))
}

func (h *Handler) handleBotInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	offsets := make([]string, 0, len(h.Config.ReminderOffsets))
	for _, hours := range h.Config.ReminderOffsets {
		offsets = append(offsets, fmt.Sprintf("%gh", hours))
	}

	respondEmbed(s, i, "", embed.BotInfo(embed.BotInfoData{
		CalendarConnected: h.Config.CalendarConfigured(),
		ReminderChannelID: h.Config.ReminderChannelID(),
		CheckInterval:     "Every " + h.Config.CheckInterval.String(),
		ReminderOffsets:   strings.Join(offsets, ", "),
		PlayerRoleID:      h.Config.PlayerRoleID,
		CoachRoleID:       h.Config.CoachRoleID,
		RosterDegraded:    h.Rosters.Degraded(),
	}))
}

func (h *Handler) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	latency := s.HeartbeatLatency().Milliseconds()
	respond(s, i, fmt.Sprintf("🏓 Pong! Latency: %dms", latency))
}

// handleForceCheck runs one window pass immediately. Dedup rules still
// apply, so already-sent reminders stay sent.
func (h *Handler) handleForceCheck(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respond(s, i, "🔄 Forcing reminder check...")
	h.Scheduler.CheckReminders()
	followUp(s, i, "✅ Reminder check complete!")
}

func (h *Handler) handleForceDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respond(s, i, "🔄 Forcing daily summary...")
	h.Scheduler.DailySummary()
	followUp(s, i, "✅ Daily summary sent!")
}

func followUp(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{Content: content})
	if err != nil {
		log.Printf("Error sending follow-up: %v", err)
	}
}
