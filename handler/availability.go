package handler

import (
	"fmt"
	"strconv"
	"strings"

	"discord-scrim-bot/embed"

	"github.com/bwmarrin/discordgo"
)

// handleAvailability posts a late/missing report to the reminder
// channel and pings the coach and management roles.
func (h *Handler) handleAvailability(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commandOptions(i)
	status := opts["status"].StringValue()
	eventID := opts["event_id"].StringValue()
	notes := ""
	if opt, ok := opts["notes"]; ok {
		notes = opt.StringValue()
	}

	ev, err := h.Calendar.Event(eventID)
	if err != nil {
		respondEphemeral(s, i, "❌ Could not find the selected event!")
		return
	}

	channelID := h.Config.ReminderChannelID()
	if channelID == 0 {
		respondEphemeral(s, i, "❌ Reminder channel not configured!")
		return
	}

	user := i.User
	displayName := ""
	if i.Member != nil {
		user = i.Member.User
		displayName = i.Member.Nick
	}
	if displayName == "" {
		displayName = user.Username
	}
	report := embed.Availability(*ev, user.Mention(), displayName, status, notes)

	var mentions []string
	if h.Config.CoachRoleID != 0 {
		mentions = append(mentions, fmt.Sprintf("<@&%d>", h.Config.CoachRoleID))
	}
	if h.Config.ManagementRoleID != 0 {
		mentions = append(mentions, fmt.Sprintf("<@&%d>", h.Config.ManagementRoleID))
	}

	_, err = s.ChannelMessageSendComplex(strconv.FormatInt(channelID, 10), &discordgo.MessageSend{
		Content: strings.Join(mentions, " "),
		Embed:   report,
	})
	if err != nil {
		respondEphemeral(s, i, "❌ Error sending notification: "+err.Error())
		return
	}

	respondEphemeral(s, i, fmt.Sprintf(
		"✅ Availability reported! Coaches and management have been notified that you'll be **%s** for %s.",
		strings.ToLower(status), ev.Title))
}
