package embed

import (
	"fmt"
	"sort"
	"strings"

	"discord-scrim-bot/teamup"

	"github.com/bwmarrin/discordgo"
)

const (
	colorRed    = 0xe74c3c
	colorBlue   = 0x3498db
	colorGreen  = 0x2ecc71
	colorGold   = 0xf1c40f
	colorOrange = 0xe67e22
)

// typeEmoji picks a marker for an event type name.
func typeEmoji(eventType string) string {
	lower := strings.ToLower(eventType)
	switch {
	case strings.Contains(lower, "warm"):
		return "🔥"
	case strings.Contains(lower, "official"):
		return "🏆"
	case strings.Contains(lower, "vod"):
		return "🎥"
	default:
		return "🎮"
	}
}

// Event builds the detail embed for a single event. Roster and
// eventType are optional; empty values are simply omitted.
func Event(ev teamup.Event, roster []string, eventType string) *discordgo.MessageEmbed {
	title := fmt.Sprintf("%s %s", typeEmoji(eventType), ev.Title)
	if ev.Title == "" {
		title = fmt.Sprintf("%s Event", typeEmoji(eventType))
	}
	if eventType != "" {
		title += fmt.Sprintf(" (%s)", eventType)
	}

	e := &discordgo.MessageEmbed{
		Title: title,
		Color: colorRed,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "📅 Date & Time",
				Value: fmt.Sprintf("<t:%d:F>\n<t:%d:t> - <t:%d:t>",
					ev.Start.Unix(), ev.Start.Unix(), ev.End.Unix()),
			},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Event ID: " + ev.ID},
	}

	if len(roster) > 0 {
		var lines []string
		for _, player := range roster {
			lines = append(lines, "• "+player)
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  "👥 Roster",
			Value: strings.Join(lines, "\n"),
		})
	}
	if ev.Notes != "" {
		notes := ev.Notes
		if len(notes) > 1024 { // Discord field limit
			notes = notes[:1024]
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  "📝 Details",
			Value: notes,
		})
	}
	if ev.Location != "" {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  "📍 Location/Platform",
			Value: ev.Location,
		})
	}
	if ev.Who != "" {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  "🆚 Opponent",
			Value: ev.Who,
		})
	}

	return e
}

// Upcoming builds a list embed for the next few events, capped at 10.
// types and rosters map event IDs to their type name and roster.
func Upcoming(events []teamup.Event, types map[string]string, rosters map[string][]string) *discordgo.MessageEmbed {
	if len(events) == 0 {
		return nil
	}
	sorted := sortByStart(events)

	e := &discordgo.MessageEmbed{
		Title:       "📋 Upcoming Events",
		Color:       colorBlue,
		Description: fmt.Sprintf("Next %d scheduled %s", len(sorted), plural(len(sorted), "event")),
	}

	if len(sorted) > 10 {
		sorted = sorted[:10]
	}
	for _, ev := range sorted {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  eventName(ev),
			Value: eventSummary(ev, types[ev.ID], rosters[ev.ID], 6),
		})
	}
	return e
}

// Week builds a schedule embed with events grouped by day.
func Week(events []teamup.Event, types map[string]string, rosters map[string][]string) *discordgo.MessageEmbed {
	if len(events) == 0 {
		return nil
	}
	sorted := sortByStart(events)

	e := &discordgo.MessageEmbed{
		Title:       "📅 This Week's Schedule",
		Color:       colorBlue,
		Description: fmt.Sprintf("Showing %d upcoming %s", len(sorted), plural(len(sorted), "event")),
		Footer:      &discordgo.MessageEmbedFooter{Text: "Times shown in your local timezone"},
	}

	var days []string
	byDay := map[string][]teamup.Event{}
	for _, ev := range sorted {
		day := ev.Start.Format("Monday, January 2")
		if _, seen := byDay[day]; !seen {
			days = append(days, day)
		}
		byDay[day] = append(byDay[day], ev)
	}

	for _, day := range days {
		var blocks []string
		for _, ev := range byDay[day] {
			text := fmt.Sprintf("**%s** • <t:%d:t>", eventName(ev), ev.Start.Unix())
			var details []string
			if t := types[ev.ID]; t != "" {
				details = append(details, fmt.Sprintf("%s %s", typeEmoji(t), t))
			}
			if ev.Who != "" {
				details = append(details, "🆚 "+ev.Who)
			}
			if len(details) > 0 {
				text += "\n" + strings.Join(details, " | ")
			}
			if roster := rosters[ev.ID]; len(roster) > 0 {
				text += "\n👥 " + strings.Join(roster, ", ")
			}
			blocks = append(blocks, text)
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  "📆 " + day,
			Value: strings.Join(blocks, "\n\n"),
		})
	}
	return e
}

// Daily builds the noon digest embed with a flavor quote and today's
// schedule, or an encouraging fallback when nothing is planned.
func Daily(events []teamup.Event, types map[string]string, rosters map[string][]string, quote string) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       "🌅 Good Day, Champions!",
		Description: "*" + quote + "*",
		Color:       colorGold,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Let's make today count!"},
	}

	if len(events) == 0 {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  "📅 Today's Schedule",
			Value: "No scrims scheduled for today. Use this time to practice and improve! 💪",
		})
		return e
	}

	sorted := sortByStart(events)
	var blocks []string
	for _, ev := range sorted {
		parts := []string{fmt.Sprintf("**%s**", eventName(ev))}
		parts = append(parts, fmt.Sprintf("⏰ <t:%d:t>", ev.Start.Unix()))
		if t := types[ev.ID]; t != "" {
			parts = append(parts, fmt.Sprintf("%s %s", typeEmoji(t), t))
		}
		if ev.Who != "" {
			parts = append(parts, "🆚 "+ev.Who)
		}
		if roster := rosters[ev.ID]; len(roster) > 0 {
			parts = append(parts, "👥 "+rosterPreview(roster, 6))
		}
		blocks = append(blocks, strings.Join(parts, "\n"))
	}

	e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
		Name:  fmt.Sprintf("📅 Today's Schedule (%d %s)", len(sorted), plural(len(sorted), "event")),
		Value: strings.Join(blocks, "\n\n"),
	})
	return e
}

// BotInfoData carries the configuration snapshot shown by /botinfo.
type BotInfoData struct {
	CalendarConnected bool
	ReminderChannelID int64
	CheckInterval     string
	ReminderOffsets   string
	PlayerRoleID      int64
	CoachRoleID       int64
	RosterDegraded    bool
}

// BotInfo builds the configuration overview embed.
func BotInfo(info BotInfoData) *discordgo.MessageEmbed {
	yesNo := func(ok bool, yes, no string) string {
		if ok {
			return yes
		}
		return no
	}

	rosterStatus := "✅ OK"
	if info.RosterDegraded {
		rosterStatus = "⚠️ Roster file unreadable (treated as empty)"
	}

	channel := "❌ Not Set"
	if info.ReminderChannelID != 0 {
		channel = fmt.Sprintf("<#%d>", info.ReminderChannelID)
	}
	playerRole := "❌ Not Set"
	if info.PlayerRoleID != 0 {
		playerRole = fmt.Sprintf("<@&%d>", info.PlayerRoleID)
	}
	coachRole := "❌ Not Set"
	if info.CoachRoleID != 0 {
		coachRole = fmt.Sprintf("<@&%d>", info.CoachRoleID)
	}

	return &discordgo.MessageEmbed{
		Title: "🤖 Bot Configuration",
		Color: colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Calendar Connected", Value: yesNo(info.CalendarConnected, "✅ Yes", "❌ No"), Inline: true},
			{Name: "Reminder Channel", Value: channel, Inline: true},
			{Name: "Check Interval", Value: info.CheckInterval, Inline: true},
			{Name: "Reminder Times", Value: info.ReminderOffsets},
			{Name: "Player Role", Value: playerRole, Inline: true},
			{Name: "Coach Role", Value: coachRole, Inline: true},
			{Name: "Roster Storage", Value: rosterStatus},
		},
	}
}

// Availability builds the late/missing report embed posted to the
// reminder channel.
func Availability(ev teamup.Event, userMention, displayName, status, notes string) *discordgo.MessageEmbed {
	color := colorRed
	emoji := "❌"
	if status == "Late" {
		color = colorOrange
		emoji = "⏰"
	}

	e := &discordgo.MessageEmbed{
		Title: emoji + " Player Availability Update",
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Player", Value: userMention, Inline: true},
			{Name: "Status", Value: "**" + status + "**", Inline: true},
			{Name: "Event", Value: fmt.Sprintf("%s\n<t:%d:F>", eventName(ev), ev.Start.Unix())},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Reported by " + displayName},
	}
	if notes != "" {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  "Additional Information",
			Value: notes,
		})
	}
	return e
}

func eventName(ev teamup.Event) string {
	if ev.Title == "" {
		return "Event"
	}
	return ev.Title
}

func eventSummary(ev teamup.Event, eventType string, roster []string, maxPlayers int) string {
	parts := []string{fmt.Sprintf("📅 <t:%d:F>", ev.Start.Unix())}
	if eventType != "" {
		parts = append(parts, fmt.Sprintf("%s Type: %s", typeEmoji(eventType), eventType))
	}
	if ev.Who != "" {
		parts = append(parts, "🆚 "+ev.Who)
	}
	if len(roster) > 0 {
		parts = append(parts, "👥 Roster: "+rosterPreview(roster, maxPlayers))
	}
	return strings.Join(parts, "\n")
}

func rosterPreview(roster []string, max int) string {
	if len(roster) <= max {
		return strings.Join(roster, ", ")
	}
	return fmt.Sprintf("%s +%d more", strings.Join(roster[:max], ", "), len(roster)-max)
}

func sortByStart(events []teamup.Event) []teamup.Event {
	sorted := make([]teamup.Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })
	return sorted
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
