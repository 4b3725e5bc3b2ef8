package handler

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"discord-scrim-bot/embed"
	"discord-scrim-bot/teamup"

	"github.com/bwmarrin/discordgo"
)

func (h *Handler) handleUpcoming(s *discordgo.Session, i *discordgo.InteractionCreate) {
	events, err := h.Calendar.Upcoming(7)
	if err != nil || len(events) == 0 {
		respond(s, i, "📅 No upcoming scrims scheduled!")
		return
	}
	respondEmbed(s, i, "", embed.Upcoming(events, h.eventTypes(events), h.eventRosters(events)))
}

func (h *Handler) handleToday(s *discordgo.Session, i *discordgo.InteractionCreate) {
	today := time.Now().Format("2006-01-02")
	events, err := h.Calendar.Events(today, today)
	if err != nil || len(events) == 0 {
		respond(s, i, "📅 No events scheduled for today!")
		return
	}
	e := embed.Upcoming(events, h.eventTypes(events), h.eventRosters(events))
	e.Title = "📋 Today's Events"
	e.Description = fmt.Sprintf("%d event%s scheduled", len(events), pluralSuffix(len(events)))
	respondEmbed(s, i, "", e)
}

func (h *Handler) handleWeek(s *discordgo.Session, i *discordgo.InteractionCreate) {
	events, err := h.Calendar.Upcoming(7)
	if err != nil || len(events) == 0 {
		respond(s, i, "📅 No scrims scheduled this week!")
		return
	}
	respondEmbed(s, i, "", embed.Week(events, h.eventTypes(events), h.eventRosters(events)))
}

// handleNext shows the earliest event within two weeks, optionally
// restricted to events whose type name contains typeFilter.
func (h *Handler) handleNext(s *discordgo.Session, i *discordgo.InteractionCreate, typeFilter string) {
	events, err := h.Calendar.Upcoming(14)
	if err != nil || len(events) == 0 {
		respond(s, i, "📅 No events scheduled!")
		return
	}

	if typeFilter != "" {
		var filtered []teamup.Event
		for _, ev := range events {
			eventType := h.Calendar.SubcalendarName(ev.SubcalendarIDs)
			if strings.Contains(strings.ToLower(eventType), typeFilter) {
				filtered = append(filtered, ev)
			}
		}
		if len(filtered) == 0 {
			respond(s, i, "📅 No "+typeFilter+"s scheduled!")
			return
		}
		events = filtered
	}

	sort.Slice(events, func(a, b int) bool { return events[a].Start.Before(events[b].Start) })
	h.respondEventDetail(s, i, events[0])
}

func (h *Handler) handleScrim(s *discordgo.Session, i *discordgo.InteractionCreate) {
	eventID := commandOptions(i)["event_id"].StringValue()
	ev, err := h.Calendar.Event(eventID)
	if err != nil {
		respond(s, i, "❌ Could not find event with ID: "+eventID)
		return
	}
	h.respondEventDetail(s, i, *ev)
}

func (h *Handler) respondEventDetail(s *discordgo.Session, i *discordgo.InteractionCreate, ev teamup.Event) {
	var eventType string
	if len(ev.SubcalendarIDs) > 0 {
		eventType = h.Calendar.SubcalendarName(ev.SubcalendarIDs)
	}
	var roster []string
	if team := strings.TrimSpace(ev.Title); team != "" {
		roster, _ = h.Rosters.Get(team)
	}
	respondEmbed(s, i, "", embed.Event(ev, roster, eventType))
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func (h *Handler) eventTypes(events []teamup.Event) map[string]string {
	types := make(map[string]string)
	for _, ev := range events {
		if len(ev.SubcalendarIDs) > 0 {
			types[ev.ID] = h.Calendar.SubcalendarName(ev.SubcalendarIDs)
		}
	}
	return types
}

func (h *Handler) eventRosters(events []teamup.Event) map[string][]string {
	rosters := make(map[string][]string)
	for _, ev := range events {
		team := strings.TrimSpace(ev.Title)
		if team == "" {
			continue
		}
		if roster, ok := h.Rosters.Get(team); ok {
			rosters[ev.ID] = roster
		}
	}
	return rosters
}
