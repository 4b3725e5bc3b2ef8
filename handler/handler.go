package handler

import (
	"log"
	"strings"

	"discord-scrim-bot/config"
	"discord-scrim-bot/reminder"
	"discord-scrim-bot/roster"
	"discord-scrim-bot/teamup"

	"github.com/bwmarrin/discordgo"
)

// Calendar is the slice of the TeamUp client the handlers need.
type Calendar interface {
	Upcoming(days int) ([]teamup.Event, error)
	Events(startDate, endDate string) ([]teamup.Event, error)
	Event(id string) (*teamup.Event, error)
	SubcalendarName(ids []int64) string
}

// Handler routes slash commands and modal submissions to their
// implementations.
type Handler struct {
	Config    *config.Config
	Calendar  Calendar
	Rosters   *roster.Store
	Scheduler *reminder.Scheduler
}

// InteractionCreate handles all slash commands and modal submissions
func (h *Handler) InteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.handleCommand(s, i)
	case discordgo.InteractionModalSubmit:
		h.handleModalSubmit(s, i)
	}
}

func (h *Handler) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "upcoming":
		h.handleUpcoming(s, i)
	case "today":
		h.handleToday(s, i)
	case "week":
		h.handleWeek(s, i)
	case "next":
		h.handleNext(s, i, "")
	case "nextscrim":
		h.handleNext(s, i, "scrim")
	case "nextofficial":
		h.handleNext(s, i, "official")
	case "scrim":
		h.handleScrim(s, i)
	case "roster":
		h.handleRoster(s, i)
	case "availability":
		h.handleAvailability(s, i)
	case "setreminderchannel":
		h.handleSetReminderChannel(s, i)
	case "testreminder":
		h.handleTestReminder(s, i)
	case "botinfo":
		h.handleBotInfo(s, i)
	case "ping":
		h.handlePing(s, i)
	case "forcecheck":
		h.handleForceCheck(s, i)
	case "forcedaily":
		h.handleForceDaily(s, i)
	case "help":
		h.handleHelp(s, i)
	case "about":
		h.handleAbout(s, i)
	}
}

func (h *Handler) handleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	if strings.HasPrefix(data.CustomID, rosterModalPrefix) {
		h.handleRosterModal(s, i)
	}
}

// Commands returns the slash-command definitions registered at startup.
func Commands() []*discordgo.ApplicationCommand {
	adminOnly := int64(discordgo.PermissionAdministrator)
	return []*discordgo.ApplicationCommand{
		{Name: "upcoming", Description: "List upcoming scrims from the calendar"},
		{Name: "today", Description: "Show events scheduled for today only"},
		{Name: "week", Description: "Show scrims scheduled for this week"},
		{Name: "next", Description: "Show details of the next scheduled event"},
		{Name: "nextscrim", Description: "Show details of the next scheduled scrim"},
		{Name: "nextofficial", Description: "Show details of the next official match"},
		{
			Name:        "scrim",
			Description: "Show details of a specific scrim by event ID",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "event_id",
					Description: "The event ID from the calendar",
					Required:    true,
				},
			},
		},
		{
			Name:        "roster",
			Description: "Manage team rosters",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "action",
					Description: "Choose what to do with the roster",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "create", Value: "create"},
						{Name: "view", Value: "view"},
						{Name: "delete", Value: "delete"},
						{Name: "list", Value: "list"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "team",
					Description: "Name of the team",
				},
			},
		},
		{
			Name:        "availability",
			Description: "Report if you'll be late or missing an event",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "status",
					Description: "Are you going to be late or missing?",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Late", Value: "Late"},
						{Name: "Missing", Value: "Missing"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "event_id",
					Description: "The event ID from the calendar",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "notes",
					Description: "Additional information (optional)",
				},
			},
		},
		{
			Name:                     "setreminderchannel",
			Description:              "Set current channel as reminder channel (Admin only)",
			DefaultMemberPermissions: &adminOnly,
		},
		{
			Name:                     "testreminder",
			Description:              "Send a test reminder to check if everything works (Admin only)",
			DefaultMemberPermissions: &adminOnly,
		},
		{Name: "botinfo", Description: "Show bot configuration and status"},
		{Name: "ping", Description: "Check bot latency"},
		{
			Name:                     "forcecheck",
			Description:              "Manually trigger a reminder check (Admin only)",
			DefaultMemberPermissions: &adminOnly,
		},
		{
			Name:                     "forcedaily",
			Description:              "Manually trigger the daily summary (Admin only)",
			DefaultMemberPermissions: &adminOnly,
		},
		{
			Name:        "help",
			Description: "Show available commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "category",
					Description: "Choose which help category to view",
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "general", Value: "general"},
						{Name: "admin", Value: "admin"},
					},
				},
			},
		},
		{Name: "about", Description: "Show information about the bot"},
	}
}

// commandOptions flattens interaction options into a name -> option map.
func commandOptions(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		log.Printf("Error responding to interaction: %v", err)
	}
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error responding to interaction: %v", err)
	}
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, content string, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Embeds:  []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		log.Printf("Error responding to interaction: %v", err)
	}
}
