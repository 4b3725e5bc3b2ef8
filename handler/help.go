package handler

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func (h *Handler) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	category := "general"
	if opt, ok := commandOptions(i)["category"]; ok {
		category = opt.StringValue()
	}

	if category == "admin" {
		respondEmbed(s, i, "", adminHelpEmbed())
		return
	}
	respondEmbed(s, i, "", generalHelpEmbed())
}

func (h *Handler) handleAbout(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondEmbed(s, i, "", aboutEmbed(len(s.State.Guilds)))
}

func generalHelpEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "📖 Scrim Bot - Commands",
		Color:       0x9b59b6,
		Description: "Commands for viewing and managing scrim schedules",
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "📅 Calendar Commands",
				Value: "`/upcoming` - List all upcoming scrims\n" +
					"`/next` - Show next scheduled event\n" +
					"`/nextscrim` - Show next scheduled scrim\n" +
					"`/nextofficial` - Show next official match\n" +
					"`/today` - Show today's scrims\n" +
					"`/week` - Show this week's scrims\n" +
					"`/scrim <event_id>` - Show specific scrim details",
			},
			{
				Name: "👥 Roster Commands",
				Value: "`/roster create <team>` - Create roster for a team\n" +
					"`/roster view <team>` - View team roster\n" +
					"`/roster list` - List all teams\n" +
					"`/roster delete <team>` - Delete a roster",
			},
			{
				Name: "ℹ️ Information",
				Value: "`/availability` - Report being late or missing\n" +
					"`/botinfo` - Show bot configuration\n" +
					"`/ping` - Check bot latency\n" +
					"`/help admin` - Show admin commands",
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Bot automatically sends reminders 30 minutes before scrims",
		},
	}
}

func adminHelpEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🔧 Admin Commands",
		Color:       0xe67e22,
		Description: "Administrator-only commands",
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Configuration",
				Value: "`/setreminderchannel` - Set current channel for reminders\n" +
					"`/testreminder` - Send a test reminder",
			},
			{
				Name: "Maintenance",
				Value: "`/forcecheck` - Manually trigger a reminder check\n" +
					"`/forcedaily` - Manually trigger the daily summary",
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "⚠️ These commands require Administrator permission",
		},
	}
}

func aboutEmbed(guildCount int) *discordgo.MessageEmbed {
	servers := "server"
	if guildCount != 1 {
		servers = "servers"
	}
	return &discordgo.MessageEmbed{
		Title:       "🎮 Scrim Bot",
		Color:       0x3498db,
		Description: "A Discord bot for managing team scrims and reminders",
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Features",
				Value: "• Automatic scrim reminders\n" +
					"• TeamUp calendar integration\n" +
					"• Role mentions for players and coaches\n" +
					"• Easy event viewing and management\n" +
					"• Team roster management",
			},
			{Name: "Calendar", Value: "Events are managed via TeamUp Calendar", Inline: true},
			{Name: "Reminders", Value: "30 minutes before events", Inline: true},
			{Name: "Support", Value: "Use `/help` to see all commands"},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Bot serving %d %s", guildCount, servers),
		},
	}
}
