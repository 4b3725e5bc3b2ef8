package handler

import (
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const rosterModalPrefix = "roster_modal:"

func (h *Handler) handleRoster(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commandOptions(i)
	action := opts["action"].StringValue()

	team := ""
	if opt, ok := opts["team"]; ok {
		team = strings.TrimSpace(opt.StringValue())
	}

	if action != "list" && team == "" {
		respondEphemeral(s, i, "❌ Please specify a team name.")
		return
	}

	switch action {
	case "list":
		h.listTeams(s, i)
	case "view":
		h.viewRoster(s, i, team)
	case "create":
		h.openRosterModal(s, i, team)
	case "delete":
		h.deleteRoster(s, i, team)
	}
}

// openRosterModal shows the roster editor, pre-filled when the team
// already has one.
func (h *Handler) openRosterModal(s *discordgo.Session, i *discordgo.InteractionCreate, team string) {
	existing, _ := h.Rosters.Get(team)

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: rosterModalPrefix + team,
			Title:    "Create Team Roster",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "players_input",
							Label:       "Player Names (one per line)",
							Style:       discordgo.TextInputParagraph,
							Placeholder: "Player1\nPlayer2\nPlayer3",
							Required:    true,
							MaxLength:   1000,
							Value:       strings.Join(existing, "\n"),
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.Printf("Error sending roster modal: %v", err)
	}
}

func (h *Handler) handleRosterModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	team := strings.TrimPrefix(data.CustomID, rosterModalPrefix)

	raw := data.Components[0].(*discordgo.ActionsRow).Components[0].(*discordgo.TextInput).Value

	var players []string
	for _, line := range strings.Split(raw, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			players = append(players, name)
		}
	}
	if len(players) == 0 {
		respondEphemeral(s, i, "❌ You must add at least one player!")
		return
	}

	if err := h.Rosters.Set(team, players); err != nil {
		log.Printf("Error saving roster for %s: %v", team, err)
		respondEphemeral(s, i, "❌ Error saving roster: "+err.Error())
		return
	}

	var lines []string
	for n, player := range players {
		lines = append(lines, fmt.Sprintf("%d. %s", n+1, player))
	}
	respondEmbed(s, i, "", &discordgo.MessageEmbed{
		Title: "✅ Roster Saved for " + team,
		Color: 0x2ecc71,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  fmt.Sprintf("Players (%d)", len(players)),
				Value: strings.Join(lines, "\n"),
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Use /roster view %s to view this roster anytime", team),
		},
	})
}

func (h *Handler) viewRoster(s *discordgo.Session, i *discordgo.InteractionCreate, team string) {
	players, ok := h.Rosters.Get(team)
	if !ok {
		respondEphemeral(s, i, fmt.Sprintf("❌ No roster found for team **%s**.", team))
		return
	}

	var lines []string
	for n, player := range players {
		lines = append(lines, fmt.Sprintf("%d. %s", n+1, player))
	}
	respondEmbed(s, i, "", &discordgo.MessageEmbed{
		Title: "📋 Roster for " + team,
		Color: 0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  fmt.Sprintf("Players (%d)", len(players)),
				Value: strings.Join(lines, "\n"),
			},
		},
	})
}

func (h *Handler) deleteRoster(s *discordgo.Session, i *discordgo.InteractionCreate, team string) {
	found, err := h.Rosters.Delete(team)
	if err != nil {
		log.Printf("Error deleting roster for %s: %v", team, err)
		respondEphemeral(s, i, "❌ Error deleting roster: "+err.Error())
		return
	}
	if found {
		respond(s, i, fmt.Sprintf("✅ Roster for **%s** has been deleted.", team))
	} else {
		respondEphemeral(s, i, fmt.Sprintf("❌ No roster found for team **%s**.", team))
	}
}

func (h *Handler) listTeams(s *discordgo.Session, i *discordgo.InteractionCreate) {
	teams := h.Rosters.Teams()
	if len(teams) == 0 {
		respondEphemeral(s, i, "📋 No teams have rosters yet.")
		return
	}

	var lines []string
	for _, team := range teams {
		lines = append(lines, "• "+team)
	}
	respondEmbed(s, i, "", &discordgo.MessageEmbed{
		Title:       "📋 All Teams with Rosters",
		Description: strings.Join(lines, "\n"),
		Color:       0x3498db,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Total: %d team(s)", len(teams)),
		},
	})
}
