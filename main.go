package main

import (
	"fmt"
	"log"
	"net/http"

	"discord-scrim-bot/config"
	"discord-scrim-bot/db"
	"discord-scrim-bot/handler"
	"discord-scrim-bot/reminder"
	"discord-scrim-bot/roster"
	"discord-scrim-bot/teamup"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found.")
	}

	cfg := config.Load()
	if cfg.DiscordToken == "" {
		log.Fatal("FATAL: DISCORD_BOT_TOKEN not set.")
	}
	if !cfg.CalendarConfigured() {
		log.Println("Warning: TEAMUP_API_KEY or TEAMUP_CALENDAR_ID not set; calendar features will be degraded.")
	}

	db.InitDB(cfg.DBPath)

	// A channel saved via /setreminderchannel wins over the env value.
	if saved := db.LoadReminderChannel(); saved != 0 {
		cfg.SetReminderChannel(saved)
	}
	cfg.PersistChannel = db.SaveReminderChannel

	rosterStore, err := roster.NewStore(cfg.RosterPath)
	if err != nil {
		log.Fatalf("FATAL: Error opening roster store: %v", err)
	}

	calendar := teamup.New(cfg.TeamUpCalendarID, cfg.TeamUpAPIKey)

	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatalf("FATAL: Error creating Discord session: %v", err)
	}

	scheduler := reminder.New(cfg, calendar, rosterStore, &reminder.ChannelNotifier{
		Session: dg,
		Channel: cfg.ReminderChannelID,
	})

	h := &handler.Handler{
		Config:    cfg,
		Calendar:  calendar,
		Rosters:   rosterStore,
		Scheduler: scheduler,
	}
	dg.AddHandler(h.InteractionCreate)
	dg.Identify.Intents = discordgo.IntentsGuilds

	if err = dg.Open(); err != nil {
		log.Fatalf("FATAL: Error opening connection: %v", err)
	}

	// Register slash commands globally (may take up to an hour to
	// appear; pass a guild ID as the second arg during development).
	log.Println("Registering slash commands...")
	for _, v := range handler.Commands() {
		_, err := dg.ApplicationCommandCreate(dg.State.User.ID, "", v)
		if err != nil {
			log.Panicf("Cannot create '%v' command: %v", v.Name, err)
		}
	}

	// Timers start only once the session is open, so the first pass
	// never fires before the gateway is ready.
	if err := scheduler.Run(); err != nil {
		log.Fatalf("FATAL: Error starting scheduler: %v", err)
	}

	log.Println("✅ Bot is running with Slash Commands active.")

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "Scrim bot is running.")
	})
	log.Fatal(http.ListenAndServe(":"+cfg.Port, nil))
}
