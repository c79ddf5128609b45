package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"servermaster/pkg/bot"
	"servermaster/pkg/cache"
	"servermaster/pkg/config"
	"servermaster/pkg/presence"
	"servermaster/pkg/questions"
	"servermaster/pkg/tools"
	"servermaster/pkg/tools/giphy"
	"servermaster/pkg/tools/steam"
	"servermaster/pkg/tools/youtube"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
)

func main() {
	// Load config.yml
	cfg, err := config.LoadConfig("config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load .env for secrets
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	env := config.LoadEnv()
	if err := env.Validate(); err != nil {
		log.Fatal(err)
	}
	if env.LogChannelID == "" {
		log.Println("LOG_CHANNEL_ID not set, announcements and broadcasts are disabled")
	}

	fetch := tools.NewFetchClient(cfg.HTTPTimeout())
	var youtubeOpts []youtube.Option
	var steamOpts []steam.Option

	// Lookup cache: Redis when configured, in-process LRU otherwise
	var lookupCache tools.JSONCache
	if env.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(env.RedisURL, cfg.Cache.Prefix)
		if err != nil {
			log.Printf("Redis unavailable, falling back to in-memory cache: %v", err)
		} else {
			defer redisCache.Close()
			lookupCache = redisCache
			log.Println("Redis cache initialized")
		}
	}
	if lookupCache == nil {
		lookupCache = cache.NewMemoryCache(cfg.Cache.Prefix, cfg.Cache.MemoryEntries)
	}
	youtubeOpts = append(youtubeOpts, youtube.WithCache(lookupCache, cfg.CacheTTL()))
	steamOpts = append(steamOpts, steam.WithCache(lookupCache, cfg.CacheTTL()))

	if env.GiphyAPIKey == "" {
		log.Println("GIPHY_API_KEY not set, meme command disabled")
	}

	tracker := presence.NewTracker()
	handler := bot.NewHandler(
		bot.HandlerConfig{
			LogChannelID:      env.LogChannelID,
			QuestionFile:      env.QuestionFile,
			BroadcastInterval: cfg.BroadcastInterval(),
			SteamMaxEntries:   cfg.Steam.MaxEntries,
			Currency:          cfg.Steam.Currency,
			RequestTimeout:    cfg.HTTPTimeout(),
		},
		tracker,
		questions.NewStore(),
		youtube.NewClient(fetch, youtubeOpts...),
		giphy.NewClient(fetch, env.GiphyAPIKey),
		steam.NewClient(fetch, steamOpts...),
	)

	// Create Discord Session
	dg, err := discordgo.New(env.AuthToken())
	if err != nil {
		log.Fatalf("Error creating Discord session: %v", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildVoiceStates
	// Keep recent messages so deletions can report their content
	dg.State.MaxMessageCount = cfg.State.MaxMessageCount

	// Register Handlers
	dg.AddHandler(handler.Ready)
	dg.AddHandler(handler.GuildMemberAdd)
	dg.AddHandler(handler.GuildMemberRemove)
	dg.AddHandler(handler.VoiceStateUpdate)
	dg.AddHandler(handler.MessageCreate)
	dg.AddHandler(handler.MessageDelete)

	// Open Connection
	if err := dg.Open(); err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")

	// Wait for signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Println("Shutting down...")
	handler.Close()
	if err := dg.Close(); err != nil {
		log.Printf("Error closing Discord session: %v", err)
	}
}
