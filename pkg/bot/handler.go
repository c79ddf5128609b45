package bot

import (
	"log"
	"sync"
	"time"

	"servermaster/pkg/presence"
	"servermaster/pkg/questions"
	"servermaster/pkg/tools"

	"github.com/bwmarrin/discordgo"
)

type HandlerConfig struct {
	LogChannelID      string
	QuestionFile      string
	BroadcastInterval time.Duration
	SteamMaxEntries   int
	Currency          string
	RequestTimeout    time.Duration
	KickConcurrency   int
}

type Handler struct {
	cfg         HandlerConfig
	tracker     *presence.Tracker
	questions   *questions.Store
	videos      VideoSearcher
	memes       MemeSource
	specials    SpecialsSource
	batch       *tools.BatchExecutor
	broadcaster *Broadcaster
	now         func() time.Time

	botID     string
	session   Session
	sessionMu sync.RWMutex
}

func NewHandler(cfg HandlerConfig, tracker *presence.Tracker, store *questions.Store, videos VideoSearcher, memes MemeSource, specials SpecialsSource) *Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	if cfg.BroadcastInterval <= 0 {
		cfg.BroadcastInterval = time.Hour
	}

	h := &Handler{
		cfg:       cfg,
		tracker:   tracker,
		questions: store,
		videos:    videos,
		memes:     memes,
		specials:  specials,
		batch:     tools.NewBatchExecutor(cfg.KickConcurrency),
		now:       time.Now,
	}
	h.broadcaster = NewBroadcaster(cfg.BroadcastInterval, h.broadcastTick)
	return h
}

func (h *Handler) SetBotID(id string) {
	h.sessionMu.Lock()
	h.botID = id
	h.sessionMu.Unlock()
}

func (h *Handler) BotID() string {
	h.sessionMu.RLock()
	defer h.sessionMu.RUnlock()
	return h.botID
}

func (h *Handler) setSession(s Session) {
	h.sessionMu.Lock()
	h.session = s
	h.sessionMu.Unlock()
}

func (h *Handler) currentSession() Session {
	h.sessionMu.RLock()
	defer h.sessionMu.RUnlock()
	return h.session
}

// Close stops the broadcaster and drops all presence records.
func (h *Handler) Close() {
	h.broadcaster.Stop()
	h.tracker.Clear()
}

func (h *Handler) recoverEvent(tag string) {
	if r := recover(); r != nil {
		log.Printf("[%s] Recovered from panic: %v", tag, r)
	}
}

// logChannel resolves the configured log channel for guildID. The channel must
// exist and belong to that guild.
func (h *Handler) logChannel(s Session, guildID string) (string, bool) {
	if h.cfg.LogChannelID == "" || guildID == "" {
		return "", false
	}
	ch, err := s.Channel(h.cfg.LogChannelID)
	if err != nil || ch == nil {
		return "", false
	}
	if ch.GuildID != guildID {
		return "", false
	}
	return ch.ID, true
}

func (h *Handler) sendLog(s Session, tag, guildID, content string) bool {
	channelID, ok := h.logChannel(s, guildID)
	if !ok {
		log.Printf("[%s] Log channel not found for guild %s, skipping", tag, guildID)
		return false
	}
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		log.Printf("[%s] Error sending to log channel: %v", tag, err)
		return false
	}
	return true
}

// displayName prefers the guild nickname, then the global name, then the username.
func displayName(m *discordgo.Member, u *discordgo.User) string {
	if m != nil && m.Nick != "" {
		return m.Nick
	}
	if u == nil && m != nil {
		u = m.User
	}
	if u == nil {
		return ""
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// memberName fetches the member when the event did not carry one.
func (h *Handler) memberName(s Session, guildID, userID string, m *discordgo.Member, u *discordgo.User) string {
	if (m == nil || (m.Nick == "" && m.User == nil && u == nil)) && guildID != "" && userID != "" {
		if fetched, err := s.GuildMember(guildID, userID); err == nil && fetched != nil {
			m = fetched
		}
	}
	if name := displayName(m, u); name != "" {
		return name
	}
	return unknownAuthor
}

func (h *Handler) channelName(s Session, channelID string) string {
	ch, err := s.Channel(channelID)
	if err != nil || ch == nil || ch.Name == "" {
		return channelID
	}
	return ch.Name
}
