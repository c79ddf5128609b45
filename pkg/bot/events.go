package bot

import (
	"log"

	"servermaster/pkg/presence"

	"github.com/bwmarrin/discordgo"
)

func (h *Handler) GuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	h.HandleMemberJoin(&DiscordSession{s}, m.Member)
}

func (h *Handler) HandleMemberJoin(s Session, m *discordgo.Member) {
	defer h.recoverEvent("Join")
	if m == nil || m.User == nil {
		return
	}

	h.tracker.RecordJoin(presence.ScopeServer, m.User.ID, h.now())
	name := displayName(m, nil)
	log.Printf("[Join] %s joined guild %s", name, m.GuildID)

	h.sendLog(s, "Join", m.GuildID, memberJoinedMessage(name))
}

func (h *Handler) GuildMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	h.HandleMemberLeave(&DiscordSession{s}, m.Member)
}

func (h *Handler) HandleMemberLeave(s Session, m *discordgo.Member) {
	defer h.recoverEvent("Leave")
	if m == nil || m.User == nil {
		return
	}

	stay, ok := h.tracker.TakeLeave(presence.ScopeServer, m.User.ID, h.now())
	name := displayName(m, nil)
	log.Printf("[Leave] %s left guild %s (recorded=%v)", name, m.GuildID, ok)

	h.sendLog(s, "Leave", m.GuildID, memberLeftMessage(name, stay, ok))
}

func (h *Handler) VoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	h.HandleVoiceStateUpdate(&DiscordSession{s}, v.BeforeUpdate, v.VoiceState)
}

// HandleVoiceStateUpdate announces joins and leaves. Moving between two
// channels keeps the original join time and is not announced.
func (h *Handler) HandleVoiceStateUpdate(s Session, before, after *discordgo.VoiceState) {
	defer h.recoverEvent("Voice")

	switch ClassifyVoice(before, after) {
	case VoiceJoin:
		h.tracker.RecordJoin(presence.ScopeVoice, after.UserID, h.now())
		name := h.memberName(s, after.GuildID, after.UserID, after.Member, nil)
		channel := h.channelName(s, after.ChannelID)
		h.sendLog(s, "Voice", after.GuildID, voiceJoinedMessage(name, channel))

	case VoiceLeave:
		stay, ok := h.tracker.TakeLeave(presence.ScopeVoice, before.UserID, h.now())
		guildID := before.GuildID
		member := before.Member
		if after != nil {
			if after.GuildID != "" {
				guildID = after.GuildID
			}
			if after.Member != nil {
				member = after.Member
			}
		}
		name := h.memberName(s, guildID, before.UserID, member, nil)
		channel := h.channelName(s, before.ChannelID)
		h.sendLog(s, "Voice", guildID, voiceLeftMessage(name, channel, stay, ok))

	case VoiceMove:
		log.Printf("[Voice] %s moved %s -> %s", after.UserID, before.ChannelID, after.ChannelID)
	}
}

func (h *Handler) MessageDelete(s *discordgo.Session, m *discordgo.MessageDelete) {
	h.HandleMessageDelete(&DiscordSession{s}, m)
}

// HandleMessageDelete forwards a deletion record. Content is only known for
// messages still in the state cache.
func (h *Handler) HandleMessageDelete(s Session, m *discordgo.MessageDelete) {
	defer h.recoverEvent("Delete")
	if m == nil || m.Message == nil || m.GuildID == "" {
		return
	}

	author := unknownAuthor
	content := ""
	if before := m.BeforeDelete; before != nil {
		content = before.Content
		if before.Author != nil {
			if before.Author.ID == h.BotID() {
				return
			}
			author = h.memberName(s, m.GuildID, before.Author.ID, before.Member, before.Author)
		}
	}

	channel := h.channelName(s, m.ChannelID)
	h.sendLog(s, "Delete", m.GuildID, messageDeletedMessage(author, channel, content))
}

func (h *Handler) Ready(s *discordgo.Session, r *discordgo.Ready) {
	h.HandleReady(&DiscordSession{s}, r)
}

// HandleReady may run again after a reconnect. Questions are reloaded and the
// startup notice re-sent, but the broadcaster is only armed the first time.
func (h *Handler) HandleReady(s Session, r *discordgo.Ready) {
	defer h.recoverEvent("Ready")

	if r != nil && r.User != nil {
		h.SetBotID(r.User.ID)
		log.Printf("[Ready] Logged in as %s", r.User.Username)
	}
	h.setSession(s)

	if err := h.questions.Load(h.cfg.QuestionFile); err != nil {
		log.Printf("[Ready] Error loading questions from %s: %v", h.cfg.QuestionFile, err)
	} else if h.questions.Count() == 0 {
		log.Printf("[Ready] Warning: %s has no questions", h.cfg.QuestionFile)
	} else {
		log.Printf("[Ready] Loaded %d questions", h.questions.Count())
	}

	for _, g := range s.Guilds() {
		h.sendLog(s, "Ready", g.ID, msgReady)
	}

	h.updateStatus(s)

	if h.broadcaster.Start() {
		log.Printf("[Ready] Broadcasting questions every %v", h.cfg.BroadcastInterval)
	}
}
