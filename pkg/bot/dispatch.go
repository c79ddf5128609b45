package bot

import (
	"bytes"
	"context"
	"errors"
	"log"
	"mime"
	"path"

	"servermaster/pkg/presence"
	"servermaster/pkg/tools"
	"servermaster/pkg/tools/giphy"
	"servermaster/pkg/tools/google"
	"servermaster/pkg/tools/steam"
	"servermaster/pkg/tools/youtube"

	"github.com/bwmarrin/discordgo"
)

func (h *Handler) MessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	h.HandleMessage(&DiscordSession{s}, m)
}

func (h *Handler) HandleMessage(s Session, m *discordgo.MessageCreate) {
	defer h.recoverEvent("Command")

	if m == nil || m.Message == nil || m.Author == nil {
		return
	}
	// Ignore own and other bots' messages
	if m.Author.ID == h.BotID() || m.Author.Bot {
		return
	}
	// Commands only work inside a guild
	if m.GuildID == "" {
		return
	}

	cmd := ParseCommand(m.Content)
	if cmd.Kind == CommandNone {
		return
	}
	log.Printf("[Command] %s from %s in %s", cmd.Kind, m.Author.ID, m.ChannelID)

	switch cmd.Kind {
	case CommandQuestion:
		h.handleQuestion(s, m)
	case CommandYouTube:
		h.handleYouTube(s, m, cmd.Query)
	case CommandGoogle:
		h.handleGoogle(s, m, cmd.Query)
	case CommandMeme:
		h.handleMeme(s, m)
	case CommandSteamSale:
		h.handleSteamSale(s, m)
	case CommandServerTime:
		h.handleServerTime(s, m)
	case CommandHelp:
		h.reply(s, m, helpMessage(h.cfg.BroadcastInterval))
	case CommandKickAll:
		h.handleKickAll(s, m)
	}
}

func (h *Handler) reply(s Session, m *discordgo.MessageCreate, content string) {
	if _, err := s.ChannelMessageSendReply(m.ChannelID, content, m.Reference()); err != nil {
		log.Printf("[Command] Error sending reply: %v", err)
	}
}

func (h *Handler) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), h.cfg.RequestTimeout)
}

func (h *Handler) handleQuestion(s Session, m *discordgo.MessageCreate) {
	content := msgNoQuestions
	if q, ok := h.questions.PickRandom(); ok {
		content = questionMessage(q)
	}
	if _, err := s.ChannelMessageSend(m.ChannelID, content); err != nil {
		log.Printf("[Question] Error sending question: %v", err)
	}
}

func (h *Handler) handleYouTube(s Session, m *discordgo.MessageCreate, query string) {
	if query == "" {
		h.reply(s, m, msgEmptyQuery)
		return
	}

	ctx, cancel := h.requestContext()
	defer cancel()

	id, err := h.videos.FirstVideoID(ctx, query)
	switch {
	case errors.Is(err, youtube.ErrNoResults):
		h.reply(s, m, msgYouTubeNoResults)
	case err != nil:
		log.Printf("[YouTube] Error searching %q: %v", query, err)
		h.reply(s, m, msgYouTubeError)
	default:
		h.reply(s, m, youtubeResultMessage(query, youtube.WatchURL(id)))
	}
}

func (h *Handler) handleGoogle(s Session, m *discordgo.MessageCreate, query string) {
	if query == "" {
		h.reply(s, m, msgEmptyQuery)
		return
	}
	h.reply(s, m, googleResultMessage(query, google.SearchURL(query)))
}

func (h *Handler) handleMeme(s Session, m *discordgo.MessageCreate) {
	if h.memes == nil || !h.memes.Configured() {
		h.reply(s, m, msgGiphyNoKey)
		return
	}

	ctx, cancel := h.requestContext()
	defer cancel()

	meme, err := h.memes.RandomMeme(ctx)
	switch {
	case errors.Is(err, giphy.ErrMissingAPIKey):
		h.reply(s, m, msgGiphyNoKey)
		return
	case errors.Is(err, giphy.ErrNoImage):
		h.reply(s, m, msgMemeNoImage)
		return
	case err != nil:
		log.Printf("[Giphy] Error fetching meme: %v", err)
		h.reply(s, m, msgMemeError)
		return
	}

	contentType := mime.TypeByExtension(path.Ext(meme.Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Content:   msgMeme,
		Reference: m.Reference(),
		Files: []*discordgo.File{{
			Name:        meme.Name,
			ContentType: contentType,
			Reader:      bytes.NewReader(meme.Data),
		}},
	})
	if err != nil {
		log.Printf("[Giphy] Error uploading meme: %v", err)
		h.reply(s, m, msgMemeError)
	}
}

func (h *Handler) handleSteamSale(s Session, m *discordgo.MessageCreate) {
	ctx, cancel := h.requestContext()
	defer cancel()

	items, err := h.specials.FeaturedSpecials(ctx)
	if err != nil {
		log.Printf("[Steam] Error fetching specials: %v", err)
		h.reply(s, m, msgSteamError)
		return
	}
	if len(items) == 0 {
		h.reply(s, m, msgSteamEmpty)
		return
	}

	entries := steam.FormatEntries(items, h.cfg.SteamMaxEntries, h.cfg.Currency)
	parts := append([]string{steam.Header(len(entries))}, entries...)
	h.sendSplitReply(s, m.ChannelID, packMessages(parts, "\n\n", maxMessageLength), m.Reference())
}

func (h *Handler) handleServerTime(s Session, m *discordgo.MessageCreate) {
	stay, ok := h.tracker.Peek(presence.ScopeServer, m.Author.ID, h.now())
	if !ok {
		h.reply(s, m, msgNoJoinRecord)
		return
	}
	name := h.memberName(s, m.GuildID, m.Author.ID, m.Member, m.Author)
	h.reply(s, m, serverTimeMessage(name, stay))
}

// handleKickAll disconnects everyone in the invoker's voice channel.
func (h *Handler) handleKickAll(s Session, m *discordgo.MessageCreate) {
	vs, err := s.VoiceState(m.GuildID, m.Author.ID)
	if err != nil || vs == nil || vs.ChannelID == "" {
		h.reply(s, m, msgJoinVoiceFirst)
		return
	}

	perms, err := s.UserChannelPermissions(h.BotID(), vs.ChannelID)
	if err != nil {
		log.Printf("[KickAll] Error resolving permissions in %s: %v", vs.ChannelID, err)
	}
	if err != nil || perms&discordgo.PermissionVoiceMoveMembers == 0 {
		h.reply(s, m, msgNoMovePermission)
		return
	}

	channel := h.channelName(s, vs.ChannelID)

	members, err := s.VoiceChannelMembers(m.GuildID, vs.ChannelID)
	if err != nil {
		log.Printf("[KickAll] Error listing members of %s: %v", vs.ChannelID, err)
		h.reply(s, m, msgKickAllError)
		return
	}

	items := make([]tools.BatchItem, 0, len(members))
	for _, id := range members {
		items = append(items, tools.BatchItem{ID: id})
	}

	ctx, cancel := h.requestContext()
	defer cancel()

	results := h.batch.Process(ctx, items, func(ctx context.Context, item tools.BatchItem) error {
		return s.GuildMemberMove(m.GuildID, item.ID, nil, discordgo.WithContext(ctx))
	})
	if err := tools.FirstError(results); err != nil {
		log.Printf("[KickAll] Error disconnecting members of %s: %v", vs.ChannelID, err)
		h.reply(s, m, msgKickAllError)
		return
	}

	log.Printf("[KickAll] Disconnected %d members from %s", len(items), channel)
	h.reply(s, m, kickAllMessage(channel))
}
