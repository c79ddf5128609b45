package bot

import (
	"context"

	"servermaster/pkg/tools/giphy"
	"servermaster/pkg/tools/steam"

	"github.com/bwmarrin/discordgo"
)

// Session interface abstracts discordgo.Session for testing
type Session interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMemberMove(guildID string, userID string, channelID *string, options ...discordgo.RequestOption) error
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
	UpdateStatusComplex(usd discordgo.UpdateStatusData) error

	// State-backed lookups
	Guilds() []*discordgo.Guild
	VoiceState(guildID, userID string) (*discordgo.VoiceState, error)
	VoiceChannelMembers(guildID, channelID string) ([]string, error)
}

// DiscordSession adapts discordgo.Session to the Session interface
type DiscordSession struct {
	*discordgo.Session
}

// Channel prefers the state cache and falls back to the REST API.
func (s *DiscordSession) Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if s.State != nil {
		if ch, err := s.State.Channel(channelID); err == nil {
			return ch, nil
		}
	}
	return s.Session.Channel(channelID, options...)
}

func (s *DiscordSession) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	if s.State != nil {
		if m, err := s.State.Member(guildID, userID); err == nil {
			return m, nil
		}
	}
	return s.Session.GuildMember(guildID, userID, options...)
}

func (s *DiscordSession) Guilds() []*discordgo.Guild {
	if s.State == nil {
		return nil
	}
	s.State.RLock()
	defer s.State.RUnlock()

	guilds := make([]*discordgo.Guild, len(s.State.Guilds))
	copy(guilds, s.State.Guilds)
	return guilds
}

func (s *DiscordSession) VoiceState(guildID, userID string) (*discordgo.VoiceState, error) {
	if s.State == nil {
		return nil, discordgo.ErrStateNotFound
	}
	return s.State.VoiceState(guildID, userID)
}

// VoiceChannelMembers lists the user IDs currently connected to channelID.
func (s *DiscordSession) VoiceChannelMembers(guildID, channelID string) ([]string, error) {
	if s.State == nil {
		return nil, discordgo.ErrStateNotFound
	}
	g, err := s.State.Guild(guildID)
	if err != nil {
		return nil, err
	}

	s.State.RLock()
	defer s.State.RUnlock()

	var ids []string
	for _, vs := range g.VoiceStates {
		if vs.ChannelID == channelID {
			ids = append(ids, vs.UserID)
		}
	}
	return ids, nil
}

type VideoSearcher interface {
	FirstVideoID(ctx context.Context, query string) (string, error)
}

type MemeSource interface {
	Configured() bool
	RandomMeme(ctx context.Context) (*giphy.Meme, error)
}

type SpecialsSource interface {
	FeaturedSpecials(ctx context.Context) ([]steam.Special, error)
}
