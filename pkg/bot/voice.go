package bot

import "github.com/bwmarrin/discordgo"

type VoiceTransition int

const (
	VoiceNone VoiceTransition = iota
	VoiceJoin
	VoiceLeave
	VoiceMove
)

func (t VoiceTransition) String() string {
	switch t {
	case VoiceJoin:
		return "join"
	case VoiceLeave:
		return "leave"
	case VoiceMove:
		return "move"
	default:
		return "none"
	}
}

// ClassifyVoice compares channel attachment before and after an update.
// A nil state counts as not connected.
func ClassifyVoice(before, after *discordgo.VoiceState) VoiceTransition {
	from := voiceChannel(before)
	to := voiceChannel(after)

	switch {
	case from == "" && to != "":
		return VoiceJoin
	case from != "" && to == "":
		return VoiceLeave
	case from != "" && to != "" && from != to:
		return VoiceMove
	default:
		return VoiceNone
	}
}

func voiceChannel(vs *discordgo.VoiceState) string {
	if vs == nil {
		return ""
	}
	return vs.ChannelID
}
