package bot

import (
	"log"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// Discord rejects message content above this many characters.
const maxMessageLength = 2000

// packMessages joins parts with sep into as few messages as possible, each at
// most limit characters. Parts are only broken when a single part is longer
// than limit.
func packMessages(parts []string, sep string, limit int) []string {
	var out []string
	var cur strings.Builder
	curLen := 0
	sepLen := utf8.RuneCountInString(sep)

	for _, p := range parts {
		for _, piece := range chunkRunes(p, limit) {
			n := utf8.RuneCountInString(piece)
			if curLen > 0 && curLen+sepLen+n > limit {
				out = append(out, cur.String())
				cur.Reset()
				curLen = 0
			}
			if curLen > 0 {
				cur.WriteString(sep)
				curLen += sepLen
			}
			cur.WriteString(piece)
			curLen += n
		}
	}
	if curLen > 0 {
		out = append(out, cur.String())
	}
	return out
}

func chunkRunes(s string, limit int) []string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return []string{s}
	}
	var chunks []string
	runes := []rune(s)
	for len(runes) > limit {
		chunks = append(chunks, string(runes[:limit]))
		runes = runes[limit:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}

func (h *Handler) sendSplitReply(s Session, channelID string, parts []string, reference *discordgo.MessageReference) {
	isFirstPart := true
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}

		var err error
		if isFirstPart {
			_, err = s.ChannelMessageSendReply(channelID, part, reference)
			isFirstPart = false
		} else {
			// Follow-ups stay attached to the command without pinging again
			_, err = s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
				Content:   part,
				Reference: reference,
				AllowedMentions: &discordgo.MessageAllowedMentions{
					RepliedUser: false,
				},
			})
		}

		if err != nil {
			log.Printf("Error sending message part: %v", err)
		}
	}
}
