package bot

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

const statusText = "'봇 기능' 으로 기능 안내"

func (h *Handler) updateStatus(s Session) {
	err := s.UpdateStatusComplex(discordgo.UpdateStatusData{
		Activities: []*discordgo.Activity{
			{
				Name:  "Custom Status",
				Type:  discordgo.ActivityTypeCustom,
				State: statusText,
				Emoji: discordgo.Emoji{Name: "🤖"},
			},
		},
		Status: "online",
		AFK:    false,
	})
	if err != nil {
		log.Printf("[Ready] Error updating status: %v", err)
	}
}
