package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		content string
		want    Command
	}{
		{"봇 질문", Command{Kind: CommandQuestion}},
		{"유튜브 검색 고양이 영상", Command{Kind: CommandYouTube, Query: "고양이 영상"}},
		{"유튜브 검색   ", Command{Kind: CommandYouTube, Query: ""}},
		{"구글 검색 날씨", Command{Kind: CommandGoogle, Query: "날씨"}},
		{"짤방", Command{Kind: CommandMeme}},
		{"밈", Command{Kind: CommandMeme}},
		{"스팀 할인", Command{Kind: CommandSteamSale}},
		{"서버 시간", Command{Kind: CommandServerTime}},
		{"봇 기능", Command{Kind: CommandHelp}},
		{"all퇴장", Command{Kind: CommandKickAll}},

		// exact commands do not tolerate extra text
		{"봇 질문 ", Command{Kind: CommandNone}},
		{"밈밈", Command{Kind: CommandNone}},
		{"ALL퇴장", Command{Kind: CommandNone}},
		// prefixes need the trailing space
		{"유튜브 검색", Command{Kind: CommandNone}},
		{"구글 검색어", Command{Kind: CommandNone}},
		{"", Command{Kind: CommandNone}},
		{"안녕하세요", Command{Kind: CommandNone}},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCommand(tt.content))
		})
	}
}

func TestParseCommand_FirstMatchWins(t *testing.T) {
	// Prefix commands swallow text that would otherwise be another command
	assert.Equal(t, Command{Kind: CommandYouTube, Query: "스팀 할인"}, ParseCommand("유튜브 검색 스팀 할인"))
	assert.Equal(t, Command{Kind: CommandGoogle, Query: "유튜브 검색 x"}, ParseCommand("구글 검색 유튜브 검색 x"))
}

func TestCommandKind_String(t *testing.T) {
	assert.Equal(t, "kick-all", CommandKickAll.String())
	assert.Equal(t, "none", CommandKind(99).String())
}
