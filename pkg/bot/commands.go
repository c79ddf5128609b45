package bot

import "strings"

type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandQuestion
	CommandYouTube
	CommandGoogle
	CommandMeme
	CommandSteamSale
	CommandServerTime
	CommandHelp
	CommandKickAll
)

func (k CommandKind) String() string {
	switch k {
	case CommandQuestion:
		return "question"
	case CommandYouTube:
		return "youtube"
	case CommandGoogle:
		return "google"
	case CommandMeme:
		return "meme"
	case CommandSteamSale:
		return "steam"
	case CommandServerTime:
		return "server-time"
	case CommandHelp:
		return "help"
	case CommandKickAll:
		return "kick-all"
	default:
		return "none"
	}
}

// Command is a parsed chat command. Query is set for the search commands and
// may be empty when the user typed the prefix alone.
type Command struct {
	Kind  CommandKind
	Query string
}

type commandRule struct {
	kind   CommandKind
	text   string
	prefix bool
}

// Checked in order, first match wins.
var commandRules = []commandRule{
	{kind: CommandQuestion, text: "봇 질문"},
	{kind: CommandYouTube, text: "유튜브 검색 ", prefix: true},
	{kind: CommandGoogle, text: "구글 검색 ", prefix: true},
	{kind: CommandMeme, text: "짤방"},
	{kind: CommandMeme, text: "밈"},
	{kind: CommandSteamSale, text: "스팀 할인"},
	{kind: CommandServerTime, text: "서버 시간"},
	{kind: CommandHelp, text: "봇 기능"},
	{kind: CommandKickAll, text: "all퇴장"},
}

// ParseCommand maps message content to at most one command.
func ParseCommand(content string) Command {
	for _, r := range commandRules {
		if r.prefix {
			if strings.HasPrefix(content, r.text) {
				return Command{Kind: r.kind, Query: strings.TrimSpace(strings.TrimPrefix(content, r.text))}
			}
			continue
		}
		if content == r.text {
			return Command{Kind: r.kind}
		}
	}
	return Command{Kind: CommandNone}
}
