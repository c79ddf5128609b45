package bot

import (
	"fmt"
	"strings"
	"time"

	"servermaster/pkg/presence"
)

const (
	msgReady            = "🤖 봇이 정상적으로 시작되었습니다!"
	msgEmptyQuery       = "검색어를 입력해주세요!"
	msgNoQuestions      = "질문 목록이 비어있습니다. bot.txt 파일을 확인해주세요."
	msgYouTubeNoResults = "검색 결과를 찾을 수 없습니다."
	msgYouTubeError     = "유튜브 검색 중 오류가 발생했습니다."
	msgGiphyNoKey       = "Giphy API 키가 설정되어 있지 않습니다."
	msgMeme             = "랜덤 밈 짤방입니다!"
	msgMemeNoImage      = "짤방을 가져오지 못했습니다."
	msgMemeError        = "짤방을 가져오는 중 오류가 발생했습니다."
	msgSteamEmpty       = "현재 할인 중인 게임 정보를 찾을 수 없습니다."
	msgSteamError       = "스팀 할인 정보를 가져오는 중 오류가 발생했습니다."
	msgNoJoinRecord     = "입장 시간이 기록되어 있지 않습니다. (서버 입장 후부터 측정)"
	msgJoinVoiceFirst   = "음성 채널에 먼저 참여해주세요!"
	msgNoMovePermission = "봇에게 음성 채널 멤버를 이동시킬 권한이 없습니다."
	msgKickAllError     = "유저를 퇴장시키는 중 오류가 발생했습니다."
	deletedPlaceholder  = "[임베드/첨부파일/알 수 없음]"
	unknownAuthor       = "알 수 없음"
)

func memberJoinedMessage(name string) string {
	return fmt.Sprintf("🎉 %s님이 서버에 입장했습니다.\n📢 모두에게 알립니다! @everyone", name)
}

func memberLeftMessage(name string, stay presence.Elapsed, ok bool) string {
	msg := fmt.Sprintf("👋 %s님이 서버에서 나갔습니다.", name)
	if ok {
		msg += fmt.Sprintf("\n%s님이 총 %d시간 %d분 머물렀습니다.", name, stay.Hours, stay.Minutes)
	}
	return msg
}

func voiceJoinedMessage(name, channel string) string {
	return fmt.Sprintf("🎤 %s님이 음성 채널 **%s**에 입장했습니다.\n📢 모두에게 알립니다! @everyone", name, channel)
}

func voiceLeftMessage(name, channel string, stay presence.Elapsed, ok bool) string {
	msg := fmt.Sprintf("👋 %s님이 음성 채널 **%s**에서 나갔습니다.", name, channel)
	if ok {
		msg += fmt.Sprintf("\n%s님이 음성 채널에 총 %d시간 %d분 머물렀습니다.", name, stay.Hours, stay.Minutes)
	}
	return msg
}

func messageDeletedMessage(author, channel, content string) string {
	if content == "" {
		content = deletedPlaceholder
	}
	return fmt.Sprintf("🗑️ %s (%s): 삭제된 메시지 - %s", author, channel, content)
}

func questionMessage(q string) string {
	return "🤖 **질문!** " + q
}

func youtubeResultMessage(query, url string) string {
	return fmt.Sprintf("🔎 \"%s\" 유튜브 검색 결과:\n%s", query, url)
}

func googleResultMessage(query, url string) string {
	return fmt.Sprintf("🔎 \"%s\" 구글 검색 결과 페이지:\n%s", query, url)
}

func serverTimeMessage(name string, stay presence.Elapsed) string {
	return fmt.Sprintf("%s님은 서버에 총 %d시간 %d분 머무르고 있습니다.", name, stay.Hours, stay.Minutes)
}

func kickAllMessage(channel string) string {
	return fmt.Sprintf("**%s** 채널의 모든 유저를 퇴장시켰습니다.", channel)
}

// intervalText renders a broadcast interval the way the help text words it.
func intervalText(d time.Duration) string {
	minutes := int(d / time.Minute)
	if minutes >= 60 && minutes%60 == 0 {
		return fmt.Sprintf("%d시간", minutes/60)
	}
	return fmt.Sprintf("%d분", minutes)
}

func helpMessage(interval time.Duration) string {
	return strings.Join([]string{
		"🤖 **봇이 제공하는 주요 기능 안내**",
		"",
		"1. **서버 입장/퇴장 로그**",
		"   - 서버에 유저가 들어오거나 나가면 로그 채널에 자동으로 메시지 전송",
		"2. **음성 채널 입장/퇴장 로그 및 머문 시간 기록**",
		"   - 음성 채널에 입장/퇴장 시 로그 채널에 메시지 전송 및 머문 시간 안내",
		"3. **everyone 멘션**",
		"   - 입장 시 모두에게 알림",
		"4. **삭제 메시지 로그**",
		"   - 삭제된 메시지를 로그 채널에 기록",
		"5. **유튜브 검색**",
		"   - '유튜브 검색 [검색어]' 입력 시 유튜브 영상 링크 제공",
		"6. **구글 검색**",
		"   - '구글 검색 [검색어]' 입력 시 구글 검색 결과 페이지 링크 제공",
		"7. **짤방/밈 랜덤 전송**",
		"   - '짤방' 또는 '밈' 입력 시 랜덤 밈 이미지 전송",
		"8. **스팀 할인 게임 목록**",
		"   - '스팀 할인' 입력 시 현재 할인 중인 스팀 게임 안내",
		"9. **서버 머문 시간 안내**",
		"   - '서버 시간' 입력 시 서버에 머문 시간 안내",
		"10. **음성 채널 모든 유저 퇴장**",
		"    - 'all퇴장' 입력 시 음성 채널의 모든 유저를 퇴장시킴",
		"11. **랜덤 질문**",
		fmt.Sprintf("    - '봇 질문' 입력 시 랜덤 질문을 받거나, %s마다 자동으로 질문을 받습니다.", intervalText(interval)),
	}, "\n")
}
