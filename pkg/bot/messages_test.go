package bot

import (
	"strings"
	"testing"
	"time"

	"servermaster/pkg/presence"

	"github.com/stretchr/testify/assert"
)

func TestIntervalText(t *testing.T) {
	assert.Equal(t, "15분", intervalText(15*time.Minute))
	assert.Equal(t, "1시간", intervalText(time.Hour))
	assert.Equal(t, "90분", intervalText(90*time.Minute))
	assert.Equal(t, "2시간", intervalText(2*time.Hour))
}

func TestHelpMessage(t *testing.T) {
	help := helpMessage(15 * time.Minute)
	assert.True(t, strings.HasPrefix(help, "🤖 **봇이 제공하는 주요 기능 안내**"))
	assert.Contains(t, help, "11. **랜덤 질문**")
	assert.Contains(t, help, "15분마다")
}

func TestStayMessages(t *testing.T) {
	stay := presence.Elapsed{Hours: 2, Minutes: 5}
	assert.Equal(t, "👋 A님이 서버에서 나갔습니다.\nA님이 총 2시간 5분 머물렀습니다.", memberLeftMessage("A", stay, true))
	assert.Equal(t, "👋 A님이 서버에서 나갔습니다.", memberLeftMessage("A", stay, false))
	assert.Equal(t, "👋 A님이 음성 채널 **v**에서 나갔습니다.", voiceLeftMessage("A", "v", stay, false))
}

func TestMessageDeletedMessage(t *testing.T) {
	assert.Equal(t, "🗑️ A (c): 삭제된 메시지 - hi", messageDeletedMessage("A", "c", "hi"))
	assert.Equal(t, "🗑️ A (c): 삭제된 메시지 - [임베드/첨부파일/알 수 없음]", messageDeletedMessage("A", "c", ""))
}
