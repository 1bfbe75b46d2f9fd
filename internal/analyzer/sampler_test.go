package analyzer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeSamplesFilterNoise(t *testing.T) {
	a := newTestAnalyzer(t,
		textMsg(at(6, 1, 10, 0), "alice", "大家记得明天上午十点开会讨论新版本的发布计划"),
		textMsg(at(6, 1, 10, 1), "bob", "ok"),
		textMsg(at(6, 1, 10, 2), "carol", "666"),
		textMsg(at(6, 1, 10, 3), "dave", "哈哈哈"),
		textMsg(at(6, 1, 10, 4), "eve", "https://t.cn/abc"),
		// 范围之外
		textMsg(at(6, 5, 10, 0), "alice", "这条不在取样范围里面"),
	)

	lines := a.GetRepresentativeMessagesInRange("2024-06-01", "2024-06-02", nil)
	require.Len(t, lines, 1)
	assert.Equal(t, "[2024-06-01 10:00] alice: 大家记得明天上午十点开会讨论新版本的发布计划", lines[0])
}

func TestRangeSamplesDedupeAndOrder(t *testing.T) {
	a := newTestAnalyzer(t,
		textMsg(at(6, 1, 9, 0), "alice", "早上先把昨天的问题修掉"),
		textMsg(at(6, 1, 12, 0), "alice", "今晚一起吃火锅吗"),
		textMsg(at(6, 1, 13, 0), "bob", "今晚一起吃火锅吗"),
		textMsg(at(6, 1, 20, 0), "carol", "晚上顺便把周报写了吧"),
	)

	lines := a.GetRepresentativeMessagesInRange("2024-06-01", "2024-06-01", nil)
	require.Len(t, lines, 3)

	// 相同内容只保留首次出现
	hotpot := 0
	for _, l := range lines {
		if strings.Contains(l, "火锅") {
			hotpot++
		}
	}
	assert.Equal(t, 1, hotpot)

	// 输出按时间排列
	assert.True(t, strings.HasPrefix(lines[0], "[2024-06-01 09:00]"))
	assert.True(t, strings.HasPrefix(lines[2], "[2024-06-01 20:00]"))
}

func TestRangeSamplesKeywordHints(t *testing.T) {
	a := newTestAnalyzer(t,
		textMsg(at(6, 1, 9, 0), "alice", "这一段发言比较长但是和提示词完全没有什么关系"),
		textMsg(at(6, 1, 10, 0), "bob", "今晚一起吃火锅吗"),
	)

	lines := a.GetRepresentativeMessagesInRange("2024-06-01", "2024-06-01", &RangeSampleOptions{
		Limit:        1,
		KeywordHints: []string{"火锅"},
	})
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "火锅")
}

func TestRangeSamplesPerUserCap(t *testing.T) {
	msgs := []*struct {
		min  int
		text string
	}{
		{0, "第一条比较长的发言内容在这里"},
		{5, "第二条比较长的发言内容在这里"},
		{10, "第三条比较长的发言内容在这里"},
	}
	data := newChatData()
	for _, m := range msgs {
		data.Messages = append(data.Messages, textMsg(at(6, 1, 9, m.min), "alice", m.text))
	}
	data.Messages = append(data.Messages, textMsg(at(6, 1, 9, 30), "bob", "隔壁老哥也说了一句话"))
	a := New(data, 2024, WithLocation(time.UTC))

	lines := a.GetRepresentativeMessagesInRange("2024-06-01", "2024-06-01", &RangeSampleOptions{
		Limit:      10,
		PerUserCap: 1,
	})
	require.Len(t, lines, 2)
	aliceLines := 0
	for _, l := range lines {
		if strings.Contains(l, "alice") {
			aliceLines++
		}
	}
	assert.Equal(t, 1, aliceLines)
}

func TestRangeSamplesBadDates(t *testing.T) {
	a := newTestAnalyzer(t, textMsg(at(6, 1, 9, 0), "alice", "随便说点什么内容"))
	assert.Empty(t, a.GetRepresentativeMessagesInRange("not-a-date", "2024-06-01", nil))
}

func TestUserSampleMessages(t *testing.T) {
	a := newTestAnalyzer(t,
		textMsg(at(6, 1, 9, 0), "alice", "周末打算去爬山有人一起吗"),
		textMsg(at(6, 1, 9, 5), "alice", "嗯嗯"),
		textMsg(at(6, 1, 9, 10), "bob", "别人的消息不应该混进来"),
	)

	lines := a.GetUserSampleMessages("alice", 10)
	require.Len(t, lines, 1)
	assert.Equal(t, "[2024-06-01 09:00] 周末打算去爬山有人一起吗", lines[0])

	assert.Empty(t, a.GetUserSampleMessages("", 10))
	assert.Empty(t, a.GetUserSampleMessages("nobody", 10))
}

func TestQuoteCandidates(t *testing.T) {
	a := newTestAnalyzer(t,
		textMsg(at(6, 1, 9, 0), "alice", "人生建议:不要在周五下午部署任何东西!"),
		textMsg(at(6, 1, 9, 5), "bob", "好的"),
		textMsg(at(6, 1, 9, 10), "carol", "短句"),
	)

	lines := a.GetQuoteCandidates(10)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "alice")
	assert.Contains(t, lines[0], "周五下午")
}
