package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjzar/chatrewind/internal/model"
)

// buildDailyTraffic 生成 1 月 1 日起 days 天、每天 perDay 条的背景流量。
func buildDailyTraffic(days, perDay int, content string) []*model.Message {
	msgs := make([]*model.Message, 0, days*perDay)
	senders := []string{"alice", "bob", "carol"}
	for d := 0; d < days; d++ {
		day := time.Date(2024, 1, 1+d, 9, 0, 0, 0, time.UTC)
		for i := 0; i < perDay; i++ {
			msgs = append(msgs, textMsg(day.Add(time.Duration(i)*3*time.Minute), senders[i%3], content))
		}
	}
	return msgs
}

func TestHotEventDetection(t *testing.T) {
	msgs := buildDailyTraffic(30, 10, "吃饭了吗各位")
	// 1 月 15 日插入 120 条爆发流量
	burstDay := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)
	for i := 0; i < 120; i++ {
		msgs = append(msgs, textMsg(burstDay.Add(time.Duration(i)*10*time.Second), "dave", "发布会真的太精彩了"))
	}
	sortByTime(msgs)
	a := newTestAnalyzer(t, msgs...)

	events := a.GetHotEvents(5)
	require.NotEmpty(t, events)
	top := events[0]
	assert.Equal(t, "2024-01-15", top.PeakDate)
	assert.Equal(t, "2024-01-15", top.StartDate)
	assert.Equal(t, "2024-01-15", top.EndDate)
	assert.Equal(t, 130, top.TotalCount)
	assert.Equal(t, 130, top.PeakCount)

	words := make([]string, 0, len(top.Keywords))
	for _, kw := range top.Keywords {
		words = append(words, kw.Word)
	}
	assert.Contains(t, words, "发布会")
}

func TestHotEventMergesAdjacentDays(t *testing.T) {
	msgs := buildDailyTraffic(30, 10, "吃饭了吗各位")
	for _, day := range []int{15, 16} {
		burst := time.Date(2024, 1, day, 20, 0, 0, 0, time.UTC)
		for i := 0; i < 120; i++ {
			msgs = append(msgs, textMsg(burst.Add(time.Duration(i)*10*time.Second), "dave", "版本上线啦大家快试试"))
		}
	}
	sortByTime(msgs)
	a := newTestAnalyzer(t, msgs...)

	events := a.GetHotEvents(5)
	require.NotEmpty(t, events)
	top := events[0]
	assert.Equal(t, "2024-01-15", top.StartDate)
	assert.Equal(t, "2024-01-16", top.EndDate)
	assert.Equal(t, 260, top.TotalCount)
}

func TestHotEventFallbackWithoutBurst(t *testing.T) {
	// 平稳流量没有任何一天过线，回退为按天数量 Top-N
	msgs := buildDailyTraffic(10, 8, "日常闲聊两句")
	a := newTestAnalyzer(t, msgs...)

	events := a.GetHotEvents(3)
	require.Len(t, events, 3)
	for _, ev := range events {
		assert.Equal(t, ev.StartDate, ev.EndDate)
	}
	// 并列时按日期升序
	assert.Equal(t, "2024-01-01", events[0].StartDate)
}

func TestMonthlyKeywordsTFIDF(t *testing.T) {
	msgs := make([]*model.Message, 0)
	for m := time.January; m <= time.December; m++ {
		day := time.Date(2024, m, 10, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			msgs = append(msgs, textMsg(day.Add(time.Duration(i)*time.Minute), "alice", "docker 部署完成"))
		}
		if m == time.March {
			for i := 0; i < 5; i++ {
				msgs = append(msgs, textMsg(day.Add(time.Hour+time.Duration(i)*time.Minute), "bob", "golang 写起来真顺手"))
			}
		}
	}
	a := newTestAnalyzer(t, msgs...)

	months := a.GetMonthlyKeywords(5)
	require.Len(t, months, 12)
	march := months[2]
	require.Equal(t, 3, march.Month)
	require.NotEmpty(t, march.Keywords)

	// golang 只出现在 3 月，idf = ln(13/2)；全年出现的 docker idf 为 0
	assert.Equal(t, "golang", march.Keywords[0].Word)
	assert.Equal(t, 5, march.Keywords[0].Count)
	assert.InDelta(t, 9.36, march.Keywords[0].Score, 0.001)

	for _, kw := range march.Keywords {
		if kw.Word == "docker" {
			assert.Equal(t, 0.0, kw.Score)
		}
	}
}

func sortByTime(msgs []*model.Message) {
	for i := 1; i < len(msgs); i++ {
		for j := i; j > 0 && msgs[j].CreateTime < msgs[j-1].CreateTime; j-- {
			msgs[j], msgs[j-1] = msgs[j-1], msgs[j]
		}
	}
}
