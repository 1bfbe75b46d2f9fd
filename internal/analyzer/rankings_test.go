package analyzer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjzar/chatrewind/internal/model"
)

func TestSentimentSummaryMoodBoundary(t *testing.T) {
	// 一条正向加三条中性，平均分恰好落在阈值上
	a := newTestAnalyzer(t,
		textMsg(at(3, 1, 10, 0), "alice", "开心"),
		textMsg(at(3, 1, 10, 1), "alice", "正常内容一"),
		textMsg(at(3, 1, 10, 2), "alice", "正常内容二"),
		textMsg(at(3, 1, 10, 3), "alice", "正常内容三"),
	)
	s := a.GetSentimentSummary()
	assert.Equal(t, "正向", s.Mood)
	assert.Equal(t, 0.25, s.AvgScore)
	assert.Equal(t, 25.0, s.PosRatio)
	assert.Equal(t, 0.0, s.NegRatio)
	assert.Equal(t, 75.0, s.NeutralRatio)
	assert.Equal(t, 4, s.TotalTextMessages)
	// 没有人达到文本数门槛
	assert.Nil(t, s.Sunshine)
	assert.Nil(t, s.Gloomy)

	b := newTestAnalyzer(t,
		textMsg(at(3, 1, 10, 0), "alice", "难受"),
		textMsg(at(3, 1, 10, 1), "alice", "正常内容一"),
		textMsg(at(3, 1, 10, 2), "alice", "正常内容二"),
		textMsg(at(3, 1, 10, 3), "alice", "正常内容三"),
	)
	assert.Equal(t, "负向", b.GetSentimentSummary().Mood)

	c := newTestAnalyzer(t, textMsg(at(3, 1, 10, 0), "alice", "正常内容"))
	assert.Equal(t, "中性", c.GetSentimentSummary().Mood)
}

func TestSentimentSunshineAndGloomy(t *testing.T) {
	var msgs []*model.Message
	for i := 0; i < 30; i++ {
		msgs = append(msgs, textMsg(at(3, 1+i%5, 10, i%60), "alice", fmt.Sprintf("今天很开心第%d次", i)))
		msgs = append(msgs, textMsg(at(4, 1+i%5, 10, i%60), "bob", fmt.Sprintf("真的好难受第%d次", i)))
	}
	sortByTime(msgs)
	a := newTestAnalyzer(t, msgs...)

	s := a.GetSentimentSummary()
	require.NotNil(t, s.Sunshine)
	assert.Equal(t, "alice", s.Sunshine.User.ID)
	assert.Equal(t, 1.0, s.Sunshine.Avg)
	assert.Equal(t, 30, s.Sunshine.TextCount)
	require.NotNil(t, s.Gloomy)
	assert.Equal(t, "bob", s.Gloomy.User.ID)
	assert.Equal(t, -1.0, s.Gloomy.Avg)
}

func TestRelationsDataThresholds(t *testing.T) {
	// 发言不过 20 条的用户不进图
	a := newTestAnalyzer(t,
		textMsg(at(3, 1, 10, 0), "alice", "只有几条发言"),
		textMsg(at(3, 1, 10, 1), "bob", "另一个低频用户"),
	)
	g := a.GetRelationsData()
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Links)

	var msgs []*model.Message
	for i := 0; i < 25; i++ {
		msgs = append(msgs, textMsg(at(3, 1+i%5, 10, i%60), "alice", fmt.Sprintf("@bob 聊点什么第%d句", i)))
		msgs = append(msgs, textMsg(at(4, 1+i%5, 10, i%60), "bob", fmt.Sprintf("随便回一句第%d", i)))
	}
	sortByTime(msgs)
	b := newTestAnalyzer(t, msgs...)

	g = b.GetRelationsData()
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "alice", g.Nodes[0].Name)
	assert.Equal(t, 15.0, g.Nodes[0].SymbolSize)
	require.Len(t, g.Links, 1)
	assert.Equal(t, "alice", g.Links[0].Source)
	assert.Equal(t, "bob", g.Links[0].Target)
	assert.Equal(t, 25, g.Links[0].Value)
	assert.Equal(t, 2.5, g.Links[0].Width)
}

func TestUserStatsProfile(t *testing.T) {
	a := newTestAnalyzer(t,
		textMsg(at(3, 1, 10, 0), "alice", "部署完成"),
		textMsg(at(3, 1, 10, 5), "alice", "部署完成"),
		textMsg(at(3, 2, 10, 0), "alice", "别的话题"),
		typedMsg(at(3, 2, 10, 5), "alice", model.TypeImage, ""),
	)

	in := a.GetUserStats("alice")
	assert.Equal(t, 4, in.Count)
	assert.Equal(t, 2, in.ActiveDays)
	assert.Equal(t, 2.0, in.DailyAvg)
	assert.Equal(t, 10, in.PeakHour)
	assert.Equal(t, 1, in.EmojiCount)
	assert.Equal(t, 4, in.AvgTextLength)
	assert.Contains(t, in.TopWords, "部署完成")

	// 未知用户返回零值画像
	ghost := a.GetUserStats("nobody")
	assert.Equal(t, 0, ghost.Count)
	assert.Equal(t, -1, ghost.PeakHour)
	assert.Empty(t, ghost.TopWords)
}

func TestCalendarAndPeakHour(t *testing.T) {
	a := newTestAnalyzer(t,
		textMsg(at(3, 1, 10, 0), "alice", "第一天的消息"),
		textMsg(at(3, 1, 21, 0), "alice", "第一天的第二条"),
		textMsg(at(3, 1, 21, 5), "bob", "还是第一天"),
		textMsg(at(3, 3, 9, 0), "alice", "隔了一天"),
	)

	days := a.GetCalendarData()
	require.Len(t, days, 2)
	assert.Equal(t, "2024-03-01", days[0].Date)
	assert.Equal(t, 3, days[0].Count)
	assert.Equal(t, "2024-03-03", days[1].Date)

	peak := a.GetPeakHour()
	assert.Equal(t, 21, peak.Hour)
	assert.Equal(t, 2, peak.Count)
}
