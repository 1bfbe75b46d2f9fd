package analyzer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjzar/chatrewind/internal/model"
)

func awardByTitle(awards []*model.Award, title string) *model.Award {
	for _, a := range awards {
		if a.Title == title {
			return a
		}
	}
	return nil
}

func TestAwardsBaseline(t *testing.T) {
	var msgs []*model.Message
	// alice 15 条分布在 3 天，bob 13 条、carol 12 条各 1 天
	for i := 0; i < 15; i++ {
		msgs = append(msgs, textMsg(at(3, 4+i%3, 9, i), "alice", fmt.Sprintf("第%d条日常内容", i)))
	}
	for i := 0; i < 13; i++ {
		msgs = append(msgs, textMsg(at(3, 7, 10, i), "bob", fmt.Sprintf("另一些普通发言%d", i)))
	}
	for i := 0; i < 12; i++ {
		msgs = append(msgs, textMsg(at(3, 8, 11, i), "carol", fmt.Sprintf("收尾发言内容%d", i)))
	}
	sortByTime(msgs)
	a := newTestAnalyzer(t, msgs...)

	awards := a.GetAwards()
	titles := make([]string, 0, len(awards))
	for _, award := range awards {
		titles = append(titles, award.Title)
	}
	// 门槛型奖项在小群里全部空缺
	assert.Equal(t, []string{"年度话痨王", "银嘴巴", "铜舌头", "全勤冠军", "年度第一声", "年度收官者"}, titles)

	top := awards[0]
	require.NotNil(t, top.User)
	assert.Equal(t, "alice", top.User.ID)
	assert.Equal(t, 15, top.Value)
	assert.Equal(t, "全年发言 15 条，占总量 37.5%", top.Desc)
	assert.Equal(t, "🏆", top.Icon)

	attendance := awardByTitle(awards, "全勤冠军")
	require.NotNil(t, attendance)
	assert.Equal(t, "alice", attendance.User.ID)
	assert.Equal(t, 3, attendance.Value)

	first := awardByTitle(awards, "年度第一声")
	require.NotNil(t, first)
	assert.Equal(t, "alice", first.User.ID)
	last := awardByTitle(awards, "年度收官者")
	require.NotNil(t, last)
	assert.Equal(t, "carol", last.User.ID)
}

func TestAwardsLaughAndCP(t *testing.T) {
	var msgs []*model.Message
	for i := 0; i < 60; i++ {
		msgs = append(msgs, textMsg(at(4, 1+i%10, 9, i%60), "bob", fmt.Sprintf("哈哈哈这个真好笑%d", i)))
	}
	for i := 0; i < 60; i++ {
		msgs = append(msgs, textMsg(at(5, 1+i%10, 10, i%60), "alice", fmt.Sprintf("@bob 看一下第%d个", i)))
	}
	sortByTime(msgs)
	a := newTestAnalyzer(t, msgs...)

	awards := a.GetAwards()

	joy := awardByTitle(awards, "快乐源泉")
	require.NotNil(t, joy)
	assert.Equal(t, "bob", joy.User.ID)
	assert.Equal(t, 60, joy.Value)

	cp := awardByTitle(awards, "年度CP")
	require.NotNil(t, cp)
	assert.Equal(t, 60, cp.Value)
	assert.Equal(t, "alice ❤️ bob", cp.UserLabel)

	popular := awardByTitle(awards, "人气王")
	require.NotNil(t, popular)
	assert.Equal(t, "bob", popular.User.ID)

	replier := awardByTitle(awards, "回复之神")
	require.NotNil(t, replier)
	assert.Equal(t, "alice", replier.User.ID)
	assert.Equal(t, 60, replier.Value)
}

func TestAwardsEmptyBelowFloor(t *testing.T) {
	// 所有人发言都不超过 10 条，没有任何奖项
	a := newTestAnalyzer(t,
		textMsg(at(1, 1, 9, 0), "alice", "只有一条"),
	)
	assert.Empty(t, a.GetAwards())
}
