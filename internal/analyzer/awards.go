package analyzer

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/sjzar/chatrewind/internal/model"
)

// awardUser is a userStat snapshot with its id, used for in-place sorting.
type awardUser struct {
	id string
	*userStat
}

// GetAwards 年度奖项评选。
// 仅统计全年发言 > 10 条的用户；各奖项有各自的激活门槛，不达标则空缺。
func (a *Analyzer) GetAwards() []*model.Award {
	awards := make([]*model.Award, 0, 20)
	if a.stats.TotalMessages == 0 {
		return awards
	}

	users := make([]awardUser, 0, len(a.stats.UserStats))
	for id, stat := range a.stats.UserStats {
		if stat.Count > 10 {
			users = append(users, awardUser{id, stat})
		}
	}
	if len(users) == 0 {
		return awards
	}

	push := func(icon, title, id string, value int, desc string) {
		awards = append(awards, &model.Award{
			Icon:  icon,
			Title: title,
			User:  a.ids.asUser(id),
			Value: value,
			Desc:  desc,
		})
	}

	// 发言类
	byCount := sortedUsers(users, func(u awardUser) float64 { return float64(u.Count) })
	push("🏆", "年度话痨王", byCount[0].id, byCount[0].Count,
		fmt.Sprintf("全年发言 %s 条，占总量 %.1f%%",
			groupDigits(byCount[0].Count),
			float64(byCount[0].Count)/float64(a.stats.TotalMessages)*100))
	if len(byCount) > 1 {
		push("🥈", "银嘴巴", byCount[1].id, byCount[1].Count,
			fmt.Sprintf("全年发言 %s 条", groupDigits(byCount[1].Count)))
	}
	if len(byCount) > 2 {
		push("🥉", "铜舌头", byCount[2].id, byCount[2].Count,
			fmt.Sprintf("全年发言 %s 条", groupDigits(byCount[2].Count)))
	}

	// 长篇大论家
	if best, avg := bestByAvgLength(users, 50, false); best != nil && avg > 20 {
		rounded := int(avg + 0.5)
		push("📝", "长篇大论家", best.id, rounded, fmt.Sprintf("平均每条消息 %d 字", rounded))
	}
	// 闪电侠
	if best, avg := bestByAvgLength(users, 100, true); best != nil && avg < 10 {
		rounded := int(avg + 0.5)
		push("⚡", "闪电侠", best.id, rounded, fmt.Sprintf("平均每条仅 %d 字，言简意赅", rounded))
	}

	// 时间类
	if id, count := topCounter(a.stats.NightOwls); count > 50 {
		push("🌙", "深夜守护者", id, count, fmt.Sprintf("凌晨发送 %d 条消息", count))
	}
	if id, count := topCounter(a.stats.EarlyBirds); count > 30 {
		push("🌅", "早起鸟", id, count, fmt.Sprintf("清晨6-8点发送 %d 条消息", count))
	}
	if id, count := topCounter(a.countByHourRange(11, 14)); count > 100 {
		push("🍜", "午间摸鱼王", id, count, fmt.Sprintf("午间时段发送 %d 条消息", count))
	}

	// 全勤冠军
	byDays := sortedUsers(users, func(u awardUser) float64 { return float64(len(u.ActiveDays)) })
	push("💪", "全勤冠军", byDays[0].id, len(byDays[0].ActiveDays),
		fmt.Sprintf("%d 天都有发言", len(byDays[0].ActiveDays)))

	// 内容类
	if id, count := topCounter(a.stats.LaughCount); count > 50 {
		push("😂", "快乐源泉", id, count, fmt.Sprintf("发送 %d 次\"哈哈\"", count))
	}
	if id, count := topCounter(a.stats.SixCount); count > 30 {
		push("🔥", "666贡献者", id, count, fmt.Sprintf("发送 %d 次\"666\"", count))
	}
	if id, count := topCounter(a.stats.EmojiCount); count > 100 {
		push("🤪", "表情包大师", id, count, fmt.Sprintf("发送 %d 个表情包", count))
	}

	byQuestion := sortedUsers(users, func(u awardUser) float64 { return float64(u.QuestionCount) })
	if byQuestion[0].QuestionCount > 100 {
		push("❓", "问题宝宝", byQuestion[0].id, byQuestion[0].QuestionCount,
			fmt.Sprintf("发送 %d 个问号", byQuestion[0].QuestionCount))
	}

	byImages := sortedUsers(users, func(u awardUser) float64 { return float64(u.Types[model.TypeImage]) })
	if n := byImages[0].Types[model.TypeImage]; n > 50 {
		push("📸", "记录生活家", byImages[0].id, n, fmt.Sprintf("分享了 %d 张图片", n))
	}
	byVideos := sortedUsers(users, func(u awardUser) float64 { return float64(u.Types[model.TypeVideo]) })
	if n := byVideos[0].Types[model.TypeVideo]; n > 20 {
		push("🎬", "视频达人", byVideos[0].id, n, fmt.Sprintf("分享了 %d 个视频", n))
	}

	// 社交类
	if award := a.cpAward(); award != nil {
		awards = append(awards, award)
	}

	mentioned := make(map[string]int)
	socialRange := make(map[string]map[string]struct{})
	for e, count := range a.stats.Interactions {
		mentioned[e.To] += count
		targets := socialRange[e.From]
		if targets == nil {
			targets = make(map[string]struct{})
			socialRange[e.From] = targets
		}
		targets[e.To] = struct{}{}
	}
	if id, count := topCounter(mentioned); count > 30 {
		push("👑", "人气王", id, count, fmt.Sprintf("被提及 %d 次", count))
	}

	rangeCount := make(map[string]int, len(socialRange))
	for id, targets := range socialRange {
		rangeCount[id] = len(targets)
	}
	if id, count := topCounter(rangeCount); count > 5 {
		push("🤝", "交际花", id, count, fmt.Sprintf("与 %d 人互动", count))
	}

	byMention := sortedUsers(users, func(u awardUser) float64 { return float64(u.MentionCount) })
	if byMention[0].MentionCount > 50 {
		push("💬", "回复之神", byMention[0].id, byMention[0].MentionCount,
			fmt.Sprintf("提及他人 %d 次", byMention[0].MentionCount))
	}

	// 趣味类
	byWithdraw := sortedUsers(users, func(u awardUser) float64 { return float64(u.WithdrawCount) })
	if byWithdraw[0].WithdrawCount > 10 {
		push("🔙", "后悔药大王", byWithdraw[0].id, byWithdraw[0].WithdrawCount,
			fmt.Sprintf("撤回了 %d 条消息", byWithdraw[0].WithdrawCount))
	}

	if m := a.stats.FirstMessage; m != nil {
		push("🎯", "年度第一声", m.Sender, 1, "发送了年度第一条消息")
	}
	if m := a.stats.LastMessage; m != nil {
		push("🌟", "年度收官者", m.Sender, 1, "发送了年度最后一条消息")
	}

	if id, count := topCounter(a.countByWeekday(true)); count > 200 {
		push("🎉", "周末战士", id, count, fmt.Sprintf("周末发送 %d 条消息", count))
	}
	if id, count := topCounter(a.countByWeekday(false)); count > 500 {
		push("💼", "工作狂", id, count, fmt.Sprintf("工作日发送 %d 条消息", count))
	}

	return awards
}

// cpAward 年度CP：无向 @ 互动量最高的一对。
func (a *Analyzer) cpAward() *model.Award {
	pairs := make(map[edge]int)
	for e, count := range a.stats.Interactions {
		if e.From == "" || e.To == "" {
			continue
		}
		p := edge{From: e.From, To: e.To}
		if p.From > p.To {
			p.From, p.To = p.To, p.From
		}
		pairs[p] += count
	}

	var best edge
	bestCount := 0
	for p, count := range pairs {
		if count > bestCount ||
			(count == bestCount && (p.From < best.From || (p.From == best.From && p.To < best.To))) {
			best = p
			bestCount = count
		}
	}
	if bestCount <= 50 {
		return nil
	}

	u1 := a.ids.asUser(best.From)
	u2 := a.ids.asUser(best.To)
	return &model.Award{
		Icon:      "💑",
		Title:     "年度CP",
		Users:     []*model.UserMeta{u1, u2},
		UserLabel: u1.Name + " ❤️ " + u2.Name,
		Value:     bestCount,
		Desc:      fmt.Sprintf("互动 %d 次", bestCount),
	}
}

// countByHourRange 重扫消息，统计各用户在 [fromHour, toHour) 时段的发言数。
func (a *Analyzer) countByHourRange(fromHour, toHour int) map[string]int {
	out := make(map[string]int)
	for _, msg := range a.messages {
		t, ok := a.inYear(msg)
		if !ok {
			continue
		}
		if h := t.Hour(); h >= fromHour && h < toHour {
			out[a.senderID(msg)]++
		}
	}
	return out
}

// countByWeekday 统计各用户周末（或工作日）的发言数。
func (a *Analyzer) countByWeekday(weekend bool) map[string]int {
	out := make(map[string]int)
	for _, msg := range a.messages {
		t, ok := a.inYear(msg)
		if !ok {
			continue
		}
		day := int(t.Weekday())
		isWeekend := day == 0 || day == 6
		if isWeekend == weekend {
			out[a.senderID(msg)]++
		}
	}
	return out
}

// sortedUsers returns a copy sorted descending by key, ties broken by id.
func sortedUsers(users []awardUser, key func(awardUser) float64) []awardUser {
	out := make([]awardUser, len(users))
	copy(out, users)
	sort.Slice(out, func(i, j int) bool {
		ki, kj := key(out[i]), key(out[j])
		if ki != kj {
			return ki > kj
		}
		return out[i].id < out[j].id
	})
	return out
}

// bestByAvgLength picks the user with the longest (or shortest) average text
// message among those with more than minTexts text messages.
func bestByAvgLength(users []awardUser, minTexts int, shortest bool) (*awardUser, float64) {
	var best *awardUser
	bestAvg := 0.0
	for i := range users {
		u := users[i]
		texts := u.Types[model.TypeText]
		if texts <= minTexts {
			continue
		}
		avg := float64(u.TextLength) / float64(texts)
		better := avg > bestAvg
		if shortest {
			better = avg < bestAvg
		}
		if best == nil || better || (avg == bestAvg && u.id < best.id) {
			best = &users[i]
			bestAvg = avg
		}
	}
	return best, bestAvg
}

// topCounter returns the highest-count key in a counter map, ties broken by
// key order for determinism.
func topCounter(counter map[string]int) (string, int) {
	bestID, bestCount := "", 0
	for id, count := range counter {
		if count > bestCount || (count == bestCount && count > 0 && id < bestID) {
			bestID, bestCount = id, count
		}
	}
	return bestID, bestCount
}

// groupDigits formats n with thousands separators, e.g. 12345 → "12,345".
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
