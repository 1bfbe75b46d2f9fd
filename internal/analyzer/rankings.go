package analyzer

import (
	"sort"
	"strings"

	"github.com/sjzar/chatrewind/internal/model"
	"github.com/sjzar/chatrewind/pkg/util"
)

// rankCounter converts a per-user counter map into a descending RankEntry
// list with deterministic tie-breaking on id.
func (a *Analyzer) rankCounter(counter map[string]int, limit int) []*model.RankEntry {
	type pair struct {
		id    string
		count int
	}
	pairs := make([]pair, 0, len(counter))
	for id, count := range counter {
		pairs = append(pairs, pair{id, count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].id < pairs[j].id
	})
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	out := make([]*model.RankEntry, 0, len(pairs))
	for _, p := range pairs {
		user := a.ids.asUser(p.id)
		out = append(out, &model.RankEntry{ID: user.ID, Name: user.Name, Count: p.count})
	}
	return out
}

// GetUserRanking returns the talk-volume ranking with share percentages.
func (a *Analyzer) GetUserRanking(limit int) []*model.UserRankItem {
	if limit <= 0 {
		limit = 10
	}
	out := make([]*model.UserRankItem, 0, len(a.stats.UserStats))
	for id, stat := range a.stats.UserStats {
		user := a.ids.asUser(id)
		pct := 0.0
		if a.stats.TotalMessages > 0 {
			pct = round1(float64(stat.Count) / float64(a.stats.TotalMessages) * 100)
		}
		out = append(out, &model.UserRankItem{ID: user.ID, Name: user.Name, Count: stat.Count, Percentage: pct})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// GetTopWords returns the global word frequency ranking, filtered by the
// minimum yearly count.
func (a *Analyzer) GetTopWords(limit int) []*model.WordCount {
	if limit <= 0 {
		limit = 20
	}
	out := make([]*model.WordCount, 0, len(a.stats.WordFreq))
	for word, count := range a.stats.WordFreq {
		if word == "" || count < a.params.KeywordMinCount {
			continue
		}
		out = append(out, &model.WordCount{Word: word, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// GetNightOwlRanking 凌晨 0-6 点发言排行。
func (a *Analyzer) GetNightOwlRanking(limit int) []*model.RankEntry {
	if limit <= 0 {
		limit = 5
	}
	return a.rankCounter(a.stats.NightOwls, limit)
}

// GetEarlyBirdRanking 清晨 6-8 点发言排行。
func (a *Analyzer) GetEarlyBirdRanking(limit int) []*model.RankEntry {
	if limit <= 0 {
		limit = 5
	}
	return a.rankCounter(a.stats.EarlyBirds, limit)
}

// GetMentionedRanking 被 @ 次数排行。
func (a *Analyzer) GetMentionedRanking(limit int) []*model.RankEntry {
	if limit <= 0 {
		limit = 10
	}
	mentioned := make(map[string]int)
	for e, count := range a.stats.Interactions {
		mentioned[e.To] += count
	}
	return a.rankCounter(mentioned, limit)
}

// GetSupporterRanking 捧场王：接话 + 引用加权。
func (a *Analyzer) GetSupporterRanking(limit int) []*model.SupporterEntry {
	if limit <= 0 {
		limit = 10
	}
	out := make([]*model.SupporterEntry, 0, len(a.stats.UserStats))
	for id, stat := range a.stats.UserStats {
		user := a.ids.asUser(id)
		out = append(out, &model.SupporterEntry{
			ID:           user.ID,
			Name:         user.Name,
			ReplyCount:   stat.ReplyCount,
			QuoteCount:   stat.QuoteCount,
			SupportScore: stat.ReplyCount + stat.QuoteCount*2,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SupportScore != out[j].SupportScore {
			return out[i].SupportScore > out[j].SupportScore
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// GetQuoteRanking 引用大师排行，忽略零引用用户。
func (a *Analyzer) GetQuoteRanking(limit int) []*model.QuoteEntry {
	if limit <= 0 {
		limit = 10
	}
	out := make([]*model.QuoteEntry, 0)
	for id, stat := range a.stats.UserStats {
		if stat.QuoteCount <= 0 {
			continue
		}
		user := a.ids.asUser(id)
		out = append(out, &model.QuoteEntry{ID: user.ID, Name: user.Name, QuoteCount: stat.QuoteCount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].QuoteCount != out[j].QuoteCount {
			return out[i].QuoteCount > out[j].QuoteCount
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// GetLonerRanking 高冷帝：发言少但每次出场带动聊天量高。
// 门槛：全年 5 < count <= 120 且出场事件 >= 3。
func (a *Analyzer) GetLonerRanking(limit int) []*model.LonerEntry {
	if limit <= 0 {
		limit = 5
	}
	type loner struct {
		id        string
		count     int
		events    int
		impactAvg float64
		impactMax int
	}
	users := make([]loner, 0)
	for id, stat := range a.stats.UserStats {
		if stat.Count <= 5 || stat.Count > 120 || stat.ImpactEvents < 3 {
			continue
		}
		users = append(users, loner{
			id:        id,
			count:     stat.Count,
			events:    stat.ImpactEvents,
			impactAvg: float64(stat.ImpactSum) / float64(stat.ImpactEvents),
			impactMax: stat.ImpactMax,
		})
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].impactAvg != users[j].impactAvg {
			return users[i].impactAvg > users[j].impactAvg
		}
		return users[i].id < users[j].id
	})
	if len(users) > limit {
		users = users[:limit]
	}
	out := make([]*model.LonerEntry, 0, len(users))
	for _, u := range users {
		user := a.ids.asUser(u.id)
		out = append(out, &model.LonerEntry{
			ID:           user.ID,
			Name:         user.Name,
			Count:        u.count,
			ImpactAvg:    round1(u.impactAvg),
			ImpactMax:    u.impactMax,
			ImpactEvents: u.events,
		})
	}
	return out
}

// GetRepeaterRanking 复读机指数：复读次数占发言量的比例。
func (a *Analyzer) GetRepeaterRanking(limit int) []*model.RepeaterEntry {
	if limit <= 0 {
		limit = 10
	}
	type repeater struct {
		id    string
		echo  int
		count int
		index float64
	}
	users := make([]repeater, 0)
	for id, stat := range a.stats.UserStats {
		if stat.EchoCount <= 0 || stat.Count < 20 {
			continue
		}
		users = append(users, repeater{
			id:    id,
			echo:  stat.EchoCount,
			count: stat.Count,
			index: float64(stat.EchoCount) / float64(stat.Count),
		})
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].index != users[j].index {
			return users[i].index > users[j].index
		}
		if users[i].echo != users[j].echo {
			return users[i].echo > users[j].echo
		}
		return users[i].id < users[j].id
	})
	if len(users) > limit {
		users = users[:limit]
	}
	out := make([]*model.RepeaterEntry, 0, len(users))
	for _, u := range users {
		user := a.ids.asUser(u.id)
		out = append(out, &model.RepeaterEntry{
			ID:        user.ID,
			Name:      user.Name,
			EchoCount: u.echo,
			Count:     u.count,
			EchoIndex: round1(u.index * 100),
		})
	}
	return out
}

// GetTopRepeatedPhrases 年度被复读最多的句子（空白归一化后的完全重复）。
func (a *Analyzer) GetTopRepeatedPhrases(limit int) []*model.PhraseCount {
	if limit <= 0 {
		limit = 10
	}
	out := make([]*model.PhraseCount, 0)
	for text, count := range a.stats.RepeatedTextFreq {
		if len([]rune(text)) < 2 || count < 3 {
			continue
		}
		out = append(out, &model.PhraseCount{Text: text, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Text < out[j].Text
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// GetJokerAnalysis 乐子人指数：哈哈/666/表情包密度，前五名。
func (a *Analyzer) GetJokerAnalysis() []*model.JokerEntry {
	out := make([]*model.JokerEntry, 0)
	for id, stat := range a.stats.UserStats {
		if stat.Count <= 50 {
			continue
		}
		raw := (float64(stat.LaughCount)*2 + float64(stat.SixCount)*1.5 + float64(stat.EmojiCount)) / float64(stat.Count) * 100
		idx := int(raw + 0.5)
		if idx > 100 {
			idx = 100
		}
		user := a.ids.asUser(id)
		out = append(out, &model.JokerEntry{
			ID:         user.ID,
			Name:       user.Name,
			JokerIndex: idx,
			LaughCount: stat.LaughCount,
			SixCount:   stat.SixCount,
			EmojiCount: stat.EmojiCount,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].JokerIndex != out[j].JokerIndex {
			return out[i].JokerIndex > out[j].JokerIndex
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// GetCalendarData 日历热力图数据，按日期排序。
func (a *Analyzer) GetCalendarData() []*model.CalendarDay {
	out := make([]*model.CalendarDay, 0, len(a.stats.DailyData))
	for date, count := range a.stats.DailyData {
		out = append(out, &model.CalendarDay{Date: date, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// GetMessageTypeDistribution 消息类型分布。
func (a *Analyzer) GetMessageTypeDistribution() []*model.TypeShare {
	out := make([]*model.TypeShare, 0, len(a.stats.MessageTypes))
	for msgType, count := range a.stats.MessageTypes {
		pct := 0.0
		if a.stats.TotalMessages > 0 {
			pct = round1(float64(count) / float64(a.stats.TotalMessages) * 100)
		}
		out = append(out, &model.TypeShare{Type: msgType, Count: count, Percentage: pct})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// GetPeakHour 全年最活跃的小时。
func (a *Analyzer) GetPeakHour() *model.PeakHour {
	peak := &model.PeakHour{}
	for hour, count := range a.stats.HourlyData {
		if count > peak.Count {
			peak.Hour = hour
			peak.Count = count
		}
	}
	return peak
}

// GetWeekdayHourlyData 周×小时热力图，返回 [hour, weekday, count] 三元组。
func (a *Analyzer) GetWeekdayHourlyData() [][3]int {
	var grid [7][24]int
	for _, msg := range a.messages {
		t, ok := a.inYear(msg)
		if !ok {
			continue
		}
		grid[int(t.Weekday())][t.Hour()]++
	}
	out := make([][3]int, 0, 7*24)
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			out = append(out, [3]int{hour, day, grid[day][hour]})
		}
	}
	return out
}

// GetHighlights 年度亮点：最长消息、第一条、最后一条、最活跃一天。
func (a *Analyzer) GetHighlights() *model.Highlights {
	h := &model.Highlights{MostActiveDay: a.stats.MostActiveDay}

	if m := a.stats.LongestMessage; m != nil {
		h.LongestMsg = &model.HighlightMessage{
			Content: m.Msg.Content,
			User:    a.ids.asUser(m.Sender),
			Length:  len([]rune(m.Msg.Content)),
			Time:    util.FormatMinute(m.Time),
		}
	}
	if m := a.stats.FirstMessage; m != nil {
		h.FirstMsg = &model.HighlightMessage{
			Content: contentOrPlaceholder(m.Msg),
			User:    a.ids.asUser(m.Sender),
			Time:    util.FormatMinute(m.Time),
		}
	}
	if m := a.stats.LastMessage; m != nil {
		h.LastMsg = &model.HighlightMessage{
			Content: contentOrPlaceholder(m.Msg),
			User:    a.ids.asUser(m.Sender),
			Time:    util.FormatMinute(m.Time),
		}
	}
	return h
}

func contentOrPlaceholder(msg *model.Message) string {
	if msg.Content != "" {
		return msg.Content
	}
	return "[非文本消息]"
}

// GetRelationsData 社交关系图谱：高活跃节点与 @ 互动边。
func (a *Analyzer) GetRelationsData() *model.RelationGraph {
	counts := make(map[string]int, len(a.stats.UserStats))
	for id, stat := range a.stats.UserStats {
		counts[id] = stat.Count
	}

	nodeIDs := make([]string, 0)
	for id, count := range counts {
		if count > 20 {
			nodeIDs = append(nodeIDs, id)
		}
	}
	sort.Strings(nodeIDs)

	nameByID := make(map[string]string, len(nodeIDs))
	nodes := make([]*model.RelationNode, 0, len(nodeIDs))
	for _, id := range nodeIDs {
		name := a.ids.asUser(id).Name
		nameByID[id] = name
		size := float64(counts[id]) / 50
		if size < 15 {
			size = 15
		}
		if size > 60 {
			size = 60
		}
		nodes = append(nodes, &model.RelationNode{
			Name:       name,
			SymbolSize: size,
			Color:      nodeColor(counts[id]),
		})
	}

	nodeSet := make(map[string]struct{}, len(nodeIDs))
	for _, id := range nodeIDs {
		nodeSet[id] = struct{}{}
	}

	links := make([]*model.RelationLink, 0)
	for e, count := range a.stats.Interactions {
		if count < 3 {
			continue
		}
		if _, ok := nodeSet[e.From]; !ok {
			continue
		}
		if _, ok := nodeSet[e.To]; !ok {
			continue
		}
		width := float64(count) / 10
		if width > 5 {
			width = 5
		}
		links = append(links, &model.RelationLink{
			Source: nameByID[e.From],
			Target: nameByID[e.To],
			Value:  count,
			Width:  width,
		})
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].Value != links[j].Value {
			return links[i].Value > links[j].Value
		}
		if links[i].Source != links[j].Source {
			return links[i].Source < links[j].Source
		}
		return links[i].Target < links[j].Target
	})

	return &model.RelationGraph{Nodes: nodes, Links: links}
}

func nodeColor(count int) string {
	switch {
	case count > 1000:
		return "#ffd700"
	case count > 500:
		return "#a855f7"
	case count > 200:
		return "#3b82f6"
	default:
		return "#10b981"
	}
}

// GetSentimentSummary 全群情绪概览与小太阳/丧气王。
// 情绪阈值为闭区间：均分恰好等于阈值时计为非中性。
func (a *Analyzer) GetSentimentSummary() *model.SentimentSummary {
	s := a.stats.Sentiment
	total := s.TextMsgCount
	pos := s.PosMsgCount
	neg := s.NegMsgCount
	neu := total - pos - neg
	if neu < 0 {
		neu = 0
	}

	avg := 0.0
	if total > 0 {
		avg = float64(s.ScoreSum) / float64(total)
	}

	mood := "中性"
	if avg >= a.params.MoodThreshold {
		mood = "正向"
	} else if avg <= -a.params.MoodThreshold {
		mood = "负向"
	}

	summary := &model.SentimentSummary{
		Mood:              mood,
		AvgScore:          round2(avg),
		TotalTextMessages: total,
	}
	if total > 0 {
		summary.PosRatio = round1(float64(pos) / float64(total) * 100)
		summary.NegRatio = round1(float64(neg) / float64(total) * 100)
		summary.NeutralRatio = round1(float64(neu) / float64(total) * 100)
	}

	type userAvg struct {
		id        string
		textCount int
		avg       float64
	}
	users := make([]userAvg, 0)
	for id, stat := range a.stats.UserStats {
		if stat.SentimentTextCount < a.params.SentimentMinTextMsgs {
			continue
		}
		users = append(users, userAvg{
			id:        id,
			textCount: stat.SentimentTextCount,
			avg:       float64(stat.SentimentScoreSum) / float64(stat.SentimentTextCount),
		})
	}
	if len(users) == 0 {
		return summary
	}

	sunniest := users[0]
	gloomiest := users[0]
	for _, u := range users[1:] {
		if u.avg > sunniest.avg || (u.avg == sunniest.avg && u.textCount > sunniest.textCount) {
			sunniest = u
		}
		if u.avg < gloomiest.avg || (u.avg == gloomiest.avg && u.textCount > gloomiest.textCount) {
			gloomiest = u
		}
	}
	summary.Sunshine = &model.SentimentUser{
		User:      a.ids.asUser(sunniest.id),
		Avg:       round2(sunniest.avg),
		TextCount: sunniest.textCount,
	}
	summary.Gloomy = &model.SentimentUser{
		User:      a.ids.asUser(gloomiest.id),
		Avg:       round2(gloomiest.avg),
		TextCount: gloomiest.textCount,
	}
	return summary
}

// GetUserStats 单用户画像。未知用户返回零值结构。
func (a *Analyzer) GetUserStats(userID string) *model.UserInsight {
	id := strings.TrimSpace(userID)
	out := &model.UserInsight{PeakHour: -1, TopWords: []string{}}
	if id == "" {
		return out
	}
	stat, ok := a.stats.UserStats[id]
	if !ok {
		return out
	}

	out.Count = stat.Count
	out.TextLength = stat.TextLength
	if textMsgs := stat.Types[model.TypeText]; textMsgs > 0 {
		out.AvgTextLength = int(float64(stat.TextLength)/float64(textMsgs) + 0.5)
	}
	out.ActiveDays = len(stat.ActiveDays)
	if out.ActiveDays > 0 {
		out.DailyAvg = float64(stat.Count) / float64(out.ActiveDays)
	}
	out.NightCount = stat.NightCount
	out.LaughCount = stat.LaughCount
	out.SixCount = stat.SixCount
	out.EmojiCount = stat.EmojiCount
	out.QuestionCount = stat.QuestionCount
	out.MentionCount = stat.MentionCount
	out.ReplyCount = stat.ReplyCount
	out.QuoteCount = stat.QuoteCount
	out.EchoCount = stat.EchoCount
	out.WithdrawCount = stat.WithdrawCount
	if stat.SentimentTextCount > 0 {
		out.SentimentAvg = round2(float64(stat.SentimentScoreSum) / float64(stat.SentimentTextCount))
	}

	peakHour, peakCount := -1, 0
	for hour, count := range stat.Hours {
		if count > peakCount {
			peakHour, peakCount = hour, count
		}
	}
	out.PeakHour = peakHour

	// 该用户最常用的词：对其文本消息再扫一遍
	freq := make(map[string]int)
	for _, msg := range a.messages {
		if _, ok := a.inYear(msg); !ok || !msg.IsText() {
			continue
		}
		if a.senderID(msg) != id {
			continue
		}
		for _, token := range a.tokenizer.Extract(StripMentions(msg.Content)) {
			freq[token]++
		}
	}
	words := make([]*model.WordCount, 0, len(freq))
	for w, c := range freq {
		if w == "" || c < a.params.KeywordMinCount {
			continue
		}
		words = append(words, &model.WordCount{Word: w, Count: c})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})
	if len(words) > 10 {
		words = words[:10]
	}
	for _, w := range words {
		out.TopWords = append(out.TopWords, w.Word)
	}
	return out
}
