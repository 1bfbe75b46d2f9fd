package analyzer

import (
	"regexp"
	"strings"
	"time"

	"github.com/sjzar/chatrewind/internal/model"
	"github.com/sjzar/chatrewind/pkg/util"
)

// userStat is the per-canonical-id accumulator. Created on first message
// from that user, mutated only by the aggregation pass.
type userStat struct {
	Count      int
	TextLength int
	Hours      [24]int
	Types      map[string]int
	ActiveDays map[string]struct{}

	LaughCount    int
	SixCount      int
	EmojiCount    int
	QuestionCount int
	MentionCount  int
	NightCount    int
	WithdrawCount int

	QuoteCount int
	ReplyCount int
	EchoCount  int

	ImpactSum    int
	ImpactEvents int
	ImpactMax    int

	SentimentTextCount   int
	SentimentScoreSum    int
	SentimentPosMsgCount int
	SentimentNegMsgCount int
}

// edge is a directed sender→mentioned interaction.
type edge struct {
	From string
	To   string
}

// taggedMessage remembers a message together with its resolved sender and
// local time, for first/last/longest records.
type taggedMessage struct {
	Msg    *model.Message
	Sender string
	Time   time.Time
}

type sentimentTotals struct {
	TextMsgCount int
	PosMsgCount  int
	NegMsgCount  int
	ScoreSum     int
}

// yearStats is the full mutable aggregate for one run. After the pass it is
// only ever read.
type yearStats struct {
	TotalMessages int
	ActiveDays    map[string]struct{}
	MonthlyData   [12]int
	HourlyData    [24]int
	WeekdayData   [7]int
	DailyData     map[string]int
	UserStats     map[string]*userStat
	MessageTypes  map[string]int

	WordFreq        map[string]int
	MonthlyWordFreq [12]map[string]int
	DailyWordFreq   map[string]map[string]int

	NightOwls  map[string]int
	EarlyBirds map[string]int

	Interactions map[edge]int
	LaughCount   map[string]int
	SixCount     map[string]int
	EmojiCount   map[string]int

	RepeatedTextFreq map[string]int

	LongestMessage *taggedMessage
	FirstMessage   *taggedMessage
	LastMessage    *taggedMessage
	MostActiveDay  *model.CalendarDay

	Sentiment sentimentTotals
}

func newYearStats() *yearStats {
	s := &yearStats{
		ActiveDays:       make(map[string]struct{}),
		DailyData:        make(map[string]int),
		UserStats:        make(map[string]*userStat),
		MessageTypes:     make(map[string]int),
		WordFreq:         make(map[string]int),
		DailyWordFreq:    make(map[string]map[string]int),
		NightOwls:        make(map[string]int),
		EarlyBirds:       make(map[string]int),
		Interactions:     make(map[edge]int),
		LaughCount:       make(map[string]int),
		SixCount:         make(map[string]int),
		EmojiCount:       make(map[string]int),
		RepeatedTextFreq: make(map[string]int),
	}
	for i := range s.MonthlyWordFreq {
		s.MonthlyWordFreq[i] = make(map[string]int)
	}
	return s
}

var (
	laughRunRe = regexp.MustCompile(`[哈呵嘿]+`)
	sixRunRe   = regexp.MustCompile(`6{2,}`)
	// 撤回系统消息里带引号的是被撤回者的显示名
	withdrawRe      = regexp.MustCompile(`"(.+)".*撤回`)
	mentionTargetRe = regexp.MustCompile(`@([^\x{2005}\x{2006}\x{2009}\x{202f}\x{00a0}\r\n\t]{1,80})[\x{2005}\x{2006}\x{2009}\x{202f}\x{00a0}]+`)
)

// impactEvent is opened when a user re-appears after a silence gap and
// credited back to them once the observation window has passed. Events open
// and expire in time order (FIFO), which is why the pass requires sorted
// input.
type impactEvent struct {
	ExpireAt   time.Time
	Sender     string
	StartTotal int
	StartSelf  int
}

// aggregate is the single forward pass over the year-filtered sequence.
func (a *Analyzer) aggregate() {
	var lastMsg *struct {
		Sender   string
		Time     time.Time
		TextNorm string
	}

	processedBySender := make(map[string]int)
	processedTotal := 0
	var impactQueue []impactEvent
	impactHead := 0
	lastAppearance := make(map[string]time.Time)

	flushImpact := func(now time.Time, all bool) {
		for impactHead < len(impactQueue) {
			ev := impactQueue[impactHead]
			if !all && ev.ExpireAt.After(now) {
				break
			}
			impactHead++
			totalDelta := processedTotal - ev.StartTotal
			selfDelta := processedBySender[ev.Sender] - ev.StartSelf
			othersDelta := totalDelta - selfDelta
			if othersDelta < 0 {
				othersDelta = 0
			}
			if stat, ok := a.stats.UserStats[ev.Sender]; ok {
				stat.ImpactSum += othersDelta
				stat.ImpactEvents++
				if othersDelta > stat.ImpactMax {
					stat.ImpactMax = othersDelta
				}
			}
		}
	}

	for _, msg := range a.messages {
		t, ok := a.inYear(msg)
		if !ok {
			continue
		}

		flushImpact(t, false)

		a.stats.TotalMessages++

		sender := a.senderID(msg)
		content := msg.Content
		msgType := msg.Type
		if msgType == "" {
			msgType = "未知"
		}
		hour := t.Hour()
		month := int(t.Month()) - 1
		weekday := int(t.Weekday())
		dateStr := util.FormatDay(t)

		textNorm := ""
		if msg.IsText() {
			textNorm = NormalizeText(content)
		}

		// 基础统计
		a.stats.ActiveDays[dateStr] = struct{}{}
		a.stats.MonthlyData[month]++
		a.stats.HourlyData[hour]++
		a.stats.WeekdayData[weekday]++
		a.stats.DailyData[dateStr]++
		a.stats.MessageTypes[msgType]++

		stat := a.ensureUserStat(sender)
		stat.Count++
		stat.Hours[hour]++
		stat.ActiveDays[dateStr] = struct{}{}
		stat.Types[msgType]++

		if msg.IsText() && content != "" {
			stat.TextLength += len([]rune(content))
			if a.stats.LongestMessage == nil ||
				len([]rune(content)) > len([]rune(a.stats.LongestMessage.Msg.Content)) {
				a.stats.LongestMessage = &taggedMessage{Msg: msg, Sender: sender, Time: t}
			}
		}

		// 回复/接话：与上一条不同人，且间隔在窗口内
		if lastMsg != nil && lastMsg.Sender != sender && t.Sub(lastMsg.Time) <= a.params.ReplyWindow {
			stat.ReplyCount++
		}

		if msgType == model.TypeQuote {
			stat.QuoteCount++
		}

		// 复读机：复读上一条不同人的文本
		if textNorm != "" && lastMsg != nil && lastMsg.Sender != sender &&
			lastMsg.TextNorm != "" && t.Sub(lastMsg.Time) <= a.params.EchoWindow &&
			textNorm == lastMsg.TextNorm {
			stat.EchoCount++
		}

		// 年度复读最多的一句话
		if textNorm != "" {
			a.stats.RepeatedTextFreq[textNorm]++
		}

		a.analyzeContent(sender, stat, msgType, content, t, dateStr, month)

		// 深夜 0-6 点 / 清晨 6-8 点
		if hour < 6 {
			stat.NightCount++
			a.stats.NightOwls[sender]++
		}
		if hour >= 6 && hour < 8 {
			a.stats.EarlyBirds[sender]++
		}

		if a.stats.FirstMessage == nil || t.Before(a.stats.FirstMessage.Time) {
			a.stats.FirstMessage = &taggedMessage{Msg: msg, Sender: sender, Time: t}
		}
		if a.stats.LastMessage == nil || t.After(a.stats.LastMessage.Time) {
			a.stats.LastMessage = &taggedMessage{Msg: msg, Sender: sender, Time: t}
		}

		// 高冷帝：出场事件与带动量
		processedTotal++
		processedBySender[sender]++

		last, seen := lastAppearance[sender]
		if !seen || t.Sub(last) >= a.params.AppearGap {
			impactQueue = append(impactQueue, impactEvent{
				ExpireAt:   t.Add(a.params.ImpactWindow),
				Sender:     sender,
				StartTotal: processedTotal,
				StartSelf:  processedBySender[sender],
			})
			lastAppearance[sender] = t
		}

		lastMsg = &struct {
			Sender   string
			Time     time.Time
			TextNorm string
		}{sender, t, textNorm}
	}

	// 年末截断：冲掉仍未到期的出场事件
	flushImpact(time.Time{}, true)

	a.computeMostActiveDay()
}

func (a *Analyzer) ensureUserStat(sender string) *userStat {
	stat, ok := a.stats.UserStats[sender]
	if !ok {
		stat = &userStat{
			Types:      make(map[string]int),
			ActiveDays: make(map[string]struct{}),
		}
		a.stats.UserStats[sender] = stat
	}
	return stat
}

// analyzeContent handles keyword, sentiment and type-specific counters for a
// single message.
func (a *Analyzer) analyzeContent(sender string, stat *userStat, msgType, content string, t time.Time, dateStr string, month int) {
	if msgType == model.TypeText && content != "" {
		a.countWords(content, dateStr, month)

		for range laughRunRe.FindAllString(content, -1) {
			stat.LaughCount++
			a.stats.LaughCount[sender]++
		}
		for range sixRunRe.FindAllString(content, -1) {
			stat.SixCount++
			a.stats.SixCount[sender]++
		}
		stat.QuestionCount += strings.Count(content, "?") + strings.Count(content, "？")

		for _, m := range mentionTargetRe.FindAllStringSubmatch(content, -1) {
			mentioned := strings.TrimSpace(m[1])
			if mentioned == "" {
				continue
			}
			stat.MentionCount++
			mentionedID := a.ids.resolveAlias(mentioned)
			if mentionedID != "" {
				a.ids.ensure(mentionedID, nil)
			} else {
				mentionedID = mentioned
			}
			a.stats.Interactions[edge{From: sender, To: mentionedID}]++
		}

		s := ScoreSentiment(content)
		a.stats.Sentiment.TextMsgCount++
		a.stats.Sentiment.ScoreSum += s.Score
		if s.Score > 0 {
			a.stats.Sentiment.PosMsgCount++
		}
		if s.Score < 0 {
			a.stats.Sentiment.NegMsgCount++
		}
		stat.SentimentTextCount++
		stat.SentimentScoreSum += s.Score
		if s.Score > 0 {
			stat.SentimentPosMsgCount++
		}
		if s.Score < 0 {
			stat.SentimentNegMsgCount++
		}
	}

	// 表情包：动画表情与图片都计入
	if msgType == model.TypeSticker || msgType == model.TypeImage {
		stat.EmojiCount++
		a.stats.EmojiCount[sender]++
	}

	// 撤回归属：系统消息中引号内是被撤回者显示名
	if msgType == model.TypeSystem && strings.Contains(content, "撤回") {
		if m := withdrawRe.FindStringSubmatch(content); m != nil {
			id := a.ids.resolveAlias(m[1])
			if id == "" {
				id = m[1]
			}
			if target, ok := a.stats.UserStats[id]; ok {
				target.WithdrawCount++
			}
		}
	}
}

// countWords folds the message's keywords into the yearly, monthly and daily
// frequency maps. Mentions are stripped first: @ 的人名在 interactions 里统计，
// 不应进入词频。
func (a *Analyzer) countWords(text, dateStr string, month int) {
	tokens := a.tokenizer.Extract(StripMentions(text))
	for _, token := range tokens {
		a.stats.WordFreq[token]++
		if month >= 0 && month <= 11 {
			a.stats.MonthlyWordFreq[month][token]++
		}
		if dateStr != "" {
			dayMap := a.stats.DailyWordFreq[dateStr]
			if dayMap == nil {
				dayMap = make(map[string]int)
				a.stats.DailyWordFreq[dateStr] = dayMap
			}
			dayMap[token]++
		}
	}
}

func (a *Analyzer) computeMostActiveDay() {
	for date, count := range a.stats.DailyData {
		if a.stats.MostActiveDay == nil ||
			count > a.stats.MostActiveDay.Count ||
			(count == a.stats.MostActiveDay.Count && date < a.stats.MostActiveDay.Date) {
			a.stats.MostActiveDay = &model.CalendarDay{Date: date, Count: count}
		}
	}
}
