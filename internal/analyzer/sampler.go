package analyzer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sjzar/chatrewind/pkg/util"
)

// RangeSampleOptions tunes GetRepresentativeMessagesInRange.
type RangeSampleOptions struct {
	Limit        int
	PerUserCap   int
	MaxTextLen   int
	KeywordHints []string
}

var (
	bareAckRe      = regexp.MustCompile(`(?i)^(ok|okay|\+1)$`)
	bareAckUserRe  = regexp.MustCompile(`(?i)^(ok|okay|\+1|666+)$`)
	bareAckQuoteRe = regexp.MustCompile(`(?i)^(ok|okay|\+1|666+|好的|收到|嗯嗯|哦哦)$`)
	funWordsRe     = regexp.MustCompile(`(?i)哈哈|666|yyds|笑死|太典|绝了|离谱|逆天|牛|nice|good`)
)

// candidate is one scored quote candidate inside the bounded buffer.
type candidate struct {
	Time   time.Time
	Sender string
	Name   string
	Text   string
	Score  float64
}

// candidateBuffer keeps the best scored candidates seen so far. When full,
// a better candidate replaces the current minimum (O(capacity) replacement).
type candidateBuffer struct {
	cap   int
	items []candidate
}

func newCandidateBuffer(capacity int) *candidateBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &candidateBuffer{cap: capacity, items: make([]candidate, 0, capacity)}
}

func (b *candidateBuffer) add(c candidate) {
	if len(b.items) < b.cap {
		b.items = append(b.items, c)
		return
	}
	minIdx := 0
	for i := 1; i < len(b.items); i++ {
		if b.items[i].Score < b.items[minIdx].Score {
			minIdx = i
		}
	}
	if c.Score > b.items[minIdx].Score {
		b.items[minIdx] = c
	}
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func countEmoji(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x1F300 && r <= 0x1F9FF {
			n++
		}
	}
	return n
}

func hasPunct(s string) bool {
	return strings.ContainsAny(s, "?？!！")
}

func isShortLink(s string) bool {
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}
	return utf8.RuneCountInString(s) < 60
}

// cleanedText strips mentions and normalizes whitespace for sampling.
func cleanedText(content string) string {
	return NormalizeText(StripMentions(NormalizeText(content)))
}

// dedupeKey is the case/space-insensitive identity of a candidate text.
func dedupeKey(cleaned string) string {
	return strings.ReplaceAll(strings.ToLower(cleaned), " ", "")
}

func isNoisyCommon(s string, minLen int, bareRe *regexp.Regexp) bool {
	if s == "" {
		return true
	}
	if utf8.RuneCountInString(s) < minLen {
		return true
	}
	if IsStopword(s) {
		return true
	}
	if util.IsNumeric(s) {
		return true
	}
	if laughOnlyRe.MatchString(s) {
		return true
	}
	if bareRe.MatchString(s) {
		return true
	}
	return false
}

// GetRepresentativeMessagesInRange samples quotable messages from a date
// range (inclusive, YYYY-MM-DD), balancing keyword hints, quality and user
// diversity. Output lines are chronological and formatted for prompting.
func (a *Analyzer) GetRepresentativeMessagesInRange(startDate, endDate string, opts *RangeSampleOptions) []string {
	o := RangeSampleOptions{Limit: 40, PerUserCap: 6, MaxTextLen: 140}
	if opts != nil {
		if opts.Limit > 0 {
			o.Limit = opts.Limit
		}
		if opts.PerUserCap > 0 {
			o.PerUserCap = opts.PerUserCap
		}
		if opts.MaxTextLen > 0 {
			o.MaxTextLen = opts.MaxTextLen
		}
		o.KeywordHints = opts.KeywordHints
	}

	start, okStart := util.ParseDay(startDate, a.loc)
	end, okEnd := util.ParseDay(endDate, a.loc)
	if !okStart || !okEnd {
		return []string{}
	}
	endOfRange := end.Add(24*time.Hour - time.Nanosecond)

	hints := make([]string, 0, len(o.KeywordHints))
	for _, h := range o.KeywordHints {
		if h = strings.TrimSpace(h); h != "" {
			hints = append(hints, h)
		}
	}

	maxLenScore := float64(o.MaxTextLen)
	score := func(s string) float64 {
		n := utf8.RuneCountInString(s)
		lengthScore := float64(clampInt(n, 6, o.MaxTextLen)) / maxLenScore
		hintHits := 0
		for _, h := range hints {
			if strings.Contains(s, h) {
				hintHits++
			}
		}
		hintScore := float64(hintHits) * 0.35
		if hintScore > 1.2 {
			hintScore = 1.2
		}
		punctScore := 0.0
		if hasPunct(s) {
			punctScore = 0.1
		}
		return lengthScore + hintScore + punctScore
	}

	maxCandidates := o.Limit * 12
	if maxCandidates < 120 {
		maxCandidates = 120
	}
	buf := newCandidateBuffer(maxCandidates)
	dedupe := make(map[string]struct{})

	for _, msg := range a.messages {
		t, ok := a.inYear(msg)
		if !ok || !msg.IsText() {
			continue
		}
		if t.Before(start) || t.After(endOfRange) {
			continue
		}

		cleaned := cleanedText(msg.Content)
		if isNoisyCommon(cleaned, 2, bareAckRe) || isShortLink(cleaned) {
			continue
		}
		key := dedupeKey(cleaned)
		if key == "" {
			continue
		}
		if _, dup := dedupe[key]; dup {
			continue
		}
		dedupe[key] = struct{}{}

		sender := a.senderID(msg)
		user := a.ids.asUser(sender)
		buf.add(candidate{
			Time:   t,
			Sender: sender,
			Name:   user.Name,
			Text:   util.TruncateRunes(cleaned, o.MaxTextLen),
			Score:  score(cleaned),
		})
	}

	picked := pickTop(buf.items, o.Limit, o.PerUserCap)
	out := make([]string, 0, len(picked))
	for _, c := range picked {
		out = append(out, fmt.Sprintf("[%s] %s: %s", util.FormatMinute(c.Time), c.Name, c.Text))
	}
	return out
}

// pickTop takes candidates by descending score while honoring the per-sender
// cap and the overall limit, then re-sorts chronologically for presentation.
func pickTop(items []candidate, limit, perUserCap int) []candidate {
	sorted := append([]candidate(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })

	picked := make([]candidate, 0, limit)
	perUser := make(map[string]int)
	for _, c := range sorted {
		if len(picked) >= limit {
			break
		}
		if perUserCap > 0 && perUser[c.Sender] >= perUserCap {
			continue
		}
		perUser[c.Sender]++
		picked = append(picked, c)
	}

	sort.SliceStable(picked, func(i, j int) bool { return picked[i].Time.Before(picked[j].Time) })
	return picked
}

// GetUserSampleMessages samples one user's best messages for profiling.
func (a *Analyzer) GetUserSampleMessages(userID string, limit int) []string {
	id := strings.TrimSpace(userID)
	if id == "" {
		return []string{}
	}
	if limit <= 0 {
		limit = 15
	}
	const maxTextLen = 120

	score := func(s string) float64 {
		n := utf8.RuneCountInString(s)
		lengthScore := float64(clampInt(n, 6, maxTextLen)) / maxTextLen
		punctScore := 0.0
		if hasPunct(s) {
			punctScore = 0.15
		}
		emojiScore := float64(countEmoji(s)) * 0.05
		if emojiScore > 0.15 {
			emojiScore = 0.15
		}
		return lengthScore + punctScore + emojiScore
	}

	maxCandidates := limit * 12
	if maxCandidates < 120 {
		maxCandidates = 120
	}
	buf := newCandidateBuffer(maxCandidates)
	dedupe := make(map[string]struct{})

	for _, msg := range a.messages {
		t, ok := a.inYear(msg)
		if !ok || !msg.IsText() {
			continue
		}
		if a.senderID(msg) != id {
			continue
		}

		cleaned := cleanedText(msg.Content)
		if isNoisyCommon(cleaned, 3, bareAckUserRe) || isShortLink(cleaned) {
			continue
		}
		key := dedupeKey(cleaned)
		if key == "" {
			continue
		}
		if _, dup := dedupe[key]; dup {
			continue
		}
		dedupe[key] = struct{}{}

		buf.add(candidate{
			Time:  t,
			Text:  util.TruncateRunes(cleaned, maxTextLen),
			Score: score(cleaned),
		})
	}

	picked := pickTop(buf.items, limit, 0)
	out := make([]string, 0, len(picked))
	for _, c := range picked {
		out = append(out, fmt.Sprintf("[%s] %s", util.FormatMinute(c.Time), c.Text))
	}
	return out
}

// GetQuoteCandidates samples standalone-quotable messages across the whole
// year with stricter noise filtering.
func (a *Analyzer) GetQuoteCandidates(limit int) []string {
	if limit <= 0 {
		limit = 50
	}
	const maxTextLen = 100

	score := func(s string) float64 {
		n := utf8.RuneCountInString(s)

		// 太短或太长都不适合当金句，20-80 字最佳
		var lengthScore float64
		switch {
		case n >= 20 && n <= 80:
			lengthScore = 1
		case n >= 10 && n < 20:
			lengthScore = 0.6
		case n > 80 && n <= 120:
			lengthScore = 0.7
		default:
			lengthScore = 0.3
		}

		punct := strings.Count(s, "?") + strings.Count(s, "？") + strings.Count(s, "!") + strings.Count(s, "！")
		punctScore := float64(punct) * 0.1
		if punctScore > 0.3 {
			punctScore = 0.3
		}

		emojiScore := float64(countEmoji(s)) * 0.08
		if emojiScore > 0.25 {
			emojiScore = 0.25
		}

		quoteScore := 0.0
		if strings.ContainsAny(s, "\"“”‘’'「」『』") {
			quoteScore = 0.15
		}

		funScore := 0.0
		if funWordsRe.MatchString(s) {
			funScore = 0.15
		}

		return lengthScore + punctScore + emojiScore + quoteScore + funScore
	}

	isNoisy := func(s string) bool {
		if isNoisyCommon(s, 8, bareAckQuoteRe) {
			return true
		}
		lower := strings.ToLower(s)
		if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
			return true
		}
		// 纯重复字符刷屏
		if utf8.RuneCountInString(s) >= 6 && isAllSameRune(s) {
			return true
		}
		return false
	}

	maxCandidates := limit * 12
	if maxCandidates < 120 {
		maxCandidates = 120
	}
	buf := newCandidateBuffer(maxCandidates)
	dedupe := make(map[string]struct{})

	for _, msg := range a.messages {
		t, ok := a.inYear(msg)
		if !ok || !msg.IsText() {
			continue
		}

		cleaned := cleanedText(msg.Content)
		if isNoisy(cleaned) {
			continue
		}
		key := dedupeKey(cleaned)
		if key == "" {
			continue
		}
		if _, dup := dedupe[key]; dup {
			continue
		}
		dedupe[key] = struct{}{}

		sender := a.senderID(msg)
		user := a.ids.asUser(sender)
		buf.add(candidate{
			Time:   t,
			Sender: sender,
			Name:   user.Name,
			Text:   util.TruncateRunes(cleaned, maxTextLen),
			Score:  score(cleaned),
		})
	}

	picked := pickTop(buf.items, limit, 0)
	out := make([]string, 0, len(picked))
	for _, c := range picked {
		out = append(out, fmt.Sprintf("[%s] %s: %s", util.FormatMinute(c.Time), c.Name, c.Text))
	}
	return out
}
