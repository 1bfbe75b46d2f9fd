package analyzer

import (
	"math"
	"sort"
	"time"

	"github.com/sjzar/chatrewind/internal/model"
	"github.com/sjzar/chatrewind/pkg/util"
)

func percentile(sorted []int, p float64) int {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Floor(float64(len(sorted)-1) * p))
	if idx < 0 {
		idx = 0
	}
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func stddev(nums []int) float64 {
	if len(nums) == 0 {
		return 0
	}
	var sum float64
	for _, n := range nums {
		sum += float64(n)
	}
	mean := sum / float64(len(nums))
	var v float64
	for _, n := range nums {
		d := float64(n) - mean
		v += d * d
	}
	return math.Sqrt(v / float64(len(nums)))
}

// GetHotEvents detects burst events: contiguous runs of days whose message
// volume clears a statistical threshold, ranked by total volume. When no day
// clears the threshold it falls back to the top single days.
func (a *Analyzer) GetHotEvents(limit int) []*model.HotEvent {
	if limit <= 0 {
		limit = 5
	}

	daily := make([]*model.CalendarDay, 0, len(a.stats.DailyData))
	for date, count := range a.stats.DailyData {
		daily = append(daily, &model.CalendarDay{Date: date, Count: count})
	}
	if len(daily) == 0 {
		return []*model.HotEvent{}
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	counts := make([]int, len(daily))
	var sum int
	for i, d := range daily {
		counts[i] = d.Count
		sum += d.Count
	}
	sortedCounts := append([]int(nil), counts...)
	sort.Ints(sortedCounts)

	mean := float64(sum) / float64(len(daily))
	sd := stddev(counts)
	p95 := percentile(sortedCounts, a.params.EventPercentile)

	minPeak := a.params.EventPeakFloor
	if scaled := int(math.Round(mean * a.params.EventPeakMeanFactor)); scaled > minPeak {
		minPeak = scaled
	}
	statBound := int(math.Round(math.Max(float64(p95), mean+sd*a.params.EventSigmaFactor)))
	threshold := minPeak
	if statBound > threshold {
		threshold = statBound
	}

	peaks := make([]*model.CalendarDay, 0)
	for _, d := range daily {
		if d.Count >= threshold {
			peaks = append(peaks, d)
		}
	}

	var events []*model.HotEvent
	if len(peaks) == 0 {
		// 没有超阈值的日子：退化为取最高的若干天
		top := append([]*model.CalendarDay(nil), daily...)
		sort.Slice(top, func(i, j int) bool {
			if top[i].Count != top[j].Count {
				return top[i].Count > top[j].Count
			}
			return top[i].Date < top[j].Date
		})
		if len(top) > limit {
			top = top[:limit]
		}
		for _, d := range top {
			events = append(events, a.buildHotEvent([]*model.CalendarDay{d}))
		}
		return events
	}

	// 合并相邻的高峰日为一个事件
	var cur []*model.CalendarDay
	for _, d := range peaks {
		if len(cur) > 0 {
			last := cur[len(cur)-1]
			if !daysAdjacent(last.Date, d.Date, a.loc) {
				events = append(events, a.buildHotEvent(cur))
				cur = nil
			}
		}
		cur = append(cur, d)
	}
	if len(cur) > 0 {
		events = append(events, a.buildHotEvent(cur))
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].TotalCount != events[j].TotalCount {
			return events[i].TotalCount > events[j].TotalCount
		}
		return events[i].StartDate < events[j].StartDate
	})
	if len(events) > limit {
		events = events[:limit]
	}
	return events
}

func daysAdjacent(prev, next string, loc *time.Location) bool {
	a, okA := util.ParseDay(prev, loc)
	b, okB := util.ParseDay(next, loc)
	if !okA || !okB {
		return false
	}
	return util.DayNum(b)-util.DayNum(a) <= 1
}

func (a *Analyzer) buildHotEvent(days []*model.CalendarDay) *model.HotEvent {
	sorted := append([]*model.CalendarDay(nil), days...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	ev := &model.HotEvent{
		StartDate: sorted[0].Date,
		EndDate:   sorted[len(sorted)-1].Date,
		Keywords:  []*model.WordCount{},
	}
	peak := sorted[0]
	for _, d := range sorted {
		ev.TotalCount += d.Count
		if d.Count > peak.Count {
			peak = d
		}
	}
	ev.PeakDate = peak.Date
	ev.PeakCount = peak.Count

	// 事件关键词：合并区间内各日的词频后按全局最小计数过滤
	merged := make(map[string]int)
	for _, d := range sorted {
		for w, c := range a.stats.DailyWordFreq[d.Date] {
			merged[w] += c
		}
	}
	for w, c := range merged {
		if w == "" || c < a.params.KeywordMinCount {
			continue
		}
		ev.Keywords = append(ev.Keywords, &model.WordCount{Word: w, Count: c})
	}
	sort.Slice(ev.Keywords, func(i, j int) bool {
		if ev.Keywords[i].Count != ev.Keywords[j].Count {
			return ev.Keywords[i].Count > ev.Keywords[j].Count
		}
		return ev.Keywords[i].Word < ev.Keywords[j].Word
	})
	if len(ev.Keywords) > a.params.EventKeywordLimit {
		ev.Keywords = ev.Keywords[:a.params.EventKeywordLimit]
	}
	return ev
}

// GetMonthlyKeywords ranks each month's keywords with a TF-IDF style score
// over the 12 calendar months as documents.
func (a *Analyzer) GetMonthlyKeywords(limitPerMonth int) []*model.MonthKeywords {
	if limitPerMonth <= 0 {
		limitPerMonth = 5
	}

	df := make(map[string]int)
	for _, m := range a.stats.MonthlyWordFreq {
		for w, c := range m {
			if c > 0 {
				df[w]++
			}
		}
	}

	const months = 12
	out := make([]*model.MonthKeywords, 0, months)
	for i := 0; i < months; i++ {
		entry := &model.MonthKeywords{Month: i + 1, Keywords: []*model.MonthKeyword{}}
		for w, c := range a.stats.MonthlyWordFreq[i] {
			if w == "" || c < a.params.KeywordMinCount {
				continue
			}
			idf := math.Log(float64(months+1) / float64(df[w]+1))
			entry.Keywords = append(entry.Keywords, &model.MonthKeyword{
				Word:  w,
				Count: c,
				Score: round2(float64(c) * idf),
			})
		}
		sort.Slice(entry.Keywords, func(x, y int) bool {
			kx, ky := entry.Keywords[x], entry.Keywords[y]
			if kx.Score != ky.Score {
				return kx.Score > ky.Score
			}
			if kx.Count != ky.Count {
				return kx.Count > ky.Count
			}
			return kx.Word < ky.Word
		})
		if len(entry.Keywords) > limitPerMonth {
			entry.Keywords = entry.Keywords[:limitPerMonth]
		}
		out = append(out, entry)
	}
	return out
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
