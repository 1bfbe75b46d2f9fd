package analyzer

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sjzar/chatrewind/internal/model"
)

// BuildReport 按默认榜单长度汇总全部分析结果。
func (a *Analyzer) BuildReport() *model.Report {
	start := time.Now()

	report := &model.Report{
		ID:            uuid.New().String(),
		ChatName:      a.chatName,
		Year:          a.year,
		GeneratedAt:   time.Now().In(a.loc).Format("2006-01-02 15:04:05"),
		TotalMessages: a.stats.TotalMessages,
		ActiveDays:    len(a.stats.ActiveDays),
		ActiveUsers:   len(a.stats.UserStats),
		MonthlyData:   a.stats.MonthlyData,
		HourlyData:    a.stats.HourlyData,
		WeekdayData:   a.stats.WeekdayData,

		Awards:             a.GetAwards(),
		UserRanking:        a.GetUserRanking(10),
		TopWords:           a.GetTopWords(30),
		MonthlyKeywords:    a.GetMonthlyKeywords(6),
		HotEvents:          a.GetHotEvents(6),
		Sentiment:          a.GetSentimentSummary(),
		NightOwls:          a.GetNightOwlRanking(5),
		EarlyBirds:         a.GetEarlyBirdRanking(5),
		PeakHour:           a.GetPeakHour(),
		MessageTypes:       a.GetMessageTypeDistribution(),
		CalendarData:       a.GetCalendarData(),
		Relations:          a.GetRelationsData(),
		Highlights:         a.GetHighlights(),
		WeekdayHourlyData:  a.GetWeekdayHourlyData(),
		MentionedRanking:   a.GetMentionedRanking(10),
		SupporterRanking:   a.GetSupporterRanking(10),
		QuoteRanking:       a.GetQuoteRanking(10),
		LonerRanking:       a.GetLonerRanking(6),
		RepeaterRanking:    a.GetRepeaterRanking(10),
		TopRepeatedPhrases: a.GetTopRepeatedPhrases(10),
		Jokers:             a.GetJokerAnalysis(),
		UserMeta:           a.GetUserMeta(),
	}

	log.Debug().
		Str("report", report.ID).
		Int("year", a.year).
		Int("messages", report.TotalMessages).
		Dur("cost", time.Since(start)).
		Msg("report assembled")

	return report
}
