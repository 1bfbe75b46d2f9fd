package util

import "time"

const dayLayout = "2006-01-02"

// FormatDay 返回 YYYY-MM-DD 形式的日期串。
func FormatDay(t time.Time) string {
	return t.Format(dayLayout)
}

// FormatMinute 返回 YYYY-MM-DD HH:MM 形式的时间串。
func FormatMinute(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// ParseDay 解析 YYYY-MM-DD；失败时 ok 为 false。
func ParseDay(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dayLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DayNum 返回自 Unix 纪元起的天数，用于比较两个日期是否相邻。
func DayNum(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
