package model

// UserMeta 用户展示信息；AvatarURL 为 data URL，可能为空。
type UserMeta struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Award 年度奖项。Users 仅在多人奖项（如年度CP）时出现。
type Award struct {
	Icon      string      `json:"icon"`
	Title     string      `json:"title"`
	User      *UserMeta   `json:"user,omitempty"`
	Users     []*UserMeta `json:"users,omitempty"`
	UserLabel string      `json:"userLabel,omitempty"`
	Value     int         `json:"value"`
	Desc      string      `json:"desc"`
}

// UserRankItem 发言排行条目；Percentage 为占全年消息总量的百分比。
type UserRankItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// RankEntry 通用计数排行条目（夜猫子/早起鸟/被@等）。
type RankEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// WordCount 热词条目。
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// MonthKeyword 带 TF-IDF 分值的月度关键词。
type MonthKeyword struct {
	Word  string  `json:"word"`
	Count int     `json:"count"`
	Score float64 `json:"score"`
}

// MonthKeywords 单月关键词集合，Month 取值 1-12。
type MonthKeywords struct {
	Month    int             `json:"month"`
	Keywords []*MonthKeyword `json:"keywords"`
}

// HotEvent 爆发事件：连续高峰日合并后的区间。
type HotEvent struct {
	StartDate  string       `json:"startDate"`
	EndDate    string       `json:"endDate"`
	PeakDate   string       `json:"peakDate"`
	TotalCount int          `json:"totalCount"`
	PeakCount  int          `json:"peakCount"`
	Keywords   []*WordCount `json:"keywords"`
}

// SentimentUser 情绪榜单条目（小太阳/丧气王）。
type SentimentUser struct {
	User      *UserMeta `json:"user"`
	Avg       float64   `json:"avg"`
	TextCount int       `json:"textCount"`
}

// SentimentSummary 全群情绪概览。
// Sunshine/Gloomy 在样本不足时为 nil。
type SentimentSummary struct {
	Mood              string         `json:"mood"`
	AvgScore          float64        `json:"avgScore"`
	PosRatio          float64        `json:"posRatio"`
	NegRatio          float64        `json:"negRatio"`
	NeutralRatio      float64        `json:"neutralRatio"`
	TotalTextMessages int            `json:"totalTextMessages"`
	Sunshine          *SentimentUser `json:"sunshine,omitempty"`
	Gloomy            *SentimentUser `json:"gloomy,omitempty"`
}

// SupporterEntry 捧场王排行条目。
type SupporterEntry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ReplyCount   int    `json:"replyCount"`
	QuoteCount   int    `json:"quoteCount"`
	SupportScore int    `json:"supportScore"`
}

// QuoteEntry 引用大师排行条目。
type QuoteEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	QuoteCount int    `json:"quoteCount"`
}

// LonerEntry 高冷帝排行条目：低频发言但出场带动量高。
type LonerEntry struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Count        int     `json:"count"`
	ImpactAvg    float64 `json:"impactAvg"`
	ImpactMax    int     `json:"impactMax"`
	ImpactEvents int     `json:"impactEvents"`
}

// RepeaterEntry 复读机排行条目；EchoIndex 为百分比。
type RepeaterEntry struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	EchoCount int     `json:"echoCount"`
	Count     int     `json:"count"`
	EchoIndex float64 `json:"echoIndex"`
}

// PhraseCount 年度复读语句条目。
type PhraseCount struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// JokerEntry 乐子人条目。
type JokerEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	JokerIndex int    `json:"jokerIndex"`
	LaughCount int    `json:"laughCount"`
	SixCount   int    `json:"sixCount"`
	EmojiCount int    `json:"emojiCount"`
}

// TypeShare 消息类型分布条目。
type TypeShare struct {
	Type       string  `json:"type"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CalendarDay 日历热力图条目，Date 为 YYYY-MM-DD。
type CalendarDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// PeakHour 全年最活跃小时。
type PeakHour struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// HighlightMessage 年度亮点消息（最长/第一条/最后一条）。
type HighlightMessage struct {
	Content string    `json:"content"`
	User    *UserMeta `json:"user"`
	Length  int       `json:"length,omitempty"`
	Time    string    `json:"time"`
}

// Highlights 年度亮点集合；字段缺数据时为 nil。
type Highlights struct {
	LongestMsg    *HighlightMessage `json:"longestMsg,omitempty"`
	FirstMsg      *HighlightMessage `json:"firstMsg,omitempty"`
	LastMsg       *HighlightMessage `json:"lastMsg,omitempty"`
	MostActiveDay *CalendarDay      `json:"mostActiveDay,omitempty"`
}

// RelationNode 社交图谱节点，SymbolSize/Color 供渲染层直接使用。
type RelationNode struct {
	Name       string  `json:"name"`
	SymbolSize float64 `json:"symbolSize"`
	Color      string  `json:"color"`
}

// RelationLink 社交图谱有向边。
type RelationLink struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  int     `json:"value"`
	Width  float64 `json:"width"`
}

// RelationGraph 社交关系图谱。
type RelationGraph struct {
	Nodes []*RelationNode `json:"nodes"`
	Links []*RelationLink `json:"links"`
}

// Report 年度报告完整载荷，供 HTTP API 与 MCP 工具直接序列化。
type Report struct {
	ID            string    `json:"id"`
	ChatName      string    `json:"chatName"`
	Year          int       `json:"year"`
	GeneratedAt   string    `json:"generatedAt"`
	TotalMessages int       `json:"totalMessages"`
	ActiveDays    int       `json:"activeDays"`
	ActiveUsers   int       `json:"activeUsers"`
	MonthlyData   [12]int   `json:"monthlyData"`
	HourlyData    [24]int   `json:"hourlyData"`
	WeekdayData   [7]int    `json:"weekdayData"`

	Awards             []*Award             `json:"awards"`
	UserRanking        []*UserRankItem      `json:"userRanking"`
	TopWords           []*WordCount         `json:"topWords"`
	MonthlyKeywords    []*MonthKeywords     `json:"monthlyKeywords"`
	HotEvents          []*HotEvent          `json:"hotEvents"`
	Sentiment          *SentimentSummary    `json:"sentiment"`
	NightOwls          []*RankEntry         `json:"nightOwls"`
	EarlyBirds         []*RankEntry         `json:"earlyBirds"`
	PeakHour           *PeakHour            `json:"peakHour"`
	MessageTypes       []*TypeShare         `json:"messageTypes"`
	CalendarData       []*CalendarDay       `json:"calendarData"`
	Relations          *RelationGraph       `json:"relations"`
	Highlights         *Highlights          `json:"highlights"`
	WeekdayHourlyData  [][3]int             `json:"weekdayHourlyData"`
	MentionedRanking   []*RankEntry         `json:"mentionedRanking"`
	SupporterRanking   []*SupporterEntry    `json:"supporterRanking"`
	QuoteRanking       []*QuoteEntry        `json:"quoteRanking"`
	LonerRanking       []*LonerEntry        `json:"lonerRanking"`
	RepeaterRanking    []*RepeaterEntry     `json:"repeaterRanking"`
	TopRepeatedPhrases []*PhraseCount       `json:"topRepeatedPhrases"`
	Jokers             []*JokerEntry        `json:"jokers"`
	UserMeta           map[string]*UserMeta `json:"userMeta"`
}

// UserInsight 单用户画像数据，供 AI 颁奖词等下游使用。
// 数据不足时返回零值结构而非错误。
type UserInsight struct {
	Count         int      `json:"count"`
	TextLength    int      `json:"textLength"`
	AvgTextLength int      `json:"avgTextLength"`
	ActiveDays    int      `json:"activeDays"`
	DailyAvg      float64  `json:"dailyAvg"`
	NightCount    int      `json:"nightCount"`
	LaughCount    int      `json:"laughCount"`
	SixCount      int      `json:"sixCount"`
	EmojiCount    int      `json:"emojiCount"`
	QuestionCount int      `json:"questionCount"`
	MentionCount  int      `json:"mentionCount"`
	ReplyCount    int      `json:"replyCount"`
	QuoteCount    int      `json:"quoteCount"`
	EchoCount     int      `json:"echoCount"`
	WithdrawCount int      `json:"withdrawCount"`
	PeakHour      int      `json:"peakHour"`
	TopWords      []string `json:"topWords"`
	SentimentAvg  float64  `json:"sentimentAvg"`
}
