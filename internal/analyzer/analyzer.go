// Package analyzer computes the statistical model behind the yearly
// group-chat report: per-user behavioral metrics, lexical and topic signals,
// a social-interaction graph, sentiment trends, burst days and curated
// representative quotes.
//
// One Analyzer owns all aggregate state for a single run. The aggregation
// pass happens once in New; every query method afterwards only reads the
// computed state and returns fresh derived structures, so queries may be
// called in any order, any number of times.
package analyzer

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/chatrewind/internal/model"
)

// Analyzer holds the aggregate state of one analysis run.
type Analyzer struct {
	params    Params
	tokenizer *Tokenizer
	year      int
	loc       *time.Location
	chatName  string

	messages []*model.Message
	ids      *identityResolver
	stats    *yearStats
}

// Option configures an Analyzer before the aggregation pass runs.
type Option func(*Analyzer)

// WithParams overrides the heuristic thresholds.
func WithParams(p Params) Option {
	return func(a *Analyzer) { a.params = p }
}

// WithLocation sets the timezone used for all calendar bucketing.
func WithLocation(loc *time.Location) Option {
	return func(a *Analyzer) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// New builds the analyzer and runs the single aggregation pass over the
// messages filtered to the target year.
//
// Precondition: messages must be in non-decreasing timestamp order, or the
// FIFO expiry of impact events misbehaves. The loader sorts its output; a
// caller constructing ChatData by hand has to do the same.
func New(data *model.ChatData, targetYear int, opts ...Option) *Analyzer {
	if data == nil {
		data = &model.ChatData{}
	}

	a := &Analyzer{
		params:    DefaultParams(),
		tokenizer: NewTokenizer(),
		year:      targetYear,
		loc:       time.Local,
		messages:  data.Messages,
		ids:       newIdentityResolver(data),
		stats:     newYearStats(),
	}
	if data.Session != nil && data.Session.DisplayName != "" {
		a.chatName = data.Session.DisplayName
	} else {
		a.chatName = "未知群聊"
	}
	for _, opt := range opts {
		opt(a)
	}

	start := time.Now()
	a.aggregate()
	log.Debug().
		Int("year", targetYear).
		Int("total", a.stats.TotalMessages).
		Int("users", len(a.stats.UserStats)).
		Dur("elapsed", time.Since(start)).
		Msg("aggregation pass done")

	return a
}

// Year returns the target calendar year of this run.
func (a *Analyzer) Year() int { return a.year }

// ChatName returns the session display name.
func (a *Analyzer) ChatName() string { return a.chatName }

// TotalMessages returns the number of messages inside the target year.
func (a *Analyzer) TotalMessages() int { return a.stats.TotalMessages }

// GetUserMeta returns the id → display metadata table built during the pass.
func (a *Analyzer) GetUserMeta() map[string]*model.UserMeta {
	return a.ids.userMeta()
}

// SenderID exposes canonical sender resolution to the indexing layer.
func (a *Analyzer) SenderID(msg *model.Message) string {
	return a.senderID(msg)
}

// YearMessages returns the messages that fall inside the target year, in
// input order.
func (a *Analyzer) YearMessages() []*model.Message {
	out := make([]*model.Message, 0, a.stats.TotalMessages)
	for _, msg := range a.messages {
		if _, ok := a.inYear(msg); ok {
			out = append(out, msg)
		}
	}
	return out
}

// inYear reports whether the message belongs to the target year and returns
// its local time.
func (a *Analyzer) inYear(msg *model.Message) (time.Time, bool) {
	t := msg.Time(a.loc)
	return t, t.Year() == a.year
}

// senderID resolves the sender of a message to its canonical id, creating
// metadata lazily on first sight.
func (a *Analyzer) senderID(msg *model.Message) string {
	meta := a.ids.ensure(senderKey(msg), msg)
	if meta.ID == "" {
		return PlaceholderName
	}
	return meta.ID
}
