package analyzer

import "time"

// Params collects the heuristic thresholds of the aggregation pass and the
// derived queries. They are tunable so tests can probe boundary behavior;
// DefaultParams matches the shipped report.
type Params struct {
	// Social heuristics (sliding windows over the message sequence).
	ReplyWindow  time.Duration // max gap for a message to count as a reply
	EchoWindow   time.Duration // max gap for an exact-repeat echo
	ImpactWindow time.Duration // observation window after an appearance
	AppearGap    time.Duration // min silence before a message is a re-appearance

	// Keyword filtering.
	KeywordMinCount int // drop words seen fewer times than this over the year

	// Sentiment ranking.
	SentimentMinTextMsgs int     // min text messages to enter sunshine/gloomy
	MoodThreshold        float64 // |avg| at/above this is non-neutral (inclusive)

	// Burst detection.
	EventPeakFloor      int     // absolute floor for the peak-day threshold
	EventPeakMeanFactor float64 // floor scales with mean by this factor
	EventSigmaFactor    float64 // stddev multiplier in the statistical bound
	EventPercentile     float64 // upper percentile in the statistical bound
	EventKeywordLimit   int     // keywords reported per event
}

// DefaultParams returns the parameter set used for the yearly report.
func DefaultParams() Params {
	return Params{
		ReplyWindow:  5 * time.Minute,
		EchoWindow:   10 * time.Minute,
		ImpactWindow: 10 * time.Minute,
		AppearGap:    30 * time.Minute,

		KeywordMinCount: 2,

		SentimentMinTextMsgs: 30,
		MoodThreshold:        0.25,

		EventPeakFloor:      30,
		EventPeakMeanFactor: 2,
		EventSigmaFactor:    1.5,
		EventPercentile:     0.95,
		EventKeywordLimit:   8,
	}
}
