package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreSentimentPositive(t *testing.T) {
	s := ScoreSentiment("哈哈哈太开心了!")
	// 哈哈 + 开心 两处命中，感叹号再加一分
	assert.Equal(t, 3, s.Pos)
	assert.Equal(t, 0, s.Neg)
	assert.Equal(t, 3, s.Score)
}

func TestScoreSentimentNegative(t *testing.T) {
	s := ScoreSentiment("难受想哭……")
	assert.Equal(t, 0, s.Pos)
	assert.Equal(t, 2, s.Neg)
	assert.Equal(t, -2, s.Score)
}

func TestScoreSentimentNeutral(t *testing.T) {
	assert.Equal(t, Sentiment{}, ScoreSentiment("今天上班"))
	assert.Equal(t, Sentiment{}, ScoreSentiment(""))
}

func TestScoreSentimentLatin(t *testing.T) {
	s := ScoreSentiment("NICE 这波操作")
	assert.Equal(t, 1, s.Pos)
	assert.Equal(t, 1, s.Score)
}
