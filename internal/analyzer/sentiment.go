package analyzer

import (
	"regexp"
	"strings"
)

// Sentiment is the lexicon-based polarity result for one message body.
type Sentiment struct {
	Score int
	Pos   int
	Neg   int
}

var posPatterns = []*regexp.Regexp{
	regexp.MustCompile(`哈哈|嘿嘿|嘻嘻|笑死|开心|高兴|快乐|好耶|太好了|太棒了|棒|赞|牛|厉害|不错|爱了|喜欢|感谢|谢谢`),
	regexp.MustCompile(`666|6666|yyds|nice|good|great|love|happy`),
	regexp.MustCompile(`[😂🤣😄😁😆😊😍🥰😘👍💪🎉✨❤️]+`),
}

var negPatterns = []*regexp.Regexp{
	regexp.MustCompile(`累|烦|烦死|无语|崩溃|难受|难过|郁闷|emo|抑郁|生气|气死|垃圾|烂|讨厌|恶心|痛苦|死了`),
	regexp.MustCompile(`wtf|shit|fxxk|fuck|hate|sad|angry`),
	regexp.MustCompile(`[😢😭😡🤬😞😔😩😫💔]+`),
}

var ellipsisRe = regexp.MustCompile(`\.{3,}|…+`)

// ScoreSentiment counts positive and negative lexicon hits in the text.
// Exclamation marks bias the score slightly positive, ellipses slightly
// negative. Pure function, no state.
func ScoreSentiment(text string) Sentiment {
	raw := NormalizeText(text)
	if raw == "" {
		return Sentiment{}
	}
	lower := strings.ToLower(raw)

	var pos, neg int
	for _, re := range posPatterns {
		pos += len(re.FindAllString(lower, -1))
	}
	for _, re := range negPatterns {
		neg += len(re.FindAllString(lower, -1))
	}

	if strings.ContainsAny(raw, "!！") {
		pos++
	}
	if ellipsisRe.MatchString(raw) {
		neg++
	}

	return Sentiment{Score: pos - neg, Pos: pos, Neg: neg}
}
