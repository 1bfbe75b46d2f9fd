package analyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sjzar/chatrewind/pkg/util"
)

// Tokenizer extracts candidate keyword tokens from a message body.
// It is deliberately NLP-lite: Latin words, CJK/digit mixed tokens and
// stride-sampled CJK n-grams, filtered through a stopword set.
type Tokenizer struct {
	MinLen       int // minimum token length in runes
	MaxLen       int // maximum token length in runes
	MaxCNSeq     int // cap on a single CJK run before n-gram generation
	NgramMin     int
	NgramMax     int
	MaxTokens    int // per-message output cap
	MaxGramsPerN int // uniform-stride sample size per n on long runs

	stopwords map[string]struct{}
}

var (
	latinTokenRe = regexp.MustCompile(`[a-z][a-z0-9_]{1,15}`)
	cnDigitRe    = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]{1,6}[0-9]{1,4}[\x{4e00}-\x{9fa5}]{0,4}`)
	cnSeqRe      = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]{2,}`)
	laughOnlyRe  = regexp.MustCompile(`^[哈呵嘿嘻呜嗯哦啊哎]+$`)

	// 微信 @ 提及以 U+2005 一类窄空格收尾，普通标点不会出现这种收尾，
	// 以此区分提及和 email/URL 里的 @。
	mentionRe = regexp.MustCompile(`@[^\x{2005}\x{2006}\x{2009}\x{202f}\x{00a0}\r\n\t]{1,80}[\x{2005}\x{2006}\x{2009}\x{202f}\x{00a0}]+[\s\x{2005}\x{2006}\x{2009}\x{202f}\x{00a0}]*`)
)

// NewTokenizer returns a tokenizer with the default keyword parameters.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		MinLen:       2,
		MaxLen:       12,
		MaxCNSeq:     24,
		NgramMin:     2,
		NgramMax:     4,
		MaxTokens:    60,
		MaxGramsPerN: 6,
		stopwords:    defaultStopwords,
	}
}

// NormalizeText collapses whitespace runs into single spaces and trims.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// StripMentions removes @-mention spans. Group nicknames may contain spaces
// and punctuation, so the mention is truncated at its narrow-space terminator
// rather than at the first whitespace.
func StripMentions(text string) string {
	return mentionRe.ReplaceAllString(text, " ")
}

func isAllSameRune(s string) bool {
	first, size := utf8.DecodeRuneInString(s)
	if size == 0 || size == len(s) {
		return true
	}
	for _, r := range s[size:] {
		if r != first {
			return false
		}
	}
	return true
}

// IsStopToken reports whether the token should be dropped from keyword output.
func (t *Tokenizer) IsStopToken(token string) bool {
	if token == "" {
		return true
	}
	n := utf8.RuneCountInString(token)
	if n < t.MinLen || n > t.MaxLen {
		return true
	}
	if _, ok := t.stopwords[token]; ok {
		return true
	}
	if util.IsNumeric(token) {
		return true
	}
	if isAllSameRune(token) {
		return true
	}
	if laughOnlyRe.MatchString(token) {
		return true
	}
	if strings.ContainsAny(token, "?？!！") {
		return true
	}
	return false
}

// Extract returns unique tokens in first-seen order, capped at MaxTokens.
func (t *Tokenizer) Extract(text string) []string {
	raw := NormalizeText(text)
	if raw == "" {
		return nil
	}

	out := make([]string, 0, 16)
	seen := make(map[string]struct{})

	push := func(token string) {
		if len(out) >= t.MaxTokens {
			return
		}
		token = strings.TrimSpace(token)
		if token == "" || t.IsStopToken(token) {
			return
		}
		if _, ok := seen[token]; ok {
			return
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}

	// Latin words and identifiers, lower-cased.
	lower := strings.ToLower(raw)
	for _, tok := range latinTokenRe.FindAllString(lower, -1) {
		push(tok)
	}

	// CJK mixed with digits, e.g. 双11 / 双十一前的618.
	for _, tok := range cnDigitRe.FindAllString(raw, -1) {
		push(tok)
	}

	// CJK runs: keep short phrases whole, sample n-grams out of longer ones.
	for _, seq := range cnSeqRe.FindAllString(raw, -1) {
		runes := []rune(seq)
		if len(runes) <= t.MaxLen {
			push(seq)
		}

		capped := runes
		if len(capped) > t.MaxCNSeq {
			capped = capped[:t.MaxCNSeq]
		}
		// 长句子不产出大量 2-gram，否则词云全是两个字。
		minN := t.NgramMin
		if len(capped) >= 7 && minN < 3 {
			minN = 3
		}
		for n := minN; n <= t.NgramMax; n++ {
			if len(capped) < n {
				continue
			}
			total := len(capped) - n + 1
			step := (total + t.MaxGramsPerN - 1) / t.MaxGramsPerN
			if step < 1 {
				step = 1
			}
			for i, taken := 0, 0; i <= len(capped)-n && taken < t.MaxGramsPerN; i, taken = i+step, taken+1 {
				push(string(capped[i : i+n]))
			}
		}
	}

	return out
}
