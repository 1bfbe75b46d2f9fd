package analyzer

// 词频分析使用的停用词表：语气词、常见灌水词、高频虚词和消息占位符。
var defaultStopwords = func() map[string]struct{} {
	words := []string{
		// 语气词 / 常见灌水词
		"哈哈", "哈哈哈", "呵呵", "嘿嘿", "嘻嘻", "呜呜", "呃", "额", "嗯", "啊", "哦", "哎",
		"好", "好的", "行", "可以", "可以的", "ok", "okay", "OK", "1", "+1", "确实", "真是",

		// 高频虚词
		"这个", "那个", "一种", "一个", "不会", "不是", "就是", "然后", "所以", "因为", "但是",
		"感觉", "觉得", "知道", "看到", "听说", "怎么", "为什么", "什么", "哪里", "哪个", "多少",
		"我们", "你们", "他们", "她们", "大家", "今天", "明天", "昨天", "现在", "刚刚", "一直", "还有", "不过",
		"真的", "已经", "可能", "应该", "如果", "而且",

		// 消息占位
		"[图片]", "[动画表情]", "[视频]", "[拍一拍]",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

// IsStopword reports whether the word is in the default stopword set.
func IsStopword(word string) bool {
	_, ok := defaultStopwords[word]
	return ok
}
