package model

import "time"

// 消息类型标签，与导出 JSON 中的 type 字段保持一致。
// 未知标签按原样计入类型分布，不做失败处理。
const (
	TypeText    = "文本消息"
	TypeImage   = "图片消息"
	TypeVideo   = "视频消息"
	TypeSystem  = "系统消息"
	TypeQuote   = "引用消息"
	TypeSticker = "动画表情"
)

// Message 表示导出 JSON 中的一条群聊消息。
// CreateTime 为 Unix 秒；核心分析只读，不会修改消息本身。
type Message struct {
	CreateTime        int64  `json:"createTime"`
	Type              string `json:"type"`
	Content           string `json:"content"`
	SenderUsername    string `json:"senderUsername"`
	SenderDisplayName string `json:"senderDisplayName"`
	SenderAvatarKey   string `json:"senderAvatarKey"`
}

// Time 返回消息在指定时区下的时间。
func (m *Message) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(m.CreateTime, 0).In(loc)
}

// IsText 判断是否为参与词频/情绪分析的文本消息。
func (m *Message) IsText() bool {
	return m.Type == TypeText
}

// GroupMember 群成员花名册条目，用于提及解析与展示原名。
type GroupMember struct {
	Username     string `json:"username"`
	OriginalName string `json:"originalName"`
	Remark       string `json:"remark"`
}

// Avatar 头像注册表条目；DisplayName 参与提及解析。
type Avatar struct {
	DisplayName string `json:"displayName"`
	Base64      string `json:"base64"`
}

// Session 会话元信息。
type Session struct {
	DisplayName string `json:"displayName"`
}

// ChatData 是上游导出工具产出的完整数据包。
type ChatData struct {
	Session      *Session           `json:"session"`
	GroupMembers []*GroupMember     `json:"groupMembers"`
	Avatars      map[string]*Avatar `json:"avatars"`
	Messages     []*Message         `json:"messages"`
}
