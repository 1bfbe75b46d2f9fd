package analyzer

import (
	"strings"

	"github.com/sjzar/chatrewind/internal/model"
)

// PlaceholderName 用于一切无法解析身份的发送者。
const PlaceholderName = "神秘群友"

// identityResolver maps raw sender fields and @-mention text to canonical ids.
// Alias tables are built once from the roster and the avatar registry;
// alias→id mapping is first-write-wins.
type identityResolver struct {
	memberByUsername    map[string]*model.GroupMember
	usernameByAlias     map[string]string
	avatarKeyByUsername map[string]string
	avatars             map[string]*model.Avatar
	meta                map[string]*model.UserMeta
}

func newIdentityResolver(data *model.ChatData) *identityResolver {
	r := &identityResolver{
		memberByUsername:    make(map[string]*model.GroupMember),
		usernameByAlias:     make(map[string]string),
		avatarKeyByUsername: make(map[string]string),
		avatars:             data.Avatars,
		meta:                make(map[string]*model.UserMeta),
	}

	for _, m := range data.GroupMembers {
		if m == nil || m.Username == "" {
			continue
		}
		r.memberByUsername[m.Username] = m
	}

	addAlias := func(alias, username string) {
		key := strings.TrimSpace(alias)
		if key == "" || username == "" {
			return
		}
		if _, ok := r.usernameByAlias[key]; !ok {
			r.usernameByAlias[key] = username
		}
	}

	// 优先原名；备注和头像显示名也参与提及解析。
	for _, m := range data.GroupMembers {
		if m == nil || m.Username == "" {
			continue
		}
		addAlias(m.OriginalName, m.Username)
		addAlias(m.Remark, m.Username)
	}
	for avatarKey, a := range data.Avatars {
		if a != nil {
			addAlias(a.DisplayName, avatarKey)
		}
	}

	return r
}

// senderKey picks the sender identity in preference order:
// username field, avatar key, display name, placeholder.
func senderKey(msg *model.Message) string {
	switch {
	case msg.SenderUsername != "":
		return msg.SenderUsername
	case msg.SenderAvatarKey != "":
		return msg.SenderAvatarKey
	case msg.SenderDisplayName != "":
		return msg.SenderDisplayName
	default:
		return PlaceholderName
	}
}

// resolveAlias maps mentioned text back to a canonical id, or "" when the
// text matches no known user.
func (r *identityResolver) resolveAlias(nameOrAlias string) string {
	key := strings.TrimSpace(nameOrAlias)
	if key == "" {
		return ""
	}
	if _, ok := r.meta[key]; ok {
		return key
	}
	return r.usernameByAlias[key]
}

// ensure creates or refreshes the UserMeta for a canonical id. It never
// fails: unresolvable identities land on the placeholder.
func (r *identityResolver) ensure(username string, msg *model.Message) *model.UserMeta {
	id := strings.TrimSpace(username)
	if id == "" {
		return &model.UserMeta{Name: PlaceholderName}
	}

	existing := r.meta[id]

	name := ""
	if member, ok := r.memberByUsername[id]; ok {
		name = member.OriginalName
	}
	if name == "" && existing != nil {
		name = existing.Name
	}
	if name == "" && msg != nil {
		name = msg.SenderDisplayName
	}
	if name == "" {
		name = PlaceholderName
	}

	avatarKey := ""
	if msg != nil {
		avatarKey = msg.SenderAvatarKey
	}
	if avatarKey == "" {
		avatarKey = r.avatarKeyByUsername[id]
	}
	if avatarKey == "" {
		avatarKey = id
	}
	r.avatarKeyByUsername[id] = avatarKey

	avatarURL := ""
	if existing != nil {
		avatarURL = existing.AvatarURL
	}
	if avatarURL == "" {
		if a, ok := r.avatars[avatarKey]; ok && a != nil {
			avatarURL = toDataURL(a.Base64)
		}
	}

	m := &model.UserMeta{ID: id, Name: name, AvatarURL: avatarURL}
	r.meta[id] = m
	return m
}

// asUser resolves any id or alias into display metadata. Unknown keys come
// back with an empty id and the key itself as the name.
func (r *identityResolver) asUser(userKey string) *model.UserMeta {
	key := strings.TrimSpace(userKey)
	if key == "" {
		return &model.UserMeta{Name: PlaceholderName}
	}
	if m, ok := r.meta[key]; ok {
		return &model.UserMeta{ID: key, Name: m.Name}
	}
	if resolved := r.resolveAlias(key); resolved != "" {
		if m, ok := r.meta[resolved]; ok {
			return &model.UserMeta{ID: resolved, Name: m.Name}
		}
	}
	return &model.UserMeta{Name: key}
}

// userMeta returns a copy of the id → meta table for the rendering layer.
func (r *identityResolver) userMeta() map[string]*model.UserMeta {
	out := make(map[string]*model.UserMeta, len(r.meta))
	for id, m := range r.meta {
		name := m.Name
		if name == "" {
			name = id
		}
		out[id] = &model.UserMeta{ID: id, Name: name, AvatarURL: m.AvatarURL}
	}
	return out
}

func guessImageMime(b64 string) string {
	switch {
	case b64 == "":
		return ""
	case strings.HasPrefix(b64, "iVBOR"):
		return "image/png"
	case strings.HasPrefix(b64, "R0lGOD"):
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

func toDataURL(b64 string) string {
	if b64 == "" {
		return ""
	}
	if strings.HasPrefix(b64, "data:") {
		return b64
	}
	mime := guessImageMime(b64)
	if mime == "" {
		return ""
	}
	return "data:" + mime + ";base64," + b64
}
