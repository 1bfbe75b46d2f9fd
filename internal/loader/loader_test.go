package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjzar/chatrewind/internal/errors"
)

const sampleJSON = `{
	"session": {"displayName": "测试群"},
	"messages": [
		{"createTime": 1717230000, "type": "文本消息", "content": "后来的消息", "senderUsername": "bob", "senderDisplayName": "bob"},
		{"createTime": 1717220000, "type": "文本消息", "content": "先发的消息", "senderUsername": "alice", "senderDisplayName": "alice"},
		null,
		{"createTime": 1717225000, "type": "图片消息", "content": "", "senderUsername": "alice", "senderDisplayName": "alice"}
	]
}`

func TestParseSortsAndFilters(t *testing.T) {
	data, err := Parse(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	require.NotNil(t, data.Session)
	assert.Equal(t, "测试群", data.Session.DisplayName)

	// null 条目被剔除，剩余消息按时间升序
	require.Len(t, data.Messages, 3)
	assert.Equal(t, "alice", data.Messages[0].SenderUsername)
	assert.Equal(t, int64(1717220000), data.Messages[0].CreateTime)
	assert.Equal(t, int64(1717225000), data.Messages[1].CreateTime)
	assert.Equal(t, int64(1717230000), data.Messages[2].CreateTime)
}

func TestParseNoMessages(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"messages": []}`))
	assert.ErrorIs(t, err, errors.ErrNoMessages)

	_, err = Parse(strings.NewReader(`{}`))
	assert.ErrorIs(t, err, errors.ErrNoMessages)
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse(strings.NewReader(`{not json`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o644))

	data, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, data.Messages, 3)

	_, err = Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
