package index

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjzar/chatrewind/internal/model"
)

func newIndexWithMessages(t *testing.T) *Index {
	t.Helper()
	idx, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC).Unix()
	messages := []*model.Message{
		{CreateTime: base, Type: model.TypeText, Content: "deploy finished without errors", SenderUsername: "alice"},
		{CreateTime: base + 60, Type: model.TypeText, Content: "deploy failed again", SenderUsername: "bob"},
		{CreateTime: base + 120, Type: model.TypeImage, Content: "deploy screenshot", SenderUsername: "alice"},
	}
	senderOf := func(m *model.Message) string { return m.SenderUsername }
	require.NoError(t, idx.IndexMessages(messages, senderOf))
	return idx
}

func TestSearchByContent(t *testing.T) {
	idx := newIndexWithMessages(t)

	hits, total, err := idx.Search("deploy", nil, 0, 0, 0, 10)
	require.NoError(t, err)
	// 图片消息不进内容索引
	assert.Equal(t, 2, total)
	require.Len(t, hits, 2)
	for _, h := range hits {
		assert.Contains(t, h.Message.Content, "deploy")
	}
}

func TestSearchSenderFilter(t *testing.T) {
	idx := newIndexWithMessages(t)

	hits, total, err := idx.Search("deploy", []string{"bob"}, 0, 0, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, hits, 1)
	assert.Equal(t, "bob", hits[0].Sender)
	assert.Equal(t, "deploy failed again", hits[0].Message.Content)
}

func TestSearchTimeRange(t *testing.T) {
	idx := newIndexWithMessages(t)
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC).Unix()

	_, total, err := idx.Search("deploy", nil, base+30, base+90, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestSearchEmptyQuery(t *testing.T) {
	idx := newIndexWithMessages(t)

	hits, total, err := idx.Search("", nil, 0, 0, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, hits)
}
