package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjzar/chatrewind/internal/analyzer"
	"github.com/sjzar/chatrewind/internal/chatrewind/conf"
	"github.com/sjzar/chatrewind/internal/index"
	"github.com/sjzar/chatrewind/internal/model"
)

func testMsg(t time.Time, sender, content string) *model.Message {
	return &model.Message{
		CreateTime:        t.Unix(),
		Type:              model.TypeText,
		Content:           content,
		SenderUsername:    sender,
		SenderDisplayName: sender,
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	data := &model.ChatData{
		Session: &model.Session{DisplayName: "测试群"},
		Messages: []*model.Message{
			testMsg(base, "alice", "今晚一起去吃火锅吗"),
			testMsg(base.Add(time.Minute), "bob", "好啊我也想吃火锅"),
			testMsg(base.Add(2*time.Minute), "carol", "那就这么定了"),
		},
	}
	a := analyzer.New(data, 2024, analyzer.WithLocation(time.UTC))

	idx, err := index.New()
	require.NoError(t, err)
	require.NoError(t, idx.IndexMessages(a.YearMessages(), a.SenderID))
	t.Cleanup(func() { _ = idx.Close() })

	return NewService(&conf.Config{Addr: "127.0.0.1:0", Year: 2024, Timezone: "UTC"}, a, idx)
}

func doRequest(s *Service, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.GetRouter().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestService(t)
	w := doRequest(s, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReportEndpoint(t *testing.T) {
	s := newTestService(t)
	w := doRequest(s, "/api/v1/report")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(3), body["totalMessages"])
	assert.Equal(t, "测试群", body["chatName"])
	assert.Equal(t, float64(2024), body["year"])
}

func TestRankingEndpoint(t *testing.T) {
	s := newTestService(t)
	w := doRequest(s, "/api/v1/ranking")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestSamplesRequiresStart(t *testing.T) {
	s := newTestService(t)
	w := doRequest(s, "/api/v1/samples")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(s, "/api/v1/samples?start=2024-06-01")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSearchEndpoint(t *testing.T) {
	s := newTestService(t)
	w := doRequest(s, "/api/v1/search?q=火锅")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "火锅")
}

func TestStatEndpoints(t *testing.T) {
	s := newTestService(t)
	for _, path := range []string{
		"/api/v1/awards",
		"/api/v1/words",
		"/api/v1/sentiment",
		"/api/v1/types",
		"/api/v1/calendar",
		"/api/v1/highlights",
		"/api/v1/relations",
		"/api/v1/joker",
	} {
		w := doRequest(s, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestNotFound(t *testing.T) {
	s := newTestService(t)
	w := doRequest(s, "/api/v1/nothing-here")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
