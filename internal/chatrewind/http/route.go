package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sjzar/chatrewind/internal/analyzer"
	"github.com/sjzar/chatrewind/internal/errors"
	"github.com/sjzar/chatrewind/pkg/util"
)

func (s *Service) initRouter() {
	s.initBaseRouter()
	s.initAPIRouter()
	s.initMCPRouter()
}

func (s *Service) initBaseRouter() {
	s.router.GET("/health", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}

func (s *Service) initAPIRouter() {
	api := s.router.Group("/api/v1")
	{
		api.GET("/report", s.handleReport)
		api.GET("/awards", s.handleAwards)
		api.GET("/ranking", s.handleRanking)
		api.GET("/words", s.handleTopWords)
		api.GET("/keywords/monthly", s.handleMonthlyKeywords)
		api.GET("/events", s.handleHotEvents)
		api.GET("/sentiment", s.handleSentiment)
		api.GET("/joker", s.handleJoker)
		api.GET("/highlights", s.handleHighlights)
		api.GET("/relations", s.handleRelations)
		api.GET("/types", s.handleMessageTypes)
		api.GET("/calendar", s.handleCalendar)
		api.GET("/samples", s.handleSamples)
		api.GET("/quotes", s.handleQuotes)
		api.GET("/users/:id", s.handleUserInsight)
		api.GET("/users/:id/samples", s.handleUserSamples)
		api.GET("/search", s.handleSearch)
	}
}

func (s *Service) initMCPRouter() {
	s.router.Any("/mcp", func(c *gin.Context) { s.mcpStreamableServer.ServeHTTP(c.Writer, c.Request) })
	s.router.Any("/sse", func(c *gin.Context) { s.mcpSSEServer.ServeHTTP(c.Writer, c.Request) })
	s.router.Any("/message", func(c *gin.Context) { s.mcpSSEServer.ServeHTTP(c.Writer, c.Request) })
}

// GET /api/v1/report
func (s *Service) handleReport(c *gin.Context) {
	c.JSON(http.StatusOK, s.Report())
}

// GET /api/v1/awards
func (s *Service) handleAwards(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": s.analyzer.GetAwards()})
}

// GET /api/v1/ranking?limit=10
func (s *Service) handleRanking(c *gin.Context) {
	limit := clampLimit(c, 10, 100)
	c.JSON(http.StatusOK, gin.H{"items": s.analyzer.GetUserRanking(limit)})
}

// GET /api/v1/words?limit=30
func (s *Service) handleTopWords(c *gin.Context) {
	limit := clampLimit(c, 30, 200)
	c.JSON(http.StatusOK, gin.H{"items": s.analyzer.GetTopWords(limit)})
}

// GET /api/v1/keywords/monthly?limit=6
func (s *Service) handleMonthlyKeywords(c *gin.Context) {
	limit := clampLimit(c, 6, 30)
	c.JSON(http.StatusOK, gin.H{"items": s.analyzer.GetMonthlyKeywords(limit)})
}

// GET /api/v1/events?limit=6
func (s *Service) handleHotEvents(c *gin.Context) {
	limit := clampLimit(c, 6, 20)
	c.JSON(http.StatusOK, gin.H{"items": s.analyzer.GetHotEvents(limit)})
}

// GET /api/v1/sentiment
func (s *Service) handleSentiment(c *gin.Context) {
	c.JSON(http.StatusOK, s.analyzer.GetSentimentSummary())
}

// GET /api/v1/joker
func (s *Service) handleJoker(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": s.analyzer.GetJokerAnalysis()})
}

// GET /api/v1/highlights
func (s *Service) handleHighlights(c *gin.Context) {
	c.JSON(http.StatusOK, s.analyzer.GetHighlights())
}

// GET /api/v1/relations
func (s *Service) handleRelations(c *gin.Context) {
	c.JSON(http.StatusOK, s.analyzer.GetRelationsData())
}

// GET /api/v1/types
func (s *Service) handleMessageTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": s.analyzer.GetMessageTypeDistribution()})
}

// GET /api/v1/calendar
func (s *Service) handleCalendar(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": s.analyzer.GetCalendarData()})
}

// GET /api/v1/samples?start=2024-06-01&end=2024-06-03&limit=40&keywords=a,b
func (s *Service) handleSamples(c *gin.Context) {
	start := strings.TrimSpace(c.Query("start"))
	end := strings.TrimSpace(c.Query("end"))
	if start == "" {
		errors.Err(c, errors.InvalidArg("start"))
		return
	}
	if end == "" {
		end = start
	}

	opts := &analyzer.RangeSampleOptions{
		Limit:        clampLimit(c, 40, 200),
		KeywordHints: util.Str2List(c.Query("keywords"), ","),
	}
	c.JSON(http.StatusOK, gin.H{"items": s.analyzer.GetRepresentativeMessagesInRange(start, end, opts)})
}

// GET /api/v1/quotes?limit=50
func (s *Service) handleQuotes(c *gin.Context) {
	limit := clampLimit(c, 50, 200)
	c.JSON(http.StatusOK, gin.H{"items": s.analyzer.GetQuoteCandidates(limit)})
}

// GET /api/v1/users/:id
func (s *Service) handleUserInsight(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		errors.Err(c, errors.InvalidArg("id"))
		return
	}
	c.JSON(http.StatusOK, s.analyzer.GetUserStats(id))
}

// GET /api/v1/users/:id/samples?limit=15
func (s *Service) handleUserSamples(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		errors.Err(c, errors.InvalidArg("id"))
		return
	}
	limit := clampLimit(c, 15, 100)
	c.JSON(http.StatusOK, gin.H{"items": s.analyzer.GetUserSampleMessages(id, limit)})
}

// GET /api/v1/search?q=&sender=&start=&end=&limit=&offset=
func (s *Service) handleSearch(c *gin.Context) {
	params := struct {
		Query  string `form:"q"`
		Sender string `form:"sender"`
		Start  string `form:"start"`
		End    string `form:"end"`
		Limit  int    `form:"limit"`
		Offset int    `form:"offset"`
	}{}
	if err := c.BindQuery(&params); err != nil {
		errors.Err(c, err)
		return
	}
	if s.idx == nil {
		errors.Err(c, errors.New(http.StatusNotImplemented, "search index not enabled"))
		return
	}

	loc := s.conf.Location()
	var startUnix, endUnix int64
	if params.Start != "" {
		t, ok := util.ParseDay(params.Start, loc)
		if !ok {
			errors.Err(c, errors.InvalidArg("start"))
			return
		}
		startUnix = t.Unix()
	}
	if params.End != "" {
		t, ok := util.ParseDay(params.End, loc)
		if !ok {
			errors.Err(c, errors.InvalidArg("end"))
			return
		}
		endUnix = t.AddDate(0, 0, 1).Unix() - 1
	}

	hits, total, err := s.idx.Search(params.Query, util.Str2List(params.Sender, ","), startUnix, endUnix, params.Offset, params.Limit)
	if err != nil {
		errors.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": hits, "total": total})
}

func clampLimit(c *gin.Context, def, max int) int {
	raw := c.Query("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
