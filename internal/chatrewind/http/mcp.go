package http

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sjzar/chatrewind/internal/analyzer"
	"github.com/sjzar/chatrewind/pkg/util"
	"github.com/sjzar/chatrewind/pkg/version"
)

func (s *Service) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"chatrewind",
		version.Version,
		server.WithToolCapabilities(false),
	)
	s.mcpSSEServer = server.NewSSEServer(
		s.mcpServer,
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
	)
	s.mcpStreamableServer = server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithEndpointPath("/mcp"),
	)

	s.registerTools()
}

func (s *Service) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("query_report",
		mcp.WithDescription("获取群聊年度报告的完整 JSON 载荷，包含奖项、排行、热词、情绪与爆发事件。"),
	), s.toolQueryReport)

	s.mcpServer.AddTool(mcp.NewTool("query_hot_events",
		mcp.WithDescription("获取全年聊天量爆发事件，含日期区间、峰值与当期关键词。"),
		mcp.WithNumber("limit", mcp.Description("返回事件数量，默认 6")),
	), s.toolQueryHotEvents)

	s.mcpServer.AddTool(mcp.NewTool("sample_messages",
		mcp.WithDescription("在指定日期区间内抽取有代表性的原始消息，供撰写事件摘要使用。"),
		mcp.WithString("start", mcp.Required(), mcp.Description("起始日期，格式 YYYY-MM-DD")),
		mcp.WithString("end", mcp.Description("结束日期，缺省与 start 相同")),
		mcp.WithNumber("limit", mcp.Description("返回条数，默认 40")),
		mcp.WithString("keywords", mcp.Description("逗号分隔的关键词，命中会提高消息权重")),
	), s.toolSampleMessages)

	s.mcpServer.AddTool(mcp.NewTool("user_insight",
		mcp.WithDescription("获取单个成员的年度画像：发言量、作息、口头禅与情绪均分。"),
		mcp.WithString("id", mcp.Required(), mcp.Description("成员的规范 id")),
	), s.toolUserInsight)

	s.mcpServer.AddTool(mcp.NewTool("search_messages",
		mcp.WithDescription("全文检索当年的聊天记录，支持按发送者与日期过滤。"),
		mcp.WithString("query", mcp.Required(), mcp.Description("检索词")),
		mcp.WithString("sender", mcp.Description("逗号分隔的发送者 id")),
		mcp.WithString("start", mcp.Description("起始日期 YYYY-MM-DD")),
		mcp.WithString("end", mcp.Description("结束日期 YYYY-MM-DD")),
		mcp.WithNumber("limit", mcp.Description("返回条数，默认 20，上限 200")),
	), s.toolSearchMessages)
}

func (s *Service) toolQueryReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.Report())
}

func (s *Service) toolQueryHotEvents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 6)
	return jsonResult(s.analyzer.GetHotEvents(limit))
}

func (s *Service) toolSampleMessages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, err := request.RequireString("start")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	end := request.GetString("end", start)
	opts := &analyzer.RangeSampleOptions{
		Limit:        request.GetInt("limit", 40),
		KeywordHints: util.Str2List(request.GetString("keywords", ""), ","),
	}
	return jsonResult(s.analyzer.GetRepresentativeMessagesInRange(start, end, opts))
}

func (s *Service) toolUserInsight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.analyzer.GetUserStats(id))
}

func (s *Service) toolSearchMessages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.idx == nil {
		return mcp.NewToolResultError("search index not enabled"), nil
	}

	loc := s.conf.Location()
	var startUnix, endUnix int64
	if start := request.GetString("start", ""); start != "" {
		t, ok := util.ParseDay(start, loc)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid start date: %s", start)), nil
		}
		startUnix = t.Unix()
	}
	if end := request.GetString("end", ""); end != "" {
		t, ok := util.ParseDay(end, loc)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid end date: %s", end)), nil
		}
		endUnix = t.AddDate(0, 0, 1).Unix() - 1
	}

	hits, total, err := s.idx.Search(q, util.Str2List(request.GetString("sender", ""), ","), startUnix, endUnix, 0, request.GetInt("limit", 20))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"items": hits, "total": total})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
