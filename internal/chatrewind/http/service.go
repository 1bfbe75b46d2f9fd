package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/sjzar/chatrewind/internal/analyzer"
	"github.com/sjzar/chatrewind/internal/chatrewind/conf"
	"github.com/sjzar/chatrewind/internal/errors"
	"github.com/sjzar/chatrewind/internal/index"
	"github.com/sjzar/chatrewind/internal/model"
)

type Service struct {
	conf     *conf.Config
	analyzer *analyzer.Analyzer
	idx      *index.Index

	router *gin.Engine
	server *http.Server

	mcpServer           *server.MCPServer
	mcpSSEServer        *server.SSEServer
	mcpStreamableServer *server.StreamableHTTPServer

	reportOnce sync.Once
	report     *model.Report
}

func NewService(cfg *conf.Config, a *analyzer.Analyzer, idx *index.Index) *Service {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Err(err).Msg("Failed to set trusted proxies")
	}

	router.Use(
		errors.RecoveryMiddleware(),
		errors.ErrorHandlerMiddleware(),
		gin.LoggerWithWriter(log.Logger, "/health"),
	)

	s := &Service{
		conf:     cfg,
		analyzer: a,
		idx:      idx,
		router:   router,
	}

	s.initMCPServer()
	s.initRouter()
	return s
}

// Report returns the assembled report, building it on first use.
func (s *Service) Report() *model.Report {
	s.reportOnce.Do(func() {
		s.report = s.analyzer.BuildReport()
	})
	return s.report
}

func (s *Service) ListenAndServe() error {
	s.server = &http.Server{
		Addr:    s.conf.Addr,
		Handler: s.router,
	}

	log.Info().Msg("Starting HTTP server on " + s.conf.Addr)
	return s.server.ListenAndServe()
}

func (s *Service) Stop() error {
	if s.server == nil {
		return nil
	}

	// 使用超时上下文优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.Debug().Err(err).Msg("Failed to shutdown HTTP server")
		return nil
	}

	log.Info().Msg("HTTP server stopped")
	return nil
}

func (s *Service) GetRouter() *gin.Engine {
	return s.router
}
