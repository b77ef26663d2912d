package web

import (
	"context"
	"net/http"

	"sales-agent/config"
	"sales-agent/web/handlers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	router  *gin.Engine
	webhook *handlers.WebhookHandler
	monitor *handlers.MonitorHandler
	logger  *zap.Logger
	config  *config.Config
}

func NewServer(webhook *handlers.WebhookHandler, monitor *handlers.MonitorHandler, logger *zap.Logger, config *config.Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(func(c *gin.Context) {
		c.Set("logger", logger)
		c.Next()
	})

	server := &Server{
		router:  router,
		webhook: webhook,
		monitor: monitor,
		logger:  logger,
		config:  config,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	s.router.GET("/webhook", s.webhook.Verify)
	s.router.POST("/webhook", s.webhook.Receive)

	s.router.GET("/api/history", s.monitor.History)
	s.router.GET("/healthz", s.monitor.Healthz)
}

func (s *Server) Start(ctx context.Context, addr string) error {
	s.logger.Info("Starting web server", zap.String("address", addr))

	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Web server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()

	s.logger.Info("Shutting down web server")
	return srv.Shutdown(context.Background())
}
