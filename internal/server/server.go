// Package server is the HTTP face of the orchestrator: it accepts raw
// flow definitions, maps engine outcomes to status codes, and serves
// execution status queries. All orchestration semantics live in
// internal/engine.
package server

import (
	"log/slog"
	"strconv"

	glog "github.com/gin-contrib/slog"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/manjumh021/flow-manager/internal/engine"
	"github.com/manjumh021/flow-manager/internal/telemetry"
)

type Server struct {
	l            *slog.Logger
	orchestrator *engine.Orchestrator
	store        *engine.Store
}

func New(l *slog.Logger, orchestrator *engine.Orchestrator, store *engine.Store) *Server {
	return &Server{
		l:            l,
		orchestrator: orchestrator,
		store:        store,
	}
}

// Router configures the HTTP routes.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(glog.SetLogger(
		glog.WithLogger(func(c *gin.Context, l *slog.Logger) *slog.Logger {
			return s.l
		}),
	))
	router.Use(countRequests())

	router.GET("/health", s.handleHealth)
	router.POST("/flow/validate", s.handleValidate)
	router.POST("/flow/execute", s.handleExecute)
	router.POST("/flow/start", s.handleStart)
	router.GET("/flow/status/:execution_id", s.handleStatus)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

func countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		telemetry.HTTPRequests.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
