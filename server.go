package main

import (
	"time"

	"expenseit/pkg/logger"
	"expenseit/pkg/scan"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type server struct {
	scanner   *scan.Scanner
	prefs     *preferenceStore
	auth      *authenticator
	log       logger.Logger
	maxUpload int64
}

func newRouter(s *server) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(s.log), gin.Recovery())

	r.GET("/healthz", s.healthHandler)
	r.POST("/login", s.loginHandler)

	authGroup := r.Group("")
	authGroup.Use(s.auth.middleware())
	authGroup.POST("/scan", s.scanHandler)
	authGroup.POST("/extract", s.extractHandler)
	authGroup.POST("/normalize", s.normalizeHandler)
	authGroup.GET("/merchants/suggest", s.suggestHandler)
	authGroup.GET("/preferences", s.preferencesHandler)
	return r
}

// requestLogger tags each request with an id and logs it once it completes.
func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)

		c.Next()

		ev := log.Info()
		if c.Writer.Status() >= 500 {
			ev = log.Error()
		}
		ev.Str("request_id", id).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func requestID(c *gin.Context) string {
	return c.GetString("request_id")
}
