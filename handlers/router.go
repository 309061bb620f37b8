package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	REQUEST_ID_HEADER = "X-Request-ID"
	requestIDKey      = "requestId"
)

type RouterOptions struct {
	AllowAllOrigins bool
}

// NewRouter builds the gin engine: recovery, request ids, zap access logs,
// CORS, then the routing endpoints.
func NewRouter(h *RoutingHandler, logger *zap.Logger, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(accessLog(logger.Named("http")))

	config := cors.DefaultConfig()
	if opts.AllowAllOrigins {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = []string{"http://localhost"}
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", REQUEST_ID_HEADER}
	config.ExposeHeaders = []string{REQUEST_ID_HEADER}
	r.Use(cors.New(config))

	h.RegisterRoutes(r)
	return r
}

// RequestID returns the id assigned to the current request.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// requestIDMiddleware keeps a well-formed incoming X-Request-ID and otherwise
// assigns a fresh uuid.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(REQUEST_ID_HEADER)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(REQUEST_ID_HEADER, id)
		c.Next()
	}
}

func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", RequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= 500:
			logger.Error("Request served", fields...)
		case c.Writer.Status() >= 400:
			logger.Warn("Request served", fields...)
		default:
			logger.Info("Request served", fields...)
		}
	}
}
