package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	TraceIDKey    = "trace_id"
	TraceIDHeader = "X-Trace-ID"

	maxTraceIDLen = 64
)

// TraceID tags every request with an ID, reusing the caller's X-Trace-ID when
// it is short enough to log.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(TraceIDHeader)
		if id == "" || len(id) > maxTraceIDLen {
			id = uuid.NewString()
		}
		c.Set(TraceIDKey, id)
		c.Header(TraceIDHeader, id)
		c.Next()
	}
}

// GetTraceID returns the ID set by TraceID.
func GetTraceID(c *gin.Context) string {
	return c.GetString(TraceIDKey)
}

// requestFields are the calculator-specific parts of a request worth logging:
// the profile a workspace or preset call touches, the snapshot format and
// whether a text report was asked for.
func requestFields(c *gin.Context) []zap.Field {
	fields := []zap.Field{zap.String("trace_id", GetTraceID(c))}
	if p := c.Param("profile"); p != "" {
		fields = append(fields, zap.String("profile", p))
	}
	if f := c.Query("format"); f != "" {
		fields = append(fields, zap.String("format", f))
	}
	if c.Query("text") != "" {
		fields = append(fields, zap.Bool("text", true))
	}
	return fields
}

// Logger writes one line per request. Health checks go to debug, server
// errors to warn.
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := append(requestFields(c),
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("took", time.Since(start)),
		)
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case status >= http.StatusInternalServerError:
			log.Warn("request failed", fields...)
		case c.FullPath() == "/health":
			log.Debug("health", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// Recovery turns a panic in a handler into a 500 that carries the trace ID,
// so a user report can be matched to the logged stack.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("handler panic", append(requestFields(c),
					zap.Any("panic", r),
					zap.String("route", c.FullPath()),
					zap.Stack("stack"),
				)...)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":    "internal server error",
					"trace_id": GetTraceID(c),
				})
			}
		}()
		c.Next()
	}
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit provides per-IP token-bucket rate limiting.
// r = requests per second, b = burst size. A non-positive r disables it.
func RateLimit(r rate.Limit, b int) gin.HandlerFunc {
	if r <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	var (
		mu       sync.Mutex
		limiters = map[string]*ipLimiter{}
		lastGC   = time.Now()
	)

	getLimiter := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		now := time.Now()
		if now.Sub(lastGC) > 5*time.Minute {
			cutoff := now.Add(-10 * time.Minute)
			for k, v := range limiters {
				if v.lastSeen.Before(cutoff) {
					delete(limiters, k)
				}
			}
			lastGC = now
		}
		il, ok := limiters[ip]
		if !ok {
			il = &ipLimiter{limiter: rate.NewLimiter(r, b)}
			limiters[ip] = il
		}
		il.lastSeen = now
		return il.limiter
	}

	return func(c *gin.Context) {
		if !getLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// BodyLimit caps the request body at n bytes.
func BodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
