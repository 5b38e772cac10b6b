package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// corsMiddleware mirrors the browser surface the service has always exposed:
// any origin, POST/GET, auth and content-type headers. Tighten origins when
// a production frontend domain is known.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requestTimer reports the handling time of every request, both as an
// X-Process-Time response header (seconds) and in the log. Headers must be
// set before the first body write, so the header goes through a writer
// wrapper that stamps it at write time instead of after c.Next().
func requestTimer() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Writer = &processTimeWriter{ResponseWriter: c.Writer, start: start}
		c.Next()
		log.Printf("Request %s %s processed in %.4f seconds",
			c.Request.Method, c.Request.URL.Path, time.Since(start).Seconds())
	}
}

type processTimeWriter struct {
	gin.ResponseWriter
	start   time.Time
	stamped bool
}

func (w *processTimeWriter) WriteHeader(code int) {
	w.stamp()
	w.ResponseWriter.WriteHeader(code)
}

func (w *processTimeWriter) WriteHeaderNow() {
	w.stamp()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *processTimeWriter) Write(b []byte) (int, error) {
	w.stamp()
	return w.ResponseWriter.Write(b)
}

func (w *processTimeWriter) WriteString(s string) (int, error) {
	w.stamp()
	return w.ResponseWriter.WriteString(s)
}

func (w *processTimeWriter) stamp() {
	if w.stamped {
		return
	}
	w.stamped = true
	w.Header().Set("X-Process-Time", fmt.Sprintf("%.6f", time.Since(w.start).Seconds()))
}
