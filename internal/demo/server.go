package demo

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/keessnoek/ing-transactie-verwerker/internal/api"
	"github.com/keessnoek/ing-transactie-verwerker/internal/common"
	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
)

// Options tune the demo server.
type Options struct {
	// Latency delays every response, to make busy states visible.
	Latency time.Duration
	// FailAssign makes every assignment fail with a server error.
	FailAssign bool
}

// NewRouter returns the reports routes backed by store.
func NewRouter(store *Store, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	if opts.Latency > 0 {
		r.Use(latency(opts.Latency))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	reports := r.Group("/reports")
	reports.GET("/categoriseer-analyse", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Analysis())
	})
	reports.POST("/preview-transacties", previewHandler(store))
	reports.POST("/auto-categoriseren", assignHandler(store, opts.FailAssign))

	return r
}

func previewHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.PreviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		resp, err := store.Preview(req.Patterns)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func assignHandler(store *Store, fail bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if fail {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database is locked"})
			return
		}
		var req model.BulkAssignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		resp, err := store.Assign(c.Request.Context(), req)
		switch {
		case errors.Is(err, ErrPatternsAndCategoryRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case err != nil:
			common.LogError(err, "Assignment failed", common.Fields{"category_id": req.CategoryID})
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		common.LogDebug("Demo request", common.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"request_id": c.GetHeader(api.RequestIDHeader),
		})
	}
}

func latency(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		select {
		case <-time.After(d):
		case <-c.Request.Context().Done():
		}
		c.Next()
	}
}

// Server runs the demo backend on a local port.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
}

// Start listens on addr ("127.0.0.1:0" picks a free port) and serves in
// the background.
func Start(store *Store, addr string, opts Options) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s := &Server{
		listener: ln,
		httpServer: &http.Server{
			Handler:           NewRouter(store, opts),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogError(err, "Demo server stopped", common.Fields{"addr": ln.Addr().String()})
		}
	}()

	common.LogInfo("Demo backend started", common.Fields{"url": s.URL()})
	return s, nil
}

// URL is the base URL of the server.
func (s *Server) URL() string {
	return "http://" + s.listener.Addr().String()
}

// Shutdown stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
