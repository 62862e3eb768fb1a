// Package server exposes the differentiation pipeline as an HTTP tool
// endpoint for agent frameworks.
//
//	POST /tool    execute a tool call
//	GET  /schema  tool schema for agent registration
//	GET  /health  liveness check
//	GET  /metrics Prometheus metrics
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/njchilds90/symdiff"
	"github.com/njchilds90/symdiff/internal/config"
)

const serviceName = "symdiff"

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-ID"

var tracer = otel.Tracer("symdiff.server")

// Server serves tool calls against one pipeline.
type Server struct {
	cfg      config.ServerConfig
	pipeline *symdiff.Pipeline
	log      *slog.Logger
	router   *gin.Engine
}

func New(cfg config.ServerConfig, p *symdiff.Pipeline, log *slog.Logger) *Server {
	s := &Server{cfg: cfg, pipeline: p, log: log}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(s.requestID)

	r.POST("/tool", s.handleTool)
	r.GET("/schema", s.handleSchema)
	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router = r
	return s
}

// Handler returns the routes, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("symdiff tool server listening", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.log.Info("shutting down symdiff tool server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) requestID(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("request_id", id)
	c.Header(RequestIDHeader, id)
	c.Next()
}

func (s *Server) handleTool(c *gin.Context) {
	start := time.Now()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodyBytes)

	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()

	var req ToolRequest
	if err := dec.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if dec.More() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: trailing data"})
		return
	}

	_, span := tracer.Start(c.Request.Context(), "server.HandleToolCall",
		trace.WithAttributes(attribute.String("tool", req.Tool)))
	resp := HandleToolCall(s.pipeline, req)
	if resp.Error != "" {
		span.SetStatus(codes.Error, resp.Error)
		if resp.ErrorKind != "" {
			span.SetAttributes(attribute.String("error_kind", resp.ErrorKind))
		}
	}
	traceID := ""
	if sc := span.SpanContext(); sc.HasTraceID() {
		traceID = sc.TraceID().String()
	}
	span.End()

	elapsed := time.Since(start)
	recordToolCall(req.Tool, resp, elapsed.Seconds())

	attrs := []any{
		slog.String("request_id", c.GetString("request_id")),
		slog.String("tool", req.Tool),
		slog.Duration("elapsed", elapsed),
	}
	if traceID != "" {
		attrs = append(attrs, slog.String("trace_id", traceID))
	}
	if resp.Error != "" {
		s.log.Warn("tool call failed", append(attrs, slog.String("error", resp.Error))...)
	} else {
		s.log.Debug("tool call", attrs...)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleSchema(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", []byte(MCPToolSpec()))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
