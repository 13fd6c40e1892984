package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/jeffschwMSFT/clrkahoot/internal/api"
	"github.com/jeffschwMSFT/clrkahoot/internal/errors"
	"github.com/jeffschwMSFT/clrkahoot/internal/event"
	"github.com/jeffschwMSFT/clrkahoot/internal/session"
	"github.com/jeffschwMSFT/clrkahoot/internal/telemetry"
	"github.com/jeffschwMSFT/clrkahoot/internal/ws"
)

type Config struct {
	HTTP struct {
		Port int32
	}
}

type Server struct {
	c Config

	eb       *event.Bus
	registry *session.Registry
	hub      *ws.Hub
	api      *api.API

	http *http.Server
}

func Init(c Config) (*Server, error) {
	s := &Server{c: c}

	s.eb = event.NewBus()
	s.registry = session.NewRegistry()
	s.hub = ws.NewHub()
	s.api = api.New(api.Config{
		Registry:  s.registry,
		Messenger: s.hub,
		EventBus:  s.eb,
	})

	telemetry.MonitorGame(s.eb)

	s.initHTTP()
	return s, nil
}

func (s *Server) initHTTP() {
	e := gin.New()
	e.GET("/metrics", gin.WrapH(promhttp.Handler()))
	pprof.Register(e, "/debug/pprof")
	e.Use(gin.Recovery())

	e.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	e.GET("/ws", s.hub.Handler(s.api))
	e.GET("/api/rooms/:room", s.handleGetRoom)

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.c.HTTP.Port),
		Handler:           e,
		ReadHeaderTimeout: 60 * time.Second,
	}
}

// handleGetRoom is a read-only operational view of a room. It never
// creates rooms.
func (s *Server) handleGetRoom(c *gin.Context) {
	name := c.Param("room")
	room, ok := s.registry.Get(name)
	if !ok {
		e := errors.New(errors.CodeNotFound, errors.WithMessagef("room not found: %s", name))
		c.JSON(e.HTTPStatusCode(), e)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":         room.Name(),
		"participants": len(room.Users()),
		"questions":    room.QuestionCount(),
	})
}

func (s *Server) Start() {
	ctx := context.TODO()

	var eg errgroup.Group
	eg.Go(func() error {
		slog.InfoContext(ctx, fmt.Sprintf("server: HTTP listening on port %d", s.c.HTTP.Port))
		if err := s.http.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		slog.ErrorContext(ctx, "server: shutdown with error", "error", err)
	}
}

func (s *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "server: shutdown HTTP failed", "error", err)
	}

	s.eb.Stop()

	slog.InfoContext(ctx, "server: shutdown completed")
}
