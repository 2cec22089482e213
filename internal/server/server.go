package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/username/timesheet-tracker/internal/calendar"
	"github.com/username/timesheet-tracker/internal/models"
	"github.com/username/timesheet-tracker/internal/timesheet"
	"go.uber.org/zap"
)

//go:embed web
var webFS embed.FS

// Service is the timesheet behaviour exposed over HTTP
type Service interface {
	SetStatus(ctx context.Context, date string, status string) error
	Events(ctx context.Context) ([]models.Event, error)
	Lock(ctx context.Context, year int, month time.Month) error
	Unlock(ctx context.Context, year int, month time.Month) error
	IsLocked(ctx context.Context, year int, month time.Month) (bool, error)
	Holidays(ctx context.Context, start, end string) []calendar.Holiday
	Summary(ctx context.Context, year int, month time.Month) (int, error)
	Export(ctx context.Context, year int, month time.Month, format timesheet.Format) (*timesheet.Export, error)
}

// Server serves the timesheet API and the embedded UI
type Server struct {
	app     *fiber.App
	service Service
	logger  *zap.Logger
}

// New creates a new Server with all routes registered
func New(service Service, logger *zap.Logger) *Server {
	s := &Server{
		service: service,
		logger:  logger,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "timesheet",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          60 * time.Second,
	})

	s.app.Use(requestID())
	s.app.Use(requestLogger(logger))
	s.app.Use(recover.New())

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Post("/event", s.registerEvent)
	s.app.Get("/events", s.listEvents)
	s.app.Post("/lock", s.lockMonth)
	s.app.Post("/unlock", s.unlockMonth)
	s.app.Get("/locked", s.isLocked)
	s.app.Get("/holidays", s.holidays)
	s.app.Get("/summary", s.summary)
	s.app.Get("/export", s.export)
	s.app.Get("/health", s.health)

	static, err := fs.Sub(webFS, "web")
	if err != nil {
		// embedded at build time
		panic(err)
	}
	s.app.Use("/", filesystem.New(filesystem.Config{
		Root:  http.FS(static),
		Index: "/index.html",
	}))
}

// App returns the underlying fiber application
func (s *Server) App() *fiber.App {
	return s.app
}

// Listener serves HTTP on an already bound listener until Shutdown is called
func (s *Server) Listener(ln net.Listener) error {
	s.logger.Info("HTTP server listening", zap.String("addr", ln.Addr().String()))
	return s.app.Listener(ln)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// errorHandler turns handler errors into {success: false, error} responses
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case isClientError(err):
		code = fiber.StatusBadRequest
	}

	if code >= fiber.StatusInternalServerError {
		s.logger.Error("Request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Any("request_id", c.Locals(localRequestID)),
			zap.Error(err))
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
