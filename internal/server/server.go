package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/storage"
)

// Store is the persistence the HTTP API needs. *storage.DB satisfies it.
type Store interface {
	InsertSession(ctx context.Context, s *models.WorkoutSession) error
	QuerySessions(ctx context.Context, start, end time.Time, tag string) ([]storage.SessionSummary, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*models.WorkoutSession, error)
	DeleteSession(ctx context.Context, sessionID uuid.UUID) error
	QueryGoals(ctx context.Context, exerciseID *uuid.UUID) ([]models.GoalRow, error)
	GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string) ([]storage.TrainingSummaryPeriod, error)
	Ping(ctx context.Context) error
}

var _ Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     Store
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db Store, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)

	s.router.Post("/api/v1/workouts", s.handleIngestWorkout)
	s.router.Post("/api/v1/workouts/validate", s.handleValidateWorkout)
	s.router.Get("/api/v1/workouts", s.handleQueryWorkouts)
	s.router.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
	s.router.Delete("/api/v1/workouts/{id}", s.handleDeleteWorkout)
	s.router.Get("/api/v1/goals", s.handleQueryGoals)
	s.router.Get("/api/v1/training/summary", s.handleTrainingSummary)
}
