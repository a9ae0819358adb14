// Package handler implements the HTTP handlers for the Tripflow API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, activity.go) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tmarques/tripflow/backend/internal/domain"
	"github.com/tmarques/tripflow/backend/internal/middleware"
	"github.com/tmarques/tripflow/backend/spec"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.AssembledTrip, error)
	GetByID(ctx context.Context, id, ownerID string) (domain.AssembledTrip, error)
	List(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.AssembledTrip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.AssembledTrip, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// ActivityServicer defines the business operations the activity handler
// depends on.
type ActivityServicer interface {
	Add(ctx context.Context, tripID, ownerID string, in domain.NewActivity) (domain.AssembledTrip, error)
}

// Server holds the dependencies shared by all HTTP handlers.
type Server struct {
	trips      TripServicer
	activities ActivityServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, activities ActivityServicer) *Server {
	return &Server{trips: trips, activities: activities}
}

// Routes returns the chi router for the full API surface.
// Everything under /trips requires the opaque user id the auth layer puts
// in the X-User-ID header.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Post("/activities", s.AddActivity)
		})
	})

	return r
}

// GetOpenAPI serves the embedded OpenAPI document. Serving it from the
// binary keeps the document and the running code in sync.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
