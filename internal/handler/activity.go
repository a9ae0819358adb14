package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tmarques/tripflow/backend/internal/domain"
	"github.com/tmarques/tripflow/backend/internal/middleware"
)

// addActivityRequest is the JSON body for scheduling a new activity.
// Day is 1-indexed relative to the trip start date; Time is 24-hour "HH:MM".
// Cost tolerates the same legacy monetary formats a trip budget does.
type addActivityRequest struct {
	Day      int        `json:"day"`
	Time     string     `json:"time"`
	Title    string     `json:"title"`
	Location string     `json:"location"`
	Cost     flexAmount `json:"cost"`
}

// addActivityResponse wraps the re-assembled trip, so the client gets the
// same shape a GET of the trip would return, new activity included.
type addActivityResponse struct {
	Trip tripResponse `json:"trip"`
}

// AddActivity handles POST /trips/{tripID}/activities.
//
// A budget overrun returns 422 with the exact remaining/total/spent figures
// in the error envelope; a malformed day or time returns 422 with the
// offending field named. Neither is retried.
func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	var body addActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "request body must be valid JSON")
		return
	}

	trip, err := s.activities.Add(r.Context(), chi.URLParam(r, "tripID"), ownerID, domain.NewActivity{
		Day:      body.Day,
		Time:     body.Time,
		Title:    body.Title,
		Location: body.Location,
		Cost:     float64(body.Cost),
	})
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, addActivityResponse{Trip: toTripResponse(trip)})
}
