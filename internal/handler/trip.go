package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tmarques/tripflow/backend/internal/domain"
	"github.com/tmarques/tripflow/backend/internal/ledger"
	"github.com/tmarques/tripflow/backend/internal/middleware"
)

// flexAmount decodes a monetary JSON value that may arrive as a number, a
// currency-formatted string ("₱50,000"), null, or an empty string. Anything
// non-numeric normalizes to zero via the ledger — clients predating the
// numeric budget field still send formatted strings.
type flexAmount float64

func (a *flexAmount) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*a = flexAmount(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = flexAmount(ledger.ParseAmount(s))
		return nil
	}
	*a = 0
	return nil
}

// tripRequest is the JSON body for creating or updating a trip.
type tripRequest struct {
	Title       string              `json:"title"`
	Destination string              `json:"destination"`
	StartDate   openapi_types.Date  `json:"startDate"`
	EndDate     *openapi_types.Date `json:"endDate,omitempty"`
	Budget      flexAmount          `json:"budget"`
	Companions  string              `json:"companions"`
	Status      string              `json:"status,omitempty"`
	Image       string              `json:"image,omitempty"`
}

// tripResponse wraps the assembled trip with date-only startDate/endDate
// fields. All other fields marshal straight off the assembled type.
type tripResponse struct {
	domain.AssembledTrip
	StartDate openapi_types.Date `json:"startDate"`
	EndDate   openapi_types.Date `json:"endDate"`
}

func toTripResponse(t domain.AssembledTrip) tripResponse {
	return tripResponse{
		AssembledTrip: t,
		StartDate:     openapi_types.Date{Time: t.StartDate},
		EndDate:       openapi_types.Date{Time: t.EndDate},
	}
}

// listTripsResponse is the paginated GET /trips envelope.
type listTripsResponse struct {
	Data       []tripResponse `json:"data"`
	Pagination pagination     `json:"pagination"`
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	var body tripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "request body must be valid JSON")
		return
	}

	created, err := s.trips.Create(r.Context(), requestToTrip(ownerID, "", body))
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, toTripResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20,
// max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	trips, total, err := s.trips.List(r.Context(), ownerID, params)
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = toTripResponse(t)
	}
	writeJSON(w, http.StatusOK, listTripsResponse{
		Data:       data,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	trip, err := s.trips.GetByID(r.Context(), chi.URLParam(r, "tripID"), ownerID)
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, toTripResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	var body tripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "request body must be valid JSON")
		return
	}

	updated, err := s.trips.Update(r.Context(), requestToTrip(ownerID, chi.URLParam(r, "tripID"), body))
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, toTripResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	if err := s.trips.Delete(r.Context(), chi.URLParam(r, "tripID"), ownerID); err != nil {
		respondError(w, r, err, "trip not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a request body into a domain.Trip. The budget is
// already normalized to a number by flexAmount; status strings pass through
// for the domain layer to normalize on read.
func requestToTrip(ownerID, id string, body tripRequest) domain.Trip {
	t := domain.Trip{
		ID:          id,
		OwnerID:     ownerID,
		Title:       body.Title,
		Destination: body.Destination,
		StartDate:   body.StartDate.Time,
		Budget:      float64(body.Budget),
		Companions:  body.Companions,
		Status:      domain.TripStatus(body.Status),
		Image:       body.Image,
	}
	if body.EndDate != nil {
		t.EndDate = body.EndDate.Time
	}
	return t
}

// queryInt parses an optional integer query parameter, returning nil when
// absent or malformed.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
