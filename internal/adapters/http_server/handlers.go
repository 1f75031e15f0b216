// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_allocation/internal/app"
	"hotel_allocation/internal/domain"
)

const maxBodyBytes = 8 << 20

type Handlers struct {
	Q       *app.QueryService
	S       *app.SolveService
	Limiter *TenantLimiter
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// solveRequest is the POST body; the tenant comes from the path.
type solveRequest struct {
	ID               string                `json:"id,omitempty"`
	Rooms            []domain.Room         `json:"rooms"`
	Bookings         []domain.GuestBooking `json:"bookings"`
	TimeLimitSeconds int                   `json:"timeLimitSeconds,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/constraints", h.listCatalog)
	s.mux.Get("/v1/tenants/{tenantID}/constraints", h.tenantConstraints)
	s.mux.Group(func(r chi.Router) {
		if h.Limiter != nil {
			r.Use(h.Limiter.Middleware)
		}
		r.Post("/v1/tenants/{tenantID}/solve", h.solve)
	})
	s.mux.Get("/v1/solutions/{id}", h.getSolution)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAllocation):
		writeProblem(w, http.StatusBadRequest, "Invalid Allocation", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrConfigLoad):
		writeProblem(w, http.StatusBadGateway, "Constraint Configuration Unavailable", err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeProblem(w, http.StatusServiceUnavailable, "Unavailable", "request cancelled before a solver slot was free")
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any, withETag bool) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "encode response")
		return
	}
	if withETag {
		// If client already has this version, short-circuit.
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
			w.Header().Set("ETag", etag)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func (h *Handlers) listCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.Q.Catalog(), true)
}

func (h *Handlers) tenantConstraints(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenantID")
	cfgs, err := h.Q.TenantConstraints(r.Context(), tenant)
	if err != nil {
		writeError(w, fmt.Errorf("%w: tenant %s: %w", domain.ErrConfigLoad, tenant, err))
		return
	}
	if cfgs == nil {
		cfgs = []domain.TenantConstraintConfig{}
	}
	writeJSON(w, r, http.StatusOK, cfgs, true)
}

func (h *Handlers) solve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if req.TimeLimitSeconds < 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "timeLimitSeconds must not be negative")
		return
	}

	in := domain.HotelAllocation{
		ID:       req.ID,
		TenantID: chi.URLParam(r, "tenantID"),
		Rooms:    req.Rooms,
		Bookings: req.Bookings,
	}
	out, err := h.S.Solve(r.Context(), in, time.Duration(req.TimeLimitSeconds)*time.Second)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/solutions/"+out.ID)
	writeJSON(w, r, http.StatusOK, out, false)
}

func (h *Handlers) getSolution(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.GetSolution(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out, true)
}
