// Package httpserver exposes the inspection API over plain HTTP for local
// development, mirroring the Lambda surface route for route.
package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/propertypulse/inspection-platform/internal/apperr"
	"github.com/propertypulse/inspection-platform/internal/httpx"
	"github.com/propertypulse/inspection-platform/internal/imagegrant"
	"github.com/propertypulse/inspection-platform/internal/inspection"
	"github.com/propertypulse/inspection-platform/internal/models"
	"github.com/propertypulse/inspection-platform/internal/report"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Router binds the services to the HTTP route table.
type Router struct {
	inspections *inspection.Service
	reports     *report.Generator
	grants      *imagegrant.Service
	timeout     time.Duration
}

// NewRouter builds the chi handler. timeout bounds each request's downstream
// calls; zero disables the bound.
func NewRouter(insp *inspection.Service, gen *report.Generator, grants *imagegrant.Service, timeout time.Duration) http.Handler {
	r := &Router{inspections: insp, reports: gen, grants: grants, timeout: timeout}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.Post("/inspections", r.wrap(r.handleCreate))
	mux.Get("/inspections", r.wrap(r.handleList))
	mux.Get("/inspections/{inspectionId}", r.wrap(r.handleGet))
	mux.Put("/inspections/{inspectionId}", r.wrap(r.handleUpdate))
	mux.Post("/inspections/{inspectionId}/report", r.wrap(r.handleReport))
	mux.Post("/presigned-url", r.wrap(r.handlePresign))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		if r.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.timeout)
			defer cancel()
			req = req.WithContext(ctx)
		}
		if err := h(w, req); err != nil {
			status := httpx.StatusOf(err)
			msg := err.Error()
			if status == http.StatusInternalServerError {
				msg = "Internal server error"
			}
			writeJSON(w, status, map[string]string{"error": msg})
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// POST /inspections
func (r *Router) handleCreate(w http.ResponseWriter, req *http.Request) error {
	var in inspection.CreateInput
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		return apperr.Validation("invalid json")
	}
	insp, err := r.inspections.Create(req.Context(), in)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "Inspection created successfully",
		"inspection": insp,
	})
	return nil
}

// GET /inspections/{inspectionId}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	insp, err := r.inspections.Get(req.Context(), chi.URLParam(req, "inspectionId"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"inspection": insp})
	return nil
}

// GET /inspections?status=X
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	result, err := r.inspections.List(req.Context(), req.URL.Query().Get("status"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, result)
	return nil
}

// PUT /inspections/{inspectionId}
func (r *Router) handleUpdate(w http.ResponseWriter, req *http.Request) error {
	var p models.Patch
	if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
		return apperr.Validation("invalid json")
	}
	insp, err := r.inspections.Update(req.Context(), chi.URLParam(req, "inspectionId"), p)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Inspection updated successfully",
		"inspection": insp,
	})
	return nil
}

// POST /inspections/{inspectionId}/report
func (r *Router) handleReport(w http.ResponseWriter, req *http.Request) error {
	rep, err := r.reports.Generate(req.Context(), chi.URLParam(req, "inspectionId"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Report generated successfully",
		"report":  rep,
	})
	return nil
}

// POST /presigned-url
func (r *Router) handlePresign(w http.ResponseWriter, req *http.Request) error {
	var in imagegrant.Request
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		return apperr.Validation("invalid json")
	}
	grant, err := r.grants.Issue(req.Context(), in)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, grant)
	return nil
}
