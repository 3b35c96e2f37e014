package httpx

import (
	"net/http"

	"github.com/lifewood/adminhub/internal/domain/model"
	"github.com/lifewood/adminhub/internal/service"
)

// JobHandlers provides HTTP handlers for job listing management.
type JobHandlers struct {
	Svc       *service.JobListingService
	Dashboard *service.DashboardService
}

// List returns all published listings, newest first. The same payload backs
// both the public careers page and the admin manager.
// GET /api/jobs, GET /api/admin/jobs.
func (h *JobHandlers) List(w http.ResponseWriter, r *http.Request) {
	listings, err := h.Svc.List(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if listings == nil {
		listings = []model.JobListing{}
	}
	WriteJSON(w, http.StatusOK, listings)
}

// Get returns a single listing.
// GET /api/admin/jobs/{id}.
func (h *JobHandlers) Get(w http.ResponseWriter, r *http.Request) {
	listing, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, listing)
}

// Create publishes a new listing.
// POST /api/admin/jobs.
func (h *JobHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateJobListingRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	listing, err := h.Svc.Publish(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	h.invalidateDashboard(r)
	WriteJSON(w, http.StatusCreated, listing)
}

// Delete removes a listing; applications already submitted are untouched.
// DELETE /api/admin/jobs/{id}.
func (h *JobHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteServiceError(w, err)
		return
	}
	h.invalidateDashboard(r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *JobHandlers) invalidateDashboard(r *http.Request) {
	if h.Dashboard != nil {
		h.Dashboard.Invalidate(r.Context())
	}
}
