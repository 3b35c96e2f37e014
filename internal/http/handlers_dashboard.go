package httpx

import (
	"net/http"

	"github.com/lifewood/adminhub/internal/service"
)

// DashboardHandlers provides HTTP handlers for the admin dashboard.
type DashboardHandlers struct {
	Svc *service.DashboardService
}

// Overview returns the dashboard snapshot: counts, latest entries, and
// chart series.
// GET /api/admin/dashboard.
func (h *DashboardHandlers) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Svc.Overview(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, overview)
}
