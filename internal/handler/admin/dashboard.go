package admin

import (
	"net/http"

	"github.com/crewline/platform/internal/auth"
	"github.com/crewline/platform/internal/handler"
	"github.com/crewline/platform/internal/service"
)

// DashboardHandler serves the admin overview of all applicants.
type DashboardHandler struct {
	crewSvc  *service.CrewService
	staffSvc *service.StaffService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(crewSvc *service.CrewService, staffSvc *service.StaffService) *DashboardHandler {
	return &DashboardHandler{crewSvc: crewSvc, staffSvc: staffSvc}
}

// Overview handles GET /admin/dashboard. The aggregate counts are recomputed
// from the current record set on every request.
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	crew, err := h.crewSvc.ListAll(r.Context())
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	staff, err := h.staffSvc.ListAll(r.Context())
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"admin": auth.AdminUsernameFromContext(r.Context()),
		"stats": service.ComputeDashboardStats(crew, staff),
		"crew":  crew,
		"staff": staff,
	})
}
