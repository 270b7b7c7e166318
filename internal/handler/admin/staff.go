package admin

import (
	"context"
	"net/http"

	"github.com/crewline/platform/internal/domain"
	"github.com/crewline/platform/internal/handler"
	"github.com/crewline/platform/internal/service"
)

// StaffAdminHandler handles admin staff review and outcome actions.
type StaffAdminHandler struct {
	staffSvc *service.StaffService
}

// NewStaffAdminHandler creates a new StaffAdminHandler.
func NewStaffAdminHandler(staffSvc *service.StaffService) *StaffAdminHandler {
	return &StaffAdminHandler{staffSvc: staffSvc}
}

// List handles GET /admin/staff.
func (h *StaffAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.staffSvc.ListAll(r.Context())
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, members)
}

// Detail handles GET /admin/staff/{id}.
func (h *StaffAdminHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	staff, err := h.staffSvc.Get(r.Context(), id)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"staff":        staff,
		"status_label": staff.StatusLabel(),
	})
}

// Approve handles POST /admin/staff/{id}/approve.
func (h *StaffAdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.staffSvc.Approve)
}

// Reject handles POST /admin/staff/{id}/reject.
func (h *StaffAdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.staffSvc.Reject)
}

func (h *StaffAdminHandler) setStatus(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id int64) (*domain.StaffMember, error)) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	staff, err := apply(r.Context(), id)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"staff":        staff,
		"status_label": staff.StatusLabel(),
	})
}
