package admin

import (
	"context"
	"net/http"
	"strconv"

	"github.com/crewline/platform/internal/domain"
	"github.com/crewline/platform/internal/handler"
	"github.com/crewline/platform/internal/service"
	"github.com/go-chi/chi/v5"
)

// CrewAdminHandler handles admin crew review and pipeline actions.
type CrewAdminHandler struct {
	crewSvc *service.CrewService
}

// NewCrewAdminHandler creates a new CrewAdminHandler.
func NewCrewAdminHandler(crewSvc *service.CrewService) *CrewAdminHandler {
	return &CrewAdminHandler{crewSvc: crewSvc}
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidation("invalid record id")
	}
	return id, nil
}

// List handles GET /admin/crew.
func (h *CrewAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.crewSvc.ListAll(r.Context())
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, members)
}

// Detail handles GET /admin/crew/{id}.
func (h *CrewAdminHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	crew, err := h.crewSvc.Get(r.Context(), id)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"crew":         crew,
		"status_label": crew.StatusLabel(),
	})
}

// Advance handles POST /admin/crew/{id}/advance.
func (h *CrewAdminHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	crew, alreadyFinal, err := h.crewSvc.Advance(r.Context(), id)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"crew":          crew,
		"status_label":  crew.StatusLabel(),
		"already_final": alreadyFinal,
	})
}

// Approve handles POST /admin/crew/{id}/approve.
func (h *CrewAdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.crewSvc.Approve)
}

// Reject handles POST /admin/crew/{id}/reject.
func (h *CrewAdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.crewSvc.Reject)
}

func (h *CrewAdminHandler) setStatus(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id int64) (*domain.CrewMember, error)) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	crew, err := apply(r.Context(), id)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"crew":         crew,
		"status_label": crew.StatusLabel(),
	})
}
