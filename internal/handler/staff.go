package handler

import (
	"net/http"

	"github.com/crewline/platform/internal/service"
)

// StaffHandler handles the public staff registration endpoint.
type StaffHandler struct {
	staffSvc       *service.StaffService
	maxUploadBytes int64
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(staffSvc *service.StaffService, maxUploadBytes int64) *StaffHandler {
	return &StaffHandler{staffSvc: staffSvc, maxUploadBytes: maxUploadBytes}
}

// Register handles POST /staff: a multipart registration form with optional
// resume and photo attachments.
func (h *StaffHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code":    "VALIDATION_ERROR",
			"message": "invalid multipart form",
		})
		return
	}

	input := service.RegisterStaffInput{
		FullName:         r.FormValue("full_name"),
		EmailOrWhatsapp:  r.FormValue("email_or_whatsapp"),
		PositionApplying: r.FormValue("position_applying"),
		Department:       r.FormValue("department"),
		YearsExperience:  r.FormValue("years_experience"),
		CurrentEmployer:  r.FormValue("current_employer"),
		Location:         r.FormValue("location"),
		AvailabilityDate: r.FormValue("availability_date"),
		ResumeFile:       readFormFile(r, "resume_file"),
		PhotoFile:        readFormFile(r, "photo_file"),
	}

	staff, err := h.staffSvc.Register(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"staff":        staff,
		"status_label": staff.StatusLabel(),
	})
}
