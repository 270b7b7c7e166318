package handler

import (
	"io"
	"net/http"

	"github.com/crewline/platform/internal/service"
	"github.com/go-chi/chi/v5"
)

// CrewHandler handles the public crew registration and tracking endpoints.
type CrewHandler struct {
	crewSvc        *service.CrewService
	maxUploadBytes int64
}

// NewCrewHandler creates a new CrewHandler.
func NewCrewHandler(crewSvc *service.CrewService, maxUploadBytes int64) *CrewHandler {
	return &CrewHandler{crewSvc: crewSvc, maxUploadBytes: maxUploadBytes}
}

// Register handles POST /crew: a multipart registration form with up to four
// document attachments.
func (h *CrewHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code":    "VALIDATION_ERROR",
			"message": "invalid multipart form",
		})
		return
	}

	input := service.RegisterCrewInput{
		Name:             r.FormValue("name"),
		Rank:             r.FormValue("rank"),
		Passport:         r.FormValue("passport"),
		Nationality:      r.FormValue("nationality"),
		DateOfBirth:      r.FormValue("date_of_birth"),
		YearsExperience:  r.FormValue("years_experience"),
		LastVesselType:   r.FormValue("last_vessel_type"),
		AvailabilityDate: r.FormValue("availability_date"),
		PassportFile:     readFormFile(r, "passport_file"),
		CDCFile:          readFormFile(r, "cdc_file"),
		ResumeFile:       readFormFile(r, "resume_file"),
		PhotoFile:        readFormFile(r, "photo_file"),
	}

	crew, err := h.crewSvc.Register(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"crew":         crew,
		"status_label": crew.StatusLabel(),
	})
}

// Track handles GET /track/{passport}: public status self-tracking. The
// response is a summary without file references.
func (h *CrewHandler) Track(w http.ResponseWriter, r *http.Request) {
	crew, err := h.crewSvc.FindByPassport(r.Context(), chi.URLParam(r, "passport"))
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"name":         crew.Name,
		"rank":         crew.Rank,
		"passport":     crew.Passport,
		"status":       crew.Status,
		"status_label": crew.StatusLabel(),
		"created_at":   crew.CreatedAt,
		"updated_at":   crew.UpdatedAt,
	})
}

// readFormFile loads a single uploaded file from the parsed multipart form.
// A missing or unreadable part counts as no file supplied.
func readFormFile(r *http.Request, key string) *service.FileUpload {
	file, header, err := r.FormFile(key)
	if err != nil {
		return nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		return nil
	}
	return &service.FileUpload{Data: data, Filename: header.Filename}
}
