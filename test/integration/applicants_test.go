//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/crewline/platform/test/integration/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crewForm(passport string) map[string]string {
	return map[string]string{
		"name":              "Arjun Nair",
		"rank":              "Chief Officer",
		"passport":          passport,
		"nationality":       "Indian",
		"date_of_birth":     "1988-04-12",
		"years_experience":  "12",
		"last_vessel_type":  "Bulk Carrier",
		"availability_date": "2026-10-01",
	}
}

type crewResponse struct {
	Crew struct {
		ID           int64  `json:"id"`
		Name         string `json:"name"`
		Passport     string `json:"passport"`
		Status       int    `json:"status"`
		Version      int64  `json:"version"`
		PassportFile string `json:"passport_file"`
		ResumeFile   string `json:"resume_file"`
	} `json:"crew"`
	StatusLabel  string `json:"status_label"`
	AlreadyFinal bool   `json:"already_final"`
}

func TestCrewRegistration_Success(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.PostMultipart("/crew", crewForm("z1234567"), []testutil.MultipartFile{
		{Field: "passport_file", Filename: "passport scan.PDF", Content: []byte("%PDF-1.4 fake")},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var result crewResponse
	env.DecodeBody(resp, &result)
	assert.Equal(t, "Z1234567", result.Crew.Passport)
	assert.Equal(t, 0, result.Crew.Status)
	assert.Equal(t, "Registered", result.StatusLabel)
	assert.NotEmpty(t, result.Crew.PassportFile)

	var count int
	env.Pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM crew_members WHERE passport = 'Z1234567'").Scan(&count)
	assert.Equal(t, 1, count)
}

func TestCrewRegistration_MissingRequiredField(t *testing.T) {
	env := testutil.NewTestEnv(t)

	form := crewForm("Z1234567")
	delete(form, "rank")

	resp := env.PostMultipart("/crew", form, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.DrainBody(resp), "VALIDATION_ERROR")
}

func TestCrewRegistration_DuplicatePassport(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.PostMultipart("/crew", crewForm("AB123456"), nil)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Passport matching is case-insensitive.
	resp = env.PostMultipart("/crew", crewForm("ab123456"), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCrewRegistration_DisallowedAttachmentDropped(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.PostMultipart("/crew", crewForm("CD123456"), []testutil.MultipartFile{
		{Field: "resume_file", Filename: "resume.exe", Content: []byte("MZ not a resume")},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var result crewResponse
	env.DecodeBody(resp, &result)
	assert.Empty(t, result.Crew.ResumeFile)
}

func TestTrack_PublicStatusSummary(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.PostMultipart("/crew", crewForm("EF123456"), []testutil.MultipartFile{
		{Field: "passport_file", Filename: "scan.pdf", Content: []byte("%PDF-1.4")},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Lookup is case-insensitive on the passport number.
	resp = env.GET("/track/ef123456")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var summary map[string]json.RawMessage
	env.DecodeBody(resp, &summary)
	assert.Contains(t, summary, "status_label")
	assert.Contains(t, summary, "passport")
	// The public summary never exposes stored file references.
	assert.NotContains(t, summary, "passport_file")
	assert.NotContains(t, summary, "resume_file")
}

func TestTrack_UnknownPassport(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.GET("/track/GH123456")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCrewPipeline_AdvanceToApproved(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("harbor_master", "correct-horse-battery")

	resp := env.PostMultipart("/crew", crewForm("JK123456"), nil)
	var created crewResponse
	env.DecodeBody(resp, &created)
	id := created.Crew.ID

	path := "/admin/crew/" + itoa(id) + "/advance"
	wantLabels := []string{"Screening", "Documents Verified", "Approved"}
	for _, want := range wantLabels {
		resp := env.AuthPOST(path, nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var step crewResponse
		env.DecodeBody(resp, &step)
		assert.Equal(t, want, step.StatusLabel)
		assert.False(t, step.AlreadyFinal)
	}

	// Advancing an approved application is a no-op, flagged as final.
	resp = env.AuthPOST(path, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var final crewResponse
	env.DecodeBody(resp, &final)
	assert.True(t, final.AlreadyFinal)
	assert.Equal(t, "Approved", final.StatusLabel)
}

func TestCrewPipeline_RejectedCannotAdvance(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("harbor_master", "correct-horse-battery")

	resp := env.PostMultipart("/crew", crewForm("LM123456"), nil)
	var created crewResponse
	env.DecodeBody(resp, &created)
	id := created.Crew.ID

	resp = env.AuthPOST("/admin/crew/"+itoa(id)+"/reject", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rejected crewResponse
	env.DecodeBody(resp, &rejected)
	assert.Equal(t, -1, rejected.Crew.Status)
	// Rejected crew records have no forward-pipeline label.
	assert.Equal(t, "Unknown", rejected.StatusLabel)

	resp = env.AuthPOST("/admin/crew/"+itoa(id)+"/advance", nil, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// An explicit approve un-rejects the application.
	resp = env.AuthPOST("/admin/crew/"+itoa(id)+"/approve", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var approved crewResponse
	env.DecodeBody(resp, &approved)
	assert.Equal(t, "Approved", approved.StatusLabel)
}

func TestStaffRegistration_AndReview(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("harbor_master", "correct-horse-battery")

	resp := env.PostMultipart("/staff", map[string]string{
		"full_name":         "Meera Pillai",
		"email_or_whatsapp": "meera@example.com",
		"position_applying": "Crewing Executive",
		"department":        "Operations",
		"years_experience":  "6",
	}, []testutil.MultipartFile{
		{Field: "resume_file", Filename: "cv.docx", Content: []byte("resume bytes")},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Staff struct {
			ID         int64  `json:"id"`
			Status     int    `json:"status"`
			ResumeFile string `json:"resume_file"`
		} `json:"staff"`
		StatusLabel string `json:"status_label"`
	}
	env.DecodeBody(resp, &created)
	assert.Equal(t, 1, created.Staff.Status)
	assert.Equal(t, "Screening", created.StatusLabel)
	assert.NotEmpty(t, created.Staff.ResumeFile)

	resp = env.AuthPOST("/admin/staff/"+itoa(created.Staff.ID)+"/approve", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var approved struct {
		StatusLabel string `json:"status_label"`
	}
	env.DecodeBody(resp, &approved)
	assert.Equal(t, "Approved", approved.StatusLabel)
}

func TestDashboard_Counts(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("harbor_master", "correct-horse-battery")

	resp := env.PostMultipart("/crew", crewForm("NP123456"), nil)
	var crew crewResponse
	env.DecodeBody(resp, &crew)

	resp = env.PostMultipart("/staff", map[string]string{
		"full_name":         "Meera Pillai",
		"email_or_whatsapp": "meera@example.com",
		"position_applying": "Crewing Executive",
		"department":        "Operations",
	}, nil)
	resp.Body.Close()

	// Move the crew application into screening so it shows up in that count.
	resp = env.AuthPOST("/admin/crew/"+itoa(crew.Crew.ID)+"/advance", nil, token)
	resp.Body.Close()

	resp = env.AuthGET("/admin/dashboard", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dash struct {
		Stats struct {
			TotalRegistrations int `json:"total_registrations"`
			CrewInScreening    int `json:"crew_in_screening"`
			StaffInScreening   int `json:"staff_in_screening"`
			ApprovedProfiles   int `json:"approved_profiles"`
		} `json:"stats"`
	}
	env.DecodeBody(resp, &dash)
	assert.Equal(t, 2, dash.Stats.TotalRegistrations)
	assert.Equal(t, 1, dash.Stats.CrewInScreening)
	assert.Equal(t, 1, dash.Stats.StaffInScreening)
	assert.Equal(t, 0, dash.Stats.ApprovedProfiles)
}

func TestAdminFileDownload(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("harbor_master", "correct-horse-battery")

	content := []byte("%PDF-1.4 passport scan")
	resp := env.PostMultipart("/crew", crewForm("QR123456"), []testutil.MultipartFile{
		{Field: "passport_file", Filename: "passport.pdf", Content: content},
	})
	var created crewResponse
	env.DecodeBody(resp, &created)
	require.NotEmpty(t, created.Crew.PassportFile)

	resp = env.AuthGET("/admin/files/crew/"+created.Crew.PassportFile, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, string(content), env.DrainBody(resp))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
