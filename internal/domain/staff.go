package domain

import "time"

// StaffStatus is the processing stage of a shore staff application. Staff
// skip the crew document pipeline: they start in Screening and go straight
// to Approved or Rejected.
type StaffStatus int

const (
	StaffRejected  StaffStatus = -1
	StaffScreening StaffStatus = 1
	StaffApproved  StaffStatus = 3
)

// Valid reports whether s is one of the three known staff statuses.
func (s StaffStatus) Valid() bool {
	switch s {
	case StaffRejected, StaffScreening, StaffApproved:
		return true
	}
	return false
}

// Label returns the display name for a status.
func (s StaffStatus) Label() string {
	switch s {
	case StaffScreening:
		return "Screening"
	case StaffApproved:
		return "Approved"
	case StaffRejected:
		return "Rejected"
	}
	return "Unknown"
}

// StaffMember is a shore-based applicant.
type StaffMember struct {
	ID               int64       `json:"id"`
	FullName         string      `json:"full_name"`
	EmailOrWhatsapp  string      `json:"email_or_whatsapp"`
	PositionApplying string      `json:"position_applying"`
	Department       string      `json:"department"`
	YearsExperience  *int        `json:"years_experience,omitempty"`
	CurrentEmployer  string      `json:"current_employer,omitempty"`
	Location         string      `json:"location,omitempty"`
	AvailabilityDate *time.Time  `json:"availability_date,omitempty"`
	ResumeFile       string      `json:"resume_file,omitempty"`
	PhotoFile        string      `json:"photo_file,omitempty"`
	Status           StaffStatus `json:"status"`
	Version          int64       `json:"version"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// StatusLabel returns the display name of the member's current status.
func (s *StaffMember) StatusLabel() string { return s.Status.Label() }
