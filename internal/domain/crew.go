package domain

import "time"

// CrewStatus is the processing stage of a crew application.
type CrewStatus int

const (
	CrewRejected          CrewStatus = -1
	CrewRegistered        CrewStatus = 0
	CrewScreening         CrewStatus = 1
	CrewDocumentsVerified CrewStatus = 2
	CrewApproved          CrewStatus = 3
)

// crewAdvance is the forward transition table. Rejected and Approved have no
// forward successor.
var crewAdvance = map[CrewStatus]CrewStatus{
	CrewRegistered:        CrewScreening,
	CrewScreening:         CrewDocumentsVerified,
	CrewDocumentsVerified: CrewApproved,
}

// Valid reports whether s is one of the five known crew statuses.
func (s CrewStatus) Valid() bool {
	switch s {
	case CrewRejected, CrewRegistered, CrewScreening, CrewDocumentsVerified, CrewApproved:
		return true
	}
	return false
}

// Label returns the display name for a status. Only the four forward states
// have labels; Rejected and any out-of-domain value render as "Unknown"
// rather than panicking on bad data.
func (s CrewStatus) Label() string {
	switch s {
	case CrewRegistered:
		return "Registered"
	case CrewScreening:
		return "Screening"
	case CrewDocumentsVerified:
		return "Documents Verified"
	case CrewApproved:
		return "Approved"
	}
	return "Unknown"
}

// NextCrewStatus computes the result of advancing from the current status.
//
// Approved is final: advancing reports final=true with the status unchanged.
// Rejected applications cannot re-enter the forward pipeline; the only way
// back is an explicit Approve. Any unknown status is also an error.
func NextCrewStatus(current CrewStatus) (next CrewStatus, final bool, err error) {
	if current == CrewApproved {
		return CrewApproved, true, nil
	}
	if current == CrewRejected {
		return current, false, ErrValidation("rejected application cannot be advanced")
	}
	next, ok := crewAdvance[current]
	if !ok {
		return current, false, ErrValidation("application status is unknown")
	}
	return next, false, nil
}

// CrewMember is a seafaring applicant tracked through the approval pipeline.
type CrewMember struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Rank             string     `json:"rank"`
	Passport         string     `json:"passport"`
	Nationality      string     `json:"nationality,omitempty"`
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	YearsExperience  *int       `json:"years_experience,omitempty"`
	LastVesselType   string     `json:"last_vessel_type,omitempty"`
	AvailabilityDate *time.Time `json:"availability_date,omitempty"`
	PassportFile     string     `json:"passport_file,omitempty"`
	CDCFile          string     `json:"cdc_file,omitempty"`
	ResumeFile       string     `json:"resume_file,omitempty"`
	PhotoFile        string     `json:"photo_file,omitempty"`
	Status           CrewStatus `json:"status"`
	Version          int64      `json:"version"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// StatusLabel returns the display name of the member's current status.
func (c *CrewMember) StatusLabel() string { return c.Status.Label() }
