package service

import "github.com/crewline/platform/internal/domain"

// DashboardStats are the aggregate counts shown on the admin dashboard.
// They are derived from the current record set on every query, never stored.
type DashboardStats struct {
	TotalRegistrations int `json:"total_registrations"`
	CrewInScreening    int `json:"crew_in_screening"`
	StaffInScreening   int `json:"staff_in_screening"`
	ApprovedProfiles   int `json:"approved_profiles"`
}

// ComputeDashboardStats recomputes the dashboard aggregates.
func ComputeDashboardStats(crew []domain.CrewMember, staff []domain.StaffMember) DashboardStats {
	stats := DashboardStats{
		TotalRegistrations: len(crew) + len(staff),
	}
	for _, c := range crew {
		switch c.Status {
		case domain.CrewScreening:
			stats.CrewInScreening++
		case domain.CrewApproved:
			stats.ApprovedProfiles++
		}
	}
	for _, s := range staff {
		switch s.Status {
		case domain.StaffScreening:
			stats.StaffInScreening++
		case domain.StaffApproved:
			stats.ApprovedProfiles++
		}
	}
	return stats
}
