package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextCrewStatus_ForwardSequence(t *testing.T) {
	status := CrewRegistered
	var seen []CrewStatus

	for i := 0; i < 5; i++ {
		next, final, err := NextCrewStatus(status)
		require.NoError(t, err)
		if final {
			break
		}
		status = next
		seen = append(seen, status)
	}

	assert.Equal(t, []CrewStatus{CrewScreening, CrewDocumentsVerified, CrewApproved}, seen)
	assert.Equal(t, CrewApproved, status)
}

func TestNextCrewStatus_ApprovedIsFinalNoOp(t *testing.T) {
	next, final, err := NextCrewStatus(CrewApproved)
	require.NoError(t, err)
	assert.True(t, final)
	assert.Equal(t, CrewApproved, next)
}

func TestNextCrewStatus_RejectedCannotAdvance(t *testing.T) {
	_, _, err := NextCrewStatus(CrewRejected)
	require.Error(t, err)

	appErr, ok := err.(*AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestNextCrewStatus_UnknownStatus(t *testing.T) {
	_, _, err := NextCrewStatus(CrewStatus(99))
	assert.Error(t, err)
}

func TestCrewStatusLabels(t *testing.T) {
	tests := []struct {
		name   string
		status CrewStatus
		want   string
	}{
		{"registered", CrewRegistered, "Registered"},
		{"screening", CrewScreening, "Screening"},
		{"documents verified", CrewDocumentsVerified, "Documents Verified"},
		{"approved", CrewApproved, "Approved"},
		{"rejected has no forward label", CrewRejected, "Unknown"},
		{"out of domain high", CrewStatus(99), "Unknown"},
		{"out of domain low", CrewStatus(-5), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Label())
		})
	}
}

func TestCrewStatusValid(t *testing.T) {
	assert.True(t, CrewRegistered.Valid())
	assert.True(t, CrewRejected.Valid())
	assert.False(t, CrewStatus(99).Valid())
	assert.False(t, CrewStatus(4).Valid())
}

// Rejection is reversible only by an explicit approve; this documents the
// un-reject path rather than leaving it implicit.
func TestRejectThenApprove(t *testing.T) {
	crew := &CrewMember{Status: CrewDocumentsVerified}

	crew.Status = CrewRejected
	_, _, err := NextCrewStatus(crew.Status)
	require.Error(t, err)

	crew.Status = CrewApproved
	assert.Equal(t, "Approved", crew.StatusLabel())
}
