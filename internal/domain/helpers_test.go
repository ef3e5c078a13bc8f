package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

func createValidUserID(t *testing.T) domain.UserID {
	t.Helper()

	id, err := domain.UserIDFromUUID(uuid.Must(uuid.NewV7()))
	require.NoError(t, err)

	return id
}

func createAssignment(t *testing.T, userID domain.UserID, due *time.Time, mutate func(*assignmentFields)) *domain.Assignment {
	t.Helper()

	f := assignmentFields{
		status:   domain.AssignmentStatusPending,
		reminder: true,
		email:    true,
		push:     true,
	}
	if mutate != nil {
		mutate(&f)
	}

	id, err := domain.AssignmentIDFromUUID(uuid.New())
	require.NoError(t, err)

	return domain.ReconstituteAssignment(id, userID, "Essay", due, f.status, f.reminder, f.email, f.push)
}

type assignmentFields struct {
	status   domain.AssignmentStatus
	reminder bool
	email    bool
	push     bool
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

func ptrBool(b bool) *bool {
	return &b
}
