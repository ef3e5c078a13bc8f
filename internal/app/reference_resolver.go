package app

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

// AssignmentResolver resolves Assignment references through the lookup
// table. A missing assignment resolves to nil.
func AssignmentResolver(repo domain.AssignmentRepository) domain.ResolveFunc {
	return func(ctx context.Context, userID domain.UserID, id uuid.UUID) (domain.ReferenceTarget, error) {
		assignmentID, err := domain.AssignmentIDFromUUID(id)
		if err != nil {
			return nil, nil
		}

		assignment, err := repo.FindByID(ctx, userID, assignmentID)
		if errors.Is(err, domain.ErrAssignmentNotFound) {
			return nil, nil
		}

		if err != nil {
			return nil, err
		}

		return assignment, nil
	}
}

func NewReferenceResolver(repos domain.Repositories) *domain.ReferenceResolver {
	resolver := domain.NewReferenceResolver()
	resolver.Register(domain.ReferenceKindAssignment, AssignmentResolver(repos.Assignments))

	return resolver
}
