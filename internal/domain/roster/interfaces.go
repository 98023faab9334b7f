package roster

import (
	"context"

	"github.com/ganot/committee/internal/domain/user"
)

// Repository provides persistence for rosters.
type Repository interface {
	Create(ctx context.Context, r *Roster) error
	Get(ctx context.Context, id string) (*Roster, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, rosterID, userID string) error
	RemoveMember(ctx context.Context, rosterID, userID string) error
}

// UserReader resolves members.
type UserReader interface {
	Get(ctx context.Context, id string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
