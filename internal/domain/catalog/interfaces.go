package catalog

import "context"

// Repository provides persistence for motion types and sets.
type Repository interface {
	CreateSet(ctx context.Context, set *MotionSet, types []MotionType) error
	GetType(ctx context.Context, id string) (*MotionType, error)
	ListTypesByOwner(ctx context.Context, ownerID string) ([]MotionType, error)
	GetSet(ctx context.Context, id string) (*MotionSet, error)
}
