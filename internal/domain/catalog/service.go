package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ganot/committee/internal/apperror"
	"github.com/ganot/committee/internal/repository"
	"github.com/google/uuid"
)

// Service provides read access to motion rules and seeds the default set.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new catalog service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetType returns a motion type by ID.
func (s *Service) GetType(ctx context.Context, id string) (*MotionType, error) {
	mt, err := s.repo.GetType(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMotionTypeNotFound
		}
		return nil, apperror.Persistence("getting motion type", err)
	}
	return mt, nil
}

// GetSet returns a motion set by ID.
func (s *Service) GetSet(ctx context.Context, id string) (*MotionSet, error) {
	set, err := s.repo.GetSet(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMotionSetNotFound
		}
		return nil, apperror.Persistence("getting motion set", err)
	}
	return set, nil
}

// ListForOwner returns the motion types authored by ownerID.
func (s *Service) ListForOwner(ctx context.Context, ownerID string) ([]MotionType, error) {
	types, err := s.repo.ListTypesByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.Persistence("listing motion types", err)
	}
	if len(types) == 0 {
		return nil, ErrNoMotionTypes
	}
	return types, nil
}

// CreateDefaultSet seeds the canonical motion types for ownerID and groups
// them into a set named "Default".
func (s *Service) CreateDefaultSet(ctx context.Context, ownerID string) (*MotionSet, []MotionType, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, nil, apperror.Validation(apperror.FieldError{Field: "owner_id", Message: "owner is required"})
	}

	now := time.Now()
	types := DefaultMotionTypes()
	ids := make([]string, 0, len(types))
	for i := range types {
		types[i].ID = uuid.NewString()
		types[i].OwnerID = ownerID
		types[i].CreatedAt = now
		ids = append(ids, types[i].ID)
	}

	set := &MotionSet{
		ID:            uuid.NewString(),
		Name:          DefaultSetName,
		OwnerID:       ownerID,
		MotionTypeIDs: ids,
		CreatedAt:     now,
	}
	if err := s.repo.CreateSet(ctx, set, types); err != nil {
		return nil, nil, apperror.Persistence(fmt.Sprintf("creating default motion set for user %s", ownerID), err)
	}

	if s.logger != nil {
		s.logger.Info("default motion set created", "set_id", set.ID, "owner_id", ownerID)
	}
	return set, types, nil
}
