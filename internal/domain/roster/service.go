package roster

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

// Service manages rosters.
type Service struct {
	repo   Repository
	users  UserReader
	logger *slog.Logger
}

// NewService creates a new roster service.
func NewService(repo Repository, users UserReader, logger *slog.Logger) *Service {
	return &Service{repo: repo, users: users, logger: logger}
}

// Create creates a roster owned by callerID.
func (s *Service) Create(ctx context.Context, callerID string, req CreateRequest) (*Roster, error) {
	var fields apperror.Fields
	fields.Require("name", req.Name, "name is required")
	if req.Quorum < 0 {
		fields.Add("quorum", "quorum must not be negative")
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	members := make([]string, 0, len(req.MemberIDs))
	seen := make(map[string]bool, len(req.MemberIDs))
	for _, id := range req.MemberIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := s.users.Get(ctx, id); err != nil {
			return nil, err
		}
		members = append(members, id)
	}

	r := &Roster{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		OwnerID:   callerID,
		MemberIDs: members,
		Quorum:    req.Quorum,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, apperror.Persistence("creating roster", err)
	}

	if s.logger != nil {
		s.logger.Info("roster created", "roster_id", r.ID, "members", len(members))
	}
	return r, nil
}

// Get returns a roster by ID.
func (s *Service) Get(ctx context.Context, id string) (*Roster, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRosterNotFound
		}
		return nil, apperror.Persistence("getting roster", err)
	}
	return r, nil
}

// Delete removes a roster owned by callerID.
func (s *Service) Delete(ctx context.Context, callerID, id string) error {
	r, err := s.ownedRoster(ctx, callerID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, r.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRosterNotFound
		}
		return apperror.Persistence("deleting roster", err)
	}
	return nil
}

// AddMemberByEmail adds the user with email to the roster.
func (s *Service) AddMemberByEmail(ctx context.Context, callerID, id, email string) (*Roster, error) {
	r, err := s.ownedRoster(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if r.HasMember(u.ID) {
		return nil, ErrAlreadyMember
	}
	if err := s.repo.AddMember(ctx, r.ID, u.ID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyMember
		}
		return nil, apperror.Persistence(fmt.Sprintf("adding member to roster %s", r.ID), err)
	}
	r.MemberIDs = append(r.MemberIDs, u.ID)
	return r, nil
}

// RemoveMemberByEmail removes the user with email from the roster.
func (s *Service) RemoveMemberByEmail(ctx context.Context, callerID, id, email string) (*Roster, error) {
	r, err := s.ownedRoster(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !r.HasMember(u.ID) {
		return nil, ErrNotMember
	}
	if err := s.repo.RemoveMember(ctx, r.ID, u.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotMember
		}
		return nil, apperror.Persistence(fmt.Sprintf("removing member from roster %s", r.ID), err)
	}
	kept := r.MemberIDs[:0]
	for _, memberID := range r.MemberIDs {
		if memberID != u.ID {
			kept = append(kept, memberID)
		}
	}
	r.MemberIDs = kept
	return r, nil
}

func (s *Service) ownedRoster(ctx context.Context, callerID, id string) (*Roster, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.OwnerID != callerID {
		return nil, ErrNotOwner
	}
	return r, nil
}
