package mocks

import (
	"context"

	"github.com/ganot/committee/internal/domain/activity"
	"github.com/ganot/committee/internal/domain/catalog"
	"github.com/ganot/committee/internal/domain/roster"
	"github.com/ganot/committee/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

// CatalogRepository is a mock for catalog.Repository.
type CatalogRepository struct {
	mock.Mock
}

func (m *CatalogRepository) CreateSet(ctx context.Context, set *catalog.MotionSet, types []catalog.MotionType) error {
	args := m.Called(ctx, set, types)
	return args.Error(0)
}

func (m *CatalogRepository) GetType(ctx context.Context, id string) (*catalog.MotionType, error) {
	args := m.Called(ctx, id)
	if mt, ok := args.Get(0).(*catalog.MotionType); ok {
		return mt, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogRepository) ListTypesByOwner(ctx context.Context, ownerID string) ([]catalog.MotionType, error) {
	args := m.Called(ctx, ownerID)
	if list, ok := args.Get(0).([]catalog.MotionType); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogRepository) GetSet(ctx context.Context, id string) (*catalog.MotionSet, error) {
	args := m.Called(ctx, id)
	if set, ok := args.Get(0).(*catalog.MotionSet); ok {
		return set, args.Error(1)
	}
	return nil, args.Error(1)
}

// UserRepository is a mock for user.Repository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// RosterRepository is a mock for roster.Repository.
type RosterRepository struct {
	mock.Mock
}

func (m *RosterRepository) Create(ctx context.Context, r *roster.Roster) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *RosterRepository) Get(ctx context.Context, id string) (*roster.Roster, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*roster.Roster); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RosterRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RosterRepository) AddMember(ctx context.Context, rosterID, userID string) error {
	args := m.Called(ctx, rosterID, userID)
	return args.Error(0)
}

func (m *RosterRepository) RemoveMember(ctx context.Context, rosterID, userID string) error {
	args := m.Called(ctx, rosterID, userID)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Append(ctx context.Context, entries []activity.ActivityEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
