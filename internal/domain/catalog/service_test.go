package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ganot/committee/internal/apperror"
	"github.com/ganot/committee/internal/domain/catalog"
	"github.com/ganot/committee/internal/repository"
	"github.com/ganot/committee/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_CreateDefaultSet(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.CatalogRepository{}
	repo.On("CreateSet", ctx, mock.AnythingOfType("*catalog.MotionSet"), mock.AnythingOfType("[]catalog.MotionType")).Return(nil)

	svc := catalog.NewService(repo, nil)
	set, types, err := svc.CreateDefaultSet(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, catalog.DefaultSetName, set.Name)
	require.Equal(t, "u1", set.OwnerID)
	require.Len(t, types, 5)
	require.Len(t, set.MotionTypeIDs, 5)
	for _, mt := range types {
		require.True(t, set.Contains(mt.ID))
		require.Equal(t, "u1", mt.OwnerID)
	}
	repo.AssertExpectations(t)
}

func TestCatalogService_CreateDefaultSetRequiresOwner(t *testing.T) {
	svc := catalog.NewService(&mocks.CatalogRepository{}, nil)
	_, _, err := svc.CreateDefaultSet(context.Background(), " ")
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCatalogService_NotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.CatalogRepository{}
	repo.On("GetType", ctx, "missing").Return((*catalog.MotionType)(nil), repository.ErrNotFound)
	repo.On("GetSet", ctx, "missing").Return((*catalog.MotionSet)(nil), repository.ErrNotFound)
	repo.On("ListTypesByOwner", ctx, "u1").Return([]catalog.MotionType{}, nil)

	svc := catalog.NewService(repo, nil)
	_, err := svc.GetType(ctx, "missing")
	require.ErrorIs(t, err, catalog.ErrMotionTypeNotFound)
	_, err = svc.GetSet(ctx, "missing")
	require.ErrorIs(t, err, catalog.ErrMotionSetNotFound)
	_, err = svc.ListForOwner(ctx, "u1")
	require.ErrorIs(t, err, catalog.ErrNoMotionTypes)
}

func TestCatalogService_StoreFailure(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("database is locked")

	repo := &mocks.CatalogRepository{}
	repo.On("GetType", ctx, "t1").Return((*catalog.MotionType)(nil), cause)

	svc := catalog.NewService(repo, nil)
	_, err := svc.GetType(ctx, "t1")
	require.ErrorIs(t, err, apperror.ErrPersistence)
	require.ErrorIs(t, err, cause)
}

func TestDefaultMotionTypes(t *testing.T) {
	types := catalog.DefaultMotionTypes()
	byName := map[string]catalog.MotionType{}
	for _, mt := range types {
		byName[mt.Name] = mt
	}

	amend := byName[catalog.AmendName]
	require.True(t, amend.IsAmendment())
	require.Equal(t, catalog.ClassSubsidiary, amend.Class)
	require.Equal(t, 6, amend.Precedence)

	inquiry := byName["Point of Parliamentary Inquiry"]
	require.Equal(t, catalog.ClassIncidental, inquiry.Class)
	require.False(t, inquiry.RequiresSecond)
	require.False(t, inquiry.Votable())

	require.Equal(t, catalog.ThresholdTwoThirds, byName["Motion to Close Debate"].Threshold)
	require.Equal(t, catalog.DebatableLimited, byName["Motion to Limit Debate"].Debatable)
	require.True(t, byName["Main Motion"].Votable())
}
