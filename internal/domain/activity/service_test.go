package activity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ganot/committee/internal/apperror"
	"github.com/ganot/committee/internal/domain/activity"
	"github.com/ganot/committee/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_RecordAndList(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	started := activity.ActivityEntry{
		MeetingID:    "m1",
		ActorID:      "chair",
		ActivityType: activity.TypeMeetingStarted,
		Summary:      "started",
	}
	joined := activity.ActivityEntry{
		MeetingID:    "m1",
		ActorID:      "alice",
		ActivityType: activity.TypeMemberJoined,
		Summary:      "joined",
	}

	repo.On("Append", ctx, mock.MatchedBy(func(entries []activity.ActivityEntry) bool {
		return len(entries) == 2 &&
			entries[0].ActivityType == activity.TypeMeetingStarted &&
			entries[1].ActivityType == activity.TypeMemberJoined &&
			!entries[0].CreatedAt.IsZero() &&
			entries[0].CreatedAt.Equal(entries[1].CreatedAt)
	})).Return(nil)
	repo.On("List", ctx, activity.ListActivityOptions{MeetingID: "m1", Limit: 100}).
		Return([]activity.ActivityEntry{joined, started}, nil)

	svc := activity.NewService(repo, nil)
	recorded, err := svc.Record(ctx, started, joined)
	require.NoError(t, err)
	require.Len(t, recorded, 2)

	entries, err := svc.GetRecentActivity(ctx, activity.ListActivityOptions{MeetingID: "m1"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	repo.AssertExpectations(t)
}

func TestActivityService_RecordNothing(t *testing.T) {
	repo := &mocks.ActivityRepository{}
	svc := activity.NewService(repo, nil)

	recorded, err := svc.Record(context.Background())
	require.NoError(t, err)
	require.Nil(t, recorded)
	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestActivityService_RequiresMeeting(t *testing.T) {
	repo := &mocks.ActivityRepository{}
	svc := activity.NewService(repo, nil)

	_, err := svc.Record(context.Background(), activity.ActivityEntry{MeetingID: "m1"}, activity.ActivityEntry{})
	require.ErrorIs(t, err, apperror.ErrValidation)
	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)

	_, err = svc.GetRecentActivity(context.Background(), activity.ListActivityOptions{})
	require.ErrorIs(t, err, activity.ErrInvalidInput)
}

func TestActivityService_StoreFailures(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	repo.On("Append", ctx, mock.Anything).Return(errors.New("disk full"))
	repo.On("List", ctx, activity.ListActivityOptions{MeetingID: "m1", Limit: 5}).Return(nil, errors.New("boom"))

	svc := activity.NewService(repo, nil)
	_, err := svc.Record(ctx, activity.ActivityEntry{MeetingID: "m1"})
	require.ErrorIs(t, err, apperror.ErrPersistence)

	_, err = svc.GetRecentActivity(ctx, activity.ListActivityOptions{MeetingID: "m1", Limit: 5})
	require.ErrorIs(t, err, apperror.ErrPersistence)
}
