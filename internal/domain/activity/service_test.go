package activity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/visitdesk/internal/domain/activity"
	"github.com/rpggio/visitdesk/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	entry := &activity.ActivityEntry{
		ActivityType: activity.TypeVisitScheduled,
		VisitID:      activity.Ref("v1"),
		CustomerID:   activity.Ref("p1"),
		Summary:      "scheduled",
	}

	repo.On("Log", ctx, entry).Return(nil)
	repo.On("List", ctx, activity.ListActivityOptions{CustomerID: activity.Ref("p1"), Limit: 50}).
		Return([]activity.ActivityEntry{*entry}, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.LogActivity(ctx, entry))
	require.False(t, entry.CreatedAt.IsZero())

	entries, err := svc.GetRecentActivity(ctx, activity.ListActivityOptions{CustomerID: activity.Ref("p1")})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	repo.AssertExpectations(t)
}

func TestActivityService_RejectsInvalidEntries(t *testing.T) {
	svc := activity.NewService(&mocks.ActivityRepository{}, nil)

	require.ErrorIs(t, svc.LogActivity(context.Background(), nil), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(context.Background(), &activity.ActivityEntry{ActivityType: "bogus"}), activity.ErrInvalidInput)
}

func TestActivityService_RecordSwallowsErrors(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	repo.On("Log", ctx, mock.Anything).Return(errors.New("disk full"))

	svc := activity.NewService(repo, nil)
	require.NotPanics(t, func() {
		svc.Record(ctx, &activity.ActivityEntry{ActivityType: activity.TypeTabSelected, Summary: "tab"})
	})
	repo.AssertNumberOfCalls(t, "Log", 1)
}

func TestEncodeDetails(t *testing.T) {
	require.Equal(t, "", activity.EncodeDetails(nil))
	require.JSONEq(t, `{"mode":"phone"}`, activity.EncodeDetails(map[string]any{"mode": "phone"}))
	require.Nil(t, activity.Ref(""))
	require.Equal(t, "x", *activity.Ref("x"))
}
