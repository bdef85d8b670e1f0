package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/visitdesk/internal/domain/activity"
	"github.com/rpggio/visitdesk/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	entry1 := &activity.ActivityEntry{
		ActivityType: activity.TypeVisitScheduled,
		VisitID:      activity.Ref("v1"),
		CustomerID:   activity.Ref("p1"),
		Summary:      "Scheduled visit",
		Details:      `{"mode":"phone"}`,
	}
	entry2 := &activity.ActivityEntry{
		ActivityType: activity.TypeSessionStarted,
		VisitID:      activity.Ref("v1"),
		CustomerID:   activity.Ref("p1"),
		Summary:      "Started session",
	}

	require.NoError(t, repo.Log(ctx, entry1))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.Log(ctx, entry2))
	require.NotZero(t, entry1.ID)

	entries, err := repo.List(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, entry2.ActivityType, entries[0].ActivityType)
	require.Equal(t, entry1.ActivityType, entries[1].ActivityType)
	require.Equal(t, "v1", *entries[1].VisitID)
	require.Equal(t, `{"mode":"phone"}`, entries[1].Details)
}

func TestActivityRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)

	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeReviewClosed,
		CustomerID:   activity.Ref("e2"),
		Summary:      "closed",
	}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeReviewOpened,
		CustomerID:   activity.Ref("e2"),
		Summary:      "opened",
	}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeTabSelected,
		Summary:      "tab",
	}))

	closed := activity.TypeReviewClosed
	entries, err := repo.List(ctx, activity.ListActivityOptions{
		CustomerID:   activity.Ref("e2"),
		ActivityType: &closed,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Nil(t, entries[0].VisitID)

	entries, err = repo.List(ctx, activity.ListActivityOptions{CustomerID: activity.Ref("e2")})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	entries, err = repo.List(ctx, activity.ListActivityOptions{VisitID: activity.Ref("none")})
	require.NoError(t, err)
	require.Len(t, entries, 0)
}

func TestActivityRepository_Pagination(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
			ActivityType: activity.TypeTabSelected,
			Summary:      "tab",
		}))
	}

	entries, err := repo.List(ctx, activity.ListActivityOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Offset: 4})
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestActivityRepository_RejectsUnknownType(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)

	err := repo.Log(context.Background(), &activity.ActivityEntry{ActivityType: "bogus", Summary: "x"})
	require.ErrorIs(t, err, repository.ErrInvalidInput)

	require.ErrorIs(t, repo.Log(context.Background(), nil), repository.ErrInvalidInput)
}
