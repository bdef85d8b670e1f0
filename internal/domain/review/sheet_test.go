package review_test

import (
	"testing"

	"github.com/rpggio/visitdesk/internal/domain/review"
	"github.com/stretchr/testify/require"
)

func TestNewSheet_Defaults(t *testing.T) {
	prospect := review.NewSheet(false).Snapshot()
	require.Len(t, prospect.Tasks, 3)
	require.Empty(t, prospect.SelectedIDs)
	require.Empty(t, prospect.Coaching)
	require.Equal(t, review.DefaultNextDate, prospect.NextVisit.Date)
	require.Equal(t, review.DefaultNextTime, prospect.NextVisit.Time)

	existing := review.NewSheet(true).Snapshot()
	require.Len(t, existing.Coaching, 5)
}

func TestSheet_ToggleTask(t *testing.T) {
	s := review.NewSheet(false)

	s.ToggleTask(2)
	require.Equal(t, []int{2}, s.Snapshot().SelectedIDs)

	s.ToggleTask(2)
	s.ToggleTask(99)
	require.Empty(t, s.Snapshot().SelectedIDs)
}

func TestSheet_AddCustomTask(t *testing.T) {
	s := review.NewSheet(false)

	_, ok := s.AddCustomTask("   ", nil)
	require.False(t, ok)

	task, ok := s.AddCustomTask("寄送样品", nil)
	require.True(t, ok)
	require.Equal(t, 4, task.ID)
	require.True(t, task.IsCustom)
	require.True(t, task.IsSelected)
	require.Equal(t, review.AttachmentNone, task.FileType)

	task, ok = s.AddCustomTask("", &review.Attachment{Name: "报价单.pdf", Type: review.AttachmentFile})
	require.True(t, ok)
	require.Equal(t, "报价单.pdf", task.Text)
	require.Equal(t, "报价单.pdf", task.FileName)

	task, ok = s.AddCustomTask("", &review.Attachment{})
	require.True(t, ok)
	require.Equal(t, "未命名行动项", task.Text)

	view := s.Snapshot()
	require.Len(t, view.Tasks, 6)
	require.Equal(t, []int{4, 5, 6}, view.SelectedIDs)
}

func TestSheet_NextVisit(t *testing.T) {
	s := review.NewSheet(true)
	s.SetNextVisit("2025-12-20", "", "")

	next := s.NextVisit()
	require.Equal(t, "2025-12-20", next.Date)
	require.Equal(t, review.DefaultNextTime, next.Time)
	require.Equal(t, review.DefaultNextGoal, next.Goal)

	s.MarkScheduled()
	require.Equal(t, 1, s.Snapshot().ScheduledCount)
}
