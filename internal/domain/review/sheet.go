package review

import "strings"

const (
	priorityHigh   = "高优先级"
	priorityCustom = "自定义"
	untitledTask   = "未命名行动项"
)

// Default next-visit draft shown when a review opens.
const (
	DefaultNextDate = "2025-12-08"
	DefaultNextTime = "10:00"
	DefaultNextGoal = "京东溯源防伪系统演示，仓网规划详细方案讲解"
)

// Sheet is the editable follow-up checklist of one open review.
type Sheet struct {
	tasks     []Task
	nextID    int
	next      NextVisitDraft
	coaching  []CoachMetric
	scheduled int
}

// NewSheet creates the default checklist. Coaching metrics are only shown for
// existing customers.
func NewSheet(isExisting bool) *Sheet {
	s := &Sheet{
		tasks: []Task{
			{ID: 1, Text: "发送智能物流网络解决方案详细资料", Priority: priorityHigh, FileName: "方案详细资料.pdf", FileType: AttachmentFile},
			{ID: 2, Text: "安排京东溯源防伪系统演示", Priority: priorityHigh, FileName: "Demo预约链接", FileType: AttachmentNone},
			{ID: 3, Text: "提供仓网规划 ROI 测算报告", Priority: priorityHigh, FileName: "ROI分析报告.xlsx", FileType: AttachmentFile},
		},
		nextID: 4,
		next:   NextVisitDraft{Date: DefaultNextDate, Time: DefaultNextTime, Goal: DefaultNextGoal},
	}
	if isExisting {
		s.coaching = []CoachMetric{
			{Label: "倾听深度", Score: 85, Icon: "👂"},
			{Label: "产品呈现", Score: 72, Icon: "💎"},
			{Label: "异议化解", Score: 90, Icon: "🛡️"},
			{Label: "客情共鸣", Score: 95, Icon: "❤️"},
			{Label: "商机捕捉", Score: 65, Icon: "🎯"},
		}
	}
	return s
}

// ToggleTask flips the selection of a task. Unknown ids are ignored.
func (s *Sheet) ToggleTask(id int) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].IsSelected = !s.tasks[i].IsSelected
			return
		}
	}
}

// AddCustomTask appends a selected custom task. The text falls back to the
// attachment name and then to a placeholder; with neither text nor attachment
// nothing is added.
func (s *Sheet) AddCustomTask(text string, attachment *Attachment) (Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" && attachment == nil {
		return Task{}, false
	}

	task := Task{
		ID:         s.nextID,
		Text:       text,
		Priority:   priorityCustom,
		FileType:   AttachmentNone,
		IsCustom:   true,
		IsSelected: true,
	}
	if attachment != nil {
		task.FileName = attachment.Name
		task.FileURL = attachment.URL
		if attachment.Type != "" {
			task.FileType = attachment.Type
		}
		if task.Text == "" {
			task.Text = attachment.Name
		}
	}
	if task.Text == "" {
		task.Text = untitledTask
	}

	s.nextID++
	s.tasks = append(s.tasks, task)
	return task, true
}

// SetNextVisit overrides the non-empty fields of the next-visit draft.
func (s *Sheet) SetNextVisit(date, clock, goal string) {
	if date != "" {
		s.next.Date = date
	}
	if clock != "" {
		s.next.Time = clock
	}
	if goal != "" {
		s.next.Goal = goal
	}
}

// NextVisit returns the current draft.
func (s *Sheet) NextVisit() NextVisitDraft {
	return s.next
}

// MarkScheduled records that a next visit was created from this sheet.
func (s *Sheet) MarkScheduled() {
	s.scheduled++
}

// Snapshot returns a copy safe to hand to callers.
func (s *Sheet) Snapshot() SheetView {
	view := SheetView{
		Tasks:          append([]Task(nil), s.tasks...),
		NextVisit:      s.next,
		Coaching:       append([]CoachMetric(nil), s.coaching...),
		ScheduledCount: s.scheduled,
	}
	for _, t := range s.tasks {
		if t.IsSelected {
			view.SelectedIDs = append(view.SelectedIDs, t.ID)
		}
	}
	return view
}

// SheetView is a read-only copy of a sheet.
type SheetView struct {
	Tasks          []Task         `json:"tasks"`
	SelectedIDs    []int          `json:"selected_ids"`
	NextVisit      NextVisitDraft `json:"next_visit"`
	Coaching       []CoachMetric  `json:"coaching,omitempty"`
	ScheduledCount int            `json:"scheduled_count"`
}
