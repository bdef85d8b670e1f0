// Package schedule turns user-supplied visit times into visit schedules.
//
// Parsing is layered:
//  1. Immediate sentinel (now, 现在)
//  2. Absolute timestamp (2025-12-05 14:00, 2025-12-05T14:00, 2025-12-05)
//  3. Compact duration (+2h, +1d, 1w)
//  4. Natural language (tomorrow, next friday 3pm)
package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/rpggio/visitdesk/internal/domain/visit"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"

	// DefaultClock is used when only a date is given.
	DefaultClock = "09:00"
)

var (
	// ErrEmptyInput is returned for blank input.
	ErrEmptyInput = errors.New("empty schedule")
	// ErrUnrecognized is returned when no layer understands the input.
	ErrUnrecognized = errors.New("unrecognized schedule")
)

var absoluteLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04",
}

var dateOnlyLayouts = []string{
	dateLayout,
	"2006/01/02",
}

// compactDurationRe matches [+]?(\d+)([hdw]). Visits are never scheduled in
// the past so negative offsets are rejected.
var compactDurationRe = regexp.MustCompile(`^\+?(\d+)([hdw])$`)

// Parser resolves schedule expressions relative to a clock.
type Parser struct {
	now func() time.Time
	loc *time.Location
	nlp *when.Parser
}

// NewParser creates a parser. A nil clock means time.Now.
func NewParser(now func() time.Time) *Parser {
	if now == nil {
		now = time.Now
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{now: now, loc: time.Local, nlp: w}
}

// Parse resolves input into a schedule.
func (p *Parser) Parse(input string) (visit.Schedule, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return visit.Schedule{}, ErrEmptyInput
	}

	if isImmediate(s) {
		return visit.Now, nil
	}

	if t, ok := p.parseAbsolute(s); ok {
		return fromTime(t), nil
	}
	if d, ok := p.parseDateOnly(s); ok {
		return visit.At(d.Format(dateLayout), DefaultClock), nil
	}

	now := p.now()
	if t, ok := parseCompactDuration(s, now); ok {
		return fromTime(t), nil
	}

	r, err := p.nlp.Parse(s, now)
	if err != nil {
		return visit.Schedule{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	if r == nil {
		return visit.Schedule{}, fmt.Errorf("%q: %w", s, ErrUnrecognized)
	}
	return fromTime(r.Time), nil
}

// ParseParts accepts a separate date and clock. An empty clock defaults to
// DefaultClock; an empty date delegates to Parse on the clock alone.
func (p *Parser) ParseParts(date, clock string) (visit.Schedule, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		return p.Parse(clock)
	}
	if clock == "" {
		clock = DefaultClock
	}
	return p.Parse(date + " " + clock)
}

func isImmediate(s string) bool {
	switch strings.ToLower(s) {
	case "now", "immediately", visit.NowLabel:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAbsolute(s string) (time.Time, bool) {
	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, s, p.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (p *Parser) parseDateOnly(s string) (time.Time, bool) {
	for _, layout := range dateOnlyLayouts {
		if t, err := time.ParseInLocation(layout, s, p.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseCompactDuration(s string, now time.Time) (time.Time, bool) {
	m := compactDurationRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	amount, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	switch m[2] {
	case "h":
		return now.Add(time.Duration(amount) * time.Hour), true
	case "d":
		return now.AddDate(0, 0, amount), true
	case "w":
		return now.AddDate(0, 0, amount*7), true
	}
	return time.Time{}, false
}

func fromTime(t time.Time) visit.Schedule {
	return visit.At(t.Format(dateLayout), t.Format(clockLayout))
}
