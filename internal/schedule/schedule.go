package schedule

import (
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/wheelibin/shutters/internal/constants"
	"github.com/wheelibin/shutters/internal/rule"
)

// Entry is one rule firing on one day.
type Entry struct {
	RuleID     string
	ShutterIDs []string
	Action     rule.Action
	At         time.Time
}

// Plan holds what is left to fire today, grouped by "HH:MM".
type Plan struct {
	Day     time.Time
	Sunrise time.Time
	Sunset  time.Time

	slots map[string][]Entry
}

func newPlan(day time.Time, sunrise time.Time, sunset time.Time) *Plan {
	return &Plan{Day: day, Sunrise: sunrise, Sunset: sunset, slots: map[string][]Entry{}}
}

func (p *Plan) add(e Entry) {
	key := e.At.Format(constants.ClockFormat)
	p.slots[key] = append(p.slots[key], e)
}

// Slots lists the pending "HH:MM" keys in order.
func (p *Plan) Slots() []string {
	keys := lo.Keys(p.slots)
	sort.Strings(keys)
	return keys
}

func (p *Plan) Entries(slot string) []Entry {
	return p.slots[slot]
}

func (p *Plan) Len() int {
	return len(p.slots)
}

// Due removes and returns every entry whose slot is at or before now.
func (p *Plan) Due(now time.Time) []Entry {
	nowKey := now.Format(constants.ClockFormat)

	due := []Entry{}
	for _, key := range p.Slots() {
		if key > nowKey {
			break
		}
		due = append(due, p.slots[key]...)
		delete(p.slots, key)
	}
	return due
}

// SameDay reports whether the plan was built for the day t falls on.
func (p *Plan) SameDay(t time.Time) bool {
	y1, m1, d1 := p.Day.Date()
	y2, m2, d2 := t.In(p.Day.Location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
