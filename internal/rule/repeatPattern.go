package rule

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/wheelibin/shutters/internal/constants"
	"github.com/wheelibin/shutters/internal/models"
)

type Weekday uint8

const (
	Mon Weekday = 1 << iota
	Tue
	Wed
	Thu
	Fri
	Sat
	Sun
)

// canonical order, also the order used when rendering a custom day list
var weekdayOrder = []Weekday{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

var weekdayTokens = map[Weekday]string{
	Mon: "Mon", Tue: "Tue", Wed: "Wed", Thu: "Thu", Fri: "Fri", Sat: "Sat", Sun: "Sun",
}

func (d Weekday) String() string {
	return weekdayTokens[d]
}

// WeekdayOf maps a time.Weekday onto the rule weekday.
func WeekdayOf(d time.Weekday) Weekday {
	if d == time.Sunday {
		return Sun
	}
	return weekdayOrder[int(d)-1]
}

// DaySet is an unordered set of weekdays.
type DaySet uint8

const (
	AllWeek     = DaySet(Mon | Tue | Wed | Thu | Fri | Sat | Sun)
	Weekend     = DaySet(Sat | Sun)
	WorkingWeek = DaySet(Mon | Tue | Wed | Thu | Fri)
	NoDays      = DaySet(0)
)

func NewDaySet(days ...Weekday) DaySet {
	var s DaySet
	for _, d := range days {
		s |= DaySet(d)
	}
	return s
}

// DaysFromTokens tests each canonical token in Mon..Sun order and includes the
// ones present in tokens. Unknown tokens are ignored.
func DaysFromTokens(tokens []string) DaySet {
	var s DaySet
	for _, d := range weekdayOrder {
		if lo.Contains(tokens, d.String()) {
			s |= DaySet(d)
		}
	}
	return s
}

func (s DaySet) Has(d Weekday) bool {
	return s&DaySet(d) != 0
}

func (s DaySet) IsEmpty() bool {
	return s == NoDays
}

// Days returns the members in Mon..Sun order.
func (s DaySet) Days() []Weekday {
	return lo.Filter(weekdayOrder, func(d Weekday, _ int) bool { return s.Has(d) })
}

func (s DaySet) Tokens() []string {
	return lo.Map(s.Days(), func(d Weekday, _ int) string { return d.String() })
}

// "Mon, Wed, Fri"
func (s DaySet) String() string {
	return strings.Join(s.Tokens(), ", ")
}

type DayGroup int

const (
	GroupCustom DayGroup = iota
	GroupAllWeek
	GroupWeekend
	GroupWeekdays
)

// Group classifies the set against the named presets, checked in priority
// order all week, weekend, weekdays.
func (s DaySet) Group() DayGroup {
	switch s {
	case AllWeek:
		return GroupAllWeek
	case Weekend:
		return GroupWeekend
	case WorkingWeek:
		return GroupWeekdays
	}
	return GroupCustom
}

func EncodeRepeatPattern(p RepeatPattern) (string, models.RepeatValue) {
	switch pattern := p.(type) {
	case Once:
		return constants.RepeatTypeOnce, models.DateValue(pattern.Date)
	case Weekdays:
		return constants.RepeatTypeWeekday, models.DaysValue(pattern.Days.Tokens()...)
	}
	return "", models.RepeatValue{}
}

// DecodeRepeatPattern returns nil for an unknown repeatType.
func DecodeRepeatPattern(repeatType string, value models.RepeatValue) RepeatPattern {
	switch repeatType {
	case constants.RepeatTypeOnce:
		return Once{Date: value.Date}
	case constants.RepeatTypeWeekday:
		return Weekdays{Days: DaysFromTokens(value.Days)}
	}
	return nil
}

// RepeatPhrase is the opening segment of a rule description.
func RepeatPhrase(p RepeatPattern) string {
	switch pattern := p.(type) {
	case Once:
		return fmt.Sprintf("On %s, ", pattern.Date)
	case Weekdays:
		switch pattern.Days.Group() {
		case GroupAllWeek:
			return "Everyday, "
		case GroupWeekend:
			return "On weekends, "
		case GroupWeekdays:
			return "During the week, "
		default:
			return fmt.Sprintf("Every %s, ", pattern.Days)
		}
	}
	return ""
}

// Matches reports whether the pattern fires on the given local date.
func Matches(p RepeatPattern, day time.Time) bool {
	switch pattern := p.(type) {
	case Once:
		return pattern.Date == day.Format(constants.OnceDateFormat)
	case Weekdays:
		return pattern.Days.Has(WeekdayOf(day.Weekday()))
	}
	return false
}
