package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nathan-osman/go-sunrise"
	"github.com/samber/lo"
	"github.com/wheelibin/shutters/internal/models"
	"github.com/wheelibin/shutters/internal/rule"
)

// SunLimits optionally clamps the calculated sunrise and sunset, "" leaves
// that side open. Values are "HH:MM".
type SunLimits struct {
	SunriseMin string `mapstructure:"sunriseMin"`
	SunriseMax string `mapstructure:"sunriseMax"`
	SunsetMin  string `mapstructure:"sunsetMin"`
	SunsetMax  string `mapstructure:"sunsetMax"`
}

type ScheduleService struct {
	logger    *log.Logger
	latitude  float64
	longitude float64
	limits    SunLimits
}

func NewScheduleService(logger *log.Logger, latitude float64, longitude float64, limits SunLimits) *ScheduleService {
	return &ScheduleService{logger: logger, latitude: latitude, longitude: longitude, limits: limits}
}

// CalculateSunriseSunset returns the day's sunrise and sunset in the day's
// location, clamped to the configured limits.
func (s *ScheduleService) CalculateSunriseSunset(baseDate time.Time) (time.Time, time.Time) {
	rise, set := sunrise.SunriseSunset(
		s.latitude, s.longitude,
		baseDate.Year(), baseDate.Month(), baseDate.Day(),
	)
	rise = rise.In(baseDate.Location())
	set = set.In(baseDate.Location())

	rise = clamp(rise, s.limits.SunriseMin, s.limits.SunriseMax, baseDate)
	set = clamp(set, s.limits.SunsetMin, s.limits.SunsetMax, baseDate)

	s.logger.Info("Calculated local sunrise and sunset",
		"sunrise", rise.Format("15:04"),
		"sunset", set.Format("15:04"),
	)
	return rise, set
}

// BuildPlan works out what is still to fire on now's day: only active rules
// whose repeat pattern matches the day, at a time not before from.
func (s *ScheduleService) BuildPlan(schedule map[string]models.EncodedRule, now time.Time, from time.Time) *Plan {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	rise, set := s.CalculateSunriseSunset(day)
	plan := newPlan(day, rise, set)

	ids := lo.Keys(schedule)
	sort.Slice(ids, func(i, j int) bool { return idLess(ids[i], ids[j]) })

	for _, id := range ids {
		r := rule.Decode(id, schedule[id])
		if !r.Active || !rule.Matches(r.RepeatPattern, day) || r.Action == nil {
			continue
		}

		at, err := TimeFromTrigger(r.TimeTrigger, rise, set, day)
		if err != nil {
			s.logger.Warn("skipping schedule", "id", id, "err", err)
			continue
		}
		if !plan.SameDay(at) {
			s.logger.Warn("skipping schedule, its time falls on another day", "id", id, "at", at)
			continue
		}
		if at.Before(from) {
			continue
		}

		plan.add(Entry{RuleID: id, ShutterIDs: r.TargetIDs, Action: r.Action, At: at})
	}

	s.logger.Debug("Built plan", "day", day.Format("2006-01-02"), "slots", plan.Slots())
	return plan
}

// TimeFromTrigger places a trigger on the given day.
func TimeFromTrigger(trigger rule.TimeTrigger, sunrise time.Time, sunset time.Time, baseDate time.Time) (time.Time, error) {
	switch t := trigger.(type) {
	case rule.Clock:
		return TimeFromConfigTimeString(t.Value, baseDate)
	case rule.Astro:
		anchor := sunrise
		if t.Anchor == rule.Sunset {
			anchor = sunset
		}
		return anchor.Add(time.Duration(t.OffsetMinutes) * time.Minute), nil
	}
	return time.Time{}, fmt.Errorf("no time trigger")
}

// returns a Time object built from the supplied time string (e.g. "06:30") and a base date
func TimeFromConfigTimeString(timeString string, baseDate time.Time) (time.Time, error) {
	timeHM := strings.Split(timeString, ":")
	if len(timeHM) != 2 {
		return time.Time{}, fmt.Errorf("invalid time %q", timeString)
	}
	hour, err := strconv.Atoi(timeHM[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("invalid hour in %q", timeString)
	}
	mins, err := strconv.Atoi(timeHM[1])
	if err != nil || mins < 0 || mins > 59 {
		return time.Time{}, fmt.Errorf("invalid minutes in %q", timeString)
	}
	return time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), hour, mins, 0, 0, baseDate.Location()), nil
}

func clamp(t time.Time, min string, max string, baseDate time.Time) time.Time {
	if min != "" {
		if limit, err := TimeFromConfigTimeString(min, baseDate); err == nil && t.Before(limit) {
			t = limit
		}
	}
	if max != "" {
		if limit, err := TimeFromConfigTimeString(max, baseDate); err == nil && t.After(limit) {
			t = limit
		}
	}
	return t
}

func idLess(a, b string) bool {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil {
		return ai < bi
	}
	return a < b
}
