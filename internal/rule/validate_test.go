package rule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wheelibin/shutters/internal/rule"
)

func validRule() rule.ScheduleRule {
	return rule.ScheduleRule{
		Active:        true,
		TimeTrigger:   rule.Clock{Value: "07:30"},
		RepeatPattern: rule.Weekdays{Days: rule.WorkingWeek},
		Action:        rule.Up{Percent: 0},
		TargetIDs:     []string{"S1"},
	}
}

func Test_Validate(t *testing.T) {

	tests := []struct {
		name   string
		modify func(r *rule.ScheduleRule)
		valid  bool
	}{
		{name: "valid", modify: func(r *rule.ScheduleRule) {}, valid: true},
		{name: "astro at the limit", modify: func(r *rule.ScheduleRule) { r.TimeTrigger = rule.Astro{Anchor: rule.Sunset, OffsetMinutes: -300} }, valid: true},
		{name: "astro beyond the limit", modify: func(r *rule.ScheduleRule) { r.TimeTrigger = rule.Astro{Anchor: rule.Sunset, OffsetMinutes: 301} }},
		{name: "bad clock", modify: func(r *rule.ScheduleRule) { r.TimeTrigger = rule.Clock{Value: "7.30pm"} }},
		{name: "no trigger", modify: func(r *rule.ScheduleRule) { r.TimeTrigger = nil }},
		{name: "no days", modify: func(r *rule.ScheduleRule) { r.RepeatPattern = rule.Weekdays{} }},
		{name: "no date", modify: func(r *rule.ScheduleRule) { r.RepeatPattern = rule.Once{} }},
		{name: "no pattern", modify: func(r *rule.ScheduleRule) { r.RepeatPattern = nil }},
		{name: "percent too big", modify: func(r *rule.ScheduleRule) { r.Action = rule.Down{Percent: 101} }},
		{name: "negative percent", modify: func(r *rule.ScheduleRule) { r.Action = rule.Up{Percent: -1} }},
		{name: "stop", modify: func(r *rule.ScheduleRule) { r.Action = rule.Stop{} }, valid: true},
		{name: "no action", modify: func(r *rule.ScheduleRule) { r.Action = nil }},
		{name: "no targets", modify: func(r *rule.ScheduleRule) { r.TargetIDs = nil }},
	}

	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			r := validRule()
			c.modify(&r)
			err := r.Validate()
			if c.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, rule.ErrInvalidRule)
			}
		})
	}

}
