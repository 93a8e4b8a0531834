package rule

import (
	"github.com/wheelibin/shutters/internal/constants"
	"github.com/wheelibin/shutters/internal/models"
)

// Encode flattens a rule into its wire fields. The rule id is not part of the
// encoded form, it travels alongside it.
func Encode(r ScheduleRule) models.EncodedRule {
	timeType, timeValue := EncodeTimeTrigger(r.TimeTrigger)
	repeatType, repeatValue := EncodeRepeatPattern(r.RepeatPattern)
	return models.EncodedRule{
		Active:        activeValue(r.Active),
		RepeatType:    repeatType,
		RepeatValue:   repeatValue,
		TimeType:      timeType,
		TimeValue:     timeValue,
		ShutterAction: EncodeAction(r.Action),
		ShutterIds:    append([]string{}, r.TargetIDs...),
	}
}

// Decode never fails. Fields it cannot make sense of come back as nil variants.
func Decode(id string, e models.EncodedRule) ScheduleRule {
	return ScheduleRule{
		ID:            id,
		Active:        e.Active != constants.RulePaused,
		TimeTrigger:   DecodeTimeTrigger(e.TimeType, e.TimeValue),
		RepeatPattern: DecodeRepeatPattern(e.RepeatType, e.RepeatValue),
		Action:        DecodeAction(e.ShutterAction),
		TargetIDs:     append([]string{}, e.ShutterIds...),
	}
}

func activeValue(active bool) string {
	if active {
		return constants.RuleActive
	}
	return constants.RulePaused
}
