package rule

import (
	"errors"
	"fmt"
	"time"

	"github.com/wheelibin/shutters/internal/constants"
)

const MaxOffsetMinutes = 300

var ErrInvalidRule = errors.New("rule: invalid")

// Validate checks a rule built by a user before it is encoded and submitted.
// Decoded rules are never validated, decoding stays lenient.
func (r ScheduleRule) Validate() error {
	switch trigger := r.TimeTrigger.(type) {
	case Clock:
		if _, err := time.Parse(constants.ClockFormat, trigger.Value); err != nil {
			return fmt.Errorf("%w: clock time %q is not HH:MM", ErrInvalidRule, trigger.Value)
		}
	case Astro:
		if trigger.OffsetMinutes < -MaxOffsetMinutes || trigger.OffsetMinutes > MaxOffsetMinutes {
			return fmt.Errorf("%w: offset %d is outside ±%d minutes", ErrInvalidRule, trigger.OffsetMinutes, MaxOffsetMinutes)
		}
	default:
		return fmt.Errorf("%w: missing time trigger", ErrInvalidRule)
	}

	switch pattern := r.RepeatPattern.(type) {
	case Once:
		if pattern.Date == "" {
			return fmt.Errorf("%w: missing date", ErrInvalidRule)
		}
	case Weekdays:
		if pattern.Days.IsEmpty() {
			return fmt.Errorf("%w: no weekdays selected", ErrInvalidRule)
		}
	default:
		return fmt.Errorf("%w: missing repeat pattern", ErrInvalidRule)
	}

	switch action := r.Action.(type) {
	case Up:
		if err := validatePercent(action.Percent); err != nil {
			return err
		}
	case Down:
		if err := validatePercent(action.Percent); err != nil {
			return err
		}
	case Stop:
	default:
		return fmt.Errorf("%w: missing action", ErrInvalidRule)
	}

	if len(r.TargetIDs) == 0 {
		return fmt.Errorf("%w: no shutters selected", ErrInvalidRule)
	}

	return nil
}

func validatePercent(percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: percent %d is outside 0-100", ErrInvalidRule, percent)
	}
	return nil
}
