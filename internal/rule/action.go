package rule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wheelibin/shutters/internal/constants"
)

// e.g. Up{40} -> "up40", Down{0} -> "down"
func EncodeAction(a Action) string {
	switch action := a.(type) {
	case Up:
		return constants.CommandUp + percentSuffix(action.Percent)
	case Down:
		return constants.CommandDown + percentSuffix(action.Percent)
	case Stop:
		return constants.CommandStop
	}
	return ""
}

func percentSuffix(percent int) string {
	if percent > 0 {
		return strconv.Itoa(percent)
	}
	return ""
}

// DecodeAction returns nil when the value starts with none of the action literals.
func DecodeAction(value string) Action {
	switch {
	case strings.HasPrefix(value, constants.CommandUp):
		return Up{Percent: parsePercent(value[len(constants.CommandUp):])}
	case strings.HasPrefix(value, constants.CommandDown):
		return Down{Percent: parsePercent(value[len(constants.CommandDown):])}
	case strings.HasPrefix(value, constants.CommandStop):
		return Stop{}
	}
	return nil
}

func parsePercent(suffix string) int {
	percent, err := strconv.Atoi(strings.TrimSpace(suffix))
	if err != nil || percent < 0 {
		return 0
	}
	return percent
}

// LegacyBucket maps a decoded percent onto the choices offered by the editor.
// Older rules stored a run time in seconds instead of a percentage, small
// values are pushed up to the nearest choice. 0 and values from 30 pass through.
// Only for populating an editor, never while encoding.
func LegacyBucket(percent int) int {
	switch {
	case percent <= 0:
		return percent
	case percent < 10:
		return 10
	case percent < 20:
		return 20
	case percent < 25:
		return 25
	case percent < 30:
		return 30
	}
	return percent
}

// EditablePercent is the value to preselect in a percent chooser for the action.
func EditablePercent(a Action) int {
	switch action := a.(type) {
	case Up:
		return LegacyBucket(action.Percent)
	case Down:
		return LegacyBucket(action.Percent)
	}
	return 0
}

func ActionPhrase(a Action) string {
	switch action := a.(type) {
	case Up:
		return "rise " + percentPhrase(action.Percent)
	case Down:
		return "lower " + percentPhrase(action.Percent)
	case Stop:
		return "stop (my) "
	}
	return ""
}

func percentPhrase(percent int) string {
	if percent > 0 {
		return fmt.Sprintf("for %d%% ", percent)
	}
	return ""
}
