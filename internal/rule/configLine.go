package rule

import (
	"fmt"
	"strings"

	"github.com/wheelibin/shutters/internal/constants"
	"github.com/wheelibin/shutters/internal/models"
)

const (
	configLineFieldSep = ","
	configLineListSep  = "|"
	configLineFields   = 7
)

// FormatConfigLine renders the persisted single line form of a rule:
// active,repeatType,repeatValue,timeType,timeValue,shutterAction,id1|id2
func FormatConfigLine(e models.EncodedRule) string {
	repeatValue := e.RepeatValue.Date
	if e.RepeatType == constants.RepeatTypeWeekday {
		repeatValue = strings.Join(e.RepeatValue.Days, configLineListSep)
	}
	return strings.Join([]string{
		e.Active,
		e.RepeatType,
		repeatValue,
		e.TimeType,
		e.TimeValue,
		e.ShutterAction,
		strings.Join(e.ShutterIds, configLineListSep),
	}, configLineFieldSep)
}

// ParseConfigLine is the inverse of FormatConfigLine. It only fails when the
// line doesn't have seven fields, the values themselves are not checked.
func ParseConfigLine(line string) (models.EncodedRule, error) {
	parts := strings.Split(strings.TrimSpace(line), configLineFieldSep)
	if len(parts) != configLineFields {
		return models.EncodedRule{}, fmt.Errorf("config line %q has %d fields, expected %d", line, len(parts), configLineFields)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	e := models.EncodedRule{
		Active:        parts[0],
		RepeatType:    parts[1],
		TimeType:      parts[3],
		TimeValue:     parts[4],
		ShutterAction: parts[5],
		ShutterIds:    splitList(parts[6]),
	}
	if e.RepeatType == constants.RepeatTypeWeekday {
		e.RepeatValue = models.DaysValue(splitList(parts[2])...)
	} else {
		e.RepeatValue = models.DateValue(parts[2])
	}
	return e, nil
}

func splitList(value string) []string {
	if value == "" {
		return []string{}
	}
	return strings.Split(value, configLineListSep)
}
