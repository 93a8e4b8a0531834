package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RepeatValue holds either a date (repeatType "once") or a list of weekday
// tokens (repeatType "weekday"). On the wire it is a plain string or an array.
type RepeatValue struct {
	Date string
	Days []string
}

func DateValue(date string) RepeatValue {
	return RepeatValue{Date: date}
}

func DaysValue(days ...string) RepeatValue {
	return RepeatValue{Days: append([]string{}, days...)}
}

func (v RepeatValue) MarshalJSON() ([]byte, error) {
	if v.Days != nil {
		return json.Marshal(v.Days)
	}
	return json.Marshal(v.Date)
}

func (v *RepeatValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = RepeatValue{}
		return nil
	}

	if trimmed[0] == '[' {
		var days []string
		if err := json.Unmarshal(trimmed, &days); err != nil {
			return fmt.Errorf("error parsing repeat value days: %w", err)
		}
		*v = RepeatValue{Days: days}
		return nil
	}

	// anything that isn't a string (numbers, bools) is kept as its raw text
	var date string
	if err := json.Unmarshal(trimmed, &date); err != nil {
		date = string(trimmed)
	}
	*v = RepeatValue{Date: date}
	return nil
}
