package rule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wheelibin/shutters/internal/constants"
)

const (
	sunriseLiteral = "sunrise"
	sunsetLiteral  = "sunset"
)

// EncodeTimeTrigger returns the timeType and timeValue fields for a trigger,
// e.g. Astro{Sunset, -15} -> ("astro", "sunset-15")
func EncodeTimeTrigger(t TimeTrigger) (string, string) {
	switch trigger := t.(type) {
	case Clock:
		return constants.TimeTypeClock, trigger.Value
	case Astro:
		value := trigger.Anchor.String()
		switch {
		case trigger.OffsetMinutes > 0:
			value += "+" + strconv.Itoa(trigger.OffsetMinutes)
		case trigger.OffsetMinutes < 0:
			value += strconv.Itoa(trigger.OffsetMinutes)
		}
		return constants.TimeTypeAstro, value
	}
	return "", ""
}

// ParseTimeValue recovers a trigger from a timeValue alone.
// Anything that doesn't start with an anchor is taken to be a clock time.
func ParseTimeValue(value string) TimeTrigger {
	if strings.HasPrefix(value, sunriseLiteral) {
		return Astro{Anchor: Sunrise, OffsetMinutes: parseOffset(value[len(sunriseLiteral):])}
	}
	if strings.HasPrefix(value, sunsetLiteral) {
		return Astro{Anchor: Sunset, OffsetMinutes: parseOffset(value[len(sunsetLiteral):])}
	}
	return Clock{Value: value}
}

// DecodeTimeTrigger returns nil for an unknown timeType.
func DecodeTimeTrigger(timeType string, timeValue string) TimeTrigger {
	switch timeType {
	case constants.TimeTypeClock:
		return Clock{Value: timeValue}
	case constants.TimeTypeAstro:
		return ParseTimeValue(timeValue)
	}
	return nil
}

// "+15" -> 15, "-15" -> -15, "" or junk -> 0
func parseOffset(remainder string) int {
	offset, err := strconv.Atoi(strings.TrimPrefix(remainder, "+"))
	if err != nil {
		return 0
	}
	return offset
}

// TimePhrase is the time segment of a rule description, nil renders nothing.
func TimePhrase(t TimeTrigger) string {
	switch trigger := t.(type) {
	case Clock:
		return fmt.Sprintf("at %s, ", trigger.Value)
	case Astro:
		anchor := trigger.Anchor.String()
		switch {
		case trigger.OffsetMinutes > 0:
			return fmt.Sprintf("%d minutes after %s, ", trigger.OffsetMinutes, anchor)
		case trigger.OffsetMinutes < 0:
			return fmt.Sprintf("%d minutes before %s, ", -trigger.OffsetMinutes, anchor)
		default:
			return fmt.Sprintf("at %s, ", anchor)
		}
	}
	return ""
}
