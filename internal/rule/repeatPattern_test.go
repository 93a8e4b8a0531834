package rule_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wheelibin/shutters/internal/models"
	"github.com/wheelibin/shutters/internal/rule"
)

func Test_DaySet_Group(t *testing.T) {

	tests := []struct {
		name     string
		tokens   []string
		expected rule.DayGroup
	}{
		{name: "all week", tokens: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, expected: rule.GroupAllWeek},
		{name: "weekend", tokens: []string{"Sat", "Sun"}, expected: rule.GroupWeekend},
		{name: "weekdays", tokens: []string{"Mon", "Tue", "Wed", "Thu", "Fri"}, expected: rule.GroupWeekdays},
		{name: "custom", tokens: []string{"Mon", "Wed"}, expected: rule.GroupCustom},
		{name: "weekdays plus saturday", tokens: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, expected: rule.GroupCustom},
		{name: "single day", tokens: []string{"Sun"}, expected: rule.GroupCustom},
	}

	rnd := rand.New(rand.NewSource(1))

	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			days := rule.DaysFromTokens(c.tokens)
			assert.Equal(t, c.expected, days.Group())

			// ordering of the source tokens never matters
			for i := 0; i < 10; i++ {
				shuffled := append([]string{}, c.tokens...)
				rnd.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
				assert.Equal(t, c.expected, rule.DaysFromTokens(shuffled).Group(), shuffled)
			}
		})
	}

}

func Test_DaysFromTokens(t *testing.T) {
	days := rule.DaysFromTokens([]string{"Sun", "Funday", "Mon", "Mon", "wed"})

	assert.Equal(t, []rule.Weekday{rule.Mon, rule.Sun}, days.Days())
	assert.Equal(t, []string{"Mon", "Sun"}, days.Tokens())
	assert.Equal(t, "Mon, Sun", days.String())
	assert.True(t, rule.DaysFromTokens(nil).IsEmpty())
}

func Test_RepeatPhrase(t *testing.T) {

	tests := []struct {
		name     string
		pattern  rule.RepeatPattern
		expected string
	}{
		{name: "all week", pattern: rule.Weekdays{Days: rule.AllWeek}, expected: "Everyday, "},
		{name: "weekend", pattern: rule.Weekdays{Days: rule.NewDaySet(rule.Sun, rule.Sat)}, expected: "On weekends, "},
		{name: "weekdays", pattern: rule.Weekdays{Days: rule.WorkingWeek}, expected: "During the week, "},
		{name: "custom in canonical order", pattern: rule.Weekdays{Days: rule.NewDaySet(rule.Fri, rule.Mon, rule.Wed)}, expected: "Every Mon, Wed, Fri, "},
		{name: "once", pattern: rule.Once{Date: "2024/06/01"}, expected: "On 2024/06/01, "},
		{name: "missing", pattern: nil, expected: ""},
	}

	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, rule.RepeatPhrase(c.pattern))
		})
	}

}

func Test_EncodeRepeatPattern(t *testing.T) {

	t.Run("once is a passthrough", func(t *testing.T) {
		repeatType, value := rule.EncodeRepeatPattern(rule.Once{Date: "2024/06/01"})
		assert.Equal(t, "once", repeatType)
		assert.Equal(t, models.DateValue("2024/06/01"), value)
		assert.Equal(t, rule.Once{Date: "2024/06/01"}, rule.DecodeRepeatPattern(repeatType, value))
	})

	t.Run("weekdays encode in canonical order", func(t *testing.T) {
		days := rule.NewDaySet(rule.Sun, rule.Tue)
		repeatType, value := rule.EncodeRepeatPattern(rule.Weekdays{Days: days})
		assert.Equal(t, "weekday", repeatType)
		assert.Equal(t, []string{"Tue", "Sun"}, value.Days)
		assert.Equal(t, rule.Weekdays{Days: days}, rule.DecodeRepeatPattern(repeatType, value))
	})

	t.Run("unknown repeat type", func(t *testing.T) {
		assert.Nil(t, rule.DecodeRepeatPattern("monthly", models.DateValue("1")))
	})

}

func Test_Matches(t *testing.T) {
	// 2024-06-01 is a Saturday
	saturday := time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)

	assert.True(t, rule.Matches(rule.Weekdays{Days: rule.Weekend}, saturday))
	assert.False(t, rule.Matches(rule.Weekdays{Days: rule.WorkingWeek}, saturday))
	assert.True(t, rule.Matches(rule.Weekdays{Days: rule.NewDaySet(rule.Sun)}, saturday.AddDate(0, 0, 1)))
	assert.True(t, rule.Matches(rule.Once{Date: "2024/06/01"}, saturday))
	assert.False(t, rule.Matches(rule.Once{Date: "2024/06/02"}, saturday))
	assert.False(t, rule.Matches(nil, saturday))
}
