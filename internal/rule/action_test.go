package rule_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wheelibin/shutters/internal/rule"
)

func Test_EncodeAction(t *testing.T) {

	tests := []struct {
		action   rule.Action
		expected string
	}{
		{action: rule.Up{Percent: 0}, expected: "up"},
		{action: rule.Up{Percent: 40}, expected: "up40"},
		{action: rule.Up{Percent: 100}, expected: "up100"},
		{action: rule.Down{Percent: 0}, expected: "down"},
		{action: rule.Down{Percent: 25}, expected: "down25"},
		{action: rule.Stop{}, expected: "stop"},
	}

	for _, c := range tests {
		t.Run(c.expected, func(t *testing.T) {
			encoded := rule.EncodeAction(c.action)
			assert.Equal(t, c.expected, encoded)
			assert.Equal(t, c.action, rule.DecodeAction(encoded))
		})
	}

}

func Test_DecodeAction(t *testing.T) {

	tests := []struct {
		value    string
		expected rule.Action
	}{
		{value: "up", expected: rule.Up{Percent: 0}},
		{value: "up 30", expected: rule.Up{Percent: 30}},
		{value: "upx", expected: rule.Up{Percent: 0}},
		{value: "up-5", expected: rule.Up{Percent: 0}},
		{value: "down7", expected: rule.Down{Percent: 7}},
		{value: "downwards", expected: rule.Down{Percent: 0}},
		{value: "stop", expected: rule.Stop{}},
		{value: "stop50", expected: rule.Stop{}},
		{value: "open", expected: nil},
		{value: "", expected: nil},
	}

	for _, c := range tests {
		t.Run(fmt.Sprintf("%q", c.value), func(t *testing.T) {
			assert.Equal(t, c.expected, rule.DecodeAction(c.value))
		})
	}

}

func Test_LegacyBucket(t *testing.T) {

	tests := []struct {
		percent  int
		expected int
	}{
		{percent: 0, expected: 0},
		{percent: 1, expected: 10},
		{percent: 7, expected: 10},
		{percent: 9, expected: 10},
		{percent: 10, expected: 20},
		{percent: 19, expected: 20},
		{percent: 20, expected: 25},
		{percent: 24, expected: 25},
		{percent: 25, expected: 30},
		{percent: 29, expected: 30},
		{percent: 30, expected: 30},
		{percent: 40, expected: 40},
		{percent: 100, expected: 100},
	}

	for _, c := range tests {
		t.Run(fmt.Sprint(c.percent), func(t *testing.T) {
			assert.Equal(t, c.expected, rule.LegacyBucket(c.percent))
		})
	}

	t.Run("idempotent from 30 and at 0", func(t *testing.T) {
		for _, p := range []int{0, 30, 31, 50, 75, 100} {
			assert.Equal(t, rule.LegacyBucket(p), rule.LegacyBucket(rule.LegacyBucket(p)), p)
		}
	})

	t.Run("never applied by encode", func(t *testing.T) {
		assert.Equal(t, "up7", rule.EncodeAction(rule.Up{Percent: 7}))
	})

}

func Test_EditablePercent(t *testing.T) {
	assert.Equal(t, 10, rule.EditablePercent(rule.Up{Percent: 7}))
	assert.Equal(t, 25, rule.EditablePercent(rule.Down{Percent: 24}))
	assert.Equal(t, 40, rule.EditablePercent(rule.Down{Percent: 40}))
	assert.Equal(t, 0, rule.EditablePercent(rule.Stop{}))
}

func Test_ActionPhrase(t *testing.T) {
	assert.Equal(t, "rise ", rule.ActionPhrase(rule.Up{}))
	assert.Equal(t, "rise for 40% ", rule.ActionPhrase(rule.Up{Percent: 40}))
	assert.Equal(t, "lower ", rule.ActionPhrase(rule.Down{}))
	assert.Equal(t, "lower for 25% ", rule.ActionPhrase(rule.Down{Percent: 25}))
	assert.Equal(t, "stop (my) ", rule.ActionPhrase(rule.Stop{}))
	assert.Equal(t, "", rule.ActionPhrase(nil))
}
