package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelibin/shutters/internal/models"
)

func Test_RepeatValue_Unmarshal(t *testing.T) {

	tests := []struct {
		json     string
		expected models.RepeatValue
	}{
		{json: `"2024/12/24"`, expected: models.DateValue("2024/12/24")},
		{json: `["Mon","Fri"]`, expected: models.DaysValue("Mon", "Fri")},
		{json: `[]`, expected: models.DaysValue()},
		{json: `null`, expected: models.RepeatValue{}},
		{json: `20241224`, expected: models.DateValue("20241224")},
	}

	for _, c := range tests {
		t.Run(c.json, func(t *testing.T) {
			var v models.RepeatValue
			require.NoError(t, json.Unmarshal([]byte(c.json), &v))
			assert.Equal(t, c.expected, v)
		})
	}

}

func Test_RepeatValue_Marshal(t *testing.T) {
	data, err := json.Marshal(models.DaysValue())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	data, err = json.Marshal(models.DateValue("2024/12/24"))
	require.NoError(t, err)
	assert.JSONEq(t, `"2024/12/24"`, string(data))
}

func Test_CommandRequest_Flattens(t *testing.T) {
	req := models.CommandRequest{
		ID: "4",
		EncodedRule: models.EncodedRule{
			Active:        "active",
			RepeatType:    "weekday",
			RepeatValue:   models.DaysValue("Sat", "Sun"),
			TimeType:      "astro",
			TimeValue:     "sunset-15",
			ShutterAction: "down",
			ShutterIds:    []string{"S1"},
		},
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "4",
		"active": "active",
		"repeatType": "weekday",
		"repeatValue": ["Sat", "Sun"],
		"timeType": "astro",
		"timeValue": "sunset-15",
		"shutterAction": "down",
		"shutterIds": ["S1"]
	}`, string(data))
}
