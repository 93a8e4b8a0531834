package config_test

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelibin/shutters/internal/config"
	"github.com/wheelibin/shutters/internal/models"
	"github.com/wheelibin/shutters/internal/schedule"
)

func Test_ParseGeoLocation(t *testing.T) {

	tests := []struct {
		value string
		lat   float64
		lng   float64
		err   bool
	}{
		{value: "51.4769,0.0005", lat: 51.4769, lng: 0.0005},
		{value: " 48.85 , 2.35 ", lat: 48.85, lng: 2.35},
		{value: "0,0", lat: 0, lng: 0},
		{value: "51.4769", err: true},
		{value: "north,0", err: true},
		{value: "0,east", err: true},
	}

	for _, c := range tests {
		t.Run(c.value, func(t *testing.T) {
			lat, lng, err := config.ParseGeoLocation(c.value)
			if c.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.lat, lat)
			assert.Equal(t, c.lng, lng)
		})
	}

}

func Test_Load(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("geoLocation", "48.85,2.35")
	viper.Set("serviceUrl", "http://pi.local:8080/")
	viper.Set("sendRepeat", 0)
	viper.Set("logLevel", "debug")
	viper.Set("sunLimits", map[string]any{"sunriseMin": "06:00", "sunsetMax": "22:00"})
	viper.Set("shutters", []map[string]any{
		{"id": "S1", "name": "Kitchen", "duration": 18},
		{"id": "S2", "name": "Office"},
	})

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 48.85, cfg.Latitude)
	assert.Equal(t, 2.35, cfg.Longitude)
	assert.Equal(t, "http://pi.local:8080", cfg.ServiceURL)
	assert.Equal(t, 1, cfg.SendRepeat)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "shutters.db", cfg.DBPath)
	assert.False(t, cfg.Remote)
	assert.Equal(t, schedule.SunLimits{SunriseMin: "06:00", SunsetMax: "22:00"}, cfg.SunLimits)
	assert.Equal(t, []models.Shutter{
		{ID: "S1", Name: "Kitchen", Duration: 18},
		{ID: "S2", Name: "Office"},
	}, cfg.Shutters)
}

func Test_Load_InvalidLevel(t *testing.T) {
	for _, value := range []string{"chatty", "verbose", "inf"} {
		viper.Reset()
		t.Cleanup(viper.Reset)

		viper.Set("logLevel", value)

		_, err := config.Load()
		assert.ErrorContains(t, err, "invalid logLevel", value)
	}
}

func Test_Load_Level(t *testing.T) {

	tests := []struct {
		value    string
		expected log.Level
	}{
		{value: "debug", expected: log.DebugLevel},
		{value: "WARN", expected: log.WarnLevel},
		{value: " error ", expected: log.ErrorLevel},
		{value: "fatal", expected: log.FatalLevel},
	}

	for _, c := range tests {
		t.Run(c.value, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)

			viper.Set("logLevel", c.value)

			cfg, err := config.Load()
			require.NoError(t, err)
			assert.Equal(t, c.expected, cfg.LogLevel)
		})
	}
}
