package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/wheelibin/shutters/internal/constants"
	"github.com/wheelibin/shutters/internal/models"
	"github.com/wheelibin/shutters/internal/schedule"
)

type Config struct {
	Latitude   float64
	Longitude  float64
	ListenAddr string
	ServiceURL string
	DBPath     string
	NatsURL    string
	SendRepeat int
	LogFile    string
	LogLevel   log.Level

	// plan against a remote command service instead of hosting one
	Remote    bool
	SunLimits schedule.SunLimits
	Shutters  []models.Shutter
}

func setDefaults() {
	viper.SetDefault("geoLocation", "51.4769,0.0005")
	viper.SetDefault("listenAddr", ":8080")
	viper.SetDefault("serviceUrl", "http://localhost:8080")
	viper.SetDefault("dbPath", "shutters.db")
	viper.SetDefault("natsUrl", "")
	viper.SetDefault("sendRepeat", constants.DefaultSendRepeat)
	viper.SetDefault("logFile", "")
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("remote", false)
}

// InitialiseConfig finds and reads the config file. A missing file is not an
// error, the defaults apply.
func InitialiseConfig() error {
	setDefaults()
	viper.SetConfigName("config")                  // name of config file (without extension)
	viper.SetConfigType("json")                    // REQUIRED if the config file does not have the extension in the name
	viper.AddConfigPath("/etc/shutters/")          // path to look for the config file in
	viper.AddConfigPath("$HOME/.config/shutters/") // call multiple times to add many search paths
	viper.AddConfigPath(".")                       // optionally look for config in the working directory
	viper.SetEnvPrefix("shutters")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("fatal error config file: %w", err)
		}
	}
	return nil
}

// Load reads the current viper values into a Config.
func Load() (*Config, error) {
	setDefaults()

	lat, lng, err := ParseGeoLocation(viper.GetString("geoLocation"))
	if err != nil {
		return nil, err
	}

	level, err := parseLevel(viper.GetString("logLevel"))
	if err != nil {
		return nil, err
	}

	sendRepeat := viper.GetInt("sendRepeat")
	if sendRepeat < 1 {
		sendRepeat = constants.DefaultSendRepeat
	}

	var limits schedule.SunLimits
	if err := viper.UnmarshalKey("sunLimits", &limits); err != nil {
		return nil, fmt.Errorf("invalid sunLimits: %w", err)
	}

	var shutters []models.Shutter
	if err := viper.UnmarshalKey("shutters", &shutters); err != nil {
		return nil, fmt.Errorf("invalid shutters: %w", err)
	}

	return &Config{
		Latitude:   lat,
		Longitude:  lng,
		ListenAddr: viper.GetString("listenAddr"),
		ServiceURL: strings.TrimSuffix(viper.GetString("serviceUrl"), "/"),
		DBPath:     viper.GetString("dbPath"),
		NatsURL:    viper.GetString("natsUrl"),
		SendRepeat: sendRepeat,
		LogFile:    viper.GetString("logFile"),
		LogLevel:   level,
		Remote:     viper.GetBool("remote"),
		SunLimits:  limits,
		Shutters:   shutters,
	}, nil
}

// parseLevel rejects names the logger doesn't know, log.ParseLevel would fall
// back to info for them.
func parseLevel(value string) (log.Level, error) {
	name := strings.ToLower(strings.TrimSpace(value))
	level := log.ParseLevel(name)
	if level.String() != name {
		return level, fmt.Errorf("invalid logLevel %q", value)
	}
	return level, nil
}

// ParseGeoLocation parses "lat,lng".
func ParseGeoLocation(geoLocation string) (float64, float64, error) {
	latLng := strings.Split(geoLocation, ",")
	if len(latLng) != 2 {
		return 0, 0, fmt.Errorf("invalid geoLocation %q, expected \"lat,lng\"", geoLocation)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latLng[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid geoLocation latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(latLng[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid geoLocation longitude: %w", err)
	}
	return lat, lng, nil
}
