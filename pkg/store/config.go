package store

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Config interface {
	BasePath() string
}

// Settings is the resolved configuration of the roadmap tools.
type Settings struct {
	Path          string        `json:"path"`
	DayWidth      float64       `json:"dayWidth"`
	MinZoom       float64       `json:"minZoom"`
	MaxZoom       float64       `json:"maxZoom"`
	ViewportWidth float64       `json:"viewportWidth"`
	Compact       bool          `json:"compact"`
	Locale        string        `json:"locale"`
	AutosaveDelay time.Duration `json:"autosaveDelay"`
	UndoDepth     int           `json:"undoDepth"`
	Debug         bool          `json:"debug"`
}

func (s *Settings) BasePath() string {
	return s.Path
}

// LoadConfig reads .roadmap.yaml from $ROADMAP_CONFIG_PATH or the working
// directory, overlaid with ROADMAP_* environment variables.
func LoadConfig() (*Settings, error) {
	viper.SetDefault("path", "~/.roadmap.db")
	viper.SetDefault("day_width", 4.0)
	viper.SetDefault("min_zoom", 0.15)
	viper.SetDefault("max_zoom", 10.0)
	viper.SetDefault("viewport_width", 1200.0)
	viper.SetDefault("compact", true)
	viper.SetDefault("locale", "en")
	viper.SetDefault("autosave_delay", 500*time.Millisecond)
	viper.SetDefault("undo_depth", 30)
	viper.SetDefault("debug", false)
	viper.SetConfigName(".roadmap") // .yaml is implicit
	viper.SetEnvPrefix("ROADMAP")
	viper.AutomaticEnv()

	if override := os.Getenv("ROADMAP_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &Settings{
		Path:          path,
		DayWidth:      viper.GetFloat64("day_width"),
		MinZoom:       viper.GetFloat64("min_zoom"),
		MaxZoom:       viper.GetFloat64("max_zoom"),
		ViewportWidth: viper.GetFloat64("viewport_width"),
		Compact:       viper.GetBool("compact"),
		Locale:        viper.GetString("locale"),
		AutosaveDelay: viper.GetDuration("autosave_delay"),
		UndoDepth:     viper.GetInt("undo_depth"),
		Debug:         viper.GetBool("debug"),
	}, nil
}

// ConfigFile is the config file viper settled on, if any.
func ConfigFile() string {
	return viper.ConfigFileUsed()
}
