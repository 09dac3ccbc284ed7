package config

import (
	"time"

	"github.com/spf13/viper"
)

// Settings holds the resolved application configuration. Values come
// from the config file, MINDCART_* environment variables, or flags,
// in viper's usual precedence order.
type Settings struct {
	AdvisorProvider string
	AdvisorAPIKey   string
	AdvisorModel    string
	AdvisorTimeout  time.Duration
	CatalogPath     string
	LedgerPath      string
}

// Load reads the settings from viper, applying defaults.
func Load() Settings {
	settings := Settings{
		AdvisorProvider: viper.GetString("advisor.provider"),
		AdvisorAPIKey:   viper.GetString("advisor.api_key"),
		AdvisorModel:    viper.GetString("advisor.model"),
		AdvisorTimeout:  viper.GetDuration("advisor.timeout"),
		CatalogPath:     ExpandPath(viper.GetString("catalog.path")),
		LedgerPath:      ExpandPath(viper.GetString("ledger.path")),
	}

	if settings.AdvisorProvider == "" {
		settings.AdvisorProvider = "gemini"
	}
	if settings.AdvisorTimeout <= 0 {
		settings.AdvisorTimeout = 30 * time.Second
	}

	return settings
}
