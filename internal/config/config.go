package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

const (
	SourceCSV    = "csv"
	SourceSheets = "sheets"
)

type Config struct {
	Port          string        `env:"PORT" envDefault:"8080"`
	DataDir       string        `env:"DATA_DIR" envDefault:"data"`
	DBPath        string        `env:"DECK_DB_PATH" envDefault:"data/decks.db"`
	CatalogSource string        `env:"CATALOG_SOURCE" envDefault:"csv"`
	GoogleAPIKey  string        `env:"GOOGLE_API_KEY"`
	GoogleSheetID string        `env:"GOOGLE_SHEET_ID"`
	SheetsBaseURL string        `env:"SHEETS_BASE_URL" envDefault:"https://sheets.googleapis.com"`
	FetchTimeout  time.Duration `env:"FETCH_TIMEOUT" envDefault:"12s"`
	LogDev        bool          `env:"LOG_DEV" envDefault:"false"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return ParseEnv(env.Options{})
}

// ParseEnv parses configuration using opts, which tests use to inject an environment.
func ParseEnv(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.CatalogSource {
	case SourceCSV:
	case SourceSheets:
		if c.GoogleSheetID == "" {
			return errors.New("GOOGLE_SHEET_ID is required for the sheets catalog source")
		}
	default:
		return errors.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	return nil
}
