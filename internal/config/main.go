//nolint:mnd //no magic number
package config

import (
	"log/slog"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/config"
)

type Config struct {
	Env               string
	Port              int
	Throttle          bool
	WebURL            string
	SentryDsn         string
	SampleRate        float64
	DBDsn             string
	Release           string
	Timezone          string
	ScrapeInterval    string
	ImagesDir         string
	ThumbnailSize     int
	ExtraConcertsPath string
	OutputDir         string
}

func New(logger *slog.Logger) Config {
	var cfg Config

	parser := config.New(logger)

	cfg.Env = parser.EnvStr("ENV", config.ProdEnv)
	cfg.Port = parser.EnvInt("PORT", 8000)
	cfg.Throttle = parser.EnvBool("THROTTLE", true)
	cfg.WebURL = parser.EnvStr("WEB_URL", "http://localhost:8000")
	cfg.SentryDsn = parser.EnvStr("SENTRY_DSN", "")
	cfg.SampleRate = parser.EnvFloat("SAMPLE_RATE", 1.0)
	cfg.DBDsn = parser.EnvStr("DB_DSN", "postgres://postgres@localhost/postgres")
	cfg.Release = parser.EnvStr("RELEASE", config.DevEnv)

	cfg.Timezone = parser.EnvStr("TIMEZONE", "Europe/Copenhagen")
	cfg.ScrapeInterval = parser.EnvStr("SCRAPE_INTERVAL", "12h")
	cfg.ImagesDir = parser.EnvStr("IMAGES_DIR", "images")
	cfg.ThumbnailSize = parser.EnvInt("THUMBNAIL_SIZE", 768)
	cfg.ExtraConcertsPath = parser.EnvStr("EXTRA_CONCERTS_PATH", "extra.json")
	cfg.OutputDir = parser.EnvStr("OUTPUT_DIR", ".")

	return cfg
}

// Location resolves the configured timezone, falling back to UTC.
func (cfg Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}
