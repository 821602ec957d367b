package commands

import (
	"time"

	"vlrscraper/internal/components/telemetry"
	"vlrscraper/internal/scrapers/vlr"
)

type HTTPConfig struct {
	TimeoutSeconds  int     `json:"timeout_seconds"`
	Retries         int     `json:"retries"`
	RateLimit       float64 `json:"rate_limit"`
	Burst           int     `json:"burst"`
	CacheSize       int     `json:"cache_size"`
	CacheTTLSeconds int     `json:"cache_ttl_seconds"`
	UserAgent       string  `json:"user_agent"`
}

type Config struct {
	BaseURL string     `json:"base_url"`
	Workers int        `json:"workers"`
	HTTP    HTTPConfig `json:"http"`
	// DumpDir receives a file per HTTP exchange when set.
	DumpDir   string           `json:"dump_dir"`
	Telemetry telemetry.Config `json:"telemetry"`
}

func defaultConfig() Config {
	opts := vlr.DefaultHTTPOptions()
	return Config{
		BaseURL: vlr.DefaultBaseURL,
		Workers: vlr.DefaultWorkers,
		HTTP: HTTPConfig{
			TimeoutSeconds:  int(opts.Timeout / time.Second),
			Retries:         opts.Retries,
			RateLimit:       opts.RateLimit,
			Burst:           opts.Burst,
			CacheSize:       opts.CacheSize,
			CacheTTLSeconds: int(opts.CacheTTL / time.Second),
			UserAgent:       opts.UserAgent,
		},
	}
}

func (c HTTPConfig) options() vlr.HTTPOptions {
	return vlr.HTTPOptions{
		Timeout:   time.Duration(c.TimeoutSeconds) * time.Second,
		Retries:   c.Retries,
		RateLimit: c.RateLimit,
		Burst:     c.Burst,
		CacheSize: c.CacheSize,
		CacheTTL:  time.Duration(c.CacheTTLSeconds) * time.Second,
		UserAgent: c.UserAgent,
	}
}
