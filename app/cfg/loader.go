package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Provider endpoints
	EPICAPIURL      string   `long:"epic-api-url" env:"EPIC_API_URL" default:"https://epic.gsfc.nasa.gov/api" description:"EPIC API base URL"`
	EPICArchiveURL  string   `long:"epic-archive-url" env:"EPIC_ARCHIVE_URL" default:"https://epic.gsfc.nasa.gov/archive" description:"EPIC image archive base URL"`
	MarsPhotoAPIURL string   `long:"mars-photo-api-url" env:"MARS_PHOTO_API_URL" default:"https://mars-photos.herokuapp.com/api/v1" description:"Mars Photo API base URL"`
	SNAPIURL        string   `long:"snapi-url" env:"SNAPI_URL" description:"Spaceflight News API articles URL (overrides the sources file)"`
	SNAPIMaxPages   int      `long:"snapi-max-pages" env:"SNAPI_MAX_PAGES" description:"Maximum Spaceflight News API pages per request (overrides the sources file)"`
	PhysOrgFeeds    []string `long:"physorg-feed" env:"PHYSORG_FEEDS" env-delim:"," description:"phys.org RSS feed URL, repeatable (overrides the sources file)"`

	// Reference data
	CatalogPath     string `long:"catalog" env:"CATALOG_PATH" description:"Rover catalog YAML file (embedded dataset when empty)"`
	NewsSourcesPath string `long:"news-sources" env:"NEWS_SOURCES_PATH" description:"News sources YAML file (embedded sources when empty)"`

	// Response cache
	CachePath       string        `long:"cache-path" env:"CACHE_PATH" default:"space-prime.db" description:"SQLite response cache file, or :memory:"`
	RedisURL        string        `long:"redis-url" env:"REDIS_URL" description:"Redis URL; when set, responses are cached in Redis instead of SQLite"`
	CacheTTL        time.Duration `long:"cache-ttl" env:"CACHE_TTL" default:"1h" description:"How long provider responses are cached"`
	PruneInterval   time.Duration `long:"prune-interval" env:"PRUNE_INTERVAL" default:"10m" description:"How often expired responses are purged"`
	NewsWarmWindow  time.Duration `long:"news-warm-window" env:"NEWS_WARM_WINDOW" default:"168h" description:"News window refreshed in the background (0 disables)"`
	WorkerCount     int           `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers"`
	ProviderTimeout time.Duration `long:"provider-timeout" env:"PROVIDER_TIMEOUT" default:"10s" description:"Timeout of a single provider request"`

	// HTTP server
	Port      string  `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	RateLimit float64 `long:"rate-limit" env:"RATE_LIMIT" default:"10" description:"Requests per second allowed per client IP"`
	RateBurst int     `long:"rate-burst" env:"RATE_BURST" default:"10" description:"Burst size of the per client rate limit"`
	Prod      bool    `long:"prod" env:"PROD" description:"Redirect plain HTTP requests to HTTPS"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Space Prime/1.0" description:"User agent string for provider requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

// Load reads .env (if present), flags and environment. It returns nil, nil
// when help was requested.
func Load() (*Cfg, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := parse(os.Args[1:])
	if err != nil || cfg == nil {
		return nil, err
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		slog.Warn("Invalid timezone, using system default", "timezone", cfg.Timezone, "error", err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func parse(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		EPICAPIURL:      raw.EPICAPIURL,
		EPICArchiveURL:  raw.EPICArchiveURL,
		MarsPhotoAPIURL: raw.MarsPhotoAPIURL,
		SNAPIURL:        raw.SNAPIURL,
		SNAPIMaxPages:   raw.SNAPIMaxPages,
		PhysOrgFeeds:    raw.PhysOrgFeeds,
		CatalogPath:     raw.CatalogPath,
		NewsSourcesPath: raw.NewsSourcesPath,
		CachePath:       raw.CachePath,
		RedisURL:        raw.RedisURL,
		CacheTTL:        raw.CacheTTL,
		PruneInterval:   raw.PruneInterval,
		NewsWarmWindow:  raw.NewsWarmWindow,
		WorkerCount:     raw.WorkerCount,
		ProviderTimeout: raw.ProviderTimeout,
		Port:            raw.Port,
		RateLimit:       raw.RateLimit,
		RateBurst:       raw.RateBurst,
		Prod:            raw.Prod,
		UserAgent:       raw.UserAgent,
		Timezone:        raw.Timezone,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func validate(cfg *Cfg) error {
	if cfg.CachePath == "" && cfg.RedisURL == "" {
		return fmt.Errorf("cache path or Redis URL is required")
	}

	positiveDurations := map[string]time.Duration{
		"cache TTL":        cfg.CacheTTL,
		"prune interval":   cfg.PruneInterval,
		"provider timeout": cfg.ProviderTimeout,
	}
	for fieldName, fieldValue := range positiveDurations {
		if fieldValue <= 0 {
			return fmt.Errorf("%s must be positive", fieldName)
		}
	}

	if cfg.NewsWarmWindow < 0 {
		return fmt.Errorf("news warm window must be non-negative")
	}

	positiveCounts := map[string]int{
		"worker count": cfg.WorkerCount,
		"rate burst":   cfg.RateBurst,
	}
	for fieldName, fieldValue := range positiveCounts {
		if fieldValue <= 0 {
			return fmt.Errorf("%s must be positive", fieldName)
		}
	}

	if cfg.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	if cfg.SNAPIMaxPages < 0 {
		return fmt.Errorf("SNAPI max pages must be non-negative")
	}

	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return err
		}
		time.Local = loc
		slog.Debug("Timezone configured", "timezone", timezone)
	}
	return nil
}
