package cfg

import "time"

type Cfg struct {
	// Provider endpoints
	EPICAPIURL      string
	EPICArchiveURL  string
	MarsPhotoAPIURL string
	SNAPIURL        string
	SNAPIMaxPages   int
	PhysOrgFeeds    []string

	// Reference data
	CatalogPath     string
	NewsSourcesPath string

	// Response cache
	CachePath       string
	RedisURL        string
	CacheTTL        time.Duration
	PruneInterval   time.Duration
	NewsWarmWindow  time.Duration
	WorkerCount     int
	ProviderTimeout time.Duration

	// HTTP server
	Port      string
	RateLimit float64
	RateBurst int
	Prod      bool

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
