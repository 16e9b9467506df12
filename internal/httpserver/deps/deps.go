package deps

import (
	"context"
	"net/url"
	"time"

	"github.com/MrSnakeDoc/connector/internal/catalog"
	"github.com/MrSnakeDoc/connector/internal/httpserver/mw"
	"github.com/MrSnakeDoc/connector/internal/index"
	"github.com/MrSnakeDoc/connector/internal/logger"
	"github.com/MrSnakeDoc/connector/internal/notify"
	redisstore "github.com/MrSnakeDoc/connector/internal/store/redis"
)

// Notifier sends resource notifications. Implemented by notify.PseudoPush.
type Notifier interface {
	Notify(ctx context.Context, resourceID *url.URL) (notify.Result, error)
	Configured() bool
}

// DeliveryLog remembers the last notification per resource. Implemented by
// the Redis store; nil when Redis is disabled.
type DeliveryLog interface {
	RecordDelivery(ctx context.Context, d redisstore.Delivery, ttl time.Duration) error
	GetDelivery(ctx context.Context, resource string) (*redisstore.Delivery, error)
}

// Persistence reports on the Redis store. nil when Redis is disabled.
type Persistence interface {
	Ping(ctx context.Context) error
	Counts(ctx context.Context) (map[redisstore.Kind]int64, error)
}

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed to access the server
	AllowedCIDRS []string         // IPs allowed to access operational endpoints
	TrustProxy   bool             // true if running behind a trusted reverse proxy
	CORSOrigins  []string         // origins allowed to call /api, empty disables CORS

	Catalog     *catalog.Catalog
	MemoryIndex *index.MemoryIndex
	Persistence Persistence

	Notifier        Notifier
	Deliveries      DeliveryLog   // nil when Redis is disabled
	DeliveryTTL     time.Duration // how long delivery records are kept
	NotifyRateLimit mw.RateLimitConfig

	BootstrapFile string        // empty when no bootstrap file is configured
	ReloadTrigger chan struct{} // triggers a bootstrap reload, nil without bootstrap file
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
