package tenant

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/AgendaPlusApp/agenda-plus/internal/models"
)

// CachedDirectory puts a redis TTL cache in front of another
// Directory. The TTL bounds how long a stale directory entry can
// route requests; misses and redis outages fall through to the inner
// lookup. Negative results are never cached, so a freshly provisioned
// tenant resolves immediately.
type CachedDirectory struct {
	inner Directory
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedDirectory(inner Directory, rdb *redis.Client, ttl time.Duration) *CachedDirectory {
	return &CachedDirectory{inner: inner, rdb: rdb, ttl: ttl}
}

func cacheKey(subdomain string) string {
	return "tenant:sub:" + strings.ToLower(subdomain)
}

func (d *CachedDirectory) BySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error) {
	if raw, err := d.rdb.Get(ctx, cacheKey(subdomain)).Result(); err == nil {
		var t models.Tenant
		if json.Unmarshal([]byte(raw), &t) == nil {
			return &t, nil
		}
	}

	t, err := d.inner.BySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(t); err == nil {
		// best effort; the lookup already succeeded
		d.rdb.Set(ctx, cacheKey(subdomain), b, d.ttl)
	}

	return t, nil
}
