package tenant

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/AgendaPlusApp/agenda-plus/internal/models"
)

// Resolver maps a request's Host header to the owning tenant. The
// resolution order is fixed: root domain, www.<root> and the local
// alias target the reserved master subdomain; any other host
// contributes its first DNS label; an unknown label degrades to the
// master tenant when one exists.
type Resolver struct {
	dir        Directory
	rootDomain string
	localAlias string
}

func NewResolver(dir Directory, rootDomain, localAlias string) *Resolver {
	return &Resolver{
		dir:        dir,
		rootDomain: strings.ToLower(rootDomain),
		localAlias: strings.ToLower(localAlias),
	}
}

// SubdomainFromHost extracts the candidate subdomain from a raw Host
// header. Port suffixes are stripped before any comparison.
func (r *Resolver) SubdomainFromHost(host string) string {
	h := strings.ToLower(strings.TrimSpace(host))

	// SplitHostPort also unbrackets IPv6 literals; hosts without a
	// port make it error, in which case the raw value stands.
	if hostOnly, _, err := net.SplitHostPort(h); err == nil {
		h = hostOnly
	}

	if h == r.rootDomain || h == "www."+r.rootDomain || h == r.localAlias {
		return models.MasterSubdomain
	}

	if i := strings.Index(h, "."); i != -1 {
		return h[:i]
	}
	return h
}

// Resolve returns the tenant owning the host. An unrecognized
// subdomain falls back to the master tenant; ErrNotFound is returned
// only when the master tenant does not exist either. Infrastructure
// errors from the directory pass through untouched.
func (r *Resolver) Resolve(ctx context.Context, host string) (*models.Tenant, error) {
	sub := r.SubdomainFromHost(host)

	t, err := r.dir.BySubdomain(ctx, sub)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if sub == models.MasterSubdomain {
		return nil, ErrNotFound
	}
	return r.dir.BySubdomain(ctx, models.MasterSubdomain)
}
