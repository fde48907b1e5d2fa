package tenant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/AgendaPlusApp/agenda-plus/internal/models"
)

// ErrNotFound means the subdomain maps to no tenant. Anything else
// returned by a Directory is an infrastructure failure and must be
// surfaced as such, never as a 404.
var ErrNotFound = errors.New("tenant not found")

// Directory is the subdomain -> tenant lookup. Pure read; safe to
// call on every request.
type Directory interface {
	BySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error)
}

// ===============================
// Gorm-backed directory
// ===============================

type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) BySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error) {
	var t models.Tenant
	err := d.db.WithContext(ctx).
		Where("subdomain = ?", strings.ToLower(subdomain)).
		First(&t).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("tenant directory lookup: %w", err)
	}
	return &t, nil
}

// ===============================
// In-memory directory
// ===============================

// MemoryDirectory backs tests and the memory storage backend. Same
// contract as the gorm directory, no ambient globals.
type MemoryDirectory struct {
	mu      sync.RWMutex
	tenants map[string]models.Tenant
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{tenants: make(map[string]models.Tenant)}
}

func (d *MemoryDirectory) Put(t models.Tenant) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tenants[strings.ToLower(t.Subdomain)] = t
}

func (d *MemoryDirectory) BySubdomain(_ context.Context, subdomain string) (*models.Tenant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.tenants[strings.ToLower(subdomain)]
	if !ok {
		return nil, ErrNotFound
	}
	out := t
	return &out, nil
}
