package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	appbilling "github.com/pgnest/backend/internal/application/billing"
)

// InMemoryReportCache implements billing.ReportCache with a process-local map.
// Used for single-instance deployments and tests; entries expire lazily on
// read.
type InMemoryReportCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]reportEntry
	ttl     time.Duration
	clock   func() time.Time
}

type reportEntry struct {
	report    *appbilling.PendingPaymentsReport
	expiresAt time.Time
}

// NewInMemoryReportCache creates an in-memory report cache with the given TTL
func NewInMemoryReportCache(ttl time.Duration) *InMemoryReportCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &InMemoryReportCache{
		entries: make(map[uuid.UUID]reportEntry),
		ttl:     ttl,
		clock:   time.Now,
	}
}

// Get returns the cached report for a location, or false on miss or expiry
func (c *InMemoryReportCache) Get(_ context.Context, locationID uuid.UUID) (*appbilling.PendingPaymentsReport, bool) {
	c.mu.RLock()
	entry, ok := c.entries[locationID]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.clock().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, locationID)
		c.mu.Unlock()
		return nil, false
	}
	return entry.report, true
}

// Set stores the report for a location under the configured TTL
func (c *InMemoryReportCache) Set(_ context.Context, locationID uuid.UUID, report *appbilling.PendingPaymentsReport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[locationID] = reportEntry{
		report:    report,
		expiresAt: c.clock().Add(c.ttl),
	}
}

// Invalidate drops the cached report for a location
func (c *InMemoryReportCache) Invalidate(_ context.Context, locationID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, locationID)
}

// Ensure InMemoryReportCache implements billing.ReportCache
var _ appbilling.ReportCache = (*InMemoryReportCache)(nil)
