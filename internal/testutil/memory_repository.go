// Package testutil provides in-memory stand-ins for the gorm and Redis backed
// repositories so services and handlers can be exercised without a database.
package testutil

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"satwatch/internal/models"
	"satwatch/internal/repository"
)

var (
	_ repository.TelemetryRepository = (*MemoryTelemetryRepository)(nil)
	_ repository.CacheRepository     = (*MemoryCache)(nil)
)

// MemoryTelemetryRepository mirrors the ordering and filtering of the SQL
// repository: exact-match filters, newest first, ties broken by id.
type MemoryTelemetryRepository struct {
	mu      sync.Mutex
	records map[uint]models.Telemetry
	nextID  uint

	// Err, when set, is returned by every method.
	Err error
}

func NewMemoryTelemetryRepository() *MemoryTelemetryRepository {
	return &MemoryTelemetryRepository{records: map[uint]models.Telemetry{}, nextID: 1}
}

func (r *MemoryTelemetryRepository) Create(_ context.Context, t *models.Telemetry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	t.ID = r.nextID
	r.nextID++
	r.records[t.ID] = *t
	return nil
}

func (r *MemoryTelemetryRepository) BatchCreate(ctx context.Context, ts []models.Telemetry) error {
	for i := range ts {
		if err := r.Create(ctx, &ts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryTelemetryRepository) GetByID(_ context.Context, id uint) (*models.Telemetry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	t, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *MemoryTelemetryRepository) List(_ context.Context, f repository.TelemetryFilter, offset, limit int) ([]models.Telemetry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := r.matching(f)
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit >= 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryTelemetryRepository) Count(_ context.Context, f repository.TelemetryFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.matching(f))), nil
}

func (r *MemoryTelemetryRepository) Update(_ context.Context, t *models.Telemetry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.records[t.ID]; !ok {
		return repository.ErrNotFound
	}
	r.records[t.ID] = *t
	return nil
}

func (r *MemoryTelemetryRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *MemoryTelemetryRepository) DeleteAll(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	n := int64(len(r.records))
	r.records = map[uint]models.Telemetry{}
	return n, nil
}

func (r *MemoryTelemetryRepository) DistinctSatelliteIDs(context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	seen := map[string]bool{}
	ids := []string{}
	for _, t := range r.records {
		if !seen[t.SatelliteID] {
			seen[t.SatelliteID] = true
			ids = append(ids, t.SatelliteID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Len returns the number of stored records.
func (r *MemoryTelemetryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *MemoryTelemetryRepository) matching(f repository.TelemetryFilter) []models.Telemetry {
	out := []models.Telemetry{}
	for _, t := range r.records {
		if f.SatelliteID != "" && t.SatelliteID != f.SatelliteID {
			continue
		}
		if f.Status != "" && t.Status.String() != f.Status {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// MemoryCache is a map-backed CacheRepository that counts hits.
type MemoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	Hits int
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: map[string][]byte{}}
}

func (c *MemoryCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.Hits++
	return true, json.Unmarshal(b, dest)
}

func (c *MemoryCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Has reports whether key is currently cached.
func (c *MemoryCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}
