package embedding

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/kodekulture/cemantix-server/repository"
)

// Cache maps normalized words to vectors. Entries are never evicted.
// When a store is configured every insertion is written through to it.
type Cache struct {
	mu        sync.RWMutex
	vecs      map[string][]float32
	store     repository.Vectors
	namespace string
}

// NewCache returns an empty cache backed by store, which may be nil.
func NewCache(store repository.Vectors) *Cache {
	return &Cache{vecs: make(map[string][]float32), store: store}
}

func (c *Cache) Get(key string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.vecs[key]
	return v, ok
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vecs)
}

// Put stores one vector. The last writer wins, vectors of a word are deterministic.
func (c *Cache) Put(ctx context.Context, key string, v []float32) {
	c.PutAll(ctx, map[string][]float32{key: v})
}

// PutAll stores vectors and writes them through to the store.
// Store failures are logged only, the in-memory copy is authoritative.
func (c *Cache) PutAll(ctx context.Context, vecs map[string][]float32) {
	c.mu.Lock()
	for k, v := range vecs {
		c.vecs[k] = v
	}
	ns := c.namespace
	c.mu.Unlock()

	if c.store == nil || ns == "" {
		return
	}
	if err := c.store.SaveVectors(ctx, ns, vecs); err != nil {
		log.Err(err).Caller().Str("namespace", ns).Int("count", len(vecs)).Msg("failed to persist vectors")
	}
}

// Warm binds the cache to namespace and loads the vectors persisted under it.
// Vectors whose dimension differs from dim are ignored.
func (c *Cache) Warm(ctx context.Context, namespace string, dim int) (int, error) {
	c.mu.Lock()
	c.namespace = namespace
	c.mu.Unlock()
	if c.store == nil {
		return 0, nil
	}

	stored, err := c.store.LoadVectors(ctx, namespace)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int
	for k, v := range stored {
		if dim > 0 && len(v) != dim {
			continue
		}
		c.vecs[k] = v
		n++
	}
	return n, nil
}
