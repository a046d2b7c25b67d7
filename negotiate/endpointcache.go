package negotiate

import "sync"

// EndpointCache is the client-side state of spec.md §3.6/§4.G:
// `EndpointToStructureId` (which URL is known to return which
// structure) plus the set of origins known to host a Synpatico agent.
// Same RWMutex discipline as synpatico/state.go's caches.
type EndpointCache struct {
	mu             sync.RWMutex
	endpointToID   map[string]string // request URL -> StructureId
	capableOrigins map[string]bool
}

// NewEndpointCache returns an empty EndpointCache.
func NewEndpointCache() *EndpointCache {
	return &EndpointCache{
		endpointToID:   make(map[string]string),
		capableOrigins: make(map[string]bool),
	}
}

// StructureIDFor returns the StructureId a URL is known to return, if
// any.
func (c *EndpointCache) StructureIDFor(url string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.endpointToID[url]
	return id, ok
}

// Learn records that url is known to return id.
func (c *EndpointCache) Learn(url, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endpointToID[url] = id
}

// Forget discards any learned structure id for url. Used on the
// client-side 409 fallback path (spec.md §4.G step 3: "discard any
// learned state for this endpoint").
func (c *EndpointCache) Forget(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.endpointToID, url)
}

// IsCapable reports whether origin is known to host a Synpatico agent.
func (c *EndpointCache) IsCapable(origin string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.capableOrigins[origin]
}

// MarkCapable records that origin hosts a Synpatico agent.
func (c *EndpointCache) MarkCapable(origin string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.capableOrigins[origin] = true
}

// Reset clears all learned state. Primarily useful for test isolation.
func (c *EndpointCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endpointToID = make(map[string]string)
	c.capableOrigins = make(map[string]bool)
}
