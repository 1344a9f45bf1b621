package cache

import (
	"maps"
	"sync"

	"github.com/tristendillon/create-common-app/core/logger"
)

type peerEntry struct {
	peers       map[string]string
	unavailable bool
}

// PeerCache memoizes peer-dependency lookups by exact "name@range". It is
// append-only; nothing is invalidated for the life of the cache. Create one
// per scaffold run rather than sharing a package-level instance.
type PeerCache struct {
	entries map[string]*peerEntry
	policy  FailurePolicy
	metrics *CacheMetrics
	mutex   sync.RWMutex
}

func NewPeerCache(policy FailurePolicy) *PeerCache {
	if policy == "" {
		policy = RetryUnavailable
	}
	logger.Debug("Created peer dependency cache with failure policy %s", policy)
	return &PeerCache{
		entries: make(map[string]*peerEntry),
		policy:  policy,
		metrics: &CacheMetrics{},
	}
}

func (pc *PeerCache) Policy() FailurePolicy {
	return pc.policy
}

// Get reports whether spec has an answer. A hit with a nil map means the
// lookup tool was recorded as unavailable.
func (pc *PeerCache) Get(spec string) (map[string]string, bool) {
	pc.mutex.Lock()
	defer pc.mutex.Unlock()

	entry, exists := pc.entries[spec]
	if !exists {
		pc.metrics.Misses++
		logger.Debug("Peer cache miss for %s", spec)
		return nil, false
	}

	pc.metrics.Hits++
	logger.Debug("Peer cache hit for %s", spec)
	if entry.unavailable {
		return nil, true
	}
	return maps.Clone(entry.peers), true
}

func (pc *PeerCache) Set(spec string, peers map[string]string) {
	if peers == nil {
		peers = map[string]string{}
	}

	pc.mutex.Lock()
	defer pc.mutex.Unlock()
	pc.entries[spec] = &peerEntry{peers: maps.Clone(peers)}
	logger.Debug("Cached %d peer dependencies for %s", len(peers), spec)
}

// MarkUnavailable records that the lookup tool could not run for spec. Under
// RetryUnavailable nothing is stored.
func (pc *PeerCache) MarkUnavailable(spec string) {
	pc.mutex.Lock()
	defer pc.mutex.Unlock()

	pc.metrics.Unavailable++
	if pc.policy != CacheUnavailable {
		return
	}
	pc.entries[spec] = &peerEntry{unavailable: true}
	logger.Debug("Cached unavailable lookup for %s", spec)
}

func (pc *PeerCache) Len() int {
	pc.mutex.RLock()
	defer pc.mutex.RUnlock()
	return len(pc.entries)
}

func (pc *PeerCache) GetMetrics() *CacheMetrics {
	pc.mutex.RLock()
	defer pc.mutex.RUnlock()

	metrics := *pc.metrics
	metrics.TotalEntries = len(pc.entries)
	metrics.CalculateHitRate()
	return &metrics
}

func (pc *PeerCache) LogStats() {
	metrics := pc.GetMetrics()
	logger.Debug("Peer cache stats: Hits=%d, Misses=%d, Hit Rate=%.1f%%, Total Entries=%d, Unavailable=%d",
		metrics.Hits, metrics.Misses, metrics.HitRate, metrics.TotalEntries, metrics.Unavailable)
}
