package npm

import (
	"context"
	"errors"
	"fmt"

	"github.com/tristendillon/create-common-app/core/cache"
	"github.com/tristendillon/create-common-app/core/logger"
	"github.com/tristendillon/create-common-app/core/process"
)

// PeerResolver looks up declared peer dependencies, consulting its cache
// before the registry. Each resolver owns its cache, so separate runs in the
// same process never share results.
type PeerResolver struct {
	registry Registry
	cache    *cache.PeerCache
}

func NewPeerResolver(registry Registry, peerCache *cache.PeerCache) *PeerResolver {
	if peerCache == nil {
		peerCache = cache.NewPeerCache(cache.RetryUnavailable)
	}
	return &PeerResolver{registry: registry, cache: peerCache}
}

// Resolve returns the peer map for spec, or nil when the registry tool is
// unavailable. Registry failures other than a missing tool resolve to an
// empty map.
func (pr *PeerResolver) Resolve(ctx context.Context, spec string) (map[string]string, error) {
	if peers, ok := pr.cache.Get(spec); ok {
		return peers, nil
	}

	peers, err := pr.registry.PeerDependencies(ctx, spec)
	if err != nil {
		if errors.Is(err, process.ErrToolNotFound) {
			logger.Debug("Registry tool unavailable while resolving %s", spec)
			pr.cache.MarkUnavailable(spec)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve peer dependencies for %s: %w", spec, err)
	}
	if peers == nil {
		peers = map[string]string{}
	}

	pr.cache.Set(spec, peers)
	return peers, nil
}

func (pr *PeerResolver) Cache() *cache.PeerCache {
	return pr.cache
}
