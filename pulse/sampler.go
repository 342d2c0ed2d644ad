package pulse

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	lru "github.com/hashicorp/golang-lru/v2"
)

type samplerCache = lru.Cache[wgpu.SamplerDescriptor, *wgpu.Sampler]

// newSamplerCache creates a cache that releases samplers on eviction. Samplers
// belong to a device, so every GraphicsContext owns its own cache.
func newSamplerCache() *samplerCache {
	cache, _ := lru.NewWithEvict[wgpu.SamplerDescriptor, *wgpu.Sampler](16, samplerCacheOnEvict)
	return cache
}

func samplerCacheOnEvict(key wgpu.SamplerDescriptor, value *wgpu.Sampler) {
	value.Release()
}

// CachedSampler returns a sampler matching your description. The sampler may be cached,
// you  must not call wgpu.Sampler.Release() on it.
func (ctx *GraphicsContext) CachedSampler(desc wgpu.SamplerDescriptor) (*wgpu.Sampler, error) {
	cachedSampler, ok := ctx.samplers.Get(desc)
	if ok {
		return cachedSampler, nil
	}

	sampler, err := ctx.Device.CreateSampler(&desc)
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}

	ctx.samplers.Add(desc, sampler)

	return sampler, nil
}
