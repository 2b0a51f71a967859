package interp

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// astCache memoizes parsed proc bodies keyed by a stable per-definition
// token (spec §4.3's AST cache: re-parsing on every call would be wasteful
// since a proc body is typically evaluated many times against the same
// source). Bounded by an LRU so long-running embedders with many
// short-lived dynamically-built bodies (`proc` constructed in a loop)
// don't grow the cache unboundedly; singleflight collapses concurrent
// misses for the same key onto one parse. Each Interp creates its own
// cache in New, so the cache is never shared between interpreters.
//
// The key is minted once at `proc` definition time (see procDef.cacheKey
// in dispatch.go) and stays stable across every later call to that proc,
// so invokeProc's getOrParse call on each invocation is a real hit after
// the first; it only re-parses from the stored source if the entry was
// evicted under LRU pressure.
type astCache struct {
	lru    *lru.Cache[string, *Script]
	flight singleflight.Group
}

func newASTCache(size int) *astCache {
	c, err := lru.New[string, *Script](size)
	if err != nil {
		// Only returns an error for a non-positive size, which never
		// happens with the constant callers pass.
		panic(err)
	}
	return &astCache{lru: c}
}

// getOrParse returns the cached Script for key, parsing src and populating
// the cache on a miss.
func (c *astCache) getOrParse(key, src string) (*Script, error) {
	if s, ok := c.lru.Get(key); ok {
		return s, nil
	}
	v, err, _ := c.flight.Do(key, func() (interface{}, error) {
		if s, ok := c.lru.Get(key); ok {
			return s, nil
		}
		s, err := Parse(src)
		if err != nil {
			return nil, err
		}
		c.lru.Add(key, s)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Script), nil
}

// invalidate drops key's cached parse. Values in this engine are always
// replaced rather than mutated in place (see Value's doc comment), so the
// one event that actually makes a cached proc body stale is the proc being
// redefined under the same name: builtinProc calls this for the outgoing
// epoch's key right before minting the new one, so the orphaned entry is
// dropped immediately instead of lingering until LRU pressure evicts it.
func (c *astCache) invalidate(key string) {
	c.lru.Remove(key)
}
