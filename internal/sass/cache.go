package sass

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of compiled stylesheets kept.
const DefaultCacheSize = 256

// CachedCompiler memoizes another Compiler's output per request.
//
// The key covers the entry path, source, syntax, style and include paths,
// but not the content of included partials, so one cache must not outlive
// a build pass.
type CachedCompiler struct {
	next  Compiler
	cache *lru.Cache[string, string]
}

// NewCachedCompiler wraps next with an LRU of size entries
// (DefaultCacheSize if size <= 0).
func NewCachedCompiler(next Compiler, size int) *CachedCompiler {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, string](size)
	return &CachedCompiler{next: next, cache: cache}
}

// Compile returns a cached result or delegates to the wrapped compiler.
// Failures are not cached.
func (c *CachedCompiler) Compile(ctx context.Context, req Request) (string, error) {
	key := cacheKey(req)
	if css, ok := c.cache.Get(key); ok {
		return css, nil
	}

	css, err := c.next.Compile(ctx, req)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, css)
	return css, nil
}

// Len returns the number of cached results.
func (c *CachedCompiler) Len() int {
	return c.cache.Len()
}

func cacheKey(req Request) string {
	h := sha256.New()
	for _, part := range []string{req.Path, string(req.Syntax), string(req.Style), strings.Join(req.IncludePaths, "\x00"), req.Source} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Compile-time interface check.
var _ Compiler = (*CachedCompiler)(nil)
