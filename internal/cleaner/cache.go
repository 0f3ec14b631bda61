package cleaner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/polish/internal/log"
)

// DefaultCacheTTL is how long a cleaned result stays valid.
const DefaultCacheTTL = 10 * time.Minute

// Caching wraps a Cleaner with an in-memory result cache keyed by the
// digest of (text, options). Re-cleaning unchanged text with unchanged
// options never hits the remote service. Failures are not cached.
type Caching struct {
	inner Cleaner
	cache *gocache.Cache
}

// NewCaching wraps inner with a TTL cache. A non-positive ttl falls back
// to DefaultCacheTTL.
func NewCaching(inner Cleaner, ttl time.Duration) *Caching {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Caching{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Clean returns a cached result when available, otherwise delegates.
func (c *Caching) Clean(ctx context.Context, text string, opts Options) (string, error) {
	key := cacheKey(text, opts)
	if cached, ok := c.cache.Get(key); ok {
		log.Debug(log.CatCleaner, "cache hit", "key", key[:12])
		return cached.(string), nil
	}

	cleaned, err := c.inner.Clean(ctx, text, opts)
	if err != nil {
		return "", err
	}

	c.cache.Set(key, cleaned, gocache.DefaultExpiration)
	return cleaned, nil
}

// cacheKey digests the text together with every option toggle so any
// changed checkbox misses the cache.
func cacheKey(text string, opts Options) string {
	h := sha256.New()
	h.Write([]byte(text))
	fmt.Fprintf(h, "|%t%t%t%t%t", opts.SmartQuotes, opts.Dashes, opts.Whitespace, opts.StripMarkdown, opts.FixGrammar)
	return hex.EncodeToString(h.Sum(nil))
}
