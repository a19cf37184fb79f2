package gap

import (
	"context"
	"encoding/json"
	"time"

	"github.com/xenlixai/aeoscan/internal/cache"
)

// CachedSource wraps a QuestionSource with a TTL cache so repeated analyses
// of the same keyword do not hit the upstream provider
type CachedSource struct {
	inner QuestionSource
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedSource wraps src with the given cache and TTL
func NewCachedSource(src QuestionSource, c cache.Cache, ttl time.Duration) *CachedSource {
	return &CachedSource{inner: src, cache: c, ttl: ttl}
}

// Name returns the wrapped source's name
func (s *CachedSource) Name() string { return s.inner.Name() }

// Questions returns cached questions when available, otherwise delegates
// and stores the result. Cache failures are ignored: the cache is
// best-effort, never a source of errors.
func (s *CachedSource) Questions(ctx context.Context, keyword string) ([]string, error) {
	key := cache.Key("questions:" + s.inner.Name() + ":" + keyword)

	if data, found := s.cache.Get(key); found {
		var questions []string
		if err := json.Unmarshal(data, &questions); err == nil {
			return questions, nil
		}
	}

	questions, err := s.inner.Questions(ctx, keyword)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(questions); err == nil {
		_ = s.cache.Set(key, data, s.ttl)
	}

	return questions, nil
}
