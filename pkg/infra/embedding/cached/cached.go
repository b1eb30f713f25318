package cached

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/geniehq/genie-search/pkg/cache"
	"github.com/geniehq/genie-search/pkg/domain/embedding"
)

const (
	embeddingCacheKeyPattern = "embedding:%x"
	embeddingCacheTTL        = 24 * time.Hour
)

type creator struct {
	inner  embedding.Creator
	cache  cache.Client
	logger *logrus.Logger
}

// NewCreator decorates a Creator with a redis cache keyed by a hash of
// the input text. Cache failures degrade to a direct provider call.
func NewCreator(inner embedding.Creator, cacheClient cache.Client, logger *logrus.Logger) embedding.Creator {
	return &creator{
		inner:  inner,
		cache:  cacheClient,
		logger: logger,
	}
}

func (c *creator) Generate(ctx context.Context, text string) (*embedding.Embedding, error) {
	key := fmt.Sprintf(embeddingCacheKeyPattern, sha256.Sum256([]byte(text)))

	if jsonData, err := c.cache.Get(ctx, key); err == nil {
		var emb embedding.Embedding
		if err := json.Unmarshal([]byte(jsonData), &emb); err == nil {
			return &emb, nil
		}
	}

	emb, err := c.inner.Generate(ctx, text)
	if err != nil {
		return nil, err
	}

	// Zero vectors are provider-failure fallbacks, not real embeddings;
	// caching them would pin the failure for the whole TTL.
	if isZero(emb.Value) {
		return emb, nil
	}

	if jsonData, err := json.Marshal(emb); err == nil {
		if err := c.cache.Set(ctx, key, string(jsonData), embeddingCacheTTL); err != nil {
			c.logger.WithError(err).Debug("failed to cache embedding")
		}
	}

	return emb, nil
}

func isZero(v []float32) bool {
	for _, val := range v {
		if val != 0 {
			return false
		}
	}
	return true
}
