package cached

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geniehq/genie-search/pkg/cache"
	"github.com/geniehq/genie-search/pkg/domain/embedding"
)

type stubCreator struct {
	value []float32
	err   error
	calls int
}

func (s *stubCreator) Generate(ctx context.Context, text string) (*embedding.Embedding, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &embedding.Embedding{Value: s.value, CreatedAt: time.Now()}, nil
}

func cacheKey(text string) string {
	return fmt.Sprintf("embedding:%x", sha256.Sum256([]byte(text)))
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return logger
}

func TestGenerate_CacheMissGeneratesAndCaches(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	inner := &stubCreator{value: []float32{0.1, 0.2, 0.3}}

	key := cacheKey("hello")
	redisMock.ExpectGet(key).RedisNil()
	redisMock.Regexp().ExpectSet(key, `.*`, 24*time.Hour).SetVal("OK")

	creator := NewCreator(inner, cache.NewClientFromRedis(db), newTestLogger())
	emb, err := creator.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, emb.Value)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestGenerate_CacheHitSkipsProvider(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	inner := &stubCreator{value: []float32{9, 9, 9}}

	cachedEmb := embedding.Embedding{Value: []float32{0.5, 0.6}, CreatedAt: time.Now()}
	payload, err := json.Marshal(cachedEmb)
	require.NoError(t, err)
	redisMock.ExpectGet(cacheKey("hello")).SetVal(string(payload))

	creator := NewCreator(inner, cache.NewClientFromRedis(db), newTestLogger())
	emb, err := creator.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.6}, emb.Value)
	assert.Zero(t, inner.calls)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestGenerate_CacheFailureFallsThroughToProvider(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	inner := &stubCreator{value: []float32{1, 2}}

	key := cacheKey("hello")
	redisMock.ExpectGet(key).SetErr(errors.New("connection refused"))
	redisMock.Regexp().ExpectSet(key, `.*`, 24*time.Hour).SetErr(errors.New("connection refused"))

	creator := NewCreator(inner, cache.NewClientFromRedis(db), newTestLogger())
	emb, err := creator.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, emb.Value)
	assert.Equal(t, 1, inner.calls)
}

func TestGenerate_ZeroVectorIsNotCached(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	inner := &stubCreator{value: []float32{0, 0, 0}}

	redisMock.ExpectGet(cacheKey("hello")).RedisNil()
	// No Set expectation: a fallback vector must not be pinned in the cache.

	creator := NewCreator(inner, cache.NewClientFromRedis(db), newTestLogger())
	emb, err := creator.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0}, emb.Value)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestGenerate_ProviderErrorPropagates(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	inner := &stubCreator{err: errors.New("provider down")}

	redisMock.ExpectGet(cacheKey("hello")).RedisNil()

	creator := NewCreator(inner, cache.NewClientFromRedis(db), newTestLogger())
	_, err := creator.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}
