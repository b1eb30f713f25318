package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"github.com/geniehq/genie-search/pkg/domain/embedding"
	"github.com/geniehq/genie-search/pkg/infra/httpx"
	"github.com/geniehq/genie-search/pkg/infra/prometheus"
)

const (
	DefaultEmbeddingsURL  = "https://api.openai.com/v1/embeddings"
	DefaultDimension      = 4096
	defaultRequestTimeout = 5 * time.Second
)

// Client is the subset of fasthttp.Client the service needs; *fasthttp.Client
// satisfies it.
type Client interface {
	DoTimeout(req *fasthttp.Request, resp *fasthttp.Response, timeout time.Duration) error
}

type Config struct {
	URL       string
	Model     string
	APIKey    string
	Dimension int
	Timeout   time.Duration
}

type embeddingService struct {
	client  Client
	breaker httpx.CircuitBreaker
	logger  *logrus.Logger
	cfg     Config
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingData struct {
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

type embeddingResponse struct {
	Data []embeddingData `json:"data"`
}

// NewEmbeddingService returns a Creator that never fails its caller: on
// any provider error it logs and returns the all-zero vector of the
// configured dimension, so every caller sees a well-formed fixed-length
// embedding. It does not retry; the passed context bounds each call.
func NewEmbeddingService(
	client Client,
	breaker httpx.CircuitBreaker,
	logger *logrus.Logger,
	cfg Config,
) embedding.Creator {
	if cfg.URL == "" {
		cfg.URL = DefaultEmbeddingsURL
	}
	if cfg.Dimension <= 0 {
		cfg.Dimension = DefaultDimension
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRequestTimeout
	}
	return &embeddingService{
		client:  client,
		breaker: breaker,
		logger:  logger,
		cfg:     cfg,
	}
}

func (s *embeddingService) Generate(ctx context.Context, text string) (*embedding.Embedding, error) {
	raw, err := s.fetch(ctx, text)
	if err != nil {
		s.logger.WithError(err).Warn("embedding provider failed, falling back to zero vector")
		prometheus.EmbeddingFallbacksTotal.Inc()
		return embedding.Zero(s.cfg.Dimension), nil
	}
	return &embedding.Embedding{
		Value:     s.repair(raw),
		CreatedAt: time.Now(),
	}, nil
}

func (s *embeddingService) fetch(ctx context.Context, text string) ([]float32, error) {
	if s.cfg.APIKey == "" {
		return nil, fmt.Errorf("embeddings API key not provided")
	}

	pBytes, err := json.Marshal(embeddingRequest{
		Model: s.cfg.Model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding request payload: %w", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.cfg.URL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.cfg.APIKey))
	req.SetBody(pBytes)

	if err := s.breaker.Execute(func() error {
		return s.doRequestWithContext(ctx, req, resp)
	}); err != nil {
		return nil, err
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("non-OK response from embeddings API: %d", resp.StatusCode())
	}

	var embResp embeddingResponse
	if err := json.Unmarshal(resp.Body(), &embResp); err != nil {
		return nil, fmt.Errorf("failed to decode embeddings response: %w", err)
	}

	if len(embResp.Data) == 0 || len(embResp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("empty embeddings from API")
	}

	return embResp.Data[0].Embedding, nil
}

func (s *embeddingService) doRequestWithContext(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.client.DoTimeout(req, resp, s.cfg.Timeout)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// repair pads short vectors with zeros and truncates over-length ones so
// the fixed-dimension invariant holds for every stored vector.
func (s *embeddingService) repair(raw []float32) []float32 {
	d := s.cfg.Dimension
	if len(raw) == d {
		return raw
	}
	if len(raw) > d {
		s.logger.Warnf("embedding size %d exceeds expected dimension %d, truncating", len(raw), d)
		return raw[:d]
	}
	s.logger.Warnf("embedding size %d below expected dimension %d, zero padding", len(raw), d)
	padded := make([]float32, d)
	copy(padded, raw)
	return padded
}
