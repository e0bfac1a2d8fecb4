package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/lexscan/internal/cache"
	"github.com/ppiankov/lexscan/internal/metrics"
	"github.com/ppiankov/lexscan/internal/model"
	"github.com/ppiankov/lexscan/internal/worker"
)

// Guard applies rate limiting, response caching, logging and metrics around
// calls to one provider. Limiter and Cache are optional.
type Guard struct {
	provider string
	limiter  *worker.Limiter
	cache    cache.Cache
	ttl      time.Duration
	logger   *zap.Logger
}

// NewGuard creates a guard for the named provider
func NewGuard(provider string, limiter *worker.Limiter, c cache.Cache, ttl time.Duration, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{
		provider: provider,
		limiter:  limiter,
		cache:    c,
		ttl:      ttl,
		logger:   logger,
	}
}

// do returns a cached response for key or calls fn and caches its result
func (g *Guard) do(ctx context.Context, name Name, key string, fn func(context.Context) ([]byte, error)) ([]byte, error) {
	if g.cache != nil {
		if data, ok := g.cache.Get(key); ok {
			metrics.CapabilityCacheTotal.WithLabelValues("hit").Inc()
			metrics.CapabilityRequestsTotal.WithLabelValues(string(name), g.provider, "cached").Inc()
			return data, nil
		}
		metrics.CapabilityCacheTotal.WithLabelValues("miss").Inc()
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx, g.provider); err != nil {
			metrics.CapabilityRequestsTotal.WithLabelValues(string(name), g.provider, "rate_limited").Inc()
			return nil, Unavailable(name, fmt.Errorf("rate limit: %w", err))
		}
	}

	start := time.Now()
	data, err := fn(ctx)
	duration := time.Since(start)
	metrics.CapabilityRequestDuration.WithLabelValues(string(name), g.provider).Observe(duration.Seconds())

	if err != nil {
		metrics.CapabilityRequestsTotal.WithLabelValues(string(name), g.provider, "error").Inc()
		g.logger.Error("Capability request failed",
			zap.String("capability", string(name)),
			zap.String("provider", g.provider),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, Unavailable(name, err)
	}

	metrics.CapabilityRequestsTotal.WithLabelValues(string(name), g.provider, "ok").Inc()
	g.logger.Debug("Capability request completed",
		zap.String("capability", string(name)),
		zap.String("provider", g.provider),
		zap.Duration("duration", duration),
		zap.Int("response_bytes", len(data)),
	)

	if g.cache != nil {
		if err := g.cache.Set(key, data, g.ttl); err != nil {
			g.logger.Warn("Capability cache write failed", zap.Error(err))
		}
	}
	return data, nil
}

// InstrumentedRecognizer wraps an EntityRecognizer with a Guard
type InstrumentedRecognizer struct {
	inner EntityRecognizer
	guard *Guard
}

// NewInstrumentedRecognizer wraps inner
func NewInstrumentedRecognizer(inner EntityRecognizer, guard *Guard) *InstrumentedRecognizer {
	return &InstrumentedRecognizer{inner: inner, guard: guard}
}

// RecognizeEntities delegates to the inner recognizer through the guard
func (r *InstrumentedRecognizer) RecognizeEntities(ctx context.Context, text string) ([]model.NamedEntity, error) {
	key := cache.CacheKey(string(NER), r.guard.provider, text)

	data, err := r.guard.do(ctx, NER, key, func(ctx context.Context) ([]byte, error) {
		entities, err := r.inner.RecognizeEntities(ctx, text)
		if err != nil {
			return nil, err
		}
		return json.Marshal(entities)
	})
	if err != nil {
		return nil, err
	}

	var entities []model.NamedEntity
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, Unavailable(NER, fmt.Errorf("decode cached entities: %w", err))
	}
	return entities, nil
}

// InstrumentedSummarizer wraps an AbstractiveSummarizer with a Guard
type InstrumentedSummarizer struct {
	inner AbstractiveSummarizer
	guard *Guard
}

// NewInstrumentedSummarizer wraps inner
func NewInstrumentedSummarizer(inner AbstractiveSummarizer, guard *Guard) *InstrumentedSummarizer {
	return &InstrumentedSummarizer{inner: inner, guard: guard}
}

// SummarizeSpan delegates to the inner summarizer through the guard
func (s *InstrumentedSummarizer) SummarizeSpan(ctx context.Context, text string, maxWords, minWords int) (string, error) {
	key := cache.CacheKey(string(Abstractive), s.guard.provider, text, strconv.Itoa(maxWords), strconv.Itoa(minWords))

	data, err := s.guard.do(ctx, Abstractive, key, func(ctx context.Context) ([]byte, error) {
		summary, err := s.inner.SummarizeSpan(ctx, text, maxWords, minWords)
		if err != nil {
			return nil, err
		}
		return []byte(summary), nil
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
