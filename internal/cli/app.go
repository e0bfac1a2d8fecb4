package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/ppiankov/lexscan/internal/cache"
	"github.com/ppiankov/lexscan/internal/capability"
	"github.com/ppiankov/lexscan/internal/llm"
	"github.com/ppiankov/lexscan/internal/model"
	"github.com/ppiankov/lexscan/internal/pipeline"
	"github.com/ppiankov/lexscan/internal/worker"
)

// app holds what every command needs after configuration is loaded
type app struct {
	cfg      *model.Config
	logger   *zap.Logger
	pipeline *pipeline.Pipeline
	closers  []io.Closer
}

func newApp(ctx context.Context, cfg *model.Config) (*app, error) {
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	deps, closer := buildCapabilities(ctx, cfg, log)

	p, err := pipeline.New(cfg, deps, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	a := &app{cfg: cfg, logger: log, pipeline: p}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}
	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("Close failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// buildCapabilities wires the configured LLM provider into the NER and
// abstractive capabilities behind a rate limiter and response cache.
// A provider that cannot be created leaves the capabilities disabled so
// that analysis falls back to the lexical results.
func buildCapabilities(ctx context.Context, cfg *model.Config, log *zap.Logger) (pipeline.Deps, io.Closer) {
	wantNER := cfg.Capabilities.NER
	wantAbstractive := cfg.Capabilities.Abstractive || cfg.Summary.Type == string(model.SummaryAbstractive)
	if !wantNER && !wantAbstractive {
		return pipeline.Deps{}, nil
	}

	provider, err := llm.NewProvider(ctx, llm.ApplyEnv(llm.ConfigFromModel(cfg.LLM)))
	if err != nil {
		log.Warn("LLM provider unavailable, using lexical fallbacks", zap.Error(err))
		fmt.Fprintf(os.Stderr, "⚠ LLM provider unavailable: %v\n", err)
		return pipeline.Deps{}, nil
	}
	if provider == nil {
		log.Warn("No LLM provider configured, using lexical fallbacks")
		return pipeline.Deps{}, nil
	}

	var c cache.Cache
	if cfg.Capabilities.CacheEnabled {
		c = cache.NewMemoryCache(cfg.Capabilities.CacheTTL, 2*cfg.Capabilities.CacheTTL)
	}
	limiter := worker.NewLimiter(cfg.Capabilities.RequestsPerSecond, cfg.Capabilities.Burst)
	guard := capability.NewGuard(provider.Name(), limiter, c, cfg.Capabilities.CacheTTL, log)

	var deps pipeline.Deps
	if wantNER {
		deps.Recognizer = capability.NewInstrumentedRecognizer(llm.NewRecognizer(provider), guard)
	}
	if wantAbstractive {
		deps.Summarizer = capability.NewInstrumentedSummarizer(llm.NewSummarizer(provider), guard)
	}

	log.Debug("Capabilities enabled",
		zap.String("provider", provider.Name()),
		zap.Bool("ner", wantNER),
		zap.Bool("abstractive", wantAbstractive),
	)

	closer, _ := provider.(io.Closer)
	return deps, closer
}
