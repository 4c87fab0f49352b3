package generation

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"imgstudio/config"
	"imgstudio/config/models"
	"imgstudio/internal/openai"
	"imgstudio/internal/providers"
)

// ErrAllFailed is the reason reported when a looped strategy produced nothing.
const ErrAllFailed = "all image generations failed"

// SeedSource returns a seed in [0, 2^32-1].
type SeedSource func() uint32

// Strategy produces images for one provider kind.
type Strategy interface {
	Generate(ctx context.Context, client *openai.Client, profile models.Profile, params Params) Outcome
}

// Dispatcher selects and runs the strategy for a profile.
type Dispatcher struct {
	httpClient *http.Client
	timeout    time.Duration
	seed       SeedSource
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithHTTPClient sets the client used by the looped strategies
func WithHTTPClient(client *http.Client) Option {
	return func(d *Dispatcher) {
		d.httpClient = client
	}
}

// WithTimeout sets the per-call timeout
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.timeout = timeout
	}
}

// WithSeedSource replaces the random seed source
func WithSeedSource(seed SeedSource) Option {
	return func(d *Dispatcher) {
		d.seed = seed
	}
}

// NewDispatcher creates a Dispatcher with the default timeout and a random seed source.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		timeout: config.DefaultRequestTimeout,
		seed:    rand.Uint32,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.httpClient == nil {
		d.httpClient = &http.Client{}
	}
	return d
}

// StrategyFor returns the strategy for a provider id. Unknown providers use
// the compatible strategy.
func (d *Dispatcher) StrategyFor(providerID string) Strategy {
	kind := providers.KindCompatible
	if p, err := providers.Get(providerID); err == nil {
		kind = p.Kind()
	}

	switch kind {
	case providers.KindOpen:
		return &openEndpoint{http: d.httpClient, timeout: d.timeout, seed: d.seed}
	case providers.KindInference:
		return &inference{http: d.httpClient, timeout: d.timeout}
	default:
		return &compatible{http: d.httpClient, timeout: d.timeout}
	}
}

// Generate runs exactly one strategy for the profile. client is used by the
// compatible strategy; when nil one is built from the profile.
func (d *Dispatcher) Generate(ctx context.Context, client *openai.Client, profile models.Profile, params Params) Outcome {
	params.Count = ClampCount(params.Count, config.MaxBatchSize)
	return d.StrategyFor(profile.Provider).Generate(ctx, client, profile, params)
}
