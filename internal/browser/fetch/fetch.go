// internal/browser/fetch/fetch.go
package fetch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/xkilldash9x/browsercore/internal/browser/dom"
	"github.com/xkilldash9x/browsercore/internal/browser/network"
)

// Config bounds how a Fetcher issues requests.
type Config struct {
	// Concurrency is the maximum number of requests in flight. Values below 1 mean 1.
	Concurrency int
	// RequestsPerSecond caps the start rate. Zero or negative disables the limit.
	RequestsPerSecond float64
	// Burst is the limiter bucket size. Values below 1 mean 1.
	Burst int
}

// DefaultConfig returns the settings used when none are supplied.
func DefaultConfig() Config {
	return Config{Concurrency: 4, RequestsPerSecond: 10, Burst: 1}
}

// Result is the outcome of one request in a batch.
type Result struct {
	ID       string
	Options  network.Options
	Response *network.Response
	Err      error
	Duration time.Duration
}

// Document decodes the body and builds the annotated DOM from it.
func (r Result) Document(logger *zap.Logger) (*dom.Node, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	body, err := r.Response.DecodedBody()
	if err != nil {
		return nil, err
	}
	return dom.Parse(string(body), logger)
}

// Fetcher runs independent requests with bounded concurrency. Every request
// gets its own connection and response parser.
type Fetcher struct {
	cfg     Config
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New creates a Fetcher. A nil logger disables logging.
func New(cfg Config, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &Fetcher{
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, cfg.Burst),
		logger:  logger.Named("fetch"),
	}
}

// Config returns the normalized configuration.
func (f *Fetcher) Config() Config { return f.cfg }

// Fetch builds and sends a single request, waiting on the rate limiter first.
func (f *Fetcher) Fetch(ctx context.Context, opts network.Options) (res Result) {
	res = Result{ID: uuid.NewString(), Options: opts}
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	if err := f.limiter.Wait(ctx); err != nil {
		res.Err = err
		return res
	}

	if opts.Logger == nil {
		opts.Logger = f.logger.With(zap.String("fetch_id", res.ID))
	}
	req, err := network.Build(opts)
	if err != nil {
		res.Err = err
		return res
	}
	res.Response, res.Err = req.Send(ctx, nil)
	return res
}

// FetchAll issues every request and returns the results in input order.
// Per-request failures are reported in Result.Err; the returned error is
// non-nil only when ctx ends before the batch completes.
func (f *Fetcher) FetchAll(ctx context.Context, batch []network.Options) ([]Result, error) {
	results := make([]Result, len(batch))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(f.cfg.Concurrency)

	f.logger.Debug("Starting batch", zap.Int("requests", len(batch)), zap.Int("concurrency", f.cfg.Concurrency))

	for i, opts := range batch {
		i, opts := i, opts
		g.Go(func() error {
			// The slot is written before the context check so skipped entries remain identifiable.
			results[i] = Result{ID: uuid.NewString(), Options: opts}
			if err := groupCtx.Err(); err != nil {
				results[i].Err = err
				return err
			}
			results[i] = f.Fetch(groupCtx, opts)
			if results[i].Err != nil {
				f.logger.Debug("Request failed", zap.String("fetch_id", results[i].ID), zap.Error(results[i].Err))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
