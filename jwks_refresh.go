package jwt

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// Fetcher retrieves a JwkSet from a remote endpoint. The live
// implementation is HTTPFetcher; tests supply their own.
type Fetcher interface {
	Fetch(ctx context.Context) (JwkSet, error)
}

// HTTPFetcher is the live Fetcher: GET jwksURL, require a 2xx response,
// and decode the body as a JwkSet. HTTP and decode failures are
// surfaced as ErrMalformedToken, matching every other codec boundary in
// this package.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// NewHTTPFetcher builds an HTTPFetcher against url, using client if
// non-nil or http.DefaultClient otherwise. The client's connect/read
// timeouts are inherited as-is; this package adds none of its own
// (spec: timeouts are not intrinsic here).
func NewHTTPFetcher(url string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPFetcher{URL: url, Client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context) (JwkSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return JwkSet{}, malformed("jwks fetch: %v", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return JwkSet{}, malformed("jwks fetch: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return JwkSet{}, malformed("jwks fetch: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return JwkSet{}, malformed("jwks fetch: reading body: %v", err)
	}

	set, err := DecodeJwkSet(body)
	if err != nil {
		return JwkSet{}, malformed("jwks fetch: %v", err)
	}

	return set, nil
}

// RefreshConfig configures a RefreshingKeyStore.
type RefreshConfig struct {
	// RefreshInterval is how often the background task attempts a
	// periodic refresh.
	RefreshInterval time.Duration

	// MinRefreshInterval is the minimum spacing between fetch attempts,
	// applying to both periodic refresh and any external trigger
	// (TriggerRefresh). It is measured from the initial successful fetch
	// and then from each attempt that was let through, whether or not
	// that attempt succeeded; a failed attempt delays the next one just
	// as a successful one does.
	MinRefreshInterval time.Duration

	// Logger receives warnings for swallowed periodic-refresh failures.
	// Defaults to slog.Default() when nil.
	Logger *slog.Logger
}

// RefreshingKeyStore wraps a Fetcher and exposes Keys as a KeyStore,
// refreshing its backing JwkSet on an interval while retaining the last
// known good sequence across transient failures.
//
// Its internal state is a single atomic.Pointer to an immutable
// snapshot: every reader observes either the pre-refresh or the
// post-refresh sequence, never a partial write (§5 ordering guarantee).
// Concurrent fetch attempts (periodic tick racing a manual
// TriggerRefresh) are coalesced by a singleflight.Group; the one-shot
// initial-fetch latch is the ready channel, closed once by publish.
type RefreshingKeyStore struct {
	fetcher Fetcher
	cfg     RefreshConfig
	logger  *slog.Logger

	keys      atomic.Pointer[[]Jwk]
	ready     chan struct{}
	readyOnce sync.Once

	lastSuccess atomic.Pointer[time.Time]
	limiter     *rate.Limiter

	sf singleflight.Group

	cancel context.CancelFunc
	done   chan struct{}
}

// NewRefreshingKeyStore constructs a RefreshingKeyStore and schedules
// its initial fetch. The returned store's Keys method will block
// (respecting the caller's context) until that initial fetch succeeds;
// construction itself does not block. The background refresh task is
// tied to ctx: cancelling ctx stops the task and, via its own
// cancellation, interrupts any in-flight HTTP request.
func NewRefreshingKeyStore(ctx context.Context, fetcher Fetcher, cfg RefreshConfig) *RefreshingKeyStore {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	taskCtx, cancel := context.WithCancel(ctx)

	s := &RefreshingKeyStore{
		fetcher: fetcher,
		cfg:     cfg,
		logger:  cfg.Logger,
		ready:   make(chan struct{}),
		limiter: rate.NewLimiter(rate.Every(cfg.MinRefreshInterval), 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	go s.initialFetchThenLoop(taskCtx)

	return s
}

// Keys returns the current key sequence, blocking until the initial
// fetch completes or ctx is cancelled (§5: "the initial fetch completes
// before any keys() call returns"). After the initial fetch, it is
// always non-blocking.
func (s *RefreshingKeyStore) Keys(ctx context.Context) []Jwk {
	select {
	case <-s.ready:
	case <-ctx.Done():
		return nil
	}

	if keys := s.keys.Load(); keys != nil {
		return *keys
	}

	return nil
}

// Close stops the background refresh task and waits for it to exit,
// interrupting any in-flight HTTP request as part of cancellation.
func (s *RefreshingKeyStore) Close() {
	s.cancel()
	<-s.done
}

// TriggerRefresh attempts an out-of-band refresh, subject to the same
// rate limit as the periodic task. Concurrent calls (and a concurrent
// periodic tick) collapse into a single fetch via singleflight.
func (s *RefreshingKeyStore) TriggerRefresh(ctx context.Context) error {
	return s.attemptRefresh(ctx)
}

func (s *RefreshingKeyStore) initialFetchThenLoop(ctx context.Context) {
	defer close(s.done)

	s.runInitialFetch(ctx)

	if s.cfg.RefreshInterval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(s.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.attemptRefresh(ctx); err != nil {
				s.logger.Warn("jwks: periodic refresh failed, retaining last known good keys",
					"error", err)
			}
		}
	}
}

// runInitialFetch retries with exponential backoff starting at 1s, up
// to 20 retries after the first attempt. Permanent exhaustion is a fatal defect per spec: the
// service cannot function without initial keys, so this panics rather
// than leaving Keys() blocked forever on a store that will never
// recover. Callers who would rather surface this as an error should
// wrap construction with their own readiness probe against Keys(ctx)
// under a bounded context instead of relying on this panic.
func (s *RefreshingKeyStore) runInitialFetch(ctx context.Context) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	bctx := backoff.WithContext(backoff.WithMaxRetries(b, 20), ctx)

	operation := func() error {
		set, err, _ := s.sf.Do("refresh", func() (any, error) {
			return s.fetcher.Fetch(ctx)
		})
		if err != nil {
			return err
		}

		s.publish(set.(JwkSet).Keys)
		return nil
	}

	err := backoff.Retry(operation, bctx)
	if err != nil {
		if ctx.Err() != nil {
			// The owning scope was cancelled before keys ever arrived;
			// this is shutdown, not exhaustion, so there is nothing to
			// panic about — Keys(ctx) callers will simply observe their
			// own context's cancellation.
			return
		}

		panic(fmt.Sprintf("jwt: JWKS initial fetch exhausted retries: %v", err))
	}

	// The limiter starts with a full burst token so that a caller
	// invoking TriggerRefresh immediately after construction isn't
	// gated against a fetch that hasn't happened yet. That token has
	// now served its purpose; draining it here means the first
	// periodic tick is correctly gated against MinRefreshInterval
	// measured from this successful initial fetch, rather than firing
	// an ungated extra request before that interval has elapsed.
	s.limiter.AllowN(Clock(), 1)
}

// attemptRefresh applies the rate-limit gate (skipping the fetch
// entirely when called within MinRefreshInterval of the previous
// let-through attempt, successful or not) and
// then performs a fetch through the singleflight group, publishing on
// success. TriggerRefresh and the periodic task both funnel through
// this, so a manual trigger racing a tick collapses into one HTTP call.
func (s *RefreshingKeyStore) attemptRefresh(ctx context.Context) error {
	if !s.limiter.AllowN(Clock(), 1) {
		return nil
	}

	v, err, _ := s.sf.Do("refresh", func() (any, error) {
		return s.fetcher.Fetch(ctx)
	})
	if err != nil {
		return err
	}

	s.publish(v.(JwkSet).Keys)
	return nil
}

// publish installs a new key sequence via a single atomic pointer
// store — readers never observe a partial write — and fulfils the
// initial-fetch latch exactly once.
func (s *RefreshingKeyStore) publish(keys []Jwk) {
	cp := make([]Jwk, len(keys))
	copy(cp, keys)
	s.keys.Store(&cp)

	now := Clock()
	s.lastSuccess.Store(&now)

	s.readyOnce.Do(func() { close(s.ready) })

	kids := make([]redactedJwk, len(cp))
	for i, j := range cp {
		kids[i] = redactedJwk(j)
	}
	s.logger.Debug("jwks: published key set", "keys", kids)
}
