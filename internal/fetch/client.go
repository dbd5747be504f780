package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sync/singleflight"

	"github.com/arcanaland/arcanum/internal/cache"
	"github.com/arcanaland/arcanum/internal/catalog"
)

// Phase is the settlement state of a key.
type Phase string

const (
	Pending Phase = "pending"
	Success Phase = "success"
	Failed  Phase = "error"
)

// Status is the last known state of a key.
type Status struct {
	Phase     Phase
	Err       error
	UpdatedAt time.Time
}

type entry struct {
	class      Class
	generation uint64
	inflight   int
	status     Status
}

// pruneInterval is how often begin sweeps entries whose dedupe window has
// passed.
const pruneInterval = time.Minute

// Client serves repository reads through the cache. It is safe for
// concurrent use.
type Client struct {
	cards     *catalog.Cards
	tutorials *catalog.Tutorials
	cache     cache.RawCache
	logger    *slog.Logger

	retryInterval time.Duration
	now           func() time.Time

	group     singleflight.Group
	mu        sync.Mutex
	entries   map[string]*entry
	lastPrune time.Time
	offline   bool
}

// Option configures a Client.
type Option func(*Client)

// WithCache replaces the default in-memory cache.
func WithCache(c cache.RawCache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// WithRetryInterval overrides RetryInterval.
func WithRetryInterval(d time.Duration) Option {
	return func(cl *Client) { cl.retryInterval = d }
}

// New returns a client over the two repositories.
func New(cards *catalog.Cards, tutorials *catalog.Tutorials, opts ...Option) *Client {
	c := &Client{
		cards:         cards,
		tutorials:     tutorials,
		retryInterval: RetryInterval,
		now:           time.Now,
		entries:       map[string]*entry{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = cache.NewInMemoryCache()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Close releases the cache.
func (c *Client) Close() error {
	return c.cache.Close()
}

// State returns the last known status of key. Keys without a dedupe window
// are tracked only while a call is in flight, and other keys are forgotten
// once their window has passed.
func (c *Client) State(key Key) (Status, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok {
		return Status{}, false
	}
	return e.status, true
}

func (c *Client) begin(k string, class Class) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.lastPrune) >= pruneInterval {
		c.prune(now)
	}
	e, ok := c.entries[k]
	if !ok {
		e = &entry{class: class}
		c.entries[k] = e
	}
	e.inflight++
	e.status = Status{Phase: Pending, UpdatedAt: now}
	return e.generation
}

// prune drops idle entries older than their class's dedupe window. Callers
// hold c.mu.
func (c *Client) prune(now time.Time) {
	c.lastPrune = now
	for k, e := range c.entries {
		if e.inflight == 0 && now.Sub(e.status.UpdatedAt) >= Policies[e.class].Dedupe {
			delete(c.entries, k)
		}
	}
}

// observe tracks store reachability from a call's outcome. It reports
// whether the store just came back after a transport failure.
func (c *Client) observe(err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case errors.Is(err, catalog.ErrTransport):
		c.offline = true
	case err == nil && c.offline:
		c.offline = false
		return true
	}
	return false
}

// Online reports whether the last store call that settled was not a
// transport failure.
func (c *Client) Online() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.offline
}

// settle records the outcome unless the key was invalidated while the call
// was in flight. It reports whether the outcome is current.
func (c *Client) settle(k string, generation uint64, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[k]
	if !ok {
		return false
	}
	e.inflight--
	if e.inflight == 0 && Policies[e.class].Dedupe == 0 {
		delete(c.entries, k)
	}
	if e.generation != generation {
		return false
	}
	if err != nil {
		e.status = Status{Phase: Failed, Err: err, UpdatedAt: c.now()}
	} else {
		e.status = Status{Phase: Success, UpdatedAt: c.now()}
	}
	return true
}

// do runs fn under key's policy. Cached values are JSON encoded.
func do[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) (T, error) {
	policy := key.Op.Policy()
	k := key.String()

	if policy.Dedupe > 0 {
		if v, ok := cached[T](ctx, c, k); ok {
			return v, nil
		}
	}

	generation := c.begin(k, key.Op.Class())
	run := func() (T, error) { return retry(ctx, c, k, policy, fn) }

	var (
		v   T
		err error
	)
	if policy.Dedupe > 0 {
		var res any
		res, err, _ = c.group.Do(k+"#"+strconv.FormatUint(generation, 10), func() (any, error) {
			return run()
		})
		if typed, ok := res.(T); ok {
			v = typed
		}
	} else {
		v, err = run()
	}

	recovered := c.observe(err)
	current := c.settle(k, generation, err)
	if recovered {
		c.logger.Info("store reachable again, revalidating", "key", k)
		if rerr := c.Reconnected(ctx); rerr != nil {
			c.logger.Warn("revalidation failed", "error", rerr)
		}
	}
	if !current {
		c.logger.Debug("discarding superseded result", "key", k)
		return v, err
	}
	if err == nil && policy.Dedupe > 0 {
		save(ctx, c, k, v, policy.Dedupe)
	}
	return v, err
}

func cached[T any](ctx context.Context, c *Client, k string) (T, bool) {
	var v T
	b, ok, err := c.cache.Get(ctx, k)
	if err != nil {
		c.logger.Warn("cache read failed", "key", k, "error", err)
		return v, false
	}
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(b, &v); err != nil {
		c.logger.Warn("dropping undecodable cache entry", "key", k, "error", err)
		_ = c.cache.Delete(ctx, k)
		return v, false
	}
	return v, true
}

func save[T any](ctx context.Context, c *Client, k string, v T, ttl time.Duration) {
	b, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("cache encode failed", "key", k, "error", err)
		return
	}
	if err := c.cache.Set(ctx, k, b, ttl); err != nil {
		c.logger.Warn("cache write failed", "key", k, "error", err)
	}
}

// retry retries transport failures at a fixed interval. Every other error is
// returned at once.
func retry[T any](ctx context.Context, c *Client, k string, policy Policy, fn func(context.Context) (T, error)) (T, error) {
	attempt := 0
	op := func() (T, error) {
		attempt++
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, catalog.ErrTransport) {
			return v, backoff.Permanent(err)
		}
		c.logger.Warn("store call failed", "key", k, "attempt", attempt, "error", err)
		return v, err
	}
	v, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewConstantBackOff(c.retryInterval)),
		backoff.WithMaxTries(uint(policy.Retries+1)),
	)
	if err != nil && errors.Is(err, catalog.ErrTransport) {
		return v, fmt.Errorf("after %d attempts: %w", attempt, err)
	}
	return v, err
}

// Invalidate drops the cached value of key and supersedes any call in flight.
func (c *Client) Invalidate(ctx context.Context, key Key) error {
	k := key.String()
	c.mu.Lock()
	if e, ok := c.entries[k]; ok {
		e.generation++
	}
	c.mu.Unlock()
	return c.cache.Delete(ctx, k)
}

// InvalidateCards drops every cached card read, in every language.
func (c *Client) InvalidateCards(ctx context.Context) error {
	c.bump(func(k string, _ *entry) bool { return strings.HasPrefix(k, "cards.") })
	return c.cache.DeletePrefix(ctx, "cards.")
}

// InvalidateTutorials drops every cached tutorial read.
func (c *Client) InvalidateTutorials(ctx context.Context) error {
	c.bump(func(k string, _ *entry) bool { return strings.HasPrefix(k, "tutorials.") })
	return c.cache.DeletePrefix(ctx, "tutorials.")
}

// Focused drops the classes that revalidate when the consumer regains focus.
// Focus events come from the embedding consumer.
func (c *Client) Focused(ctx context.Context) error {
	return c.revalidate(ctx, func(p Policy) bool { return p.RevalidateOnFocus })
}

// Reconnected drops the classes that revalidate after a reconnect. The
// client calls it itself when a read succeeds after a transport failure.
func (c *Client) Reconnected(ctx context.Context) error {
	return c.revalidate(ctx, func(p Policy) bool { return p.RevalidateOnReconnect })
}

func (c *Client) revalidate(ctx context.Context, applies func(Policy) bool) error {
	classes := map[Class]bool{}
	for class, p := range Policies {
		if applies(p) {
			classes[class] = true
		}
	}
	c.bump(func(_ string, e *entry) bool { return classes[e.class] })

	var errs []error
	for op, class := range opClasses {
		if classes[class] {
			errs = append(errs, c.cache.DeletePrefix(ctx, string(op)+"|"))
		}
	}
	return errors.Join(errs...)
}

func (c *Client) bump(match func(string, *entry) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if match(k, e) {
			e.generation++
		}
	}
}
