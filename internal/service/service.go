package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"dropos/internal/cache"
	"dropos/internal/domain"
	"dropos/internal/events"
	"dropos/internal/leveling"
	"dropos/internal/store"
	"dropos/internal/xid"
)

const (
	saleXPMin    = 150
	saleXPSpread = 200
)

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

func actorName(ctx context.Context) string {
	if actor, ok := ActorFromContext(ctx); ok && actor.Username != "" {
		return actor.Username
	}
	return "system"
}

type Service struct {
	kv         store.KV
	bus        *events.Bus
	metrics    cache.MetricsCache
	metricsTTL time.Duration
	now        func() time.Time
	ids        xid.Generator

	rngMu sync.Mutex
	rng   *rand.Rand
}

type Option func(*Service)

// WithRand injects the source for XP and mission bonuses.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rng = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDs(ids xid.Generator) Option {
	return func(s *Service) { s.ids = ids }
}

func WithMetricsTTL(ttl time.Duration) Option {
	return func(s *Service) { s.metricsTTL = ttl }
}

func New(kv store.KV, bus *events.Bus, metrics cache.MetricsCache, opts ...Option) *Service {
	if metrics == nil {
		metrics = cache.NoopMetricsCache{}
	}
	s := &Service{
		kv:         kv,
		bus:        bus,
		metrics:    metrics,
		metricsTTL: 30 * time.Second,
		now:        time.Now,
		ids:        xid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(s.now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>17|1))
	}
	return s
}

func (s *Service) Bus() *events.Bus {
	return s.bus
}

func (s *Service) int64N(n int64) int64 {
	if n <= 0 {
		return 0
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Int64N(n)
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

// change is one store transaction plus the events to announce once it has
// committed.
type change struct {
	tx        store.Tx
	at        time.Time
	events    []events.Event
	unchanged bool
}

func (c *change) emit(kind events.Kind, collection string) {
	c.events = append(c.events, events.Event{Kind: kind, Collection: collection, At: c.at})
}

// mutate commits fn and the revision bump atomically, then publishes.
// Observers therefore always see the committed state. fn sets c.unchanged
// when it wrote nothing, which skips the bump and the events.
func (s *Service) mutate(ctx context.Context, fn func(c *change) error) error {
	var pending []events.Event
	err := s.kv.Update(ctx, func(tx store.Tx) error {
		c := &change{tx: tx, at: s.clock()}
		if err := fn(c); err != nil {
			return err
		}
		if c.unchanged {
			return nil
		}
		if _, err := store.BumpRevision(tx); err != nil {
			return err
		}
		pending = c.events
		return nil
	})
	if err != nil {
		return err
	}
	s.bus.PublishAll(pending...)
	return nil
}

// grantXP applies amount to the stored stats inside c.
func (s *Service) grantXP(c *change, amount int64) (domain.ExperienceResponse, error) {
	amount = max(amount, 0)
	stats := store.ReadTx(c.tx, store.KeyStats, domain.DefaultStats())
	stats, reached := leveling.AddExperience(stats, amount)
	if err := store.Write(c.tx, store.KeyStats, stats); err != nil {
		return domain.ExperienceResponse{}, err
	}

	c.events = append(c.events, events.Event{Kind: events.XPGained, Collection: store.KeyStats, Amount: amount, At: c.at})
	for _, level := range reached {
		c.events = append(c.events, events.Event{Kind: events.LevelUp, Collection: store.KeyStats, Level: level, At: c.at})
	}
	c.emit(events.StatsChanged, store.KeyStats)
	if reached == nil {
		reached = []int{}
	}
	return domain.ExperienceResponse{Stats: stats, LevelUps: reached}, nil
}

func removeWhere[T any](items []T, match func(T) bool) ([]T, int) {
	out := items[:0:0]
	removed := 0
	for _, item := range items {
		if match(item) {
			removed++
			continue
		}
		out = append(out, item)
	}
	return out, removed
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
