package events

import (
	"sync"
	"time"
)

type Kind string

const (
	ProductsChanged  Kind = "products.changed"
	SalesChanged     Kind = "sales.changed"
	FinanceChanged   Kind = "finance.changed"
	MissionsChanged  Kind = "missions.changed"
	StatsChanged     Kind = "stats.changed"
	ConfigChanged    Kind = "config.changed"
	SnapshotRestored Kind = "snapshot.restored"
	SaleRecorded     Kind = "sale.recorded"
	MissionCompleted Kind = "mission.completed"
	XPGained         Kind = "xp.gained"
	LevelUp          Kind = "level.up"
)

// Event tells observers that something changed and they should re-read it.
type Event struct {
	Kind       Kind      `json:"kind"`
	Collection string    `json:"collection,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	Amount     int64     `json:"amount,omitempty"`
	Level      int       `json:"level,omitempty"`
	At         time.Time `json:"at"`
}

type subscriber struct {
	id int
	fn func(Event)
}

// Bus delivers events synchronously, in subscription order. A nil *Bus
// drops everything.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   []subscriber
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(fn func(Event)) func() {
	if b == nil || fn == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish stamps ev with the current time when At is zero. Handlers run on
// the caller's goroutine and may publish or subscribe themselves.
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	b.mu.RLock()
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(ev)
	}
}

func (b *Bus) PublishAll(evs ...Event) {
	for _, ev := range evs {
		b.Publish(ev)
	}
}
