package events

import (
	"testing"
	"time"
)

func TestPublishDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var got []string
	bus.Subscribe(func(ev Event) { got = append(got, "first:"+string(ev.Kind)) })
	bus.Subscribe(func(ev Event) { got = append(got, "second:"+string(ev.Kind)) })

	bus.PublishAll(Event{Kind: SalesChanged}, Event{Kind: FinanceChanged})

	want := []string{
		"first:sales.changed", "second:sales.changed",
		"first:finance.changed", "second:finance.changed",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d deliveries, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %s at %d, got %s", want[i], i, got[i])
		}
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	count := 0
	unsubscribe := bus.Subscribe(func(Event) { count++ })

	bus.Publish(Event{Kind: StatsChanged})
	unsubscribe()
	unsubscribe()
	bus.Publish(Event{Kind: StatsChanged})

	if count != 1 {
		t.Fatalf("expected 1 delivery, got %d", count)
	}
}

func TestPublishStampsTime(t *testing.T) {
	bus := NewBus()
	var at time.Time
	bus.Subscribe(func(ev Event) { at = ev.At })
	bus.Publish(Event{Kind: ConfigChanged})
	if at.IsZero() {
		t.Fatalf("expected event time to be set")
	}
}

func TestHandlerMayPublish(t *testing.T) {
	bus := NewBus()
	var kinds []Kind
	bus.Subscribe(func(ev Event) {
		kinds = append(kinds, ev.Kind)
		if ev.Kind == XPGained {
			bus.Publish(Event{Kind: LevelUp, Level: 2})
		}
	})
	bus.Publish(Event{Kind: XPGained, Amount: 1200})
	if len(kinds) != 2 || kinds[1] != LevelUp {
		t.Fatalf("expected nested publish to be delivered, got %v", kinds)
	}
}

func TestNilBusIsNoop(t *testing.T) {
	var bus *Bus
	bus.Publish(Event{Kind: SalesChanged})
	bus.Subscribe(func(Event) {})()
}
