package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"dropos/internal/events"
)

var (
	SalesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dropos_sales_recorded_total",
		Help: "Sales recorded, by channel.",
	}, []string{"channel"})

	XPGranted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dropos_xp_granted_total",
		Help: "Experience points granted.",
	})

	LevelUps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dropos_level_ups_total",
		Help: "Level-up events.",
	})

	MissionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dropos_missions_completed_total",
		Help: "Missions moved to completed.",
	})

	ReadFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dropos_storage_read_fallbacks_total",
		Help: "Store reads that fell back to the default value.",
	}, []string{"key"})

	Level = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dropos_level",
		Help: "Current operator level.",
	})
)

// Observe feeds bus events into the collectors. The returned func detaches.
func Observe(bus *events.Bus) func() {
	return bus.Subscribe(func(ev events.Event) {
		switch ev.Kind {
		case events.SaleRecorded:
			SalesRecorded.WithLabelValues(ev.Detail).Inc()
		case events.XPGained:
			XPGranted.Add(float64(ev.Amount))
		case events.LevelUp:
			LevelUps.Inc()
			Level.Set(float64(ev.Level))
		case events.MissionCompleted:
			MissionsCompleted.Inc()
		}
	})
}
