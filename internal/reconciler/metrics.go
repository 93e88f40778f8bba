package reconciler

import (
	"sync"
	"time"

	"specsync/pkg/logging"
)

// Metrics tracks event and notification counters for one Reconciler.
type Metrics struct {
	mu sync.RWMutex

	events        map[EventKind]int64
	eventFailures int64

	notifications        map[string]int64
	notificationFailures map[string]int64
	loadFailures         int64

	lastEventAt   time.Time
	lastFailureAt time.Time
}

// NewMetrics creates an empty Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		events:               make(map[EventKind]int64),
		notifications:        make(map[string]int64),
		notificationFailures: make(map[string]int64),
	}
}

// RecordEvent records a processed event and whether it failed.
func (m *Metrics) RecordEvent(kind EventKind, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events[kind]++
	m.lastEventAt = time.Now()
	if err != nil {
		m.eventFailures++
		m.lastFailureAt = m.lastEventAt
	}
}

// RecordNotification records a sink call.
func (m *Metrics) RecordNotification(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notifications[op]++
	if err != nil {
		m.notificationFailures[op]++
		logging.Debug("ReconcilerMetrics", "Sink %s failed (failures: %d)", op, m.notificationFailures[op])
	}
}

// RecordLoadFailure records a file that could not be loaded.
func (m *Metrics) RecordLoadFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadFailures++
}

// MetricsSummary is a read-only view of the counters.
type MetricsSummary struct {
	Events               map[EventKind]int64 `json:"events"`
	EventFailures        int64               `json:"event_failures"`
	Notifications        map[string]int64    `json:"notifications"`
	NotificationFailures map[string]int64    `json:"notification_failures"`
	LoadFailures         int64               `json:"load_failures"`
	LastEventAt          time.Time           `json:"last_event_at,omitempty"`
	LastFailureAt        time.Time           `json:"last_failure_at,omitempty"`
}

// Summary returns a copy of the current counters.
func (m *Metrics) Summary() MetricsSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := MetricsSummary{
		Events:               make(map[EventKind]int64, len(m.events)),
		EventFailures:        m.eventFailures,
		Notifications:        make(map[string]int64, len(m.notifications)),
		NotificationFailures: make(map[string]int64, len(m.notificationFailures)),
		LoadFailures:         m.loadFailures,
		LastEventAt:          m.lastEventAt,
		LastFailureAt:        m.lastFailureAt,
	}
	for k, v := range m.events {
		s.Events[k] = v
	}
	for k, v := range m.notifications {
		s.Notifications[k] = v
	}
	for k, v := range m.notificationFailures {
		s.NotificationFailures[k] = v
	}
	return s
}

// TotalEvents sums the per-kind event counters.
func (s MetricsSummary) TotalEvents() int64 {
	var total int64
	for _, n := range s.Events {
		total += n
	}
	return total
}
