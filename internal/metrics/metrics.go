package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	subsystemMeetings = "meetings"
	subsystemHTTP     = "http"
)

type Metrics struct {
	registry *prometheus.Registry

	MeetingsCreated    *prometheus.CounterVec
	MeetingsFailed     *prometheus.CounterVec
	ActionsRateLimited prometheus.Counter
	Navigations        *prometheus.CounterVec
}

func New(namespace string, registry *prometheus.Registry) *Metrics {
	var m Metrics

	if registry != nil {
		m.registry = registry
	} else {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
			Namespace: namespace,
		}))
		m.registry.MustRegister(collectors.NewGoCollector())
	}

	m.MeetingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemMeetings,
			Name:      "created_total",
			Help:      "Total number of meetings created",
		},
		[]string{"kind"},
	)
	m.registry.MustRegister(m.MeetingsCreated)

	m.MeetingsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemMeetings,
			Name:      "create_failures_total",
			Help:      "Total number of failed meeting creations",
		},
		[]string{"kind"},
	)
	m.registry.MustRegister(m.MeetingsFailed)

	m.ActionsRateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemHTTP,
			Name:      "rate_limited_total",
			Help:      "Total number of page actions rejected by the rate limiter",
		},
	)
	m.registry.MustRegister(m.ActionsRateLimited)

	m.Navigations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemHTTP,
			Name:      "navigations_total",
			Help:      "Total number of navigations triggered by page actions",
		},
		[]string{"target"},
	)
	m.registry.MustRegister(m.Navigations)

	return &m
}

func (m *Metrics) MeetingCreated(kind string) {
	m.MeetingsCreated.With(prometheus.Labels{"kind": kind}).Inc()
}

func (m *Metrics) MeetingCreateFailed(kind string) {
	m.MeetingsFailed.With(prometheus.Labels{"kind": kind}).Inc()
}

func (m *Metrics) IncRateLimited() {
	m.ActionsRateLimited.Inc()
}

// IncNavigation counts a navigation; target is a route class such as
// "meeting", "recordings" or "external".
func (m *Metrics) IncNavigation(target string) {
	m.Navigations.With(prometheus.Labels{"target": target}).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
