package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const proxyHashSubsystem = "proxyhash"

type proxyHashMetrics struct {
	storeCounter prometheus.Counter

	loadCounter  prometheus.Counter
	missCounter  prometheus.Counter
	cacheHits    prometheus.Counter
	loadDuration prometheus.Histogram
}

func newProxyHashMetrics() proxyHashMetrics {
	var (
		storeCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: proxyHashSubsystem,
			Name:      "store_total",
			Help:      "Number of proxy hash mappings staged for write",
		})

		loadCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: proxyHashSubsystem,
			Name:      "load_total",
			Help:      "Number of proxy hash resolutions served",
		})

		missCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: proxyHashSubsystem,
			Name:      "miss_total",
			Help:      "Number of proxy hash lookups that found no mapping",
		})

		cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: proxyHashSubsystem,
			Name:      "cache_hits_total",
			Help:      "Number of proxy hash resolutions served from the in-memory cache",
		})

		loadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: proxyHashSubsystem,
			Name:      "load_time",
			Help:      "Proxy hash 'load' operations handling time",
		})
	)

	return proxyHashMetrics{
		storeCounter: storeCounter,
		loadCounter:  loadCounter,
		missCounter:  missCounter,
		cacheHits:    cacheHits,
		loadDuration: loadDuration,
	}
}

func (m proxyHashMetrics) register() {
	prometheus.MustRegister(m.storeCounter)
	prometheus.MustRegister(m.loadCounter)
	prometheus.MustRegister(m.missCounter)
	prometheus.MustRegister(m.cacheHits)
	prometheus.MustRegister(m.loadDuration)
}

// IncProxyHashStore increments the counter of staged proxy hash mappings.
func (m proxyHashMetrics) IncProxyHashStore() {
	m.storeCounter.Inc()
}

// IncProxyHashLoad increments the counter of served proxy hash resolutions.
func (m proxyHashMetrics) IncProxyHashLoad() {
	m.loadCounter.Inc()
}

// IncProxyHashMiss increments the counter of proxy hash lookups that found
// no mapping.
func (m proxyHashMetrics) IncProxyHashMiss() {
	m.missCounter.Inc()
}

// IncProxyHashCacheHit increments the counter of cache-served resolutions.
func (m proxyHashMetrics) IncProxyHashCacheHit() {
	m.cacheHits.Inc()
}

// AddProxyHashLoadDuration records handling time of a 'load' operation.
func (m proxyHashMetrics) AddProxyHashLoadDuration(d time.Duration) {
	m.loadDuration.Observe(d.Seconds())
}
