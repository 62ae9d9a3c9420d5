package steamworkshop

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors a Client reports into.
//
// Create one per registry and share it between clients:
//
//	m, err := steamworkshop.NewMetrics(prometheus.DefaultRegisterer)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := steamworkshop.NewClient(steamworkshop.WithMetrics(m))
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg. When reg
// already holds identical collectors, those are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "steamworkshop_requests_total",
		Help: "Total number of Steam Workshop API calls by endpoint and outcome code",
	}, []string{"endpoint", "code"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "steamworkshop_request_duration_seconds",
		Help:    "Duration of Steam Workshop API calls in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	var err error
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}

	return &Metrics{requests: requests, duration: duration}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// observe records one finished call. code is "OK" or an [Error] code.
func (m *Metrics) observe(e Endpoint, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(e.String(), code).Inc()
	m.duration.WithLabelValues(e.String()).Observe(elapsed.Seconds())
}
