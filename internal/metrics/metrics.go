package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	ItemsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsBought,
			Help: HelpTextItemsBought,
		},
		[]string{LabelItem},
	)

	PointsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePointsSpent,
			Help: HelpTextPointsSpent,
		},
	)

	StarterKitsGranted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStarterKits,
			Help: HelpTextStarterKits,
		},
	)

	StravaSyncs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStravaSyncs,
			Help: HelpTextStravaSyncs,
		},
		[]string{LabelStatus},
	)

	KmSynced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameKmSynced,
			Help: HelpTextKmSynced,
		},
	)

	RoomLayoutsSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRoomLayoutsSaved,
			Help: HelpTextRoomLayoutsSaved,
		},
	)
)
