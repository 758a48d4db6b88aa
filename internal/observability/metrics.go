package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "safezone"

// Metrics - счётчики и гистограммы конвейера уведомлений
type Metrics struct {
	// Прогоны рассылки, outcome={success,invalid,not_found,storage_error}
	NotifyRuns             *prometheus.CounterVec
	NotifyDuration         prometheus.Histogram
	SubscriptionsEvaluated prometheus.Counter
	SubscriptionsMatched   prometheus.Counter
	DeliveryFailures       prometheus.Counter

	// Доставка вебхуков, result={delivered,failed,skipped}
	WebhookDeliveries *prometheus.CounterVec

	// Сообщения Kafka, result={processed,skipped,failed}
	TriggerMessages *prometheus.CounterVec

	// Геокодирование
	GeocodeRequests *prometheus.CounterVec // outcome={success,error,empty,rate_limited}
	GeocodeCache    *prometheus.CounterVec // result={hit,miss}
}

// NewMetrics создаёт метрики и регистрирует их в реестре Prometheus по умолчанию
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith регистрирует метрики в заданном реестре
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.NotifyRuns,
		m.NotifyDuration,
		m.SubscriptionsEvaluated,
		m.SubscriptionsMatched,
		m.DeliveryFailures,
		m.WebhookDeliveries,
		m.TriggerMessages,
		m.GeocodeRequests,
		m.GeocodeCache,
	)
	return m
}

// NewMetricsForTesting создаёт незарегистрированные метрики, чтобы тесты
// не паниковали на повторной регистрации
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		NotifyRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notify_runs_total",
			Help:      "Notification runs by outcome.",
		}, []string{"outcome"}),
		NotifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "notify_duration_seconds",
			Help:      "Duration of a single notification run.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		SubscriptionsEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subscriptions_evaluated_total",
			Help:      "Subscriptions checked against report locations.",
		}),
		SubscriptionsMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subscriptions_matched_total",
			Help:      "Subscriptions whose radius covered a report.",
		}),
		DeliveryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delivery_failures_total",
			Help:      "Notifications that could not be handed to the delivery queue.",
		}),
		WebhookDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_deliveries_total",
			Help:      "Webhook delivery attempts by final result.",
		}, []string{"result"}),
		TriggerMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trigger_messages_total",
			Help:      "Report-created messages consumed from Kafka by result.",
		}, []string{"result"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Reverse geocoding cache lookups by result.",
		}, []string{"result"}),
	}
}
