package metrics

import "github.com/prometheus/client_golang/prometheus"

// 回调处理结果标签
const (
	OutcomeApplied   = "applied"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
	OutcomeIgnored   = "ignored"
	OutcomeFailed    = "failed"
)

// Metrics 服务指标
type Metrics struct {
	webhookEvents     *prometheus.CounterVec
	paymentsCompleted prometheus.Counter
	livesConsumed     prometheus.Counter
}

// NewMetrics 创建并注册服务指标
func NewMetrics() *Metrics {
	m := &Metrics{
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wordgame",
			Name:      "webhook_events_total",
			Help:      "Payment webhook deliveries by outcome",
		}, []string{"outcome"}),
		paymentsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wordgame",
			Name:      "payments_completed_total",
			Help:      "Orders fulfilled after payment confirmation",
		}),
		livesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wordgame",
			Name:      "lives_consumed_total",
			Help:      "Lives consumed by players",
		}),
	}

	prometheus.MustRegister(
		m.webhookEvents,
		m.paymentsCompleted,
		m.livesConsumed,
	)

	return m
}

// IncWebhook 记录一次回调处理结果，nil 接收者为空操作
func (m *Metrics) IncWebhook(outcome string) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(outcome).Inc()
}

// IncPaymentCompleted 记录一次订单发放
func (m *Metrics) IncPaymentCompleted() {
	if m == nil {
		return
	}
	m.paymentsCompleted.Inc()
}

// IncLifeConsumed 记录一次体力消耗
func (m *Metrics) IncLifeConsumed() {
	if m == nil {
		return
	}
	m.livesConsumed.Inc()
}
