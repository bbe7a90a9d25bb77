package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CheckoutMetrics counts checkout outcomes and low-stock alerts.
type CheckoutMetrics struct {
	SalesCompleted   prometheus.Counter
	CheckoutFailures *prometheus.CounterVec
	LowStockAlerts   prometheus.Counter
}

func NewCheckoutMetrics() *CheckoutMetrics {
	completed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "retailpos",
		Name:      "sales_completed_total",
		Help:      "Total number of completed checkouts.",
	})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "retailpos",
		Name:      "checkout_failures_total",
		Help:      "Total number of failed checkouts by reason.",
	}, []string{"reason"})
	alerts := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "retailpos",
		Name:      "low_stock_alerts_total",
		Help:      "Total number of low-stock alerts fired.",
	})

	prometheus.MustRegister(completed, failures, alerts)
	return &CheckoutMetrics{
		SalesCompleted:   completed,
		CheckoutFailures: failures,
		LowStockAlerts:   alerts,
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
