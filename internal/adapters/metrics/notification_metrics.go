package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
	"github.com/andrescamacho/mediator-go/pkg/utils"
)

// NotificationMetricsCollector records every notification handler run.
// It implements mediator.HandlerObserver.
type NotificationMetricsCollector struct {
	handlerDuration *prometheus.HistogramVec
	handlersTotal   *prometheus.CounterVec
}

// NewNotificationMetricsCollector creates a new notification metrics collector
func NewNotificationMetricsCollector(namespace string) *NotificationMetricsCollector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &NotificationMetricsCollector{
		handlerDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "notification_handler_duration_seconds",
				Help:      "Notification handler duration distribution",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"notification", "handler", "status"},
		),

		handlersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "notification_handlers_total",
				Help:      "Total number of notification handler runs by type, handler and status",
			},
			[]string{"notification", "handler", "status"},
		),
	}
}

// Register registers all notification metrics with the Prometheus registry
func (c *NotificationMetricsCollector) Register() error {
	return register(c.handlerDuration, c.handlersTotal)
}

// ObserveHandler implements mediator.HandlerObserver
func (c *NotificationMetricsCollector) ObserveHandler(identity mediator.HandlerIdentity, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	notification := utils.ShortTypeName(identity.PayloadType.String())

	c.handlerDuration.WithLabelValues(notification, identity.Name, status).Observe(duration.Seconds())
	c.handlersTotal.WithLabelValues(notification, identity.Name, status).Inc()
}

var _ mediator.HandlerObserver = (*NotificationMetricsCollector)(nil)
