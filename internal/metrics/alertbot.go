package metrics

// Имена метрик пересыльщика оповещений
const (
	AlertsReceivedTotal = "alertbot_alerts_received_total"
	NotificationsTotal  = "alertbot_notifications_total"
)

// Значения метки result счетчика NotificationsTotal
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// NewAlertRegistry создает реестр пересыльщика оповещений.
func NewAlertRegistry(withRuntime bool) *Registry {
	r := NewRegistry()

	r.Describe(AlertsReceivedTotal, "Alerts received via webhook")
	r.Describe(NotificationsTotal, "Outbound chat notifications by result")

	if _, err := r.counterVec(AlertsReceivedTotal, nil); err != nil {
		panic(err)
	}
	if _, err := r.counterVec(NotificationsTotal, []string{"result"}); err != nil {
		panic(err)
	}

	if withRuntime {
		r.WithRuntimeCollectors()
	}
	return r
}
