package observability

// MetricKey names an instrument registered by the provider. The exported
// series name is the key prefixed with the registry namespace.
type MetricKey string

const (
	MUsecaseRequests  MetricKey = "usecase_requests_total"
	MUsecaseDuration  MetricKey = "usecase_duration_seconds"
	MStockMutations   MetricKey = "stock_mutations_total"
	MLowStockAlerts   MetricKey = "low_stock_alerts_total"
	MEventsPublished  MetricKey = "events_published_total"
	MEventHandlerErrs MetricKey = "event_handler_errors_total"
)
