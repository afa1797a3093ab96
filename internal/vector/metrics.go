package vector

import "time"

// MetricsCollector receives timings for store operations.
// Implement it to export store activity to a monitoring system.
type MetricsCollector interface {
	// RecordInsert is called after each Insert; err is nil on success.
	RecordInsert(duration time.Duration, err error)

	// RecordQuery is called after each QueryTopK with the requested k and the number of results returned.
	RecordQuery(k, returned int, duration time.Duration, err error)
}

// NoopMetricsCollector discards everything. It is the store default.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, error)          {}
func (NoopMetricsCollector) RecordQuery(int, int, time.Duration, error) {}
