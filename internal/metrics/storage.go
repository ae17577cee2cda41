package metrics

import (
	"time"
)

// RecordStorageRequest records object storage request metrics
func (m *Metrics) RecordStorageRequest(operation string, duration time.Duration, err error) {
	m.safeExecute("RecordStorageRequest", func() {
		m.StorageRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())

		if err != nil {
			m.StorageRequestErrors.WithLabelValues(operation).Inc()
		}
	})
}
