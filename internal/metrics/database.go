package metrics

import (
	"database/sql"
	"strings"
	"time"
)

// RecordDBQuery observes one gorm query. The operation label is lowercased
// so callback-reported verbs and hand-reported ones land in the same series.
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute("RecordDBQuery", func() {
		op := strings.ToLower(operation)
		m.DBQueryDuration.WithLabelValues(op, table).Observe(duration.Seconds())
		if err != nil {
			m.DBQueryErrors.WithLabelValues(op, table).Inc()
		}
	})
}

// UpdateDBStats copies a sql.DBStats snapshot into the pool gauges. The
// argument is untyped so the database package can depend on a narrow
// recorder interface; anything other than sql.DBStats is ignored.
func (m *Metrics) UpdateDBStats(snapshot interface{}) {
	stats, ok := snapshot.(sql.DBStats)
	if !ok {
		return
	}
	m.safeExecute("UpdateDBStats", func() {
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
		m.DBConnectionsMax.Set(float64(stats.MaxOpenConnections))
		m.DBConnectionWaitTotal.Add(float64(stats.WaitCount))
		m.DBConnectionWaitDuration.Add(stats.WaitDuration.Seconds())
	})
}
