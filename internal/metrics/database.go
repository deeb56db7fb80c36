package metrics

import (
	"database/sql"
	"strings"
	"time"
)

// UpdateDBStats copies connection pool stats into the gauges. Anything other
// than sql.DBStats is ignored.
func (m *Metrics) UpdateDBStats(statsInterface interface{}) {
	m.safeExecute("UpdateDBStats", func() {
		var stats sql.DBStats
		switch s := statsInterface.(type) {
		case sql.DBStats:
			stats = s
		case *sql.DBStats:
			if s == nil {
				return
			}
			stats = *s
		default:
			return
		}

		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
		m.DBConnectionsMax.Set(float64(stats.MaxOpenConnections))

		m.statsMu.Lock()
		defer m.statsMu.Unlock()
		// a reconnect resets the pool counters
		if stats.WaitCount < m.lastWaitCount || stats.WaitDuration < m.lastWaitDuration {
			m.lastWaitCount, m.lastWaitDuration = 0, 0
		}
		m.DBConnectionWaitTotal.Add(float64(stats.WaitCount - m.lastWaitCount))
		m.DBConnectionWaitDuration.Add((stats.WaitDuration - m.lastWaitDuration).Seconds())
		m.lastWaitCount, m.lastWaitDuration = stats.WaitCount, stats.WaitDuration
	})
}

// RecordDBQuery observes one statement. table falls back to "unknown".
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute("RecordDBQuery", func() {
		operation = strings.ToLower(operation)
		if table == "" {
			table = "unknown"
		}
		m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
		if err != nil {
			m.DBQueryErrors.WithLabelValues(operation, table).Inc()
		}
	})
}
