package database

import (
	"time"

	"gorm.io/gorm"
)

const startKey = "metrics:start_time"

// MetricsRecorder records database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

type gormCallback interface {
	Register(name string, fn func(*gorm.DB)) error
}

// RegisterMetricsCallbacks times every select, insert, update and delete
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	cb := db.Callback()
	register(cb.Query().Before("gorm:query"), cb.Query().After("gorm:query"), "query", "select", recorder)
	register(cb.Create().Before("gorm:create"), cb.Create().After("gorm:create"), "create", "insert", recorder)
	register(cb.Update().Before("gorm:update"), cb.Update().After("gorm:update"), "update", "update", recorder)
	register(cb.Delete().Before("gorm:delete"), cb.Delete().After("gorm:delete"), "delete", "delete", recorder)
}

func register(before, after gormCallback, name, operation string, recorder MetricsRecorder) {
	_ = before.Register("metrics:"+name+"_before", func(db *gorm.DB) {
		db.InstanceSet(startKey, time.Now())
	})
	_ = after.Register("metrics:"+name+"_after", func(db *gorm.DB) {
		start, ok := db.InstanceGet(startKey)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		recorder.RecordDBQuery(operation, table, time.Since(start.(time.Time)), db.Error)
	})
}

// StartDBStatsCollector reports connection pool stats every interval until
// the returned channel is closed
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder, interval time.Duration) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
