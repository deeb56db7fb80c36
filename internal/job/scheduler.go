package job

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// NewScheduler returns a cron scheduler running job on the standard
// five-field schedule. Overlapping runs are skipped and panics are recovered.
func NewScheduler(schedule string, job cron.Job, logger *zap.Logger) (*cron.Cron, error) {
	l := cronLogger{logger: logger}
	c := cron.New(cron.WithLogger(l), cron.WithChain(
		cron.Recover(l),
		cron.SkipIfStillRunning(l),
	))
	if _, err := c.AddJob(schedule, job); err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", schedule, err)
	}
	return c, nil
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
