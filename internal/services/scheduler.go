// internal/services/scheduler.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// NewRefreshScheduler returns a stopped cron that silently reloads every
// collection on schedule. Overlapping runs are skipped.
func NewRefreshScheduler(console *Console, schedule string, timeout time.Duration) (*cron.Cron, error) {
	sched := cron.New(
		cron.WithParser(cronParser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	_, err := sched.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		started := time.Now()
		_ = console.RefreshAll(ctx, true)
		logrus.WithField("elapsed", time.Since(started)).Debug("Scheduled refresh finished")
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return sched, nil
}
