// Package jobs runs scheduled maintenance against the hostel services.
package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// OverdueMarker is the part of the payment service the sweep needs.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
}

// SweepOverdue moves pending payments of past periods to Overdue once.
func SweepOverdue(ctx context.Context, m OverdueMarker, now time.Time) {
	n, err := m.MarkOverdue(ctx, now)
	if err != nil {
		log.Printf("overdue-sweep: sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("overdue-sweep: marked %d payments overdue", n)
	}
}

// StartOverdueSweep schedules SweepOverdue on spec (standard five field
// cron syntax). Overlapping runs are skipped. The returned cron must be
// stopped on shutdown.
func StartOverdueSweep(spec string, m OverdueMarker) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		SweepOverdue(ctx, m, time.Now())
	})
	if err != nil {
		return nil, fmt.Errorf("overdue schedule %q: %w", spec, err)
	}
	c.Start()
	log.Printf("overdue-sweep: started schedule=%q", spec)
	return c, nil
}
