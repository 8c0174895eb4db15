package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/YanislavD/EventApp/internal/service"
	"github.com/go-co-op/gocron/v2"
)

// Cleanup periodically removes events that ended more than the
// retention window ago, together with their subscriptions and tickets.
type Cleanup struct {
	events        service.EventService
	retentionDays int
	sched         gocron.Scheduler
}

func NewCleanup(events service.EventService, interval time.Duration, retentionDays int) (*Cleanup, error) {
	c := &Cleanup{events: events, retentionDays: retentionDays}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	if _, err := sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(c.run),
	); err != nil {
		return nil, err
	}

	c.sched = sched
	return c, nil
}

func (c *Cleanup) Start() {
	c.sched.Start()
	log.Printf("[Cleanup] scheduler started, retention %d days", c.retentionDays)
}

func (c *Cleanup) Stop() error {
	return c.sched.Shutdown()
}

// run is best-effort: a failed sweep is logged and retried on the next
// tick, never fatal.
func (c *Cleanup) run() {
	deleted, err := c.events.DeleteOlderThan(context.Background(), c.retentionDays)
	if err != nil {
		log.Printf("[Cleanup] sweep failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[Cleanup] removed %d expired events", deleted)
	}
}
