package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler fires the daily refresh job at local midnight in the
// configured zone. The short grace delay lets the source sites finish
// their own day rollover before we scrape them.
type Scheduler struct {
	cron   *cron.Cron
	job    func(ctx context.Context)
	grace  time.Duration
	stopCh chan struct{}

	stopOnce sync.Once
}

func New(loc *time.Location, spec string, grace time.Duration, job func(ctx context.Context)) (*Scheduler, error) {
	s := &Scheduler{
		job:    job,
		grace:  grace,
		stopCh: make(chan struct{}),
	}
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(spec, s.run); err != nil {
		return nil, err
	}
	s.cron = c
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("[scheduler] started")
}

// Stop is safe to call more than once; shutdown paths overlap.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		ctx := s.cron.Stop()
		<-ctx.Done()
	})
}

func (s *Scheduler) run() {
	log.Printf("[scheduler] daily trigger fired")
	select {
	case <-time.After(s.grace):
	case <-s.stopCh:
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	s.job(ctx)
}
