// Package digest schedules the daily stats summary for the owner.
package digest

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// ReportFunc builds and delivers one digest.
type ReportFunc func(ctx context.Context) error

type Scheduler struct {
	cron   *cron.Cron
	spec   string
	report ReportFunc
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a scheduler firing on the given cron spec (standard 5-field
// syntax, UTC).
func New(spec string, report ReportFunc) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		spec:   spec,
		report: report,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.report(s.ctx); err != nil {
			log.Printf("Daily digest failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("Digest scheduler started (spec %q, UTC)", s.spec)
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	s.cancel()
	log.Println("Digest scheduler stopped")
}
