package recurring

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

// BatchProcessor is what the scheduler drives; satisfied by *Engine.
type BatchProcessor interface {
	ProcessDueRules(ctx context.Context) (int, error)
}

// Scheduler owns the recurring-task trigger: one pass at startup, then
// one every interval. It is constructed and started by the composition
// root and stopped during graceful shutdown, so tests and the server see
// its full lifecycle.
type Scheduler struct {
	processor BatchProcessor
	interval  time.Duration
	stop      chan struct{}
	done      chan struct{}
	running   atomic.Bool
}

func NewScheduler(processor BatchProcessor, interval time.Duration) *Scheduler {
	return &Scheduler{
		processor: processor,
		interval:  interval,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the scheduling loop. The first pass runs immediately.
func (s *Scheduler) Start() {
	go s.loop()
}

// Stop ends the loop and waits for it to exit. A pass already in flight
// runs to completion.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Scheduler) loop() {
	defer close(s.done)

	s.runOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce()
		case <-s.stop:
			return
		}
	}
}

// runOnce executes one batch unless one is still in flight; overlapping
// batches would double-fire rules.
func (s *Scheduler) runOnce() {
	if !s.running.CompareAndSwap(false, true) {
		log.Println("🔄 Recurring tasks check skipped: previous run still in progress")
		return
	}
	defer s.running.Store(false)

	log.Println("🔄 Running recurring tasks check...")
	if _, err := s.processor.ProcessDueRules(context.Background()); err != nil {
		log.Printf("❌ Recurring tasks batch finished with errors: %v", err)
	}
}
