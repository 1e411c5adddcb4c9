package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

// Scheduler enqueues one sync unit on a fixed schedule. Under the test
// environment it registers nothing, so the cron never fires.
type Scheduler struct {
	cron      *cron.Cron
	producer  queue.QueueProducerInterface
	batchSize int
}

func New(producer queue.QueueProducerInterface, cronSpec string, batchSize int, enabled bool) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(),
		producer:  producer,
		batchSize: batchSize,
	}

	if !enabled {
		return s, nil
	}

	_, err := s.cron.AddFunc(cronSpec, func() {
		if err := s.Tick(context.Background()); err != nil {
			log.Printf("❌ Falha ao enfileirar job de sync: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", cronSpec, err)
	}

	return s, nil
}

// Tick enqueues exactly one sync unit. Publish failures propagate to the
// caller; the queue's own attempt policy covers redelivery, not this path.
func (s *Scheduler) Tick(ctx context.Context) error {
	log.Println("Adding sync job to queue")
	return s.producer.PublishSync(ctx, queue.SyncPayload{Results: s.batchSize})
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Entries exposes the registered cron entries (empty when disabled).
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}
