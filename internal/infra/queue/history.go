package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	completedKey = "jobs:sync-leads:completed"
	failedKey    = "jobs:sync-leads:failed"
)

// JobRecord is one finished job, kept for inspection.
type JobRecord struct {
	Job        string    `json:"job"`
	Results    int       `json:"results"`
	Synced     int       `json:"synced"`
	Skipped    int       `json:"skipped"`
	Attempt    int       `json:"attempt"`
	Error      string    `json:"error,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}

// JobHistory keeps the most recent completed and failed job records in capped
// redis lists. Older entries fall off the end, like Bull's
// removeOnComplete/removeOnFail pruning.
type JobHistory struct {
	rdb           *redis.Client
	keepCompleted int
	keepFailed    int
}

func NewJobHistory(rdb *redis.Client, keepCompleted, keepFailed int) *JobHistory {
	return &JobHistory{
		rdb:           rdb,
		keepCompleted: keepCompleted,
		keepFailed:    keepFailed,
	}
}

func (h *JobHistory) RecordCompleted(ctx context.Context, rec JobRecord) {
	h.record(ctx, completedKey, h.keepCompleted, rec)
}

func (h *JobHistory) RecordFailed(ctx context.Context, rec JobRecord) {
	h.record(ctx, failedKey, h.keepFailed, rec)
}

func (h *JobHistory) record(ctx context.Context, key string, keep int, rec JobRecord) {
	data, err := json.Marshal(rec)
	if err != nil {
		log.Printf("⚠️ Falha ao serializar registro de job: %v", err)
		return
	}

	pipe := h.rdb.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, int64(keep-1))
	if _, err := pipe.Exec(ctx); err != nil {
		// Histórico é best effort, o job em si já foi resolvido
		log.Printf("⚠️ Falha ao gravar histórico de job: %v", err)
	}
}

func (h *JobHistory) Completed(ctx context.Context) ([]JobRecord, error) {
	return h.list(ctx, completedKey)
}

func (h *JobHistory) Failed(ctx context.Context) ([]JobRecord, error) {
	return h.list(ctx, failedKey)
}

func (h *JobHistory) list(ctx context.Context, key string) ([]JobRecord, error) {
	items, err := h.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	records := make([]JobRecord, 0, len(items))
	for _, item := range items {
		var rec JobRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}
