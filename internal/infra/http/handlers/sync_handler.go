package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

type SyncHandler struct {
	producer  queue.QueueProducerInterface
	history   *queue.JobHistory
	batchSize int
}

func NewSyncHandler(producer queue.QueueProducerInterface, history *queue.JobHistory, batchSize int) *SyncHandler {
	return &SyncHandler{
		producer:  producer,
		history:   history,
		batchSize: batchSize,
	}
}

type SyncQueuedResponse struct {
	Queued  bool `json:"queued"`
	Results int  `json:"results"`
}

// Trigger enqueues one sync unit on demand, same unit the cron produces.
func (h *SyncHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	payload := queue.SyncPayload{Results: h.batchSize}

	if err := h.producer.PublishSync(r.Context(), payload); err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to enqueue sync job"})
		return
	}

	writeJSON(w, http.StatusAccepted, SyncQueuedResponse{
		Queued:  true,
		Results: payload.Results,
	})
}

type SyncHistoryResponse struct {
	Completed []queue.JobRecord `json:"completed"`
	Failed    []queue.JobRecord `json:"failed"`
}

// History lists the retained job records (most recent first).
func (h *SyncHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	completed, err := h.history.Completed(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to read job history"})
		return
	}

	failed, err := h.history.Failed(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to read job history"})
		return
	}

	writeJSON(w, http.StatusOK, SyncHistoryResponse{
		Completed: completed,
		Failed:    failed,
	})
}
