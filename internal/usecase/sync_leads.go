package usecase

import (
	"context"
	"fmt"
	"log"
)

// SyncReport is the inspectable outcome of one batch: how many records were
// newly created and which ones were skipped, with reasons.
type SyncReport struct {
	Synced  int           `json:"synced"`
	Skipped []SkippedLead `json:"skipped,omitempty"`
}

type SkippedLead struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type SyncLeadsUseCase struct {
	Leads LeadCreator
	Feed  FeedClient
}

func NewSyncLeadsUseCase(leads LeadCreator, feed FeedClient) *SyncLeadsUseCase {
	return &SyncLeadsUseCase{
		Leads: leads,
		Feed:  feed,
	}
}

// Execute processes one sync unit. A feed failure aborts the whole batch and
// propagates so the queue's redelivery policy kicks in. A single record
// failing is logged, counted as skipped and never stops the rest.
func (uc *SyncLeadsUseCase) Execute(ctx context.Context, results int) (*SyncReport, error) {
	log.Printf("Processing sync job for %d leads", results)

	users, err := uc.Feed.Fetch(ctx, results)
	if err != nil {
		return nil, fmt.Errorf("error syncing leads: %w", err)
	}

	report := &SyncReport{}
	for _, user := range users {
		lead, err := uc.Leads.CreateFromExternal(ctx, user)
		if err != nil {
			name := user.Name.First + " " + user.Name.Last
			log.Printf("❌ Failed to create lead for user %s: %v", name, err)
			report.Skipped = append(report.Skipped, SkippedLead{
				Name:   name,
				Reason: err.Error(),
			})
			continue
		}
		if lead != nil {
			report.Synced++
		}
	}

	log.Printf("Synced %d new leads", report.Synced)
	return report, nil
}
