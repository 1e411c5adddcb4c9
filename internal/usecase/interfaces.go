package usecase

import (
	"context"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/ai"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/randomuser"
)

type CreateLeadInput struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Cell         string `json:"cell"`
	PictureLarge string `json:"picture_large"`
}

// LeadCache guarda snapshots de Lead por id. Get retorna (nil, nil) no miss.
// O store continua sendo a fonte da verdade; erros de cache são best effort.
type LeadCache interface {
	Get(ctx context.Context, id string) (*entity.Lead, error)
	Set(ctx context.Context, lead *entity.Lead) error
	Del(ctx context.Context, id string) error
}

// Enricher nunca retorna erro: ou resultado da IA ou fallback determinístico.
type Enricher interface {
	GenerateSummaryAndAction(ctx context.Context, lead *entity.Lead) ai.Result
}

type FeedClient interface {
	Fetch(ctx context.Context, count int) ([]randomuser.ExternalLead, error)
}

type EmailService interface {
	SendSyncReport(synced, skipped int) error
}

// LeadCreator é o que o sync precisa do serviço de leads.
type LeadCreator interface {
	CreateFromExternal(ctx context.Context, data randomuser.ExternalLead) (*entity.Lead, error)
}
