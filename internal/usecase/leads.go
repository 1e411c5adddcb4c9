package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/ai"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/randomuser"
)

type LeadService struct {
	Repo     entity.LeadRepositoryInterface
	Cache    LeadCache
	Enricher Enricher
}

func NewLeadService(repo entity.LeadRepositoryInterface, cache LeadCache, enricher Enricher) *LeadService {
	return &LeadService{
		Repo:     repo,
		Cache:    cache,
		Enricher: enricher,
	}
}

// Create is the public creation path: duplicate email is a conflict.
func (s *LeadService) Create(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	validationErrors := ValidateCreateLeadInput(input)
	if len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: errMsg,
		}
	}

	existing, err := s.Repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to check existing lead: " + err.Error(),
		}
	}
	if existing != nil {
		return nil, &DomainError{
			Code:    "LEAD_CONFLICT",
			Message: "Lead with this email already exists",
		}
	}

	lead, err := entity.NewLead(
		input.FirstName, input.LastName, input.Email,
		input.Phone, input.Cell, input.PictureLarge,
	)
	if err != nil {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		}
	}

	if err := s.Repo.Create(ctx, lead); err != nil {
		// Corrida entre o check e o insert: a constraint é o backstop
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, &DomainError{
				Code:    "LEAD_CONFLICT",
				Message: "Lead with this email already exists",
			}
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist lead: " + err.Error(),
		}
	}

	return lead, nil
}

func (s *LeadService) FindAll(ctx context.Context) ([]*entity.Lead, error) {
	return s.Repo.FindAll(ctx)
}

// FindOne resolve o lead via cache read-through.
func (s *LeadService) FindOne(ctx context.Context, id string) (*entity.Lead, error) {
	cached, err := s.Cache.Get(ctx, id)
	if err != nil {
		log.Printf("⚠️ Cache lookup failed for lead %s: %v", id, err)
	}
	if cached != nil {
		middleware.RecordCacheHit()
		return cached, nil
	}
	middleware.RecordCacheMiss()

	lead, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to fetch lead: " + err.Error(),
		}
	}
	if lead == nil {
		return nil, entity.ErrLeadNotFound
	}

	if err := s.Cache.Set(ctx, lead); err != nil {
		log.Printf("⚠️ Failed to cache lead %s: %v", id, err)
	}

	return lead, nil
}

// UpdateSummary writes the enrichment pair. The two fields always travel
// together, and the cache entry is dropped only after the save commits so a
// failed save leaves cache and store consistent.
func (s *LeadService) UpdateSummary(ctx context.Context, id, summary, nextAction string) (*entity.Lead, error) {
	lead, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	lead.Summary = summary
	lead.NextAction = nextAction
	lead.UpdatedAt = time.Now()

	if err := s.Repo.Save(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to save enrichment: " + err.Error(),
		}
	}

	if err := s.Cache.Del(ctx, id); err != nil {
		log.Printf("⚠️ Failed to invalidate cache for lead %s: %v", id, err)
	}

	return lead, nil
}

// GenerateSummary enriches a lead and persists the result.
func (s *LeadService) GenerateSummary(ctx context.Context, id string) (ai.Result, error) {
	lead, err := s.FindOne(ctx, id)
	if err != nil {
		return ai.Result{}, err
	}

	result := s.Enricher.GenerateSummaryAndAction(ctx, lead)

	if _, err := s.UpdateSummary(ctx, id, result.Summary, result.NextAction); err != nil {
		return ai.Result{}, err
	}

	return result, nil
}

// CreateFromExternal is the sync path: an email already present is not an
// error, just "not newly created" (nil, nil).
func (s *LeadService) CreateFromExternal(ctx context.Context, data randomuser.ExternalLead) (*entity.Lead, error) {
	existing, err := s.Repo.FindByEmail(ctx, data.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, nil
	}

	lead, err := entity.NewLead(
		data.Name.First, data.Name.Last, data.Email,
		data.Phone, data.Cell, data.Picture.Large,
	)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, nil
		}
		return nil, err
	}

	return lead, nil
}
