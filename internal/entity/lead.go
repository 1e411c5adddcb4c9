package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

var (
	ErrEmailAlreadyExists = errors.New("lead with this email already exists")
	ErrLeadNotFound       = errors.New("lead not found")
)

// Entidade: Lead
type Lead struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Cell         string `json:"cell"`
	PictureLarge string `json:"picture_large"`

	// Preenchidos pelo enrichment. Sempre gravados juntos.
	Summary    string `json:"summary,omitempty"`
	NextAction string `json:"next_action,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Factory
func NewLead(firstName, lastName, email, phone, cell, pictureLarge string) (*Lead, error) {
	lead := &Lead{
		ID:           uuid.New().String(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Phone:        phone,
		Cell:         cell,
		PictureLarge: pictureLarge,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.FirstName == "" {
		return errors.New("first_name is required")
	}
	if l.LastName == "" {
		return errors.New("last_name is required")
	}
	if l.Email == "" {
		return errors.New("email is required")
	}
	return nil
}

// Enriched reports whether the AI summary pair has been written.
func (l *Lead) Enriched() bool {
	return l.Summary != "" && l.NextAction != ""
}

type LeadRepositoryInterface interface {
	// Create persists a new lead. Returns ErrEmailAlreadyExists when the
	// unique constraint on email is violated.
	Create(ctx context.Context, lead *Lead) error

	// FindByEmail and FindByID return (nil, nil) when no record matches.
	FindByEmail(ctx context.Context, email string) (*Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)

	FindAll(ctx context.Context) ([]*Lead, error)
	Save(ctx context.Context, lead *Lead) error
}
