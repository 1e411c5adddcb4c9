package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/lib/pq"
	"github.com/xavierca1/ligue-leads/internal/entity"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, first_name, last_name, email, phone, cell, picture_large, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.Phone,
		lead.Cell,
		lead.PictureLarge,
		lead.CreatedAt,
		lead.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return entity.ErrEmailAlreadyExists
		}

		log.Printf("Erro crítico no banco: %v", err)
		return err
	}

	return nil
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	query := selectLead + ` WHERE email = $1`
	return r.queryOne(ctx, query, email)
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := selectLead + ` WHERE id = $1`
	return r.queryOne(ctx, query, id)
}

func (r *LeadRepository) FindAll(ctx context.Context) ([]*entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, selectLead+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

// Save grava o par summary/next_action. O updated_at muda junto.
func (r *LeadRepository) Save(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET summary = $2, next_action = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		nullString(lead.Summary),
		nullString(lead.NextAction),
		lead.UpdatedAt,
	)
	if err != nil {
		log.Printf("Erro crítico no banco: %v", err)
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}

	return nil
}

const selectLead = `
	SELECT id, first_name, last_name, email, phone, cell, picture_large, summary, next_action, created_at, updated_at
	FROM leads`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *LeadRepository) queryOne(ctx context.Context, query string, arg any) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx, query, arg)
	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var summary, nextAction sql.NullString

	err := row.Scan(
		&lead.ID,
		&lead.FirstName,
		&lead.LastName,
		&lead.Email,
		&lead.Phone,
		&lead.Cell,
		&lead.PictureLarge,
		&summary,
		&nextAction,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Summary = summary.String
	lead.NextAction = nextAction.String

	return &lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
