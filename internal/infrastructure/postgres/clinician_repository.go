package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clinova/clinica-api/internal/domain"
	"github.com/clinova/clinica-api/internal/domain/entity"
	"github.com/clinova/clinica-api/internal/domain/repository"
)

var _ repository.ClinicianRepository = (*ClinicianRepo)(nil)

// ClinicianRepo implementación de profesionales (usuarios) sobre PostgreSQL.
type ClinicianRepo struct {
	q Querier
}

// NewClinicianRepository construye el adaptador de profesionales.
func NewClinicianRepository(q Querier) *ClinicianRepo {
	return &ClinicianRepo{q: q}
}

const clinicianColumns = `id, email, password_hash, full_name, role, created_at, updated_at`

func (r *ClinicianRepo) Create(c *entity.Clinician) error {
	query := `
		INSERT INTO clinicians (id, email, password_hash, full_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Email, c.PasswordHash, c.FullName, c.Role, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create clinician: %w", err)
	}
	return nil
}

func (r *ClinicianRepo) GetByID(id string) (*entity.Clinician, error) {
	query := `SELECT ` + clinicianColumns + ` FROM clinicians WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *ClinicianRepo) GetByEmail(email string) (*entity.Clinician, error) {
	query := `SELECT ` + clinicianColumns + ` FROM clinicians WHERE email = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email))
}

func (r *ClinicianRepo) scanOne(row pgx.Row) (*entity.Clinician, error) {
	var c entity.Clinician
	err := row.Scan(&c.ID, &c.Email, &c.PasswordHash, &c.FullName, &c.Role, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get clinician: %w", err)
	}
	return &c, nil
}
