package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/clinova/clinica-api/internal/domain/entity"
	"github.com/clinova/clinica-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación del puerto de lotes sobre PostgreSQL.
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes.
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = `id, product_id, owner_id, lot_code, expiry_date, initial_quantity, remaining_quantity, created_at, updated_at`

func scanLot(row pgx.Row) (*entity.Lot, error) {
	var l entity.Lot
	err := row.Scan(
		&l.ID, &l.ProductID, &l.OwnerID, &l.LotCode, &l.ExpiryDate,
		&l.InitialQuantity, &l.RemainingQuantity, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LotRepo) Create(lot *entity.Lot) error {
	query := `
		INSERT INTO lots (id, product_id, owner_id, lot_code, expiry_date, initial_quantity, remaining_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ProductID, lot.OwnerID, lot.LotCode, lot.ExpiryDate,
		lot.InitialQuantity, lot.RemainingQuantity, lot.CreatedAt, lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create lot: %w", err)
	}
	return nil
}

func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1`
	lot, err := scanLot(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return lot, nil
}

func (r *LotRepo) GetForUpdate(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1 FOR UPDATE`
	lot, err := scanLot(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot for update: %w", err)
	}
	return lot, nil
}

// ListActiveForUpdate lotes disponibles del par, primero el que vence antes
// (sin vencimiento de últimos), con las filas bloqueadas para descontar.
func (r *LotRepo) ListActiveForUpdate(productID, ownerID string) ([]*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots
		WHERE product_id = $1 AND owner_id = $2 AND remaining_quantity > 0
		ORDER BY expiry_date ASC NULLS LAST, created_at ASC, lot_code ASC
		FOR UPDATE`
	return r.queryLots(context.Background(), query, productID, ownerID)
}

func (r *LotRepo) ListActive(productID, ownerID string) ([]*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots
		WHERE product_id = $1 AND owner_id = $2 AND remaining_quantity > 0
		ORDER BY expiry_date ASC NULLS LAST, created_at ASC, lot_code ASC`
	return r.queryLots(context.Background(), query, productID, ownerID)
}

func (r *LotRepo) UpdateRemaining(id string, remaining int64) error {
	query := `UPDATE lots SET remaining_quantity = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, remaining)
	if err != nil {
		return fmt.Errorf("update lot remaining: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update lot remaining: lote %s no existe", id)
	}
	return nil
}

func (r *LotRepo) ListExpiring(ctx context.Context, ownerID string, until time.Time) ([]*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots
		WHERE owner_id = $1 AND remaining_quantity > 0
		  AND expiry_date IS NOT NULL AND expiry_date <= $2
		ORDER BY expiry_date ASC`
	return r.queryLots(ctx, query, ownerID, until)
}

func (r *LotRepo) queryLots(ctx context.Context, query string, args ...any) ([]*entity.Lot, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lots: %w", err)
	}
	defer rows.Close()

	var lots []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(
			&l.ID, &l.ProductID, &l.OwnerID, &l.LotCode, &l.ExpiryDate,
			&l.InitialQuantity, &l.RemainingQuantity, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		lots = append(lots, &l)
	}
	return lots, rows.Err()
}
