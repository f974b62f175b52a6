package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clinova/clinica-api/internal/domain/entity"
	"github.com/clinova/clinica-api/internal/domain/repository"
)

var _ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)

// InventoryRecordRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryRecordRepo struct {
	q Querier
}

// NewInventoryRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRecordRepository(q Querier) *InventoryRecordRepo {
	return &InventoryRecordRepo{q: q}
}

const inventoryRecordColumns = `id, product_id, owner_id, quantity_on_hand, reorder_threshold, current_unit_cost, created_at, updated_at`

func scanInventoryRecord(row pgx.Row) (*entity.InventoryRecord, error) {
	var r entity.InventoryRecord
	err := row.Scan(
		&r.ID, &r.ProductID, &r.OwnerID, &r.QuantityOnHand,
		&r.ReorderThreshold, &r.CurrentUnitCost, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Get obtiene el registro de inventario del par (producto, profesional).
// Devuelve nil si aún no existe (se crea con el primer movimiento).
func (r *InventoryRecordRepo) Get(productID, ownerID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryRecordColumns + `
		FROM inventory_records WHERE product_id = $1 AND owner_id = $2`
	rec, err := scanInventoryRecord(r.q.QueryRow(context.Background(), query, productID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return rec, nil
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE) para
// que dos movimientos concurrentes sobre el mismo par se serialicen.
func (r *InventoryRecordRepo) GetForUpdate(productID, ownerID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryRecordColumns + `
		FROM inventory_records WHERE product_id = $1 AND owner_id = $2
		FOR UPDATE`
	rec, err := scanInventoryRecord(r.q.QueryRow(context.Background(), query, productID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record for update: %w", err)
	}
	return rec, nil
}

// Upsert inserta o actualiza el registro (clave natural producto+profesional).
func (r *InventoryRecordRepo) Upsert(record *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (id, product_id, owner_id, quantity_on_hand, reorder_threshold, current_unit_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (product_id, owner_id)
		DO UPDATE SET quantity_on_hand = EXCLUDED.quantity_on_hand,
		              reorder_threshold = EXCLUDED.reorder_threshold,
		              current_unit_cost = EXCLUDED.current_unit_cost,
		              updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ProductID, record.OwnerID, record.QuantityOnHand,
		record.ReorderThreshold, record.CurrentUnitCost, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory record: %w", err)
	}
	return nil
}

// ListBelowThreshold registros del profesional con existencia bajo el umbral
// de reposición, mayor déficit primero.
func (r *InventoryRecordRepo) ListBelowThreshold(ctx context.Context, ownerID string) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryRecordColumns + `
		FROM inventory_records
		WHERE owner_id = $1
		  AND reorder_threshold > 0
		  AND quantity_on_hand < reorder_threshold
		ORDER BY (reorder_threshold - quantity_on_hand) DESC`
	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list below threshold: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(
			&rec.ID, &rec.ProductID, &rec.OwnerID, &rec.QuantityOnHand,
			&rec.ReorderThreshold, &rec.CurrentUnitCost, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
