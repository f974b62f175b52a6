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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo adaptador del libro de movimientos. Solo INSERT y SELECT:
// la tabla es de solo agregado.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, inventory_record_id, type, quantity, reason, actor_id, lot_id, source_order_id, source_sale_id, created_at`

func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, inventory_record_id, type, quantity, reason, actor_id, lot_id, source_order_id, source_sale_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.InventoryRecordID, m.Type, m.Quantity, m.Reason,
		m.ActorID, m.LotID, m.SourceOrderID, m.SourceSaleID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.InventoryRecordID, &m.Type, &m.Quantity, &m.Reason,
		&m.ActorID, &m.LotID, &m.SourceOrderID, &m.SourceSaleID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return &m, nil
}

// ListByInventoryRecord historial del registro, más reciente primero.
func (r *StockMovementRepo) ListByInventoryRecord(inventoryRecordID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE inventory_record_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, inventoryRecordID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.InventoryRecordID, &m.Type, &m.Quantity, &m.Reason,
			&m.ActorID, &m.LotID, &m.SourceOrderID, &m.SourceSaleID, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *StockMovementRepo) LastMovementAt(inventoryRecordID string) (*time.Time, error) {
	query := `SELECT max(created_at) FROM stock_movements WHERE inventory_record_id = $1`
	var ts *time.Time
	if err := r.q.QueryRow(context.Background(), query, inventoryRecordID).Scan(&ts); err != nil {
		return nil, fmt.Errorf("last movement at: %w", err)
	}
	return ts, nil
}
