package apptest

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/clinova/clinica-api/internal/domain"
	"github.com/clinova/clinica-api/internal/domain/entity"
	"github.com/clinova/clinica-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository         = (*ProductRepo)(nil)
	_ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)
	_ repository.LotRepository             = (*LotRepo)(nil)
	_ repository.StockMovementRepository   = (*StockMovementRepo)(nil)
	_ repository.PurchaseOrderRepository   = (*PurchaseOrderRepo)(nil)
	_ repository.SaleRepository            = (*SaleRepo)(nil)
	_ repository.ClinicianRepository       = (*ClinicianRepo)(nil)
)

// ProductRepo catálogo en memoria.
type ProductRepo struct{ S *Store }

func (r *ProductRepo) Create(p *entity.Product) error {
	for _, existing := range r.S.Products {
		if existing.Name == p.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.S.Products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.S.Products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	ids := make([]string, 0, len(r.S.Products))
	for id := range r.S.Products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []*entity.Product
	for i, id := range ids {
		if i < offset || len(out) >= limit {
			continue
		}
		cp := *r.S.Products[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	if _, ok := r.S.Products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	cp := *p
	r.S.Products[p.ID] = &cp
	return nil
}

// InventoryRecordRepo registros de inventario en memoria. Los locks FOR
// UPDATE no aplican: los tests son secuenciales.
type InventoryRecordRepo struct{ S *Store }

func (r *InventoryRecordRepo) Get(productID, ownerID string) (*entity.InventoryRecord, error) {
	rec := r.S.RecordFor(productID, ownerID)
	if rec == nil {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *InventoryRecordRepo) GetForUpdate(productID, ownerID string) (*entity.InventoryRecord, error) {
	return r.Get(productID, ownerID)
}

func (r *InventoryRecordRepo) Upsert(record *entity.InventoryRecord) error {
	cp := *record
	if existing := r.S.RecordFor(record.ProductID, record.OwnerID); existing != nil {
		cp.ID = existing.ID
	}
	r.S.Records[cp.ID] = &cp
	return nil
}

func (r *InventoryRecordRepo) ListBelowThreshold(ctx context.Context, ownerID string) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, rec := range r.S.Records {
		if rec.OwnerID == ownerID && rec.ReorderThreshold > 0 && rec.QuantityOnHand < rec.ReorderThreshold {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di := out[i].ReorderThreshold - out[i].QuantityOnHand
		dj := out[j].ReorderThreshold - out[j].QuantityOnHand
		if di != dj {
			return di > dj
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out, nil
}

// LotRepo lotes en memoria con el mismo orden de consumo que el SQL real:
// vence antes primero, sin vencimiento de últimos, creación y código como
// desempate.
type LotRepo struct{ S *Store }

func (r *LotRepo) Create(lot *entity.Lot) error {
	cp := *lot
	r.S.Lots[lot.ID] = &cp
	r.S.LotOrder = append(r.S.LotOrder, lot.ID)
	return nil
}

func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	l, ok := r.S.Lots[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *LotRepo) GetForUpdate(id string) (*entity.Lot, error) {
	return r.GetByID(id)
}

func (r *LotRepo) ListActiveForUpdate(productID, ownerID string) ([]*entity.Lot, error) {
	return r.ListActive(productID, ownerID)
}

func (r *LotRepo) ListActive(productID, ownerID string) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, id := range r.S.LotOrder {
		l := r.S.Lots[id]
		if l.ProductID == productID && l.OwnerID == ownerID && l.RemainingQuantity > 0 {
			cp := *l
			out = append(out, &cp)
		}
	}
	sortLots(out)
	return out, nil
}

func (r *LotRepo) UpdateRemaining(id string, remaining int64) error {
	l, ok := r.S.Lots[id]
	if !ok {
		return errors.New("lote no existe")
	}
	l.RemainingQuantity = remaining
	l.UpdatedAt = time.Now()
	return nil
}

func (r *LotRepo) ListExpiring(ctx context.Context, ownerID string, until time.Time) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, id := range r.S.LotOrder {
		l := r.S.Lots[id]
		if l.OwnerID == ownerID && l.RemainingQuantity > 0 && l.ExpiryDate != nil && !l.ExpiryDate.After(until) {
			cp := *l
			out = append(out, &cp)
		}
	}
	sortLots(out)
	return out, nil
}

func sortLots(lots []*entity.Lot) {
	sort.SliceStable(lots, func(i, j int) bool {
		ei, ej := lots[i].ExpiryDate, lots[j].ExpiryDate
		switch {
		case ei == nil && ej == nil:
			// cae al desempate
		case ei == nil:
			return false
		case ej == nil:
			return true
		case !ei.Equal(*ej):
			return ei.Before(*ej)
		}
		if !lots[i].CreatedAt.Equal(lots[j].CreatedAt) {
			return lots[i].CreatedAt.Before(lots[j].CreatedAt)
		}
		return lots[i].LotCode < lots[j].LotCode
	})
}

// StockMovementRepo libro de movimientos en memoria, solo agregado.
type StockMovementRepo struct{ S *Store }

func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	if r.S.FailOnMovementCreate {
		return errors.New("fallo simulado al insertar movimiento")
	}
	cp := *m
	r.S.Movements = append(r.S.Movements, &cp)
	return nil
}

func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.S.Movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *StockMovementRepo) ListByInventoryRecord(inventoryRecordID string, limit, offset int) ([]*entity.StockMovement, error) {
	var all []*entity.StockMovement
	for _, m := range r.S.Movements {
		if m.InventoryRecordID == inventoryRecordID {
			cp := *m
			all = append(all, &cp)
		}
	}
	// más reciente primero (los movimientos se insertan en orden)
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *StockMovementRepo) LastMovementAt(inventoryRecordID string) (*time.Time, error) {
	var last *time.Time
	for _, m := range r.S.Movements {
		if m.InventoryRecordID != inventoryRecordID {
			continue
		}
		if last == nil || m.CreatedAt.After(*last) {
			t := m.CreatedAt
			last = &t
		}
	}
	return last, nil
}

// PurchaseOrderRepo órdenes de compra en memoria.
type PurchaseOrderRepo struct{ S *Store }

func (r *PurchaseOrderRepo) Create(o *entity.PurchaseOrder) error {
	cp := *o
	cp.Items = append([]entity.PurchaseOrderItem(nil), o.Items...)
	r.S.Orders[o.ID] = &cp
	return nil
}

func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	o, ok := r.S.Orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Items = append([]entity.PurchaseOrderItem(nil), o.Items...)
	return &cp, nil
}

func (r *PurchaseOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *PurchaseOrderRepo) Update(o *entity.PurchaseOrder) error {
	if _, ok := r.S.Orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *o
	cp.Items = append([]entity.PurchaseOrderItem(nil), o.Items...)
	r.S.Orders[o.ID] = &cp
	return nil
}

func (r *PurchaseOrderRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.S.Orders {
		if o.OwnerID == ownerID {
			cp := *o
			cp.Items = append([]entity.PurchaseOrderItem(nil), o.Items...)
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SaleRepo ventas en memoria.
type SaleRepo struct{ S *Store }

func (r *SaleRepo) Create(s *entity.Sale) error {
	cp := *s
	cp.Items = nil
	r.S.Sales[s.ID] = &cp
	return nil
}

func (r *SaleRepo) CreateItem(it *entity.SaleItem) error {
	s, ok := r.S.Sales[it.SaleID]
	if !ok {
		return domain.ErrNotFound
	}
	s.Items = append(s.Items, *it)
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.S.Sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	cp.Items = append([]entity.SaleItem(nil), s.Items...)
	return &cp, nil
}

func (r *SaleRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.S.Sales {
		if s.OwnerID == ownerID {
			cp := *s
			cp.Items = append([]entity.SaleItem(nil), s.Items...)
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SoldAt.After(out[j].SoldAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ClinicianRepo profesionales en memoria.
type ClinicianRepo struct{ S *Store }

func (r *ClinicianRepo) Create(c *entity.Clinician) error {
	for _, existing := range r.S.Clinicians {
		if existing.Email == c.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.S.Clinicians[c.ID] = &cp
	return nil
}

func (r *ClinicianRepo) GetByID(id string) (*entity.Clinician, error) {
	c, ok := r.S.Clinicians[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *ClinicianRepo) GetByEmail(email string) (*entity.Clinician, error) {
	for _, c := range r.S.Clinicians {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}
