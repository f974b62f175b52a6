// Package apptest provee dobles en memoria de los puertos de persistencia
// para los tests de los casos de uso, incluida una transacción simulada con
// snapshot/rollback que reproduce la atomicidad del TxRunner real.
package apptest

import (
	"github.com/clinova/clinica-api/internal/domain/entity"
)

// Store estado en memoria compartido por los repos falsos.
type Store struct {
	Products   map[string]*entity.Product
	Records    map[string]*entity.InventoryRecord // key: id
	Lots       map[string]*entity.Lot
	LotOrder   []string // orden de inserción, para desempates estables
	Movements  []*entity.StockMovement
	Orders     map[string]*entity.PurchaseOrder
	Sales      map[string]*entity.Sale
	Clinicians map[string]*entity.Clinician

	// FailOnMovementCreate simula un fallo de infraestructura a mitad de
	// transacción: el insert del movimiento devuelve error y todo lo
	// descontado antes debe revertirse.
	FailOnMovementCreate bool
}

// NewStore construye un estado vacío.
func NewStore() *Store {
	return &Store{
		Products:   make(map[string]*entity.Product),
		Records:    make(map[string]*entity.InventoryRecord),
		Lots:       make(map[string]*entity.Lot),
		Orders:     make(map[string]*entity.PurchaseOrder),
		Sales:      make(map[string]*entity.Sale),
		Clinicians: make(map[string]*entity.Clinician),
	}
}

// snapshot copia profunda del estado mutable por transacciones.
func (s *Store) snapshot() *Store {
	cp := NewStore()
	for k, v := range s.Products {
		p := *v
		cp.Products[k] = &p
	}
	for k, v := range s.Records {
		r := *v
		cp.Records[k] = &r
	}
	for k, v := range s.Lots {
		l := *v
		cp.Lots[k] = &l
	}
	cp.LotOrder = append([]string(nil), s.LotOrder...)
	for _, m := range s.Movements {
		mm := *m
		cp.Movements = append(cp.Movements, &mm)
	}
	for k, v := range s.Orders {
		o := *v
		o.Items = append([]entity.PurchaseOrderItem(nil), v.Items...)
		cp.Orders[k] = &o
	}
	for k, v := range s.Sales {
		sl := *v
		sl.Items = append([]entity.SaleItem(nil), v.Items...)
		cp.Sales[k] = &sl
	}
	for k, v := range s.Clinicians {
		c := *v
		cp.Clinicians[k] = &c
	}
	return cp
}

// restore repone el estado desde un snapshot (rollback).
func (s *Store) restore(from *Store) {
	s.Products = from.Products
	s.Records = from.Records
	s.Lots = from.Lots
	s.LotOrder = from.LotOrder
	s.Movements = from.Movements
	s.Orders = from.Orders
	s.Sales = from.Sales
	s.Clinicians = from.Clinicians
}

// RecordFor devuelve el registro de inventario del par, nil si no existe.
func (s *Store) RecordFor(productID, ownerID string) *entity.InventoryRecord {
	for _, r := range s.Records {
		if r.ProductID == productID && r.OwnerID == ownerID {
			return r
		}
	}
	return nil
}
