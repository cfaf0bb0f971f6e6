package store

import (
	"sort"
	"strconv"
	"strings"

	"github.com/abaad/hive/models"
	"github.com/abaad/hive/pricing"
)

// NextOrderNumber hands out the next sequential order number and bumps
// the in-memory counter. The caller's save persists it; numbers are
// assigned once, at first save.
func (s *Store) NextOrderNumber() int {
	num := s.data.Settings.NextOrderNumber
	if num < 1 {
		num = 1
	}
	s.data.Settings.NextOrderNumber = num + 1
	return num
}

// SaveOrder recomputes the order's derived fields and persists it.
//
// When confirmFilament is set and the order has reached a confirmed
// stage, every item still holding a pending claim gets its filament
// committed (deducted) from its spool. A cancelled order releases all
// pending claims instead. Committed filament stays deducted on
// cancellation; it is only returned by DeleteOrder.
func (s *Store) SaveOrder(o *models.Order, confirmFilament bool) error {
	if o.OrderNumber == 0 {
		o.OrderNumber = s.NextOrderNumber()
	}

	pricing.RecomputeOrder(o, s.rates)

	if confirmFilament && o.IsConfirmed() {
		for idx := range o.Items {
			item := &o.Items[idx]
			if item.FilamentPending && !item.FilamentDeducted && item.SpoolID != "" {
				if s.CommitFilament(item.SpoolID, item.TotalWeight()) {
					item.FilamentPending = false
					item.FilamentDeducted = true
				}
			}
		}
		if o.ConfirmedDate == "" {
			o.ConfirmedDate = models.NowStr()
		}
	}

	if o.Status == models.StatusCancelled {
		for idx := range o.Items {
			item := &o.Items[idx]
			if item.FilamentPending && item.SpoolID != "" {
				s.ReleasePendingFilament(item.SpoolID, item.TotalWeight())
				item.FilamentPending = false
			}
		}
	}

	if o.Status == models.StatusDelivered && o.DeliveredDate == "" {
		o.DeliveredDate = models.NowStr()
	}

	s.data.Orders[o.ID] = *o

	if o.CustomerID != "" {
		s.refreshCustomerStats(o.CustomerID)
	}
	return s.Save()
}

// GetOrder returns a working copy of the order, or nil when unknown.
func (s *Store) GetOrder(id string) *models.Order {
	o, ok := s.data.Orders[id]
	if !ok {
		return nil
	}
	return &o
}

// FindOrderByNumber looks an order up by its sequential number.
func (s *Store) FindOrderByNumber(number int) *models.Order {
	for _, o := range s.data.Orders {
		if o.OrderNumber == number && !o.IsDeleted {
			return &o
		}
	}
	return nil
}

// AllOrders returns every non-deleted order, newest first.
func (s *Store) AllOrders() []models.Order {
	out := make([]models.Order, 0, len(s.data.Orders))
	for _, o := range s.data.Orders {
		if o.IsDeleted {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedDate > out[j].CreatedDate })
	return out
}

// OrdersByStatus filters non-deleted orders by status.
func (s *Store) OrdersByStatus(status models.OrderStatus) []models.Order {
	var out []models.Order
	for _, o := range s.AllOrders() {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// RDOrders returns every R&D project order.
func (s *Store) RDOrders() []models.Order {
	var out []models.Order
	for _, o := range s.AllOrders() {
		if o.IsRDProject {
			out = append(out, o)
		}
	}
	return out
}

// SearchOrders matches the query against customer name, phone and order
// number, newest first.
func (s *Store) SearchOrders(query string) []models.Order {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []models.Order
	for _, o := range s.AllOrders() {
		if strings.Contains(strings.ToLower(o.CustomerName), query) ||
			strings.Contains(o.CustomerPhone, query) ||
			strings.Contains(strconv.Itoa(o.OrderNumber), query) {
			out = append(out, o)
		}
	}
	return out
}

// DeleteOrder removes an order. Soft deletion flags the order and keeps
// it out of every aggregate; hard deletion drops the record. When
// returnFilament is set, each item's claim is unwound: deducted weight
// goes back onto its spool, pending weight is released.
func (s *Store) DeleteOrder(orderID string, soft, returnFilament bool) error {
	o := s.GetOrder(orderID)
	if o == nil {
		return ErrNotFound
	}

	if returnFilament {
		for idx := range o.Items {
			item := &o.Items[idx]
			if item.SpoolID == "" {
				continue
			}
			sp := s.GetSpool(item.SpoolID)
			if sp == nil {
				continue
			}
			if item.FilamentDeducted {
				sp.Return(item.TotalWeight())
			} else if item.FilamentPending {
				sp.ReleasePending(item.TotalWeight())
			}
			item.FilamentPending = false
			item.FilamentDeducted = false
			if err := s.SaveSpool(sp); err != nil {
				return err
			}
		}
	}

	if soft {
		o.IsDeleted = true
		o.DeletedDate = models.NowStr()
		s.data.Orders[o.ID] = *o
		s.data.DeletedOrders[o.ID] = *o
	} else {
		delete(s.data.Orders, o.ID)
	}
	return s.Save()
}

// DeletedOrders returns soft-deleted orders, newest deletion first.
func (s *Store) DeletedOrders() []models.Order {
	seen := map[string]bool{}
	var out []models.Order
	for _, o := range s.data.Orders {
		if o.IsDeleted {
			out = append(out, o)
			seen[o.ID] = true
		}
	}
	for _, o := range s.data.DeletedOrders {
		if !seen[o.ID] {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].DeletedDate, out[j].DeletedDate
		if di == "" {
			di = out[i].CreatedDate
		}
		if dj == "" {
			dj = out[j].CreatedDate
		}
		return di > dj
	})
	return out
}

// RestoreOrder brings a soft-deleted order back.
func (s *Store) RestoreOrder(orderID string) error {
	if o, ok := s.data.Orders[orderID]; ok {
		o.IsDeleted = false
		o.DeletedDate = ""
		s.data.Orders[orderID] = o
		delete(s.data.DeletedOrders, orderID)
		return s.Save()
	}
	if o, ok := s.data.DeletedOrders[orderID]; ok {
		o.IsDeleted = false
		o.DeletedDate = ""
		s.data.Orders[orderID] = o
		delete(s.data.DeletedOrders, orderID)
		return s.Save()
	}
	return ErrNotFound
}

// PermanentlyDeleteOrder drops an order from both the live and deleted sets.
func (s *Store) PermanentlyDeleteOrder(orderID string) error {
	_, live := s.data.Orders[orderID]
	_, trashed := s.data.DeletedOrders[orderID]
	if !live && !trashed {
		return ErrNotFound
	}
	delete(s.data.Orders, orderID)
	delete(s.data.DeletedOrders, orderID)
	return s.Save()
}

// ChangeItemSpool moves an item's filament claim to another spool as one
// compensating transaction: the old claim is unwound first, then the
// same weight is reserved on the new spool. A committed claim is
// returned to its old spool and becomes a pending reservation on the
// new one, re-committed at the next confirmation. If the new spool
// cannot take the weight, nothing is persisted and false is returned.
func (s *Store) ChangeItemSpool(o *models.Order, itemID, newSpoolID string) bool {
	item := o.GetItem(itemID)
	if item == nil {
		return false
	}
	if newSpoolID == item.SpoolID {
		return true
	}
	newSpool := s.GetSpool(newSpoolID)
	if newSpool == nil {
		return false
	}

	grams := item.TotalWeight()
	oldSpool := s.GetSpool(item.SpoolID)

	// GetSpool hands out working copies, so a bail-out below leaves
	// the stored spools untouched.
	switch {
	case item.FilamentDeducted:
		if oldSpool != nil {
			oldSpool.Return(grams)
		}
		if !newSpool.Reserve(grams) {
			return false
		}
		item.FilamentDeducted = false
		item.FilamentPending = true
	case item.FilamentPending:
		if oldSpool != nil {
			oldSpool.ReleasePending(grams)
		}
		if !newSpool.Reserve(grams) {
			return false
		}
	default:
		if !newSpool.Reserve(grams) {
			return false
		}
		item.FilamentPending = true
	}

	if oldSpool != nil {
		if err := s.SaveSpool(oldSpool); err != nil {
			return false
		}
	}
	if err := s.SaveSpool(newSpool); err != nil {
		return false
	}

	item.SpoolID = newSpoolID
	return true
}
