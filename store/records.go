package store

import (
	"sort"
	"strings"

	"github.com/abaad/hive/models"
	"github.com/abaad/hive/stats"
)

// === Customers ===

// SaveCustomer stores the customer and persists.
func (s *Store) SaveCustomer(c *models.Customer) error {
	s.data.Customers[c.ID] = *c
	return s.Save()
}

// GetCustomer returns a working copy of the customer, or nil.
func (s *Store) GetCustomer(id string) *models.Customer {
	c, ok := s.data.Customers[id]
	if !ok {
		return nil
	}
	return &c
}

// AllCustomers returns every customer, sorted by name.
func (s *Store) AllCustomers() []models.Customer {
	out := make([]models.Customer, 0, len(s.data.Customers))
	for _, c := range s.data.Customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SearchCustomers matches the query against name and phone.
func (s *Store) SearchCustomers(query string) []models.Customer {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []models.Customer
	for _, c := range s.AllCustomers() {
		if strings.Contains(strings.ToLower(c.Name), query) || strings.Contains(c.Phone, query) {
			out = append(out, c)
		}
	}
	return out
}

// FindOrCreateCustomer returns the customer matching the phone (or,
// failing that, the exact name) and creates one when neither matches.
func (s *Store) FindOrCreateCustomer(name, phone string) (*models.Customer, error) {
	if phone != "" {
		for _, c := range s.data.Customers {
			if c.Phone == phone {
				return &c, nil
			}
		}
	}
	if name != "" {
		want := strings.ToLower(strings.TrimSpace(name))
		for _, c := range s.data.Customers {
			if strings.ToLower(strings.TrimSpace(c.Name)) == want {
				return &c, nil
			}
		}
	}

	c := models.NewCustomer(name, phone)
	if err := s.SaveCustomer(c); err != nil {
		return nil, err
	}
	return c, nil
}

// CustomerOrders returns the customer's non-deleted orders, newest first.
func (s *Store) CustomerOrders(customerID string) []models.Order {
	var out []models.Order
	for _, o := range s.AllOrders() {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out
}

// DeleteCustomer removes a customer record.
func (s *Store) DeleteCustomer(customerID string) error {
	if _, ok := s.data.Customers[customerID]; !ok {
		return ErrNotFound
	}
	delete(s.data.Customers, customerID)
	return s.Save()
}

// refreshCustomerStats recomputes a customer's order count and spend
// rollups from their surviving orders.
func (s *Store) refreshCustomerStats(customerID string) {
	c, ok := s.data.Customers[customerID]
	if !ok {
		return
	}
	orders := s.CustomerOrders(customerID)
	c.TotalOrders = len(orders)
	c.TotalSpent = 0
	for idx := range orders {
		if orders[idx].Status != models.StatusCancelled {
			c.TotalSpent += orders[idx].Total
		}
	}
	s.data.Customers[customerID] = c
}

// === Printers ===

// SavePrinter stores the printer and persists.
func (s *Store) SavePrinter(p *models.Printer) error {
	s.data.Printers[p.ID] = *p
	return s.Save()
}

// GetPrinter returns a working copy of the printer, or nil.
func (s *Store) GetPrinter(id string) *models.Printer {
	p, ok := s.data.Printers[id]
	if !ok {
		return nil
	}
	return &p
}

// AllPrinters returns every printer.
func (s *Store) AllPrinters() []models.Printer {
	out := make([]models.Printer, 0, len(s.data.Printers))
	for _, p := range s.data.Printers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DefaultPrinter returns the first active printer, or nil when none.
func (s *Store) DefaultPrinter() *models.Printer {
	for _, p := range s.AllPrinters() {
		if p.IsActive {
			return &p
		}
	}
	return nil
}

// RecordPrint logs grams and minutes against a printer, driving its
// depreciation and nozzle-wear counters.
func (s *Store) RecordPrint(printerID string, grams float64, minutes int) bool {
	p := s.GetPrinter(printerID)
	if p == nil {
		return false
	}
	p.AddPrint(grams, minutes)
	return s.SavePrinter(p) == nil
}

// === Failures ===

// SaveFailure computes the failure's costs, deducts wasted filament
// from the named spool, and persists the record.
func (s *Store) SaveFailure(f *models.PrintFailure) error {
	f.CalculateCosts(s.rates.CostPerGram, s.rates.ElectricityPerHour)
	s.data.Failures[f.ID] = *f

	if f.SpoolID != "" && f.FilamentWastedGrams > 0 {
		s.UseFilament(f.SpoolID, f.FilamentWastedGrams)
	}
	return s.Save()
}

// GetFailure returns a working copy of the failure, or nil.
func (s *Store) GetFailure(id string) *models.PrintFailure {
	f, ok := s.data.Failures[id]
	if !ok {
		return nil
	}
	return &f
}

// AllFailures returns every failure, newest first.
func (s *Store) AllFailures() []models.PrintFailure {
	out := make([]models.PrintFailure, 0, len(s.data.Failures))
	for _, f := range s.data.Failures {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// FailuresByReason filters failures by their cause.
func (s *Store) FailuresByReason(reason models.FailureReason) []models.PrintFailure {
	var out []models.PrintFailure
	for _, f := range s.AllFailures() {
		if f.Reason == reason {
			out = append(out, f)
		}
	}
	return out
}

// DeleteFailure removes a failure record.
func (s *Store) DeleteFailure(failureID string) error {
	if _, ok := s.data.Failures[failureID]; !ok {
		return ErrNotFound
	}
	delete(s.data.Failures, failureID)
	return s.Save()
}

// === Expenses ===

// SaveExpense computes the expense total and persists the record.
func (s *Store) SaveExpense(e *models.Expense) error {
	e.CalculateTotal()
	s.data.Expenses[e.ID] = *e
	return s.Save()
}

// AllExpenses returns every expense, newest first.
func (s *Store) AllExpenses() []models.Expense {
	out := make([]models.Expense, 0, len(s.data.Expenses))
	for _, e := range s.data.Expenses {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// ExpensesByCategory filters expenses by category.
func (s *Store) ExpensesByCategory(category models.ExpenseCategory) []models.Expense {
	var out []models.Expense
	for _, e := range s.AllExpenses() {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// DeleteExpense removes an expense record.
func (s *Store) DeleteExpense(expenseID string) error {
	if _, ok := s.data.Expenses[expenseID]; !ok {
		return ErrNotFound
	}
	delete(s.data.Expenses, expenseID)
	return s.Save()
}

// === Statistics ===

// Statistics recomputes the full business snapshot from scratch.
func (s *Store) Statistics() models.Statistics {
	return stats.Compute(
		s.AllOrders(),
		s.AllCustomers(),
		s.AllSpools(),
		s.AllPrinters(),
		s.AllFailures(),
		s.AllExpenses(),
		s.FilamentHistory(),
	)
}

// MonthlyStats buckets orders by month for trend reporting.
func (s *Store) MonthlyStats() []stats.MonthlyPoint {
	return stats.Monthly(s.AllOrders())
}
