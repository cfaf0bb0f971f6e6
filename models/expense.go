package models

// Expense is a business purchase outside of order production costs:
// tools, consumables, bills, extra filament and so on.
type Expense struct {
	ID   string `json:"id"`
	Date string `json:"date"`

	Category    ExpenseCategory `json:"category"`
	Name        string          `json:"name"`
	Description string          `json:"description"`

	Amount    float64 `json:"amount"`
	Quantity  int     `json:"quantity"`
	TotalCost float64 `json:"total_cost"`

	Supplier      string `json:"supplier"`
	ReceiptNumber string `json:"receipt_number"`

	IsRecurring     bool   `json:"is_recurring"`
	RecurringPeriod string `json:"recurring_period"`
}

// NewExpense returns an expense record with a fresh id.
func NewExpense() *Expense {
	return &Expense{
		ID:       GenerateID(),
		Date:     NowStr(),
		Category: ExpenseOtherCat,
		Quantity: 1,
	}
}

// ApplyDefaults fills fields that older data files may not carry.
func (e *Expense) ApplyDefaults() {
	if e.ID == "" {
		e.ID = GenerateID()
	}
	if e.Date == "" {
		e.Date = NowStr()
	}
	if e.Category == "" {
		e.Category = ExpenseOtherCat
	}
	if e.Quantity < 1 {
		e.Quantity = 1
	}
}

// CalculateTotal refreshes the derived total cost.
func (e *Expense) CalculateTotal() {
	e.TotalCost = e.Amount * float64(e.Quantity)
}
