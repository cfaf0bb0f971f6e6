package models

// Customer is a repeat buyer. TotalOrders and TotalSpent are rollups the
// store refreshes whenever one of the customer's orders is saved.
type Customer struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	Email           string  `json:"email"`
	Address         string  `json:"address"`
	Notes           string  `json:"notes"`
	CreatedDate     string  `json:"created_date"`
	TotalOrders     int     `json:"total_orders"`
	TotalSpent      float64 `json:"total_spent"`
	DiscountPercent float64 `json:"discount_percent"`
}

// NewCustomer returns a customer record with a fresh id.
func NewCustomer(name, phone string) *Customer {
	return &Customer{
		ID:          GenerateID(),
		Name:        name,
		Phone:       phone,
		CreatedDate: NowStr(),
	}
}

// ApplyDefaults fills fields that older data files may not carry.
func (c *Customer) ApplyDefaults() {
	if c.ID == "" {
		c.ID = GenerateID()
	}
	if c.CreatedDate == "" {
		c.CreatedDate = NowStr()
	}
}
