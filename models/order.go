package models

const (
	// DefaultRatePerGram is the list-price baseline in EGP per gram.
	// Item rates negotiated below it show up as the order's rate discount.
	DefaultRatePerGram = 4.0

	// ToleranceThresholdGrams is the largest per-part overage (actual minus
	// estimated weight) that still earns the automatic tolerance discount.
	// Parts routinely come out a few grams heavy from brims and purge
	// lines; bigger overages point at a slicing problem instead.
	ToleranceThresholdGrams = 5.0

	defaultNozzleSize  = 0.4
	defaultLayerHeight = 0.2
)

// PrintSettings are the slicer settings an item was printed with.
type PrintSettings struct {
	NozzleSize    float64 `json:"nozzle_size"`
	LayerHeight   float64 `json:"layer_height"`
	InfillDensity int     `json:"infill_density"`
	SupportType   string  `json:"support_type"`
	ScaleRatio    float64 `json:"scale_ratio"`
}

// DefaultPrintSettings returns the shop's usual slicer settings.
func DefaultPrintSettings() PrintSettings {
	return PrintSettings{
		NozzleSize:    defaultNozzleSize,
		LayerHeight:   defaultLayerHeight,
		InfillDensity: 20,
		SupportType:   "None",
		ScaleRatio:    1.0,
	}
}

// PrintItem is one line of an order. Estimated figures come from the
// slicer; actual figures are measured after printing and take precedence
// once set. SpoolID is a lookup reference only; the pending/deducted
// flags track the item's claim against that spool.
type PrintItem struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name"`
	EstimatedWeightGrams float64       `json:"estimated_weight_grams"`
	ActualWeightGrams    float64       `json:"actual_weight_grams"`
	EstimatedTimeMinutes int           `json:"estimated_time_minutes"`
	ActualTimeMinutes    int           `json:"actual_time_minutes"`
	FilamentType         string        `json:"filament_type"`
	Color                string        `json:"color"`
	SpoolID              string        `json:"spool_id"`
	Settings             PrintSettings `json:"settings"`
	Quantity             int           `json:"quantity"`
	RatePerGram          float64       `json:"rate_per_gram"`
	Notes                string        `json:"notes"`
	IsPrinted            bool          `json:"is_printed"`
	FilamentPending      bool          `json:"filament_pending"`
	FilamentDeducted     bool          `json:"filament_deducted"`
	PrinterID            string        `json:"printer_id"`

	ToleranceDiscountApplied bool    `json:"tolerance_discount_applied"`
	ToleranceDiscountAmount  float64 `json:"tolerance_discount_amount"`
}

// NewPrintItem returns an item with the default rate and settings.
func NewPrintItem() *PrintItem {
	return &PrintItem{
		ID:           GenerateID(),
		FilamentType: "PLA+",
		Color:        "Black",
		Settings:     DefaultPrintSettings(),
		Quantity:     1,
		RatePerGram:  DefaultRatePerGram,
	}
}

// ApplyDefaults fills fields that older data files may not carry.
func (i *PrintItem) ApplyDefaults() {
	if i.ID == "" {
		i.ID = GenerateID()
	}
	if i.FilamentType == "" {
		i.FilamentType = "PLA+"
	}
	if i.Color == "" {
		i.Color = "Black"
	}
	if i.Quantity < 1 {
		i.Quantity = 1
	}
	if i.RatePerGram == 0 {
		i.RatePerGram = DefaultRatePerGram
	}
	if i.Settings == (PrintSettings{}) {
		i.Settings = DefaultPrintSettings()
	}
}

// Weight is the actual measured weight when set, else the estimate.
func (i *PrintItem) Weight() float64 {
	if i.ActualWeightGrams > 0 {
		return i.ActualWeightGrams
	}
	return i.EstimatedWeightGrams
}

// TimeMinutes is the actual print time when set, else the estimate.
func (i *PrintItem) TimeMinutes() int {
	if i.ActualTimeMinutes > 0 {
		return i.ActualTimeMinutes
	}
	return i.EstimatedTimeMinutes
}

// TotalWeight is the per-part weight across the whole quantity.
func (i *PrintItem) TotalWeight() float64 {
	return i.Weight() * float64(i.Quantity)
}

// WeightDifference is actual minus estimated weight, zero until measured.
func (i *PrintItem) WeightDifference() float64 {
	if i.ActualWeightGrams <= 0 {
		return 0
	}
	return i.ActualWeightGrams - i.EstimatedWeightGrams
}

// PrintCost is weight x quantity x rate, net of any tolerance discount.
func (i *PrintItem) PrintCost() float64 {
	return i.Weight()*float64(i.Quantity)*i.RatePerGram - i.ToleranceDiscountAmount
}

// HasSpoolClaim reports whether the item currently holds weight on a
// spool, either reserved or deducted.
func (i *PrintItem) HasSpoolClaim() bool {
	return i.SpoolID != "" && (i.FilamentPending || i.FilamentDeducted)
}

// Order is a customer transaction owning its print items. All money
// fields except the user inputs (order discount percent, shipping,
// payment method, amount received) are derived by the pricing engine and
// refreshed on every save.
type Order struct {
	ID            string      `json:"id"`
	OrderNumber   int         `json:"order_number"`
	CustomerID    string      `json:"customer_id"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	Status        OrderStatus `json:"status"`
	Items         []PrintItem `json:"items"`

	// R&D projects are billed at production cost with zero profit.
	IsRDProject bool `json:"is_rd_project"`

	Subtotal               float64 `json:"subtotal"`
	ActualTotal            float64 `json:"actual_total"`
	DiscountPercent        float64 `json:"discount_percent"`
	DiscountAmount         float64 `json:"discount_amount"`
	OrderDiscountPercent   float64 `json:"order_discount_percent"`
	OrderDiscountAmount    float64 `json:"order_discount_amount"`
	ToleranceDiscountTotal float64 `json:"tolerance_discount_total"`
	ShippingCost           float64 `json:"shipping_cost"`
	Total                  float64 `json:"total"`

	AmountReceived float64 `json:"amount_received"`
	RoundingLoss   float64 `json:"rounding_loss"`

	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentFee    float64       `json:"payment_fee"`

	MaterialCost     float64 `json:"material_cost"`
	ElectricityCost  float64 `json:"electricity_cost"`
	DepreciationCost float64 `json:"depreciation_cost"`
	Profit           float64 `json:"profit"`

	CreatedDate   string `json:"created_date"`
	UpdatedDate   string `json:"updated_date"`
	ConfirmedDate string `json:"confirmed_date"`
	DeliveredDate string `json:"delivered_date"`
	DeletedDate   string `json:"deleted_date"`

	Notes     string `json:"notes"`
	IsDeleted bool   `json:"is_deleted"`

	QuoteSent       bool    `json:"quote_sent"`
	QuoteSentDate   string  `json:"quote_sent_date"`
	DepositAmount   float64 `json:"deposit_amount"`
	DepositReceived bool    `json:"deposit_received"`
}

// NewOrder returns a draft order with a fresh id. The order number is
// assigned by the store at first save.
func NewOrder() *Order {
	now := NowStr()
	return &Order{
		ID:            GenerateID(),
		Status:        StatusDraft,
		PaymentMethod: PaymentCash,
		CreatedDate:   now,
		UpdatedDate:   now,
	}
}

// ApplyDefaults fills fields that older data files may not carry.
func (o *Order) ApplyDefaults() {
	if o.ID == "" {
		o.ID = GenerateID()
	}
	if o.Status == "" {
		o.Status = StatusDraft
	}
	if o.PaymentMethod == "" {
		o.PaymentMethod = PaymentCash
	}
	if o.CreatedDate == "" {
		o.CreatedDate = NowStr()
	}
	if o.UpdatedDate == "" {
		o.UpdatedDate = o.CreatedDate
	}
	for idx := range o.Items {
		o.Items[idx].ApplyDefaults()
	}
}

// ItemCount is the number of physical parts across all items.
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// TotalWeight is the summed weight of every part on the order.
func (o *Order) TotalWeight() float64 {
	total := 0.0
	for idx := range o.Items {
		total += o.Items[idx].TotalWeight()
	}
	return total
}

// TotalTime is the summed print time in minutes across all parts.
func (o *Order) TotalTime() int {
	total := 0
	for idx := range o.Items {
		total += o.Items[idx].TimeMinutes() * o.Items[idx].Quantity
	}
	return total
}

// RDCost is the production cost an R&D project is billed at.
func (o *Order) RDCost() float64 {
	return o.MaterialCost + o.ElectricityCost + o.DepreciationCost
}

// IsConfirmed reports whether the order has reached a committed stage,
// which is when pending filament gets deducted.
func (o *Order) IsConfirmed() bool {
	switch o.Status {
	case StatusConfirmed, StatusInProgress, StatusReady, StatusDelivered:
		return true
	}
	return false
}

// AddItem appends an item to the order.
func (o *Order) AddItem(item PrintItem) {
	o.Items = append(o.Items, item)
	o.UpdatedDate = NowStr()
}

// RemoveItem drops the item with the given id, reporting whether it existed.
func (o *Order) RemoveItem(itemID string) bool {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.UpdatedDate = NowStr()
			return true
		}
	}
	return false
}

// GetItem returns the item with the given id, or nil.
func (o *Order) GetItem(itemID string) *PrintItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}
