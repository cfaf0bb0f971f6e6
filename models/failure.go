package models

// PrintFailure records a failed print: what was being printed, why it
// failed, and what the failure cost in filament and power. Failures are
// folded into the true profit figure by the statistics aggregator.
type PrintFailure struct {
	ID   string `json:"id"`
	Date string `json:"date"`

	Source FailureSource `json:"source"`

	OrderID      string `json:"order_id"`
	OrderNumber  int    `json:"order_number"`
	CustomerName string `json:"customer_name"`
	ItemName     string `json:"item_name"`

	Reason      FailureReason `json:"reason"`
	Description string        `json:"description"`

	FilamentWastedGrams float64 `json:"filament_wasted_grams"`
	TimeWastedMinutes   int     `json:"time_wasted_minutes"`
	SpoolID             string  `json:"spool_id"`
	Color               string  `json:"color"`

	FilamentCost    float64 `json:"filament_cost"`
	ElectricityCost float64 `json:"electricity_cost"`
	TotalLoss       float64 `json:"total_loss"`

	PrinterID   string `json:"printer_id"`
	PrinterName string `json:"printer_name"`

	Resolved        bool   `json:"resolved"`
	ResolutionNotes string `json:"resolution_notes"`
}

// NewPrintFailure returns a failure record with a fresh id.
func NewPrintFailure() *PrintFailure {
	return &PrintFailure{
		ID:     GenerateID(),
		Date:   NowStr(),
		Source: SourceOther,
		Reason: ReasonOther,
	}
}

// ApplyDefaults fills fields that older data files may not carry.
func (f *PrintFailure) ApplyDefaults() {
	if f.ID == "" {
		f.ID = GenerateID()
	}
	if f.Date == "" {
		f.Date = NowStr()
	}
	if f.Source == "" {
		f.Source = SourceOther
	}
	if f.Reason == "" {
		f.Reason = ReasonOther
	}
}

// CalculateCosts fills the derived cost fields from the wasted filament
// and time at the given rates.
func (f *PrintFailure) CalculateCosts(costPerGram, electricityRate float64) {
	f.FilamentCost = f.FilamentWastedGrams * costPerGram
	f.ElectricityCost = (float64(f.TimeWastedMinutes) / 60) * electricityRate
	f.TotalLoss = f.FilamentCost + f.ElectricityCost
}
