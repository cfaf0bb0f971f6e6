package models

const (
	// DefaultPrinterPrice and DefaultPrinterLifetimeKg give the reference
	// depreciation of 0.05 EGP per printed gram (25000 EGP over 500 kg).
	DefaultPrinterPrice      = 25000.0
	DefaultPrinterLifetimeKg = 500.0

	// DefaultElectricityRate is EGP per hour of printing.
	DefaultElectricityRate = 0.31

	defaultNozzleCost          = 100.0
	defaultNozzleLifetimeGrams = 1500.0
)

// Printer is a machine with usage tracking. Every delivered order records
// its grams and minutes here, which drives depreciation, electricity
// accounting, and nozzle wear.
type Printer struct {
	ID                     string  `json:"id"`
	Name                   string  `json:"name"`
	Model                  string  `json:"model"`
	PurchasePrice          float64 `json:"purchase_price"`
	LifetimeKg             float64 `json:"lifetime_kg"`
	TotalPrintedGrams      float64 `json:"total_printed_grams"`
	TotalPrintTimeMinutes  int     `json:"total_print_time_minutes"`
	NozzleChanges          int     `json:"nozzle_changes"`
	NozzleCost             float64 `json:"nozzle_cost"`
	NozzleLifetimeGrams    float64 `json:"nozzle_lifetime_grams"`
	CurrentNozzleGrams     float64 `json:"current_nozzle_grams"`
	ElectricityRatePerHour float64 `json:"electricity_rate_per_hour"`
	IsActive               bool    `json:"is_active"`
	Notes                  string  `json:"notes"`
	CreatedDate            string  `json:"created_date"`
}

// NewPrinter returns an active printer with the shop's reference figures.
func NewPrinter(name, model string) *Printer {
	return &Printer{
		ID:                     GenerateID(),
		Name:                   name,
		Model:                  model,
		PurchasePrice:          DefaultPrinterPrice,
		LifetimeKg:             DefaultPrinterLifetimeKg,
		NozzleCost:             defaultNozzleCost,
		NozzleLifetimeGrams:    defaultNozzleLifetimeGrams,
		ElectricityRatePerHour: DefaultElectricityRate,
		IsActive:               true,
		CreatedDate:            NowStr(),
	}
}

// ApplyDefaults fills fields that older data files may not carry.
func (p *Printer) ApplyDefaults() {
	if p.ID == "" {
		p.ID = GenerateID()
	}
	if p.PurchasePrice == 0 {
		p.PurchasePrice = DefaultPrinterPrice
	}
	if p.LifetimeKg == 0 {
		p.LifetimeKg = DefaultPrinterLifetimeKg
	}
	if p.NozzleCost == 0 {
		p.NozzleCost = defaultNozzleCost
	}
	if p.NozzleLifetimeGrams == 0 {
		p.NozzleLifetimeGrams = defaultNozzleLifetimeGrams
	}
	if p.ElectricityRatePerHour == 0 {
		p.ElectricityRatePerHour = DefaultElectricityRate
	}
	if p.CreatedDate == "" {
		p.CreatedDate = NowStr()
	}
}

// DepreciationPerGram is machine wear in EGP per printed gram.
func (p *Printer) DepreciationPerGram() float64 {
	if p.LifetimeKg <= 0 {
		return 0
	}
	return p.PurchasePrice / (p.LifetimeKg * 1000)
}

// TotalDepreciation is accumulated machine wear in EGP.
func (p *Printer) TotalDepreciation() float64 {
	return p.TotalPrintedGrams * p.DepreciationPerGram()
}

// TotalElectricityCost is accumulated power cost in EGP.
func (p *Printer) TotalElectricityCost() float64 {
	return (float64(p.TotalPrintTimeMinutes) / 60) * p.ElectricityRatePerHour
}

// TotalNozzleCost is the cost of nozzles worn out so far.
func (p *Printer) TotalNozzleCost() float64 {
	return float64(p.NozzleChanges) * p.NozzleCost
}

// NozzleUsagePercent is wear on the current nozzle.
func (p *Printer) NozzleUsagePercent() float64 {
	if p.NozzleLifetimeGrams <= 0 {
		return 0
	}
	return (p.CurrentNozzleGrams / p.NozzleLifetimeGrams) * 100
}

// AddPrint records a finished print job and rolls the nozzle counter when
// the current nozzle passes its lifetime.
func (p *Printer) AddPrint(grams float64, minutes int) {
	p.TotalPrintedGrams += grams
	p.TotalPrintTimeMinutes += minutes
	p.CurrentNozzleGrams += grams

	if p.CurrentNozzleGrams >= p.NozzleLifetimeGrams {
		p.NozzleChanges++
		p.CurrentNozzleGrams -= p.NozzleLifetimeGrams
	}
}
