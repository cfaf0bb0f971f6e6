package models

// Statistics is a snapshot recomputed on demand from orders, spools,
// printers, failures and expenses. It is never persisted as
// authoritative state.
type Statistics struct {
	TotalOrders     int `json:"total_orders" yaml:"total_orders"`
	CompletedOrders int `json:"completed_orders" yaml:"completed_orders"`
	RDOrders        int `json:"rd_orders" yaml:"rd_orders"`

	TotalRevenue      float64 `json:"total_revenue" yaml:"total_revenue"`
	TotalShipping     float64 `json:"total_shipping" yaml:"total_shipping"`
	TotalPaymentFees  float64 `json:"total_payment_fees" yaml:"total_payment_fees"`
	TotalRoundingLoss float64 `json:"total_rounding_loss" yaml:"total_rounding_loss"`

	TotalMaterialCost     float64 `json:"total_material_cost" yaml:"total_material_cost"`
	TotalElectricityCost  float64 `json:"total_electricity_cost" yaml:"total_electricity_cost"`
	TotalDepreciationCost float64 `json:"total_depreciation_cost" yaml:"total_depreciation_cost"`
	TotalNozzleCost       float64 `json:"total_nozzle_cost" yaml:"total_nozzle_cost"`

	TotalFailures         int     `json:"total_failures" yaml:"total_failures"`
	TotalFailureCost      float64 `json:"total_failure_cost" yaml:"total_failure_cost"`
	FailureFilamentWasted float64 `json:"failure_filament_wasted" yaml:"failure_filament_wasted"`
	FailureTimeWasted     int     `json:"failure_time_wasted" yaml:"failure_time_wasted"`

	TotalExpenses       float64 `json:"total_expenses" yaml:"total_expenses"`
	ExpensesTools       float64 `json:"expenses_tools" yaml:"expenses_tools"`
	ExpensesConsumables float64 `json:"expenses_consumables" yaml:"expenses_consumables"`
	ExpensesMaintenance float64 `json:"expenses_maintenance" yaml:"expenses_maintenance"`
	ExpensesOther       float64 `json:"expenses_other" yaml:"expenses_other"`

	// TotalProfit is the true net after failures and expenses;
	// GrossProfit is the commercial margin before them.
	TotalProfit float64 `json:"total_profit" yaml:"total_profit"`
	GrossProfit float64 `json:"gross_profit" yaml:"gross_profit"`

	TotalWeightPrinted float64 `json:"total_weight_printed" yaml:"total_weight_printed"`
	TotalTimePrinted   int     `json:"total_time_printed" yaml:"total_time_printed"`
	TotalFilamentUsed  float64 `json:"total_filament_used" yaml:"total_filament_used"`
	TotalFilamentWaste float64 `json:"total_filament_waste" yaml:"total_filament_waste"`

	ActiveSpools      int     `json:"active_spools" yaml:"active_spools"`
	RemainingFilament float64 `json:"remaining_filament" yaml:"remaining_filament"`
	PendingFilament   float64 `json:"pending_filament" yaml:"pending_filament"`

	TotalCustomers int `json:"total_customers" yaml:"total_customers"`
	TotalPrinters  int `json:"total_printers" yaml:"total_printers"`

	TotalToleranceDiscounts float64 `json:"total_tolerance_discounts" yaml:"total_tolerance_discounts"`
}

// ProfitMargin is net profit as a percentage of revenue, zero when there
// is no revenue.
func (s *Statistics) ProfitMargin() float64 {
	if s.TotalRevenue <= 0 {
		return 0
	}
	return (s.TotalProfit / s.TotalRevenue) * 100
}

// GrossMargin is gross profit as a percentage of revenue.
func (s *Statistics) GrossMargin() float64 {
	if s.TotalRevenue <= 0 {
		return 0
	}
	return (s.GrossProfit / s.TotalRevenue) * 100
}

// TotalProductionCosts sums the direct costs of printing.
func (s *Statistics) TotalProductionCosts() float64 {
	return s.TotalMaterialCost + s.TotalElectricityCost +
		s.TotalDepreciationCost + s.TotalNozzleCost
}

// TotalCosts is every cost including failures and expenses.
func (s *Statistics) TotalCosts() float64 {
	return s.TotalProductionCosts() + s.TotalFailureCost + s.TotalExpenses
}
