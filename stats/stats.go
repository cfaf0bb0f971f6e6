// Package stats folds orders, spools, printers, failures and expenses
// into a consistent profit and loss snapshot. Compute reads everything
// from scratch on each call and holds no state, so it is safe to call
// repeatedly and an empty dataset yields an all-zero report.
package stats

import (
	"sort"

	"github.com/abaad/hive/models"
)

// Compute builds a Statistics snapshot. Soft-deleted orders must already
// be filtered out by the caller; cancelled orders are excluded from all
// money sums here.
func Compute(
	orders []models.Order,
	customers []models.Customer,
	spools []models.FilamentSpool,
	printers []models.Printer,
	failures []models.PrintFailure,
	expenses []models.Expense,
	history []models.FilamentHistory,
) models.Statistics {
	var s models.Statistics

	s.TotalOrders = len(orders)
	s.TotalCustomers = len(customers)
	for idx := range orders {
		o := &orders[idx]
		if o.Status == models.StatusDelivered {
			s.CompletedOrders++
		}
		if o.IsRDProject {
			s.RDOrders++
		}
		if o.Status == models.StatusCancelled {
			continue
		}
		s.TotalRevenue += o.Total
		s.TotalShipping += o.ShippingCost
		s.TotalPaymentFees += o.PaymentFee
		s.TotalRoundingLoss += o.RoundingLoss
		s.TotalMaterialCost += o.MaterialCost
		s.TotalElectricityCost += o.ElectricityCost
		s.TotalDepreciationCost += o.DepreciationCost
		s.TotalToleranceDiscounts += o.ToleranceDiscountTotal
		s.GrossProfit += o.Profit

		if o.Status == models.StatusDelivered || o.Status == models.StatusReady {
			s.TotalWeightPrinted += o.TotalWeight()
			s.TotalTimePrinted += o.TotalTime()
		}
	}

	for idx := range failures {
		f := &failures[idx]
		s.TotalFailures++
		s.TotalFailureCost += f.TotalLoss
		s.FailureFilamentWasted += f.FilamentWastedGrams
		s.FailureTimeWasted += f.TimeWastedMinutes
	}

	for idx := range expenses {
		e := &expenses[idx]
		// Filament purchases are inventory, not an operating expense;
		// they already reach profit through per-gram material cost.
		if e.Category == models.ExpenseFilament {
			continue
		}
		s.TotalExpenses += e.TotalCost
		switch e.Category {
		case models.ExpenseTools:
			s.ExpensesTools += e.TotalCost
		case models.ExpenseConsumables:
			s.ExpensesConsumables += e.TotalCost
		case models.ExpenseMaintenance:
			s.ExpensesMaintenance += e.TotalCost
		}
	}
	s.ExpensesOther = s.TotalExpenses - s.ExpensesTools - s.ExpensesConsumables - s.ExpensesMaintenance

	// True profit is the commercial margin less failures and expenses.
	s.TotalProfit = s.GrossProfit - s.TotalFailureCost - s.TotalExpenses

	trashWaste := 0.0
	for idx := range history {
		trashWaste += history[idx].WasteWeight
	}

	for idx := range spools {
		sp := &spools[idx]
		s.TotalFilamentUsed += sp.UsedWeightGrams()
		if sp.IsActive {
			s.RemainingFilament += sp.CurrentWeightGrams
			if sp.CurrentWeightGrams > 50 {
				s.ActiveSpools++
			}
		}
		s.PendingFilament += sp.PendingWeightGrams
	}
	s.TotalFilamentWaste = trashWaste + s.FailureFilamentWasted

	s.TotalPrinters = len(printers)
	for idx := range printers {
		s.TotalNozzleCost += printers[idx].TotalNozzleCost()
	}

	return s
}

// MonthlyPoint is one month's rollup for trend reporting.
type MonthlyPoint struct {
	Month    string  `json:"month" yaml:"month"`
	Revenue  float64 `json:"revenue" yaml:"revenue"`
	Profit   float64 `json:"profit" yaml:"profit"`
	Orders   int     `json:"orders" yaml:"orders"`
	Filament float64 `json:"filament" yaml:"filament"`
}

// Monthly buckets non-cancelled orders by creation month (YYYY-MM),
// oldest first. Orders with unparsable dates are skipped.
func Monthly(orders []models.Order) []MonthlyPoint {
	buckets := map[string]*MonthlyPoint{}
	for idx := range orders {
		o := &orders[idx]
		if o.Status == models.StatusCancelled {
			continue
		}
		created := models.ParseTimestamp(o.CreatedDate)
		if created.IsZero() {
			continue
		}
		key := created.Format("2006-01")
		p, ok := buckets[key]
		if !ok {
			p = &MonthlyPoint{Month: key}
			buckets[key] = p
		}
		p.Revenue += o.Total
		p.Profit += o.Profit
		p.Orders++
		p.Filament += o.TotalWeight()
	}

	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthlyPoint, 0, len(months))
	for _, m := range months {
		out = append(out, *buckets[m])
	}
	return out
}
