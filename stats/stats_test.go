package stats

import (
	"math"
	"testing"

	"github.com/abaad/hive/models"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, nil, nil, nil, nil, nil, nil)

	if s.TotalOrders != 0 || s.TotalRevenue != 0 || s.TotalProfit != 0 {
		t.Errorf("empty dataset should produce zeros, got %+v", s)
	}
	// margin must not divide by zero
	nearlyEqual(t, "profit margin", s.ProfitMargin(), 0)
	nearlyEqual(t, "gross margin", s.GrossMargin(), 0)
}

func TestCompute_CancelledOrdersExcluded(t *testing.T) {
	orders := []models.Order{
		{Status: models.StatusDelivered, Total: 1000, Profit: 400, MaterialCost: 100},
		{Status: models.StatusCancelled, Total: 500, Profit: 200, MaterialCost: 50},
	}

	customers := []models.Customer{
		{Name: "Omar"},
		{Name: "Salma"},
	}

	s := Compute(orders, customers, nil, nil, nil, nil, nil)

	if s.TotalOrders != 2 {
		t.Errorf("TotalOrders = %d, want 2", s.TotalOrders)
	}
	if s.CompletedOrders != 1 {
		t.Errorf("CompletedOrders = %d, want 1", s.CompletedOrders)
	}
	if s.TotalCustomers != 2 {
		t.Errorf("TotalCustomers = %d, want 2", s.TotalCustomers)
	}
	nearlyEqual(t, "revenue", s.TotalRevenue, 1000)
	nearlyEqual(t, "gross profit", s.GrossProfit, 400)
	nearlyEqual(t, "material cost", s.TotalMaterialCost, 100)
}

func TestCompute_TrueProfit(t *testing.T) {
	orders := []models.Order{
		{Status: models.StatusDelivered, Total: 2000, Profit: 800},
	}
	failures := []models.PrintFailure{
		{TotalLoss: 120, FilamentWastedGrams: 90, TimeWastedMinutes: 180},
	}
	expenses := []models.Expense{
		{Category: models.ExpenseTools, TotalCost: 150},
		{Category: models.ExpenseConsumables, TotalCost: 30},
		{Category: models.ExpenseBills, TotalCost: 70},
		// filament purchases are excluded from operating expenses
		{Category: models.ExpenseFilament, TotalCost: 840},
	}

	s := Compute(orders, nil, nil, nil, failures, expenses, nil)

	nearlyEqual(t, "expenses", s.TotalExpenses, 250)
	nearlyEqual(t, "tools", s.ExpensesTools, 150)
	nearlyEqual(t, "consumables", s.ExpensesConsumables, 30)
	nearlyEqual(t, "other", s.ExpensesOther, 70)
	nearlyEqual(t, "failure cost", s.TotalFailureCost, 120)
	nearlyEqual(t, "true profit", s.TotalProfit, 800-120-250)
	nearlyEqual(t, "profit margin", s.ProfitMargin(), (800-120-250)/2000.0*100)
}

func TestCompute_RDOrdersCounted(t *testing.T) {
	orders := []models.Order{
		{Status: models.StatusDelivered, IsRDProject: true, Total: 100, Profit: 0},
		{Status: models.StatusConfirmed, Total: 500, Profit: 200},
	}

	s := Compute(orders, nil, nil, nil, nil, nil, nil)

	if s.RDOrders != 1 {
		t.Errorf("RDOrders = %d, want 1", s.RDOrders)
	}
	nearlyEqual(t, "gross profit", s.GrossProfit, 200)
}

func TestCompute_InventoryAndWaste(t *testing.T) {
	spools := []models.FilamentSpool{
		{InitialWeightGrams: 1000, CurrentWeightGrams: 600, PendingWeightGrams: 50, IsActive: true},
		{InitialWeightGrams: 1000, CurrentWeightGrams: 15, IsActive: false, Status: models.SpoolTrash},
	}
	history := []models.FilamentHistory{{WasteWeight: 15}}
	failures := []models.PrintFailure{{FilamentWastedGrams: 40}}

	s := Compute(nil, nil, spools, nil, failures, nil, history)

	nearlyEqual(t, "filament used", s.TotalFilamentUsed, 400+985)
	nearlyEqual(t, "remaining", s.RemainingFilament, 600)
	nearlyEqual(t, "pending", s.PendingFilament, 50)
	nearlyEqual(t, "waste", s.TotalFilamentWaste, 15+40)
	if s.ActiveSpools != 1 {
		t.Errorf("ActiveSpools = %d, want 1", s.ActiveSpools)
	}
}

func TestMonthly(t *testing.T) {
	orders := []models.Order{
		{Status: models.StatusDelivered, Total: 100, Profit: 40, CreatedDate: "2026-01-10 12:00:00"},
		{Status: models.StatusDelivered, Total: 200, Profit: 80, CreatedDate: "2026-01-25 09:30:00"},
		{Status: models.StatusConfirmed, Total: 300, Profit: 90, CreatedDate: "2026-02-02 10:00:00"},
		{Status: models.StatusCancelled, Total: 999, Profit: 0, CreatedDate: "2026-02-14 10:00:00"},
		{Status: models.StatusDraft, Total: 50, CreatedDate: "not a date"},
	}

	points := Monthly(orders)

	if len(points) != 2 {
		t.Fatalf("got %d months, want 2", len(points))
	}
	if points[0].Month != "2026-01" || points[1].Month != "2026-02" {
		t.Errorf("months not sorted: %+v", points)
	}
	nearlyEqual(t, "jan revenue", points[0].Revenue, 300)
	nearlyEqual(t, "jan profit", points[0].Profit, 120)
	if points[0].Orders != 2 {
		t.Errorf("jan orders = %d, want 2", points[0].Orders)
	}
	nearlyEqual(t, "feb revenue", points[1].Revenue, 300)
}
