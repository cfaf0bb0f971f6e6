package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestPrintItemWeightPrefersActual(t *testing.T) {
	item := NewPrintItem()
	item.EstimatedWeightGrams = 100

	if item.Weight() != 100 {
		t.Errorf("Weight() = %v, want estimate 100", item.Weight())
	}

	item.ActualWeightGrams = 103
	if item.Weight() != 103 {
		t.Errorf("Weight() = %v, want actual 103", item.Weight())
	}
}

func TestPrintItemPrintCost(t *testing.T) {
	item := NewPrintItem()
	item.EstimatedWeightGrams = 100
	item.ActualWeightGrams = 103
	item.Quantity = 1
	item.RatePerGram = 4.0
	item.ToleranceDiscountAmount = 4.0

	if got := item.PrintCost(); math.Abs(got-408.0) > 1e-9 {
		t.Errorf("PrintCost() = %v, want 408", got)
	}
}

func TestOrderRollups(t *testing.T) {
	order := NewOrder()
	a := NewPrintItem()
	a.EstimatedWeightGrams = 200
	a.EstimatedTimeMinutes = 300
	a.Quantity = 2
	b := NewPrintItem()
	b.EstimatedWeightGrams = 50
	b.EstimatedTimeMinutes = 60
	order.AddItem(*a)
	order.AddItem(*b)

	if order.ItemCount() != 3 {
		t.Errorf("ItemCount() = %d, want 3", order.ItemCount())
	}
	if order.TotalWeight() != 450 {
		t.Errorf("TotalWeight() = %v, want 450", order.TotalWeight())
	}
	if order.TotalTime() != 660 {
		t.Errorf("TotalTime() = %d, want 660", order.TotalTime())
	}
}

func TestOrderIsConfirmed(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{StatusDraft, false},
		{StatusQuote, false},
		{StatusConfirmed, true},
		{StatusInProgress, true},
		{StatusReady, true},
		{StatusDelivered, true},
		{StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			o := NewOrder()
			o.Status = tt.status
			if got := o.IsConfirmed(); got != tt.want {
				t.Errorf("IsConfirmed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrderRemoveItem(t *testing.T) {
	order := NewOrder()
	item := NewPrintItem()
	order.AddItem(*item)

	if !order.RemoveItem(item.ID) {
		t.Error("RemoveItem should report the item existed")
	}
	if len(order.Items) != 0 {
		t.Errorf("items remaining = %d, want 0", len(order.Items))
	}
	if order.RemoveItem("missing") {
		t.Error("RemoveItem of unknown id should report false")
	}
}

// Loading a record saved by an older version must fill documented
// defaults for keys that are absent from the JSON.
func TestApplyDefaultsAfterDecode(t *testing.T) {
	var item PrintItem
	if err := json.Unmarshal([]byte(`{"name":"bracket"}`), &item); err != nil {
		t.Fatal(err)
	}
	item.ApplyDefaults()

	if item.ID == "" {
		t.Error("missing id should be generated")
	}
	if item.Quantity != 1 {
		t.Errorf("quantity = %d, want default 1", item.Quantity)
	}
	if item.RatePerGram != DefaultRatePerGram {
		t.Errorf("rate = %v, want default %v", item.RatePerGram, DefaultRatePerGram)
	}
	if item.Settings.NozzleSize != 0.4 || item.Settings.ScaleRatio != 1.0 {
		t.Errorf("settings not defaulted: %+v", item.Settings)
	}

	var order Order
	if err := json.Unmarshal([]byte(`{"items":[{}]}`), &order); err != nil {
		t.Fatal(err)
	}
	order.ApplyDefaults()

	if order.Status != StatusDraft {
		t.Errorf("status = %q, want Draft", order.Status)
	}
	if order.PaymentMethod != PaymentCash {
		t.Errorf("payment method = %q, want Cash", order.PaymentMethod)
	}
	if order.Items[0].Quantity != 1 {
		t.Errorf("nested item quantity = %d, want 1", order.Items[0].Quantity)
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{-5, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
		{1440, "1d"},
		{1530, "1d 1h 30m"},
	}

	for _, tt := range tests {
		if got := FormatMinutes(tt.minutes); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestPrinterAddPrintRollsNozzle(t *testing.T) {
	p := NewPrinter("HIVE 0.1", "Creality Ender-3 Max")
	p.AddPrint(1400, 600)

	if p.NozzleChanges != 0 {
		t.Errorf("nozzle changes = %d, want 0", p.NozzleChanges)
	}

	p.AddPrint(200, 100)

	if p.NozzleChanges != 1 {
		t.Errorf("nozzle changes = %d, want 1 after passing lifetime", p.NozzleChanges)
	}
	if math.Abs(p.CurrentNozzleGrams-100) > 1e-9 {
		t.Errorf("current nozzle grams = %v, want 100 carried over", p.CurrentNozzleGrams)
	}
	if p.TotalPrintedGrams != 1600 || p.TotalPrintTimeMinutes != 700 {
		t.Errorf("totals = %v g, %d min; want 1600, 700", p.TotalPrintedGrams, p.TotalPrintTimeMinutes)
	}
}

func TestPrinterDepreciation(t *testing.T) {
	p := NewPrinter("HIVE 0.1", "Creality Ender-3 Max")
	if got := p.DepreciationPerGram(); math.Abs(got-0.05) > 1e-9 {
		t.Errorf("DepreciationPerGram() = %v, want 0.05", got)
	}
}
