package cmd

import (
	"testing"

	"github.com/abaad/hive/models"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   float64
		want  float64
	}{
		{"plain number", "12.5", 0, 12.5},
		{"integer", "100", 0, 100},
		{"whitespace trimmed", "  3.5 ", 0, 3.5},
		{"empty falls back", "", 4.0, 4.0},
		{"garbage falls back", "abc", 4.0, 4.0},
		{"negative allowed", "-2", 0, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseFloat(tt.input, tt.def); got != tt.want {
				t.Errorf("ParseFloat(%q, %v) = %v, want %v", tt.input, tt.def, got, tt.want)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   int
		want  int
	}{
		{"plain number", "7", 0, 7},
		{"empty falls back", "", 1, 1},
		{"garbage falls back", "x", 1, 1},
		{"float falls back", "2.5", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseInt(tt.input, tt.def); got != tt.want {
				t.Errorf("ParseInt(%q, %d) = %d, want %d", tt.input, tt.def, got, tt.want)
			}
		})
	}
}

func TestTruncateFront(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string unchanged", "abc", 10, "abc"},
		{"exact length unchanged", "abcdefghij", 10, "abcdefghij"},
		{"long string truncated", "abcdefghijk", 10, "...efghijk"},
		{"tiny maxLen", "abcdef", 3, "def"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateFront(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("TruncateFront(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		input string
		want  models.PaymentMethod
	}{
		{"cash", models.PaymentCash},
		{"", models.PaymentCash},
		{"vodafone", models.PaymentVodafoneCash},
		{"VF", models.PaymentVodafoneCash},
		{"instapay", models.PaymentInstaPay},
		{"Insta", models.PaymentInstaPay},
		{"bitcoin", models.PaymentCash},
	}
	for _, tt := range tests {
		if got := parsePaymentMethod(tt.input); got != tt.want {
			t.Errorf("parsePaymentMethod(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		input  string
		want   models.OrderStatus
		wantOK bool
	}{
		{"draft", models.StatusDraft, true},
		{"Confirmed", models.StatusConfirmed, true},
		{"in progress", models.StatusInProgress, true},
		{"in_progress", models.StatusInProgress, true},
		{"DELIVERED", models.StatusDelivered, true},
		{"bogus", "", false},
	}
	for _, tt := range tests {
		got, ok := parseOrderStatus(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseOrderStatus(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseFailureReason(t *testing.T) {
	if got := parseFailureReason("bed adhesion"); got != models.ReasonBedAdhesion {
		t.Errorf("parseFailureReason = %q, want %q", got, models.ReasonBedAdhesion)
	}
	if got := parseFailureReason("unknown thing"); got != models.ReasonOther {
		t.Errorf("unknown reason should fall back to Other, got %q", got)
	}
}

func TestParseExpenseCategory(t *testing.T) {
	if got := parseExpenseCategory("tools"); got != models.ExpenseTools {
		t.Errorf("parseExpenseCategory = %q, want %q", got, models.ExpenseTools)
	}
	if got := parseExpenseCategory("misc"); got != models.ExpenseOtherCat {
		t.Errorf("unknown category should fall back to Other, got %q", got)
	}
}
