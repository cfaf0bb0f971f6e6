package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abaad/hive/models"
	"github.com/abaad/hive/store"
)

// ParseFloat coerces user input to a float64, falling back to def on
// empty or malformed values instead of failing the whole command.
func ParseFloat(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// ParseInt coerces user input to an int, falling back to def on empty
// or malformed values.
func ParseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// FormatEGP renders a money amount for display.
func FormatEGP(amount float64) string {
	return fmt.Sprintf("%.2f EGP", amount)
}

// FormatGrams renders a weight for display.
func FormatGrams(grams float64) string {
	return fmt.Sprintf("%.1fg", grams)
}

// TruncateFront truncates a string from the front if it exceeds maxLen.
func TruncateFront(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[len(s)-maxLen:]
	}
	return "..." + s[len(s)-maxLen+3:]
}

// statusLabel gives each order status a stable display name.
func statusLabel(status models.OrderStatus) string {
	if status == "" {
		return string(models.StatusDraft)
	}
	return string(status)
}

// parsePaymentMethod maps loose user input onto a payment method,
// defaulting to cash.
func parsePaymentMethod(s string) models.PaymentMethod {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vodafone", "vodafone cash", "vf":
		return models.PaymentVodafoneCash
	case "instapay", "insta":
		return models.PaymentInstaPay
	default:
		return models.PaymentCash
	}
}

// parseOrderStatus maps loose user input onto an order status; ok is
// false for unknown values.
func parseOrderStatus(s string) (models.OrderStatus, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	needle = strings.ReplaceAll(needle, "_", " ")
	for _, st := range models.OrderStatuses {
		if strings.ToLower(string(st)) == needle {
			return st, true
		}
	}
	return "", false
}

// resolveOrder finds an order by id prefix or by #number.
func resolveOrder(s *store.Store, token string) (*models.Order, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("missing order reference")
	}
	if strings.HasPrefix(token, "#") {
		n, err := strconv.Atoi(token[1:])
		if err != nil {
			return nil, fmt.Errorf("invalid order number %q", token)
		}
		if o := s.FindOrderByNumber(n); o != nil {
			return o, nil
		}
		return nil, fmt.Errorf("no order numbered %s", token)
	}
	if o := s.GetOrder(token); o != nil {
		return o, nil
	}
	// Fall back to number without the # prefix
	if n, err := strconv.Atoi(token); err == nil {
		if o := s.FindOrderByNumber(n); o != nil {
			return o, nil
		}
	}
	return nil, fmt.Errorf("no order matching %q", token)
}
