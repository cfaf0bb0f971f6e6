// Package pricing recomputes every derived monetary field of an order
// from its items and user-set inputs. Recompute is a pure function: it
// is safe to call on every edit and calling it twice with the same
// inputs yields identical output. Callers merge the result back into
// their order with Apply.
package pricing

import "github.com/abaad/hive/models"

// Rates are the business constants the engine prices with. They are
// owned by the settings layer; the engine only reads them.
type Rates struct {
	// BaseRatePerGram is the list-price baseline (EGP/g). Item rates
	// negotiated below it surface as the rate discount.
	BaseRatePerGram float64
	// CostPerGram is the reference material cost (EGP/g).
	CostPerGram float64
	// ElectricityPerHour is power cost while printing (EGP/h).
	ElectricityPerHour float64
	// PrinterPrice and PrinterLifetimeGrams give depreciation per gram.
	PrinterPrice         float64
	PrinterLifetimeGrams float64
	// ToleranceThresholdGrams caps the per-part overage that still earns
	// the automatic one-gram tolerance discount.
	ToleranceThresholdGrams float64
}

// DefaultRates returns the shop's reference figures.
func DefaultRates() Rates {
	return Rates{
		BaseRatePerGram:         models.DefaultRatePerGram,
		CostPerGram:             models.DefaultCostPerGram,
		ElectricityPerHour:      models.DefaultElectricityRate,
		PrinterPrice:            models.DefaultPrinterPrice,
		PrinterLifetimeGrams:    models.DefaultPrinterLifetimeKg * 1000,
		ToleranceThresholdGrams: models.ToleranceThresholdGrams,
	}
}

// ItemInput is the per-item slice of the order the engine needs.
type ItemInput struct {
	EstimatedWeightGrams float64
	ActualWeightGrams    float64
	EstimatedTimeMinutes int
	ActualTimeMinutes    int
	Quantity             int
	RatePerGram          float64
}

// weight is the measured weight once set, else the estimate.
func (i ItemInput) weight() float64 {
	if i.ActualWeightGrams > 0 {
		return i.ActualWeightGrams
	}
	return i.EstimatedWeightGrams
}

func (i ItemInput) timeMinutes() int {
	if i.ActualTimeMinutes > 0 {
		return i.ActualTimeMinutes
	}
	return i.EstimatedTimeMinutes
}

// Inputs are the order-level inputs the engine prices from. Everything
// here is either an item or a user-set field; no derived values.
type Inputs struct {
	Items                []ItemInput
	IsRDProject          bool
	OrderDiscountPercent float64
	ShippingCost         float64
	PaymentMethod        models.PaymentMethod
	AmountReceived       float64
}

// ItemDerived is the per-item output, index-aligned with Inputs.Items.
type ItemDerived struct {
	ToleranceDiscountApplied bool
	ToleranceDiscountAmount  float64
	PrintCost                float64
}

// Derived holds every recomputed monetary field of an order.
type Derived struct {
	Items []ItemDerived

	Subtotal               float64
	ActualTotal            float64
	DiscountPercent        float64
	DiscountAmount         float64
	OrderDiscountPercent   float64
	OrderDiscountAmount    float64
	ToleranceDiscountTotal float64

	PaymentFee   float64
	Total        float64
	RoundingLoss float64

	MaterialCost     float64
	ElectricityCost  float64
	DepreciationCost float64
	Profit           float64
}

// Fee returns the payment method surcharge on the given amount. A zero
// or negative amount carries no fee regardless of method, so the clamp
// minimums never apply to an empty order.
func Fee(amount float64, method models.PaymentMethod) float64 {
	if amount <= 0 {
		return 0
	}
	switch method {
	case models.PaymentVodafoneCash:
		// 0.5% of amount, min 1 EGP, max 15 EGP
		return clamp(amount*0.005, 1.0, 15.0)
	case models.PaymentInstaPay:
		// 0.1% of amount, min 0.50 EGP, max 20 EGP
		return clamp(amount*0.001, 0.50, 20.0)
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Recompute derives all monetary fields from the inputs. The steps run
// in a fixed order: per-item tolerance discounts, subtotal at the base
// rate versus the actual total, the informational rate discount, the
// manual order discount, the R&D cost-only override, payment fee, cost
// accounting, final total, rounding loss, and profit.
func Recompute(in Inputs, r Rates) Derived {
	var d Derived
	d.Items = make([]ItemDerived, len(in.Items))

	// Tolerance pass: a part that came out 1 to ToleranceThresholdGrams
	// heavier than estimated forgives exactly one gram per unit. Larger
	// overages are not auto-discounted.
	for idx, item := range in.Items {
		if item.ActualWeightGrams > 0 {
			diff := item.ActualWeightGrams - item.EstimatedWeightGrams
			if diff >= 1 && diff <= r.ToleranceThresholdGrams {
				d.Items[idx].ToleranceDiscountApplied = true
				d.Items[idx].ToleranceDiscountAmount = item.RatePerGram * float64(item.Quantity)
			}
		}
		d.ToleranceDiscountTotal += d.Items[idx].ToleranceDiscountAmount
	}

	// Subtotal at the base rate versus actual total at item rates, net
	// of tolerance discounts.
	for idx, item := range in.Items {
		qty := float64(item.Quantity)
		d.Subtotal += item.weight() * qty * r.BaseRatePerGram
		cost := item.weight()*qty*item.RatePerGram - d.Items[idx].ToleranceDiscountAmount
		d.Items[idx].PrintCost = cost
		d.ActualTotal += cost
	}

	// Rate discount: how far the negotiated rates fell below the
	// baseline. Informational only, never a user input.
	if d.Subtotal > 0 {
		d.DiscountAmount = d.Subtotal - d.ActualTotal
		d.DiscountPercent = (d.DiscountAmount / d.Subtotal) * 100
	}

	// Manual order discount on top of the rate-discounted total.
	d.OrderDiscountPercent = in.OrderDiscountPercent
	if in.OrderDiscountPercent > 0 {
		d.OrderDiscountAmount = d.ActualTotal * (in.OrderDiscountPercent / 100)
	}
	finalSubtotal := d.ActualTotal - d.OrderDiscountAmount

	// Cost accounting, always computed.
	totalWeight := 0.0
	totalMinutes := 0
	for _, item := range in.Items {
		totalWeight += item.weight() * float64(item.Quantity)
		totalMinutes += item.timeMinutes() * item.Quantity
	}
	d.MaterialCost = totalWeight * r.CostPerGram
	d.ElectricityCost = (float64(totalMinutes) / 60) * r.ElectricityPerHour
	if r.PrinterLifetimeGrams > 0 {
		d.DepreciationCost = totalWeight * (r.PrinterPrice / r.PrinterLifetimeGrams)
	}
	productionCost := d.MaterialCost + d.ElectricityCost + d.DepreciationCost

	// R&D projects are billed at production cost. They are already at
	// cost, so manual discounts are forced to zero.
	if in.IsRDProject {
		finalSubtotal = productionCost
		d.OrderDiscountPercent = 0
		d.OrderDiscountAmount = 0
	}

	d.PaymentFee = Fee(finalSubtotal+in.ShippingCost, in.PaymentMethod)
	d.Total = finalSubtotal + in.ShippingCost + d.PaymentFee
	if d.Total < 0 {
		d.Total = 0
	}

	// Rounding loss is the cash shortfall when the customer paid less
	// than the total. Overpayment is not tracked as negative loss.
	if in.AmountReceived > 0 {
		d.RoundingLoss = d.Total - in.AmountReceived
		if d.RoundingLoss < 0 {
			d.RoundingLoss = 0
		}
	}

	// Profit excludes shipping and payment fee; both are pass-through.
	if in.IsRDProject {
		d.Profit = 0
	} else {
		d.Profit = finalSubtotal - productionCost
	}

	return d
}

// InputsFromOrder lifts an order into the engine's input shape.
func InputsFromOrder(o *models.Order) Inputs {
	in := Inputs{
		IsRDProject:          o.IsRDProject,
		OrderDiscountPercent: o.OrderDiscountPercent,
		ShippingCost:         o.ShippingCost,
		PaymentMethod:        o.PaymentMethod,
		AmountReceived:       o.AmountReceived,
		Items:                make([]ItemInput, len(o.Items)),
	}
	for idx := range o.Items {
		item := &o.Items[idx]
		in.Items[idx] = ItemInput{
			EstimatedWeightGrams: item.EstimatedWeightGrams,
			ActualWeightGrams:    item.ActualWeightGrams,
			EstimatedTimeMinutes: item.EstimatedTimeMinutes,
			ActualTimeMinutes:    item.ActualTimeMinutes,
			Quantity:             item.Quantity,
			RatePerGram:          item.RatePerGram,
		}
	}
	return in
}

// Apply merges a Derived result back into the order. The engine itself
// never mutates the order; this is the caller-side merge.
func Apply(o *models.Order, d Derived) {
	for idx := range o.Items {
		if idx >= len(d.Items) {
			break
		}
		o.Items[idx].ToleranceDiscountApplied = d.Items[idx].ToleranceDiscountApplied
		o.Items[idx].ToleranceDiscountAmount = d.Items[idx].ToleranceDiscountAmount
	}

	o.Subtotal = d.Subtotal
	o.ActualTotal = d.ActualTotal
	o.DiscountPercent = d.DiscountPercent
	o.DiscountAmount = d.DiscountAmount
	o.OrderDiscountPercent = d.OrderDiscountPercent
	o.OrderDiscountAmount = d.OrderDiscountAmount
	o.ToleranceDiscountTotal = d.ToleranceDiscountTotal
	o.PaymentFee = d.PaymentFee
	o.Total = d.Total
	o.RoundingLoss = d.RoundingLoss
	o.MaterialCost = d.MaterialCost
	o.ElectricityCost = d.ElectricityCost
	o.DepreciationCost = d.DepreciationCost
	o.Profit = d.Profit
}

// RecomputeOrder prices the order in place using the given rates.
func RecomputeOrder(o *models.Order, r Rates) {
	Apply(o, Recompute(InputsFromOrder(o), r))
	o.UpdatedDate = models.NowStr()
}
