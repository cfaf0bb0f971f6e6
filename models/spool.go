package models

import "fmt"

const (
	// SpoolPriceFixed is the purchase price of a standard spool in EGP,
	// charged regardless of its weight.
	SpoolPriceFixed = 840.0

	// DefaultCostPerGram is the reference material cost (840 EGP / 1000 g).
	DefaultCostPerGram = 0.84

	// TrashThresholdGrams is the weight under which a spool is considered
	// nearly empty: it drops to "low" status and becomes a trash candidate.
	TrashThresholdGrams = 20.0
)

// FilamentSpool is an inventory unit. Weight moves through a two-phase
// protocol: Reserve marks grams as pending without deducting, Commit
// deducts them, ReleasePending returns them. The invariant
// 0 <= pending <= current <= initial holds at all times; operations that
// would break it fail and leave the spool untouched.
type FilamentSpool struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	FilamentType       string        `json:"filament_type"`
	Brand              string        `json:"brand"`
	Color              string        `json:"color"`
	Category           SpoolCategory `json:"category"`
	Status             SpoolStatus   `json:"status"`
	InitialWeightGrams float64       `json:"initial_weight_grams"`
	CurrentWeightGrams float64       `json:"current_weight_grams"`
	PendingWeightGrams float64       `json:"pending_weight_grams"`
	PurchasePriceEGP   float64       `json:"purchase_price_egp"`
	PurchaseDate       string        `json:"purchase_date"`
	ArchivedDate       string        `json:"archived_date"`
	Notes              string        `json:"notes"`
	IsActive           bool          `json:"is_active"`
}

// NewSpool returns an active standard spool with the usual defaults.
func NewSpool() *FilamentSpool {
	return &FilamentSpool{
		ID:                 GenerateID(),
		FilamentType:       "PLA+",
		Brand:              "eSUN",
		Color:              "Black",
		Category:           CategoryStandard,
		Status:             SpoolActive,
		InitialWeightGrams: 1000.0,
		CurrentWeightGrams: 1000.0,
		PurchasePriceEGP:   SpoolPriceFixed,
		PurchaseDate:       NowStr(),
		IsActive:           true,
	}
}

// ApplyDefaults fills fields that older data files may not carry.
func (s *FilamentSpool) ApplyDefaults() {
	if s.ID == "" {
		s.ID = GenerateID()
	}
	if s.FilamentType == "" {
		s.FilamentType = "PLA+"
	}
	if s.Brand == "" {
		s.Brand = "eSUN"
	}
	if s.Color == "" {
		s.Color = "Black"
	}
	if s.Category == "" {
		s.Category = CategoryStandard
	}
	if s.Status == "" {
		s.Status = SpoolActive
	}
	if s.PurchaseDate == "" {
		s.PurchaseDate = NowStr()
	}
}

// UsedWeightGrams is how much filament has been committed off the spool.
func (s *FilamentSpool) UsedWeightGrams() float64 {
	return s.InitialWeightGrams - s.CurrentWeightGrams
}

// AvailableWeightGrams is what is left to reserve after pending claims.
func (s *FilamentSpool) AvailableWeightGrams() float64 {
	return s.CurrentWeightGrams - s.PendingWeightGrams
}

// RemainingPercent is the committed remainder relative to the initial weight.
func (s *FilamentSpool) RemainingPercent() float64 {
	if s.InitialWeightGrams <= 0 {
		return 0
	}
	return (s.CurrentWeightGrams / s.InitialWeightGrams) * 100
}

// CostPerGram is the material cost of this spool. Remaining (leftover)
// spools are already paid for, so their cost is zero. Standard spools cost
// the fixed spool price spread over the initial weight.
func (s *FilamentSpool) CostPerGram() float64 {
	if s.Category == CategoryRemaining {
		return 0
	}
	if s.InitialWeightGrams <= 0 {
		return DefaultCostPerGram
	}
	return SpoolPriceFixed / s.InitialWeightGrams
}

// DisplayName is the spool's name, or brand/type/color when unnamed.
func (s *FilamentSpool) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("%s %s %s", s.Brand, s.FilamentType, s.Color)
}

// IsTrashCandidate reports whether the spool is nearly empty and not yet
// trashed, so the UI can offer moving it to trash.
func (s *FilamentSpool) IsTrashCandidate() bool {
	return s.CurrentWeightGrams < TrashThresholdGrams && s.Status != SpoolTrash
}

// Selectable reports whether new order items may claim this spool.
func (s *FilamentSpool) Selectable() bool {
	return s.IsActive && s.CurrentWeightGrams > 0 && s.Status != SpoolTrash
}

// Reserve claims grams as pending without deducting them. It fails when
// the request exceeds the available (unreserved) weight, leaving the
// spool unchanged so the caller can pick a different spool.
func (s *FilamentSpool) Reserve(grams float64) bool {
	if grams <= 0 {
		return true
	}
	if grams > s.AvailableWeightGrams() {
		return false
	}
	s.PendingWeightGrams += grams
	return true
}

// ReleasePending returns reserved grams to the available pool. Releasing
// more than is pending clamps at zero, so a double release is harmless.
func (s *FilamentSpool) ReleasePending(grams float64) bool {
	if grams <= 0 {
		return true
	}
	s.PendingWeightGrams -= grams
	if s.PendingWeightGrams < 0 {
		s.PendingWeightGrams = 0
	}
	return true
}

// Commit deducts grams from the spool and clears the matching pending
// claim. Both fields move together or not at all. It fails when the
// request exceeds the committed remaining weight.
func (s *FilamentSpool) Commit(grams float64) bool {
	if grams <= 0 {
		return true
	}
	if grams > s.CurrentWeightGrams {
		return false
	}
	s.CurrentWeightGrams -= grams
	s.PendingWeightGrams -= grams
	if s.PendingWeightGrams < 0 {
		s.PendingWeightGrams = 0
	}

	if s.CurrentWeightGrams < TrashThresholdGrams {
		s.Status = SpoolLow
	}
	if s.CurrentWeightGrams < 1 {
		s.IsActive = false
	}
	return true
}

// Return puts committed grams back on the spool, capped at the initial
// weight. Used when a deducted item is removed or moved to another spool.
func (s *FilamentSpool) Return(grams float64) {
	if grams <= 0 {
		return
	}
	s.CurrentWeightGrams += grams
	if s.CurrentWeightGrams > s.InitialWeightGrams {
		s.CurrentWeightGrams = s.InitialWeightGrams
	}
	if s.CurrentWeightGrams >= TrashThresholdGrams && s.Status == SpoolLow {
		s.Status = SpoolActive
	}
	if s.CurrentWeightGrams >= 1 && s.Status != SpoolTrash && s.Status != SpoolArchived {
		s.IsActive = true
	}
}

// MoveToTrash freezes the spool. Whatever weight remains is waste; the
// store records it in the filament history.
func (s *FilamentSpool) MoveToTrash() {
	s.Status = SpoolTrash
	s.IsActive = false
	s.ArchivedDate = NowStr()
}

func (s *FilamentSpool) String() string {
	return fmt.Sprintf("%s (%s) - %.1fg of %.1fg remaining, %.1fg pending",
		s.DisplayName(), s.Status, s.CurrentWeightGrams, s.InitialWeightGrams, s.PendingWeightGrams)
}
