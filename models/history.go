package models

// FilamentHistory is the archive record written when a spool is trashed.
// Whatever weight remained on the spool becomes waste; this is the only
// place waste is recorded outside of explicit print failures.
type FilamentHistory struct {
	ID              string  `json:"id"`
	SpoolID         string  `json:"spool_id"`
	SpoolName       string  `json:"spool_name"`
	Color           string  `json:"color"`
	InitialWeight   float64 `json:"initial_weight"`
	UsedWeight      float64 `json:"used_weight"`
	RemainingWeight float64 `json:"remaining_weight"`
	WasteWeight     float64 `json:"waste_weight"`
	ArchivedDate    string  `json:"archived_date"`
	Reason          string  `json:"reason"`
}

// NewFilamentHistory captures the spool's final state for the archive.
func NewFilamentHistory(s *FilamentSpool, reason string) *FilamentHistory {
	return &FilamentHistory{
		ID:              GenerateID(),
		SpoolID:         s.ID,
		SpoolName:       s.DisplayName(),
		Color:           s.Color,
		InitialWeight:   s.InitialWeightGrams,
		UsedWeight:      s.UsedWeightGrams(),
		RemainingWeight: s.CurrentWeightGrams,
		WasteWeight:     s.CurrentWeightGrams,
		ArchivedDate:    NowStr(),
		Reason:          reason,
	}
}
