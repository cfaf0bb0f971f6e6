package store

import (
	"sort"

	"github.com/abaad/hive/models"
)

// SaveSpool stores the spool and persists.
func (s *Store) SaveSpool(spool *models.FilamentSpool) error {
	s.data.Spools[spool.ID] = *spool
	return s.Save()
}

// GetSpool returns a working copy of the spool, or nil when the id is
// unknown. Mutations only take effect through SaveSpool.
func (s *Store) GetSpool(id string) *models.FilamentSpool {
	sp, ok := s.data.Spools[id]
	if !ok {
		return nil
	}
	return &sp
}

// AllSpools returns every spool, trashed ones included.
func (s *Store) AllSpools() []models.FilamentSpool {
	out := make([]models.FilamentSpool, 0, len(s.data.Spools))
	for _, sp := range s.data.Spools {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PurchaseDate > out[j].PurchaseDate })
	return out
}

// ActiveSpools returns spools that new items may claim.
func (s *Store) ActiveSpools() []models.FilamentSpool {
	var out []models.FilamentSpool
	for _, sp := range s.AllSpools() {
		if sp.Selectable() {
			out = append(out, sp)
		}
	}
	return out
}

// SpoolsByColor returns selectable spools of a color, fullest first.
func (s *Store) SpoolsByColor(color string) []models.FilamentSpool {
	var out []models.FilamentSpool
	for _, sp := range s.ActiveSpools() {
		if sp.Color == color {
			out = append(out, sp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AvailableWeightGrams() > out[j].AvailableWeightGrams()
	})
	return out
}

// TrashCandidates returns active spools that are nearly empty.
func (s *Store) TrashCandidates() []models.FilamentSpool {
	var out []models.FilamentSpool
	for _, sp := range s.ActiveSpools() {
		if sp.IsTrashCandidate() {
			out = append(out, sp)
		}
	}
	return out
}

// ReserveFilament marks grams as pending on a spool. It reports false
// when the spool is unknown or lacks available weight, leaving the spool
// unchanged so the caller can offer a different one.
func (s *Store) ReserveFilament(spoolID string, grams float64) bool {
	sp := s.GetSpool(spoolID)
	if sp == nil || !sp.Reserve(grams) {
		return false
	}
	return s.SaveSpool(sp) == nil
}

// ReleasePendingFilament returns reserved grams to the available pool.
func (s *Store) ReleasePendingFilament(spoolID string, grams float64) bool {
	sp := s.GetSpool(spoolID)
	if sp == nil || !sp.ReleasePending(grams) {
		return false
	}
	return s.SaveSpool(sp) == nil
}

// CommitFilament deducts grams from a spool, clearing any matching
// pending claim in the same step.
func (s *Store) CommitFilament(spoolID string, grams float64) bool {
	sp := s.GetSpool(spoolID)
	if sp == nil || !sp.Commit(grams) {
		return false
	}
	return s.SaveSpool(sp) == nil
}

// UseFilament deducts grams directly, without a prior reservation.
func (s *Store) UseFilament(spoolID string, grams float64) bool {
	return s.CommitFilament(spoolID, grams)
}

// ReturnFilament puts already-deducted grams back on a spool, e.g. when
// a committed item is removed from its order.
func (s *Store) ReturnFilament(spoolID string, grams float64) bool {
	sp := s.GetSpool(spoolID)
	if sp == nil {
		return false
	}
	sp.Return(grams)
	return s.SaveSpool(sp) == nil
}

// MoveSpoolToTrash freezes a spool and archives its final state. The
// remaining weight is recorded as waste; this is the only bookkeeping of
// waste outside explicit print failures.
func (s *Store) MoveSpoolToTrash(spoolID, reason string) error {
	sp := s.GetSpool(spoolID)
	if sp == nil {
		return ErrNotFound
	}

	h := models.NewFilamentHistory(sp, reason)
	s.data.FilamentHistory[h.ID] = *h

	sp.MoveToTrash()
	return s.SaveSpool(sp)
}

// DeleteSpool removes a spool entirely.
func (s *Store) DeleteSpool(spoolID string) error {
	if _, ok := s.data.Spools[spoolID]; !ok {
		return ErrNotFound
	}
	delete(s.data.Spools, spoolID)
	return s.Save()
}

// FilamentHistory returns the archive of trashed spools.
func (s *Store) FilamentHistory() []models.FilamentHistory {
	out := make([]models.FilamentHistory, 0, len(s.data.FilamentHistory))
	for _, h := range s.data.FilamentHistory {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ArchivedDate > out[j].ArchivedDate })
	return out
}

// TotalWaste sums the waste recorded across all trashed spools.
func (s *Store) TotalWaste() float64 {
	total := 0.0
	for _, h := range s.data.FilamentHistory {
		total += h.WasteWeight
	}
	return total
}
