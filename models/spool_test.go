package models

import (
	"math"
	"testing"
)

func checkInvariant(t *testing.T, s *FilamentSpool) {
	t.Helper()
	if s.PendingWeightGrams < 0 || s.PendingWeightGrams > s.CurrentWeightGrams ||
		s.CurrentWeightGrams > s.InitialWeightGrams {
		t.Fatalf("spool invariant violated: pending=%v current=%v initial=%v",
			s.PendingWeightGrams, s.CurrentWeightGrams, s.InitialWeightGrams)
	}
}

func testSpool(initial, current, pending float64) *FilamentSpool {
	s := NewSpool()
	s.InitialWeightGrams = initial
	s.CurrentWeightGrams = current
	s.PendingWeightGrams = pending
	return s
}

func TestReserve(t *testing.T) {
	tests := []struct {
		name        string
		current     float64
		pending     float64
		grams       float64
		ok          bool
		wantPending float64
	}{
		{"plenty available", 1000, 0, 200, true, 200},
		{"exactly available", 1000, 800, 200, true, 1000},
		{"exceeds available", 50, 45, 10, false, 45},
		{"zero grams is a no-op", 1000, 100, 0, true, 100},
		{"negative grams is a no-op", 1000, 100, -5, true, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSpool(1000, tt.current, tt.pending)
			if got := s.Reserve(tt.grams); got != tt.ok {
				t.Errorf("Reserve(%v) = %v, want %v", tt.grams, got, tt.ok)
			}
			if math.Abs(s.PendingWeightGrams-tt.wantPending) > 1e-9 {
				t.Errorf("pending = %v, want %v", s.PendingWeightGrams, tt.wantPending)
			}
			checkInvariant(t, s)
		})
	}
}

func TestReserveFailureLeavesSpoolUntouched(t *testing.T) {
	s := testSpool(1000, 50, 45)

	if s.Reserve(10) {
		t.Fatal("reserve should fail with only 5g available")
	}
	if s.PendingWeightGrams != 45 {
		t.Errorf("pending = %v, want unchanged 45", s.PendingWeightGrams)
	}
	if s.CurrentWeightGrams != 50 {
		t.Errorf("current = %v, want unchanged 50", s.CurrentWeightGrams)
	}
}

func TestReserveReleaseRoundTrip(t *testing.T) {
	s := testSpool(1000, 800, 100)

	if !s.Reserve(250) {
		t.Fatal("reserve should succeed")
	}
	s.ReleasePending(250)

	if s.PendingWeightGrams != 100 {
		t.Errorf("pending = %v, want restored 100", s.PendingWeightGrams)
	}
	checkInvariant(t, s)
}

func TestReleasePendingClampsAtZero(t *testing.T) {
	s := testSpool(1000, 800, 30)

	s.ReleasePending(30)
	s.ReleasePending(30) // double release must not go negative

	if s.PendingWeightGrams != 0 {
		t.Errorf("pending = %v, want 0", s.PendingWeightGrams)
	}
	checkInvariant(t, s)
}

func TestReserveCommitRoundTrip(t *testing.T) {
	s := testSpool(1000, 800, 100)

	if !s.Reserve(200) {
		t.Fatal("reserve should succeed")
	}
	if !s.Commit(200) {
		t.Fatal("commit should succeed")
	}

	if s.CurrentWeightGrams != 600 {
		t.Errorf("current = %v, want 600", s.CurrentWeightGrams)
	}
	if s.PendingWeightGrams != 100 {
		t.Errorf("pending = %v, want restored 100", s.PendingWeightGrams)
	}
	checkInvariant(t, s)
}

func TestCommitFailsBeyondCurrent(t *testing.T) {
	s := testSpool(1000, 100, 0)

	if s.Commit(150) {
		t.Fatal("commit beyond current weight should fail")
	}
	if s.CurrentWeightGrams != 100 || s.PendingWeightGrams != 0 {
		t.Errorf("spool mutated on failed commit: %+v", s)
	}
}

func TestCommitStatusTransitions(t *testing.T) {
	t.Run("drops to low under threshold", func(t *testing.T) {
		s := testSpool(1000, 100, 0)
		if !s.Commit(85) {
			t.Fatal("commit should succeed")
		}
		if s.Status != SpoolLow {
			t.Errorf("status = %q, want %q", s.Status, SpoolLow)
		}
		if !s.IsActive {
			t.Error("15g remaining should still be active")
		}
	})

	t.Run("deactivates near zero", func(t *testing.T) {
		s := testSpool(1000, 100, 0)
		if !s.Commit(99.5) {
			t.Fatal("commit should succeed")
		}
		if s.IsActive {
			t.Error("spool under 1g should be inactive")
		}
		if s.Selectable() {
			t.Error("inactive spool must not be selectable")
		}
	})
}

func TestMoveToTrash(t *testing.T) {
	s := testSpool(1000, 15, 0)
	s.MoveToTrash()

	if s.Status != SpoolTrash {
		t.Errorf("status = %q, want %q", s.Status, SpoolTrash)
	}
	if s.IsActive {
		t.Error("trashed spool must be inactive")
	}
	if s.ArchivedDate == "" {
		t.Error("trashed spool should record an archive date")
	}

	h := NewFilamentHistory(s, "trash")
	if h.WasteWeight != 15 {
		t.Errorf("waste weight = %v, want 15", h.WasteWeight)
	}
	if h.RemainingWeight != 15 {
		t.Errorf("remaining weight = %v, want 15", h.RemainingWeight)
	}
	if h.UsedWeight != 985 {
		t.Errorf("used weight = %v, want 985", h.UsedWeight)
	}
}

func TestReturnCapsAtInitial(t *testing.T) {
	s := testSpool(1000, 950, 0)
	s.Return(100)

	if s.CurrentWeightGrams != 1000 {
		t.Errorf("current = %v, want capped at 1000", s.CurrentWeightGrams)
	}
	checkInvariant(t, s)
}

func TestCostPerGram(t *testing.T) {
	t.Run("standard spool spreads fixed price", func(t *testing.T) {
		s := testSpool(1000, 500, 0)
		if got := s.CostPerGram(); math.Abs(got-0.84) > 1e-9 {
			t.Errorf("CostPerGram() = %v, want 0.84", got)
		}
	})

	t.Run("remaining spool is free", func(t *testing.T) {
		s := testSpool(300, 300, 0)
		s.Category = CategoryRemaining
		if got := s.CostPerGram(); got != 0 {
			t.Errorf("CostPerGram() = %v, want 0", got)
		}
	})
}

func TestIsTrashCandidate(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		status  SpoolStatus
		want    bool
	}{
		{"under threshold", 15, SpoolLow, true},
		{"at threshold", 20, SpoolActive, false},
		{"already trashed", 5, SpoolTrash, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSpool(1000, tt.current, 0)
			s.Status = tt.status
			if got := s.IsTrashCandidate(); got != tt.want {
				t.Errorf("IsTrashCandidate() = %v, want %v", got, tt.want)
			}
		})
	}
}
