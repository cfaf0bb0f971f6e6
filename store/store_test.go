package store

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/abaad/hive/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "hive.db.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func addSpool(t *testing.T, s *Store, initial, current float64) *models.FilamentSpool {
	t.Helper()
	sp := models.NewSpool()
	sp.InitialWeightGrams = initial
	sp.CurrentWeightGrams = current
	if err := s.SaveSpool(sp); err != nil {
		t.Fatalf("SaveSpool: %v", err)
	}
	return sp
}

func draftOrderWithItem(t *testing.T, s *Store, spoolID string, grams float64, qty int) *models.Order {
	t.Helper()
	o := models.NewOrder()
	item := models.NewPrintItem()
	item.EstimatedWeightGrams = grams
	item.Quantity = qty
	item.SpoolID = spoolID
	if spoolID != "" {
		if !s.ReserveFilament(spoolID, item.TotalWeight()) {
			t.Fatalf("reserve %vg on %s failed", item.TotalWeight(), spoolID)
		}
		item.FilamentPending = true
	}
	o.AddItem(*item)
	if err := s.SaveOrder(o, false); err != nil {
		t.Fatalf("SaveOrder: %v", err)
	}
	return o
}

func TestOpenSeedsDefaults(t *testing.T) {
	s := openTestStore(t)

	if s.DefaultPrinter() == nil {
		t.Error("fresh store should seed a default printer")
	}
	if len(s.Colors()) == 0 {
		t.Error("fresh store should seed colors")
	}
	if s.Settings().NextOrderNumber != 1 {
		t.Errorf("next order number = %d, want 1", s.Settings().NextOrderNumber)
	}
}

func TestSaveIsAtomicRename(t *testing.T) {
	s := openTestStore(t)
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := os.Stat(s.Path()); err != nil {
		t.Fatalf("data file missing after save: %v", err)
	}
	if _, err := os.Stat(s.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be renamed away after save")
	}

	// The written document must keep the established schema keys.
	b, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"orders", "customers", "spools", "printers",
		"filament_history", "failures", "expenses", "deleted_orders", "colors", "settings"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("data file missing %q section", key)
		}
	}
}

func TestReopenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hive.db.json")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	sp := addSpool(t, s, 1000, 750)
	o := draftOrderWithItem(t, s, sp.ID, 100, 2)

	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	got := reopened.GetSpool(sp.ID)
	if got == nil || got.CurrentWeightGrams != 750 || got.PendingWeightGrams != 200 {
		t.Errorf("spool after reopen = %+v", got)
	}
	gotOrder := reopened.GetOrder(o.ID)
	if gotOrder == nil || gotOrder.OrderNumber != o.OrderNumber || len(gotOrder.Items) != 1 {
		t.Errorf("order after reopen = %+v", gotOrder)
	}
}

func TestOrderNumbersAreSequentialAndSticky(t *testing.T) {
	s := openTestStore(t)

	first := draftOrderWithItem(t, s, "", 100, 1)
	second := draftOrderWithItem(t, s, "", 50, 1)

	if first.OrderNumber != 1 || second.OrderNumber != 2 {
		t.Errorf("order numbers = %d, %d; want 1, 2", first.OrderNumber, second.OrderNumber)
	}

	// Re-saving must not hand out a new number.
	if err := s.SaveOrder(first, false); err != nil {
		t.Fatal(err)
	}
	if first.OrderNumber != 1 {
		t.Errorf("order number changed on re-save: %d", first.OrderNumber)
	}
}

func TestConfirmCommitsPendingFilament(t *testing.T) {
	s := openTestStore(t)
	sp := addSpool(t, s, 1000, 1000)
	o := draftOrderWithItem(t, s, sp.ID, 100, 2)

	o.Status = models.StatusConfirmed
	if err := s.SaveOrder(o, true); err != nil {
		t.Fatal(err)
	}

	got := s.GetSpool(sp.ID)
	if got.CurrentWeightGrams != 800 {
		t.Errorf("current = %v, want 800 after commit", got.CurrentWeightGrams)
	}
	if got.PendingWeightGrams != 0 {
		t.Errorf("pending = %v, want 0 after commit", got.PendingWeightGrams)
	}
	item := o.Items[0]
	if item.FilamentPending || !item.FilamentDeducted {
		t.Errorf("item flags pending=%v deducted=%v, want false/true", item.FilamentPending, item.FilamentDeducted)
	}
	if o.ConfirmedDate == "" {
		t.Error("confirmed date should be set")
	}
}

func TestCancelReleasesPendingFilament(t *testing.T) {
	s := openTestStore(t)
	sp := addSpool(t, s, 1000, 1000)
	o := draftOrderWithItem(t, s, sp.ID, 150, 1)

	o.Status = models.StatusCancelled
	if err := s.SaveOrder(o, false); err != nil {
		t.Fatal(err)
	}

	got := s.GetSpool(sp.ID)
	if got.PendingWeightGrams != 0 {
		t.Errorf("pending = %v, want 0 after cancellation", got.PendingWeightGrams)
	}
	if got.CurrentWeightGrams != 1000 {
		t.Errorf("current = %v, want untouched 1000", got.CurrentWeightGrams)
	}
	if o.Items[0].FilamentPending {
		t.Error("item should no longer be pending")
	}
}

func TestReserveFailsWithoutAvailableWeight(t *testing.T) {
	s := openTestStore(t)
	sp := addSpool(t, s, 1000, 50)
	if !s.ReserveFilament(sp.ID, 45) {
		t.Fatal("first reserve should succeed")
	}

	if s.ReserveFilament(sp.ID, 10) {
		t.Error("reserve beyond available weight should fail")
	}
	got := s.GetSpool(sp.ID)
	if got.PendingWeightGrams != 45 {
		t.Errorf("pending = %v, want unchanged 45", got.PendingWeightGrams)
	}
}

func TestSoftDeleteReturnsFilament(t *testing.T) {
	s := openTestStore(t)
	sp := addSpool(t, s, 1000, 1000)
	o := draftOrderWithItem(t, s, sp.ID, 100, 2)

	o.Status = models.StatusConfirmed
	if err := s.SaveOrder(o, true); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteOrder(o.ID, true, true); err != nil {
		t.Fatal(err)
	}

	got := s.GetSpool(sp.ID)
	if got.CurrentWeightGrams != 1000 {
		t.Errorf("current = %v, want 1000 after filament return", got.CurrentWeightGrams)
	}

	if len(s.AllOrders()) != 0 {
		t.Error("soft-deleted order must not appear in AllOrders")
	}
	if len(s.DeletedOrders()) != 1 {
		t.Error("soft-deleted order should appear in DeletedOrders")
	}

	if err := s.RestoreOrder(o.ID); err != nil {
		t.Fatal(err)
	}
	if len(s.AllOrders()) != 1 {
		t.Error("restored order should reappear in AllOrders")
	}
}

func TestMoveSpoolToTrashRecordsWaste(t *testing.T) {
	s := openTestStore(t)
	sp := addSpool(t, s, 1000, 15)

	if err := s.MoveSpoolToTrash(sp.ID, "trash"); err != nil {
		t.Fatal(err)
	}

	history := s.FilamentHistory()
	if len(history) != 1 {
		t.Fatalf("history entries = %d, want 1", len(history))
	}
	if history[0].WasteWeight != 15 {
		t.Errorf("waste weight = %v, want 15", history[0].WasteWeight)
	}
	if math.Abs(s.TotalWaste()-15) > 1e-9 {
		t.Errorf("TotalWaste() = %v, want 15", s.TotalWaste())
	}

	got := s.GetSpool(sp.ID)
	if got.Status != models.SpoolTrash || got.IsActive {
		t.Errorf("spool not frozen: %+v", got)
	}
}

func TestChangeItemSpool(t *testing.T) {
	t.Run("pending claim moves", func(t *testing.T) {
		s := openTestStore(t)
		oldSpool := addSpool(t, s, 1000, 1000)
		newSpool := addSpool(t, s, 1000, 1000)
		o := draftOrderWithItem(t, s, oldSpool.ID, 100, 1)

		if !s.ChangeItemSpool(o, o.Items[0].ID, newSpool.ID) {
			t.Fatal("change should succeed")
		}

		if got := s.GetSpool(oldSpool.ID); got.PendingWeightGrams != 0 {
			t.Errorf("old pending = %v, want 0", got.PendingWeightGrams)
		}
		if got := s.GetSpool(newSpool.ID); got.PendingWeightGrams != 100 {
			t.Errorf("new pending = %v, want 100", got.PendingWeightGrams)
		}
		if o.Items[0].SpoolID != newSpool.ID {
			t.Error("item should point at the new spool")
		}
	})

	t.Run("committed claim becomes pending on the new spool", func(t *testing.T) {
		s := openTestStore(t)
		oldSpool := addSpool(t, s, 1000, 1000)
		newSpool := addSpool(t, s, 1000, 1000)
		o := draftOrderWithItem(t, s, oldSpool.ID, 100, 1)
		o.Status = models.StatusConfirmed
		if err := s.SaveOrder(o, true); err != nil {
			t.Fatal(err)
		}

		if !s.ChangeItemSpool(o, o.Items[0].ID, newSpool.ID) {
			t.Fatal("change should succeed")
		}

		if got := s.GetSpool(oldSpool.ID); got.CurrentWeightGrams != 1000 {
			t.Errorf("old current = %v, want restored 1000", got.CurrentWeightGrams)
		}
		got := s.GetSpool(newSpool.ID)
		if got.CurrentWeightGrams != 1000 {
			t.Errorf("new current = %v, want untouched 1000", got.CurrentWeightGrams)
		}
		if got.PendingWeightGrams != 100 {
			t.Errorf("new pending = %v, want 100", got.PendingWeightGrams)
		}
		if o.Items[0].FilamentDeducted || !o.Items[0].FilamentPending {
			t.Error("moved claim should be pending, not deducted")
		}

		// Next confirmation commits the moved claim on the new spool.
		if err := s.SaveOrder(o, true); err != nil {
			t.Fatal(err)
		}
		got = s.GetSpool(newSpool.ID)
		if got.CurrentWeightGrams != 900 || got.PendingWeightGrams != 0 {
			t.Errorf("after re-confirm current = %v pending = %v, want 900 and 0",
				got.CurrentWeightGrams, got.PendingWeightGrams)
		}
	})

	t.Run("other orders' reservations on the target survive", func(t *testing.T) {
		s := openTestStore(t)
		oldSpool := addSpool(t, s, 1000, 1000)
		target := addSpool(t, s, 1000, 500)
		draftOrderWithItem(t, s, target.ID, 100, 1)

		o := draftOrderWithItem(t, s, oldSpool.ID, 50, 1)
		o.Status = models.StatusConfirmed
		if err := s.SaveOrder(o, true); err != nil {
			t.Fatal(err)
		}

		if !s.ChangeItemSpool(o, o.Items[0].ID, target.ID) {
			t.Fatal("change should succeed")
		}

		got := s.GetSpool(target.ID)
		if got.PendingWeightGrams != 150 {
			t.Errorf("target pending = %v, want 150 (100 held + 50 moved)", got.PendingWeightGrams)
		}
		if got.CurrentWeightGrams != 500 {
			t.Errorf("target current = %v, want untouched 500", got.CurrentWeightGrams)
		}
	})

	t.Run("committed move respects available weight", func(t *testing.T) {
		s := openTestStore(t)
		oldSpool := addSpool(t, s, 1000, 1000)
		target := addSpool(t, s, 1000, 120)
		draftOrderWithItem(t, s, target.ID, 100, 1)

		o := draftOrderWithItem(t, s, oldSpool.ID, 50, 1)
		o.Status = models.StatusConfirmed
		if err := s.SaveOrder(o, true); err != nil {
			t.Fatal(err)
		}

		// 120 current minus 100 held leaves 20 available, not enough.
		if s.ChangeItemSpool(o, o.Items[0].ID, target.ID) {
			t.Fatal("change onto a nearly-promised spool should fail")
		}

		if got := s.GetSpool(oldSpool.ID); got.CurrentWeightGrams != 950 {
			t.Errorf("old current = %v, want unchanged 950", got.CurrentWeightGrams)
		}
		got := s.GetSpool(target.ID)
		if got.PendingWeightGrams != 100 || got.CurrentWeightGrams != 120 {
			t.Errorf("target pending = %v current = %v, want unchanged 100 and 120",
				got.PendingWeightGrams, got.CurrentWeightGrams)
		}
		if !o.Items[0].FilamentDeducted {
			t.Error("failed move should leave the claim committed")
		}
	})

	t.Run("insufficient new spool rolls back", func(t *testing.T) {
		s := openTestStore(t)
		oldSpool := addSpool(t, s, 1000, 1000)
		smallSpool := addSpool(t, s, 1000, 40)
		o := draftOrderWithItem(t, s, oldSpool.ID, 100, 1)

		if s.ChangeItemSpool(o, o.Items[0].ID, smallSpool.ID) {
			t.Fatal("change onto a 40g spool should fail")
		}

		if got := s.GetSpool(oldSpool.ID); got.PendingWeightGrams != 100 {
			t.Errorf("old pending = %v, want restored 100", got.PendingWeightGrams)
		}
		if got := s.GetSpool(smallSpool.ID); got.PendingWeightGrams != 0 {
			t.Errorf("small spool pending = %v, want 0", got.PendingWeightGrams)
		}
		if o.Items[0].SpoolID != oldSpool.ID {
			t.Error("item should still point at the old spool")
		}
	})
}

func TestSaveFailureDeductsSpool(t *testing.T) {
	s := openTestStore(t)
	sp := addSpool(t, s, 1000, 500)

	f := models.NewPrintFailure()
	f.SpoolID = sp.ID
	f.FilamentWastedGrams = 80
	f.TimeWastedMinutes = 120
	if err := s.SaveFailure(f); err != nil {
		t.Fatal(err)
	}

	if math.Abs(f.FilamentCost-80*0.84) > 1e-9 {
		t.Errorf("filament cost = %v, want %v", f.FilamentCost, 80*0.84)
	}
	if math.Abs(f.ElectricityCost-2*0.31) > 1e-9 {
		t.Errorf("electricity cost = %v, want %v", f.ElectricityCost, 2*0.31)
	}
	if got := s.GetSpool(sp.ID); got.CurrentWeightGrams != 420 {
		t.Errorf("current = %v, want 420 after waste deduction", got.CurrentWeightGrams)
	}
}

func TestFindOrCreateCustomer(t *testing.T) {
	s := openTestStore(t)

	first, err := s.FindOrCreateCustomer("Omar", "01012345678")
	if err != nil {
		t.Fatal(err)
	}
	byPhone, err := s.FindOrCreateCustomer("someone else", "01012345678")
	if err != nil {
		t.Fatal(err)
	}
	if byPhone.ID != first.ID {
		t.Error("lookup by phone should find the existing customer")
	}

	byName, err := s.FindOrCreateCustomer("  omar ", "")
	if err != nil {
		t.Fatal(err)
	}
	if byName.ID != first.ID {
		t.Error("case-insensitive name lookup should find the existing customer")
	}

	fresh, err := s.FindOrCreateCustomer("Nour", "01100000000")
	if err != nil {
		t.Fatal(err)
	}
	if fresh.ID == first.ID {
		t.Error("a new customer should get its own record")
	}

	if got := s.Statistics().TotalCustomers; got != 2 {
		t.Errorf("TotalCustomers = %d, want 2", got)
	}
}

func TestCustomerStatsRefreshOnSave(t *testing.T) {
	s := openTestStore(t)
	c, err := s.FindOrCreateCustomer("Omar", "0101")
	if err != nil {
		t.Fatal(err)
	}

	o := models.NewOrder()
	o.CustomerID = c.ID
	o.CustomerName = c.Name
	item := models.NewPrintItem()
	item.EstimatedWeightGrams = 100
	o.AddItem(*item)
	if err := s.SaveOrder(o, false); err != nil {
		t.Fatal(err)
	}

	got := s.GetCustomer(c.ID)
	if got.TotalOrders != 1 {
		t.Errorf("total orders = %d, want 1", got.TotalOrders)
	}
	if math.Abs(got.TotalSpent-400) > 1e-9 {
		t.Errorf("total spent = %v, want 400", got.TotalSpent)
	}
}

func TestStatisticsExcludesSoftDeleted(t *testing.T) {
	s := openTestStore(t)
	kept := draftOrderWithItem(t, s, "", 100, 1)
	dropped := draftOrderWithItem(t, s, "", 100, 1)

	if err := s.DeleteOrder(dropped.ID, true, false); err != nil {
		t.Fatal(err)
	}

	st := s.Statistics()
	if st.TotalOrders != 1 {
		t.Errorf("total orders = %d, want 1", st.TotalOrders)
	}
	if math.Abs(st.TotalRevenue-kept.Total) > 1e-9 {
		t.Errorf("revenue = %v, want %v", st.TotalRevenue, kept.Total)
	}
}

func TestBackupCopiesDataFile(t *testing.T) {
	s := openTestStore(t)
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	path, err := s.Backup()
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("backup file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("backup file is empty")
	}
}
