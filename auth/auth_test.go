package auth

import (
	"path/filepath"
	"testing"
)

func TestCan(t *testing.T) {
	tests := []struct {
		name string
		role Role
		perm Permission
		want bool
	}{
		{"admin can manage users", RoleAdmin, PermManageUsers, true},
		{"admin can delete orders", RoleAdmin, PermDeleteOrder, true},
		{"user can create orders", RoleUser, PermCreateOrder, true},
		{"user can view inventory", RoleUser, PermViewInventory, true},
		{"user cannot delete orders", RoleUser, PermDeleteOrder, false},
		{"user cannot see financials", RoleUser, PermViewFinancial, false},
		{"user cannot back up", RoleUser, PermSystemBackup, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Can(tt.role, tt.perm); got != tt.want {
				t.Errorf("Can(%s, %s) = %v, want %v", tt.role, tt.perm, got, tt.want)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	if ParseRole("Admin") != RoleAdmin {
		t.Error("Admin should parse as admin")
	}
	for _, s := range []string{"User", "", "admin", "operator"} {
		if ParseRole(s) != RoleUser {
			t.Errorf("ParseRole(%q) should fall back to the restricted role", s)
		}
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	u := NewUser("omar")
	u.SetPassword("secret")

	if !u.CheckPassword("secret") {
		t.Error("correct password rejected")
	}
	if u.CheckPassword("wrong") {
		t.Error("wrong password accepted")
	}
	if u.PasswordHash == "secret" || u.PasswordSalt == "" {
		t.Error("password must be stored salted and hashed")
	}
}

func TestManagerSeedsDefaultAdmin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	m, err := OpenManager(path)
	if err != nil {
		t.Fatal(err)
	}

	u, err := m.Login("admin", "admin123")
	if err != nil {
		t.Fatalf("default admin login: %v", err)
	}
	if ParseRole(u.Role) != RoleAdmin {
		t.Errorf("seeded account role = %q, want admin", u.Role)
	}
	if u.LoginCount != 1 {
		t.Errorf("login count = %d, want 1", u.LoginCount)
	}

	// The seeded account survives a reload.
	again, err := OpenManager(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := again.Login("ADMIN", "admin123"); err != nil {
		t.Errorf("case-insensitive login after reload: %v", err)
	}
}

func TestManagerUserLifecycle(t *testing.T) {
	m, err := OpenManager(filepath.Join(t.TempDir(), "users.json"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.CreateUser("omar", "pw", RoleUser); err != ErrNotAdmin {
		t.Errorf("create before login = %v, want ErrNotAdmin", err)
	}

	admin, err := m.Login("admin", "admin123")
	if err != nil {
		t.Fatal(err)
	}

	u, err := m.CreateUser("omar", "pw", RoleUser)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := m.CreateUser("Omar", "other", RoleUser); err != ErrUsernameTaken {
		t.Errorf("duplicate username = %v, want ErrUsernameTaken", err)
	}

	if err := m.DeleteUser(admin.ID); err != ErrSelfDelete {
		t.Errorf("deleting self = %v, want ErrSelfDelete", err)
	}
	if err := m.DeleteUser(u.ID); err != nil {
		t.Errorf("DeleteUser: %v", err)
	}

	// admin_default is now the only admin left.
	if err := m.DeleteUser("nope"); err != ErrUserNotFound {
		t.Errorf("unknown id = %v, want ErrUserNotFound", err)
	}
}

func TestManagerLastAdminProtected(t *testing.T) {
	m, err := OpenManager(filepath.Join(t.TempDir(), "users.json"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Login("admin", "admin123"); err != nil {
		t.Fatal(err)
	}
	second, err := m.CreateUser("boss", "pw", RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	// Two admins: deleting the other one is fine.
	if err := m.DeleteUser(second.ID); err != nil {
		t.Fatalf("deleting second admin: %v", err)
	}

	// Back to one admin; log in as a fresh one to try deleting the last.
	if _, err := m.CreateUser("chief", "pw", RoleAdmin); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Login("chief", "pw"); err != nil {
		t.Fatal(err)
	}
	if err := m.DeleteUser("admin_default"); err != nil {
		t.Fatalf("deleting admin_default with another admin present: %v", err)
	}
	if err := m.DeleteUser(m.CurrentUser().ID); err != ErrSelfDelete {
		t.Errorf("deleting last admin (self) = %v, want ErrSelfDelete", err)
	}
}

func TestChangePassword(t *testing.T) {
	m, err := OpenManager(filepath.Join(t.TempDir(), "users.json"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Login("admin", "admin123"); err != nil {
		t.Fatal(err)
	}

	if err := m.ChangePassword("wrong", "new"); err != ErrWrongOldSecret {
		t.Errorf("wrong old password = %v, want ErrWrongOldSecret", err)
	}
	if err := m.ChangePassword("admin123", "new"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	m.Logout()
	if _, err := m.Login("admin", "new"); err != nil {
		t.Errorf("login with rotated password: %v", err)
	}
}
