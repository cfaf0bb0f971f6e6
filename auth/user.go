package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abaad/hive/models"
)

// User is a stored account. Passwords are salted SHA-256 hex digests,
// matching the established users.json schema.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	PasswordSalt string `json:"password_salt"`
	Role         string `json:"role"`
	DisplayName  string `json:"display_name"`
	Email        string `json:"email"`
	IsActive     bool   `json:"is_active"`
	CreatedDate  string `json:"created_date"`
	LastLogin    string `json:"last_login"`
	LoginCount   int    `json:"login_count"`
	Notes        string `json:"notes"`
}

// NewUser returns an active account with the restricted role.
func NewUser(username string) *User {
	return &User{
		ID:          models.GenerateID(),
		Username:    username,
		Role:        string(RoleUser),
		DisplayName: username,
		IsActive:    true,
		CreatedDate: models.NowStr(),
	}
}

func hashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

func newSalt() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("read random salt: %v", err))
	}
	return hex.EncodeToString(b)
}

// SetPassword replaces the stored hash and salt.
func (u *User) SetPassword(password string) {
	u.PasswordSalt = newSalt()
	u.PasswordHash = hashPassword(password, u.PasswordSalt)
}

// CheckPassword verifies a plain password in constant time.
func (u *User) CheckPassword(password string) bool {
	computed := hashPassword(password, u.PasswordSalt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(u.PasswordHash)) == 1
}

// RecordLogin stamps a successful login.
func (u *User) RecordLogin() {
	u.LastLogin = models.NowStr()
	u.LoginCount++
}

// Manager owns the users file. A default admin account is seeded on
// first use so a fresh install is never locked out.
type Manager struct {
	path    string
	users   map[string]User
	current *User
}

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserDisabled   = errors.New("account is disabled")
	ErrBadPassword    = errors.New("incorrect password")
	ErrUsernameTaken  = errors.New("username already exists")
	ErrNotAdmin       = errors.New("admin access required")
	ErrLastAdmin      = errors.New("cannot delete the last admin")
	ErrSelfDelete     = errors.New("cannot delete yourself")
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrWrongOldSecret = errors.New("current password is incorrect")
)

// OpenManager loads users from path, creating the file with a default
// admin (admin / admin123) when no admin account exists.
func OpenManager(path string) (*Manager, error) {
	m := &Manager{path: path, users: map[string]User{}}
	if err := m.load(); err != nil {
		return nil, err
	}
	if err := m.ensureDefaultAdmin(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) load() error {
	b, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read users file: %w", err)
	}
	var doc struct {
		Users []User `json:"users"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("parse users file: %w", err)
	}
	for _, u := range doc.Users {
		m.users[u.ID] = u
	}
	return nil
}

func (m *Manager) save() error {
	doc := struct {
		Users []User `json:"users"`
	}{Users: make([]User, 0, len(m.users))}
	for _, u := range m.users {
		doc.Users = append(doc.Users, u)
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create users dir: %w", err)
	}
	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write users file: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("replace users file: %w", err)
	}
	return nil
}

func (m *Manager) ensureDefaultAdmin() error {
	for _, u := range m.users {
		if ParseRole(u.Role) == RoleAdmin {
			return nil
		}
	}
	admin := NewUser("admin")
	admin.ID = "admin_default"
	admin.Role = string(RoleAdmin)
	admin.DisplayName = "Administrator"
	admin.Notes = "Default admin account"
	admin.SetPassword("admin123")
	m.users[admin.ID] = *admin
	return m.save()
}

func (m *Manager) findByUsername(username string) *User {
	for id, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			stored := m.users[id]
			return &stored
		}
	}
	return nil
}

// Login authenticates and records the session.
func (m *Manager) Login(username, password string) (*User, error) {
	u := m.findByUsername(username)
	if u == nil {
		return nil, ErrUserNotFound
	}
	if !u.IsActive {
		return nil, ErrUserDisabled
	}
	if !u.CheckPassword(password) {
		return nil, ErrBadPassword
	}
	u.RecordLogin()
	m.users[u.ID] = *u
	if err := m.save(); err != nil {
		return nil, err
	}
	m.current = u
	return u, nil
}

// Logout clears the session.
func (m *Manager) Logout() {
	m.current = nil
}

// CurrentUser returns the logged-in user, or nil.
func (m *Manager) CurrentUser() *User {
	return m.current
}

// IsAdmin reports whether the current session holds the admin role.
func (m *Manager) IsAdmin() bool {
	return m.current != nil && ParseRole(m.current.Role) == RoleAdmin
}

// HasPermission checks a permission against the current session.
func (m *Manager) HasPermission(perm Permission) bool {
	if m.current == nil {
		return false
	}
	return Can(ParseRole(m.current.Role), perm)
}

// CreateUser adds an account. Admin only.
func (m *Manager) CreateUser(username, password string, role Role) (*User, error) {
	if !m.IsAdmin() {
		return nil, ErrNotAdmin
	}
	if m.findByUsername(username) != nil {
		return nil, ErrUsernameTaken
	}
	u := NewUser(username)
	u.Role = string(role)
	u.SetPassword(password)
	m.users[u.ID] = *u
	if err := m.save(); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes an account. Admin only; the last admin and the
// current session's own account are protected.
func (m *Manager) DeleteUser(userID string) error {
	if !m.IsAdmin() {
		return ErrNotAdmin
	}
	u, ok := m.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	if m.current != nil && m.current.ID == userID {
		return ErrSelfDelete
	}
	if ParseRole(u.Role) == RoleAdmin {
		admins := 0
		for _, other := range m.users {
			if ParseRole(other.Role) == RoleAdmin {
				admins++
			}
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}
	delete(m.users, userID)
	return m.save()
}

// AllUsers lists accounts. Admin only; others get an empty list.
func (m *Manager) AllUsers() []User {
	if !m.IsAdmin() {
		return nil
	}
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out
}

// ChangePassword lets the current user rotate their own password.
func (m *Manager) ChangePassword(oldPassword, newPassword string) error {
	if m.current == nil {
		return ErrNotLoggedIn
	}
	if !m.current.CheckPassword(oldPassword) {
		return ErrWrongOldSecret
	}
	m.current.SetPassword(newPassword)
	m.users[m.current.ID] = *m.current
	return m.save()
}
