// Package store is the JSON datastore behind the hive CLI. It keeps the
// whole dataset in memory and persists it with a temp-file-then-rename
// write, so a crash can only lose mutations since the last save, never
// corrupt the file. The store is a plain injected value; callers
// construct one with Open and pass it where needed.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/abaad/hive/models"
	"github.com/abaad/hive/pricing"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// Settings are shop-wide configuration values persisted with the data.
type Settings struct {
	CompanyName        string  `json:"company_name"`
	CompanyPhone       string  `json:"company_phone"`
	CompanyAddress     string  `json:"company_address"`
	DefaultRatePerGram float64 `json:"default_rate_per_gram"`
	NextOrderNumber    int     `json:"next_order_number"`
	DepositPercent     float64 `json:"deposit_percent"`
	QuoteValidityDays  int     `json:"quote_validity_days"`
}

func defaultSettings() Settings {
	return Settings{
		CompanyName:        "Abaad",
		CompanyAddress:     "Ismailia, Egypt",
		DefaultRatePerGram: models.DefaultRatePerGram,
		NextOrderNumber:    1,
		DepositPercent:     50,
		QuoteValidityDays:  7,
	}
}

func defaultColors() []string {
	return []string{"Black", "Light Blue", "Silver", "White", "Red", "Beige", "Purple"}
}

// data is the on-disk document. Keys match the existing JSON schema so
// data files from earlier versions load unchanged.
type data struct {
	Orders          map[string]models.Order           `json:"orders"`
	Customers       map[string]models.Customer        `json:"customers"`
	Spools          map[string]models.FilamentSpool   `json:"spools"`
	Printers        map[string]models.Printer         `json:"printers"`
	FilamentHistory map[string]models.FilamentHistory `json:"filament_history"`
	Failures        map[string]models.PrintFailure    `json:"failures"`
	Expenses        map[string]models.Expense         `json:"expenses"`
	DeletedOrders   map[string]models.Order           `json:"deleted_orders"`
	Colors          []string                          `json:"colors"`
	Settings        Settings                          `json:"settings"`
}

func emptyData() *data {
	return &data{
		Orders:          map[string]models.Order{},
		Customers:       map[string]models.Customer{},
		Spools:          map[string]models.FilamentSpool{},
		Printers:        map[string]models.Printer{},
		FilamentHistory: map[string]models.FilamentHistory{},
		Failures:        map[string]models.PrintFailure{},
		Expenses:        map[string]models.Expense{},
		DeletedOrders:   map[string]models.Order{},
		Colors:          defaultColors(),
		Settings:        defaultSettings(),
	}
}

// Store owns the dataset for one data file.
type Store struct {
	path  string
	rates pricing.Rates
	data  *data
}

// Open loads the datastore at path, creating a fresh one when the file
// does not exist yet. A default printer is seeded so cost accounting has
// a machine to charge against.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("datastore path is empty")
	}

	s := &Store{path: path, rates: pricing.DefaultRates(), data: emptyData()}
	if err := s.load(); err != nil {
		return nil, err
	}
	s.rates.BaseRatePerGram = s.data.Settings.DefaultRatePerGram
	s.ensureDefaultPrinter()
	return s, nil
}

// SetRates overrides the pricing rates, e.g. from config file values.
func (s *Store) SetRates(r pricing.Rates) {
	s.rates = r
}

// Rates returns the pricing rates orders are recomputed with.
func (s *Store) Rates() pricing.Rates {
	return s.rates
}

// Path returns the data file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() error {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read datastore: %w", err)
	}

	if err := json.Unmarshal(b, s.data); err != nil {
		return fmt.Errorf("parse datastore %s: %w", s.path, err)
	}

	// Older files may miss whole sections or per-record fields.
	if s.data.Orders == nil {
		s.data.Orders = map[string]models.Order{}
	}
	if s.data.Customers == nil {
		s.data.Customers = map[string]models.Customer{}
	}
	if s.data.Spools == nil {
		s.data.Spools = map[string]models.FilamentSpool{}
	}
	if s.data.Printers == nil {
		s.data.Printers = map[string]models.Printer{}
	}
	if s.data.FilamentHistory == nil {
		s.data.FilamentHistory = map[string]models.FilamentHistory{}
	}
	if s.data.Failures == nil {
		s.data.Failures = map[string]models.PrintFailure{}
	}
	if s.data.Expenses == nil {
		s.data.Expenses = map[string]models.Expense{}
	}
	if s.data.DeletedOrders == nil {
		s.data.DeletedOrders = map[string]models.Order{}
	}
	if len(s.data.Colors) == 0 {
		s.data.Colors = defaultColors()
	}
	if s.data.Settings.NextOrderNumber == 0 {
		s.data.Settings.NextOrderNumber = 1
	}
	if s.data.Settings.DefaultRatePerGram == 0 {
		s.data.Settings.DefaultRatePerGram = models.DefaultRatePerGram
	}

	for id, o := range s.data.Orders {
		o.ApplyDefaults()
		s.data.Orders[id] = o
	}
	for id, c := range s.data.Customers {
		c.ApplyDefaults()
		s.data.Customers[id] = c
	}
	for id, sp := range s.data.Spools {
		sp.ApplyDefaults()
		s.data.Spools[id] = sp
	}
	for id, p := range s.data.Printers {
		p.ApplyDefaults()
		s.data.Printers[id] = p
	}
	for id, f := range s.data.Failures {
		f.ApplyDefaults()
		s.data.Failures[id] = f
	}
	for id, e := range s.data.Expenses {
		e.ApplyDefaults()
		s.data.Expenses[id] = e
	}
	return nil
}

// Save writes the dataset atomically: marshal to a temp file alongside
// the target, then rename over it. This is the unit of durability; there
// is no write-ahead log.
func (s *Store) Save() error {
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create datastore directory: %w", err)
		}
	}

	b, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode datastore: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write temp datastore: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace datastore: %w", err)
	}
	return nil
}

// Backup copies the data file into a backups directory next to it and
// returns the backup path.
func (s *Store) Backup() (string, error) {
	src, err := os.Open(s.path)
	if err != nil {
		return "", fmt.Errorf("open datastore for backup: %w", err)
	}
	defer func() {
		_ = src.Close()
	}()

	backupDir := filepath.Join(filepath.Dir(s.path), "backups")
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	dstPath := filepath.Join(backupDir, fmt.Sprintf("backup_%s.json", stamp))
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}
	defer func() {
		_ = dst.Close()
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("copy backup: %w", err)
	}
	return dstPath, nil
}

// Colors returns the selectable filament colors.
func (s *Store) Colors() []string {
	out := make([]string, len(s.data.Colors))
	copy(out, s.data.Colors)
	return out
}

// AddColor appends a new color choice if it is not already present.
func (s *Store) AddColor(color string) error {
	if color == "" {
		return nil
	}
	for _, c := range s.data.Colors {
		if c == color {
			return nil
		}
	}
	s.data.Colors = append(s.data.Colors, color)
	return s.Save()
}

// Settings returns a copy of the shop settings.
func (s *Store) Settings() Settings {
	return s.data.Settings
}

// UpdateSettings replaces the shop settings and persists.
func (s *Store) UpdateSettings(set Settings) error {
	s.data.Settings = set
	s.rates.BaseRatePerGram = set.DefaultRatePerGram
	return s.Save()
}

func (s *Store) ensureDefaultPrinter() {
	if len(s.data.Printers) > 0 {
		return
	}
	p := models.NewPrinter("HIVE 0.1", "Creality Ender-3 Max")
	p.ID = "printer_default"
	s.data.Printers[p.ID] = *p
}
