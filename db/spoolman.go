package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/abaad/hive/models"
)

// Client wraps a sql.DB connected to a Spoolman SQLite database. It is
// read-only as far as hive is concerned; we only pull spool inventory
// out of it during import.
//
// The driver is modernc.org/sqlite to avoid CGO. Driver name: "sqlite",
// DSN: path to the database file.
//
// SQLite is not highly concurrent, and an import is a single pass
// anyway, so MaxOpenConns is pinned to 1.
type Client struct {
	DB   *sql.DB
	Path string
}

// NewClient opens the Spoolman database at path and verifies it.
func NewClient(path string) (*Client, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("database path is empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return &Client{DB: db, Path: path}, nil
}

// Close closes the underlying sql.DB. Safe to call multiple times or on
// a nil client.
func (c *Client) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

// ImportedSpool is one row of Spoolman inventory joined with its
// filament and vendor records.
type ImportedSpool struct {
	SpoolmanID    int
	Material      string
	Brand         string
	Color         string
	InitialWeight float64
	UsedWeight    float64
	Price         float64
	FirstUsed     string
	Archived      bool
	Comment       string
}

// Spools reads every spool from the Spoolman database, joined with its
// filament and vendor. Archived spools are included; the caller decides
// whether to carry them over.
func (c *Client) Spools() ([]ImportedSpool, error) {
	rows, err := c.DB.Query(`
		SELECT s.id,
		       COALESCE(f.material, ''),
		       COALESCE(v.name, ''),
		       COALESCE(f.color_hex, ''),
		       COALESCE(f.weight, 0),
		       COALESCE(s.used_weight, 0),
		       COALESCE(s.price, COALESCE(f.price, 0)),
		       COALESCE(s.first_used, ''),
		       s.archived,
		       COALESCE(s.comment, '')
		FROM spool s
		JOIN filament f ON f.id = s.filament_id
		LEFT JOIN vendor v ON v.id = f.vendor_id
		ORDER BY s.id`)
	if err != nil {
		return nil, fmt.Errorf("query spoolman spools: %w", err)
	}
	defer rows.Close()

	var out []ImportedSpool
	for rows.Next() {
		var sp ImportedSpool
		if err := rows.Scan(&sp.SpoolmanID, &sp.Material, &sp.Brand, &sp.Color,
			&sp.InitialWeight, &sp.UsedWeight, &sp.Price, &sp.FirstUsed,
			&sp.Archived, &sp.Comment); err != nil {
			return nil, fmt.Errorf("scan spoolman spool: %w", err)
		}
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate spoolman spools: %w", err)
	}
	return out, nil
}

// ToFilamentSpool converts a Spoolman row into a hive spool. Fully used
// or archived spools come over as trash so waste accounting stays honest.
func (sp ImportedSpool) ToFilamentSpool() *models.FilamentSpool {
	out := models.NewSpool()
	out.Name = fmt.Sprintf("Spoolman #%d", sp.SpoolmanID)
	out.FilamentType = sp.Material
	out.Brand = sp.Brand
	out.Color = sp.Color
	out.InitialWeightGrams = sp.InitialWeight
	out.CurrentWeightGrams = sp.InitialWeight - sp.UsedWeight
	if out.CurrentWeightGrams < 0 {
		out.CurrentWeightGrams = 0
	}
	out.PurchasePriceEGP = sp.Price
	if sp.FirstUsed != "" {
		out.PurchaseDate = sp.FirstUsed
	}
	out.Notes = sp.Comment
	if sp.Archived || out.CurrentWeightGrams < 1 {
		out.Status = models.SpoolTrash
		out.IsActive = false
	}
	return out
}
