package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abaad/hive/auth"
	"github.com/abaad/hive/store"
)

// Config represents the structure of the config.json file
// Example at project root: config.json
//
//	{
//	  "database": "data/hive.json",
//	  "role": "Admin"
//	}
//
// Add fields here as config grows.
type Config struct {
	Database       string  `json:"database"`
	UsersFile      string  `json:"users_file"`
	Role           string  `json:"role"`
	RatePerGram    float64 `json:"rate_per_gram"`
	CostPerGram    float64 `json:"cost_per_gram"`
	ElectricityEGP float64 `json:"electricity_rate"`
	CompanyName    string  `json:"company_name"`
	CompanyPhone   string  `json:"company_phone"`
}

// Cfg holds the loaded configuration and is available to all commands.
var Cfg *Config

// cfgFile is set from the --config flag.
var cfgFile string

// noColor toggles ANSI color output off when set via --no-color flag.
var noColor bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hive",
	Short: "Hive tracks print orders, filament spools, and shop finances",
	Long: `Hive is a command line tool for running a 3D printing shop:
quoting and pricing orders, reserving filament off spools, and keeping
the books on printers, failures, and expenses.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Apply color preference as early as possible, but only disable if the flag is set
		if noColor {
			color.NoColor = true
		}

		// Load config only once; subsequent subcommands in the chain need not reload
		if Cfg != nil {
			return nil
		}
		if cfgFile != "" {
			cfg, err := LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config from %s: %w", cfgFile, err)
			}
			Cfg = cfg

			return nil
		}

		cfg, err := LoadMergedConfig()
		if err != nil {
			return fmt.Errorf("unable to load config: %w", err)
		}
		// Config is optional; only set if any file existed
		if cfg != nil {
			Cfg = cfg
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// LoadConfig reads and parses JSON config from the given path.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("json config parsing error: %w", err)
	}

	return &c, nil
}

func exists(path string) bool {
	if path == "" {
		return false
	}

	_, err := os.Stat(path)

	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

//nolint:gochecknoinits
func init() {
	// Global config flag for all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (config.json)")
	// Global color toggle
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color output")
}

// LoadMergedConfig attempts to load and merge configs from standard locations when no explicit --config is provided.
// Precedence (later overrides earlier):
//  1. $HOME/.config/hive/config.json
//  2. $XDG_CONFIG_HOME/hive/config.json
//  3. ./config.json (current working directory)
//
// If none exist, returns (nil, nil).
func LoadMergedConfig() (*Config, error) {
	paths := discoverConfigPaths()
	if len(paths) == 0 {
		return nil, nil
	}

	merged := &Config{}

	for _, p := range paths {
		c, err := LoadConfig(p)
		if err != nil {
			return nil, fmt.Errorf("failed loading %s: %w", p, err)
		}

		mergeInto(merged, c)
	}

	return merged, nil
}

// discoverConfigPaths returns existing config paths in merge order.
func discoverConfigPaths() []string {
	var out []string
	// 1) HOME
	if home, _ := os.UserHomeDir(); home != "" {
		p := filepath.Join(home, ".config", "hive", "config.json")
		if exists(p) {
			out = append(out, p)
		}
	}
	// 2) XDG
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		p := filepath.Join(xdg, "hive", "config.json")
		if exists(p) {
			out = append(out, p)
		}
	}
	// 3) CWD
	if cwd, _ := os.Getwd(); cwd != "" {
		p := filepath.Join(cwd, "config.json")
		if exists(p) {
			out = append(out, p)
		}
	}

	return out
}

// mergeInto copies non-zero values from src into dst.
func mergeInto(dst, src *Config) {
	if src == nil || dst == nil {
		return
	}

	if src.Database != "" {
		dst.Database = src.Database
	}
	if src.UsersFile != "" {
		dst.UsersFile = src.UsersFile
	}
	if src.Role != "" {
		dst.Role = src.Role
	}
	if src.RatePerGram > 0 {
		dst.RatePerGram = src.RatePerGram
	}
	if src.CostPerGram > 0 {
		dst.CostPerGram = src.CostPerGram
	}
	if src.ElectricityEGP > 0 {
		dst.ElectricityEGP = src.ElectricityEGP
	}
	if src.CompanyName != "" {
		dst.CompanyName = src.CompanyName
	}
	if src.CompanyPhone != "" {
		dst.CompanyPhone = src.CompanyPhone
	}
}

// databasePath returns the configured data file, defaulting to
// data/hive.json next to the working directory.
func databasePath() string {
	if Cfg != nil && Cfg.Database != "" {
		return Cfg.Database
	}
	return filepath.Join("data", "hive.json")
}

// usersPath returns the configured users file, defaulting to
// data/users.json.
func usersPath() string {
	if Cfg != nil && Cfg.UsersFile != "" {
		return Cfg.UsersFile
	}
	return filepath.Join("data", "users.json")
}

// currentRole resolves the operator's role from config; unknown or
// missing values fall back to the restricted role.
func currentRole() auth.Role {
	if Cfg != nil {
		return auth.ParseRole(Cfg.Role)
	}
	return auth.RoleUser
}

// requirePermission gates a command on the configured role.
func requirePermission(perm auth.Permission) error {
	if !auth.Can(currentRole(), perm) {
		return fmt.Errorf("role %s is not allowed to %s", currentRole(), perm)
	}
	return nil
}

// openStore opens the datastore and applies config rate overrides.
func openStore() (*store.Store, error) {
	s, err := store.Open(databasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open datastore: %w", err)
	}

	rates := s.Rates()
	if Cfg != nil {
		if Cfg.RatePerGram > 0 {
			rates.BaseRatePerGram = Cfg.RatePerGram
		}
		if Cfg.CostPerGram > 0 {
			rates.CostPerGram = Cfg.CostPerGram
		}
		if Cfg.ElectricityEGP > 0 {
			rates.ElectricityPerHour = Cfg.ElectricityEGP
		}
	}
	s.SetRates(rates)

	return s, nil
}
