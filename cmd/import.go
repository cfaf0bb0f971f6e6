package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abaad/hive/auth"
	"github.com/abaad/hive/db"
)

// importCmd pulls spool inventory out of a Spoolman SQLite database.
// Useful when migrating a shop that tracked filament there before.
var importCmd = &cobra.Command{
	Use:   "import <spoolman.db>",
	Short: "Import spool inventory from a Spoolman database",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermManageInventory); err != nil {
		return err
	}

	client, err := db.NewClient(args[0])
	if err != nil {
		return fmt.Errorf("failed to open spoolman database: %w", err)
	}
	defer client.Close()

	rows, err := client.Spools()
	if err != nil {
		return fmt.Errorf("failed to read spoolman spools: %w", err)
	}
	if len(rows) == 0 {
		color.HiRed("No spools found in %s\n", args[0])
		return nil
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	skipArchived, _ := cmd.Flags().GetBool("skip-archived")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var errs error
	imported, skipped := 0, 0
	for _, row := range rows {
		if skipArchived && row.Archived {
			skipped++
			continue
		}
		sp := row.ToFilamentSpool()
		if dryRun {
			fmt.Printf(" would import %-30s %s / %s\n",
				sp.DisplayName(), FormatGrams(sp.CurrentWeightGrams), FormatGrams(sp.InitialWeightGrams))
			imported++
			continue
		}
		if serr := s.SaveSpool(sp); serr != nil {
			errs = errors.Join(errs, fmt.Errorf("spoolman #%d: %w", row.SpoolmanID, serr))
			continue
		}
		if sp.Color != "" {
			if cerr := s.AddColor(sp.Color); cerr != nil {
				errs = errors.Join(errs, cerr)
			}
		}
		imported++
	}

	verb := "Imported"
	if dryRun {
		verb = "Would import"
	}
	color.Green("%s %d spool(s) from %s", verb, imported, args[0])
	if skipped > 0 {
		fmt.Printf(" (%d archived skipped)", skipped)
	}
	fmt.Println()

	return errs
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().Bool("skip-archived", false, "do not bring over archived spools")
	importCmd.Flags().Bool("dry-run", false, "show what would be imported without saving")
}
