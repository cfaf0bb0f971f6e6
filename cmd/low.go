package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abaad/hive/auth"
	"github.com/abaad/hive/models"
)

// lowCmd lists filament that is running low so you know what to reorder
var lowCmd = &cobra.Command{
	Use:     "low",
	Short:   "Show filament running low so you know what to reorder",
	Long:    "List filament that is running low based on remaining grams, grouped by type and color.",
	Aliases: []string{"reorder"},
	RunE:    runLow,
}

func runLow(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermViewInventory); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	maxRemaining, err := cmd.Flags().GetFloat64("max-remaining")
	if err != nil {
		return fmt.Errorf("failed to get max-remaining: %w", err)
	}

	// "Low" is judged per type+color group, not per spool: three nearly
	// empty black PLA+ spools may still add up to plenty.
	type group struct {
		FilamentType string
		Color        string
		Spools       []models.FilamentSpool
		RemainSum    float64
	}
	groups := map[string]*group{}
	for _, sp := range s.AllSpools() {
		if !sp.IsActive || sp.Status == models.SpoolTrash {
			continue
		}
		key := sp.FilamentType + "|" + sp.Color
		g, ok := groups[key]
		if !ok {
			g = &group{FilamentType: sp.FilamentType, Color: sp.Color}
			groups[key] = g
		}
		g.Spools = append(g.Spools, sp)
		g.RemainSum += sp.CurrentWeightGrams
	}

	var lowGroups []*group
	for _, g := range groups {
		if maxRemaining > 0 && g.RemainSum <= maxRemaining+1e-9 {
			lowGroups = append(lowGroups, g)
		}
	}

	header := fmt.Sprintf("Filament running low (under %s total): %d\n", FormatGrams(maxRemaining), len(lowGroups))
	if len(lowGroups) == 0 {
		color.Green(header)
		return nil
	}
	color.HiRed(header)
	for _, g := range lowGroups {
		fmt.Printf(" - %s %s: %s left across %d spool(s)\n",
			g.FilamentType, g.Color, FormatGrams(g.RemainSum), len(g.Spools))
		for _, sp := range g.Spools {
			fmt.Printf("     %-10s %s (%s)\n", sp.ID, sp.DisplayName(), FormatGrams(sp.CurrentWeightGrams))
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(lowCmd)

	lowCmd.Flags().Float64("max-remaining", 200, "threshold in grams; groups with remaining <= this are shown (0 to disable)")
}
