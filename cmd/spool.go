package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abaad/hive/auth"
	"github.com/abaad/hive/models"
)

// spoolCmd groups filament inventory operations.
var spoolCmd = &cobra.Command{
	Use:     "spool",
	Short:   "Manage the filament spool inventory",
	Aliases: []string{"spools", "filament"},
}

var spoolAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a spool to the inventory",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSpoolAdd,
}

func runSpoolAdd(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermManageInventory); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	sp := models.NewSpool()
	sp.Name = strings.Join(args, " ")

	if ft, _ := cmd.Flags().GetString("type"); ft != "" {
		sp.FilamentType = ft
	}
	if brand, _ := cmd.Flags().GetString("brand"); brand != "" {
		sp.Brand = brand
	}
	if c, _ := cmd.Flags().GetString("color"); c != "" {
		sp.Color = c
		if err := s.AddColor(c); err != nil {
			return err
		}
	}
	weightStr, _ := cmd.Flags().GetString("weight")
	if w := ParseFloat(weightStr, 0); w > 0 {
		sp.InitialWeightGrams = w
		sp.CurrentWeightGrams = w
	}
	priceStr, _ := cmd.Flags().GetString("price")
	if p := ParseFloat(priceStr, 0); p > 0 {
		sp.PurchasePriceEGP = p
	}
	if remaining, _ := cmd.Flags().GetBool("remaining"); remaining {
		// Leftover filament carries no cost; it was paid for by whoever
		// used the bulk of the spool.
		sp.Category = models.CategoryRemaining
		sp.PurchasePriceEGP = 0
	}

	if err := s.SaveSpool(sp); err != nil {
		return fmt.Errorf("failed to save spool: %w", err)
	}

	color.Green("Added spool %s: %s, %s at %s\n",
		sp.ID, sp.DisplayName(), FormatGrams(sp.CurrentWeightGrams), FormatEGP(sp.PurchasePriceEGP))

	return nil
}

var spoolListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List spools with remaining weight",
	Aliases: []string{"ls"},
	RunE:    runSpoolList,
}

func runSpoolList(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermViewInventory); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	var spools []models.FilamentSpool
	if colorFilter, _ := cmd.Flags().GetString("color"); colorFilter != "" {
		spools = s.SpoolsByColor(colorFilter)
	} else if all, _ := cmd.Flags().GetBool("all"); all {
		spools = s.AllSpools()
	} else {
		spools = s.ActiveSpools()
	}

	if len(spools) == 0 {
		color.HiRed("No spools found\n")
		return nil
	}

	color.Green("Spools: %d\n", len(spools))
	for _, sp := range spools {
		pending := ""
		if sp.PendingWeightGrams > 0 {
			pending = fmt.Sprintf(" (%s reserved)", FormatGrams(sp.PendingWeightGrams))
		}
		fmt.Printf(" %-10s %-30s %7s / %7s  %5.1f%%  %s%s\n",
			sp.ID, TruncateFront(sp.DisplayName(), 30),
			FormatGrams(sp.CurrentWeightGrams), FormatGrams(sp.InitialWeightGrams),
			sp.RemainingPercent(), sp.Status, pending)
	}

	return nil
}

var spoolTrashCmd = &cobra.Command{
	Use:   "trash [spool id]",
	Short: "List trash candidates, or move a spool to trash",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSpoolTrash,
}

func runSpoolTrash(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermManageInventory); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		candidates := s.TrashCandidates()
		if len(candidates) == 0 {
			color.Green("No spools under %.0fg; nothing to trash\n", models.TrashThresholdGrams)
			return nil
		}
		color.Yellow("Trash candidates (under %.0fg remaining): %d\n", models.TrashThresholdGrams, len(candidates))
		for _, sp := range candidates {
			fmt.Printf(" %-10s %-30s %s left\n", sp.ID, sp.DisplayName(), FormatGrams(sp.CurrentWeightGrams))
		}
		fmt.Println("Trash one with: hive spool trash <spool id>")
		return nil
	}

	sp := s.GetSpool(args[0])
	if sp == nil {
		return fmt.Errorf("no spool with id %q", args[0])
	}
	if sp.PendingWeightGrams > 0 {
		return fmt.Errorf("spool %s still has %s reserved; release those claims first",
			sp.DisplayName(), FormatGrams(sp.PendingWeightGrams))
	}

	reason, _ := cmd.Flags().GetString("reason")
	if err := s.MoveSpoolToTrash(sp.ID, reason); err != nil {
		return fmt.Errorf("failed to trash spool: %w", err)
	}

	color.Green("Moved %s to trash; %s recorded as waste\n", sp.DisplayName(), FormatGrams(sp.CurrentWeightGrams))

	return nil
}

func init() {
	rootCmd.AddCommand(spoolCmd)
	spoolCmd.AddCommand(spoolAddCmd)
	spoolCmd.AddCommand(spoolListCmd)
	spoolCmd.AddCommand(spoolTrashCmd)

	spoolAddCmd.Flags().String("type", "PLA+", "filament type")
	spoolAddCmd.Flags().String("brand", "", "manufacturer")
	spoolAddCmd.Flags().StringP("color", "c", "", "filament color")
	spoolAddCmd.Flags().StringP("weight", "w", "1000", "initial weight in grams")
	spoolAddCmd.Flags().StringP("price", "p", "", "purchase price in EGP")
	spoolAddCmd.Flags().Bool("remaining", false, "leftover filament from another spool, zero cost")

	spoolListCmd.Flags().StringP("color", "c", "", "only spools of this color, fullest first")
	spoolListCmd.Flags().Bool("all", false, "include trashed and inactive spools")

	spoolTrashCmd.Flags().String("reason", "trash", "why the spool is being retired")
}
