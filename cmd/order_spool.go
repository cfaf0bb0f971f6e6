package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abaad/hive/auth"
)

// orderSpoolCmd moves an item's filament claim onto another spool, or
// makes a first claim for an unassigned item.
var orderSpoolCmd = &cobra.Command{
	Use:   "spool <order> <item id> [spool id]",
	Short: "Assign or change the spool an item draws from",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runOrderSpool,
}

func runOrderSpool(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermEditOrder); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	o, err := resolveOrder(s, args[0])
	if err != nil {
		return err
	}
	item := o.GetItem(args[1])
	if item == nil {
		return fmt.Errorf("order #%d has no item %q", o.OrderNumber, args[1])
	}

	var newSpoolID string
	if len(args) == 3 {
		newSpoolID = args[2]
	} else {
		nonInteractive, _ := cmd.Flags().GetBool("non-interactive")
		if !isInteractiveAllowed(nonInteractive) {
			return fmt.Errorf("no spool id given and interactive selection is unavailable")
		}
		chosen, canceled, perr := selectSpoolInteractively(s, item.Color)
		if perr != nil {
			return perr
		}
		if canceled {
			fmt.Println("Cancelled.")
			return nil
		}
		newSpoolID = chosen.ID
	}

	newSpool := s.GetSpool(newSpoolID)
	if newSpool == nil {
		return fmt.Errorf("no spool with id %q", newSpoolID)
	}

	if !s.ChangeItemSpool(o, item.ID, newSpoolID) {
		return fmt.Errorf("spool %s cannot take %s (available %s); original claim kept",
			newSpool.DisplayName(), FormatGrams(item.TotalWeight()), FormatGrams(newSpool.AvailableWeightGrams()))
	}

	if err := s.SaveOrder(o, false); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	color.Green("Item %s on order #%d now draws %s from %s\n",
		item.ID, o.OrderNumber, FormatGrams(item.TotalWeight()), newSpool.DisplayName())

	return nil
}

func init() {
	orderCmd.AddCommand(orderSpoolCmd)

	orderSpoolCmd.Flags().Bool("non-interactive", false, "never prompt for a spool")
}
