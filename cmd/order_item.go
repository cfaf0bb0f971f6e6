package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abaad/hive/auth"
	"github.com/abaad/hive/models"
)

// orderItemCmd groups the per-item operations on an order.
var orderItemCmd = &cobra.Command{
	Use:     "item",
	Short:   "Manage the parts on an order",
	Aliases: []string{"items"},
}

var orderItemAddCmd = &cobra.Command{
	Use:   "add <order> <part name>",
	Short: "Add a part to an order and reserve its filament",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runOrderItemAdd,
}

func runOrderItemAdd(cmd *cobra.Command, args []string) error {
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
	if o.IsConfirmed() {
		return fmt.Errorf("order #%d is already confirmed; new parts need a fresh order", o.OrderNumber)
	}

	item := models.NewPrintItem()
	item.Name = strings.Join(args[1:], " ")

	weightStr, _ := cmd.Flags().GetString("weight")
	item.EstimatedWeightGrams = ParseFloat(weightStr, 0)
	if item.EstimatedWeightGrams <= 0 {
		return fmt.Errorf("a positive --weight estimate in grams is required")
	}

	timeStr, _ := cmd.Flags().GetString("time")
	item.EstimatedTimeMinutes = ParseInt(timeStr, 0)

	qtyStr, _ := cmd.Flags().GetString("qty")
	item.Quantity = ParseInt(qtyStr, 1)
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	rateStr, _ := cmd.Flags().GetString("rate")
	item.RatePerGram = ParseFloat(rateStr, s.Rates().BaseRatePerGram)

	if ft, _ := cmd.Flags().GetString("type"); ft != "" {
		item.FilamentType = ft
	}
	if c, _ := cmd.Flags().GetString("color"); c != "" {
		item.Color = c
	}
	if notes, _ := cmd.Flags().GetString("notes"); notes != "" {
		item.Notes = notes
	}

	// Resolve the spool: explicit flag, else interactive picker, else
	// leave the part unclaimed.
	spoolID, _ := cmd.Flags().GetString("spool")
	nonInteractive, _ := cmd.Flags().GetBool("non-interactive")
	if spoolID == "" && isInteractiveAllowed(nonInteractive) {
		chosen, canceled, perr := selectSpoolInteractively(s, item.Color)
		if perr != nil {
			return perr
		}
		if !canceled {
			spoolID = chosen.ID
		}
	}

	if spoolID != "" {
		spool := s.GetSpool(spoolID)
		if spool == nil {
			return fmt.Errorf("no spool with id %q", spoolID)
		}
		if !s.ReserveFilament(spoolID, item.TotalWeight()) {
			return fmt.Errorf("spool %s has only %s available, need %s",
				spool.DisplayName(), FormatGrams(spool.AvailableWeightGrams()), FormatGrams(item.TotalWeight()))
		}
		item.SpoolID = spoolID
		item.FilamentPending = true
	}

	o.AddItem(*item)
	if err := s.SaveOrder(o, false); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	color.Green("Added %q x%d (%s) to order #%d\n", item.Name, item.Quantity, FormatGrams(item.TotalWeight()), o.OrderNumber)
	if item.SpoolID != "" {
		fmt.Printf("Reserved %s on spool %s\n", FormatGrams(item.TotalWeight()), item.SpoolID)
	} else {
		color.Yellow("No spool claimed; assign one with: hive order spool\n")
	}
	fmt.Printf("Order total is now %s\n", FormatEGP(o.Total))

	return nil
}

var orderItemRemoveCmd = &cobra.Command{
	Use:     "remove <order> <item id>",
	Short:   "Remove a part from an order, releasing its filament",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(2),
	RunE:    runOrderItemRemove,
}

func runOrderItemRemove(cmd *cobra.Command, args []string) error {
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

	// Unwind the spool claim before dropping the line.
	if item.HasSpoolClaim() {
		if item.FilamentDeducted {
			s.ReturnFilament(item.SpoolID, item.TotalWeight())
		} else if item.FilamentPending {
			s.ReleasePendingFilament(item.SpoolID, item.TotalWeight())
		}
	}

	o.RemoveItem(item.ID)
	if err := s.SaveOrder(o, false); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	color.Green("Removed item from order #%d; total is now %s\n", o.OrderNumber, FormatEGP(o.Total))

	return nil
}

var orderItemPrintedCmd = &cobra.Command{
	Use:   "printed <order> <item id>",
	Short: "Record a part's measured weight and time after printing",
	Args:  cobra.ExactArgs(2),
	RunE:  runOrderItemPrinted,
}

func runOrderItemPrinted(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermUpdateStatus); err != nil {
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

	weightStr, _ := cmd.Flags().GetString("weight")
	if w := ParseFloat(weightStr, 0); w > 0 {
		item.ActualWeightGrams = w
	}
	timeStr, _ := cmd.Flags().GetString("time")
	if m := ParseInt(timeStr, 0); m > 0 {
		item.ActualTimeMinutes = m
	}
	item.IsPrinted = true

	if printerID, _ := cmd.Flags().GetString("printer"); printerID != "" {
		if s.GetPrinter(printerID) == nil {
			return fmt.Errorf("no printer with id %q", printerID)
		}
		item.PrinterID = printerID
	}

	if err := s.SaveOrder(o, false); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	diff := item.WeightDifference()
	switch {
	case item.ToleranceDiscountApplied:
		color.Green("Recorded %s printed at %s (%+.1fg); tolerance discount of %s applied\n",
			item.Name, FormatGrams(item.ActualWeightGrams), diff, FormatEGP(item.ToleranceDiscountAmount))
	case diff > models.ToleranceThresholdGrams:
		color.Yellow("Recorded %s at %s, %+.1fg over estimate; check the slicing profile\n",
			item.Name, FormatGrams(item.ActualWeightGrams), diff)
	default:
		color.Green("Recorded %s printed at %s\n", item.Name, FormatGrams(item.Weight()))
	}
	fmt.Printf("Order total is now %s\n", FormatEGP(o.Total))

	return nil
}

func init() {
	orderCmd.AddCommand(orderItemCmd)
	orderItemCmd.AddCommand(orderItemAddCmd)
	orderItemCmd.AddCommand(orderItemRemoveCmd)
	orderItemCmd.AddCommand(orderItemPrintedCmd)

	orderItemAddCmd.Flags().StringP("weight", "w", "", "estimated weight in grams per part (required)")
	orderItemAddCmd.Flags().StringP("time", "t", "", "estimated print time in minutes per part")
	orderItemAddCmd.Flags().StringP("qty", "q", "1", "number of copies")
	orderItemAddCmd.Flags().StringP("rate", "r", "", "price per gram in EGP, defaults to the shop rate")
	orderItemAddCmd.Flags().String("type", "", "filament type, e.g. PLA+")
	orderItemAddCmd.Flags().String("color", "", "filament color")
	orderItemAddCmd.Flags().String("spool", "", "spool id to reserve filament from")
	orderItemAddCmd.Flags().String("notes", "", "notes on the part")
	orderItemAddCmd.Flags().Bool("non-interactive", false, "never prompt for a spool")

	orderItemPrintedCmd.Flags().StringP("weight", "w", "", "measured weight in grams per part")
	orderItemPrintedCmd.Flags().StringP("time", "t", "", "measured print time in minutes per part")
	orderItemPrintedCmd.Flags().String("printer", "", "printer id the part was printed on")
}
