package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abaad/hive/auth"
	"github.com/abaad/hive/models"
)

// orderShowCmd prints the full pricing breakdown of one order.
var orderShowCmd = &cobra.Command{
	Use:   "show <order>",
	Short: "Show an order with its full pricing breakdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderShow,
}

func runOrderShow(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermViewOrder); err != nil {
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

	color.Green("Order #%d  %s\n", o.OrderNumber, statusLabel(o.Status))
	fmt.Printf("Customer: %s", o.CustomerName)
	if o.CustomerPhone != "" {
		fmt.Printf(" (%s)", o.CustomerPhone)
	}
	fmt.Println()
	if o.IsRDProject {
		color.Yellow("R&D project: billed at production cost\n")
	}
	fmt.Printf("Created: %s", o.CreatedDate)
	if o.ConfirmedDate != "" {
		fmt.Printf("   Confirmed: %s", o.ConfirmedDate)
	}
	if o.DeliveredDate != "" {
		fmt.Printf("   Delivered: %s", o.DeliveredDate)
	}
	fmt.Println()
	if o.Notes != "" {
		fmt.Printf("Notes: %s\n", o.Notes)
	}

	fmt.Println()
	fmt.Printf("Parts: %d (%s, %s print time)\n", o.ItemCount(), FormatGrams(o.TotalWeight()), models.FormatMinutes(o.TotalTime()))
	for idx := range o.Items {
		item := &o.Items[idx]
		claim := ""
		switch {
		case item.FilamentDeducted:
			claim = " [deducted]"
		case item.FilamentPending:
			claim = " [reserved]"
		case item.SpoolID == "":
			claim = " [no spool]"
		}
		fmt.Printf("  %-10s %-24s x%-3d %8s @ %.2f/g = %9s%s\n",
			item.ID, TruncateFront(item.Name, 24), item.Quantity,
			FormatGrams(item.Weight()), item.RatePerGram, FormatEGP(item.PrintCost()), claim)
		if item.ToleranceDiscountApplied {
			fmt.Printf("             tolerance discount %s (%+.1fg over estimate)\n",
				FormatEGP(item.ToleranceDiscountAmount), item.WeightDifference())
		}
	}

	fmt.Println()
	fmt.Printf("Subtotal (list rate):   %12s\n", FormatEGP(o.Subtotal))
	if o.ToleranceDiscountTotal > 0 {
		fmt.Printf("Tolerance discounts:    %12s\n", FormatEGP(o.ToleranceDiscountTotal))
	}
	if o.DiscountAmount > 0 {
		fmt.Printf("Rate discount (%.1f%%):  %12s\n", o.DiscountPercent, FormatEGP(o.DiscountAmount))
	}
	if o.OrderDiscountAmount > 0 {
		fmt.Printf("Order discount (%.1f%%): %12s\n", o.OrderDiscountPercent, FormatEGP(o.OrderDiscountAmount))
	}
	if o.ShippingCost > 0 {
		fmt.Printf("Shipping:               %12s\n", FormatEGP(o.ShippingCost))
	}
	if o.PaymentFee > 0 {
		fmt.Printf("Payment fee (%s): %12s\n", o.PaymentMethod, FormatEGP(o.PaymentFee))
	}
	color.Green("Total:                  %12s\n", FormatEGP(o.Total))
	if o.AmountReceived > 0 {
		fmt.Printf("Received:               %12s\n", FormatEGP(o.AmountReceived))
		if o.RoundingLoss > 0 {
			color.Yellow("Rounding loss:          %12s\n", FormatEGP(o.RoundingLoss))
		}
	}

	if showCosts, _ := cmd.Flags().GetBool("costs"); showCosts {
		if err := requirePermission(auth.PermViewFinancial); err != nil {
			return err
		}
		fmt.Println()
		fmt.Printf("Material cost:          %12s\n", FormatEGP(o.MaterialCost))
		fmt.Printf("Electricity:            %12s\n", FormatEGP(o.ElectricityCost))
		fmt.Printf("Depreciation:           %12s\n", FormatEGP(o.DepreciationCost))
		fmt.Printf("Profit:                 %12s\n", FormatEGP(o.Profit))
	}

	return nil
}

func init() {
	orderCmd.AddCommand(orderShowCmd)

	orderShowCmd.Flags().Bool("costs", false, "include production costs and profit")
}
