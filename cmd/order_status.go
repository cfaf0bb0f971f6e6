package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abaad/hive/auth"
	"github.com/abaad/hive/models"
	"github.com/abaad/hive/store"
)

// orderStatusCmd moves an order through its lifecycle. Reaching a
// committed status deducts the reserved filament; cancelling releases it.
var orderStatusCmd = &cobra.Command{
	Use:   "status <order> <new status>",
	Short: "Move an order to a new status",
	Long: `Move an order to a new status. Valid statuses:
` + strings.Join(statusNames(), ", ") + `

Confirming an order deducts its reserved filament from the spools.
Cancelling releases any reservations. Delivering records the print
weight and time against the printers used.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runOrderStatus,
}

func statusNames() []string {
	out := make([]string, 0, len(models.OrderStatuses))
	for _, st := range models.OrderStatuses {
		out = append(out, string(st))
	}
	return out
}

func runOrderStatus(cmd *cobra.Command, args []string) error {
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

	status, ok := parseOrderStatus(strings.Join(args[1:], " "))
	if !ok {
		return fmt.Errorf("unknown status %q; valid: %s", strings.Join(args[1:], " "), strings.Join(statusNames(), ", "))
	}

	if status == models.StatusCancelled || o.Status == models.StatusCancelled {
		if err := requirePermission(auth.PermDeleteOrder); err != nil {
			return err
		}
	}

	wasConfirmed := o.IsConfirmed()
	o.Status = status

	if method, _ := cmd.Flags().GetString("method"); method != "" {
		o.PaymentMethod = parsePaymentMethod(method)
	}
	if receivedStr, _ := cmd.Flags().GetString("received"); receivedStr != "" {
		o.AmountReceived = ParseFloat(receivedStr, o.AmountReceived)
	}
	if discountStr, _ := cmd.Flags().GetString("discount"); discountStr != "" {
		o.OrderDiscountPercent = ParseFloat(discountStr, o.OrderDiscountPercent)
	}

	// The first transition into a committed status is what turns the
	// order's filament reservations into deductions.
	confirmFilament := o.IsConfirmed() && !wasConfirmed
	if err := s.SaveOrder(o, confirmFilament); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	// Delivery is when printer wear is booked.
	if status == models.StatusDelivered {
		recordPrinterUsage(s, o)
	}

	color.Green("Order #%d is now %s\n", o.OrderNumber, statusLabel(o.Status))
	switch {
	case confirmFilament:
		fmt.Println("Reserved filament has been deducted from the spools.")
	case status == models.StatusCancelled:
		fmt.Println("Pending filament reservations have been released.")
	}
	if o.RoundingLoss > 0 {
		color.Yellow("Rounding loss of %s on this order\n", FormatEGP(o.RoundingLoss))
	}
	if o.PaymentFee > 0 {
		fmt.Printf("Payment fee (%s): %s\n", o.PaymentMethod, FormatEGP(o.PaymentFee))
	}

	return nil
}

// recordPrinterUsage books each item's weight and time against its
// printer, falling back to the default machine.
func recordPrinterUsage(s *store.Store, o *models.Order) {
	for idx := range o.Items {
		item := &o.Items[idx]
		printerID := item.PrinterID
		if printerID == "" {
			if p := s.DefaultPrinter(); p != nil {
				printerID = p.ID
			}
		}
		if printerID == "" {
			continue
		}
		s.RecordPrint(printerID, item.TotalWeight(), item.TimeMinutes()*item.Quantity)
	}
}

func init() {
	orderCmd.AddCommand(orderStatusCmd)

	orderStatusCmd.Flags().StringP("method", "m", "", "payment method: cash, vodafone, instapay")
	orderStatusCmd.Flags().String("received", "", "amount actually received in EGP")
	orderStatusCmd.Flags().String("discount", "", "manual order discount percent")
}
