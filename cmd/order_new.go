package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abaad/hive/auth"
	"github.com/abaad/hive/models"
)

// orderNewCmd starts a draft order for a customer.
var orderNewCmd = &cobra.Command{
	Use:   "new <customer name>",
	Short: "Start a new draft order",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runOrderNew,
}

func runOrderNew(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermCreateOrder); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	name := strings.Join(args, " ")
	phone, err := cmd.Flags().GetString("phone")
	if err != nil {
		return fmt.Errorf("failed to get phone flag: %w", err)
	}

	customer, err := s.FindOrCreateCustomer(name, phone)
	if err != nil {
		return fmt.Errorf("failed to resolve customer: %w", err)
	}

	o := models.NewOrder()
	o.CustomerID = customer.ID
	o.CustomerName = customer.Name
	o.CustomerPhone = customer.Phone

	if rd, _ := cmd.Flags().GetBool("rd"); rd {
		o.IsRDProject = true
	}
	if notes, _ := cmd.Flags().GetString("notes"); notes != "" {
		o.Notes = notes
	}
	if shipping, _ := cmd.Flags().GetFloat64("shipping"); shipping > 0 {
		o.ShippingCost = shipping
	}

	if err := s.SaveOrder(o, false); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	color.Green("Created order #%d (%s) for %s\n", o.OrderNumber, o.ID, customer.Name)
	if o.IsRDProject {
		fmt.Println("Marked as R&D: billed at production cost, zero profit.")
	}
	fmt.Println("Add parts with: hive order item add", "#"+fmt.Sprint(o.OrderNumber))

	return nil
}

func init() {
	orderCmd.AddCommand(orderNewCmd)

	orderNewCmd.Flags().StringP("phone", "p", "", "customer phone, used to match an existing customer")
	orderNewCmd.Flags().Bool("rd", false, "mark as an internal R&D project")
	orderNewCmd.Flags().String("notes", "", "free-form notes on the order")
	orderNewCmd.Flags().Float64("shipping", 0, "shipping cost in EGP")
}
