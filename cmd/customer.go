package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abaad/hive/auth"
	"github.com/abaad/hive/models"
)

// customerCmd groups customer book operations.
var customerCmd = &cobra.Command{
	Use:     "customer",
	Short:   "Look up customers and their order history",
	Aliases: []string{"customers", "c"},
}

var customerListCmd = &cobra.Command{
	Use:     "list [search]",
	Short:   "List customers, optionally filtered by name or phone",
	Aliases: []string{"ls"},
	RunE:    runCustomerList,
}

func runCustomerList(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermViewCustomers); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	var customers []models.Customer
	if len(args) > 0 {
		customers = s.SearchCustomers(strings.Join(args, " "))
	} else {
		customers = s.AllCustomers()
	}

	if len(customers) == 0 {
		color.HiRed("No customers found\n")
		return nil
	}

	color.Green("Customers: %d\n", len(customers))
	for _, c := range customers {
		fmt.Printf(" %-10s %-24s %-14s %3d orders  %10s\n",
			c.ID, TruncateFront(c.Name, 24), c.Phone, c.TotalOrders, FormatEGP(c.TotalSpent))
	}

	return nil
}

var customerShowCmd = &cobra.Command{
	Use:   "show <customer id>",
	Short: "Show a customer and their orders",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomerShow,
}

func runCustomerShow(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermViewCustomers); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	c := s.GetCustomer(args[0])
	if c == nil {
		return fmt.Errorf("no customer with id %q", args[0])
	}

	color.Green("%s\n", c.Name)
	if c.Phone != "" {
		fmt.Printf("Phone: %s\n", c.Phone)
	}
	if c.Email != "" {
		fmt.Printf("Email: %s\n", c.Email)
	}
	if c.Address != "" {
		fmt.Printf("Address: %s\n", c.Address)
	}
	fmt.Printf("Customer since: %s\n", c.CreatedDate)
	fmt.Printf("Orders: %d, total spent %s\n", c.TotalOrders, FormatEGP(c.TotalSpent))
	if c.Notes != "" {
		fmt.Printf("Notes: %s\n", c.Notes)
	}

	orders := s.CustomerOrders(c.ID)
	if len(orders) > 0 {
		fmt.Println()
		for _, o := range orders {
			fmt.Printf(" #%-4d %-12s %3d parts  %8s  %s\n",
				o.OrderNumber, statusLabel(o.Status), o.ItemCount(), FormatEGP(o.Total), o.CreatedDate)
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(customerCmd)
	customerCmd.AddCommand(customerListCmd)
	customerCmd.AddCommand(customerShowCmd)
}
