package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abaad/hive/auth"
	"github.com/abaad/hive/models"
)

// orderListCmd lists orders, newest first.
var orderListCmd = &cobra.Command{
	Use:     "list [search]",
	Short:   "List orders, optionally filtered",
	Aliases: []string{"ls"},
	RunE:    runOrderList,
}

func runOrderList(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermViewOrder); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	var orders []models.Order
	switch {
	case len(args) > 0:
		orders = s.SearchOrders(args[0])
	default:
		orders = s.AllOrders()
	}

	if statusStr, _ := cmd.Flags().GetString("status"); statusStr != "" {
		status, ok := parseOrderStatus(statusStr)
		if !ok {
			return fmt.Errorf("unknown status %q", statusStr)
		}
		kept := orders[:0]
		for _, o := range orders {
			if o.Status == status {
				kept = append(kept, o)
			}
		}
		orders = kept
	}
	if rdOnly, _ := cmd.Flags().GetBool("rd"); rdOnly {
		kept := orders[:0]
		for _, o := range orders {
			if o.IsRDProject {
				kept = append(kept, o)
			}
		}
		orders = kept
	}
	if deleted, _ := cmd.Flags().GetBool("deleted"); deleted {
		orders = s.DeletedOrders()
	}

	if len(orders) == 0 {
		color.HiRed("No orders found\n")
		return nil
	}

	color.Green("Orders: %d\n", len(orders))
	for _, o := range orders {
		tag := ""
		if o.IsRDProject {
			tag = " [R&D]"
		}
		fmt.Printf(" #%-4d %-12s %-20s %3d parts  %8s  %s%s\n",
			o.OrderNumber, statusLabel(o.Status), TruncateFront(o.CustomerName, 20),
			o.ItemCount(), FormatEGP(o.Total), o.CreatedDate, tag)
	}

	return nil
}

func init() {
	orderCmd.AddCommand(orderListCmd)

	orderListCmd.Flags().StringP("status", "s", "", "only orders in this status")
	orderListCmd.Flags().Bool("rd", false, "only R&D projects")
	orderListCmd.Flags().Bool("deleted", false, "show soft-deleted orders instead")
}
