package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abaad/hive/auth"
)

// orderDeleteCmd soft-deletes an order, returning its filament unless
// told otherwise. --hard skips the recycle bin entirely.
var orderDeleteCmd = &cobra.Command{
	Use:     "delete <order>",
	Short:   "Delete an order, returning its filament to the spools",
	Aliases: []string{"del"},
	Args:    cobra.ExactArgs(1),
	RunE:    runOrderDelete,
}

func runOrderDelete(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermDeleteOrder); err != nil {
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

	hard, _ := cmd.Flags().GetBool("hard")
	keepFilament, _ := cmd.Flags().GetBool("keep-filament")

	if err := s.DeleteOrder(o.ID, !hard, !keepFilament); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if hard {
		color.Green("Permanently deleted order #%d\n", o.OrderNumber)
	} else {
		color.Green("Deleted order #%d (restore with: hive order restore %s)\n", o.OrderNumber, o.ID)
	}
	if !keepFilament {
		fmt.Println("Claimed filament has been returned to the spools.")
	}

	return nil
}

// orderRestoreCmd brings a soft-deleted order back.
var orderRestoreCmd = &cobra.Command{
	Use:   "restore <order id>",
	Short: "Restore a soft-deleted order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderRestore,
}

func runOrderRestore(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermDeleteOrder); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	if err := s.RestoreOrder(args[0]); err != nil {
		return fmt.Errorf("failed to restore order: %w", err)
	}

	o := s.GetOrder(args[0])
	if o != nil {
		color.Green("Restored order #%d for %s\n", o.OrderNumber, o.CustomerName)
		color.Yellow("Spool claims were not re-reserved; reassign spools before confirming\n")
	} else {
		color.Green("Restored order %s\n", args[0])
	}

	return nil
}

func init() {
	orderCmd.AddCommand(orderDeleteCmd)
	orderCmd.AddCommand(orderRestoreCmd)

	orderDeleteCmd.Flags().Bool("hard", false, "delete permanently instead of moving to the recycle bin")
	orderDeleteCmd.Flags().Bool("keep-filament", false, "do not return claimed filament to the spools")
}
