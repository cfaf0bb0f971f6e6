package cmd

import (
	"github.com/spf13/cobra"
)

// orderCmd groups everything that touches customer orders.
var orderCmd = &cobra.Command{
	Use:     "order",
	Short:   "Create, price, and track print orders",
	Aliases: []string{"orders", "o"},
}

func init() {
	rootCmd.AddCommand(orderCmd)
}
