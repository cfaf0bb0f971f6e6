package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abaad/hive/auth"
	"github.com/abaad/hive/models"
)

// printerCmd groups the machine fleet operations.
var printerCmd = &cobra.Command{
	Use:     "printer",
	Short:   "Manage printers and review their wear",
	Aliases: []string{"printers"},
}

var printerAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a printer to the fleet",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPrinterAdd,
}

func runPrinterAdd(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermManagePrinters); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	model, _ := cmd.Flags().GetString("model")
	p := models.NewPrinter(strings.Join(args, " "), model)

	priceStr, _ := cmd.Flags().GetString("price")
	if v := ParseFloat(priceStr, 0); v > 0 {
		p.PurchasePrice = v
	}
	lifetimeStr, _ := cmd.Flags().GetString("lifetime")
	if v := ParseFloat(lifetimeStr, 0); v > 0 {
		p.LifetimeKg = v
	}

	if err := s.SavePrinter(p); err != nil {
		return fmt.Errorf("failed to save printer: %w", err)
	}

	color.Green("Added printer %s: %s (%s over %vkg = %.3f EGP/g depreciation)\n",
		p.ID, p.Name, FormatEGP(p.PurchasePrice), p.LifetimeKg, p.DepreciationPerGram())

	return nil
}

var printerListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List printers with usage and wear",
	Aliases: []string{"ls"},
	RunE:    runPrinterList,
}

func runPrinterList(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermViewPrinters); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	printers := s.AllPrinters()
	if len(printers) == 0 {
		color.HiRed("No printers found\n")
		return nil
	}

	color.Green("Printers: %d\n", len(printers))
	for _, p := range printers {
		fmt.Printf(" %-16s %-24s printed %9s over %s\n",
			p.ID, p.Name, FormatGrams(p.TotalPrintedGrams), models.FormatMinutes(p.TotalPrintTimeMinutes))
		fmt.Printf("   depreciation %s, electricity %s, nozzles %d changed (current at %.0f%%)\n",
			FormatEGP(p.TotalDepreciation()), FormatEGP(p.TotalElectricityCost()),
			p.NozzleChanges, p.NozzleUsagePercent())
	}

	return nil
}

func init() {
	rootCmd.AddCommand(printerCmd)
	printerCmd.AddCommand(printerAddCmd)
	printerCmd.AddCommand(printerListCmd)

	printerAddCmd.Flags().StringP("model", "m", "", "printer model")
	printerAddCmd.Flags().StringP("price", "p", "", "purchase price in EGP")
	printerAddCmd.Flags().String("lifetime", "", "expected lifetime in kg printed")
}
