package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abaad/hive/auth"
	"github.com/abaad/hive/models"
)

// statsCmd prints the full business snapshot, recomputed from scratch.
var statsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Show business statistics",
	Aliases: []string{"statistics"},
	RunE:    runStats,
}

// statsReport is the YAML export shape: the snapshot plus derived
// margins, which the struct itself only exposes as methods.
type statsReport struct {
	GeneratedAt  string            `yaml:"generated_at"`
	Statistics   models.Statistics `yaml:"statistics"`
	ProfitMargin float64           `yaml:"profit_margin_percent"`
	GrossMargin  float64           `yaml:"gross_margin_percent"`
}

func runStats(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermViewStatistics); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	st := s.Statistics()

	if exportPath, _ := cmd.Flags().GetString("export"); exportPath != "" {
		if err := requirePermission(auth.PermExportData); err != nil {
			return err
		}
		report := statsReport{
			GeneratedAt:  models.NowStr(),
			Statistics:   st,
			ProfitMargin: st.ProfitMargin(),
			GrossMargin:  st.GrossMargin(),
		}
		b, merr := yaml.Marshal(report)
		if merr != nil {
			return fmt.Errorf("failed to encode report: %w", merr)
		}
		if werr := os.WriteFile(exportPath, b, 0o644); werr != nil {
			return fmt.Errorf("failed to write report: %w", werr)
		}
		color.Green("Exported statistics to %s\n", exportPath)
		return nil
	}

	color.Green("Orders\n")
	fmt.Printf("  Total: %d   Completed: %d   R&D: %d\n", st.TotalOrders, st.CompletedOrders, st.RDOrders)
	fmt.Printf("  Revenue: %s   Shipping: %s\n", FormatEGP(st.TotalRevenue), FormatEGP(st.TotalShipping))
	if st.TotalPaymentFees > 0 {
		fmt.Printf("  Payment fees: %s\n", FormatEGP(st.TotalPaymentFees))
	}
	if st.TotalRoundingLoss > 0 {
		fmt.Printf("  Rounding losses: %s\n", FormatEGP(st.TotalRoundingLoss))
	}
	if st.TotalToleranceDiscounts > 0 {
		fmt.Printf("  Tolerance discounts given: %s\n", FormatEGP(st.TotalToleranceDiscounts))
	}

	fmt.Println()
	color.Green("Production\n")
	fmt.Printf("  Printed: %s over %s\n", FormatGrams(st.TotalWeightPrinted), models.FormatMinutes(st.TotalTimePrinted))
	fmt.Printf("  Material: %s   Electricity: %s   Depreciation: %s   Nozzles: %s\n",
		FormatEGP(st.TotalMaterialCost), FormatEGP(st.TotalElectricityCost),
		FormatEGP(st.TotalDepreciationCost), FormatEGP(st.TotalNozzleCost))

	fmt.Println()
	color.Green("Inventory\n")
	fmt.Printf("  Active spools: %d   Remaining: %s   Reserved: %s\n",
		st.ActiveSpools, FormatGrams(st.RemainingFilament), FormatGrams(st.PendingFilament))
	fmt.Printf("  Filament used: %s   Waste: %s\n",
		FormatGrams(st.TotalFilamentUsed), FormatGrams(st.TotalFilamentWaste))

	fmt.Println()
	color.Green("Losses\n")
	fmt.Printf("  Failures: %d costing %s (%s, %s wasted)\n",
		st.TotalFailures, FormatEGP(st.TotalFailureCost),
		FormatGrams(st.FailureFilamentWasted), models.FormatMinutes(st.FailureTimeWasted))
	fmt.Printf("  Operating expenses: %s\n", FormatEGP(st.TotalExpenses))

	fmt.Println()
	color.Green("Bottom line\n")
	fmt.Printf("  Gross profit: %s (%.1f%% margin)\n", FormatEGP(st.GrossProfit), st.GrossMargin())
	profitColor := color.Green
	if st.TotalProfit < 0 {
		profitColor = color.Red
	}
	profitColor("  True profit:  %s (%.1f%% margin)\n", FormatEGP(st.TotalProfit), st.ProfitMargin())
	fmt.Printf("  Customers: %d   Printers: %d\n", st.TotalCustomers, st.TotalPrinters)

	return nil
}

// statsMonthlyCmd shows the month by month trend.
var statsMonthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Show revenue and profit by month",
	RunE:  runStatsMonthly,
}

func runStatsMonthly(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermViewStatistics); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	points := s.MonthlyStats()
	if len(points) == 0 {
		color.HiRed("No orders to report on\n")
		return nil
	}

	if exportPath, _ := cmd.Flags().GetString("export"); exportPath != "" {
		if err := requirePermission(auth.PermExportData); err != nil {
			return err
		}
		b, merr := yaml.Marshal(points)
		if merr != nil {
			return fmt.Errorf("failed to encode report: %w", merr)
		}
		if werr := os.WriteFile(exportPath, b, 0o644); werr != nil {
			return fmt.Errorf("failed to write report: %w", werr)
		}
		color.Green("Exported monthly report to %s\n", exportPath)
		return nil
	}

	color.Green("%-8s %6s %12s %12s %10s\n", "Month", "Orders", "Revenue", "Profit", "Filament")
	for _, p := range points {
		fmt.Printf("%-8s %6d %12s %12s %10s\n",
			p.Month, p.Orders, FormatEGP(p.Revenue), FormatEGP(p.Profit), FormatGrams(p.Filament))
	}

	return nil
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsMonthlyCmd)

	statsCmd.Flags().StringP("export", "e", "", "write the report as YAML to this file")
	statsMonthlyCmd.Flags().StringP("export", "e", "", "write the report as YAML to this file")
}
