package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abaad/hive/auth"
	"github.com/abaad/hive/models"
)

// failureCmd groups failed-print bookkeeping.
var failureCmd = &cobra.Command{
	Use:     "failure",
	Short:   "Record and review failed prints",
	Aliases: []string{"failures", "fail"},
}

var failureAddCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Record a failed print and its losses",
	Long: `Record a failed print. Wasted filament is deducted from the
spool when one is named. Known reasons:
` + strings.Join(reasonNames(), ", "),
	Args: cobra.MinimumNArgs(1),
	RunE: runFailureAdd,
}

func reasonNames() []string {
	out := make([]string, 0, len(models.FailureReasons))
	for _, r := range models.FailureReasons {
		out = append(out, string(r))
	}
	return out
}

// parseFailureReason maps loose input onto a known reason, falling back
// to Other.
func parseFailureReason(s string) models.FailureReason {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, r := range models.FailureReasons {
		if strings.ToLower(string(r)) == needle {
			return r
		}
	}
	return models.ReasonOther
}

func runFailureAdd(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermManageInventory); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	f := models.NewPrintFailure()
	f.Description = strings.Join(args, " ")

	if reason, _ := cmd.Flags().GetString("reason"); reason != "" {
		f.Reason = parseFailureReason(reason)
	}
	wastedStr, _ := cmd.Flags().GetString("wasted")
	f.FilamentWastedGrams = ParseFloat(wastedStr, 0)
	timeStr, _ := cmd.Flags().GetString("time")
	f.TimeWastedMinutes = ParseInt(timeStr, 0)

	if spoolID, _ := cmd.Flags().GetString("spool"); spoolID != "" {
		sp := s.GetSpool(spoolID)
		if sp == nil {
			return fmt.Errorf("no spool with id %q", spoolID)
		}
		f.SpoolID = spoolID
		f.Color = sp.Color
	}

	if orderRef, _ := cmd.Flags().GetString("order"); orderRef != "" {
		o, oerr := resolveOrder(s, orderRef)
		if oerr != nil {
			return oerr
		}
		f.Source = models.SourceCustomerOrder
		if o.IsRDProject {
			f.Source = models.SourceRDProject
		}
		f.OrderID = o.ID
		f.OrderNumber = o.OrderNumber
		f.CustomerName = o.CustomerName
	}

	if err := s.SaveFailure(f); err != nil {
		return fmt.Errorf("failed to save failure: %w", err)
	}

	color.Red("Recorded failure (%s): %s lost, total loss %s\n",
		f.Reason, FormatGrams(f.FilamentWastedGrams), FormatEGP(f.TotalLoss))
	if f.SpoolID != "" {
		fmt.Printf("Deducted %s from spool %s\n", FormatGrams(f.FilamentWastedGrams), f.SpoolID)
	}

	return nil
}

var failureListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List failed prints, newest first",
	Aliases: []string{"ls"},
	RunE:    runFailureList,
}

func runFailureList(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermViewInventory); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	var failures []models.PrintFailure
	if reason, _ := cmd.Flags().GetString("reason"); reason != "" {
		failures = s.FailuresByReason(parseFailureReason(reason))
	} else {
		failures = s.AllFailures()
	}

	if len(failures) == 0 {
		color.Green("No failures recorded\n")
		return nil
	}

	totalLoss := 0.0
	for _, f := range failures {
		totalLoss += f.TotalLoss
	}
	color.Red("Failures: %d, total loss %s\n", len(failures), FormatEGP(totalLoss))
	for _, f := range failures {
		ref := ""
		if f.OrderNumber > 0 {
			ref = fmt.Sprintf(" (order #%d)", f.OrderNumber)
		}
		fmt.Printf(" %s  %-18s %8s wasted  %9s  %s%s\n",
			f.Date, f.Reason, FormatGrams(f.FilamentWastedGrams), FormatEGP(f.TotalLoss),
			TruncateFront(f.Description, 32), ref)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(failureCmd)
	failureCmd.AddCommand(failureAddCmd)
	failureCmd.AddCommand(failureListCmd)

	failureAddCmd.Flags().StringP("reason", "r", "", "failure reason")
	failureAddCmd.Flags().StringP("wasted", "w", "", "filament wasted in grams")
	failureAddCmd.Flags().StringP("time", "t", "", "print time wasted in minutes")
	failureAddCmd.Flags().String("spool", "", "spool the waste came off")
	failureAddCmd.Flags().String("order", "", "order the failed print belonged to")

	failureListCmd.Flags().StringP("reason", "r", "", "only failures with this reason")
}
