package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abaad/hive/auth"
	"github.com/abaad/hive/models"
)

// expenseCmd groups business expense bookkeeping.
var expenseCmd = &cobra.Command{
	Use:     "expense",
	Short:   "Record and review business expenses",
	Aliases: []string{"expenses", "exp"},
}

var expenseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Record a business expense",
	Long: `Record a business expense. Known categories:
` + strings.Join(categoryNames(), ", ") + `

Filament purchases are tracked as inventory and excluded from the
operating expenses in profit figures.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExpenseAdd,
}

func categoryNames() []string {
	out := make([]string, 0, len(models.ExpenseCategories))
	for _, c := range models.ExpenseCategories {
		out = append(out, string(c))
	}
	return out
}

// parseExpenseCategory maps loose input onto a known category, falling
// back to Other.
func parseExpenseCategory(s string) models.ExpenseCategory {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, c := range models.ExpenseCategories {
		if strings.ToLower(string(c)) == needle {
			return c
		}
	}
	return models.ExpenseOtherCat
}

func runExpenseAdd(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermViewFinancial); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	e := models.NewExpense()
	e.Name = strings.Join(args, " ")

	amountStr, _ := cmd.Flags().GetString("amount")
	e.Amount = ParseFloat(amountStr, 0)
	if e.Amount <= 0 {
		return fmt.Errorf("a positive --amount in EGP is required")
	}
	qtyStr, _ := cmd.Flags().GetString("qty")
	e.Quantity = ParseInt(qtyStr, 1)
	if e.Quantity < 1 {
		e.Quantity = 1
	}

	if category, _ := cmd.Flags().GetString("category"); category != "" {
		e.Category = parseExpenseCategory(category)
	}
	if supplier, _ := cmd.Flags().GetString("supplier"); supplier != "" {
		e.Supplier = supplier
	}
	if notes, _ := cmd.Flags().GetString("notes"); notes != "" {
		e.Description = notes
	}

	if err := s.SaveExpense(e); err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}

	color.Green("Recorded %s expense: %s x%d = %s\n", e.Category, e.Name, e.Quantity, FormatEGP(e.TotalCost))

	return nil
}

var expenseListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List expenses, newest first",
	Aliases: []string{"ls"},
	RunE:    runExpenseList,
}

func runExpenseList(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermViewFinancial); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	var expenses []models.Expense
	if category, _ := cmd.Flags().GetString("category"); category != "" {
		expenses = s.ExpensesByCategory(parseExpenseCategory(category))
	} else {
		expenses = s.AllExpenses()
	}

	if len(expenses) == 0 {
		color.Green("No expenses recorded\n")
		return nil
	}

	total := 0.0
	for _, e := range expenses {
		total += e.TotalCost
	}
	color.Green("Expenses: %d, total %s\n", len(expenses), FormatEGP(total))
	for _, e := range expenses {
		fmt.Printf(" %s  %-12s %-28s x%-3d %10s\n",
			e.Date, e.Category, TruncateFront(e.Name, 28), e.Quantity, FormatEGP(e.TotalCost))
	}

	return nil
}

func init() {
	rootCmd.AddCommand(expenseCmd)
	expenseCmd.AddCommand(expenseAddCmd)
	expenseCmd.AddCommand(expenseListCmd)

	expenseAddCmd.Flags().StringP("amount", "a", "", "unit price in EGP (required)")
	expenseAddCmd.Flags().StringP("qty", "q", "1", "quantity purchased")
	expenseAddCmd.Flags().StringP("category", "c", "", "expense category")
	expenseAddCmd.Flags().String("supplier", "", "where it was bought")
	expenseAddCmd.Flags().String("notes", "", "description")

	expenseListCmd.Flags().StringP("category", "c", "", "only expenses in this category")
}
