package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/abaad/hive/auth"
)

// userCmd manages accounts in the users file. Every subcommand starts by
// authenticating; the manager enforces who may do what from there.
var userCmd = &cobra.Command{
	Use:     "user",
	Short:   "Manage user accounts",
	Aliases: []string{"users"},
}

// promptCredentials asks for a username and password on the terminal.
func promptCredentials() (string, string, error) {
	userPrompt := promptui.Prompt{
		Label:  "Username",
		Stdout: NoBellStdout,
	}
	username, err := userPrompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("cancelled")
	}

	passPrompt := promptui.Prompt{
		Label:  "Password",
		Mask:   '*',
		Stdout: NoBellStdout,
	}
	password, err := passPrompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("cancelled")
	}
	return username, password, nil
}

// loginManager opens the users file and authenticates the operator.
func loginManager() (*auth.Manager, error) {
	if !isInteractiveAllowed(false) {
		return nil, fmt.Errorf("user management needs an interactive terminal")
	}

	m, err := auth.OpenManager(usersPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open users file: %w", err)
	}

	username, password, err := promptCredentials()
	if err != nil {
		return nil, err
	}
	u, err := m.Login(username, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	fmt.Printf("Logged in as %s (%s)\n", u.DisplayName, u.Role)
	return m, nil
}

var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Create a user account (admin only)",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserAdd,
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	m, err := loginManager()
	if err != nil {
		return err
	}

	role := auth.RoleUser
	if admin, _ := cmd.Flags().GetBool("admin"); admin {
		role = auth.RoleAdmin
	}

	passPrompt := promptui.Prompt{
		Label:  fmt.Sprintf("Password for %s", args[0]),
		Mask:   '*',
		Stdout: NoBellStdout,
	}
	password, err := passPrompt.Run()
	if err != nil {
		return fmt.Errorf("cancelled")
	}

	u, err := m.CreateUser(args[0], password, role)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	color.Green("Created %s account %q (%s)\n", u.Role, u.Username, u.ID)

	return nil
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List user accounts (admin only)",
	Aliases: []string{"ls"},
	RunE:    runUserList,
}

func runUserList(cmd *cobra.Command, args []string) error {
	m, err := loginManager()
	if err != nil {
		return err
	}

	users := m.AllUsers()
	if len(users) == 0 {
		return fmt.Errorf("admin access required to list users")
	}

	color.Green("Users: %d\n", len(users))
	for _, u := range users {
		state := "active"
		if !u.IsActive {
			state = "disabled"
		}
		fmt.Printf(" %-14s %-16s %-6s %-8s logins: %d", u.ID, u.Username, u.Role, state, u.LoginCount)
		if u.LastLogin != "" {
			fmt.Printf("  last %s", u.LastLogin)
		}
		fmt.Println()
	}

	return nil
}

var userDeleteCmd = &cobra.Command{
	Use:     "delete <user id>",
	Short:   "Delete a user account (admin only)",
	Aliases: []string{"del"},
	Args:    cobra.ExactArgs(1),
	RunE:    runUserDelete,
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	m, err := loginManager()
	if err != nil {
		return err
	}

	if err := m.DeleteUser(args[0]); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	color.Green("Deleted user %s\n", args[0])

	return nil
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change your own password",
	RunE:  runUserPasswd,
}

func runUserPasswd(cmd *cobra.Command, args []string) error {
	m, err := loginManager()
	if err != nil {
		return err
	}

	oldPrompt := promptui.Prompt{Label: "Current password", Mask: '*', Stdout: NoBellStdout}
	oldPassword, err := oldPrompt.Run()
	if err != nil {
		return fmt.Errorf("cancelled")
	}
	newPrompt := promptui.Prompt{Label: "New password", Mask: '*', Stdout: NoBellStdout}
	newPassword, err := newPrompt.Run()
	if err != nil {
		return fmt.Errorf("cancelled")
	}

	if err := m.ChangePassword(oldPassword, newPassword); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	color.Green("Password changed\n")

	return nil
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userDeleteCmd)
	userCmd.AddCommand(userPasswdCmd)

	userAddCmd.Flags().Bool("admin", false, "grant the admin role")
}
