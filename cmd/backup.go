package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abaad/hive/auth"
)

// backupCmd snapshots the data file into the backups directory.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot the data file into the backups directory",
	RunE:  runBackup,
}

func runBackup(cmd *cobra.Command, args []string) error {
	if err := requirePermission(auth.PermSystemBackup); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	path, err := s.Backup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	color.Green("Backed up %s to %s\n", s.Path(), path)

	return nil
}

func init() {
	rootCmd.AddCommand(backupCmd)
}
