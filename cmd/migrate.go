package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/killallgit/interviewcut/internal/database"
	"github.com/killallgit/interviewcut/internal/models"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the history and job database schema",
	Long: `Manage the SQLite schema used by the job queue and interview history.

serve migrates on start, so these commands are only needed to prepare
or inspect a database ahead of time.

Available subcommands:
  up      - Create or update every table
  status  - Show which tables exist`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update every table",
	RunE:  runMigrateUp,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which tables exist",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateStatusCmd)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	db, err := database.Open(appConfig.Database, newLogger(cmd))
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	defer db.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Database %s is up to date\n", appConfig.Database.Path)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	db, err := database.Initialize(database.OptionsFromConfig(appConfig.Database, newLogger(cmd)))
	if err != nil {
		return err
	}
	defer db.Close()

	tables := []interface{ TableName() string }{
		models.Job{},
		models.InterviewRecord{},
		models.FragmentRecord{},
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tSTATUS")
	for _, t := range tables {
		status := "pending"
		if db.Migrator().HasTable(t.TableName()) {
			status = "applied"
		}
		fmt.Fprintf(w, "%s\t%s\n", t.TableName(), status)
	}
	return w.Flush()
}
