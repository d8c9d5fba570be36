package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/migration"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migration.Migrator) error {
			return m.Up()
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations",
	Long: `Roll back migrations, one by default.

Example:
  migrate down      # roll back 1 migration
  migrate down 3    # roll back 3 migrations
  migrate down --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		steps := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("steps must be a positive number, got %q", args[0])
			}
			steps = n
		}
		return withMigrator(func(m *migration.Migrator) error {
			if all {
				return m.Down()
			}
			return m.Steps(-steps)
		})
	},
}

var gotoCmd = &cobra.Command{
	Use:   "goto <version>",
	Short: "Migrate up or down to a version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return withMigrator(func(m *migration.Migrator) error {
			return m.GoTo(uint(version))
		})
	},
}

var forceCmd = &cobra.Command{
	Use:   "force <version>",
	Short: "Set the version without running migrations",
	Long:  `Set the recorded version without running migrations. Use it to clear a dirty state after fixing a failed migration by hand.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return withMigrator(func(m *migration.Migrator) error {
			return m.Force(version)
		})
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop every table, including the migration bookkeeping",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("drop deletes all data; rerun with --yes to confirm")
		}
		return withMigrator(func(m *migration.Migrator) error {
			return m.Drop()
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the applied version and pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migration.Migrator) error {
			status, err := m.Status()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Version: %d", status.Version)
			if status.Dirty {
				fmt.Fprint(out, " (dirty)")
			}
			fmt.Fprintln(out)
			printMigrations(cmd, "Applied", status.Applied)
			printMigrations(cmd, "Pending", status.Pending)
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List migration files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := migration.ListMigrations(migrationsPath)
		if err != nil {
			return err
		}
		printMigrations(cmd, "Migrations", files)
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create <name> [description]",
	Short: "Create an empty up/down migration pair",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		description := ""
		if len(args) == 2 {
			description = args[1]
		}
		mf, err := migration.CreateMigration(migrationsPath, args[0], description)
		if err != nil {
			return err
		}
		log.Info("Migration created",
			zap.Uint("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return nil
	},
}

func printMigrations(cmd *cobra.Command, title string, files []migration.MigrationInfo) {
	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintf(out, "%s: none\n", title)
		return
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = "  " + f.String()
	}
	fmt.Fprintf(out, "%s:\n%s\n", title, strings.Join(names, "\n"))
}

func init() {
	downCmd.Flags().Bool("all", false, "roll back every migration")
	dropCmd.Flags().Bool("yes", false, "confirm dropping all tables")

	rootCmd.AddCommand(upCmd, downCmd, gotoCmd, forceCmd, dropCmd, statusCmd, listCmd, createCmd)
}
