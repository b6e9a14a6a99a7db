package main

import (
	"github.com/spf13/cobra"

	"github.com/miounet11/ccjk-sub004/internal/audit"
	"github.com/miounet11/ccjk-sub004/internal/codex"
)

func migrateCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run the codex config field-rename migration",
		Long: `Renames the legacy env_key provider field to auth_env. The migration
normally runs automatically, exactly once; --force re-runs the check even
when the migrated flag is already set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if force {
				st.CodexMigrated = false
			}

			m := codex.NewManager(codex.DefaultConfigPath())
			migrated, warn := m.MigrateOnce(st, guard, backupDir())
			if warn != nil {
				printWarn("migrate.warn", warn)
				recordEvent(audit.CategoryCodex, "migrate", m.Path(), audit.StatusWarning, warn.Error())
				return nil
			}

			if err := st.Save(ccjkDir); err != nil {
				return err
			}

			if migrated {
				printOK("migrate.done", m.Path())
				recordEvent(audit.CategoryCodex, "migrate", m.Path(), audit.StatusSuccess, "")
			} else {
				printOK("migrate.clean")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "re-run even if already marked migrated")
	return cmd
}
