package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(*envFile)
			if err != nil {
				return err
			}
			defer log.Sync()

			gdb, err := openDatabase(cfg, log)
			if err != nil {
				return err
			}
			defer closeDatabase(gdb, log)

			log.Info("schema is up to date", zap.String("db", cfg.DBURL))
			return nil
		},
	}
}
