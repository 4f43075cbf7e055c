package cmd

import (
	"errors"

	"autocatalog/db"
	"autocatalog/services"

	"github.com/spf13/cobra"
)

type createUserOptions struct {
	email     string
	password  string
	superuser bool
}

func newCreateUserCommand(envFile *string) *cobra.Command {
	opts := &createUserOptions{}
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Add a user that can log in to the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.email == "" || opts.password == "" {
				return errors.New("--email and --password are required")
			}

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

			users := services.NewUserService(db.NewStore(gdb), log)
			_, err = users.CreateUser(cmd.Context(), opts.email, opts.password, opts.superuser)
			return err
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.email, "email", "", "login email")
	fs.StringVar(&opts.password, "password", "", "login password")
	fs.BoolVar(&opts.superuser, "superuser", false, "grant superuser")
	return cmd
}
