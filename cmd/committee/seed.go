package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func seedCommand() *cobra.Command {
	var ownerEmail string
	cmd := &cobra.Command{
		Use:   "seed-defaults",
		Short: "Create the default motion set for a registered user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB(cfg.DB.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			app, err := wire(db)
			if err != nil {
				return err
			}
			owner, err := app.users.GetByEmail(cmd.Context(), ownerEmail)
			if err != nil {
				return fmt.Errorf("find owner %q: %w", ownerEmail, err)
			}
			set, types, err := app.catalog.CreateDefaultSet(cmd.Context(), owner.ID)
			if err != nil {
				return err
			}
			logger.Info("default motion set created", "motion_set_id", set.ID, "owner_id", owner.ID, "types", len(types))
			fmt.Fprintln(cmd.OutOrStdout(), set.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&ownerEmail, "owner-email", "", "email of the motion set owner")
	_ = cmd.MarkFlagRequired("owner-email")
	return cmd
}
