package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewAuthCommand creates the auth command
func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Verify the FIO API key and show the account name",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newServices()
			if err != nil {
				return err
			}
			defer svc.close()

			name, err := svc.client.Authenticate(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("Authenticated as %s\n", name)
			return nil
		},
	}

	return cmd
}
