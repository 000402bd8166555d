package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/masudmolla6/bistro-restaurant-server/config"
)

var tokenEmail string

// bistro token --email a@x.com: mint a bearer token with the configured
// secret, for debugging against a running server.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for an email",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		issuer, err := newIssuer()
		if err != nil {
			return err
		}
		token, err := issuer.Issue(map[string]any{"email": tokenEmail})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenEmail, "email", "e", "", "email claim of the token")
	_ = tokenCmd.MarkFlagRequired("email")
}
