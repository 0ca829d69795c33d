package cli

import (
	"errors"
	"fmt"
	"time"

	"transaction_form/platform/httpkit"

	"github.com/spf13/cobra"
)

func tokenCmd(e *env) *cobra.Command {
	var subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the /api/forms admin endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !e.cfg.IsAdminEnabled() {
				return &ExitError{Code: ExitMissingCredential, Err: errors.New("ADMIN_JWT_SECRET not set")}
			}
			token, err := httpkit.IssueAdminToken(e.cfg.GetAdminJWTSecret(), subject, ttl)
			if err != nil {
				return &ExitError{Code: ExitFailure, Err: err}
			}
			fmt.Fprintln(e.out, token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
