package cli

import (
	"fmt"
	"strings"

	"transaction_form/internal/fub"
	"transaction_form/platform/cache"

	"github.com/spf13/cobra"
)

func usersCmd(e *env) *cobra.Command {
	var show int
	var refresh bool

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List Follow Up Boss users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.requireAPIKey(); err != nil {
				return err
			}
			ctx := cmd.Context()

			// Shares the API's roster cache when Redis is configured.
			rdb, err := cache.NewRedisClient(ctx, e.cfg)
			if err != nil {
				return &ExitError{Code: ExitFailure, Err: err}
			}
			if rdb != nil {
				defer func() { _ = rdb.Close() }()
			}

			crm := fub.NewModule(e.cfg, rdb, e.log).Service()
			if refresh {
				if err := crm.ClearCache(ctx); err != nil {
					return &ExitError{Code: ExitFailure, Err: fmt.Errorf("clear agent cache: %w", err)}
				}
				dimLabel.Fprintln(e.out, "agent cache cleared")
			}

			agents, err := crm.ListAgents(ctx)
			if err != nil {
				return upstreamFailure(err)
			}

			okLabel.Fprint(e.out, "Success: ")
			fmt.Fprintf(e.out, "found %d users (showing up to %d):\n", len(agents), show)
			for i, a := range agents {
				if i >= show {
					break
				}
				line := strings.Join(strings.Fields(fmt.Sprintf("- %d %s %s %s", a.ID, a.FirstName, a.LastName, a.Email)), " ")
				fmt.Fprintln(e.out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&show, "show", "n", 5, "number of users to print")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "drop the cached agent roster first")
	return cmd
}
