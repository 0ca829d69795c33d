package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"transaction_form/internal/adapters"
	"transaction_form/internal/fub"
	"transaction_form/internal/transactions/domain"

	"github.com/spf13/cobra"
)

func dealsCmd(e *env) *cobra.Command {
	var agentID, category, kind string

	cmd := &cobra.Command{
		Use:   "deals",
		Short: "List deals, optionally for an agent and a buyer/seller + transaction type pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.requireAPIKey(); err != nil {
				return err
			}

			c := domain.Category(strings.ToLower(strings.TrimSpace(category)))
			k := domain.Kind(strings.ToLower(strings.TrimSpace(kind)))
			if (c == "") != (k == "") {
				return &ExitError{Code: ExitFailure, Err: errors.New("--buyer-or-seller and --transaction-type must be given together")}
			}
			if c != "" && !domain.IsValidCombination(c, k) {
				return &ExitError{Code: ExitFailure, Err: fmt.Errorf("invalid combination: %s with %s", c, k)}
			}
			if agentID != "" {
				if _, err := strconv.ParseInt(agentID, 10, 64); err != nil {
					return &ExitError{Code: ExitFailure, Err: errors.New("--agent must be numeric")}
				}
			}

			stageFilter := e.cfg.GetFUBDealStageFilter() && c != ""
			gateway := adapters.NewFUBGateway(fub.NewModule(e.cfg, nil, e.log).Service(), stageFilter)

			deals, err := gateway.ListDeals(cmd.Context(), c, k, agentID)
			if err != nil {
				return upstreamFailure(err)
			}
			if msg := domain.ConditionalMessage(c, k); msg != "" {
				dimLabel.Fprintln(e.out, msg)
			}

			okLabel.Fprint(e.out, "Success: ")
			fmt.Fprintf(e.out, "found %d deals\n", len(deals))
			for _, d := range deals {
				line := fmt.Sprintf("- %s %s", d.ID, d.Name)
				if d.Stage != "" {
					line += " [" + d.Stage + "]"
				}
				fmt.Fprintln(e.out, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&agentID, "agent", "", "FUB user id that owns the deals")
	cmd.Flags().StringVar(&category, "buyer-or-seller", "", "buyer or seller")
	cmd.Flags().StringVar(&kind, "transaction-type", "", "bba, la or uc")
	return cmd
}
