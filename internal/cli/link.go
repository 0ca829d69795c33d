package cli

import (
	"fmt"
	"strings"

	"transaction_form/internal/formlinks"
	"transaction_form/internal/transactions/domain"
	"transaction_form/platform/sanitize"

	"github.com/spf13/cobra"
)

func linkCmd(e *env) *cobra.Command {
	var category, kind, agentName, agentEmail, clientName, clientEmail, clientPhone string

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Print the external form link for a buyer/seller + transaction type pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := formlinks.Input{
				Category:    domain.Category(strings.ToLower(strings.TrimSpace(category))),
				Kind:        domain.Kind(strings.ToLower(strings.TrimSpace(kind))),
				AgentEmail:  agentEmail,
				ClientEmail: clientEmail,
				ClientPhone: clientPhone,
			}
			in.AgentFirst, in.AgentLast = sanitize.SplitName(agentName)
			in.ClientFirst, in.ClientLast = sanitize.SplitName(clientName)

			link, err := formlinks.NewBuilder(e.cfg).Build(in)
			if err != nil {
				return &ExitError{Code: ExitFailure, Err: err}
			}
			fmt.Fprintln(e.out, link)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "buyer-or-seller", "", "buyer or seller")
	cmd.Flags().StringVar(&kind, "transaction-type", "", "bba, la or uc")
	cmd.Flags().StringVar(&agentName, "agent-name", "", "agent full name")
	cmd.Flags().StringVar(&agentEmail, "agent-email", "", "agent email")
	cmd.Flags().StringVar(&clientName, "client-name", "", "client full name")
	cmd.Flags().StringVar(&clientEmail, "client-email", "", "client email")
	cmd.Flags().StringVar(&clientPhone, "client-phone", "", "client phone")
	return cmd
}
