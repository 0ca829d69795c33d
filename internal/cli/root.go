// Package cli implements fubcheck, the operator tool for checking Follow Up
// Boss credentials, browsing agents and deals, and building form links.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"transaction_form/platform/apperr"
	"transaction_form/platform/config"
	"transaction_form/platform/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Exit codes reported by fubcheck.
const (
	ExitFailure           = 1
	ExitMissingCredential = 2
	ExitUpstream          = 3
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps a command error to a process exit code. CRM failures are
// ExitUpstream even when not wrapped in an ExitError.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if apperr.Is(err, apperr.KindUpstream) {
		return ExitUpstream
	}
	return ExitFailure
}

// Options configures the root command. A nil Config is loaded from the
// environment before any subcommand runs.
type Options struct {
	Config *config.Config
	Out    io.Writer
	Err    io.Writer
	Logger *logger.Logger
}

type env struct {
	cfg *config.Config
	out io.Writer
	err io.Writer
	log *logger.Logger
}

var (
	okLabel   = color.New(color.FgGreen, color.Bold)
	failLabel = color.New(color.FgRed, color.Bold)
	dimLabel  = color.New(color.FgHiBlack)
)

// NewRootCmd builds the fubcheck command tree.
func NewRootCmd(opts Options) *cobra.Command {
	e := &env{cfg: opts.Config, out: opts.Out, err: opts.Err, log: opts.Logger}
	if e.out == nil {
		e.out = os.Stdout
	}
	if e.err == nil {
		e.err = os.Stderr
	}
	if e.log == nil {
		e.log = logger.Discard()
	}

	root := &cobra.Command{
		Use:           "fubcheck",
		Short:         "Check Follow Up Boss access for the transaction form",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if e.cfg != nil {
				return nil
			}
			cfg, err := config.LoadOptional()
			if err != nil {
				return &ExitError{Code: ExitFailure, Err: fmt.Errorf("load config: %w", err)}
			}
			e.cfg = cfg
			return nil
		},
	}
	root.SetOut(e.out)
	root.SetErr(e.err)

	root.AddCommand(
		usersCmd(e),
		dealsCmd(e),
		linkCmd(e),
		checkCmd(e),
		tokenCmd(e),
	)
	return root
}

func (e *env) requireAPIKey() error {
	if e.cfg.GetFUBAPIKey() == "" {
		return &ExitError{
			Code: ExitMissingCredential,
			Err:  errors.New("FUB_API_KEY not set; copy .env.example to .env and add your keys"),
		}
	}
	return nil
}

func upstreamFailure(err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	if apperr.Is(err, apperr.KindUpstream) || apperr.Is(err, apperr.KindNotFound) {
		return &ExitError{Code: ExitUpstream, Err: fmt.Errorf("FUB request failed: %w", err)}
	}
	return &ExitError{Code: ExitFailure, Err: fmt.Errorf("request error: %w", err)}
}
