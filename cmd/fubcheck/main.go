package main

import (
	"fmt"
	"os"

	"transaction_form/internal/cli"
)

func main() {
	root := cli.NewRootCmd(cli.Options{Out: os.Stdout, Err: os.Stderr})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}
