package main

import (
	"fmt"
	"os"

	"github.com/drennan/optmix/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands report their own failures through the formatter; only
		// flag and usage errors still need printing here.
		if cli.GetExitCode(err) == cli.ExitFailure {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
