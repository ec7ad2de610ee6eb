// Command connective scores inventories of Boolean connectives for
// complexity and informativeness.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/connective/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
