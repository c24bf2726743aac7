// Command rcc validates, runs and journals reactive collection scenarios.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/rcc/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
