// Command storytime manages a local collection of titled rich-text stories.
package main

import (
	"os"

	"github.com/roach88/storytime/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
