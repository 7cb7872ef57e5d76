package main

import (
	"os"

	"github.com/jakoblorz/wdk-wizard/internal/cli"
)

func main() {
	err := cli.Execute()
	cli.ReportError(os.Stderr, err)
	os.Exit(cli.ExitCode(err))
}
