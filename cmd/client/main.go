package main

import (
	"fmt"
	"os"

	"github.com/iudanet/focuskeeper/internal/client/cli"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	version := fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit)
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
