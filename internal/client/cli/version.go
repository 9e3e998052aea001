package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

func (c *Cli) versionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noAppAnnotation: "true"},
		Run: func(_ *cobra.Command, _ []string) {
			c.io.Printf("focuskeeper %s\n", version)
			c.io.Printf("Go version: %s\n", runtime.Version())
		},
	}
}
