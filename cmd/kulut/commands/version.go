package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// SetVersionInfo updates the version variables with build-time values.
func SetVersionInfo(version, commit, buildTime string) {
	if version != "" {
		Version = version
	}
	if commit != "" {
		Commit = commit
	}
	if buildTime != "" {
		BuildTime = buildTime
	}
}

func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run:   runVersion,
	}

	cmd.Flags().Bool("short", false, "show only the version number")

	return cmd
}

func runVersion(cmd *cobra.Command, args []string) {
	if short, _ := cmd.Flags().GetBool("short"); short {
		fmt.Println(Version)
		return
	}

	fmt.Printf("kulut %s\n", Version)
	fmt.Printf("  commit: %s\n", Commit)
	fmt.Printf("  built:  %s\n", BuildTime)
}
