package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/psytests/psytests/internal/release"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("psytests", version)

		if check, _ := cmd.Flags().GetBool("check"); !check {
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		status, err := release.NewChecker().Check(ctx, version)
		switch {
		case errors.Is(err, release.ErrDevBuild):
			fmt.Println("Development build; skipping update check.")
			return nil
		case err != nil:
			return fmt.Errorf("check for updates: %w", err)
		case status.UpdateAvailable:
			fmt.Printf("New version %s available: %s\n", status.Latest, status.URL)
		default:
			fmt.Println("Already running the latest version.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
}
