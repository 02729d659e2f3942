package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/psytests/psytests/internal/release"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update psytests to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		checker := release.NewChecker(release.WithTimeout(2 * time.Minute))
		_, err := checker.Update(ctx, version, func(step string) { fmt.Println(step) })
		switch {
		case err == nil:
			return nil
		case errors.Is(err, release.ErrDevBuild):
			fmt.Println("Cannot update a development build. Install a release build first.")
			return nil
		case errors.Is(err, release.ErrAlreadyLatest):
			fmt.Println("Already running the latest version.")
			return nil
		case errors.Is(err, os.ErrPermission):
			return fmt.Errorf("%w\n\nTry running: sudo psytests update", err)
		}
		return err
	},
}
