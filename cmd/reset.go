package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStoreFromFlags(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.AttemptRepo()
		n, err := repo.CountAttempts(ctx)
		if err != nil {
			return fmt.Errorf("count attempts: %w", err)
		}
		if n == 0 {
			fmt.Println("Nothing to delete.")
			return nil
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Printf("Delete %d stored attempts? [y/N] ", n)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		deleted, err := repo.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("delete attempts: %w", err)
		}
		fmt.Printf("Deleted %d attempts.\n", deleted)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
