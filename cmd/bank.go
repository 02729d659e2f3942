package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psytests/psytests/internal/questionnaire"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Validate and print a question bank",
	Long: "Prints the bank that would be used with the current settings. " +
		"With --file, validates that YAML file instead.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			cfg.BankFile = file
		}

		bank, err := loadBank(cfg)
		if err != nil {
			return fmt.Errorf("load question bank: %w", err)
		}

		fmt.Printf("%s (%s)\n", bank.Title, bank.Locale)
		if bank.Subtitle != "" {
			fmt.Println(bank.Subtitle)
		}
		fmt.Println()
		for _, c := range bank.Categories {
			qs := bank.QuestionsIn(c.ID)
			fmt.Printf("[%s] %s  %s  %d question(s)\n", c.ID, c.Label, c.Color, len(qs))
		}
		for _, q := range bank.Questions {
			fmt.Printf("\n%d. %s  [%s]\n", q.ID, q.Text, q.Category)
			for _, o := range q.Options {
				fmt.Printf("   %s  %s\n", o.Value, o.Label)
			}
		}
		if cfg.BankFile == "" {
			fmt.Printf("\nBuilt-in locales: %v\n", questionnaire.Locales())
		}
		return nil
	},
}

func init() {
	bankCmd.Flags().StringP("file", "f", "", "YAML bank file to validate")
}
