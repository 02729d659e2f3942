package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/psytests/psytests/internal/store"
	"github.com/psytests/psytests/internal/ui/components"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStoreFromFlags(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		attempts, err := st.AttemptRepo().ListAttempts(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Println("No attempts recorded yet.")
			return nil
		}

		fmt.Printf("%-36s  %-16s  %-6s  %7s  %7s  %s\n",
			"ID", "Date", "Lang", "Average", "Better", "Time")
		fmt.Println(strings.Repeat("─", 92))
		for _, a := range attempts {
			fmt.Printf("%-36s  %-16s  %-6s  %6.0f%%  %6d%%  %d:%02d\n",
				a.ID,
				a.Timestamp.Local().Format("2006-01-02 15:04"),
				a.BankLocale,
				a.Average,
				a.BetterThan,
				a.DurationSecs/60, a.DurationSecs%60,
			)
		}
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the category breakdown and answers of one attempt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		a, err := st.AttemptRepo().GetAttempt(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("attempt %s not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("get attempt: %w", err)
		}

		fmt.Printf("ID:        %s\n", a.ID)
		fmt.Printf("Time:      %s\n", a.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Language:  %s\n", a.BankLocale)
		fmt.Printf("Duration:  %d:%02d\n", a.DurationSecs/60, a.DurationSecs%60)
		fmt.Printf("Average:   %.0f%%\n", a.Average)
		fmt.Printf("Better:    %d%%\n", a.BetterThan)

		fmt.Println()
		labelWidth := 0
		for _, c := range a.Categories {
			labelWidth = max(labelWidth, len([]rune(c.Label)))
		}
		for _, c := range a.Categories {
			frac := 0.0
			if c.MaxScore > 0 {
				frac = float64(c.Score) / float64(c.MaxScore)
			}
			label := c.Label + strings.Repeat(" ", labelWidth-len([]rune(c.Label)))
			// lipgloss.Printf downsamples the bar colors to what stdout supports.
			lipgloss.Printf("%s  %s  %d / %d\n", label, components.Bar(frac, 20, nil), c.Score, c.MaxScore)
		}

		// The bank may have changed since; print raw tokens for unknown IDs.
		bank, _ := loadBank(cfg)
		ids := make([]int, 0, len(a.Answers))
		for id := range a.Answers {
			ids = append(ids, id)
		}
		slices.Sort(ids)

		fmt.Println()
		for _, id := range ids {
			value := a.Answers[id]
			if bank != nil {
				if q, ok := bank.Question(id); ok {
					answer := value
					if o, ok := q.Option(value); ok {
						answer = o.Label
					}
					fmt.Printf("%d. %s\n   → %s\n", id, q.Text, answer)
					continue
				}
			}
			fmt.Printf("%d. → %s\n", id, value)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyCmd.AddCommand(historyViewCmd)
}
