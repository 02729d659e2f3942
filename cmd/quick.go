package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/psytests/psytests/internal/flow"
	"github.com/psytests/psytests/internal/insight"
	"github.com/psytests/psytests/internal/questionnaire"
	"github.com/psytests/psytests/internal/scoring"
	qscreen "github.com/psytests/psytests/internal/screens/questionnaire"
	"github.com/psytests/psytests/internal/ui/components"
)

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Take the questionnaire in plain line mode",
	Long: "Runs the questionnaire on stdin/stdout without the full-screen UI. " +
		"Answer with the option number or its text; b goes back, r restarts, q quits.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		bank, err := loadBank(cfg)
		if err != nil {
			return fmt.Errorf("load question bank: %w", err)
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		return runQuick(ctx, os.Stdin, os.Stdout, qscreen.Deps{
			Bank:     bank,
			Attempts: st.AttemptRepo(),
			Insight:  newInsightService(ctx, cfg, st.EventRepo(), nil),
			Sampler:  scoring.NewReferenceSampler(),
			Now:      time.Now,
		})
	},
}

// runQuick drives one line-mode session until q or end of input.
func runQuick(ctx context.Context, in io.Reader, out io.Writer, deps qscreen.Deps) error {
	ctrl, err := flow.New(deps.Bank.Questions)
	if err != nil {
		return err
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Sampler == nil {
		deps.Sampler = scoring.NewReferenceSampler()
	}
	t := questionnaire.TextsFor(deps.Bank.Locale)

	fmt.Fprintf(out, "%s\n(b: %s, r: %s, q: quit)\n", deps.Bank.Title, t.Back, t.Restart)

	sc := bufio.NewScanner(in)
	started := deps.Now()
	for {
		if ctrl.Phase() == flow.PhaseInProgress {
			printQuestion(out, t, ctrl)
		} else {
			fmt.Fprintf(out, "\nr: %s   q: quit\n", t.RestartAgain)
		}
		fmt.Fprint(out, "> ")

		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())

		switch strings.ToLower(line) {
		case "q":
			return nil
		case "r":
			ctrl.Restart()
			started = deps.Now()
			continue
		case "b":
			ctrl.Retreat()
			continue
		}
		if ctrl.Phase() != flow.PhaseInProgress {
			continue
		}

		q := ctrl.Current()
		if line == "" {
			// Enter keeps an existing answer.
			if !ctrl.CanAdvance() {
				continue
			}
		} else {
			o, ok := questionnaire.MatchOption(q, line)
			if !ok {
				fmt.Fprintf(out, "? 1-%d\n", len(q.Options))
				continue
			}
			ctrl.RecordAnswer(q.ID, o.Value)
		}
		ctrl.Advance()

		if ctrl.Phase() == flow.PhaseCompleted {
			finishQuick(ctx, out, t, ctrl, deps, deps.Now().Sub(started))
		}
	}
}

func printQuestion(out io.Writer, t questionnaire.Texts, ctrl *flow.Controller) {
	q := ctrl.Current()
	chosen, _ := ctrl.Answer(q.ID)

	fmt.Fprintf(out, "\n"+t.QuestionOf+"  [%d%%]\n%s\n", ctrl.Index()+1, ctrl.Len(), ctrl.ProgressPercent(), q.Text)
	for i, o := range q.Options {
		mark := " "
		if o.Value == chosen {
			mark = "*"
		}
		fmt.Fprintf(out, " %s %d. %s\n", mark, i+1, o.Label)
	}
}

func finishQuick(ctx context.Context, out io.Writer, t questionnaire.Texts, ctrl *flow.Controller, deps qscreen.Deps, elapsed time.Duration) {
	answers := ctrl.Answers()
	report := scoring.Build(deps.Bank, answers, deps.Sampler)

	fmt.Fprintf(out, "\n✓ %s\n"+t.AnsweredAll+"\n", t.Completed, ctrl.Len())

	if deps.Attempts != nil {
		if _, err := deps.Attempts.SaveAttempt(ctx, report.Record(deps.Bank.Locale, answers, elapsed)); err != nil {
			fmt.Fprintln(out, "could not save attempt:", err)
		}
	}

	ctrl.ViewResults()
	printReport(out, t, report)

	if deps.Insight != nil {
		ins, err := deps.Insight.Explain(ctx, insight.Input{
			Locale:     deps.Bank.Locale,
			Results:    report.Results,
			Comparison: report.Comparison,
		})
		if err != nil {
			fmt.Fprintln(out, "\ninsight unavailable:", err)
			return
		}
		fmt.Fprintf(out, "\n%s: %s\n%s\n", t.Insight, ins.Headline, ins.Summary)
		for _, s := range ins.Suggestions {
			fmt.Fprintf(out, "  • %s\n", s)
		}
	}
}

func printReport(out io.Writer, t questionnaire.Texts, r scoring.Report) {
	labelWidth := 0
	for _, res := range r.Results {
		labelWidth = max(labelWidth, lipgloss.Width(res.Label))
	}
	pad := func(s string) string {
		return s + strings.Repeat(" ", labelWidth-lipgloss.Width(s))
	}

	fmt.Fprintf(out, "\n%s\n", t.YourResults)
	for _, res := range r.Results {
		lipgloss.Fprintf(out, "  %s  %s  %d / %d\n",
			pad(res.Label), components.Bar(res.Percent()/100, 20, nil), res.Score, res.MaxScore)
	}

	c := r.Comparison
	fmt.Fprintf(out, "\n%s\n", t.Comparison)
	fmt.Fprintf(out, "  %s: %.0f%%\n", t.YourAverage, c.UserAverage)
	fmt.Fprintf(out, "  %s: %d%%\n", t.GlobalAverage, c.GlobalAverage)
	fmt.Fprintf(out, "  %s: %d%%\n", t.BetterThan, c.BetterThan)

	fmt.Fprintf(out, "\n%s\n", t.Analysis)
	for i, res := range r.Results {
		ref := 0.0
		if i < len(r.Reference) {
			ref = r.Reference[i]
		}
		fmt.Fprintf(out, "  %s  %s %3.0f%%  %s %3.0f%%\n", pad(res.Label), t.You, res.Percent(), t.Average, ref)
	}
}
