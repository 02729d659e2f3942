package questionnaire

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/psytests/psytests/internal/scoring"
	"github.com/psytests/psytests/internal/ui/components"
	"github.com/psytests/psytests/internal/ui/theme"
)

// cardWidth is the inner width of the central card.
func cardWidth(width int) int {
	return max(min(width-8, 72), 30)
}

func (s *QuestionnaireScreen) View(width, height int) string {
	cw := cardWidth(width)
	tabs := lipgloss.PlaceHorizontal(width, lipgloss.Center, s.tabs.View())

	var body string
	switch {
	case s.tabs.Active == tabResults:
		body = s.renderResults(cw, max(height-lipgloss.Height(tabs)-1, 3))
	case s.ctrl.Phase().Done():
		body = s.renderCompletion(cw)
	default:
		body = s.renderQuestion(cw)
	}

	return tabs + "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func (s *QuestionnaireScreen) renderQuestion(cw int) string {
	t := s.texts
	q := s.ctrl.Current()

	title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(t.TestTitle)
	counter := theme.Hint.Render(fmt.Sprintf(t.QuestionOf, s.ctrl.Index()+1, s.ctrl.Len()))
	head := title + strings.Repeat(" ", max(cw-lipgloss.Width(title)-lipgloss.Width(counter), 1)) + counter

	progress := components.NewProgressBar("", s.ctrl.Progress(), true, cw).View()

	text := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(q.Text)

	next := t.Next + " →"
	if s.ctrl.IsLast() {
		next = t.Finish + " →"
	}
	back := components.Button{Label: "← " + t.Back, Disabled: !s.ctrl.CanRetreat()}.View()
	fwd := components.Button{Label: next, Active: s.ctrl.CanAdvance(), Disabled: !s.ctrl.CanAdvance()}.View()
	gap := max(cw-lipgloss.Width(back)-lipgloss.Width(fwd), 1)
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, back, strings.Repeat(" ", gap), fwd)

	content := strings.Join([]string{head, progress, "", text, "", s.radio.View(), "", buttons}, "\n")
	return theme.Card.Width(cw + 6).Render(content)
}

func (s *QuestionnaireScreen) renderCompletion(cw int) string {
	t := s.texts
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	lines := []string{
		center.Foreground(theme.Success).Bold(true).Render("✓"),
		"",
		center.Foreground(theme.Text).Bold(true).Render(t.Completed),
		center.Foreground(theme.TextDim).Render(fmt.Sprintf(t.AnsweredAll, s.ctrl.Len())),
		"",
		center.Render(components.Button{Label: t.ViewResults, Active: s.cardFocus == focusViewResults}.View()),
		center.Render(components.Button{Label: t.Restart, Active: s.cardFocus == focusRestart}.View()),
	}
	if s.saveErr != nil {
		lines = append(lines, "", center.Foreground(theme.Error).Render(s.saveErr.Error()))
	}

	return theme.Card.BorderForeground(theme.Primary).Width(cw + 6).Render(strings.Join(lines, "\n"))
}

// renderResults draws the results tab. The reference bars are re-sampled
// on every call.
func (s *QuestionnaireScreen) renderResults(cw, height int) string {
	report := scoring.Build(s.deps.Bank, s.ctrl.Answers(), s.deps.Sampler)

	s.results.SetWidth(cw)
	s.results.SetHeight(height)
	s.results.SetContent(s.resultsContent(report, cw))
	return s.results.View()
}

func (s *QuestionnaireScreen) resultsContent(report scoring.Report, cw int) string {
	t := s.texts
	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	var b strings.Builder

	b.WriteString(heading.Render(t.YourResults) + "\n")
	b.WriteString(theme.Hint.Render(t.ByCategory) + "\n\n")
	for _, r := range report.Results {
		b.WriteString(components.ScoreBar{
			Label:    r.Label,
			Value:    fmt.Sprintf("%d/%d", r.Score, r.MaxScore),
			Fraction: r.Percent() / 100,
			Color:    theme.CategoryColor(r.Color),
			Width:    cw,
		}.View())
		b.WriteString("\n\n")
	}

	c := report.Comparison
	b.WriteString(heading.Render(t.Comparison) + "\n")
	b.WriteString(theme.Hint.Render(t.ComparisonHint) + "\n")
	b.WriteString(components.StatRow([]components.StatCard{
		{Value: fmt.Sprintf("%.0f%%", c.UserAverage), Caption: t.YourAverage, Color: theme.Primary},
		{Value: fmt.Sprintf("%d%%", c.GlobalAverage), Caption: t.GlobalAverage, Color: theme.Secondary},
		{Value: fmt.Sprintf("%d%%", c.BetterThan), Caption: t.BetterThan, Color: theme.Info},
	}, cw))
	b.WriteString("\n\n")

	b.WriteString(heading.Render(t.Analysis) + "\n\n")
	labelWidth := max(lipgloss.Width(t.You), lipgloss.Width(t.Average)) + 2
	barWidth := max(cw-labelWidth-6, 8)
	for i, r := range report.Results {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(r.Label) + "\n")
		b.WriteString(components.InlineBar(t.You, labelWidth, r.Percent()/100, barWidth,
			theme.CategoryColor(r.Color), fmt.Sprintf("%3.0f%%", r.Percent())) + "\n")
		if i < len(report.Reference) {
			ref := report.Reference[i]
			b.WriteString(components.InlineBar(t.Average, labelWidth, ref/100, barWidth,
				theme.TextDim, fmt.Sprintf("%3.0f%%", ref)) + "\n")
		}
		b.WriteString("\n")
	}

	if block := s.renderInsight(cw); block != "" {
		b.WriteString(block + "\n\n")
	}

	b.WriteString(components.Button{Label: t.RestartAgain, Active: true}.View())
	return b.String()
}

func (s *QuestionnaireScreen) renderInsight(cw int) string {
	if s.deps.Insight == nil {
		return ""
	}
	t := s.texts
	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(t.Insight)

	switch {
	case s.insightPending:
		return heading + "\n" + s.spinner.View() + " " + theme.Hint.Render(t.InsightLoading)
	case s.insightErr != nil:
		return heading + "\n" + theme.Hint.Width(cw).Render(s.insightErr.Error())
	case s.insight == nil:
		return ""
	}

	body := lipgloss.NewStyle().Width(cw).Foreground(theme.Text)
	lines := []string{
		heading,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(s.insight.Headline),
		body.Render(s.insight.Summary),
	}
	for _, sug := range s.insight.Suggestions {
		lines = append(lines, body.Render("• "+sug))
	}
	return strings.Join(lines, "\n")
}
