package insight

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/psytests/psytests/internal/questionnaire"
)

const systemPrompt = `You are a warm, careful coach commenting on the results of a short self-assessment questionnaire. You are not a clinician: never diagnose, never mention disorders, and keep the tone encouraging.`

// languageName returns the English name of the language the reply should
// be written in.
func languageName(locale string) string {
	tag := questionnaire.MatchLocale(locale)
	base, _ := tag.Base()
	if name := display.English.Languages().Name(language.Make(base.String())); name != "" {
		return name
	}
	return "English"
}

func buildUserMessage(in Input) string {
	var b strings.Builder

	b.WriteString("Category results (score / max, percent):\n")
	for _, r := range in.Results {
		fmt.Fprintf(&b, "- %s: %d / %d (%.0f%%)\n", r.Label, r.Score, r.MaxScore, r.Percent())
	}
	fmt.Fprintf(&b, "\nAverage: %.0f%%\n", in.Comparison.UserAverage)
	fmt.Fprintf(&b, "Reference average of other participants: %d%%\n", in.Comparison.GlobalAverage)

	fmt.Fprintf(&b, `
Instructions:
1. Write the headline, summary and suggestions in %s.
2. Refer to categories by the names given above.
3. Base suggestions on the lowest-scoring categories. Give at most three.
4. Plain text only. No markdown.`, languageName(in.Locale))

	return b.String()
}
