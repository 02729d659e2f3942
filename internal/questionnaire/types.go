package questionnaire

import "strconv"

// Option is one selectable answer. Value is the token recorded in the
// answer set ("1".."5" for the built-in banks); Label is what the user sees.
type Option struct {
	Value string `yaml:"value" validate:"required"`
	Label string `yaml:"label" validate:"required"`
}

// Question is an immutable multiple-choice prompt.
type Question struct {
	ID       int      `yaml:"id" validate:"required,min=1"`
	Text     string   `yaml:"text" validate:"required"`
	Category string   `yaml:"category" validate:"required"`
	Options  []Option `yaml:"options" validate:"required,min=2,dive"`
}

// Category is a scoring dimension. Color is a hex color used for its bars.
type Category struct {
	ID    string `yaml:"id" validate:"required"`
	Label string `yaml:"label" validate:"required"`
	Color string `yaml:"color" validate:"required,hexcolor"`
}

// Bank is a complete questionnaire: its categories and the ordered
// question sequence.
type Bank struct {
	Title      string     `yaml:"title" validate:"required"`
	Subtitle   string     `yaml:"subtitle"`
	Locale     string     `yaml:"locale" validate:"required,bcp47_language_tag"`
	Categories []Category `yaml:"categories" validate:"required,min=1,dive"`
	Questions  []Question `yaml:"questions" validate:"required,min=1,dive"`
}

// Question returns the question with the given ID.
func (b *Bank) Question(id int) (Question, bool) {
	for _, q := range b.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Category returns the category with the given ID.
func (b *Bank) Category(id string) (Category, bool) {
	for _, c := range b.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// QuestionsIn returns the questions scored under the given category, in
// bank order.
func (b *Bank) QuestionsIn(categoryID string) []Question {
	var out []Question
	for _, q := range b.Questions {
		if q.Category == categoryID {
			out = append(out, q)
		}
	}
	return out
}

// Option returns the option carrying the given value token.
func (q Question) Option(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// MaxValue is the highest numeric option token. Non-numeric tokens count as 0.
func (q Question) MaxValue() int {
	best := 0
	for _, o := range q.Options {
		if v := TokenValue(o.Value); v > best {
			best = v
		}
	}
	return best
}

// TokenValue converts a value token to its score. Anything that is not a
// plain integer scores 0.
func TokenValue(token string) int {
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0
	}
	return v
}
