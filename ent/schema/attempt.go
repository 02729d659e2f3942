package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Attempt is one completed pass through a question bank.
type Attempt struct {
	ent.Schema
}

func (Attempt) Mixin() []ent.Mixin {
	return []ent.Mixin{SequenceMixin{}}
}

func (Attempt) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable().
			Comment("UUID assigned on save"),
		field.String("bank_locale").
			Default("").
			Comment("Locale of the bank the attempt was taken with"),
		field.JSON("answers", map[int]string{}).
			Comment("Question ID to selected option value"),
		field.JSON("categories", []map[string]any{}).
			Comment("Per-category score and maximum, in bank order"),
		field.Float("average").
			Default(0).
			Comment("Mean category percentage"),
		field.Int("better_than").
			Default(0).
			Comment("Unclamped comparison figure shown with the result"),
		field.Int("duration_secs").
			Default(0).
			NonNegative(),
	}
}
