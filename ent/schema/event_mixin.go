// Package schema describes the stored entities. The store creates the
// matching SQLite tables itself; its tests check the columns against these
// definitions.
package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// SequenceMixin gives a record its global ordering and creation time.
type SequenceMixin struct {
	mixin.Schema
}

func (SequenceMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Monotonically increasing sequence number, shared by all tables"),
		field.Time("timestamp").
			Default(time.Now).
			Immutable().
			Comment("UTC time the record was written"),
	}
}

func (SequenceMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
	}
}
