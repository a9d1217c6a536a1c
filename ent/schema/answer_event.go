package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records a single answered (or timed-out) question within
// a quiz session.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("question_id").
			NotEmpty().
			Comment("Bank ID of the question asked"),
		field.String("topic").
			NotEmpty().
			Comment("Question topic, e.g. greetings, food"),
		field.String("question_type").
			NotEmpty().
			Comment("mcq, fill-in-blank, true-false, voice, ..."),
		field.String("question_text").
			NotEmpty().
			Comment("The prompt shown"),
		field.String("correct_answer").
			NotEmpty().
			Comment("The canonical correct answer"),
		field.String("player_answer").
			Comment("What the player submitted; empty on timeout"),
		field.Bool("correct").
			Comment("Whether the answer was accepted"),
		field.Float("time_secs").
			Comment("Seconds spent on the question"),
		field.Int("mastery_level").
			Default(0).
			Comment("Derived mastery (0-100) after this answer"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("topic"),
		index.Fields("correct"),
	}
}
