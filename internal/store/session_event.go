package store

import (
	"context"
	"fmt"

	"github.com/abhisek/fluence/ent"
	"github.com/abhisek/fluence/ent/sessionevent"
)

func (r *eventRepo) AppendSession(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.SessionEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetAction(data.Action).
		SetPlayer(data.Player).
		SetQuestionsServed(data.QuestionsServed).
		SetCorrectAnswers(data.CorrectAnswers).
		SetScore(data.Score).
		SetMaxStreak(data.MaxStreak).
		SetDurationSecs(data.DurationSecs).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessions(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	q := r.client.SessionEvent.Query().
		Order(ent.Desc(sessionevent.FieldSequence))

	if opts.After > 0 {
		q = q.Where(sessionevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		q = q.Where(sessionevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		q = q.Where(sessionevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		q = q.Where(sessionevent.TimestampLTE(opts.To))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	events, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}

	out := make([]SessionEventRecord, len(events))
	for i, e := range events {
		out[i] = SessionEventRecord{
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
			SessionEventData: SessionEventData{
				SessionID:       e.SessionID,
				Action:          e.Action,
				Player:          e.Player,
				QuestionsServed: e.QuestionsServed,
				CorrectAnswers:  e.CorrectAnswers,
				Score:           e.Score,
				MaxStreak:       e.MaxStreak,
				DurationSecs:    e.DurationSecs,
			},
		}
	}
	return out, nil
}
