package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.AnswerEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetQuestionID(data.QuestionID).
		SetTopic(data.Topic).
		SetQuestionType(data.QuestionType).
		SetQuestionText(data.QuestionText).
		SetCorrectAnswer(data.CorrectAnswer).
		SetPlayerAnswer(data.PlayerAnswer).
		SetCorrect(data.Correct).
		SetTimeSecs(data.TimeSecs).
		SetMasteryLevel(data.MasteryLevel).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}
