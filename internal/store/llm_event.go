package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/abhisek/fluence/ent"
	"github.com/abhisek/fluence/ent/llmrequestevent"
)

// eventRepo implements EventRepo backed by ent and the global sequence counter.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.LLMRequestEvent.Create().
		SetSequence(seqNum).
		SetProvider(data.Provider).
		SetModel(data.Model).
		SetPurpose(data.Purpose).
		SetInputTokens(data.InputTokens).
		SetOutputTokens(data.OutputTokens).
		SetLatencyMs(data.LatencyMs).
		SetSuccess(data.Success).
		SetErrorMessage(data.ErrorMessage).
		SetRequestBody(data.RequestBody).
		SetResponseBody(data.ResponseBody).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}

	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventData, error) {
	q := r.client.LLMRequestEvent.Query().
		Order(ent.Desc(llmrequestevent.FieldSequence))

	if opts.After > 0 {
		q = q.Where(llmrequestevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		q = q.Where(llmrequestevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		q = q.Where(llmrequestevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		q = q.Where(llmrequestevent.TimestampLTE(opts.To))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	events, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}

	out := make([]LLMRequestEventData, len(events))
	for i, e := range events {
		out[i] = entLLMEventToData(e)
	}
	return out, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventData, error) {
	e, err := r.client.LLMRequestEvent.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get LLM event: %w", err)
	}
	data := entLLMEventToData(e)
	return &data, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error) {
	return r.aggregateLLMUsage(ctx, func(e *ent.LLMRequestEvent) string { return e.Purpose }, true)
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsageStat, error) {
	return r.aggregateLLMUsage(ctx, func(e *ent.LLMRequestEvent) string { return e.Model }, false)
}

// aggregateLLMUsage groups all LLM events by the given key. The event log
// is single-user and small, so aggregation happens in process rather than
// through SQL grouping.
func (r *eventRepo) aggregateLLMUsage(ctx context.Context, key func(*ent.LLMRequestEvent) string, byPurpose bool) ([]LLMUsageStat, error) {
	events, err := r.client.LLMRequestEvent.Query().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query LLM events for usage: %w", err)
	}

	byKey := make(map[string]*LLMUsageStat)
	latency := make(map[string]int64)
	var order []string

	for _, e := range events {
		k := key(e)
		st, ok := byKey[k]
		if !ok {
			st = &LLMUsageStat{}
			if byPurpose {
				st.Purpose = k
			} else {
				st.Model = k
			}
			byKey[k] = st
			order = append(order, k)
		}
		st.Calls++
		st.InputTokens += e.InputTokens
		st.OutputTokens += e.OutputTokens
		latency[k] += e.LatencyMs
	}

	sort.Strings(order)

	out := make([]LLMUsageStat, 0, len(order))
	for _, k := range order {
		st := byKey[k]
		if st.Calls > 0 {
			st.AvgLatencyMs = latency[k] / int64(st.Calls)
		}
		out = append(out, *st)
	}
	return out, nil
}

func entLLMEventToData(e *ent.LLMRequestEvent) LLMRequestEventData {
	return LLMRequestEventData{
		ID:           e.ID,
		Timestamp:    e.Timestamp,
		Provider:     e.Provider,
		Model:        e.Model,
		Purpose:      e.Purpose,
		InputTokens:  e.InputTokens,
		OutputTokens: e.OutputTokens,
		LatencyMs:    e.LatencyMs,
		Success:      e.Success,
		ErrorMessage: e.ErrorMessage,
		RequestBody:  e.RequestBody,
		ResponseBody: e.ResponseBody,
	}
}
