package extraction

import (
	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// NormaliseMinutes passes topics, decisions and action items through.
// Owners and due dates default to null, due dates are normalised to
// YYYY-MM-DD, and every proposed action starts open.
func NormaliseMinutes(raw map[string]any, artefactID string) Result[domain.MinutesPayload] {
	f := fields(raw)
	res := Result[domain.MinutesPayload]{
		Record: domain.MinutesPayload{
			Topics:      []domain.Topic{},
			Decisions:   []domain.TextFact{},
			ActionItems: []domain.ProposedAction{},
		},
	}

	if items, ok := f.list("topics", "hot_topics", "discussion"); ok {
		for i, item := range items {
			t, reason := topic(item, artefactID)
			if reason != "" {
				res.add(Drop{Field: "topics", Index: i, Reason: reason})
				continue
			}
			res.Record.Topics = append(res.Record.Topics, t)
		}
	}

	if items, ok := f.list("decisions", "resolutions"); ok {
		facts, drops := textFacts(items, "decisions", artefactID, "decision", "summary", "description")
		res.Record.Decisions = facts
		res.add(drops...)
	}

	if items, ok := f.list("action_items", "actions", "tasks"); ok {
		for i, item := range items {
			a, reason := proposedAction(item, artefactID)
			if reason != "" {
				res.add(Drop{Field: "action_items", Index: i, Reason: reason})
				continue
			}
			res.Record.ActionItems = append(res.Record.ActionItems, a)
		}
	}

	return res
}

func topic(item any, artefactID string) (domain.Topic, string) {
	if s, ok := item.(string); ok {
		f := fields{"title": s}
		title, ok := f.str("title")
		if !ok {
			return domain.Topic{}, "missing title"
		}
		return domain.Topic{Title: title}, ""
	}
	f, ok := asFields(item)
	if !ok {
		return domain.Topic{}, "not an object"
	}
	title, hasTitle := f.str("title", "topic", "heading", "name")
	summary, hasSummary := f.str("summary", "description", "details", "text")
	if !hasTitle && !hasSummary {
		return domain.Topic{}, "missing title"
	}
	if !hasTitle {
		title = summary
	}
	return domain.Topic{Title: title, Summary: summary, Source: f.ref(artefactID)}, ""
}

func proposedAction(item any, artefactID string) (domain.ProposedAction, string) {
	if s, ok := item.(string); ok {
		item = map[string]any{"title": s}
	}
	f, ok := asFields(item)
	if !ok {
		return domain.ProposedAction{}, "not an object"
	}
	title, ok := f.str("title", "action", "description", "task", "text")
	if !ok {
		return domain.ProposedAction{}, "missing title"
	}
	return domain.ProposedAction{
		Title:   title,
		Owner:   f.optStr("owner", "assignee", "responsible", "who"),
		DueDate: f.optDate("due_date", "due", "deadline", "by"),
		Status:  domain.ActionOpen,
		Source:  f.ref(artefactID),
	}, ""
}
