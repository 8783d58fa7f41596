// Package association links tool messages to the assistant messages that
// spawned them via the assistant_message_id metadata back-reference.
package association

import (
	"flow-ai/threadview/internal/model"
)

// Entry is one tool message together with its resolved parent.
type Entry struct {
	Message model.Message
	// Position is the index of Message in the slice passed to Build.
	Position int
	// Ordinal is the 1-based rank of the tool among all tools in scope.
	Ordinal int
	// AssistantMessageID is nil for orphans.
	AssistantMessageID *string
}

// Index maps assistant message ids to the tool messages they spawned.
// Tools whose back-reference is missing or points at an assistant message
// outside the scope land in the orphan bucket.
type Index struct {
	byAssistant map[string][]Entry
	orphans     []Entry
	entries     []Entry
	byPosition  map[int]int
	firstAsst   *string
}

// Build indexes msgs in a single pass. Each tool message lands in exactly
// one bucket.
func Build(msgs []model.Message) *Index {
	idx := &Index{
		byAssistant: make(map[string][]Entry),
		byPosition:  make(map[int]int),
	}

	assistants := make(map[string]struct{})
	for i := range msgs {
		if msgs[i].Type == model.TypeAssistant && msgs[i].MessageID != nil {
			assistants[*msgs[i].MessageID] = struct{}{}
			if idx.firstAsst == nil {
				idx.firstAsst = msgs[i].MessageID
			}
		}
	}

	for i := range msgs {
		if msgs[i].Type != model.TypeTool {
			continue
		}
		e := Entry{Message: msgs[i], Position: i, Ordinal: len(idx.entries) + 1}

		parent := model.DecodeMetadata(&msgs[i]).AssistantMessageID
		if parent != nil {
			if _, ok := assistants[*parent]; ok {
				e.AssistantMessageID = parent
			}
		}

		if e.AssistantMessageID != nil {
			idx.byAssistant[*e.AssistantMessageID] = append(idx.byAssistant[*e.AssistantMessageID], e)
		} else {
			idx.orphans = append(idx.orphans, e)
		}
		idx.byPosition[i] = len(idx.entries)
		idx.entries = append(idx.entries, e)
	}
	return idx
}

// Tools returns the tools linked to the given assistant message, in order.
func (x *Index) Tools(assistantID string) []Entry {
	return x.byAssistant[assistantID]
}

// Orphans returns the tools without a resolvable parent (the null key).
func (x *Index) Orphans() []Entry {
	return x.orphans
}

// Entries returns every tool in scope, ordered by ordinal.
func (x *Index) Entries() []Entry {
	return x.entries
}

// Total is the number of tool messages in scope.
func (x *Index) Total() int {
	return len(x.entries)
}

// At returns the entry for the tool at the given input position.
func (x *Index) At(position int) (Entry, bool) {
	i, ok := x.byPosition[position]
	if !ok {
		return Entry{}, false
	}
	return x.entries[i], true
}

// FirstAssistantID returns the id of the first persisted assistant
// message in scope, if any.
func (x *Index) FirstAssistantID() *string {
	return x.firstAsst
}

// Attached returns the tools to show under an assistant message. Orphans
// are attached to the first assistant message in scope, after that
// message's own tools; they keep their ordinals, which follow thread
// position rather than attachment.
func (x *Index) Attached(assistantID string) []Entry {
	own := x.byAssistant[assistantID]
	if x.firstAsst == nil || *x.firstAsst != assistantID || len(x.orphans) == 0 {
		return own
	}
	out := make([]Entry, 0, len(own)+len(x.orphans))
	out = append(out, own...)
	return append(out, x.orphans...)
}

// Unattached returns the orphans when the scope has no assistant message
// to attach them to. Callers render those on their own.
func (x *Index) Unattached() []Entry {
	if x.firstAsst != nil {
		return nil
	}
	return x.orphans
}
