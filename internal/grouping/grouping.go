// Package grouping partitions a thread's messages into render groups.
package grouping

import (
	"strings"

	"flow-ai/threadview/internal/model"
)

// Kind distinguishes a standalone user group from an assistant run.
type Kind string

const (
	KindUser      Kind = "user"
	KindAssistant Kind = "assistant"
)

// Group is a contiguous run of messages. A user group holds exactly one
// message; an assistant group holds a maximal run of assistant and tool
// messages.
type Group struct {
	Kind     Kind
	Messages []model.Message
	// Start is the index of Messages[0] in the slice passed to Partition.
	Start int
}

// Key returns a stable identifier for the group, derived from its first
// message.
func (g Group) Key() string {
	if len(g.Messages) > 0 && g.Messages[0].MessageID != nil {
		return string(g.Kind) + "-" + *g.Messages[0].MessageID
	}
	return string(g.Kind) + "-streaming"
}

// Partition walks msgs once, in order. A user message closes the open
// assistant group and stands alone; assistant and tool messages join the
// open assistant group or start one.
func Partition(msgs []model.Message) []Group {
	var (
		groups []Group
		open   *Group
	)

	for i, m := range msgs {
		if m.Type == model.TypeUser {
			if open != nil {
				groups = append(groups, *open)
				open = nil
			}
			groups = append(groups, Group{Kind: KindUser, Messages: []model.Message{m}, Start: i})
			continue
		}

		if open == nil {
			open = &Group{Kind: KindAssistant, Start: i}
		}
		open.Messages = append(open.Messages, m)
	}

	if open != nil {
		groups = append(groups, *open)
	}
	return groups
}

// Flatten concatenates the members of groups in order.
func Flatten(groups []Group) []model.Message {
	var out []model.Message
	for _, g := range groups {
		out = append(out, g.Messages...)
	}
	return out
}

// Dedup drops streaming placeholders that have been superseded: a
// placeholder is removed when some later persisted message's text equals
// or contains the placeholder's text. Containment is a heuristic and can
// hide a genuinely distinct message that happens to repeat a prefix.
func Dedup(msgs []model.Message) []model.Message {
	out := make([]model.Message, 0, len(msgs))
	for i := range msgs {
		if msgs[i].IsStreaming() && superseded(msgs, i) {
			continue
		}
		out = append(out, msgs[i])
	}
	return out
}

func superseded(msgs []model.Message, i int) bool {
	for j := i + 1; j < len(msgs); j++ {
		if !msgs[j].IsStreaming() && Supersedes(&msgs[j], &msgs[i]) {
			return true
		}
	}
	return false
}

// Supersedes reports whether persisted carries the text of placeholder.
func Supersedes(persisted, placeholder *model.Message) bool {
	return strings.Contains(model.Text(persisted), model.Text(placeholder))
}
