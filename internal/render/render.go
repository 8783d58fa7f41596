// Package render composes parsed, grouped and associated messages into a
// render-ready thread view.
package render

import (
	"fmt"
	"log/slog"
	"time"

	"flow-ai/threadview/internal/association"
	"flow-ai/threadview/internal/grouping"
	"flow-ai/threadview/internal/model"
	"flow-ai/threadview/internal/toolcall"
	"flow-ai/threadview/internal/toolview"
)

// NodeKind identifies what a node renders as.
type NodeKind string

const (
	NodeUser      NodeKind = "user"
	NodeAssistant NodeKind = "assistant"
	NodeTool      NodeKind = "tool"
)

// ToolCard is one tool message as shown in a group and in the side panel.
// Ordinal and Total are thread-wide, independent of grouping.
type ToolCard struct {
	toolview.Card `yaml:",inline"`

	Ordinal            int           `json:"ordinal" yaml:"ordinal"`
	Total              int           `json:"total" yaml:"total"`
	Position           string        `json:"position" yaml:"position"`
	MessageID          *string       `json:"message_id" yaml:"message_id"`
	AssistantMessageID *string       `json:"assistant_message_id" yaml:"assistant_message_id"`
	ToolName           string        `json:"tool_name" yaml:"tool_name"`
	Success            bool          `json:"success" yaml:"success"`
	Arguments          toolcall.Args `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Output             any           `json:"output,omitempty" yaml:"output,omitempty"`
	CreatedAt          time.Time     `json:"created_at" yaml:"created_at"`
}

// Node is a single rendered item inside a group.
type Node struct {
	Kind        NodeKind              `json:"kind" yaml:"kind"`
	MessageID   *string               `json:"message_id" yaml:"message_id"`
	AgentID     *string               `json:"agent_id,omitempty" yaml:"agent_id,omitempty"`
	Text        string                `json:"text,omitempty" yaml:"text,omitempty"`
	Streaming   bool                  `json:"streaming,omitempty" yaml:"streaming,omitempty"`
	Invocations []toolcall.Invocation `json:"invocations,omitempty" yaml:"invocations,omitempty"`
	Tools       []ToolCard            `json:"tools,omitempty" yaml:"tools,omitempty"`
	Tool        *ToolCard             `json:"tool,omitempty" yaml:"tool,omitempty"`
	CreatedAt   time.Time             `json:"created_at" yaml:"created_at"`
}

// GroupView is a rendered message group.
type GroupView struct {
	Kind  grouping.Kind `json:"kind" yaml:"kind"`
	Key   string        `json:"key" yaml:"key"`
	Nodes []Node        `json:"nodes" yaml:"nodes"`
}

// View is the render-ready form of a thread.
type View struct {
	ThreadID     string      `json:"thread_id" yaml:"thread_id"`
	Groups       []GroupView `json:"groups" yaml:"groups"`
	Tools        []ToolCard  `json:"tools" yaml:"tools"`
	MessageCount int         `json:"message_count" yaml:"message_count"`
}

// Options tunes a render pass.
type Options struct {
	// Dedup drops superseded streaming placeholders before grouping.
	Dedup bool
}

// DefaultOptions returns the options used when the caller has no preference.
func DefaultOptions() Options {
	return Options{Dedup: true}
}

// Renderer turns message arrays into views. It holds no per-thread state.
type Renderer struct {
	registry *toolview.Registry
	logger   *slog.Logger
}

// New returns a Renderer that presents tools through registry.
func New(registry *toolview.Registry, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{registry: registry, logger: logger}
}

// Registry returns the view registry in use.
func (r *Renderer) Registry() *toolview.Registry {
	return r.registry
}

// Render builds the view for msgs. Every derived structure is rebuilt from
// scratch, so the result depends only on the input snapshot.
func (r *Renderer) Render(threadID string, msgs []model.Message, opts Options) *View {
	if opts.Dedup {
		msgs = grouping.Dedup(msgs)
	}

	global := association.Build(msgs)
	cards := make(map[int]ToolCard, global.Total())
	panel := make([]ToolCard, 0, global.Total())
	for _, e := range global.Entries() {
		card := r.toolCard(e, global.Total())
		cards[e.Position] = card
		panel = append(panel, card)
	}

	view := &View{
		ThreadID:     threadID,
		Groups:       []GroupView{},
		Tools:        panel,
		MessageCount: len(msgs),
	}

	for _, g := range grouping.Partition(msgs) {
		gv := GroupView{Kind: g.Kind, Key: g.Key()}
		if g.Kind == grouping.KindUser {
			gv.Nodes = []Node{textNode(NodeUser, &g.Messages[0])}
		} else {
			gv.Nodes = r.assistantNodes(g, cards)
		}
		view.Groups = append(view.Groups, gv)
	}
	return view
}

func (r *Renderer) assistantNodes(g grouping.Group, cards map[int]ToolCard) []Node {
	local := association.Build(g.Messages)
	globalCard := func(e association.Entry) ToolCard {
		return cards[g.Start+e.Position]
	}

	var nodes []Node
	for i := range g.Messages {
		m := &g.Messages[i]
		switch m.Type {
		case model.TypeAssistant:
			n := textNode(NodeAssistant, m)
			n.Invocations = toolcall.ParseInvocations(model.Text(m))
			n.Text = toolcall.StripInvocations(n.Text)
			if m.MessageID != nil {
				for _, e := range local.Attached(*m.MessageID) {
					n.Tools = append(n.Tools, globalCard(e))
				}
			}
			nodes = append(nodes, n)
		case model.TypeTool:
			if !standalone(local, i) {
				continue
			}
			e, _ := local.At(i)
			card := globalCard(e)
			nodes = append(nodes, Node{
				Kind:      NodeTool,
				MessageID: m.MessageID,
				Streaming: m.IsStreaming(),
				Tool:      &card,
				CreatedAt: m.CreatedAt,
			})
		}
	}
	return nodes
}

// standalone reports whether the tool at position i has no assistant
// message in its group to hang from.
func standalone(local *association.Index, i int) bool {
	for _, e := range local.Unattached() {
		if e.Position == i {
			return true
		}
	}
	return false
}

func (r *Renderer) toolCard(e association.Entry, total int) ToolCard {
	data, err := toolcall.Parse(e.Message.Content)
	if err != nil {
		r.logger.Debug("Tool message content failed to parse", "message_id", e.Message.ID(), "error", err)
		unknown := toolcall.Unknown()
		data = &unknown
	}

	return ToolCard{
		Card:               r.registry.Present(*data),
		Ordinal:            e.Ordinal,
		Total:              total,
		Position:           fmt.Sprintf("%d / %d", e.Ordinal, total),
		MessageID:          e.Message.MessageID,
		AssistantMessageID: e.AssistantMessageID,
		ToolName:           data.ToolName,
		Success:            data.Result.Success,
		Arguments:          data.Arguments,
		Output:             data.Result.Output,
		CreatedAt:          e.Message.CreatedAt,
	}
}

func textNode(kind NodeKind, m *model.Message) Node {
	return Node{
		Kind:      kind,
		MessageID: m.MessageID,
		AgentID:   m.AgentID,
		Text:      model.Text(m),
		Streaming: m.IsStreaming(),
		CreatedAt: m.CreatedAt,
	}
}
