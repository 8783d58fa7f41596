package render_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flow-ai/threadview/internal/model"
	"flow-ai/threadview/internal/render"
	"flow-ai/threadview/internal/toolview"
)

func text(id string, typ model.MessageType, body string) model.Message {
	m := model.Message{ThreadID: "t1", Type: typ, Content: fmt.Sprintf(`{"role":%q,"content":%q}`, typ, body)}
	if id != "" {
		m.MessageID = model.StringPtr(id)
	}
	return m
}

func toolMsg(id, parent, name string) model.Message {
	inner := fmt.Sprintf(`{"tool_execution":{"function_name":%q,"arguments":{"command":"ls"},"result":{"success":true,"output":"done"}}}`, name)
	m := model.Message{
		MessageID: model.StringPtr(id),
		ThreadID:  "t1",
		Type:      model.TypeTool,
		Content:   fmt.Sprintf(`{"role":"user","content":%q}`, inner),
	}
	if parent != "" {
		m.Metadata = fmt.Sprintf(`{"assistant_message_id":%q}`, parent)
	}
	return m
}

func newRenderer() *render.Renderer {
	return render.New(toolview.NewDefault(), nil)
}

func TestRender_UserThenAssistantWithTool(t *testing.T) {
	msgs := []model.Message{
		text("U1", model.TypeUser, "Hi"),
		text("A2", model.TypeAssistant, "Let me check"),
		toolMsg("T3", "A2", "execute_command"),
	}

	view := newRenderer().Render("t1", msgs, render.DefaultOptions())

	require.Len(t, view.Groups, 2)
	assert.Equal(t, "Hi", view.Groups[0].Nodes[0].Text)

	asst := view.Groups[1]
	require.Len(t, asst.Nodes, 1)
	assert.Equal(t, render.NodeAssistant, asst.Nodes[0].Kind)
	assert.Equal(t, "Let me check", asst.Nodes[0].Text)
	require.Len(t, asst.Nodes[0].Tools, 1)

	card := asst.Nodes[0].Tools[0]
	assert.Equal(t, "execute-command", card.ToolName)
	assert.Equal(t, "command", card.View)
	assert.Equal(t, "ls", card.Subtitle)
	assert.Equal(t, "1 / 1", card.Position)
	require.NotNil(t, card.AssistantMessageID)
	assert.Equal(t, "A2", *card.AssistantMessageID)

	assert.Len(t, view.Tools, 1)
	assert.Equal(t, 3, view.MessageCount)
}

func TestRender_BackToBackAssistants(t *testing.T) {
	msgs := []model.Message{
		text("A1", model.TypeAssistant, "first"),
		toolMsg("T1", "A1", "read_file"),
		text("A2", model.TypeAssistant, "second"),
		toolMsg("T2", "A2", "web_search"),
	}

	view := newRenderer().Render("t1", msgs, render.DefaultOptions())

	require.Len(t, view.Groups, 1)
	nodes := view.Groups[0].Nodes
	require.Len(t, nodes, 2)
	assert.Equal(t, "T1", *nodes[0].Tools[0].MessageID)
	assert.Equal(t, "T2", *nodes[1].Tools[0].MessageID)
	assert.Equal(t, "2 / 2", nodes[1].Tools[0].Position)
}

func TestRender_OrphanTool(t *testing.T) {
	orphan := toolMsg("T1", "", "wait")
	msgs := []model.Message{
		text("U1", model.TypeUser, "go"),
		text("A1", model.TypeAssistant, "working"),
		orphan,
	}

	view := newRenderer().Render("t1", msgs, render.DefaultOptions())

	require.Len(t, view.Tools, 1)
	assert.Equal(t, 1, view.Tools[0].Ordinal)
	assert.Nil(t, view.Tools[0].AssistantMessageID)
	assert.Equal(t, "generic", view.Tools[0].View)

	asst := view.Groups[1].Nodes[0]
	require.Len(t, asst.Tools, 1)
	assert.Equal(t, "T1", *asst.Tools[0].MessageID)
}

func TestRender_OrphansKeepThreadOrdinals(t *testing.T) {
	msgs := []model.Message{
		text("A1", model.TypeAssistant, "one"),
		toolMsg("T1", "A1", "ls"),
		text("U1", model.TypeUser, "more"),
		text("A2", model.TypeAssistant, "two"),
		toolMsg("T2", "A2", "ls"),
		toolMsg("T3", "", "ls"),
	}

	view := newRenderer().Render("t1", msgs, render.DefaultOptions())

	require.Len(t, view.Groups, 3)
	tools := view.Groups[2].Nodes[0].Tools
	require.Len(t, tools, 2)
	assert.Equal(t, "2 / 3", tools[0].Position)
	assert.Equal(t, "3 / 3", tools[1].Position)
}

func TestRender_ToolWithoutAssistantStandsAlone(t *testing.T) {
	msgs := []model.Message{
		text("U1", model.TypeUser, "go"),
		toolMsg("T1", "", "ls"),
	}

	view := newRenderer().Render("t1", msgs, render.DefaultOptions())

	require.Len(t, view.Groups, 2)
	node := view.Groups[1].Nodes[0]
	assert.Equal(t, render.NodeTool, node.Kind)
	require.NotNil(t, node.Tool)
	assert.Equal(t, "1 / 1", node.Tool.Position)
}

func TestRender_StreamingDedup(t *testing.T) {
	msgs := []model.Message{
		text("U1", model.TypeUser, "hello?"),
		text("", model.TypeAssistant, "Hello wor"),
		text("m1", model.TypeAssistant, "Hello world"),
	}

	t.Run("Placeholder dropped", func(t *testing.T) {
		view := newRenderer().Render("t1", msgs, render.DefaultOptions())
		require.Len(t, view.Groups, 2)
		require.Len(t, view.Groups[1].Nodes, 1)
		assert.Equal(t, "Hello world", view.Groups[1].Nodes[0].Text)
		assert.Equal(t, 2, view.MessageCount)
	})

	t.Run("Dedup disabled keeps both", func(t *testing.T) {
		view := newRenderer().Render("t1", msgs, render.Options{Dedup: false})
		require.Len(t, view.Groups[1].Nodes, 2)
		assert.True(t, view.Groups[1].Nodes[0].Streaming)
	})
}

func TestRender_MalformedToolContent(t *testing.T) {
	bad := model.Message{
		MessageID: model.StringPtr("T1"),
		Type:      model.TypeTool,
		Content:   "not json at all",
		Metadata:  `{"assistant_message_id":"A1"}`,
	}
	msgs := []model.Message{text("A1", model.TypeAssistant, "trying"), bad}

	view := newRenderer().Render("t1", msgs, render.DefaultOptions())

	require.Len(t, view.Tools, 1)
	card := view.Tools[0]
	assert.Equal(t, "Unknown Tool", card.Title)
	assert.True(t, card.IsError)
	assert.Equal(t, "Failed to parse", card.Output)
}

func TestRender_InvocationMarkup(t *testing.T) {
	body := "Creating it now.\n<function_calls>\n<invoke name=\"create_file\">\n<parameter name=\"file_path\">a.txt</parameter>\n</invoke>\n</function_calls>"
	view := newRenderer().Render("t1", []model.Message{text("A1", model.TypeAssistant, body)}, render.DefaultOptions())

	node := view.Groups[0].Nodes[0]
	assert.Equal(t, "Creating it now.", node.Text)
	require.Len(t, node.Invocations, 1)
	assert.Equal(t, "create-file", node.Invocations[0].ToolName)
}

func TestRender_JSONShape(t *testing.T) {
	msgs := []model.Message{text("A1", model.TypeAssistant, "x"), toolMsg("T1", "A1", "ls")}
	view := newRenderer().Render("t1", msgs, render.DefaultOptions())

	b, err := json.Marshal(view.Tools[0])
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(b, &flat))
	assert.Equal(t, "generic", flat["view"])
	assert.Equal(t, "1 / 1", flat["position"])
	assert.Equal(t, "A1", flat["assistant_message_id"])
}

func TestRender_Empty(t *testing.T) {
	view := newRenderer().Render("t1", nil, render.DefaultOptions())
	assert.Empty(t, view.Groups)
	assert.Empty(t, view.Tools)
	assert.NotNil(t, view.Groups)
}

// A tool whose parent sits in an earlier group is an orphan within its own
// group: it renders under that group's first assistant, while its card
// keeps the declared parent.
func TestRender_CrossGroupParent(t *testing.T) {
	msgs := []model.Message{
		text("A", model.TypeAssistant, "first"),
		text("U", model.TypeUser, "go on"),
		text("B", model.TypeAssistant, "second"),
		toolMsg("T", "A", "execute_command"),
	}

	view := newRenderer().Render("t1", msgs, render.DefaultOptions())

	require.Len(t, view.Groups, 3)
	assert.Empty(t, view.Groups[0].Nodes[0].Tools)

	second := view.Groups[2].Nodes
	require.Len(t, second, 1)
	require.Len(t, second[0].Tools, 1)
	card := second[0].Tools[0]
	require.NotNil(t, card.AssistantMessageID)
	assert.Equal(t, "A", *card.AssistantMessageID)
	assert.Equal(t, "1 / 1", card.Position)

	require.Len(t, view.Tools, 1)
	assert.Equal(t, card, view.Tools[0])
}
