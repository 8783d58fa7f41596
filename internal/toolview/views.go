package toolview

import (
	"encoding/json"
	"strings"

	"flow-ai/threadview/internal/toolcall"
)

// GenericView shows raw arguments and output as formatted JSON/text.
type GenericView struct{}

func (GenericView) Name() string { return "generic" }

func (v GenericView) Present(d toolcall.ParsedToolData) Card {
	c := base(v, d)
	var b strings.Builder
	if len(d.Arguments) > 0 {
		b.WriteString("Arguments:\n")
		b.WriteString(formatValue(map[string]any(d.Arguments)))
		b.WriteString("\n\n")
	}
	b.WriteString("Output:\n")
	b.WriteString(formatValue(d.Result.Output))
	c.Body = b.String()
	return c
}

// FileOperationView presents file create/rewrite/delete/read/edit tools.
type FileOperationView struct{}

func (FileOperationView) Name() string { return "file-operation" }

func (v FileOperationView) Present(d toolcall.ParsedToolData) Card {
	c := base(v, d)
	c.Subtitle = d.Arguments.FilePath()
	c.Fields = map[string]string{"operation": strings.SplitN(d.ToolName, "-", 2)[0]}
	if contents := d.Arguments.String("file_contents", "contents", "content"); contents != "" && !c.IsError {
		c.Body = contents
	} else {
		c.Body = formatValue(d.Result.Output)
	}
	return c
}

// CommandView presents shell command tools.
type CommandView struct{}

func (CommandView) Name() string { return "command" }

func (v CommandView) Present(d toolcall.ParsedToolData) Card {
	c := base(v, d)
	c.Subtitle = d.Arguments.Command()
	if s := d.Arguments.String("session_name"); s != "" {
		c.Fields = map[string]string{"session": s}
	}
	c.Body = formatValue(d.Result.Output)
	return c
}

// WebSearchView presents web search tools.
type WebSearchView struct{}

func (WebSearchView) Name() string { return "web-search" }

func (v WebSearchView) Present(d toolcall.ParsedToolData) Card {
	c := base(v, d)
	c.Subtitle = d.Arguments.Query()
	c.Body = formatValue(d.Result.Output)
	return c
}

// WebCrawlView presents page crawl and scrape tools.
type WebCrawlView struct{}

func (WebCrawlView) Name() string { return "web-crawl" }

func (v WebCrawlView) Present(d toolcall.ParsedToolData) Card {
	c := base(v, d)
	c.Subtitle = d.Arguments.URL()
	c.Body = formatValue(d.Result.Output)
	return c
}

// BrowserView presents browser automation tools.
type BrowserView struct{}

func (BrowserView) Name() string { return "browser" }

func (v BrowserView) Present(d toolcall.ParsedToolData) Card {
	c := base(v, d)
	c.Fields = map[string]string{"action": strings.TrimPrefix(d.ToolName, "browser-")}
	c.Subtitle = d.Arguments.URL()
	if c.Subtitle == "" {
		c.Subtitle = d.Arguments.Text()
	}
	c.Body = formatValue(d.Result.Output)
	return c
}

// ConversationView presents the ask and complete tools, whose payload is
// text addressed to the user.
type ConversationView struct{}

func (ConversationView) Name() string { return "conversation" }

func (v ConversationView) Present(d toolcall.ParsedToolData) Card {
	c := base(v, d)
	c.Body = d.Arguments.Text()
	if att := d.Arguments.String("attachments"); att != "" {
		c.Fields = map[string]string{"attachments": att}
	}
	return c
}

// ImageView presents image inspection tools.
type ImageView struct{}

func (ImageView) Name() string { return "image" }

func (v ImageView) Present(d toolcall.ParsedToolData) Card {
	c := base(v, d)
	c.Subtitle = d.Arguments.FilePath()
	c.Body = formatValue(d.Result.Output)
	return c
}

// PortView presents port exposure tools.
type PortView struct{}

func (PortView) Name() string { return "port" }

func (v PortView) Present(d toolcall.ParsedToolData) Card {
	c := base(v, d)
	c.Subtitle = d.Arguments.String("port")
	c.Body = formatValue(d.Result.Output)
	return c
}

func base(v View, d toolcall.ParsedToolData) Card {
	title := toolcall.DisplayName(d.ToolName)
	if d.ToolName == toolcall.UnknownName {
		title = "Unknown Tool"
	}
	return Card{
		View:    v.Name(),
		Title:   title,
		IsError: d.IsError,
	}
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}
