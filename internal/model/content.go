package model

import (
	"bytes"
	"encoding/json"
)

// Content is the decoded form of Message.Content.
// Raw holds the inner content verbatim when it is not a plain string,
// e.g. the structured payload of a tool result.
type Content struct {
	Role string
	Text string
	Raw  json.RawMessage
	// Decoded is false when Message.Content was not a JSON envelope and
	// Text carries the undecoded string.
	Decoded bool
}

// Metadata is the decoded form of Message.Metadata.
type Metadata struct {
	AssistantMessageID *string `json:"assistant_message_id,omitempty"`
	Extra              map[string]json.RawMessage
}

type envelope struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// DecodeContent decodes the {role, content} envelope of a message.
// It never fails: anything that is not an envelope degrades to plain text.
func DecodeContent(m *Message) Content {
	return DecodeContentString(m.Content)
}

// DecodeContentString is DecodeContent for a bare content string.
func DecodeContentString(s string) Content {
	trimmed := bytes.TrimSpace([]byte(s))
	if len(trimmed) == 0 {
		return Content{}
	}

	switch trimmed[0] {
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return Content{Text: s}
		}
		if env.Content == nil {
			// An object without an envelope is structured content in itself.
			return Content{Role: env.Role, Raw: json.RawMessage(trimmed), Text: s, Decoded: true}
		}
		c := Content{Role: env.Role, Decoded: true}
		var text string
		if err := json.Unmarshal(env.Content, &text); err == nil {
			c.Text = text
			return c
		}
		c.Raw = env.Content
		c.Text = string(env.Content)
		return c
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err == nil {
			return Content{Text: text, Decoded: true}
		}
	}
	return Content{Text: s}
}

// DecodeMetadata decodes the metadata envelope of a message. Missing or
// malformed metadata yields the zero Metadata.
func DecodeMetadata(m *Message) Metadata {
	var md Metadata
	if len(bytes.TrimSpace([]byte(m.Metadata))) == 0 {
		return md
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(m.Metadata), &fields); err != nil {
		return md
	}
	if raw, ok := fields["assistant_message_id"]; ok {
		var id string
		if err := json.Unmarshal(raw, &id); err == nil && id != "" {
			md.AssistantMessageID = &id
		}
		delete(fields, "assistant_message_id")
	}
	if len(fields) > 0 {
		md.Extra = fields
	}
	return md
}

// Text returns the decoded text of a message.
func Text(m *Message) string {
	return DecodeContent(m).Text
}
