// Package toolcall decodes tool messages and assistant tool invocation
// markup into structured data.
package toolcall

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// UnknownName is the tool name carried by the parse failure sentinel.
const UnknownName = "unknown"

// ErrMalformed is returned when tool content cannot be decoded into a
// tool name, arguments and result.
var ErrMalformed = errors.New("toolcall: malformed tool content")

// Result is the outcome of a tool execution.
type Result struct {
	Success bool `json:"success" yaml:"success"`
	// Output is either a string or an arbitrary decoded JSON value.
	Output any `json:"output,omitempty" yaml:"output,omitempty"`
}

// ParsedToolData is the structured form of one tool message.
type ParsedToolData struct {
	ToolName  string `json:"tool_name" yaml:"tool_name"`
	Arguments Args   `json:"arguments" yaml:"arguments"`
	Result    Result `json:"result" yaml:"result"`
	IsError   bool   `json:"is_error" yaml:"is_error"`
}

// Unknown returns the sentinel that stands in for content that failed to parse.
func Unknown() ParsedToolData {
	return ParsedToolData{
		ToolName:  UnknownName,
		Arguments: Args{},
		Result:    Result{Success: false, Output: "Failed to parse"},
		IsError:   true,
	}
}

var (
	legacyResultRe = regexp.MustCompile(`(?s)<tool_result>\s*<([A-Za-z0-9_-]+)>\s*(.*?)\s*</[A-Za-z0-9_-]+>\s*</tool_result>`)
	legacyOutputRe = regexp.MustCompile(`(?s)^ToolResult\(\s*success\s*=\s*(True|False|true|false)\s*,\s*output\s*=\s*(.*)\)$`)
)

// Parse decodes the content string of a tool message. It does not panic on
// any input; every failure is reported as ErrMalformed.
func Parse(content string) (*ParsedToolData, error) {
	trimmed := bytes.TrimSpace([]byte(content))
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty content", ErrMalformed)
	}

	var decoded any
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: content is not an object", ErrMalformed)
	}

	payload := obj
	if inner, ok := obj["content"]; ok {
		switch v := inner.(type) {
		case map[string]any:
			payload = v
		case string:
			if p, ok := decodeObject(v); ok {
				payload = p
			} else {
				return parseLegacy(v)
			}
		}
	}

	data, ok := fromPayload(payload)
	if !ok {
		return nil, fmt.Errorf("%w: no tool name", ErrMalformed)
	}
	return data, nil
}

// ParseOrUnknown returns the parsed data or the Unknown sentinel.
func ParseOrUnknown(content string) ParsedToolData {
	data, err := Parse(content)
	if err != nil {
		return Unknown()
	}
	return *data
}

func fromPayload(payload map[string]any) (*ParsedToolData, bool) {
	if exec, ok := payload["tool_execution"].(map[string]any); ok {
		payload = exec
	}

	name := firstString(payload, "function_name", "tool_name", "name", "xml_tag_name")
	if name == "" {
		return nil, false
	}

	args := decodeArgs(firstValue(payload, "arguments", "parameters", "input"))
	result := decodeResult(payload)

	return &ParsedToolData{
		ToolName:  NormalizeName(name),
		Arguments: args,
		Result:    result,
		IsError:   !result.Success,
	}, true
}

func decodeResult(payload map[string]any) Result {
	raw, ok := payload["result"]
	if !ok {
		// Some producers inline success/output next to the tool name.
		raw = payload
	}

	res, ok := raw.(map[string]any)
	if !ok {
		if raw == nil {
			return Result{Success: true}
		}
		return Result{Success: true, Output: raw}
	}

	out := Result{Success: true}
	if s, ok := res["success"].(bool); ok {
		out.Success = s
	}
	if v, ok := res["output"]; ok && v != nil {
		out.Output = v
	}
	if e, ok := res["error"]; ok && e != nil && e != "" {
		out.Success = false
		if out.Output == nil {
			out.Output = e
		}
	}
	return out
}

func decodeArgs(v any) Args {
	switch a := v.(type) {
	case map[string]any:
		return Args(a)
	case string:
		if m, ok := decodeObject(a); ok {
			return Args(m)
		}
	}
	return Args{}
}

// parseLegacy handles the older XML-ish text form:
// <tool_result><create-file> ToolResult(success=True, output='...') </create-file></tool_result>
func parseLegacy(text string) (*ParsedToolData, error) {
	m := legacyResultRe.FindStringSubmatch(text)
	if m == nil {
		return nil, fmt.Errorf("%w: unrecognised tool text", ErrMalformed)
	}

	data := &ParsedToolData{
		ToolName:  NormalizeName(m[1]),
		Arguments: Args{},
		Result:    Result{Success: true, Output: strings.TrimSpace(m[2])},
	}
	if r := legacyOutputRe.FindStringSubmatch(strings.TrimSpace(m[2])); r != nil {
		data.Result.Success = strings.EqualFold(r[1], "true")
		data.Result.Output = unquote(strings.TrimSpace(r[2]))
	}
	data.IsError = !data.Result.Success
	return data, nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '\'' || first == '"') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func decodeObject(s string) (map[string]any, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, false
	}
	return m, true
}

func firstValue(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
