package toolcall

import (
	"regexp"
	"strings"
)

const functionCallsOpen = "<function_calls>"

var (
	functionCallsRe = regexp.MustCompile(`(?s)<function_calls>(.*?)</function_calls>`)
	invokeRe        = regexp.MustCompile(`(?s)<invoke\s+name\s*=\s*["']([^"']+)["']\s*>(.*?)</invoke>`)
	parameterRe     = regexp.MustCompile(`(?s)<parameter\s+name\s*=\s*["']([^"']+)["']\s*>(.*?)</parameter>`)
)

// Invocation is a tool call declared inside assistant text.
type Invocation struct {
	ToolName   string `json:"tool_name" yaml:"tool_name"`
	Parameters Args   `json:"parameters" yaml:"parameters"`
}

// ParseInvocations extracts every <invoke> block nested in
// <function_calls> markup, in document order.
func ParseInvocations(text string) []Invocation {
	var out []Invocation
	for _, block := range functionCallsRe.FindAllStringSubmatch(text, -1) {
		for _, inv := range invokeRe.FindAllStringSubmatch(block[1], -1) {
			params := Args{}
			for _, p := range parameterRe.FindAllStringSubmatch(inv[2], -1) {
				params[p[1]] = strings.TrimSpace(p[2])
			}
			out = append(out, Invocation{
				ToolName:   NormalizeName(inv[1]),
				Parameters: params,
			})
		}
	}
	return out
}

// StripInvocations removes invocation markup and returns the prose. An
// unterminated trailing <function_calls> block, as seen mid-stream, is
// cut off as well.
func StripInvocations(text string) string {
	text = functionCallsRe.ReplaceAllString(text, "")
	if i := strings.Index(text, functionCallsOpen); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}
