package toolcall

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Args holds tool call parameters. Producers disagree on field names for
// the same concept, so views read them through the accessors below rather
// than indexing the map directly.
type Args map[string]any

// String returns the first non-empty value among keys, formatted as text.
func (a Args) String(keys ...string) string {
	for _, k := range keys {
		v, ok := a[k]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case float64, bool, json.Number:
			s = fmt.Sprint(t)
		default:
			b, err := json.Marshal(t)
			if err != nil {
				continue
			}
			s = string(b)
		}
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func (a Args) FilePath() string {
	return a.String("file_path", "path", "target_file", "filename", "file")
}

func (a Args) Command() string {
	return a.String("command", "cmd")
}

func (a Args) URL() string {
	return a.String("url", "link", "href")
}

func (a Args) Query() string {
	return a.String("query", "q", "search_query")
}

func (a Args) Text() string {
	return a.String("text", "message", "content")
}

// Category groups tool names that share a presentation.
type Category string

const (
	CategoryFile         Category = "file"
	CategoryCommand      Category = "command"
	CategorySearch       Category = "search"
	CategoryCrawl        Category = "crawl"
	CategoryBrowser      Category = "browser"
	CategoryConversation Category = "conversation"
	CategoryImage        Category = "image"
	CategoryPort         Category = "port"
	CategoryOther        Category = "other"
)

var categories = map[string]Category{
	"create-file":           CategoryFile,
	"full-file-rewrite":     CategoryFile,
	"delete-file":           CategoryFile,
	"read-file":             CategoryFile,
	"edit-file":             CategoryFile,
	"str-replace":           CategoryFile,
	"execute-command":       CategoryCommand,
	"check-command-output":  CategoryCommand,
	"terminate-command":     CategoryCommand,
	"web-search":            CategorySearch,
	"crawl-webpage":         CategoryCrawl,
	"scrape-webpage":        CategoryCrawl,
	"ask":                   CategoryConversation,
	"complete":              CategoryConversation,
	"see-image":             CategoryImage,
	"expose-port":           CategoryPort,
	"browser-navigate-to":   CategoryBrowser,
	"browser-go-back":       CategoryBrowser,
	"browser-click-element": CategoryBrowser,
	"browser-input-text":    CategoryBrowser,
	"browser-send-keys":     CategoryBrowser,
	"browser-scroll-down":   CategoryBrowser,
	"browser-scroll-up":     CategoryBrowser,
	"browser-wait":          CategoryBrowser,
	"browser-act":           CategoryBrowser,
}

// KnownTools returns the normalized names of every categorized tool, sorted.
func KnownTools() []string {
	names := make([]string, 0, len(categories))
	for n := range categories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// CategoryOf classifies a tool name.
func CategoryOf(name string) Category {
	n := NormalizeName(name)
	if c, ok := categories[n]; ok {
		return c
	}
	if strings.HasPrefix(n, "browser-") {
		return CategoryBrowser
	}
	return CategoryOther
}
