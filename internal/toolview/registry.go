// Package toolview maps tool names to presenters that turn parsed tool
// data into render-ready cards.
package toolview

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"flow-ai/threadview/internal/toolcall"
)

// DefaultName is the registry key of the fallback view.
const DefaultName = "default"

// ErrUnknownView is returned when an alias targets a name with no view.
var ErrUnknownView = errors.New("toolview: unknown view")

// Card is the presentation of one tool call.
type Card struct {
	View     string            `json:"view" yaml:"view"`
	Title    string            `json:"title" yaml:"title"`
	Subtitle string            `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Fields   map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
	Body     string            `json:"body,omitempty" yaml:"body,omitempty"`
	IsError  bool              `json:"is_error" yaml:"is_error"`
}

// View renders parsed tool data.
type View interface {
	Name() string
	Present(data toolcall.ParsedToolData) Card
}

// Registry is a name-keyed view table with a fallback for unknown names.
// Aliases sit on top of the registered views and can be replaced as a set.
// Names are normalized on both insert and lookup. It is safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	views    map[string]View
	aliases  map[string]string
	fallback View
}

// New returns an empty registry that resolves every name to fallback.
func New(fallback View) *Registry {
	return &Registry{views: make(map[string]View), aliases: make(map[string]string), fallback: fallback}
}

// categoryViews assigns a view to each tool category. CategoryOther has no
// entry and stays on the fallback, as does "wait".
var categoryViews = map[toolcall.Category]View{
	toolcall.CategoryFile:         FileOperationView{},
	toolcall.CategoryCommand:      CommandView{},
	toolcall.CategorySearch:       WebSearchView{},
	toolcall.CategoryCrawl:        WebCrawlView{},
	toolcall.CategoryBrowser:      BrowserView{},
	toolcall.CategoryConversation: ConversationView{},
	toolcall.CategoryImage:        ImageView{},
	toolcall.CategoryPort:         PortView{},
}

// NewDefault returns a registry preloaded with the built-in view of every
// known tool.
func NewDefault() *Registry {
	r := New(GenericView{})
	for _, n := range toolcall.KnownTools() {
		if v, ok := categoryViews[toolcall.CategoryOf(n)]; ok {
			r.Register(n, v)
		}
	}
	return r
}

// Register inserts or replaces the view for name. Registering
// DefaultName replaces the fallback.
func (r *Registry) Register(name string, v View) {
	key := toolcall.NormalizeName(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if key == DefaultName {
		r.fallback = v
		return
	}
	r.views[key] = v
}

// Lookup returns the view for name, or the fallback when none is registered.
// An alias wins over a view registered under the same name.
func (r *Registry) Lookup(name string) View {
	key := toolcall.NormalizeName(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if target, ok := r.aliases[key]; ok {
		key = target
	}
	if v, ok := r.views[key]; ok {
		return v
	}
	return r.fallback
}

// Has reports whether name resolves to something other than the fallback
// by way of a registered view or an alias.
func (r *Registry) Has(name string) bool {
	key := toolcall.NormalizeName(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, view := r.views[key]
	_, alias := r.aliases[key]
	return view || alias
}

// IsView reports whether name is a valid alias target: DefaultName or a
// registered view. Aliases are not valid targets.
func (r *Registry) IsView(name string) bool {
	key := toolcall.NormalizeName(name)
	if key == DefaultName {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.views[key]
	return ok
}

// Alias makes name resolve to the view registered for target.
func (r *Registry) Alias(name, target string) error {
	if !r.IsView(target) {
		return fmt.Errorf("%w: %q", ErrUnknownView, target)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[toolcall.NormalizeName(name)] = toolcall.NormalizeName(target)
	return nil
}

// Unalias removes the alias for name. Registered views are untouched.
func (r *Registry) Unalias(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.aliases, toolcall.NormalizeName(name))
}

// SetAliases replaces every alias with aliases. Nothing changes when any
// target is not a view.
func (r *Registry) SetAliases(aliases map[string]string) error {
	next := make(map[string]string, len(aliases))
	for name, target := range aliases {
		if !r.IsView(target) {
			return fmt.Errorf("%w: %q", ErrUnknownView, target)
		}
		next[toolcall.NormalizeName(name)] = toolcall.NormalizeName(target)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases = next
	return nil
}

// Names returns the registered and aliased names in sorted order, without
// DefaultName.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.views)+len(r.aliases))
	for n := range r.views {
		names = append(names, n)
	}
	for n := range r.aliases {
		if _, dup := r.views[n]; !dup {
			names = append(names, n)
		}
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Present looks up the view for data.ToolName and renders it.
func (r *Registry) Present(data toolcall.ParsedToolData) Card {
	return r.Lookup(data.ToolName).Present(data)
}
