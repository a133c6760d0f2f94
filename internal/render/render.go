package render

import (
	"fmt"
	"io"
	"sort"

	"subclash/internal/link"
)

const DefaultGroupName = "🆃🆆🅾🅿🅴🅽"

type Options struct {
	// GroupName names the selector group every proxy is placed in.
	GroupName string
}

type Renderer interface {
	Render(w io.Writer, records []link.Record, opts Options) error
}

type Factory func() Renderer

var registry = make(map[string]Factory)

func Register(name string, factory Factory) {
	registry[name] = factory
}

func Get(name string) (Renderer, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("output format '%s' not found (available: %v)", name, Names())
	}
	return factory(), nil
}

// Names lists the registered formats in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GroupNameOrDefault returns opts.GroupName, falling back to DefaultGroupName.
func (o Options) GroupNameOrDefault() string {
	if o.GroupName == "" {
		return DefaultGroupName
	}
	return o.GroupName
}
