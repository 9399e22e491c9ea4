package kasane

import "github.com/yacchi/kasane/layer"

// GetOption is a functional option for Get, GetOK, and Has.
type GetOption func(*getOptions)

type getOptions struct {
	ignoreNulls bool
	restrict    []string
	restricted  bool
}

// IgnoreNulls makes the search skip layers whose value at the path is
// an explicitly stored null, falling through to the next layer. By
// default a stored null resolves immediately like any other value.
func IgnoreNulls() GetOption {
	return func(o *getOptions) {
		o.ignoreNulls = true
	}
}

// FromLayers restricts the search to the given layer names, consulted
// in exactly the order supplied. This deliberately lets a caller
// override the configuration's priority order for a single query.
// Unknown names are silently skipped. Calling FromLayers with no
// names restricts the search to nothing.
func FromLayers(names ...string) GetOption {
	return func(o *getOptions) {
		o.restrict = names
		o.restricted = true
	}
}

// Get returns the value at path from the highest-priority layer that
// defines it, or nil if no layer does. The search stops at the first
// qualifying hit: if the path addresses a branch present in multiple
// layers, only the first resolving layer's branch is returned - there
// is no deep merge across layers.
//
// Because a stored null also comes back as nil, use GetOK when
// absence must be distinguished from an explicit null.
func (c *Config) Get(path string, opts ...GetOption) any {
	v, _ := c.GetOK(path, opts...)
	return v
}

// GetOK is Get with an explicit found report: ok is true when some
// layer yielded a qualifying value, even if that value is nil.
func (c *Config) GetOK(path string, opts ...GetOption) (value any, ok bool) {
	var o getOptions
	for _, opt := range opts {
		opt(&o)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	segments := splitPath(path, c.separator)
	if len(segments) == 0 {
		return nil, false
	}

	var candidates []layer.Name
	if o.restricted {
		candidates = make([]layer.Name, len(o.restrict))
		for i, name := range o.restrict {
			candidates[i] = layer.NormalizeName(name)
		}
	} else {
		candidates = c.order
	}

	for _, name := range candidates {
		l, exists := c.layers[name]
		if !exists {
			continue
		}
		v, found := l.Node(segments)
		if !found {
			continue
		}
		if o.ignoreNulls && v == nil {
			continue
		}
		return v, true
	}
	return nil, false
}

// Has reports whether Get would resolve a value at path under the
// same options.
func (c *Config) Has(path string, opts ...GetOption) bool {
	_, ok := c.GetOK(path, opts...)
	return ok
}
