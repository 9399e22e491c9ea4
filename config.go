package kasane

import (
	"slices"
	"sync"

	"github.com/yacchi/kasane/layer"
)

// Config is a layered configuration store. Named layers are stacked
// in an explicit priority order (index 0 = highest); reads search
// layers in that order and return the first defined value, writes
// target a chosen layer.
//
// The layer order is the sole authority for search and default-write
// priority, and is always exactly the key set of the registered
// layers. All methods are safe for concurrent use.
type Config struct {
	// layers maps normalized names to their layer.
	layers map[layer.Name]*layer.Layer

	// order holds normalized layer names, highest priority first.
	order []layer.Name

	// separator is the current path separator.
	separator string

	// mu protects layers, order, and separator.
	mu sync.RWMutex
}

// Option is a functional option for configuring Config creation.
type Option func(*Config)

// WithPathSeparator sets the initial path separator.
// Default is ".". Empty separators are ignored.
func WithPathSeparator(sep string) Option {
	return func(c *Config) {
		if sep != "" {
			c.separator = sep
		}
	}
}

// New creates an empty layered configuration.
//
// Example:
//
//	cfg := kasane.New()
//	cfg.AddLayer("defaults", map[string]any{"host": "localhost"})
//	cfg.AddLayer("user", nil)
//	host := cfg.Get("host")
func New(opts ...Option) *Config {
	c := &Config{
		layers:    make(map[layer.Name]*layer.Layer),
		separator: DefaultPathSeparator,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddLayer registers a new layer at the highest priority position.
// The data tree is deep-copied. If a layer with the same normalized
// name already exists it is replaced, not merged.
func (c *Config) AddLayer(name string, data map[string]any) *layer.Layer {
	return c.AddLayerAt(name, data, 0)
}

// AddLayerAt registers a new layer at the given priority index.
// Indices below zero clamp to the highest priority position; indices
// beyond the end clamp to the lowest. Any pre-existing layer with the
// same normalized name is removed first, so re-adding is a
// destructive replace.
func (c *Config) AddLayerAt(name string, data map[string]any, index int) *layer.Layer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addLayerAtLocked(name, data, index)
}

// addLayerAtLocked implements layer insertion. Caller must hold the
// write lock.
func (c *Config) addLayerAtLocked(name string, data map[string]any, index int) *layer.Layer {
	l := layer.New(name, data)
	c.removeLayerLocked(l.Name())

	if index < 0 {
		index = 0
	}
	if index > len(c.order) {
		index = len(c.order)
	}
	c.order = slices.Insert(c.order, index, l.Name())
	c.layers[l.Name()] = l
	return l
}

// AddLayerBefore registers a new layer directly above otherName in
// priority. If otherName is not registered, the new layer becomes the
// highest priority layer.
func (c *Config) AddLayerBefore(name string, data map[string]any, otherName string) *layer.Layer {
	c.mu.Lock()
	defer c.mu.Unlock()

	index := slices.Index(c.order, layer.NormalizeName(otherName))
	if index < 0 {
		index = 0
	}
	return c.addLayerAtLocked(name, data, index)
}

// AddLayerAfter registers a new layer directly below otherName in
// priority. If otherName is not registered, the new layer becomes the
// lowest priority layer.
func (c *Config) AddLayerAfter(name string, data map[string]any, otherName string) *layer.Layer {
	c.mu.Lock()
	defer c.mu.Unlock()

	index := slices.Index(c.order, layer.NormalizeName(otherName))
	if index < 0 {
		index = len(c.order)
	} else {
		index++
	}
	return c.addLayerAtLocked(name, data, index)
}

// RemoveLayer unregisters the named layers from both the priority
// order and the layer set. Unknown names are silent no-ops.
func (c *Config) RemoveLayer(names ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, name := range names {
		c.removeLayerLocked(layer.NormalizeName(name))
	}
}

// removeLayerLocked removes one normalized name. Caller must hold the
// write lock.
func (c *Config) removeLayerLocked(name layer.Name) {
	if _, ok := c.layers[name]; !ok {
		return
	}
	delete(c.layers, name)
	if i := slices.Index(c.order, name); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
}

// RemoveAllLayers unregisters every layer.
func (c *Config) RemoveAllLayers() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.layers = make(map[layer.Name]*layer.Layer)
	c.order = nil
}

// ClearLayer resets the named layers to empty data, leaving them
// registered at their current priority. Unknown names are silently
// skipped.
func (c *Config) ClearLayer(names ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, name := range names {
		if l, ok := c.layers[layer.NormalizeName(name)]; ok {
			l.Clear()
		}
	}
}

// ClearAllLayers resets every registered layer to empty data.
func (c *Config) ClearAllLayers() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range c.layers {
		l.Clear()
	}
}

// LayerNames returns the layer names in priority order, highest
// first. The returned slice is a defensive copy.
func (c *Config) LayerNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, len(c.order))
	for i, name := range c.order {
		names[i] = string(name)
	}
	return names
}

// Layer returns the layer with the given name, or nil if it is not
// registered. The name is normalized before lookup.
func (c *Config) Layer(name string) *layer.Layer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.layers[layer.NormalizeName(name)]
}
