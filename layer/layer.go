// Package layer provides the named data layer that backs a kasane
// configuration. A layer owns exactly one tree of nested mappings and
// exposes node access by a pre-split path; it has no knowledge of
// other layers or of priority ordering, which is managed by the
// owning Config.
package layer

import "strings"

// Name is a unique identifier for a configuration layer.
//
// A Name is always in normalized form: characters that commonly appear
// in file paths (".", "/", "\", ":") are replaced with "_" so that
// names derived from file paths are collision-safe map keys. Use
// NormalizeName to produce one from arbitrary input.
type Name string

// nameNormalizer rewrites path-like characters to underscores.
var nameNormalizer = strings.NewReplacer(".", "_", "/", "_", "\\", "_", ":", "_")

// NormalizeName converts an arbitrary layer name into its normalized
// form. All layer-name parameters must be normalized identically
// before lookup or comparison, so every entry point funnels through
// this function.
func NormalizeName(name string) Name {
	return Name(nameNormalizer.Replace(name))
}

// Layer is a single named configuration data tree.
//
// The layer exclusively owns its data: the tree passed to New is
// deep-copied, so later mutations of the caller's map never become
// visible through the layer. Values returned by Node alias the
// internal tree and must be treated as read-only; use Data for a
// detached copy.
type Layer struct {
	name Name
	data map[string]any

	// writeToDisk marks the layer for inclusion in directory-wide
	// saves. Defaults to false.
	writeToDisk bool
}

// New creates a layer with the given name and initial data.
// The name is normalized and the data tree is deep-copied.
// A nil data map yields an empty layer.
func New(name string, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		name: NormalizeName(name),
		data: CopyMap(data),
	}
}

// Name returns the layer's normalized name.
func (l *Layer) Name() Name {
	return l.name
}

// Clear resets the layer's data to an empty mapping.
func (l *Layer) Clear() {
	l.data = make(map[string]any)
}

// WriteToDisk reports whether the layer participates in
// directory-wide saves.
func (l *Layer) WriteToDisk() bool {
	return l.writeToDisk
}

// SetWriteToDisk marks or unmarks the layer for directory-wide saves.
func (l *Layer) SetWriteToDisk(enabled bool) {
	l.writeToDisk = enabled
}

// Data returns a deep copy of the layer's current data tree.
func (l *Layer) Data() map[string]any {
	return CopyMap(l.data)
}

// Node walks the data tree following segments in order and returns
// the value at the final segment. At every step the current context
// must be a mapping that possesses the next segment as a key,
// otherwise the walk stops and ok is false. The returned value may be
// of any type, including nil (an explicitly stored null), a leaf, or
// a whole sub-mapping branch.
//
// Node never mutates the tree and never mutates segments; the same
// segment slice can be handed to any number of layers.
func (l *Layer) Node(segments []string) (value any, ok bool) {
	current := any(l.data)
	for _, seg := range segments {
		m, isMap := current.(map[string]any)
		if !isMap {
			return nil, false
		}
		next, exists := m[seg]
		if !exists {
			return nil, false
		}
		current = next
	}
	return current, true
}

// SetNode stores value at the node addressed by segments, creating
// intermediate mappings as needed. A non-mapping value sitting where
// an intermediate mapping is required is overwritten by a fresh
// mapping; the write is destructive by design. The terminal segment's
// previous value or subtree is replaced. Empty segments is a no-op.
func (l *Layer) SetNode(segments []string, value any) {
	if len(segments) == 0 {
		return
	}
	parent := l.walkCreate(segments[:len(segments)-1])
	parent[segments[len(segments)-1]] = value
}

// DeleteNode removes the node addressed by segments together with its
// subtree. Missing paths and empty segments are silent no-ops.
func (l *Layer) DeleteNode(segments []string) {
	if len(segments) == 0 {
		return
	}
	current := l.data
	for _, seg := range segments[:len(segments)-1] {
		next, ok := current[seg].(map[string]any)
		if !ok {
			return
		}
		current = next
	}
	delete(current, segments[len(segments)-1])
}

// walkCreate descends through segments, creating or replacing
// intermediate nodes so that every visited position is a mapping.
// Returns the mapping at the final position.
func (l *Layer) walkCreate(segments []string) map[string]any {
	current := l.data
	for _, seg := range segments {
		if next, ok := current[seg].(map[string]any); ok {
			current = next
			continue
		}
		next := make(map[string]any)
		current[seg] = next
		current = next
	}
	return current
}
