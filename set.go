package kasane

import "github.com/yacchi/kasane/layer"

// Set stores value at path in the current highest-priority layer.
// Returns *EmptyPathError if the path splits to zero segments, or
// ErrNoLayers if no layers are registered. A nil value stores an
// explicit null; use Delete to remove a node.
func (c *Config) Set(path string, value any) error {
	return c.SetTo("", path, value)
}

// SetTo stores value at path in the named layer. A blank layer name
// routes to the current highest-priority layer, like Set. If the
// named layer does not exist yet, an empty layer with that name is
// implicitly created at the highest-priority position - a side effect
// callers must expect. The implicit name is normalized exactly like
// AddLayer's.
func (c *Config) SetTo(layerName, path string, value any) error {
	return c.write(layerName, path, func(target *layer.Layer, segments []string) {
		target.SetNode(segments, value)
	})
}

// Delete removes the node at path (and its subtree) from the current
// highest-priority layer. Validation matches Set; deleting an absent
// node is a silent no-op.
func (c *Config) Delete(path string) error {
	return c.DeleteFrom("", path)
}

// DeleteFrom removes the node at path from the named layer, with the
// same routing rules as SetTo.
func (c *Config) DeleteFrom(layerName, path string) error {
	return c.write(layerName, path, func(target *layer.Layer, segments []string) {
		target.DeleteNode(segments)
	})
}

// write validates the path, resolves (or implicitly creates) the
// target layer, and applies fn to it. The write lock is held across
// the mutation so layer data is never modified outside the mutex.
func (c *Config) write(layerName, path string, fn func(*layer.Layer, []string)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	segments := splitPath(path, c.separator)
	if len(segments) == 0 {
		return &EmptyPathError{Path: path}
	}

	var target *layer.Layer
	if layerName == "" {
		if len(c.order) == 0 {
			return ErrNoLayers
		}
		target = c.layers[c.order[0]]
	} else {
		name := layer.NormalizeName(layerName)
		var exists bool
		target, exists = c.layers[name]
		if !exists {
			target = c.addLayerAtLocked(layerName, nil, 0)
		}
	}

	fn(target, segments)
	return nil
}
