package kasane

import (
	"fmt"

	"dario.cat/mergo"
)

// Merged returns a whole-tree snapshot that deep-merges every layer,
// lowest priority first, so higher-priority layers override on a
// per-key basis. This complements Get's strict first-match semantics:
// Get never merges branches across layers, Merged always does.
//
// The returned map is freshly built from deep copies and shares no
// storage with any layer.
func (c *Config) Merged() (map[string]any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	merged := make(map[string]any)
	for i := len(c.order) - 1; i >= 0; i-- {
		data := c.layers[c.order[i]].Data()
		if err := mergo.Merge(&merged, data, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge layer %q: %w", c.order[i], err)
		}
	}
	return merged, nil
}
