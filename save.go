package kasane

import (
	"context"
	"path/filepath"

	hjsonformat "github.com/yacchi/kasane/format/hjson"
	"github.com/yacchi/kasane/layer"
	"github.com/yacchi/kasane/source/fs"
)

// layerSnapshot carries a point-in-time copy of one layer's state so
// encoding and disk I/O can run without holding the store lock.
type layerSnapshot struct {
	name layer.Name
	data map[string]any
}

// SaveLayer persists the named layer into dir as
// "<normalizedName>.hjson" (the native persistence format), writing
// atomically and creating parent directories as needed. The layer's
// WriteToDisk flag is not consulted; an explicit single-layer save
// always writes. Returns *UnknownLayerError if the layer is not
// registered.
func (c *Config) SaveLayer(ctx context.Context, dir, name string) error {
	c.mu.RLock()
	l := c.layers[layer.NormalizeName(name)]
	var snap layerSnapshot
	if l != nil {
		snap = layerSnapshot{name: l.Name(), data: l.Data()}
	}
	c.mu.RUnlock()

	if l == nil {
		return &UnknownLayerError{Name: name}
	}
	return saveSnapshot(ctx, dir, snap)
}

// SaveDirectory persists every layer flagged WriteToDisk into dir,
// one file per layer, in priority order. The save is best-effort: the
// first failing write aborts the operation and already-written files
// are left in place.
func (c *Config) SaveDirectory(ctx context.Context, dir string) error {
	c.mu.RLock()
	snaps := make([]layerSnapshot, 0, len(c.order))
	for _, name := range c.order {
		if l := c.layers[name]; l.WriteToDisk() {
			snaps = append(snaps, layerSnapshot{name: l.Name(), data: l.Data()})
		}
	}
	c.mu.RUnlock()

	for _, snap := range snaps {
		if err := saveSnapshot(ctx, dir, snap); err != nil {
			return err
		}
	}
	return nil
}

// saveSnapshot encodes one layer snapshot with the native document
// and writes it.
func saveSnapshot(ctx context.Context, dir string, snap layerSnapshot) error {
	doc := hjsonformat.New()
	data, err := doc.Encode(snap.data)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, string(snap.name)+doc.Extension())
	return fs.NewFile(path).Save(ctx, data)
}
