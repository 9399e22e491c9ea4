package kasane

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yacchi/kasane/document"
	"github.com/yacchi/kasane/env"
	hjsonformat "github.com/yacchi/kasane/format/hjson"
	jsoncformat "github.com/yacchi/kasane/format/jsonc"
	"github.com/yacchi/kasane/layer"
	"github.com/yacchi/kasane/source/fs"
)

// DocumentFor returns the document implementation for a filename
// based on its extension (case-insensitive). The recognized
// extensions are ".hjson" and ".json"; anything else fails with
// *UnsupportedFormatError.
func DocumentFor(filename string) (document.Document, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hjson":
		return hjsonformat.New(), nil
	case ".json":
		return jsoncformat.New(), nil
	}
	return nil, &UnsupportedFormatError{Filename: filename}
}

// LoadFile reads and decodes a single configuration file, then
// registers its content as a new highest-priority layer named after
// the file's base name without extension. The layer name is
// normalized, so path-derived names are collision-safe keys. An
// existing layer of the same name is replaced.
func (c *Config) LoadFile(ctx context.Context, path string) error {
	name, data, err := readFile(ctx, path)
	if err != nil {
		return err
	}
	c.AddLayer(name, data)
	return nil
}

// LoadDirectory loads every recognized configuration file in dir as a
// layer. Files are processed alphabetically by full filename, each
// becoming a highest-priority layer named after its base name; when
// two files share a base name across the recognized extensions, the
// later one wins through AddLayer's replace semantics (so "b.json"
// overrides "b.hjson").
//
// The load is transactional at the configuration level: all files are
// read and decoded before any layer is touched, so on any failure the
// configuration's layer set and order are exactly as they were before
// the call.
func (c *Config) LoadDirectory(ctx context.Context, dir string) error {
	names, err := fs.ListDir(dir)
	if err != nil {
		return err
	}

	type parsedFile struct {
		name string
		data map[string]any
	}

	// Decode everything up front; nothing is applied until every
	// file has parsed successfully.
	var batch []parsedFile
	for _, filename := range names {
		if !recognizedExtension(filename) {
			continue
		}
		name, data, err := readFile(ctx, filepath.Join(dir, filename))
		if err != nil {
			return fmt.Errorf("failed to load directory %q: %w", dir, err)
		}
		batch = append(batch, parsedFile{name: name, data: data})
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range batch {
		c.addLayerAtLocked(p.name, p.data, 0)
	}
	return nil
}

// LoadEnvironment builds a layer from the process environment using
// the given source options and registers it at the highest priority.
// The layer is named "process_env" unless env.WithName overrides it.
func (c *Config) LoadEnvironment(opts ...env.Option) *layer.Layer {
	src := env.New(opts...)
	l := c.AddLayer(src.Name(), src.Load())
	return l
}

// recognizedExtension reports whether filename is inside the
// two-extension allowlist, case-insensitively.
func recognizedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hjson", ".json":
		return true
	}
	return false
}

// readFile loads and decodes one file, returning the layer base name
// and the decoded mapping.
func readFile(ctx context.Context, path string) (string, map[string]any, error) {
	doc, err := DocumentFor(path)
	if err != nil {
		return "", nil, err
	}

	raw, err := fs.NewFile(path).Load(ctx)
	if err != nil {
		return "", nil, err
	}

	data, err := doc.Decode(raw)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode %q: %w", path, err)
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return name, data, nil
}
