// Package kasane provides a layered key/value configuration store.
//
// The name comes from the Japanese word for stacking (重ね). Named data
// layers are stacked in an explicit priority order: reads search layers
// highest-priority-first and return the first defined value, while
// writes target a chosen layer. Together the layers behave like a
// single configuration tree without ever being merged destructively.
//
// Key features:
//   - Named layers with an explicit, re-orderable priority list
//   - Dotted (or custom-separator) path addressing into nested maps
//   - Per-query layer restriction and null-aware resolution
//   - HJSON and JSON(C) file and directory loading with atomic rollback
//   - Environment variable ingestion with filtering and nesting rules
//   - Per-layer persistence back to disk
package kasane

// DefaultPathSeparator is the path separator used by New unless
// overridden with WithPathSeparator.
const DefaultPathSeparator = "."
