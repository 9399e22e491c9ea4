package kasane

import "strings"

// SplitPath splits a raw path into its canonical segment sequence
// using the configuration's current separator. The separator is
// matched as a literal substring; each piece is trimmed of
// surrounding whitespace and empty pieces are dropped, so repeated
// separators, leading/trailing separators, and whitespace-padded
// segments all normalize away.
//
//	c.SplitPath("..a. .b..") // → ["a", "b"] with separator "."
func (c *Config) SplitPath(path string) []string {
	c.mu.RLock()
	sep := c.separator
	c.mu.RUnlock()
	return splitPath(path, sep)
}

func splitPath(path, sep string) []string {
	parts := strings.Split(path, sep)
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		segments = append(segments, p)
	}
	return segments
}

// PathSeparator returns the current path separator.
func (c *Config) PathSeparator() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.separator
}

// SetPathSeparator changes the path separator for all subsequent
// calls. One or more characters are allowed; an empty separator is
// ignored.
func (c *Config) SetPathSeparator(sep string) {
	if sep == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.separator = sep
}
