// Package env provides an environment variable source for kasane
// configurations. The source turns the process environment into a
// single mapping tree, with configurable name filtering and optional
// nesting by a name separator.
package env

import (
	"os"
	"regexp"
	"strings"
)

// defaultEnviron indirects os.Environ so tests can swap it per Source.
var defaultEnviron = os.Environ

// DefaultLayerName is the layer name used when none is configured.
const DefaultLayerName = "process_env"

// Source builds a configuration mapping from environment variables.
type Source struct {
	name      string
	lowerCase bool
	whitelist []string
	match     *regexp.Regexp
	separator string
	environ   func() []string
}

// Option configures a Source.
type Option func(*Source)

// WithName sets the layer name for the resulting layer.
// Default is "process_env".
func WithName(name string) Option {
	return func(s *Source) {
		s.name = name
	}
}

// WithLowerCase controls whether variable names are lowercased before
// filtering and key construction. Default is true.
func WithLowerCase(enabled bool) Option {
	return func(s *Source) {
		s.lowerCase = enabled
	}
}

// WithWhitelist restricts ingestion to the listed variable names.
// An empty whitelist (the default) means no name-list filtering.
// Whitelist entries are compared after the lowercase rule is applied.
func WithWhitelist(names ...string) Option {
	return func(s *Source) {
		s.whitelist = append(s.whitelist, names...)
	}
}

// WithMatch restricts ingestion to variable names matching re.
// The pattern is applied after the lowercase rule. Default is no
// pattern filtering.
func WithMatch(re *regexp.Regexp) Option {
	return func(s *Source) {
		s.match = re
	}
}

// WithSeparator splits each variable name on sep and stores the value
// under the resulting nested path instead of a flat key.
//
// Example: with separator "_", "DB_HOST=x" becomes {db: {host: "x"}}.
func WithSeparator(sep string) Option {
	return func(s *Source) {
		s.separator = sep
	}
}

// WithEnviron overrides the environment reader, mainly for tests.
// The function must return entries in "KEY=value" form.
func WithEnviron(environ func() []string) Option {
	return func(s *Source) {
		s.environ = environ
	}
}

// New creates an environment variable source.
//
// Example:
//
//	src := env.New(
//	    env.WithMatch(regexp.MustCompile(`^app_`)),
//	    env.WithSeparator("_"),
//	)
//	data := src.Load()
func New(opts ...Option) *Source {
	s := &Source{
		name:      DefaultLayerName,
		lowerCase: true,
		environ:   nil,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the configured layer name.
func (s *Source) Name() string {
	return s.name
}

// Load reads the environment and returns the resulting mapping tree.
// Values are always strings; nesting only occurs when a separator is
// configured.
func (s *Source) Load() map[string]any {
	environ := s.environ
	if environ == nil {
		environ = defaultEnviron
	}

	data := make(map[string]any)
	for _, entry := range environ() {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if s.lowerCase {
			key = strings.ToLower(key)
		}
		if !s.accept(key) {
			continue
		}

		if s.separator == "" {
			data[key] = value
			continue
		}
		segments := splitName(key, s.separator)
		if len(segments) == 0 {
			continue
		}
		setNested(data, segments, value)
	}
	return data
}

// accept applies the whitelist and match filters to a processed name.
func (s *Source) accept(key string) bool {
	if len(s.whitelist) > 0 {
		found := false
		for _, allowed := range s.whitelist {
			if s.lowerCase {
				allowed = strings.ToLower(allowed)
			}
			if key == allowed {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if s.match != nil && !s.match.MatchString(key) {
		return false
	}
	return true
}

// splitName splits a variable name on sep, dropping empty pieces so
// leading, trailing, and repeated separators are tolerated.
func splitName(name, sep string) []string {
	parts := strings.Split(name, sep)
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		segments = append(segments, p)
	}
	return segments
}

// setNested stores value under segments, creating intermediate maps
// and overwriting non-map values in the way.
func setNested(data map[string]any, segments []string, value string) {
	current := data
	for _, seg := range segments[:len(segments)-1] {
		next, ok := current[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[seg] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value
}
