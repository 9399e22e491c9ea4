package layer

// CopyMap returns a deep copy of a nested map[string]any tree,
// recursively copying nested mappings and []any slices. Leaf values
// of other types are carried over as-is.
func CopyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = copyValue(v)
	}
	return dst
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return CopyMap(val)
	case []any:
		dst := make([]any, len(val))
		for i, elem := range val {
			dst[i] = copyValue(elem)
		}
		return dst
	default:
		return v
	}
}
