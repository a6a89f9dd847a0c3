package document

// Clone returns a deep copy of a document tree. time.Time and other
// scalars are copied by value; maps and slices are rebuilt, so mutating
// the copy never reaches the original.
func Clone(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = Clone(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = Clone(child)
		}
		return out
	default:
		return v
	}
}
