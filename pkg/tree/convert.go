package tree

import (
	"encoding/json"
)

// ToAny converts v into plain Go values: nil, bool, string, json.Number, []any and
// map[string]any. This is the shape JSON-schema engines consume.
func ToAny(v Value) any {
	switch t := v.(type) {
	case Null:
		return nil
	case Boolean:
		return bool(t)
	case String:
		return string(t)
	case Number:
		return json.Number(t)
	case *Array:
		out := make([]any, len(t.Items))
		for i, item := range t.Items {
			out[i] = ToAny(item)
		}
		return out
	case *Object:
		out := make(map[string]any, len(t.keys))
		for _, k := range t.keys {
			out[k] = ToAny(t.fields[k])
		}
		return out
	default:
		return nil
	}
}
