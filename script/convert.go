package script

import (
	"strings"

	"github.com/d5/tengo/v2"
)

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.ImmutableArray:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}

func toFloat(obj tengo.Object) float64 {
	f, _ := tengo.ToFloat64(obj)
	return f
}

func toInt(obj tengo.Object) int {
	i, _ := tengo.ToInt(obj)
	return i
}

func toBool(obj tengo.Object) bool {
	if obj == nil {
		return false
	}
	return !obj.IsFalsy()
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func pair(x, y float64) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}
}

// toScore reads up to four integers from a tengo array.
func toScore(obj tengo.Object) [4]int {
	var out [4]int
	items, _ := objectToAny(obj).([]any)
	for i := 0; i < len(items) && i < len(out); i++ {
		switch n := items[i].(type) {
		case int:
			out[i] = n
		case float64:
			out[i] = int(n)
		}
	}
	return out
}
