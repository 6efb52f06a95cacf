package components

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Scene files decode numbers as float64 and vectors as []any.

func propFloat(data map[string]any, key string, fallback float32) float32 {
	if v, ok := data[key].(float64); ok {
		return float32(v)
	}
	return fallback
}

func propBool(data map[string]any, key string, fallback bool) bool {
	if v, ok := data[key].(bool); ok {
		return v
	}
	return fallback
}

func propVector(data map[string]any, key string, fallback rl.Vector3) (rl.Vector3, error) {
	raw, ok := data[key]
	if !ok {
		return fallback, nil
	}
	list, ok := raw.([]any)
	if !ok || len(list) != 3 {
		return fallback, fmt.Errorf("%s: want 3 numbers, got %v", key, raw)
	}
	var out [3]float32
	for i, v := range list {
		f, ok := v.(float64)
		if !ok {
			return fallback, fmt.Errorf("%s: element %d is %T, not a number", key, i, v)
		}
		out[i] = float32(f)
	}
	return rl.Vector3{X: out[0], Y: out[1], Z: out[2]}, nil
}

func vectorProp(v rl.Vector3) []any {
	return []any{float64(v.X), float64(v.Y), float64(v.Z)}
}
