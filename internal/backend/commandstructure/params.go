package commandstructure

import (
	"fmt"
	"math"
)

// GetStringParam safely extracts a string parameter from the params map
func GetStringParam(params map[string]any, key string, defaultValue string) string {
	if val, ok := params[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return defaultValue
}

// GetIntParam safely extracts an int parameter from the params map.
// Floats are accepted only when they hold a whole number.
func GetIntParam(params map[string]any, key string, defaultValue int) int {
	if val, ok := params[key]; ok {
		if v, ok := asInt(val); ok {
			return v
		}
	}
	return defaultValue
}

func asInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int(v), true
		}
	}
	return 0, false
}

// GetFloatParam safely extracts a float parameter from the params map.
// YAML decodes whole numbers as int, so integer values are accepted too.
func GetFloatParam(params map[string]any, key string, defaultValue float64) float64 {
	if val, ok := params[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case float32:
			return float64(v)
		case int:
			return float64(v)
		case int64:
			return float64(v)
		}
	}
	return defaultValue
}

// ValidateRequiredParams checks that all required parameters are present
func ValidateRequiredParams(params map[string]any, required []string) error {
	for _, key := range required {
		if _, ok := params[key]; !ok {
			return fmt.Errorf("missing required parameter: %s", key)
		}
	}
	return nil
}

// ValidateIntParams checks that the given parameters, when present, are whole numbers
func ValidateIntParams(params map[string]any, keys []string) error {
	for _, key := range keys {
		val, ok := params[key]
		if !ok {
			continue
		}
		if _, ok := asInt(val); !ok {
			return fmt.Errorf("parameter %s must be an integer, got %v", key, val)
		}
	}
	return nil
}

// MergeParams returns a new map holding base overlaid with overrides
func MergeParams(base, overrides map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
