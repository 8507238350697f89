package quest

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// decodeExact decodes data into dst (a pointer to struct) matching object
// keys to json tags exactly. encoding/json folds case, so a key that only
// case-folds to a field is dropped before decoding and the field reads as
// absent. Type mismatches are reported as issues with indexed paths.
func decodeExact(data []byte, dst any) *ValidationError {
	if !json.Valid(data) {
		return decodeError(json.Unmarshal(data, dst))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return decodeError(err)
	}

	var issues []Issue
	tree = conform(tree, reflect.TypeOf(dst).Elem(), nil, &issues)
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}

	buf, err := json.Marshal(tree)
	if err != nil {
		return decodeError(err)
	}
	if err := json.Unmarshal(buf, dst); err != nil {
		return decodeError(err)
	}
	return nil
}

// conform walks v against t. It drops case-folded keys and records a type
// issue wherever the JSON kind cannot decode into t. null is left for the
// validator.
func conform(v any, t reflect.Type, path []string, issues *[]Issue) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if v == nil {
		return nil
	}

	mismatch := func() any {
		*issues = append(*issues, Issue{
			Path:    strings.Join(path, "."),
			Message: "Expected " + kindName(t.Kind()) + ", received " + jsonKind(v),
		})
		return v
	}

	switch t.Kind() {
	case reflect.Struct:
		obj, ok := v.(map[string]any)
		if !ok {
			return mismatch()
		}
		fields := jsonFields(t)
		for key, val := range obj {
			if ft, ok := fields[key]; ok {
				obj[key] = conform(val, ft, append(path[:len(path):len(path)], key), issues)
				continue
			}
			for name := range fields {
				if strings.EqualFold(key, name) {
					delete(obj, key)
					break
				}
			}
		}
		return obj
	case reflect.Slice:
		arr, ok := v.([]any)
		if !ok {
			return mismatch()
		}
		for i := range arr {
			arr[i] = conform(arr[i], t.Elem(), append(path[:len(path):len(path)], strconv.Itoa(i)), issues)
		}
		return arr
	case reflect.String:
		if _, ok := v.(string); !ok {
			return mismatch()
		}
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int32, reflect.Int64:
		if _, ok := v.(json.Number); !ok {
			return mismatch()
		}
	case reflect.Bool:
		if _, ok := v.(bool); !ok {
			return mismatch()
		}
	}
	return v
}

func jsonFields(t reflect.Type) map[string]reflect.Type {
	fields := make(map[string]reflect.Type, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fields[name] = f.Type
	}
	return fields
}

func kindName(k reflect.Kind) string {
	switch k {
	case reflect.String:
		return "string"
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64, reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return k.String()
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return reflect.TypeOf(v).String()
	}
}
