package http

import (
	"encoding/json"
	"fmt"
	"strings"
)

// projectFields converts items to JSON objects limited to fields.
//
// Plain names select the listed attributes (id is always kept). When every
// name starts with "-" the listed attributes are removed instead. No fields
// returns every attribute.
func projectFields[T any](items []T, fields []string) ([]map[string]any, error) {
	include, exclude := splitFields(fields)

	res := make([]map[string]any, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("error marshaling item for projection: %w", err)
		}

		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("error unmarshaling item for projection: %w", err)
		}

		switch {
		case len(include) > 0:
			for key := range obj {
				if _, ok := include[key]; !ok && key != "id" {
					delete(obj, key)
				}
			}
		case len(exclude) > 0:
			for key := range exclude {
				delete(obj, key)
			}
		}

		res = append(res, obj)
	}

	return res, nil
}

func splitFields(fields []string) (map[string]struct{}, map[string]struct{}) {
	include := make(map[string]struct{})
	exclude := make(map[string]struct{})

	for _, f := range fields {
		if name, ok := strings.CutPrefix(f, "-"); ok {
			exclude[name] = struct{}{}
			continue
		}
		include[f] = struct{}{}
	}

	return include, exclude
}
