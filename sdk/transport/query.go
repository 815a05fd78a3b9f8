package transport

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// EncodeQuery renders params as a query string. Keys are sorted, slices are
// flattened with indexed keys (ids[0]=1&ids[1]=2) and nil values are left
// out. Keys and values are percent-encoded; brackets stay literal.
func EncodeQuery(params Params) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		v := params[k]
		if v == nil {
			continue
		}

		rv := reflect.ValueOf(v)
		if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && !isBytes(rv) {
			idx := 0
			for i := 0; i < rv.Len(); i++ {
				elem := rv.Index(i).Interface()
				if elem == nil {
					continue
				}
				parts = append(parts, escape(k)+"["+strconv.Itoa(idx)+"]="+escape(formatValue(elem)))
				idx++
			}
			continue
		}

		parts = append(parts, escape(k)+"="+escape(formatValue(v)))
	}

	return strings.Join(parts, "&")
}

func isBytes(rv reflect.Value) bool {
	return rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case json.Number:
		return val.String()
	case fmt.Stringer:
		return val.String()
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Struct:
		b, err := json.Marshal(v)
		if err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(v)
}

// joinURL appends path and an encoded query to base.
func joinURL(base, path, query string) string {
	target := base + path
	if query == "" {
		return target
	}
	if strings.Contains(path, "?") {
		return target + "&" + query
	}
	return target + "?" + query
}
