package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

// Parameter is sent as the query string or as a form body. Keys are encoded
// in sorted order, so the encoding can be signed.
type Parameter map[string]string

func (p Parameter) ToReader() (io.Reader, string, error) {
	return strings.NewReader(p.Encode()), "application/x-www-form-urlencoded", nil
}

func (p Parameter) Encode() string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, PercentEncode(key)+"="+PercentEncode(p[key]))
	}
	return strings.Join(pairs, "&")
}

type JSON map[string]any

type Array []any

func (j JSON) ToReader() (io.Reader, string, error) {
	b, err := json.Marshal(j)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(b), "application/json", nil
}

// GetInt accepts only whole numbers, json numbers are decoded as float64.
func (j JSON) GetInt(key string) (int, error) {
	value, err := j.Get(key)
	if err != nil {
		return 0, err
	}

	switch t := value.(type) {
	case int:
		return t, nil
	case float64:
		if t == float64(int(t)) {
			return int(t), nil
		}
	}

	return 0, fmt.Errorf("field %s is not an integer (%v)", key, value)
}

func (j JSON) GetArray(key string) (Array, error) {
	value, err := j.Get(key)
	if err != nil {
		return nil, err
	}

	switch t := value.(type) {
	case nil:
		return nil, nil
	case Array:
		return t, nil
	case []any:
		return Array(t), nil
	}

	return nil, fmt.Errorf("field %s is not an array (%T)", key, value)
}

// GetString returns empty for a null field.
func (j JSON) GetString(key string) (string, error) {
	value, err := j.Get(key)
	if err != nil {
		return "", err
	}

	switch t := value.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	}

	return "", fmt.Errorf("field %s is not a string (%T)", key, value)
}

// Get supports dotted keys to reach a nested object, e.g. "customer.email".
func (j JSON) Get(key string) (any, error) {
	key, subKey, nested := strings.Cut(key, ".")

	value, ok := j[key]
	if !ok {
		return nil, fmt.Errorf("not found field %s", key)
	}

	if !nested {
		return value, nil
	}

	switch t := value.(type) {
	case map[string]any:
		return JSON(t).Get(subKey)
	case JSON:
		return t.Get(subKey)
	}

	return nil, fmt.Errorf("field %s is not an object (%T)", key, value)
}

// parseBody returns JSON or Array, or nil if body is neither. An empty body
// is an empty JSON.
func parseBody(body []byte) any {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return JSON{}
	}

	switch body[0] {
	case '{':
		result := JSON{}
		if err := json.Unmarshal(body, &result); err == nil {
			return result
		}
	case '[':
		result := Array{}
		if err := json.Unmarshal(body, &result); err == nil {
			return result
		}
	}

	return nil
}

type Response struct {
	Code    int
	Header  http.Header
	Body    any
	RawBody []byte
}

// IsSuccess reports whether the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.Code >= 200 && r.Code < 300
}
