package apiclient

import (
	"bytes"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

// DecodeList normalizes a list response. A bare array is decoded as-is; an object
// envelope yields the array under key; anything else is an empty list.
func DecodeList[T any](raw jsoniter.RawMessage, key string) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	out := []T{}
	if len(raw) == 0 {
		return out, nil
	}

	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, errors.Wrap(err, "decode list")
		}
		return out, nil
	case '{':
		var envelope map[string]jsoniter.RawMessage
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, errors.Wrap(err, "decode list envelope")
		}
		inner, ok := envelope[key]
		if !ok || len(bytes.TrimSpace(inner)) == 0 || bytes.TrimSpace(inner)[0] != '[' {
			return out, nil
		}
		if err := json.Unmarshal(inner, &out); err != nil {
			return nil, errors.Wrapf(err, "decode list %q", key)
		}
		return out, nil
	}
	return out, nil
}

// DecodeListOrOne is DecodeList for lookups that may answer with a single object,
// e.g. search by plate or document. A single object becomes a one-element list.
func DecodeListOrOne[T any](raw jsoniter.RawMessage, key string) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var envelope map[string]jsoniter.RawMessage
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, errors.Wrap(err, "decode lookup")
		}
		if _, ok := envelope[key]; !ok {
			var one T
			if err := json.Unmarshal(raw, &one); err != nil {
				return nil, errors.Wrap(err, "decode lookup")
			}
			return []T{one}, nil
		}
	}
	return DecodeList[T](raw, key)
}
