package upstream

import "encoding/json"

// DecodeList unwraps the three list envelope shapes the payroll API is known
// to answer with: a bare array, {"data": [...]}, or {"data": {"data": [...]}}.
// Shapes are probed in that order and the first one that is an array wins.
// Anything else decodes to an empty list; ok reports whether a recognized
// shape was found.
func DecodeList(raw []byte) (items []json.RawMessage, ok bool) {
	if len(raw) == 0 {
		return nil, false
	}

	if err := json.Unmarshal(raw, &items); err == nil {
		return items, true
	}

	var outer struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &outer); err != nil || len(outer.Data) == 0 {
		return nil, false
	}

	if err := json.Unmarshal(outer.Data, &items); err == nil {
		return items, true
	}

	var inner struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(outer.Data, &inner); err != nil || len(inner.Data) == 0 {
		return nil, false
	}

	if err := json.Unmarshal(inner.Data, &items); err == nil {
		return items, true
	}

	return nil, false
}

// DecodeEntity unwraps a mutation response: the created/updated entity may
// arrive bare or wrapped in {"data": entity}.
func DecodeEntity(raw []byte) json.RawMessage {
	var outer struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &outer); err == nil && len(outer.Data) > 0 {
		var probe map[string]json.RawMessage
		if json.Unmarshal(outer.Data, &probe) == nil {
			return outer.Data
		}
	}
	return raw
}
