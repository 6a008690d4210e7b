package wishlist

import (
	"encoding/json"
	"strings"
)

// IDSet is an ordered, deduplicated set of product id strings. Newly added ids
// go to the front, matching the storefront's "most recently saved first"
// ordering.
type IDSet struct {
	ids []string
}

// NewIDSet builds a set from the given ids, trimming whitespace and dropping
// empties and duplicates while preserving first-seen order
func NewIDSet(ids ...string) IDSet {
	s := IDSet{}
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	return s
}

// ParseRaw decodes a persisted wishlist blob. It tolerates every shape the
// legacy storefront ever wrote: a JSON array of ids, a double-encoded array
// (stringified JSON inside a JSON string), and a bare id with no brackets.
// Undecodable input yields an empty set.
func ParseRaw(raw []byte) IDSet {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return IDSet{}
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()

	var arr []any
	if err := dec.Decode(&arr); err == nil {
		return fromAny(arr)
	}

	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &arr); err == nil {
			return fromAny(arr)
		}
		return NewIDSet(inner)
	}

	// a single id stored without quoting
	if !strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "{") {
		return NewIDSet(trimmed)
	}
	return IDSet{}
}

func fromAny(arr []any) IDSet {
	ids := make([]string, 0, len(arr))
	for _, v := range arr {
		switch x := v.(type) {
		case string:
			ids = append(ids, x)
		case json.Number:
			ids = append(ids, x.String())
		}
	}
	return NewIDSet(ids...)
}

// IDs returns a copy of the ids in order
func (s IDSet) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Count returns the number of ids in the set
func (s IDSet) Count() int {
	return len(s.ids)
}

// Contains reports whether the id is in the set
func (s IDSet) Contains(id string) bool {
	id = strings.TrimSpace(id)
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Add returns a set with the id prepended. Adding a present or empty id
// returns the set unchanged.
func (s IDSet) Add(id string) IDSet {
	id = strings.TrimSpace(id)
	if id == "" || s.Contains(id) {
		return s.clone()
	}
	next := make([]string, 0, len(s.ids)+1)
	next = append(next, id)
	next = append(next, s.ids...)
	return IDSet{ids: next}
}

// Remove returns a set without the id. Removing an absent id is a no-op.
func (s IDSet) Remove(id string) IDSet {
	id = strings.TrimSpace(id)
	next := make([]string, 0, len(s.ids))
	for _, v := range s.ids {
		if v != id {
			next = append(next, v)
		}
	}
	return IDSet{ids: next}
}

// Equal reports whether both sets hold the same ids in the same order
func (s IDSet) Equal(other IDSet) bool {
	if len(s.ids) != len(other.ids) {
		return false
	}
	for i := range s.ids {
		if s.ids[i] != other.ids[i] {
			return false
		}
	}
	return true
}

func (s IDSet) clone() IDSet {
	return IDSet{ids: s.IDs()}
}

// MarshalJSON encodes the set as a plain JSON array of ids
func (s IDSet) MarshalJSON() ([]byte, error) {
	if s.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.ids)
}
