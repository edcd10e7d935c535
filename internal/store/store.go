package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrAborted is returned by a transaction function to abandon the write.
var ErrAborted = errors.New("transaction aborted")

// ServerTimestamp is replaced by the store with the time of the write in
// milliseconds since the epoch.
var ServerTimestamp = map[string]interface{}{".sv": "timestamp"}

// Store is a hierarchical key tree addressed by slash separated paths.
type Store interface {
	// Get returns a point-in-time snapshot of the subtree at path.
	Get(ctx context.Context, path string) (Snapshot, error)
	// Children returns the direct children matched by q in query order.
	Children(ctx context.Context, q Query) ([]Snapshot, error)
	// Set overwrites the subtree at path. A nil value removes it.
	Set(ctx context.Context, path string, v interface{}) error
	// Update applies all values atomically. Keys are paths relative to path.
	Update(ctx context.Context, path string, values map[string]interface{}) error
	// Push appends v under path with a generated, time ordered key. A nil v is
	// stored as "".
	Push(ctx context.Context, path string, v interface{}) (string, error)
	// Delete removes the subtree at path.
	Delete(ctx context.Context, path string) error
	// Transaction runs fn against the current value at path and writes the result
	// only if no concurrent writer changed it in between. fn may be invoked more
	// than once.
	Transaction(ctx context.Context, path string, fn TransactionFunc) error
}

// TransactionFunc receives the current value and returns the value to store.
type TransactionFunc func(current Snapshot) (interface{}, error)

// Query selects children of Path.
type Query struct {
	Path string
	// OrderByChild orders children by the value of a nested field. Empty means key order.
	OrderByChild string
	// EqualTo keeps only children whose ordered value equals it. Ignored when nil.
	EqualTo interface{}
	// LimitToFirst bounds the result to the first n children. Zero means unbounded.
	LimitToFirst int
}

// Snapshot is the JSON encoded value of a node.
type Snapshot struct {
	Key string
	Raw json.RawMessage
}

// NewSnapshot encodes v as a snapshot.
func NewSnapshot(key string, v interface{}) (Snapshot, error) {
	if v == nil {
		return Snapshot{Key: key}, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Key: key, Raw: raw}, nil
}

// Exists reports whether the node holds a value.
func (s Snapshot) Exists() bool {
	raw := strings.TrimSpace(string(s.Raw))
	return raw != "" && raw != "null"
}

// Unmarshal decodes the node into v. A missing node leaves v untouched.
func (s Snapshot) Unmarshal(v interface{}) error {
	if !s.Exists() {
		return nil
	}
	return json.Unmarshal(s.Raw, v)
}

// HasChildren reports whether the node is an object with at least one child.
func (s Snapshot) HasChildren() bool {
	res := s.result()
	return res.IsObject() && len(res.Map()) > 0
}

// Child returns the direct child called name.
func (s Snapshot) Child(name string) Snapshot {
	res := s.result().Get(gjson.Escape(name))
	if !res.Exists() {
		return Snapshot{Key: name}
	}
	return Snapshot{Key: name, Raw: json.RawMessage(res.Raw)}
}

// IsTrue reports whether the node holds the boolean true.
func (s Snapshot) IsTrue() bool {
	return s.result().Type == gjson.True
}

// String returns the node as a string, or "" when it is not a string.
func (s Snapshot) String() string {
	res := s.result()
	if res.Type != gjson.String {
		return ""
	}
	return res.Str
}

// ForEach calls fn for every direct child in natural key order.
func (s Snapshot) ForEach(fn func(child Snapshot) bool) {
	res := s.result()
	if !res.IsObject() {
		return
	}
	children := make([]Snapshot, 0)
	res.ForEach(func(key, value gjson.Result) bool {
		children = append(children, Snapshot{Key: key.String(), Raw: json.RawMessage(value.Raw)})
		return true
	})
	SortByKey(children)
	for _, c := range children {
		if !fn(c) {
			return
		}
	}
}

// Keys returns the direct child keys in natural key order.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0)
	s.ForEach(func(child Snapshot) bool {
		keys = append(keys, child.Key)
		return true
	})
	return keys
}

func (s Snapshot) result() gjson.Result {
	if !s.Exists() {
		return gjson.Result{}
	}
	return gjson.ParseBytes(s.Raw)
}

// Join builds a store path from segments, dropping empty ones.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		seg = strings.Trim(seg, "/")
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, "/")
}

// ValidKey reports whether s can be used as a single path segment.
func ValidKey(s string) bool {
	return s != "" && !strings.ContainsAny(s, ".$#[]/") && len(s) <= 768
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
