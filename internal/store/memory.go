package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/tidwall/gjson"
)

// Op names a store operation for fault injection.
type Op string

const (
	OpGet         Op = "get"
	OpChildren    Op = "children"
	OpSet         Op = "set"
	OpUpdate      Op = "update"
	OpPush        Op = "push"
	OpDelete      Op = "delete"
	OpTransaction Op = "transaction"
)

// MemoryStore keeps the whole tree in process. Values are normalised through JSON
// so that nulls and empty objects disappear the way they do in the hosted database.
type MemoryStore struct {
	mu     sync.Mutex
	root   map[string]interface{}
	keys   *KeyGenerator
	faults map[Op][]error
}

// NewMemoryStore returns an empty tree.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		root:   map[string]interface{}{},
		keys:   NewKeyGenerator(),
		faults: map[Op][]error{},
	}
}

// FailNext makes the next call of op return err.
func (m *MemoryStore) FailNext(op Op, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults[op] = append(m.faults[op], err)
}

func (m *MemoryStore) fault(op Op) error {
	queue := m.faults[op]
	if len(queue) == 0 {
		return nil
	}
	m.faults[op] = queue[1:]
	return queue[0]
}

func (m *MemoryStore) Get(ctx context.Context, path string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fault(OpGet); err != nil {
		return Snapshot{}, err
	}
	return m.snapshot(path)
}

func (m *MemoryStore) Children(ctx context.Context, q Query) ([]Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fault(OpChildren); err != nil {
		return nil, err
	}

	node, ok := m.lookup(q.Path).(map[string]interface{})
	if !ok {
		return []Snapshot{}, nil
	}

	children := make([]Snapshot, 0, len(node))
	for key, value := range node {
		snap, err := NewSnapshot(key, value)
		if err != nil {
			return nil, err
		}
		children = append(children, snap)
	}

	if q.OrderByChild != "" {
		SortByChild(children, q.OrderByChild)
	} else {
		SortByKey(children)
	}

	if q.EqualTo != nil {
		filtered := children[:0]
		for _, child := range children {
			var v gjson.Result
			if q.OrderByChild != "" {
				v = childValue(child, gjson.Escape(q.OrderByChild))
			} else {
				v = gjson.Parse(strconv.Quote(child.Key))
			}
			if matchesEqual(v, q.EqualTo) {
				filtered = append(filtered, child)
			}
		}
		children = filtered
	}

	if q.LimitToFirst > 0 && len(children) > q.LimitToFirst {
		children = children[:q.LimitToFirst]
	}
	return children, nil
}

func (m *MemoryStore) Set(ctx context.Context, path string, v interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fault(OpSet); err != nil {
		return err
	}
	value, err := normalize(v)
	if err != nil {
		return err
	}
	m.write(path, value)
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, path string, values map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fault(OpUpdate); err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("update at %q: values must be a non-empty map", path)
	}

	// Normalise everything first so a bad value leaves the tree untouched.
	normalized := make(map[string]interface{}, len(values))
	for rel, v := range values {
		value, err := normalize(v)
		if err != nil {
			return fmt.Errorf("update at %q: %w", Join(path, rel), err)
		}
		normalized[rel] = value
	}
	for rel, value := range normalized {
		m.write(Join(path, rel), value)
	}
	return nil
}

func (m *MemoryStore) Push(ctx context.Context, path string, v interface{}) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fault(OpPush); err != nil {
		return "", err
	}
	if v == nil {
		v = ""
	}
	value, err := normalize(v)
	if err != nil {
		return "", err
	}
	key := m.keys.Next()
	m.write(Join(path, key), value)
	return key, nil
}

func (m *MemoryStore) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fault(OpDelete); err != nil {
		return err
	}
	m.write(path, nil)
	return nil
}

// Transaction holds the store lock while fn runs, so fn must not call back into
// the store.
func (m *MemoryStore) Transaction(ctx context.Context, path string, fn TransactionFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fault(OpTransaction); err != nil {
		return err
	}
	current, err := m.snapshot(path)
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	value, err := normalize(next)
	if err != nil {
		return err
	}
	m.write(path, value)
	return nil
}

func (m *MemoryStore) snapshot(path string) (Snapshot, error) {
	segments := splitPath(path)
	key := ""
	if len(segments) > 0 {
		key = segments[len(segments)-1]
	}
	return NewSnapshot(key, m.lookup(path))
}

func (m *MemoryStore) lookup(path string) interface{} {
	var node interface{} = m.root
	for _, seg := range splitPath(path) {
		branch, ok := node.(map[string]interface{})
		if !ok {
			return nil
		}
		node, ok = branch[seg]
		if !ok {
			return nil
		}
	}
	return node
}

// write stores value at path, creating parents as needed and pruning parents
// left empty by a removal.
func (m *MemoryStore) write(path string, value interface{}) {
	segments := splitPath(path)
	if len(segments) == 0 {
		if tree, ok := value.(map[string]interface{}); ok {
			m.root = tree
		} else {
			m.root = map[string]interface{}{}
		}
		return
	}

	parents := make([]map[string]interface{}, 0, len(segments))
	node := m.root
	for _, seg := range segments[:len(segments)-1] {
		parents = append(parents, node)
		next, ok := node[seg].(map[string]interface{})
		if !ok {
			if value == nil {
				return
			}
			next = map[string]interface{}{}
			node[seg] = next
		}
		node = next
	}

	last := segments[len(segments)-1]
	if value == nil {
		delete(node, last)
	} else {
		node[last] = value
	}

	for i := len(parents) - 1; i >= 0 && len(node) == 0; i-- {
		delete(parents[i], segments[i])
		node = parents[i]
	}
}

// normalize converts v to its JSON tree form, dropping nulls and empty objects
// and turning arrays into integer keyed objects.
func normalize(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var tree interface{}
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}
	return prune(tree), nil
}

func prune(v interface{}) interface{} {
	switch node := v.(type) {
	case map[string]interface{}:
		if isServerTimestamp(node) {
			return float64(time.Now().UnixMilli())
		}
		for key, child := range node {
			if pruned := prune(child); pruned == nil {
				delete(node, key)
			} else {
				node[key] = pruned
			}
		}
		if len(node) == 0 {
			return nil
		}
		return node
	case []interface{}:
		asMap := make(map[string]interface{}, len(node))
		for i, child := range node {
			asMap[strconv.Itoa(i)] = child
		}
		return prune(asMap)
	default:
		return v
	}
}

func isServerTimestamp(node map[string]interface{}) bool {
	sv, ok := node[".sv"]
	return ok && len(node) == 1 && sv == "timestamp"
}
