package store

import (
	"context"
	"encoding/json"

	"firebase.google.com/go/v4/db"
)

// FirebaseStore talks to a Firebase Realtime Database.
type FirebaseStore struct {
	client *db.Client
}

// NewFirebaseStore wraps an initialised database client.
func NewFirebaseStore(client *db.Client) *FirebaseStore {
	return &FirebaseStore{client: client}
}

func (f *FirebaseStore) ref(path string) *db.Ref {
	return f.client.NewRef(Join(path))
}

func (f *FirebaseStore) Get(ctx context.Context, path string) (Snapshot, error) {
	ref := f.ref(path)
	var raw json.RawMessage
	if err := ref.Get(ctx, &raw); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Key: ref.Key, Raw: raw}, nil
}

func (f *FirebaseStore) Children(ctx context.Context, q Query) ([]Snapshot, error) {
	ref := f.ref(q.Path)

	var query *db.Query
	if q.OrderByChild != "" {
		query = ref.OrderByChild(q.OrderByChild)
	} else {
		query = ref.OrderByKey()
	}
	if q.EqualTo != nil {
		query = query.EqualTo(q.EqualTo)
	}
	if q.LimitToFirst > 0 {
		query = query.LimitToFirst(q.LimitToFirst)
	}

	nodes, err := query.GetOrdered(ctx)
	if err != nil {
		return nil, err
	}

	children := make([]Snapshot, 0, len(nodes))
	for _, node := range nodes {
		var raw json.RawMessage
		if err := node.Unmarshal(&raw); err != nil {
			return nil, err
		}
		children = append(children, Snapshot{Key: node.Key(), Raw: raw})
	}
	return children, nil
}

func (f *FirebaseStore) Set(ctx context.Context, path string, v interface{}) error {
	if v == nil {
		return f.ref(path).Delete(ctx)
	}
	return f.ref(path).Set(ctx, v)
}

func (f *FirebaseStore) Update(ctx context.Context, path string, values map[string]interface{}) error {
	return f.ref(path).Update(ctx, values)
}

func (f *FirebaseStore) Push(ctx context.Context, path string, v interface{}) (string, error) {
	child, err := f.ref(path).Push(ctx, v)
	if err != nil {
		return "", err
	}
	return child.Key, nil
}

func (f *FirebaseStore) Delete(ctx context.Context, path string) error {
	return f.ref(path).Delete(ctx)
}

func (f *FirebaseStore) Transaction(ctx context.Context, path string, fn TransactionFunc) error {
	ref := f.ref(path)
	return ref.Transaction(ctx, func(node db.TransactionNode) (interface{}, error) {
		var raw json.RawMessage
		if err := node.Unmarshal(&raw); err != nil {
			return nil, err
		}
		return fn(Snapshot{Key: ref.Key, Raw: raw})
	})
}
