package store

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/osa911/teamchat/internal/store"

// TracedStore records a span for every call to the wrapped store.
type TracedStore struct {
	next   Store
	tracer trace.Tracer
}

// Traced wraps s with the global tracer provider.
func Traced(s Store) *TracedStore {
	return &TracedStore{next: s, tracer: otel.Tracer(tracerName)}
}

func (t *TracedStore) start(ctx context.Context, op Op, path string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "store."+string(op),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("store.op", string(op)),
			attribute.String("store.path", path),
		))
}

func end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (t *TracedStore) Get(ctx context.Context, path string) (Snapshot, error) {
	ctx, span := t.start(ctx, OpGet, path)
	snap, err := t.next.Get(ctx, path)
	span.SetAttributes(attribute.Bool("store.exists", snap.Exists()))
	end(span, err)
	return snap, err
}

func (t *TracedStore) Children(ctx context.Context, q Query) ([]Snapshot, error) {
	ctx, span := t.start(ctx, OpChildren, q.Path)
	span.SetAttributes(
		attribute.String("store.order_by_child", q.OrderByChild),
		attribute.Int("store.limit_to_first", q.LimitToFirst),
	)
	children, err := t.next.Children(ctx, q)
	span.SetAttributes(attribute.Int("store.children", len(children)))
	end(span, err)
	return children, err
}

func (t *TracedStore) Set(ctx context.Context, path string, v interface{}) error {
	ctx, span := t.start(ctx, OpSet, path)
	err := t.next.Set(ctx, path, v)
	end(span, err)
	return err
}

func (t *TracedStore) Update(ctx context.Context, path string, values map[string]interface{}) error {
	ctx, span := t.start(ctx, OpUpdate, path)
	span.SetAttributes(attribute.Int("store.paths", len(values)))
	err := t.next.Update(ctx, path, values)
	end(span, err)
	return err
}

func (t *TracedStore) Push(ctx context.Context, path string, v interface{}) (string, error) {
	ctx, span := t.start(ctx, OpPush, path)
	key, err := t.next.Push(ctx, path, v)
	span.SetAttributes(attribute.String("store.key", key))
	end(span, err)
	return key, err
}

func (t *TracedStore) Delete(ctx context.Context, path string) error {
	ctx, span := t.start(ctx, OpDelete, path)
	err := t.next.Delete(ctx, path)
	end(span, err)
	return err
}

func (t *TracedStore) Transaction(ctx context.Context, path string, fn TransactionFunc) error {
	ctx, span := t.start(ctx, OpTransaction, path)
	err := t.next.Transaction(ctx, path, fn)
	end(span, err)
	return err
}
