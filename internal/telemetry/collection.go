package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dtroode/identitystore/internal/model"
)

const tracerName = "github.com/dtroode/identitystore/internal/telemetry"

var _ model.DocumentCollection = (*Collection)(nil)

// Collection wraps a document collection and records one span per call.
// Misses reported as model.ErrNotFound are not marked as span errors.
type Collection struct {
	next   model.DocumentCollection
	tracer trace.Tracer
}

// Option configures a traced collection.
type Option func(*Collection)

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Collection) {
		c.tracer = tp.Tracer(tracerName)
	}
}

// WrapCollection returns next instrumented with tracing spans.
func WrapCollection(next model.DocumentCollection, opts ...Option) *Collection {
	c := &Collection{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collection) Insert(ctx context.Context, doc model.Document) error {
	ctx, span := c.start(ctx, "Insert", attribute.String("document.id", doc.ID()))
	defer span.End()
	return record(span, c.next.Insert(ctx, doc))
}

func (c *Collection) Replace(ctx context.Context, doc model.Document) error {
	ctx, span := c.start(ctx, "Replace", attribute.String("document.id", doc.ID()))
	defer span.End()
	return record(span, c.next.Replace(ctx, doc))
}

func (c *Collection) Delete(ctx context.Context, id string) error {
	ctx, span := c.start(ctx, "Delete", attribute.String("document.id", id))
	defer span.End()
	return record(span, c.next.Delete(ctx, id))
}

func (c *Collection) Get(ctx context.Context, id string) (model.Document, error) {
	ctx, span := c.start(ctx, "Get", attribute.String("document.id", id))
	defer span.End()
	doc, err := c.next.Get(ctx, id)
	return doc, record(span, err)
}

func (c *Collection) Find(ctx context.Context, q model.Query) ([]model.Document, error) {
	fields := make([]string, 0, len(q.Conditions))
	for _, cond := range q.Conditions {
		fields = append(fields, cond.Field)
	}
	ctx, span := c.start(ctx, "Find",
		attribute.StringSlice("query.fields", fields),
		attribute.Int("query.limit", q.Limit),
	)
	defer span.End()

	docs, err := c.next.Find(ctx, q)
	span.SetAttributes(attribute.Int("query.results", len(docs)))
	return docs, record(span, err)
}

func (c *Collection) Address() string {
	return c.next.Address()
}

func (c *Collection) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("collection.address", c.next.Address()))
	return c.tracer.Start(ctx, "DocumentCollection."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

func record(span trace.Span, err error) error {
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
