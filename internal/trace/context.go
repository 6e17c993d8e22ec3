package trace

import "context"

type ctxKey struct{}

// FromContext extracts the Tracer from context, Nop when absent.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches a Tracer to context.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// SpanContext is the innermost open span carried by a context.
type SpanContext struct {
	SpanID uint64
	Bundle string
}

type spanCtxKey struct{}

// CurrentSpan retrieves the active span context, zero when none.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	if sc, ok := ctx.Value(spanCtxKey{}).(SpanContext); ok {
		return sc
	}
	return SpanContext{}
}

// WithSpanContext attaches span context.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	return context.WithValue(ctx, spanCtxKey{}, sc)
}

// Start begins a span under the one carried by ctx and returns a context
// carrying the new span. The bundle of the parent is inherited.
func Start(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	parent := CurrentSpan(ctx)
	return start(ctx, scope, parent.Bundle, name, parent.SpanID)
}

// StartBundle begins the file-scope span of one bundle; every span and
// point started under the returned context is tagged with path.
func StartBundle(ctx context.Context, path string) (*Span, context.Context) {
	parent := CurrentSpan(ctx)
	return start(ctx, ScopeFile, path, "file", parent.SpanID)
}

func start(ctx context.Context, scope Scope, bundle, name string, parent uint64) (*Span, context.Context) {
	sp := beginIn(FromContext(ctx), scope, bundle, name, parent)
	if sp.ID() == 0 || ctx == nil {
		return sp, ctx
	}
	return sp, WithSpanContext(ctx, SpanContext{SpanID: sp.ID(), Bundle: bundle})
}

// Point emits an instant event under the span carried by ctx.
func Point(ctx context.Context, scope Scope, name, detail string) {
	t := FromContext(ctx)
	if !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	sc := CurrentSpan(ctx)
	t.Emit(&Event{
		Time:     timeNow(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: sc.SpanID,
		Bundle:   sc.Bundle,
		Name:     name,
		Detail:   detail,
	})
}
