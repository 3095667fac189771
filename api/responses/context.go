package responses

import "context"

type requestIDKey struct{}

type outcomeKey struct{}

// Outcome is filled in by WriteError for middleware that logs after the handler returns.
type Outcome struct {
	Code string
	Op   string
}

// WithRequestID stores the request id echoed in error bodies.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// TrackOutcome attaches an empty Outcome to ctx.
func TrackOutcome(ctx context.Context) (context.Context, *Outcome) {
	o := &Outcome{}
	return context.WithValue(ctx, outcomeKey{}, o), o
}

func outcomeFrom(ctx context.Context) *Outcome {
	if ctx == nil {
		return nil
	}
	o, _ := ctx.Value(outcomeKey{}).(*Outcome)
	return o
}
