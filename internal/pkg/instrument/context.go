package instrument

import "context"

type ctxKeyCorrelationID struct{}

// SetCorrelationID stores the request correlation ID in the context.
func SetCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyCorrelationID{}, id)
}

// GetCorrelationID returns the correlation ID carried by the context, or
// an empty string when none was set.
func GetCorrelationID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyCorrelationID{}).(string); ok {
		return v
	}

	return ""
}
