package logging

import "github.com/samber/oops"

// ErrorAttrs turns err into key–value pairs for a log call. Errors built with
// oops contribute their code and context map as separate attributes; anything
// else is logged by its message alone.
func ErrorAttrs(err error) []any {
	if err == nil {
		return nil
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return []any{"error", err.Error()}
	}

	attrs := []any{"error", oopsErr.Error()}
	if code := oopsErr.Code(); code != "" {
		attrs = append(attrs, "code", code)
	}
	if ctx := oopsErr.Context(); len(ctx) > 0 {
		attrs = append(attrs, "context", ctx)
	}
	return attrs
}
