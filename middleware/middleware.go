// Package middleware integrates jsonshape validation into net/http request
// handling: RequireJSON rejects non-conforming bodies, WarnJSON logs them and
// lets the request proceed.
package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"

	gojson "github.com/goccy/go-json"
	"go.uber.org/zap"

	jsonshape "github.com/reoring/jsonshape"
)

// ctxKeyPayload and ctxKeyWarning are typed context keys so values cannot
// collide with other packages.
type ctxKeyPayload struct{}
type ctxKeyWarning struct{}

// ContextWithPayload attaches a decoded request payload to the context.
func ContextWithPayload(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyPayload{}, v)
}

// Payload retrieves the decoded request payload stored by the middleware.
func Payload(ctx context.Context) (any, bool) {
	v := ctx.Value(ctxKeyPayload{})
	return v, v != nil
}

// Warning returns the validation warning recorded by WarnJSON, if any.
func Warning(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(ctxKeyWarning{}).(string)
	return s, ok
}

// Annotate copies the WarnJSON warning, when present, into the response body
// under the "warning" key and returns the body.
func Annotate(ctx context.Context, body map[string]any) map[string]any {
	if msg, ok := Warning(ctx); ok && body != nil {
		body["warning"] = msg
	}
	return body
}

// ErrorPayload shapes a validation error for JSON responses, preserving the
// path and code alongside the rendered message.
func ErrorPayload(err error) map[string]any {
	if e, ok := jsonshape.AsError(err); ok {
		return map[string]any{"error": map[string]any{
			"path":    e.Path,
			"code":    e.Code,
			"message": e.Error(),
		}}
	}
	return map[string]any{"error": map[string]any{"message": err.Error()}}
}

// RequireJSON returns middleware that decodes the request body as JSON and
// validates it against schema before the handler runs. A non-conforming body
// is rejected with 400 and an ErrorPayload; on success the decoded payload is
// stored in the request context for Payload, and the body remains readable by
// the handler.
func RequireJSON(schema jsonshape.Node, opts ...jsonshape.ValidateOpt) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			v, err := jsonshape.ValidateJSON(schema, body, opts...)
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithPayload(r.Context(), v)))
		})
	}
}

// WarnJSON is RequireJSON's advisory sibling: a body that fails to decode or
// validate is logged with the request method and URL and recorded in the
// context instead of aborting the request. Handlers surface the warning to
// the client via Annotate or Warning. Schema semantics are identical to
// RequireJSON; only the failure disposition differs.
func WarnJSON(schema jsonshape.Node, log *zap.Logger, opts ...jsonshape.ValidateOpt) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			body, err := io.ReadAll(r.Body)
			if err == nil {
				r.Body = io.NopCloser(bytes.NewReader(body))
				var v any
				if v, err = jsonshape.DecodeJSON(body); err == nil {
					ctx = ContextWithPayload(ctx, v)
					err = jsonshape.Validate(schema, v, opts...)
				}
			}
			if err != nil {
				fields := []zap.Field{
					zap.String("method", r.Method),
					zap.String("url", r.URL.String()),
				}
				if e, ok := jsonshape.AsError(err); ok {
					fields = append(fields, zap.String("path", e.Path), zap.String("code", e.Code))
				}
				log.Warn(err.Error(), fields...)
				ctx = context.WithValue(ctx, ctxKeyWarning{}, err.Error())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = gojson.NewEncoder(w).Encode(ErrorPayload(err))
}
