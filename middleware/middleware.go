// Package middleware validates JSON request bodies against a compiled
// jsonskema.Validator before they reach a net/http handler.
package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	j "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/reoring/jsonskema"
)

// DefaultMaxBytes caps request bodies when Options.MaxBytes is zero.
const DefaultMaxBytes = 1 << 20

// ctxKeyInstance is a typed context key for the decoded request body.
type ctxKeyInstance struct{}

// ContextWithInstance attaches a decoded instance to the context.
func ContextWithInstance(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyInstance{}, instance{v})
}

type instance struct{ v any }

// InstanceFromContext retrieves the instance stored by Validate.
func InstanceFromContext(ctx context.Context) (any, bool) {
	in, ok := ctx.Value(ctxKeyInstance{}).(instance)
	return in.v, ok
}

// DefaultDecodeOpt returns a recommended default for HTTP JSON boundaries:
// duplicate keys are errors.
func DefaultDecodeOpt() jsonskema.DecodeOpt {
	return jsonskema.DecodeOpt{OnDuplicateKey: jsonskema.Error}
}

// Options configures Validate.
type Options struct {
	// Decode controls body decoding; nil means DefaultDecodeOpt.
	Decode *jsonskema.DecodeOpt
	// MaxBytes limits the body size; larger bodies get 413.
	MaxBytes int64
	Logger   logrus.FieldLogger
}

// ErrorPayload shapes validation errors for JSON responses.
func ErrorPayload(errs jsonskema.Errors) map[string]any {
	if errs == nil {
		errs = jsonskema.Errors{}
	}
	return map[string]any{"errors": errs}
}

// Rejection is the response Check asks the caller to send instead of
// running the next handler.
type Rejection struct {
	Status int
	Body   any
}

// Validate decodes each request body and validates it with v. Undecodable
// bodies get 400, schema violations 422 with an ErrorPayload. Valid bodies
// are stored in the request context and the body is restored for next.
func Validate(v *jsonskema.Validator, opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inst, rej := Check(r, v, opts)
			if rej != nil {
				writeJSON(w, rej.Status, rej.Body)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithInstance(r.Context(), inst)))
		})
	}
}

// Check reads, decodes and validates the body of r. On success the body is
// restored so later handlers can read it again. Framework adapters use it
// directly.
func Check(r *http.Request, v *jsonskema.Validator, opts Options) (any, *Rejection) {
	dopt := DefaultDecodeOpt()
	if opts.Decode != nil {
		dopt = *opts.Decode
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	log := opts.Logger.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path})

	data, err := io.ReadAll(io.LimitReader(r.Body, opts.MaxBytes+1))
	_ = r.Body.Close()
	if err != nil {
		log.WithError(err).Warn("reading request body")
		return nil, &Rejection{http.StatusBadRequest, map[string]any{"error": "cannot read request body"}}
	}
	if int64(len(data)) > opts.MaxBytes {
		log.WithField("limit", opts.MaxBytes).Info("request body too large")
		return nil, &Rejection{http.StatusRequestEntityTooLarge, map[string]any{"error": "request body too large", "code": jsonskema.CodeMaxBytes}}
	}

	inst, err := jsonskema.DecodeFrom(r.Context(), jsonskema.JSONBytes(data), dopt)
	if err != nil {
		var de *jsonskema.DecodeError
		if errors.As(err, &de) {
			log.WithField("code", de.Code).Info("undecodable request body")
			return nil, &Rejection{http.StatusBadRequest, map[string]any{"error": de.Message, "code": de.Code, "path": de.Path}}
		}
		log.WithError(err).Warn("decoding request body")
		return nil, &Rejection{http.StatusBadRequest, map[string]any{"error": err.Error()}}
	}

	res := v.Validate(inst)
	if !res.Valid {
		log.WithFields(logrus.Fields{"errors": len(res.Errors), "keywords": res.Keywords()}).Info("request body rejected")
		return nil, &Rejection{http.StatusUnprocessableEntity, ErrorPayload(res.Errors)}
	}

	r.Body = io.NopCloser(bytes.NewReader(data))
	r.ContentLength = int64(len(data))
	return inst, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = j.NewEncoder(w).Encode(body)
}
