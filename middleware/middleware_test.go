package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	j "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsonskema"
	"github.com/reoring/jsonskema/jsonschema"
	"github.com/reoring/jsonskema/middleware"
)

const userSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"age": {"type": "integer", "minimum": 0}
	}
}`

type captured struct {
	called bool
	inst   any
	body   string
}

func newServer(t *testing.T, opts middleware.Options) (http.Handler, *captured) {
	t.Helper()
	s, err := jsonschema.ParseJSON([]byte(userSchema))
	require.NoError(t, err)
	c := &captured{}
	h := middleware.Validate(jsonskema.MustNew(s), opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.called = true
		c.inst, _ = middleware.InstanceFromContext(r.Context())
		b, _ := io.ReadAll(r.Body)
		c.body = string(b)
		w.WriteHeader(http.StatusNoContent)
	}))
	return h, c
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body)))
	return rec
}

func TestValidate_PassesValidBody(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	h, c := newServer(t, middleware.Options{Logger: logger})

	rec := post(h, `{"name":"ann","age":3}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.True(t, c.called)
	assert.Equal(t, `{"name":"ann","age":3}`, c.body, "body is restored")
	m, ok := c.inst.(map[string]any)
	require.True(t, ok, "%T", c.inst)
	assert.Equal(t, "ann", m["name"])
}

func TestValidate_RejectsViolations(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	h, c := newServer(t, middleware.Options{Logger: logger})

	rec := post(h, `{"age":-1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, c.called)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload struct {
		Errors []struct {
			Path    string `json:"path"`
			Keyword string `json:"keyword"`
		} `json:"errors"`
	}
	require.NoError(t, j.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Errors, 2)
	assert.Equal(t, "/name", payload.Errors[0].Path)
	assert.Equal(t, jsonskema.KeywordRequired, payload.Errors[0].Keyword)
	assert.Equal(t, "/age", payload.Errors[1].Path)
	assert.Equal(t, jsonskema.KeywordMinimum, payload.Errors[1].Keyword)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "request body rejected", entry.Message)
	assert.Equal(t, 2, entry.Data["errors"])
}

func TestValidate_UndecodableBody(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	h, c := newServer(t, middleware.Options{Logger: logger})

	for _, body := range []string{`{"name":`, `{"name":"a","name":"b"}`, ``} {
		rec := post(h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.False(t, c.called)

	rec := post(h, `{"name":"a","name":"b"}`)
	var payload map[string]any
	require.NoError(t, j.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, jsonskema.CodeDuplicateKey, payload["code"])
}

func TestValidate_DecodeOptions(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	lenient := jsonskema.DecodeOpt{OnDuplicateKey: jsonskema.Ignore}
	h, c := newServer(t, middleware.Options{Logger: logger, Decode: &lenient})

	rec := post(h, `{"name":"a","name":"b"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "b", c.inst.(map[string]any)["name"])
}

func TestValidate_MaxBytes(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	h, c := newServer(t, middleware.Options{Logger: logger, MaxBytes: 8})

	rec := post(h, `{"name":"too long for the limit"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.False(t, c.called)
}

func TestInstanceFromContext(t *testing.T) {
	_, ok := middleware.InstanceFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)

	ctx := middleware.ContextWithInstance(httptest.NewRequest(http.MethodGet, "/", nil).Context(), nil)
	v, ok := middleware.InstanceFromContext(ctx)
	assert.True(t, ok, "a JSON null body is still a stored instance")
	assert.Nil(t, v)
}

func TestCheck_RestoresBody(t *testing.T) {
	s, err := jsonschema.ParseJSON([]byte(userSchema))
	require.NoError(t, err)
	logger, _ := logtest.NewNullLogger()
	r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"bo"}`))

	inst, rej := middleware.Check(r, jsonskema.MustNew(s), middleware.Options{Logger: logger})
	require.Nil(t, rej)
	assert.Equal(t, map[string]any{"name": "bo"}, inst)
	b, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"bo"}`, string(b))

	r = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{}`))
	_, rej = middleware.Check(r, jsonskema.MustNew(s), middleware.Options{Logger: logger})
	require.NotNil(t, rej)
	assert.Equal(t, http.StatusUnprocessableEntity, rej.Status)
}
