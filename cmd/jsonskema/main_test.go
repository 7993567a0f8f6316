package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	j "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"email": {"type": "string", "format": "email"}
	}
}`

const testCRD = `apiVersion: apiextensions.k8s.io/v1
kind: CustomResourceDefinition
metadata:
  name: widgets.demo.example.com
spec:
  group: demo.example.com
  names:
    kind: Widget
  versions:
    - name: v1
      served: true
      schema:
        openAPIV3Schema:
          type: object
          properties:
            spec:
              type: object
              required: [size]
              properties:
                size:
                  type: integer
                  maximum: 3
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func run(args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	app := newApp()
	app.SetOut(&out)
	app.SetErr(&errOut)
	app.SetArgs(args)
	err := app.Execute()
	return out.String(), errOut.String(), err
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.json", testSchema)
	good := writeFile(t, dir, "good.json", `{"name":"a","email":"a@example.com"}`)
	bad := writeFile(t, dir, "bad.json", `{"email":"nope"}`)

	out, _, err := run("validate", "-s", schema, good)
	require.NoError(t, err)
	assert.Equal(t, good+": valid\n", out)

	out, _, err = run("validate", "-s", schema, good, bad)
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, bad+": required at /name:")
	assert.Contains(t, out, bad+": format at /email:")

	out, _, err = run("validate", "-s", schema, "--formats=false", bad)
	assert.ErrorIs(t, err, errInvalid)
	assert.NotContains(t, out, "format")
}

func TestValidateCommand_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.json", testSchema)
	docs := writeFile(t, dir, "docs.yaml", "name: a\n---\nname: 1\n")

	out, _, err := run("validate", "-s", schema, "-o", "json", docs)
	assert.ErrorIs(t, err, errInvalid)

	var results []struct {
		File     string `json:"file"`
		Document int    `json:"document"`
		Valid    bool   `json:"valid"`
		Errors   []struct {
			Path    string `json:"path"`
			Keyword string `json:"keyword"`
		} `json:"errors"`
	}
	require.NoError(t, j.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.True(t, results[0].Valid)
	assert.Equal(t, 1, results[0].Document)
	assert.False(t, results[1].Valid)
	require.Len(t, results[1].Errors, 1)
	assert.Equal(t, "/name", results[1].Errors[0].Path)
	assert.Equal(t, "type", results[1].Errors[0].Keyword)
}

func TestValidateCommand_CRD(t *testing.T) {
	dir := t.TempDir()
	crd := writeFile(t, dir, "crd.yaml", testCRD)
	w := writeFile(t, dir, "w.yaml", "apiVersion: demo.example.com/v1\nkind: Widget\nspec:\n  size: 5\n")

	out, _, err := run("validate", "-s", crd, "--crd-kind", "Widget", w)
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, w+": maximum at /spec/size:")

	_, _, err = run("validate", "-s", crd, "--crd-kind", "Gizmo", w)
	assert.ErrorContains(t, err, "CRD not found")
}

func TestValidateCommand_Japanese(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.json", testSchema)
	bad := writeFile(t, dir, "bad.json", `{}`)

	en, _, _ := run("validate", "-s", schema, bad)
	ja, _, _ := run("validate", "-s", schema, "--lang", "ja", bad)
	assert.NotEqual(t, en, ja)
}

func TestValidateCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.json", testSchema)
	dup := writeFile(t, dir, "dup.json", `{"name":"a","name":"b"}`)

	_, _, err := run("validate", dup)
	assert.Error(t, err, "--schema is required")

	_, _, err = run("validate", "-s", schema, "-o", "xml", dup)
	assert.ErrorContains(t, err, "unsupported output")

	_, _, err = run("validate", "-s", schema, dup)
	assert.ErrorContains(t, err, "duplicate_key")
}

func TestLintCommand(t *testing.T) {
	dir := t.TempDir()
	ok := writeFile(t, dir, "ok.json", `{"type":"object","x-owner":"me","exampel":1}`)
	broken := writeFile(t, dir, "broken.json", `{"type":"strin","minLength":-1}`)

	out, _, err := run("lint", ok)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, _, err = run("lint", "--unknown-keywords", ok)
	require.NoError(t, err)
	assert.Equal(t, ok+`: #: unknown keyword "exampel"`+"\n", out)

	out, _, err = run("lint", ok, broken)
	assert.ErrorIs(t, err, errInvalid)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 2, out)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, broken+": "), l)
	}
}

func TestFmtCommand(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "s.yaml", "properties:\n  b: {type: string}\n  a: {maximum: 1.50}\ntype: object\n")

	out, _, err := run("fmt", "--indent", "0", src)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"object","properties":{"b":{"type":"string"},"a":{"maximum":1.50}}}`+"\n", out)

	again := writeFile(t, dir, "again.json", out)
	out2, _, err := run("fmt", "--indent", "0", again)
	require.NoError(t, err)
	assert.Equal(t, out, out2)
}

func TestCRDCommand(t *testing.T) {
	dir := t.TempDir()
	crd := writeFile(t, dir, "crd.yaml", testCRD)

	out, _, err := run("crd", "--list", crd)
	require.NoError(t, err)
	assert.Equal(t, "widgets.demo.example.com\tWidget\tv1\n", out)

	out, _, err = run("crd", "--kind", "Widget", "--strict-unknown", "--indent", "0", crd)
	require.NoError(t, err)
	assert.Contains(t, out, `"additionalProperties":false`)

	_, _, err = run("crd", crd)
	assert.Error(t, err)
	_, _, err = run("crd", "--kind", "Widget", "--name", "x", crd)
	assert.Error(t, err)
}
