package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/reoring/jsonskema"
	"github.com/reoring/jsonskema/jsonschema"
	"github.com/reoring/jsonskema/kubeopenapi"
)

// readInput reads a file, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// loadSchema parses a JSON or YAML schema. With crdKind set the file is a
// CRD (or a bundle of them) and the schema of that kind is imported.
func loadSchema(cmd *cobra.Command, path, crdKind string, opts kubeopenapi.Options) (*jsonschema.Schema, error) {
	b, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	if crdKind == "" {
		if isYAML(path) {
			return jsonschema.ParseYAML(b)
		}
		return jsonschema.ParseJSON(b)
	}

	var (
		s    *jsonschema.Schema
		diag kubeopenapi.Diag
	)
	if isYAML(path) {
		s, diag, err = kubeopenapi.ImportYAMLForCRDKind(b, crdKind, opts)
	} else {
		s, diag, err = kubeopenapi.Import(b, opts)
	}
	if err != nil {
		return nil, err
	}
	for _, w := range diag.Warnings() {
		logrus.Warnf("%s: %s", path, w)
	}
	return s, nil
}

// loadDocuments decodes the instances of one file. YAML files may hold
// several documents.
func loadDocuments(cmd *cobra.Command, path string, opt jsonskema.DecodeOpt) ([]any, error) {
	b, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	if isYAML(path) {
		return jsonschema.NewStrictYAMLReader(bytes.NewReader(b)).ReadAll()
	}
	v, err := jsonskema.DecodeFrom(cmd.Context(), jsonskema.JSONBytes(b), opt)
	if err != nil {
		return nil, err
	}
	return []any{v}, nil
}
