package main

import (
	"fmt"
	"io"

	j "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/reoring/jsonskema"
	"github.com/reoring/jsonskema/format"
	"github.com/reoring/jsonskema/i18n"
	"github.com/reoring/jsonskema/kubeopenapi"
)

func newValidateCommand() *cobra.Command {
	validateCommand := &cobra.Command{
		Use:   "validate -s SCHEMA FILE [FILE...]",
		Short: "Validate JSON or YAML documents against a schema",
		Long: `Validate JSON or YAML documents against a schema.

"-" reads a JSON document from stdin. The exit status is 1 when any
document is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: validateAction,
	}
	flags := validateCommand.Flags()
	flags.StringP("schema", "s", "", "Schema file (JSON or YAML)")
	flags.String("crd-kind", "", "Treat the schema file as a CRD bundle and use the CRD of this kind")
	flags.Bool("strict-unknown", false, "Reject fields a CRD schema does not declare")
	flags.StringP("output", "o", "text", "Output format [text, json]")
	flags.String("lang", "en", "Message language [en, ja]")
	flags.Int("max-depth", jsonskema.DefaultMaxDepth, "Maximum schema nesting depth evaluated")
	flags.Bool("evaluate-null", false, "Apply every keyword to null values")
	flags.Bool("formats", true, "Assert the format keyword")
	_ = validateCommand.MarkFlagRequired("schema")
	return validateCommand
}

type docResult struct {
	File     string           `json:"file"`
	Document int              `json:"document,omitempty"`
	Valid    bool             `json:"valid"`
	Errors   jsonskema.Errors `json:"errors,omitempty"`
}

func validateAction(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	schemaPath, _ := flags.GetString("schema")
	crdKind, _ := flags.GetString("crd-kind")
	strictUnknown, _ := flags.GetBool("strict-unknown")
	output, _ := flags.GetString("output")
	lang, _ := flags.GetString("lang")
	maxDepth, _ := flags.GetInt("max-depth")
	evalNull, _ := flags.GetBool("evaluate-null")
	formats, _ := flags.GetBool("formats")
	if output != "text" && output != "json" {
		return fmt.Errorf("unsupported output: %q", output)
	}

	kopts := kubeopenapi.Options{}
	if strictUnknown {
		kopts.Unknown = kubeopenapi.UnknownStrict
	}
	s, err := loadSchema(cmd, schemaPath, crdKind, kopts)
	if err != nil {
		return fmt.Errorf("failed to load schema %q: %w", schemaPath, err)
	}
	opts := jsonskema.Options{
		MaxDepth:     maxDepth,
		Translator:   i18n.ForLanguage(lang),
		EvaluateNull: evalNull,
	}
	if !formats {
		opts.Formats = format.None
	}
	v, err := jsonskema.New(s, opts)
	if err != nil {
		return err
	}

	var results []docResult
	dopt := jsonskema.DecodeOpt{OnDuplicateKey: jsonskema.Error}
	for _, f := range args {
		docs, err := loadDocuments(cmd, f, dopt)
		if err != nil {
			return fmt.Errorf("failed to load %q: %w", f, err)
		}
		for i, doc := range docs {
			res := v.Validate(doc)
			r := docResult{File: f, Valid: res.Valid, Errors: res.Errors}
			if len(docs) > 1 {
				r.Document = i + 1
			}
			logrus.Debugf("%s: %d error(s)", r.name(), len(res.Errors))
			results = append(results, r)
		}
	}

	if err := writeResults(cmd.OutOrStdout(), output, results); err != nil {
		return err
	}
	for _, r := range results {
		if !r.Valid {
			return errInvalid
		}
	}
	return nil
}

func (r docResult) name() string {
	if r.Document > 0 {
		return fmt.Sprintf("%s#%d", r.File, r.Document)
	}
	return r.File
}

func writeResults(w io.Writer, output string, results []docResult) error {
	if output == "json" {
		if results == nil {
			results = []docResult{}
		}
		enc := j.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, r := range results {
		if r.Valid {
			if _, err := fmt.Fprintf(w, "%s: valid\n", r.name()); err != nil {
				return err
			}
			continue
		}
		for _, e := range r.Errors {
			if _, err := fmt.Fprintf(w, "%s: %s\n", r.name(), e.Error()); err != nil {
				return err
			}
		}
	}
	return nil
}
