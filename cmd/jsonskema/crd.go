package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reoring/jsonskema/jsonschema"
	"github.com/reoring/jsonskema/kubeopenapi"
)

func newCRDCommand() *cobra.Command {
	crdCommand := &cobra.Command{
		Use:   "crd BUNDLE.yaml",
		Short: "Print the Draft-07 schema imported from a CRD",
		Example: `  List the CRDs of a bundle:
  $ jsonskema crd --list crds.yaml

  Print the schema of one kind:
  $ jsonskema crd --kind Widget crds.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: crdAction,
	}
	flags := crdCommand.Flags()
	flags.String("kind", "", "CRD spec.names.kind to import")
	flags.String("name", "", "CRD metadata.name to import")
	flags.Bool("list", false, "List the CRDs in the bundle")
	flags.Bool("strict-unknown", false, "Close objects that declare properties")
	flags.Bool("embedded-checks", false, "Require apiVersion, kind and metadata on embedded resources")
	flags.Bool("drop-defaults", false, "Strip default values")
	flags.Int("indent", 2, "Spaces per indentation level (0 for compact output)")
	return crdCommand
}

func crdAction(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	kind, _ := flags.GetString("kind")
	name, _ := flags.GetString("name")
	list, _ := flags.GetBool("list")
	indent, _ := flags.GetInt("indent")

	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	if list {
		crds, err := kubeopenapi.ListCRDs(data)
		if err != nil {
			return err
		}
		for _, c := range crds {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", c.Name, c.Kind, strings.Join(c.Versions, ","))
		}
		return nil
	}

	opts := kubeopenapi.Options{}
	if v, _ := flags.GetBool("strict-unknown"); v {
		opts.Unknown = kubeopenapi.UnknownStrict
	}
	if v, _ := flags.GetBool("embedded-checks"); v {
		opts.EnableEmbeddedChecks = true
	}
	if v, _ := flags.GetBool("drop-defaults"); v {
		opts.DefaultMode = kubeopenapi.DefaultIgnore
	}

	var importFn func() (*jsonschema.Schema, kubeopenapi.Diag, error)
	switch {
	case kind != "" && name != "":
		return errors.New("--kind and --name are mutually exclusive")
	case kind != "":
		importFn = func() (*jsonschema.Schema, kubeopenapi.Diag, error) {
			return kubeopenapi.ImportYAMLForCRDKind(data, kind, opts)
		}
	case name != "":
		importFn = func() (*jsonschema.Schema, kubeopenapi.Diag, error) {
			return kubeopenapi.ImportYAMLForCRDName(data, name, opts)
		}
	default:
		return errors.New("one of --kind, --name or --list is required")
	}
	s, diag, err := importFn()
	if err != nil {
		return err
	}
	for _, w := range diag.Warnings() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	return printSchema(cmd, s, indent)
}
