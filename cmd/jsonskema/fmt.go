package main

import (
	"fmt"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/jsonskema/jsonschema"
	"github.com/reoring/jsonskema/kubeopenapi"
)

func newFmtCommand() *cobra.Command {
	fmtCommand := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Print a schema as normalized JSON",
		Long: `Print a schema as normalized JSON.

Keywords come out in a fixed order and property order is kept, so the
output of fmt is stable under a second run.`,
		Args: cobra.ExactArgs(1),
		RunE: fmtAction,
	}
	fmtCommand.Flags().Int("indent", 2, "Spaces per indentation level (0 for compact output)")
	return fmtCommand
}

func fmtAction(cmd *cobra.Command, args []string) error {
	indent, _ := cmd.Flags().GetInt("indent")
	s, err := loadSchema(cmd, args[0], "", kubeopenapi.Options{})
	if err != nil {
		return fmt.Errorf("failed to load schema %q: %w", args[0], err)
	}
	return printSchema(cmd, s, indent)
}

func printSchema(cmd *cobra.Command, s *jsonschema.Schema, indent int) error {
	var (
		b   []byte
		err error
	)
	if indent > 0 {
		b, err = j.MarshalIndent(s, "", fmt.Sprintf("%*s", indent, ""))
	} else {
		b, err = j.Marshal(s)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}
