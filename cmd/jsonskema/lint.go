package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/reoring/jsonskema/jsonschema"
	"github.com/reoring/jsonskema/kubeopenapi"
)

func newLintCommand() *cobra.Command {
	lintCommand := &cobra.Command{
		Use:   "lint FILE [FILE...]",
		Short: "Check schema documents for malformed keywords",
		Args:  cobra.MinimumNArgs(1),
		RunE:  lintAction,
	}
	lintCommand.Flags().Bool("unknown-keywords", false, "Also report keywords Draft-07 does not define (x-* extensions excepted)")
	return lintCommand
}

func lintAction(cmd *cobra.Command, args []string) error {
	unknown, _ := cmd.Flags().GetBool("unknown-keywords")
	out := cmd.OutOrStdout()
	failed := false
	for _, f := range args {
		s, err := loadSchema(cmd, f, "", kubeopenapi.Options{})
		if err != nil {
			failed = true
			es, ok := jsonschema.AsSchemaErrors(err)
			if !ok {
				fmt.Fprintf(out, "%s: %v\n", f, err)
				continue
			}
			for _, e := range es {
				fmt.Fprintf(out, "%s: %s\n", f, e.Error())
			}
			continue
		}
		if unknown {
			for _, w := range unknownKeywords(s) {
				fmt.Fprintf(out, "%s: %s\n", f, w)
			}
		}
		logrus.Infof("%q: OK", f)
	}
	if failed {
		return errInvalid
	}
	return nil
}

// unknownKeywords lists the non-extension keys kept in Extra.
func unknownKeywords(s *jsonschema.Schema) []string {
	var out []string
	_ = jsonschema.Walk(s, func(ptr string, node *jsonschema.Schema) error {
		keys := make([]string, 0, len(node.Extra))
		for k := range node.Extra {
			if !strings.HasPrefix(k, "x-") {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, fmt.Sprintf("#%s: unknown keyword %q", ptr, k))
		}
		return nil
	})
	return out
}
