// Command jsonskema validates JSON and YAML documents against Draft-07
// schemas and Kubernetes CRD schemas.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// errInvalid marks a run that found invalid documents; it only sets the
// exit status.
var errInvalid = errors.New("invalid documents found")

func main() {
	err := newApp().Execute()
	if errors.Is(err, errInvalid) {
		os.Exit(1)
	}
	if err != nil {
		logrus.Fatal(err)
	}
}

func processGlobalFlags(rootCmd *cobra.Command) error {
	// --log-level will override --debug
	if debug, _ := rootCmd.Flags().GetBool("debug"); debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	l, _ := rootCmd.Flags().GetString("log-level")
	if l != "" {
		lvl, err := logrus.ParseLevel(l)
		if err != nil {
			return err
		}
		logrus.SetLevel(lvl)
	}

	logFormat, _ := rootCmd.Flags().GetString("log-format")
	switch logFormat {
	case "json":
		logrus.StandardLogger().SetFormatter(new(logrus.JSONFormatter))
	case "text":
	default:
		return fmt.Errorf("unsupported log-format: %q", logFormat)
	}
	return nil
}

func newApp() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jsonskema",
		Short: "Draft-07 JSON Schema validator",
		Example: `  Validate documents:
  $ jsonskema validate -s schema.json a.json b.yaml

  Validate a custom resource against its CRD:
  $ jsonskema validate -s crds.yaml --crd-kind Widget widget.yaml

  Check schemas for mistakes:
  $ jsonskema lint schema.json`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	rootCmd.PersistentFlags().String("log-level", "", "Set the logging level [trace, debug, info, warn, error]")
	rootCmd.PersistentFlags().String("log-format", "text", "Set the logging format [text, json]")
	rootCmd.PersistentFlags().Bool("debug", false, "Debug mode")
	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		return processGlobalFlags(rootCmd)
	}
	rootCmd.AddCommand(
		newValidateCommand(),
		newLintCommand(),
		newFmtCommand(),
		newCRDCommand(),
	)
	return rootCmd
}
