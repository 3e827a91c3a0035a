/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/clusterspec/pkg/schema"
	"github.com/NVIDIA/clusterspec/pkg/serializer"
)

// ErrValidationFailed is returned when at least one document failed validation.
// The failures have already been printed.
var ErrValidationFailed = errors.New("validation failed")

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output destination: file path, '-' for stdout or cm://namespace/name",
	}
}

func kubeconfigFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "Path to kubeconfig file used for cm:// outputs",
		Sources: cli.EnvVars("KUBECONFIG"),
	}
}

func formatFlag(def string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   def,
		Usage:   fmt.Sprintf("Output format (%v)", serializer.SupportedFormats()),
	}
}

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: yaml, json, table", outFormat)
	}
	return outFormat, nil
}

// loadSchema loads the schema named by --schema, or the embedded one.
func loadSchema(cmd *cli.Command) (*schema.Schema, error) {
	path := cmd.String("schema")
	if path == "" {
		return schema.LoadEmbedded()
	}
	slog.Debug("loading schema", "path", path)
	return schema.LoadFile(path)
}

// readInput reads path, or stdin for "-".
func readInput(cmd *cli.Command, path string) ([]byte, error) {
	if path == serializer.StdoutURI {
		r := cmd.Root().Reader
		if r == nil {
			r = os.Stdin
		}
		return io.ReadAll(r)
	}
	return os.ReadFile(path)
}

// writeOutput serializes data to the destination selected by --output.
func writeOutput(ctx context.Context, cmd *cli.Command, format serializer.Format, data any) error {
	output := cmd.String("output")
	if output == "" || output == serializer.StdoutURI {
		return serializer.NewWriter(format, stdout(cmd)).Serialize(ctx, data)
	}

	ser, err := serializer.NewFileWriterOrStdoutWithKubeconfig(format, output, cmd.String("kubeconfig"))
	if err != nil {
		return err
	}
	if closer, ok := ser.(serializer.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}()
	}
	return ser.Serialize(ctx, data)
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// ExitCode maps an error returned by Execute onto the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return 2
	default:
		return 1
	}
}
