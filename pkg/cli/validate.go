/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/clusterspec/pkg/tree"
	"github.com/NVIDIA/clusterspec/pkg/validator"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate cluster specifications against the schema.",
		ArgsUsage: "FILE...",
		Description: `Validate one or more cluster specification documents (YAML or JSON).
Each file is checked structurally against the schema and then against the
cross-field network rules. Only the first violation per file is reported.

Without --format one line per file is printed:

  cluster.yaml: ok
  broken.yaml: Invalid cluster spec: 'name' is a required string

With --format a validation report is written to --output (stdout by default).

Examples:

  clusterspec validate cluster.yaml
  clusterspec validate *.yaml --format json --output report.json
  clusterspec validate cluster.yaml --format yaml --output cm://infra/cluster-validation`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage:   "Report format (yaml, json, table). Plain text when empty",
			},
			outputFlag(),
			kubeconfigFlag(),
			&cli.BoolFlag{
				Name:  "suggest",
				Value: true,
				Usage: "Suggest the closest known field for unknown fields",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files := cmd.Args().Slice()
			if len(files) == 0 {
				return fmt.Errorf("at least one FILE is required")
			}

			text := cmd.String("format") == ""
			if !text {
				if _, err := parseOutputFormat(cmd); err != nil {
					return err
				}
			}

			s, err := loadSchema(cmd)
			if err != nil {
				return err
			}
			v := validator.New(s, validator.WithSuggestions(cmd.Bool("suggest")))

			results := make([]error, len(files))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(runtime.GOMAXPROCS(0))
			for i, file := range files {
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					results[i] = validateFile(cmd, v, file)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			report := validator.NewReport(version)
			for i, file := range files {
				report.Add(file, results[i])
			}
			slog.Debug("validation complete",
				"total", report.Summary.Total,
				"failed", report.Summary.Failed)

			if text {
				printResults(cmd, report)
			} else {
				format, _ := parseOutputFormat(cmd)
				if err := writeOutput(ctx, cmd, format, report); err != nil {
					return err
				}
			}

			if report.Failed() {
				return ErrValidationFailed
			}
			return nil
		},
	}
}

func validateFile(cmd *cli.Command, v *validator.Validator, file string) error {
	data, err := readInput(cmd, file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}
	doc, err := tree.Parse(data)
	if err != nil {
		return err
	}
	return v.Validate(doc)
}

func printResults(cmd *cli.Command, report *validator.Report) {
	out := stdout(cmd)
	for _, res := range report.Results {
		switch {
		case res.Valid:
			fmt.Fprintf(out, "%s: ok\n", res.Source)
		case res.Violation != nil:
			fmt.Fprintf(out, "%s: %s\n", res.Source, res.Violation.Message)
			if res.Violation.Suggestion != "" {
				fmt.Fprintf(out, "  did you mean '%s'?\n", res.Violation.Suggestion)
			}
		default:
			fmt.Fprintf(out, "%s: %s\n", res.Source, res.Error)
		}
	}
}
