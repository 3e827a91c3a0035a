/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/clusterspec/pkg/defaults"
	"github.com/NVIDIA/clusterspec/pkg/tree"
	"github.com/NVIDIA/clusterspec/pkg/validator"
)

func normalizeCmd() *cli.Command {
	return &cli.Command{
		Name:      "normalize",
		Usage:     "Validate a cluster specification and write it with schema defaults applied.",
		ArgsUsage: "FILE",
		Description: `Validate a cluster specification and fill in every schema default the
document leaves absent. Values already present are never changed, and key order
is preserved. Use "-" to read from stdin.

Examples:

  clusterspec normalize cluster.yaml
  clusterspec normalize cluster.yaml --format json --output normalized.json
  clusterspec normalize cluster.yaml --output cm://infra/cluster-spec`,
		Flags: []cli.Flag{
			formatFlag("yaml"),
			outputFlag(),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("exactly one FILE is required")
			}
			file := cmd.Args().First()

			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			s, err := loadSchema(cmd)
			if err != nil {
				return err
			}

			data, err := readInput(cmd, file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			doc, err := tree.Parse(data)
			if err != nil {
				return err
			}
			if err := validator.New(s).Validate(doc); err != nil {
				return err
			}

			injected := defaults.Apply(doc, s)
			slog.Debug("defaults applied", "file", file, "injected", injected)

			return writeOutput(ctx, cmd, format, doc)
		},
	}
}
