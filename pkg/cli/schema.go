/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

func schemaCmd() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the schema in use.",
		Description: `Print the schema selected by --schema, or the embedded schema.

Examples:

  clusterspec schema
  clusterspec schema --format yaml --output cluster.schema.yaml`,
		Flags: []cli.Flag{
			formatFlag("json"),
			outputFlag(),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			s, err := loadSchema(cmd)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, format, s.Raw())
		},
	}
}
