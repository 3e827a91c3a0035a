/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/clusterspec/pkg/serializer"
	"github.com/NVIDIA/clusterspec/pkg/tree"
)

func defaultCmd() *cli.Command {
	return &cli.Command{
		Name:      "default",
		Usage:     "Print the schema value at raw path segments, normally a default.",
		ArgsUsage: "SEGMENT...",
		Description: `Resolve a path of raw schema segments and print the value found there.
A path ending in "default" prints that default literal, any other path prints
the subschema. Strings are printed as-is, other values as JSON.

Examples:

  clusterspec default properties kubernetesVersion default
  clusterspec default properties machines items properties talosImage default
  clusterspec default properties machineDefaults properties hcloud`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			segments := cmd.Args().Slice()
			if len(segments) == 0 {
				return fmt.Errorf("at least one SEGMENT is required")
			}

			s, err := loadSchema(cmd)
			if err != nil {
				return err
			}

			v, err := s.Default(segments...)
			if err != nil {
				return err
			}

			if str, ok := v.(tree.String); ok {
				_, err = fmt.Fprintln(stdout(cmd), string(str))
				return err
			}
			return serializer.NewWriter(serializer.FormatJSON, stdout(cmd)).Serialize(ctx, v)
		},
	}
}
