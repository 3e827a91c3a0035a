/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// clusterspec validates cluster specifications and fills in schema defaults.
//
// Usage:
//
//	# Validate one or more specifications
//	clusterspec validate cluster.yaml
//
//	# Write a normalized specification to a ConfigMap
//	clusterspec normalize cluster.yaml --output cm://infra/cluster-spec
//
//	# Print a schema default
//	clusterspec default properties kubernetesVersion default
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/NVIDIA/clusterspec/pkg/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.Execute(ctx, os.Args)
	if err != nil && !errors.Is(err, cli.ErrValidationFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	stop()
	os.Exit(cli.ExitCode(err))
}
